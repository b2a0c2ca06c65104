// Package ppu implements the NES 2C02 picture processing unit: the
// per-dot rendering state machine, scroll/address registers, OAM and
// sprite pipeline, and palette memory described in spec.md §4.3.
package ppu

import "github.com/bdwalton/gones2/cartridge"

// Bus is the PPU's view of the rest of the console: cartridge CHR/
// nametable access (routed through the mapper for bank switching and
// IRQ edge counting) and the NMI line into the CPU.
type Bus interface {
	PPURead(addr uint16, cpuCycle uint64) uint8
	PPUWrite(addr uint16, val uint8)
	Mirroring() uint8
	TriggerNMI()
}

// Register bits.
const (
	ctrlNMIEnable     uint8 = 1 << 7
	ctrlSpriteHeight  uint8 = 1 << 5
	ctrlBGTable       uint8 = 1 << 4
	ctrlSpriteTable   uint8 = 1 << 3
	ctrlIncrement32   uint8 = 1 << 2
	ctrlNametableMask uint8 = 0x03

	maskGreyscale    uint8 = 1 << 0
	maskShowBGLeft   uint8 = 1 << 1
	maskShowSprLeft  uint8 = 1 << 2
	maskShowBG       uint8 = 1 << 3
	maskShowSprites  uint8 = 1 << 4
	maskEmphasizeR   uint8 = 1 << 5
	maskEmphasizeG   uint8 = 1 << 6
	maskEmphasizeB   uint8 = 1 << 7

	statusOverflow  uint8 = 1 << 5
	statusSprite0   uint8 = 1 << 6
	statusVBlank    uint8 = 1 << 7
)

// PPU holds the 2C02's architectural and pipeline state.
type PPU struct {
	bus Bus

	ctrl, mask, status, oamAddr uint8
	v, t                        loopy
	x                           uint8 // fine X scroll, 3 bits
	w                           bool  // write-toggle latch
	readBuffer                  uint8
	openBus                     uint8

	scanline int // 0-261
	dot      int // 0-340
	frame    uint64
	oddFrame bool

	frameComplete bool

	// background fetch pipeline
	ntByte, atByte, atLatch uint8
	bgLowByte, bgHighByte   uint8
	bgShiftLow, bgShiftHigh uint16
	atShiftLow, atShiftHigh uint16

	oam          [256]uint8
	secondaryOAM [32]uint8
	spriteCount  int

	spriteZeroInSecondary bool
	spriteZeroSlot        int

	spritePatternLow  [8]uint8
	spritePatternHigh [8]uint8
	spriteX           [8]uint8
	spriteAttr        [8]uint8
	spriteIsZero      [8]bool

	paletteRAM [32]uint8
	nametables [0x1000]uint8

	frameBuffer [256 * 240]uint32

	totalDots uint64
}

// New constructs a PPU wired to bus. Call Reset before use.
func New(bus Bus) *PPU {
	return &PPU{bus: bus}
}

// Reset reproduces power-on/reset PPU state.
func (p *PPU) Reset() {
	p.ctrl, p.mask, p.status, p.oamAddr = 0, 0, 0, 0
	p.v, p.t, p.x, p.w = 0, 0, 0, false
	p.readBuffer = 0
	p.scanline, p.dot = 0, 0
	p.frame, p.oddFrame = 0, false
	p.frameComplete = false
	p.spriteCount = 0
}

// FrameComplete reports whether a full frame has been produced since the
// last call to ClearFrameComplete.
func (p *PPU) FrameComplete() bool { return p.frameComplete }

// ClearFrameComplete resets the frame_complete flag; the scheduler calls
// this at the start of every run_frame iteration.
func (p *PPU) ClearFrameComplete() { p.frameComplete = false }

// Framebuffer returns the 256x240 RGBA (0xRRGGBBAA per pixel) buffer for
// the most recently completed (or in-progress) frame.
func (p *PPU) Framebuffer() []uint32 { return p.frameBuffer[:] }

// Scanline and Dot expose raster position for debug/introspection and
// tests.
func (p *PPU) Scanline() int { return p.scanline }
func (p *PPU) Dot() int      { return p.dot }

func (p *PPU) cpuCycle() uint64 { return p.totalDots / 3 }

func (p *PPU) vramIncrement() uint16 {
	if p.ctrl&ctrlIncrement32 != 0 {
		return 32
	}
	return 1
}

func (p *PPU) vramRead(addr uint16) uint8 {
	addr &= 0x3FFF
	switch {
	case addr < 0x2000:
		return p.bus.PPURead(addr, p.cpuCycle())
	case addr < 0x3F00:
		return p.nametables[cartridge.NametableIndex(p.bus.Mirroring(), addr&0x0FFF)]
	default:
		return p.readPalette(addr)
	}
}

func (p *PPU) vramWrite(addr uint16, val uint8) {
	addr &= 0x3FFF
	switch {
	case addr < 0x2000:
		p.bus.PPUWrite(addr, val)
	case addr < 0x3F00:
		p.nametables[cartridge.NametableIndex(p.bus.Mirroring(), addr&0x0FFF)] = val
	default:
		p.writePalette(addr, val)
	}
}

func (p *PPU) readPalette(addr uint16) uint8 {
	return p.paletteRAM[addr&0x1F]
}

// writePalette enforces the palette-RAM backdrop mirror invariant:
// $3F00/04/08/0C and $3F10/14/18/1C alias the same four physical bytes.
func (p *PPU) writePalette(addr uint16, val uint8) {
	idx := uint8(addr & 0x1F)
	p.paletteRAM[idx] = val
	if idx&0x03 == 0 {
		p.paletteRAM[idx^0x10] = val
	}
}

// ReadRegister services a CPU read of $2000-$2007 (mirrored every 8
// bytes through $3FFF by the bus).
func (p *PPU) ReadRegister(addr uint16) uint8 {
	switch addr & 0x0007 {
	case 2:
		result := (p.status & 0xE0) | (p.openBus & 0x1F)
		p.status &^= statusVBlank
		p.w = false
		p.openBus = result
		return result
	case 4:
		v := p.oam[p.oamAddr]
		p.openBus = v
		return v
	case 7:
		var val uint8
		if p.v >= 0x3F00 {
			val = p.readPalette(uint16(p.v))
			p.readBuffer = p.vramRead(uint16(p.v) - 0x1000)
		} else {
			val = p.readBuffer
			p.readBuffer = p.vramRead(uint16(p.v))
		}
		p.v = loopy(uint16(p.v) + p.vramIncrement())
		p.openBus = val
		return val
	default:
		return p.openBus
	}
}

// WriteRegister services a CPU write to $2000-$2007.
func (p *PPU) WriteRegister(addr uint16, val uint8) {
	p.openBus = val
	switch addr & 0x0007 {
	case 0:
		wasEnabled := p.ctrl&ctrlNMIEnable != 0
		p.ctrl = val
		p.t = loopy(uint16(p.t)&^0x0C00 | (uint16(val&ctrlNametableMask) << 10))
		if !wasEnabled && p.ctrl&ctrlNMIEnable != 0 && p.status&statusVBlank != 0 {
			p.bus.TriggerNMI()
		}
	case 1:
		p.mask = val
	case 3:
		p.oamAddr = val
	case 4:
		p.oam[p.oamAddr] = val
		p.oamAddr++
	case 5:
		if !p.w {
			p.x = val & 0x07
			p.t.setCoarseX(uint16(val) >> 3)
			p.w = true
		} else {
			p.t.setFineY(uint16(val))
			p.t.setCoarseY(uint16(val) >> 3)
			p.w = false
		}
	case 6:
		if !p.w {
			p.t = loopy(uint16(p.t)&^0x7F00 | (uint16(val&0x3F) << 8))
			p.w = true
		} else {
			p.t = loopy(uint16(p.t)&^0x00FF | uint16(val))
			p.v = p.t
			p.w = false
		}
	case 7:
		p.vramWrite(uint16(p.v), val)
		p.v = loopy(uint16(p.v) + p.vramIncrement())
	}
}

// WriteOAMByte services a single $4014 OAM DMA byte transfer (the bus
// drives 256 of these in sequence during the DMA stall).
func (p *PPU) WriteOAMByte(val uint8) {
	p.oam[p.oamAddr] = val
	p.oamAddr++
}
