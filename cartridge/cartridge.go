// Package cartridge implements and registers mappers that are referenced
// numerically by iNES ROM files, and the nametable mirroring policy they
// expose to the PPU.
package cartridge

import (
	"fmt"

	"github.com/bdwalton/gones2/nesrom"
)

// Mapper is the interface every cartridge mapping chip implements. The
// PPU and CPU bus talk to a cartridge exclusively through this interface;
// no component reaches into a mapper's private banking state.
type Mapper interface {
	Name() string
	Reset()

	// CPURead/CPUWrite cover the cartridge's CPU-visible address space,
	// $4020-$FFFF (PRG-RAM and PRG-ROM banking registers included).
	CPURead(addr uint16) uint8
	CPUWrite(addr uint16, val uint8)

	// PPURead/PPUWrite cover $0000-$1FFF (CHR-ROM/RAM). cpuCycle is the
	// running CPU cycle count at the time of the access, used by
	// mappers (MMC3) that derive an IRQ from PPU address-line edges.
	PPURead(addr uint16, cpuCycle uint64) uint8
	PPUWrite(addr uint16, val uint8)

	// Mirroring reports the current nametable arrangement. Some mappers
	// (MMC1) can change this at runtime via a control register.
	Mirroring() uint8

	IRQPending() bool
	ClearIRQ()

	// BatteryRAM exposes PRG-RAM for host-side save persistence. Mappers
	// return it whether or not the header declares a battery;
	// Cartridge.BatteryRAM returns nil when it does not.
	BatteryRAM() []byte
}

// ctor builds a fresh Mapper from a parsed ROM image.
type ctor func(*nesrom.ROM) Mapper

var registry = map[uint16]ctor{}

// Register adds a mapper constructor to the registry, keyed by iNES
// mapper id. Intended to be called from each mapper's init().
func Register(id uint16, c ctor) {
	if _, ok := registry[id]; ok {
		panic(fmt.Sprintf("cartridge: mapper id %d already registered", id))
	}
	registry[id] = c
}

// Cartridge pairs a parsed ROM with its mapper and exposes the combined
// unit the Bus and PPU depend on.
type Cartridge struct {
	rom    *nesrom.ROM
	mapper Mapper
}

// New builds a Cartridge from rom, selecting the mapper named by its
// header. Returns ErrUnsupportedMapper if no mapper is registered for
// that id.
func New(rom *nesrom.ROM) (*Cartridge, error) {
	id := rom.MapperNum()
	c, ok := registry[id]
	if !ok {
		return nil, fmt.Errorf("%w: id %d", nesrom.ErrUnsupportedMapper, id)
	}
	return &Cartridge{rom: rom, mapper: c(rom)}, nil
}

func (c *Cartridge) Mapper() Mapper   { return c.mapper }
func (c *Cartridge) Region() uint8    { return c.rom.Region() }
func (c *Cartridge) Header() *nesrom.Header { return c.rom.Header }

func (c *Cartridge) CPURead(addr uint16) uint8          { return c.mapper.CPURead(addr) }
func (c *Cartridge) CPUWrite(addr uint16, val uint8)    { c.mapper.CPUWrite(addr, val) }
func (c *Cartridge) PPURead(addr uint16, cyc uint64) uint8 { return c.mapper.PPURead(addr, cyc) }
func (c *Cartridge) PPUWrite(addr uint16, val uint8)    { c.mapper.PPUWrite(addr, val) }
func (c *Cartridge) Mirroring() uint8                   { return c.mapper.Mirroring() }
func (c *Cartridge) IRQPending() bool                   { return c.mapper.IRQPending() }
func (c *Cartridge) ClearIRQ()                          { c.mapper.ClearIRQ() }

// BatteryRAM returns the mapper's PRG-RAM, or nil when the header
// declares no battery.
func (c *Cartridge) BatteryRAM() []byte {
	if !c.rom.HasBattery() {
		return nil
	}
	return c.mapper.BatteryRAM()
}

// NametableIndex maps a PPU nametable address (relative to $2000, so in
// [0, 0x1000)) through the given mirroring mode down to an offset into a
// 4 KiB logical nametable space. Horizontal and vertical mirroring only
// ever touch the first 2 KiB of that space (the console's onboard VRAM);
// four-screen mode uses the full 4 KiB (2 KiB onboard + 2 KiB on
// cartridge). https://www.nesdev.org/wiki/Mirroring#Nametable_Mirroring
func NametableIndex(mirror uint8, addr uint16) uint16 {
	a := addr & 0x0FFF
	switch mirror {
	case nesrom.MirrorVertical:
		return a & 0x07FF
	case nesrom.MirrorHorizontal:
		table := a / 0x0400
		return (table/2)*0x0400 + a%0x0400
	case nesrom.MirrorSingleLow:
		return a % 0x0400
	case nesrom.MirrorSingleHigh:
		return 0x0400 + a%0x0400
	case nesrom.MirrorFourScreen:
		return a
	default:
		return a & 0x07FF
	}
}
