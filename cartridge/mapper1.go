package cartridge

import "github.com/bdwalton/gones2/nesrom"

func init() {
	Register(1, newMMC1)
}

const (
	mmc1PRG32K = iota
	mmc1PRGFixFirst
	mmc1PRGFixLast
)

// mmc1 implements iNES mapper 1 (MMC1/SxROM): a single CPU-write-port
// shift register serializes 5 bits (LSB first) into one of four internal
// registers, selected by the address of the write that completes the
// sequence. A write with bit 7 set resets the shift register and forces
// 16 KiB PRG mode fixed to the last bank, independent of the bit
// position being shifted in.
// https://www.nesdev.org/wiki/MMC1
type mmc1 struct {
	prg []byte
	chr []byte

	chrRAM bool
	sram   []byte

	shift    uint8
	shiftLen uint8

	control uint8 // bit0-1: mirroring, bit2-3: prg mode, bit4: chr mode
	chrBank [2]uint8
	prgBank uint8

	prgRAMDisable bool
}

func newMMC1(rom *nesrom.ROM) Mapper {
	chr := rom.CHR
	chrRAM := len(chr) == 0
	if chrRAM {
		chr = make([]byte, 8192)
	}
	m := &mmc1{
		prg:    rom.PRG,
		chr:    chr,
		chrRAM: chrRAM,
		sram:   make([]byte, 8192),
	}
	m.control = 0x0C // power-on: PRG mode 3 (fix last bank at $C000)
	return m
}

func (m *mmc1) Name() string { return "MMC1" }

func (m *mmc1) Reset() {
	m.shift = 0
	m.shiftLen = 0
	m.control |= 0x0C
}

func (m *mmc1) prgBankCount() int { return len(m.prg) / 0x4000 }
func (m *mmc1) chrBankCount4K() int {
	if len(m.chr) == 0 {
		return 1
	}
	return len(m.chr) / 0x1000
}

func (m *mmc1) CPURead(addr uint16) uint8 {
	switch {
	case addr >= 0x6000 && addr < 0x8000:
		if m.prgRAMDisable {
			return 0
		}
		return m.sram[addr-0x6000]
	case addr >= 0x8000:
		return m.prg[m.prgOffset(addr)]
	default:
		return 0
	}
}

func (m *mmc1) prgOffset(addr uint16) int {
	bank := int(m.prgBank & 0x0F)
	nBanks := m.prgBankCount()
	mode := (m.control >> 2) & 0x03
	switch mode {
	case 0, 1: // 32 KiB mode, low bit of bank ignored
		base := (bank &^ 1) % nBanks
		return base*0x4000 + int(addr-0x8000)
	case 2: // fix first bank at $8000, switch $C000
		if addr < 0xC000 {
			return int(addr - 0x8000)
		}
		b := bank % nBanks
		return b*0x4000 + int(addr-0xC000)
	default: // 3: fix last bank at $C000, switch $8000
		if addr >= 0xC000 {
			return (nBanks-1)*0x4000 + int(addr-0xC000)
		}
		b := bank % nBanks
		return b*0x4000 + int(addr-0x8000)
	}
}

func (m *mmc1) CPUWrite(addr uint16, val uint8) {
	if addr >= 0x6000 && addr < 0x8000 {
		if !m.prgRAMDisable {
			m.sram[addr-0x6000] = val
		}
		return
	}
	if addr < 0x8000 {
		return
	}

	if val&0x80 != 0 {
		m.shift = 0
		m.shiftLen = 0
		m.control |= 0x0C
		return
	}

	m.shift |= (val & 1) << m.shiftLen
	m.shiftLen++
	if m.shiftLen < 5 {
		return
	}

	data := m.shift
	m.shift = 0
	m.shiftLen = 0

	switch {
	case addr < 0xA000:
		m.control = data
	case addr < 0xC000:
		m.chrBank[0] = data
	case addr < 0xE000:
		m.chrBank[1] = data
	default:
		m.prgBank = data & 0x0F
		m.prgRAMDisable = data&0x10 != 0
	}
}

func (m *mmc1) chrOffset(addr uint16) int {
	nBanks := m.chrBankCount4K()
	if m.control&0x10 == 0 { // 8 KiB mode, low bit of bank 0 ignored
		base := (int(m.chrBank[0]) &^ 1) % nBanks
		return base*0x1000 + int(addr)
	}
	if addr < 0x1000 {
		b := int(m.chrBank[0]) % nBanks
		return b*0x1000 + int(addr)
	}
	b := int(m.chrBank[1]) % nBanks
	return b*0x1000 + int(addr-0x1000)
}

func (m *mmc1) PPURead(addr uint16, _ uint64) uint8 {
	off := m.chrOffset(addr)
	if off >= 0 && off < len(m.chr) {
		return m.chr[off]
	}
	return 0
}

func (m *mmc1) PPUWrite(addr uint16, val uint8) {
	if !m.chrRAM {
		return
	}
	off := m.chrOffset(addr)
	if off >= 0 && off < len(m.chr) {
		m.chr[off] = val
	}
}

func (m *mmc1) Mirroring() uint8 {
	switch m.control & 0x03 {
	case 0:
		return nesrom.MirrorSingleLow
	case 1:
		return nesrom.MirrorSingleHigh
	case 2:
		return nesrom.MirrorVertical
	default:
		return nesrom.MirrorHorizontal
	}
}

func (m *mmc1) IRQPending() bool { return false }
func (m *mmc1) ClearIRQ()        {}
func (m *mmc1) BatteryRAM() []byte {
	return m.sram
}
