package cartridge

import "github.com/bdwalton/gones2/nesrom"

func init() {
	Register(0, newNROM)
}

// nrom implements iNES mapper 0 (NROM): fixed PRG banking, no registers.
// 16 KiB PRG images are mirrored across both $8000-$BFFF and $C000-$FFFF;
// 32 KiB images fill the whole window. CHR is ROM (read-only) unless the
// cartridge ships with CHR RAM (ChrSize == 0), in which case it's writable.
type nrom struct {
	prg    []byte
	chr    []byte
	chrRAM bool
	sram   []byte
	mirror uint8
}

func newNROM(rom *nesrom.ROM) Mapper {
	chr := rom.CHR
	chrRAM := len(chr) == 0
	if chrRAM {
		chr = make([]byte, 8192)
	}
	return &nrom{
		prg:    rom.PRG,
		chr:    chr,
		chrRAM: chrRAM,
		sram:   make([]byte, 8192),
		mirror: rom.MirroringMode(),
	}
}

func (m *nrom) Name() string { return "NROM" }
func (m *nrom) Reset()       {}

func (m *nrom) CPURead(addr uint16) uint8 {
	switch {
	case addr >= 0x6000 && addr < 0x8000:
		return m.sram[addr-0x6000]
	case addr >= 0x8000:
		return m.prg[int(addr-0x8000)%len(m.prg)]
	default:
		return 0
	}
}

func (m *nrom) CPUWrite(addr uint16, val uint8) {
	if addr >= 0x6000 && addr < 0x8000 {
		m.sram[addr-0x6000] = val
	}
	// Writes to $8000+ are no-ops: NROM has no banking registers.
}

func (m *nrom) PPURead(addr uint16, _ uint64) uint8 {
	if int(addr) < len(m.chr) {
		return m.chr[addr]
	}
	return 0
}

func (m *nrom) PPUWrite(addr uint16, val uint8) {
	if m.chrRAM && int(addr) < len(m.chr) {
		m.chr[addr] = val
	}
}

func (m *nrom) Mirroring() uint8 { return m.mirror }
func (m *nrom) IRQPending() bool { return false }
func (m *nrom) ClearIRQ()        {}

func (m *nrom) BatteryRAM() []byte {
	return m.sram
}
