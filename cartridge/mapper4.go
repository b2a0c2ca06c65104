package cartridge

import "github.com/bdwalton/gones2/nesrom"

func init() {
	Register(4, newMMC3)
}

// mmc3 implements iNES mapper 4 (MMC3/TxROM). Bank-select and bank-data
// registers are addressed by the even/odd CPU address of the write, not
// by a shift register. The scanline IRQ counter is driven by rising
// edges of PPU address line A12 rather than a scanline callback: the
// cartridge only ever sees PPU bus addresses through PPURead/PPUWrite,
// so edge detection has to live here, filtered against spurious
// sprite-fetch toggling by requiring the edge be at least 3 CPU cycles
// after the previous one. https://www.nesdev.org/wiki/MMC3
type mmc3 struct {
	prg []byte
	chr []byte

	chrRAM bool
	sram   []byte

	bankSelect uint8 // bit0-2: target register, bit6: PRG mode, bit7: CHR mode
	bankData   [8]uint8

	mirror        uint8
	prgRAMProtect uint8

	irqLatch   uint8
	irqCounter uint16
	irqReload  bool
	irqEnabled bool
	irqPending bool

	lastA12     bool
	lastA12Cycle uint64
	haveLastCyc  bool
}

func newMMC3(rom *nesrom.ROM) Mapper {
	chr := rom.CHR
	chrRAM := len(chr) == 0
	if chrRAM {
		chr = make([]byte, 8192)
	}
	m := &mmc3{
		prg:    rom.PRG,
		chr:    chr,
		chrRAM: chrRAM,
		sram:   make([]byte, 8192),
		mirror: rom.MirroringMode(),
	}
	return m
}

func (m *mmc3) Name() string { return "MMC3" }

func (m *mmc3) Reset() {
	m.bankSelect = 0
	m.irqCounter = 0
	m.irqLatch = 0
	m.irqReload = false
	m.irqEnabled = false
	m.irqPending = false
}

func (m *mmc3) prgBankCount8K() int { return len(m.prg) / 0x2000 }
func (m *mmc3) chrBankCount1K() int {
	if len(m.chr) == 0 {
		return 1
	}
	return len(m.chr) / 0x0400
}

func (m *mmc3) CPURead(addr uint16) uint8 {
	switch {
	case addr >= 0x6000 && addr < 0x8000:
		return m.sram[addr-0x6000]
	case addr >= 0x8000:
		return m.prg[m.prgOffset(addr)]
	default:
		return 0
	}
}

// prgOffset maps a CPU address in $8000-$FFFF to an 8 KiB-bank-aware PRG
// ROM offset. Four 8 KiB windows: $8000, $A000, $C000, $E000. $E000 is
// always fixed to the last bank. $C000 is fixed to the second-to-last
// bank in PRG mode 0, or switchable (R6) in PRG mode 1, with $8000
// taking the other role.
func (m *mmc3) prgOffset(addr uint16) int {
	n := m.prgBankCount8K()
	last := (n - 1) % n
	secondLast := (n - 2 + n) % n

	r6 := int(m.bankData[6]) % n
	r7 := int(m.bankData[7]) % n

	window := int((addr - 0x8000) / 0x2000)
	prgMode := m.bankSelect&0x40 != 0

	var bank int
	switch window {
	case 0:
		if prgMode {
			bank = secondLast
		} else {
			bank = r6
		}
	case 1:
		bank = r7
	case 2:
		if prgMode {
			bank = r6
		} else {
			bank = secondLast
		}
	default:
		bank = last
	}
	return bank*0x2000 + int(addr)%0x2000
}

func (m *mmc3) CPUWrite(addr uint16, val uint8) {
	switch {
	case addr >= 0x6000 && addr < 0x8000:
		m.sram[addr-0x6000] = val
	case addr >= 0x8000 && addr < 0xA000:
		if addr%2 == 0 {
			m.bankSelect = val
		} else {
			m.bankData[m.bankSelect&0x07] = val
		}
	case addr >= 0xA000 && addr < 0xC000:
		if addr%2 == 0 {
			if val&0x01 != 0 {
				m.mirror = nesrom.MirrorHorizontal
			} else {
				m.mirror = nesrom.MirrorVertical
			}
		} else {
			m.prgRAMProtect = val
		}
	case addr >= 0xC000 && addr < 0xE000:
		if addr%2 == 0 {
			m.irqLatch = val
		} else {
			m.irqCounter = 0
			m.irqReload = true
		}
	default: // $E000-$FFFF
		if addr%2 == 0 {
			m.irqEnabled = false
			m.irqPending = false
		} else {
			m.irqEnabled = true
		}
	}
}

// chrOffset maps a PPU address in $0000-$1FFF to a 1 KiB-bank-aware CHR
// offset. CHR mode 0: two 2 KiB windows (R0,R1) at $0000/$0800, four
// 1 KiB windows (R2-R5) at $1000-$1FFF. CHR mode 1 swaps the halves.
func (m *mmc3) chrOffset(addr uint16) int {
	n := m.chrBankCount1K()
	chrMode := m.bankSelect&0x80 != 0

	a := addr
	if chrMode {
		a ^= 0x1000
	}

	var bank1k int
	var within uint16
	switch {
	case a < 0x0800:
		bank1k = int(m.bankData[0]&0xFE) + int(a/0x0400)
		within = a % 0x0400
	case a < 0x1000:
		bank1k = int(m.bankData[1]&0xFE) + int((a-0x0800)/0x0400)
		within = a % 0x0400
	case a < 0x1400:
		bank1k = int(m.bankData[2])
		within = a - 0x1000
	case a < 0x1800:
		bank1k = int(m.bankData[3])
		within = a - 0x1400
	case a < 0x1C00:
		bank1k = int(m.bankData[4])
		within = a - 0x1800
	default:
		bank1k = int(m.bankData[5])
		within = a - 0x1C00
	}
	return (bank1k%n)*0x0400 + int(within)
}

func (m *mmc3) PPURead(addr uint16, cpuCycle uint64) uint8 {
	m.clockA12(addr, cpuCycle)
	off := m.chrOffset(addr)
	if off >= 0 && off < len(m.chr) {
		return m.chr[off]
	}
	return 0
}

func (m *mmc3) PPUWrite(addr uint16, val uint8) {
	if !m.chrRAM {
		return
	}
	off := m.chrOffset(addr)
	if off >= 0 && off < len(m.chr) {
		m.chr[off] = val
	}
}

const mmc3IRQFilterCycles = 3

func (m *mmc3) clockA12(addr uint16, cpuCycle uint64) {
	a12 := addr&0x1000 != 0
	rising := a12 && !m.lastA12
	m.lastA12 = a12
	if !rising {
		return
	}
	if m.haveLastCyc && cpuCycle-m.lastA12Cycle < mmc3IRQFilterCycles {
		m.lastA12Cycle = cpuCycle
		return
	}
	m.haveLastCyc = true
	m.lastA12Cycle = cpuCycle

	if m.irqCounter == 0 || m.irqReload {
		if m.irqLatch == 0 {
			m.irqCounter = 0x100 // hardware quirk: a 0 latch reloads to 256, not 0
		} else {
			m.irqCounter = uint16(m.irqLatch)
		}
		m.irqReload = false
	} else {
		m.irqCounter--
	}
	if m.irqCounter == 0 && m.irqEnabled {
		m.irqPending = true
	}
}

func (m *mmc3) Mirroring() uint8  { return m.mirror }
func (m *mmc3) IRQPending() bool  { return m.irqPending }
func (m *mmc3) ClearIRQ()         { m.irqPending = false }
func (m *mmc3) BatteryRAM() []byte {
	return m.sram
}
