package ppu

import "testing"

type fakeBus struct {
	chr       [0x2000]uint8
	mirroring uint8
	nmiCount  int
}

func (b *fakeBus) PPURead(addr uint16, cpuCycle uint64) uint8 { return b.chr[addr&0x1FFF] }
func (b *fakeBus) PPUWrite(addr uint16, val uint8)            { b.chr[addr&0x1FFF] = val }
func (b *fakeBus) Mirroring() uint8                           { return b.mirroring }
func (b *fakeBus) TriggerNMI()                                { b.nmiCount++ }

func newTestPPU() (*PPU, *fakeBus) {
	bus := &fakeBus{}
	p := New(bus)
	p.Reset()
	return p, bus
}

// runDots advances the PPU by n dots.
func runDots(p *PPU, n int) {
	for i := 0; i < n; i++ {
		p.StepOneDot()
	}
}

// dotIndex returns the number of StepOneDot calls needed so that the
// PPU has just finished processing (scanline, dot).
func dotIndex(scanline, dot int) int { return scanline*341 + dot + 1 }

func TestVBlankSetAndClearedAcrossFrame(t *testing.T) {
	p, _ := newTestPPU()
	runDots(p, dotIndex(241, 1))
	if p.status&statusVBlank == 0 {
		t.Fatalf("vblank not set at scanline 241 dot 1")
	}
	runDots(p, dotIndex(261, 1)-dotIndex(241, 1))
	if p.status&statusVBlank != 0 {
		t.Fatalf("vblank not cleared at pre-render dot 1")
	}
}

func TestNMIFiresOnVBlankWhenCTRLEnableWrittenLate(t *testing.T) {
	p, bus := newTestPPU()
	// enter vblank with NMI disabled.
	runDots(p, dotIndex(241, 1))
	if bus.nmiCount != 0 {
		t.Fatalf("NMI fired with CTRL NMI-enable clear")
	}
	// enabling NMI while STATUS vblank is still set must fire immediately.
	p.WriteRegister(0x2000, ctrlNMIEnable)
	if bus.nmiCount != 1 {
		t.Fatalf("NMI not fired on late CTRL NMI-enable, count=%d", bus.nmiCount)
	}
}

func TestReadStatusClearsVBlankAndWriteToggle(t *testing.T) {
	p, _ := newTestPPU()
	runDots(p, dotIndex(241, 1))
	p.w = true
	result := p.ReadRegister(0x2002)
	if result&statusVBlank == 0 {
		t.Fatalf("status read should report vblank set before clearing")
	}
	if p.status&statusVBlank != 0 {
		t.Fatalf("reading $2002 must clear vblank")
	}
	if p.w {
		t.Fatalf("reading $2002 must clear the write toggle")
	}
}

func TestOddFrameSkipsOneDot(t *testing.T) {
	p, _ := newTestPPU()
	p.mask = maskShowBG // enable rendering so the skip applies
	evenFrameDots := 341 * 262
	runDots(p, evenFrameDots)
	if p.frame != 1 {
		t.Fatalf("frame counter = %d, want 1 after one even frame", p.frame)
	}
	runDots(p, evenFrameDots-1)
	if p.frame != 2 {
		t.Fatalf("frame counter = %d, want 2 after odd frame (should be 1 dot shorter)", p.frame)
	}
}

func TestPaletteBackdropMirror(t *testing.T) {
	p, _ := newTestPPU()
	p.writePalette(0x3F00, 0x0F)
	if p.readPalette(0x3F10) != 0x0F {
		t.Fatalf("$3F10 must mirror $3F00")
	}
	p.writePalette(0x3F14, 0x22)
	if p.readPalette(0x3F04) != 0x22 {
		t.Fatalf("$3F04 must mirror $3F14")
	}
}

func TestOAMDataReadWriteRoundTrip(t *testing.T) {
	p, _ := newTestPPU()
	p.WriteRegister(0x2003, 0x10) // OAMADDR
	p.WriteRegister(0x2004, 0xAB)
	p.WriteRegister(0x2003, 0x10)
	if got := p.ReadRegister(0x2004); got != 0xAB {
		t.Fatalf("OAMDATA round trip = %#02x, want 0xab", got)
	}
}

func TestVRAMAddrIncrementRespectsCTRLBit2(t *testing.T) {
	p, bus := newTestPPU()
	bus.chr[0x0000] = 0x11
	bus.chr[0x0020] = 0x22
	p.WriteRegister(0x2000, ctrlIncrement32)
	p.WriteRegister(0x2006, 0x00)
	p.WriteRegister(0x2006, 0x00)
	p.ReadRegister(0x2007) // primes the read buffer with chr[0]
	if got := p.ReadRegister(0x2007); got != 0x11 {
		t.Fatalf("first buffered $2007 read = %#02x, want 0x11", got)
	}
	if uint16(p.v) != 0x40 {
		t.Fatalf("v after two 32-byte increments = %#04x, want 0x0040", uint16(p.v))
	}
}
