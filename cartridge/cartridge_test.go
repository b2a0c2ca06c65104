package cartridge

import (
	"bytes"
	"errors"
	"testing"

	"github.com/bdwalton/gones2/nesrom"
)

func buildROM(t *testing.T, mapperID uint16, prgBlocks, chrBlocks uint8, flags6 uint8) *nesrom.ROM {
	t.Helper()
	mapperLow := uint8(mapperID&0x0F) << 4
	mapperHigh := uint8((mapperID>>4)&0x0F) << 4
	h := []byte{'N', 'E', 'S', 0x1A, prgBlocks, chrBlocks, flags6 | mapperLow, mapperHigh, 0, 0, 0, 0, 0, 0, 0, 0}
	buf := bytes.NewBuffer(h)
	buf.Write(make([]byte, int(prgBlocks)*16384))
	buf.Write(make([]byte, int(chrBlocks)*8192))
	rom, err := nesrom.Load("test.nes", buf)
	if err != nil {
		t.Fatalf("buildROM: %v", err)
	}
	return rom
}

func TestNewUnsupportedMapper(t *testing.T) {
	rom := buildROM(t, 99, 1, 1, 0)
	_, err := New(rom)
	if !errors.Is(err, nesrom.ErrUnsupportedMapper) {
		t.Fatalf("New() err = %v, want ErrUnsupportedMapper", err)
	}
}

func TestNametableIndex(t *testing.T) {
	tests := []struct {
		mirror uint8
		addr   uint16
		want   uint16
	}{
		{nesrom.MirrorVertical, 0x000, 0x000},
		{nesrom.MirrorVertical, 0x400, 0x400},
		{nesrom.MirrorVertical, 0x800, 0x000},
		{nesrom.MirrorVertical, 0xC00, 0x400},
		{nesrom.MirrorHorizontal, 0x000, 0x000},
		{nesrom.MirrorHorizontal, 0x400, 0x000},
		{nesrom.MirrorHorizontal, 0x800, 0x400},
		{nesrom.MirrorHorizontal, 0xC00, 0x400},
		{nesrom.MirrorSingleLow, 0x400, 0x000},
		{nesrom.MirrorSingleHigh, 0x000, 0x400},
		{nesrom.MirrorFourScreen, 0xC00, 0xC00},
	}
	for _, tt := range tests {
		if got := NametableIndex(tt.mirror, tt.addr); got != tt.want {
			t.Errorf("NametableIndex(%d, %#x) = %#x, want %#x", tt.mirror, tt.addr, got, tt.want)
		}
	}
}

func TestNROMMirrors16KPRG(t *testing.T) {
	rom := buildROM(t, 0, 1, 1, 0)
	rom.PRG[0] = 0xAB
	rom.PRG[1] = 0xCD
	c, err := New(rom)
	if err != nil {
		t.Fatalf("New() err = %v", err)
	}
	if got := c.CPURead(0x8000); got != 0xAB {
		t.Errorf("CPURead(0x8000) = %#x, want 0xab", got)
	}
	if got := c.CPURead(0xC000); got != 0xAB {
		t.Errorf("CPURead(0xC000) = %#x, want mirrored 0xab", got)
	}
}

func TestMMC1PRGBankSwitch(t *testing.T) {
	rom := buildROM(t, 1, 4, 1, 0)
	// Stamp a marker byte at the start of bank 2 (offset 2*0x4000).
	rom.PRG[2*0x4000] = 0x42
	c, err := New(rom)
	if err != nil {
		t.Fatalf("New() err = %v", err)
	}
	m := c.Mapper().(*mmc1)

	writeShift := func(addr uint16, val uint8) {
		for i := 0; i < 5; i++ {
			c.CPUWrite(addr, (val>>uint(i))&1)
		}
	}
	// Select PRG mode 2 (fix first bank at $8000, switch $C000), then
	// bank 2 into the $C000 window.
	writeShift(0x9FFF, 0x08)
	writeShift(0xE000, 0x02)

	if m.control&0x0C>>2 != 2 {
		t.Fatalf("prg mode = %d, want 2", (m.control&0x0C)>>2)
	}
	if got := c.CPURead(0xC000); got != 0x42 {
		t.Errorf("CPURead(0xC000) = %#x, want 0x42", got)
	}
}

func TestMMC3IRQRisingEdgeFilter(t *testing.T) {
	rom := buildROM(t, 4, 2, 2, 0)
	c, err := New(rom)
	if err != nil {
		t.Fatalf("New() err = %v", err)
	}
	c.CPUWrite(0xC000, 4) // latch = 4
	c.CPUWrite(0xC001, 0) // force reload
	c.CPUWrite(0xE001, 0) // enable IRQ

	// First rising edge at cycle 0: reload to 4 (counter was 0 already,
	// but irqReload is also set, either path reloads).
	c.PPURead(0x1000, 0)
	if c.IRQPending() {
		t.Fatalf("IRQ pending after first edge, counter should be 4")
	}

	// Edge too soon after the previous one (< 3 cycles) must be ignored.
	c.PPURead(0x0000, 1)
	c.PPURead(0x1000, 2)
	m := c.Mapper().(*mmc3)
	if m.irqCounter != 4 {
		t.Fatalf("irqCounter = %d after filtered edge, want unchanged 4", m.irqCounter)
	}

	// Edges spaced >= 3 cycles apart decrement: 4 -> 3 -> 2 -> 1 -> 0 (pending).
	cyc := uint64(10)
	for i := 0; i < 4; i++ {
		c.PPURead(0x0000, cyc)
		cyc += 3
		c.PPURead(0x1000, cyc)
		cyc += 3
	}
	if !c.IRQPending() {
		t.Fatalf("IRQ not pending after counter reached 0")
	}
	c.ClearIRQ()
	if c.IRQPending() {
		t.Fatalf("IRQ still pending after ClearIRQ")
	}
}

// TestMMC3IRQLatchFiveFromPoweronCounter exercises spec scenario 6
// literally: latch=5, IRQ enabled, counter starts at its power-on value
// of 0 (no forced reload write), and across 6 rising edges spaced >= 3
// CPU cycles apart the IRQ fires exactly once, on the 6th edge.
func TestMMC3IRQLatchFiveFromPoweronCounter(t *testing.T) {
	rom := buildROM(t, 4, 2, 2, 0)
	c, err := New(rom)
	if err != nil {
		t.Fatalf("New() err = %v", err)
	}
	c.CPUWrite(0xC000, 5) // latch = 5
	c.CPUWrite(0xE001, 0) // enable IRQ

	cyc := uint64(0)
	fires := 0
	for i := 0; i < 6; i++ {
		c.PPURead(0x0000, cyc)
		cyc += 4
		c.PPURead(0x1000, cyc)
		if c.IRQPending() {
			fires++
			c.ClearIRQ()
		}
		cyc += 4
	}
	if fires != 1 {
		t.Fatalf("IRQ fired %d times across 6 edges, want exactly 1 (on the 6th)", fires)
	}
}

// TestMMC3IRQZeroLatchReloadsTo256 confirms the "0 latch reloads to
// 0x100" hardware quirk from spec.md §4.6: a 0 latch must not fire an
// IRQ on the very next edge, unlike a naive reload-to-0 implementation.
func TestMMC3IRQZeroLatchReloadsTo256(t *testing.T) {
	rom := buildROM(t, 4, 2, 2, 0)
	c, err := New(rom)
	if err != nil {
		t.Fatalf("New() err = %v", err)
	}
	c.CPUWrite(0xC000, 0) // latch = 0
	c.CPUWrite(0xC001, 0) // force reload
	c.CPUWrite(0xE001, 0) // enable IRQ

	c.PPURead(0x1000, 0)
	if c.IRQPending() {
		t.Fatalf("IRQ pending immediately after a 0-latch reload; should take 256 edges, not 1")
	}
	m := c.Mapper().(*mmc3)
	if m.irqCounter != 0x100 {
		t.Fatalf("irqCounter after 0-latch reload = %#x, want 0x100", m.irqCounter)
	}
}
