package apu

import (
	"testing"

	"github.com/bdwalton/gones2/nesrom"
)

type fakeStaller struct {
	stallTotal int
}

func (c *fakeStaller) AddDMAStall(n int) { c.stallTotal += n }

type fakeMem struct{ mem [0x10000]uint8 }

func (m *fakeMem) Read(addr uint16) uint8 { return m.mem[addr] }

func newTestAPU() (*APU, *fakeStaller, *fakeMem) {
	stall := &fakeStaller{}
	mem := &fakeMem{}
	a := New(nesrom.NTSC, stall, mem)
	a.Reset()
	return a, stall, mem
}

func TestPulseLengthCounterLoadAndEnable(t *testing.T) {
	a, _, _ := newTestAPU()
	a.WriteRegister(0x4015, 0x01) // enable pulse1
	a.WriteRegister(0x4000, 0x00)
	a.WriteRegister(0x4003, 0x08) // length table index 1 -> 254
	if a.pulse1.lengthCounter != 254 {
		t.Fatalf("pulse1 length counter = %d, want 254", a.pulse1.lengthCounter)
	}
	if a.ReadStatus()&0x01 == 0 {
		t.Fatalf("status bit0 should report pulse1 active")
	}
}

func TestDisablingChannelViaStatusZeroesLength(t *testing.T) {
	a, _, _ := newTestAPU()
	a.WriteRegister(0x4015, 0x01)
	a.WriteRegister(0x4003, 0x08)
	a.WriteRegister(0x4015, 0x00)
	if a.pulse1.lengthCounter != 0 {
		t.Fatalf("length counter = %d, want 0 after disabling channel", a.pulse1.lengthCounter)
	}
}

func TestFourStepFrameSequencerFiresIRQ(t *testing.T) {
	a, _, _ := newTestAPU()
	a.WriteRegister(0x4017, 0x00) // 4-step, IRQ enabled
	for i := 0; i < 29840; i++ {
		a.StepOneCPUCycle()
	}
	if !a.IRQPending() {
		t.Fatalf("4-step sequencer never raised an IRQ")
	}
	if !a.frameIRQ {
		t.Fatalf("frameIRQ flag not set")
	}
}

func TestFiveStepFrameSequencerNeverIRQs(t *testing.T) {
	a, _, _ := newTestAPU()
	a.WriteRegister(0x4017, 0x80) // 5-step
	for i := 0; i < 40000; i++ {
		a.StepOneCPUCycle()
	}
	if a.IRQPending() {
		t.Fatalf("5-step sequencer must never raise a frame IRQ")
	}
}

func TestFrameIRQInhibitBitSuppresses(t *testing.T) {
	a, _, _ := newTestAPU()
	a.WriteRegister(0x4017, 0x40) // 4-step, IRQ inhibited
	for i := 0; i < 29840; i++ {
		a.StepOneCPUCycle()
	}
	if a.IRQPending() {
		t.Fatalf("IRQ inhibit bit did not suppress the frame IRQ")
	}
}

func TestDMCRestartOnEnableAndSampleFetchStalls(t *testing.T) {
	a, stall, mem := newTestAPU()
	mem.mem[0xC000] = 0xFF
	a.WriteRegister(0x4012, 0x00) // sample addr $C000
	a.WriteRegister(0x4013, 0x00) // sample length 1 byte
	a.WriteRegister(0x4010, 0x0F) // fastest rate
	a.WriteRegister(0x4015, 0x10) // enable DMC -> restart
	if a.dmc.bytesLeft != 1 {
		t.Fatalf("dmc bytesLeft = %d, want 1 after restart", a.dmc.bytesLeft)
	}
	for i := 0; i < int(a.dmc.timerPeriod)*3; i++ {
		a.StepOneCPUCycle()
	}
	if stall.stallTotal == 0 {
		t.Fatalf("DMC sample fetch never stalled the CPU")
	}
}

func TestMixOutputIsBoundedAndNonNegative(t *testing.T) {
	a, _, _ := newTestAPU()
	a.pulse1.enabled = true
	a.pulse1.lengthCounter = 10
	a.pulse1.timerPeriod = 100
	a.pulse1.constantVolume = true
	a.pulse1.volume = 15
	a.pulse1.duty = 2
	out := a.mix()
	if out < 0 || out > 1.2 {
		t.Fatalf("mixed sample %v out of expected [0,~1.0] range", out)
	}
}
