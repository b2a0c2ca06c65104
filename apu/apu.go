// Package apu implements the NES 2A03 audio processing unit: the frame
// sequencer, five sound channels, and the non-linear channel mixer
// described in spec.md §4.4.
package apu

import "github.com/bdwalton/gones2/nesrom"

// Staller is the APU's view of DMA stall signaling back to the CPU. The
// frame sequencer and DMC IRQ flags are level sources read by the
// scheduler via IRQPending, rather than asserted directly here, since
// the CPU's IRQ line is a wired-OR of several independent sources
// (frame sequencer, DMC, mapper) that only the scheduler can combine.
type Staller interface {
	AddDMAStall(n int)
}

// Mem is the APU's view of CPU address space, used only by the DMC
// channel's sample reader.
type Mem interface {
	Read(addr uint16) uint8
}

// APU holds all five channels, the frame sequencer, and the output
// resampling state.
type APU struct {
	pulse1, pulse2 pulse
	triangle       triangle
	noise          *noise
	dmc            *dmc

	region uint8

	cycle       uint64
	frameMode   uint8 // 0 = 4-step, 1 = 5-step
	frameIRQOff bool
	frameIRQ    bool
	frameStep   int
	resetDelay  int // cycles until a $4017 write's sequencer reset takes effect

	stall Staller
	mem   Mem

	sampleRate     int
	cyclesPerFrame uint64
	cycleAccum     uint64
	samples        []float32
}

// New constructs an APU for the given region, wired to stall (DMA stall
// signaling) and mem (DMC sample fetches).
func New(region uint8, stall Staller, mem Mem) *APU {
	a := &APU{
		region:     region,
		noise:      newNoise(),
		dmc:        newDMC(),
		stall:      stall,
		mem:        mem,
		sampleRate: 44100,
	}
	a.pulse2.isPulse2 = true
	return a
}

// Reset reproduces power-on APU state: all channels silenced, frame
// sequencer in 4-step mode.
func (a *APU) Reset() {
	a.WriteRegister(0x4015, 0x00)
	a.WriteRegister(0x4017, 0x00)
	a.cycle = 0
	a.frameStep = 0
}

func (a *APU) noisePeriodTable() *[16]uint16 {
	if a.region == nesrom.PAL {
		return &noisePeriodPAL
	}
	return &noisePeriodNTSC
}

func (a *APU) dmcRateTable() *[16]uint16 {
	if a.region == nesrom.PAL {
		return &dmcRatePAL
	}
	return &dmcRateNTSC
}

func (a *APU) frameSchedule() (four [4]uint64, five [5]uint64) {
	if a.region == nesrom.PAL {
		return frameSeqPAL4, frameSeqPAL5
	}
	return frameSeqNTSC4, frameSeqNTSC5
}

// WriteRegister services a CPU write to $4000-$4017 (APU/mixer/frame
// counter registers; $4016 is the controller and handled by the bus).
func (a *APU) WriteRegister(addr uint16, val uint8) {
	switch addr {
	case 0x4000:
		a.pulse1.writeControl(val)
	case 0x4001:
		a.pulse1.writeSweep(val)
	case 0x4002:
		a.pulse1.writeTimerLow(val)
	case 0x4003:
		a.pulse1.writeTimerHighLengthLoad(val)
	case 0x4004:
		a.pulse2.writeControl(val)
	case 0x4005:
		a.pulse2.writeSweep(val)
	case 0x4006:
		a.pulse2.writeTimerLow(val)
	case 0x4007:
		a.pulse2.writeTimerHighLengthLoad(val)
	case 0x4008:
		a.triangle.writeControl(val)
	case 0x400A:
		a.triangle.writeTimerLow(val)
	case 0x400B:
		a.triangle.writeTimerHighLengthLoad(val)
	case 0x400C:
		a.noise.writeControl(val)
	case 0x400E:
		a.noise.writePeriod(val, a.noisePeriodTable())
	case 0x400F:
		a.noise.writeLengthLoad(val)
	case 0x4010:
		a.dmc.writeControl(val, a.dmcRateTable())
	case 0x4011:
		a.dmc.writeDirectLoad(val)
	case 0x4012:
		a.dmc.writeSampleAddr(val)
	case 0x4013:
		a.dmc.writeSampleLength(val)
	case 0x4015:
		a.pulse1.setEnabled(val&0x01 != 0)
		a.pulse2.setEnabled(val&0x02 != 0)
		a.triangle.setEnabled(val&0x04 != 0)
		a.noise.setEnabled(val&0x08 != 0)
		a.dmc.setEnabled(val&0x10 != 0)
		a.dmc.irqFlag = false
	case 0x4017:
		a.frameMode = val >> 7
		a.frameIRQOff = val&0x40 != 0
		if a.frameIRQOff {
			a.frameIRQ = false
		}
		// the reset takes effect 3-4 CPU cycles after the write; 4 is
		// close enough for every real-world timing-sensitive use.
		a.resetDelay = 4
		if a.frameMode == 1 {
			a.clockQuarterFrame()
			a.clockHalfFrame()
		}
	}
}

// ReadStatus services a CPU read of $4015: channel active bits plus the
// frame and DMC IRQ flags, clearing the frame IRQ flag as a side effect.
func (a *APU) ReadStatus() uint8 {
	var v uint8
	if a.pulse1.lengthCounter > 0 {
		v |= 0x01
	}
	if a.pulse2.lengthCounter > 0 {
		v |= 0x02
	}
	if a.triangle.lengthCounter > 0 {
		v |= 0x04
	}
	if a.noise.lengthCounter > 0 {
		v |= 0x08
	}
	if a.dmc.active() {
		v |= 0x10
	}
	if a.frameIRQ {
		v |= 0x40
	}
	if a.dmc.irqFlag {
		v |= 0x80
	}
	a.frameIRQ = false
	return v
}

func (a *APU) clockQuarterFrame() {
	a.pulse1.clockEnvelope()
	a.pulse2.clockEnvelope()
	a.noise.clockEnvelope()
	a.triangle.clockLinearCounter()
}

func (a *APU) clockHalfFrame() {
	a.pulse1.clockLengthCounter()
	a.pulse2.clockLengthCounter()
	a.noise.clockLengthCounter()
	a.triangle.clockLengthCounter()
	a.pulse1.clockSweep()
	a.pulse2.clockSweep()
}

func (a *APU) stepFrameSequencer() {
	if a.resetDelay > 0 {
		a.resetDelay--
		if a.resetDelay == 0 {
			a.cycle = 0
			a.frameStep = 0
		}
	}

	four, five := a.frameSchedule()
	if a.frameMode == 0 {
		if a.frameStep < len(four) && a.cycle == four[a.frameStep] {
			a.clockQuarterFrame()
			if a.frameStep == 1 || a.frameStep == 3 {
				a.clockHalfFrame()
			}
			if a.frameStep == 3 && !a.frameIRQOff {
				a.frameIRQ = true
			}
			a.frameStep++
			if a.cycle == four[3] {
				a.cycle = 0
				a.frameStep = 0
				return
			}
		}
	} else {
		if a.frameStep < len(five) && a.cycle == five[a.frameStep] {
			if a.frameStep != 3 {
				a.clockQuarterFrame()
			}
			if a.frameStep == 1 || a.frameStep == 4 {
				a.clockHalfFrame()
			}
			a.frameStep++
			if a.cycle == five[4] {
				a.cycle = 0
				a.frameStep = 0
				return
			}
		}
	}
}

// StepOneCPUCycle advances every channel, the frame sequencer, and the
// output resampler by one CPU cycle. The scheduler calls this once per
// mos6502 cycle, per spec.md §4.1.
func (a *APU) StepOneCPUCycle() {
	a.triangle.clockTimer()
	if a.cycle%2 == 1 {
		a.pulse1.clockTimer()
		a.pulse2.clockTimer()
		a.noise.clockTimer()
		a.dmc.clockTimer(a.mem.Read, a.stall.AddDMAStall)
	}
	a.stepFrameSequencer()
	a.cycle++

	a.cycleAccum++
	cpuHz := uint64(1789773)
	if a.region == nesrom.PAL {
		cpuHz = 1662607
	}
	if a.cycleAccum*uint64(a.sampleRate) >= cpuHz {
		a.cycleAccum = 0
		a.samples = append(a.samples, a.mix())
	}
}

func (a *APU) mix() float32 {
	p1 := float64(a.pulse1.output())
	p2 := float64(a.pulse2.output())
	tr := float64(a.triangle.output())
	ns := float64(a.noise.output())
	dm := float64(a.dmc.output())

	var pulseOut float64
	if p1+p2 > 0 {
		pulseOut = 95.52 / (8128/(p1+p2) + 100)
	}
	var tndOut float64
	if tr+ns+dm > 0 {
		tndOut = 163.67 / (24329/(3*tr+2*ns+dm) + 100)
	}
	return float32(pulseOut + tndOut)
}

// DrainSamples returns and clears the accumulated output buffer; the
// platform audio sink calls this each time it needs more data.
func (a *APU) DrainSamples() []float32 {
	out := a.samples
	a.samples = nil
	return out
}

// SetSampleRate changes the host output sample rate (platform passes
// through ebiten/audio's configured rate).
func (a *APU) SetSampleRate(hz int) { a.sampleRate = hz }

// IRQPending reports whether the frame sequencer or DMC currently has an
// unacknowledged IRQ outstanding; the scheduler reads it every step to
// drive the CPU's IRQ line.
func (a *APU) IRQPending() bool { return a.frameIRQ || a.dmc.irqFlag }
