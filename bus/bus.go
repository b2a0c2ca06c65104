// Package bus implements the NES CPU memory map: RAM mirroring, PPU/APU
// register windows, OAM DMA, controller shift registers, the cartridge
// port, and an open-bus latch, per spec.md §4.5.
package bus

import (
	"github.com/bdwalton/gones2/apu"
	"github.com/bdwalton/gones2/cartridge"
	"github.com/bdwalton/gones2/mos6502"
	"github.com/bdwalton/gones2/ppu"
)

// Bus is the CPU's address-space hub. It also satisfies ppu.Bus (CHR/
// nametable access and NMI delivery) and apu.Mem (DMC sample fetches),
// so the same struct wires every component together without a separate
// adapter type.
type Bus struct {
	RAM [0x0800]uint8

	CPU  *mos6502.CPU
	PPU  *ppu.PPU
	APU  *apu.APU
	Cart *cartridge.Cartridge

	Controller1, Controller2 Controller

	openBus uint8
}

// New returns an unwired Bus. The nes package assembles CPU/PPU/APU/
// Cart against it in the order each constructor requires.
func New() *Bus { return &Bus{} }

// Read services a CPU memory read.
func (b *Bus) Read(addr uint16) uint8 {
	var v uint8
	switch {
	case addr < 0x2000:
		v = b.RAM[addr&0x07FF]
	case addr < 0x4000:
		v = b.PPU.ReadRegister(addr)
	case addr == 0x4015:
		v = b.APU.ReadStatus()
	case addr == 0x4016:
		v = b.Controller1.Read() | b.openBus&0xE0
	case addr == 0x4017:
		v = b.Controller2.Read() | b.openBus&0xE0
	case addr < 0x4020:
		v = b.openBus
	default:
		v = b.Cart.CPURead(addr)
	}
	b.openBus = v
	return v
}

// Write services a CPU memory write.
func (b *Bus) Write(addr uint16, val uint8) {
	b.openBus = val
	switch {
	case addr < 0x2000:
		b.RAM[addr&0x07FF] = val
	case addr < 0x4000:
		b.PPU.WriteRegister(addr, val)
	case addr == 0x4014:
		b.oamDMA(val)
	case addr == 0x4016:
		strobe := val&0x01 != 0
		b.Controller1.Strobe(strobe)
		b.Controller2.Strobe(strobe)
	case addr < 0x4018:
		b.APU.WriteRegister(addr, val)
	case addr < 0x4020:
		// APU/IO test-mode registers, not implemented on retail hardware.
	default:
		b.Cart.CPUWrite(addr, val)
	}
}

// oamDMA copies 256 bytes starting at page*0x100 into PPU OAM and stalls
// the CPU 513 cycles (514 if the DMA started on an odd CPU cycle).
func (b *Bus) oamDMA(page uint8) {
	base := uint16(page) << 8
	for i := 0; i < 256; i++ {
		b.PPU.WriteOAMByte(b.Read(base + uint16(i)))
	}
	stall := 513
	if b.CPU.Cycles%2 == 1 {
		stall = 514
	}
	b.CPU.AddDMAStall(stall)
}

// PPURead/PPUWrite/Mirroring/TriggerNMI implement ppu.Bus.
func (b *Bus) PPURead(addr uint16, cpuCycle uint64) uint8 { return b.Cart.PPURead(addr, cpuCycle) }
func (b *Bus) PPUWrite(addr uint16, val uint8)            { b.Cart.PPUWrite(addr, val) }
func (b *Bus) Mirroring() uint8                           { return b.Cart.Mirroring() }
func (b *Bus) TriggerNMI()                                { b.CPU.TriggerNMI() }

// IRQPending reports whether the cartridge mapper (MMC3's scanline
// counter) currently wants an interrupt. The nes package ORs this
// together with apu.IRQPending each CPU step to drive the CPU's single
// level-sensitive IRQ line, since neither source may unilaterally
// release a line the other still asserts.
func (b *Bus) IRQPending() bool { return b.Cart.IRQPending() }

// BatteryRAM exposes the cartridge's save RAM for host-side persistence.
func (b *Bus) BatteryRAM() []byte { return b.Cart.BatteryRAM() }
