package mos6502

// instrCycles is the base cycle count for every opcode, documented and
// unofficial. Read/indexed-addressing instructions (ADC, AND, CMP, EOR,
// LDA, LDX, LDY, ORA, SBC, LAX and friends) take one extra cycle when
// their absolute,X / absolute,Y / (zp),Y operand crosses a page
// boundary; that extra cycle is added explicitly in execute, it is not
// baked into this table. Read-modify-write and store instructions
// already reflect their worst-case timing here, so they never add a
// page-cross bonus on top.
var instrCycles = [256]uint8{
	7, 6, 2, 8, 3, 3, 5, 5, 3, 2, 2, 2, 4, 4, 6, 6,
	2, 5, 2, 8, 4, 4, 6, 6, 2, 4, 2, 7, 4, 4, 7, 7,
	6, 6, 2, 8, 3, 3, 5, 5, 4, 2, 2, 2, 4, 4, 6, 6,
	2, 5, 2, 8, 4, 4, 6, 6, 2, 4, 2, 7, 4, 4, 7, 7,
	6, 6, 2, 8, 3, 3, 5, 5, 3, 2, 2, 2, 3, 4, 6, 6,
	2, 5, 2, 8, 4, 4, 6, 6, 2, 4, 2, 7, 4, 4, 7, 7,
	6, 6, 2, 8, 3, 3, 5, 5, 4, 2, 2, 2, 5, 4, 6, 6,
	2, 5, 2, 8, 4, 4, 6, 6, 2, 4, 2, 7, 4, 4, 7, 7,
	2, 6, 2, 6, 3, 3, 3, 3, 2, 2, 2, 2, 4, 4, 4, 4,
	2, 6, 2, 6, 4, 4, 4, 4, 2, 5, 2, 5, 5, 5, 5, 5,
	2, 6, 2, 6, 3, 3, 3, 3, 2, 2, 2, 2, 4, 4, 4, 4,
	2, 5, 2, 5, 4, 4, 4, 4, 2, 4, 2, 4, 4, 4, 4, 4,
	2, 6, 2, 8, 3, 3, 5, 5, 2, 2, 2, 2, 4, 4, 6, 6,
	2, 5, 2, 8, 4, 4, 6, 6, 2, 4, 2, 7, 4, 4, 7, 7,
	2, 6, 2, 8, 3, 3, 5, 5, 2, 2, 2, 2, 4, 4, 6, 6,
	2, 5, 2, 8, 4, 4, 6, 6, 2, 4, 2, 7, 4, 4, 7, 7,
}

// execute decodes and runs opcode, advancing the CPU's register and
// memory state, and charges c.Cycles via addCycles. PC has already been
// advanced past the opcode byte by the caller.
func (c *CPU) execute(opcode uint8) {
	cycles := int(instrCycles[opcode])

	switch opcode {

	// --- ADC ---
	case 0x69:
		c.adc(c.read(c.addrImmediate()))
	case 0x65:
		c.adc(c.read(c.addrZeroPage()))
	case 0x75:
		c.adc(c.read(c.addrZeroPageX()))
	case 0x6D:
		c.adc(c.read(c.addrAbsolute()))
	case 0x7D:
		addr, cr := c.addrAbsoluteX()
		c.adc(c.read(addr))
		if cr {
			cycles++
		}
	case 0x79:
		addr, cr := c.addrAbsoluteY()
		c.adc(c.read(addr))
		if cr {
			cycles++
		}
	case 0x61:
		c.adc(c.read(c.addrIndirectX()))
	case 0x71:
		addr, cr := c.addrIndirectY()
		c.adc(c.read(addr))
		if cr {
			cycles++
		}

	// --- AND ---
	case 0x29:
		c.and(c.read(c.addrImmediate()))
	case 0x25:
		c.and(c.read(c.addrZeroPage()))
	case 0x35:
		c.and(c.read(c.addrZeroPageX()))
	case 0x2D:
		c.and(c.read(c.addrAbsolute()))
	case 0x3D:
		addr, cr := c.addrAbsoluteX()
		c.and(c.read(addr))
		if cr {
			cycles++
		}
	case 0x39:
		addr, cr := c.addrAbsoluteY()
		c.and(c.read(addr))
		if cr {
			cycles++
		}
	case 0x21:
		c.and(c.read(c.addrIndirectX()))
	case 0x31:
		addr, cr := c.addrIndirectY()
		c.and(c.read(addr))
		if cr {
			cycles++
		}

	// --- ASL ---
	case 0x0A:
		c.A = c.asl(c.A)
	case 0x06:
		addr := c.addrZeroPage()
		c.write(addr, c.asl(c.read(addr)))
	case 0x16:
		addr := c.addrZeroPageX()
		c.write(addr, c.asl(c.read(addr)))
	case 0x0E:
		addr := c.addrAbsolute()
		c.write(addr, c.asl(c.read(addr)))
	case 0x1E:
		addr, _ := c.addrAbsoluteX()
		c.write(addr, c.asl(c.read(addr)))

	// --- branches ---
	case 0x90:
		cycles = c.branch(c.Status&flagC == 0)
	case 0xB0:
		cycles = c.branch(c.Status&flagC != 0)
	case 0xF0:
		cycles = c.branch(c.Status&flagZ != 0)
	case 0x30:
		cycles = c.branch(c.Status&flagN != 0)
	case 0xD0:
		cycles = c.branch(c.Status&flagZ == 0)
	case 0x10:
		cycles = c.branch(c.Status&flagN == 0)
	case 0x50:
		cycles = c.branch(c.Status&flagV == 0)
	case 0x70:
		cycles = c.branch(c.Status&flagV != 0)

	// --- BIT ---
	case 0x24:
		c.bit(c.read(c.addrZeroPage()))
	case 0x2C:
		c.bit(c.read(c.addrAbsolute()))

	// --- BRK ---
	case 0x00:
		c.PC++ // the padding byte after BRK's opcode
		c.push16(c.PC)
		c.push8(c.Status | flagB | flagU)
		c.Status |= flagI
		c.inhibit = true
		c.latencyArmed = false
		vector := uint16(vectorIRQ)
		if c.pending {
			vector = vectorNMI
			c.pending = false
		}
		c.PC = c.read16(vector)

	// --- flag clear/set ---
	case 0x18:
		c.setFlag(flagC, false)
	case 0xD8:
		c.setFlag(flagD, false)
	case 0x58:
		c.setFlag(flagI, false)
	case 0xB8:
		c.setFlag(flagV, false)
	case 0x38:
		c.setFlag(flagC, true)
	case 0xF8:
		c.setFlag(flagD, true)
	case 0x78:
		c.setFlag(flagI, true)

	// --- CMP/CPX/CPY ---
	case 0xC9:
		c.cmp(c.A, c.read(c.addrImmediate()))
	case 0xC5:
		c.cmp(c.A, c.read(c.addrZeroPage()))
	case 0xD5:
		c.cmp(c.A, c.read(c.addrZeroPageX()))
	case 0xCD:
		c.cmp(c.A, c.read(c.addrAbsolute()))
	case 0xDD:
		addr, cr := c.addrAbsoluteX()
		c.cmp(c.A, c.read(addr))
		if cr {
			cycles++
		}
	case 0xD9:
		addr, cr := c.addrAbsoluteY()
		c.cmp(c.A, c.read(addr))
		if cr {
			cycles++
		}
	case 0xC1:
		c.cmp(c.A, c.read(c.addrIndirectX()))
	case 0xD1:
		addr, cr := c.addrIndirectY()
		c.cmp(c.A, c.read(addr))
		if cr {
			cycles++
		}
	case 0xE0:
		c.cmp(c.X, c.read(c.addrImmediate()))
	case 0xE4:
		c.cmp(c.X, c.read(c.addrZeroPage()))
	case 0xEC:
		c.cmp(c.X, c.read(c.addrAbsolute()))
	case 0xC0:
		c.cmp(c.Y, c.read(c.addrImmediate()))
	case 0xC4:
		c.cmp(c.Y, c.read(c.addrZeroPage()))
	case 0xCC:
		c.cmp(c.Y, c.read(c.addrAbsolute()))

	// --- DEC/DEX/DEY ---
	case 0xC6:
		addr := c.addrZeroPage()
		c.write(addr, c.dec(c.read(addr)))
	case 0xD6:
		addr := c.addrZeroPageX()
		c.write(addr, c.dec(c.read(addr)))
	case 0xCE:
		addr := c.addrAbsolute()
		c.write(addr, c.dec(c.read(addr)))
	case 0xDE:
		addr, _ := c.addrAbsoluteX()
		c.write(addr, c.dec(c.read(addr)))
	case 0xCA:
		c.X = c.dec(c.X)
	case 0x88:
		c.Y = c.dec(c.Y)

	// --- EOR ---
	case 0x49:
		c.eor(c.read(c.addrImmediate()))
	case 0x45:
		c.eor(c.read(c.addrZeroPage()))
	case 0x55:
		c.eor(c.read(c.addrZeroPageX()))
	case 0x4D:
		c.eor(c.read(c.addrAbsolute()))
	case 0x5D:
		addr, cr := c.addrAbsoluteX()
		c.eor(c.read(addr))
		if cr {
			cycles++
		}
	case 0x59:
		addr, cr := c.addrAbsoluteY()
		c.eor(c.read(addr))
		if cr {
			cycles++
		}
	case 0x41:
		c.eor(c.read(c.addrIndirectX()))
	case 0x51:
		addr, cr := c.addrIndirectY()
		c.eor(c.read(addr))
		if cr {
			cycles++
		}

	// --- INC/INX/INY ---
	case 0xE6:
		addr := c.addrZeroPage()
		c.write(addr, c.inc(c.read(addr)))
	case 0xF6:
		addr := c.addrZeroPageX()
		c.write(addr, c.inc(c.read(addr)))
	case 0xEE:
		addr := c.addrAbsolute()
		c.write(addr, c.inc(c.read(addr)))
	case 0xFE:
		addr, _ := c.addrAbsoluteX()
		c.write(addr, c.inc(c.read(addr)))
	case 0xE8:
		c.X = c.inc(c.X)
	case 0xC8:
		c.Y = c.inc(c.Y)

	// --- JMP/JSR/RTS/RTI ---
	case 0x4C:
		c.PC = c.addrAbsolute()
	case 0x6C:
		ptr := c.addrAbsolute()
		c.PC = c.read16bug(ptr)
	case 0x20:
		target := c.addrAbsolute()
		c.push16(c.PC - 1)
		c.PC = target
	case 0x60:
		c.PC = c.pop16() + 1
	case 0x40:
		c.WriteStatusByte(c.pop8())
		c.inhibit = c.Status&flagI != 0
		c.latencyArmed = false
		c.PC = c.pop16()

	// --- LDA/LDX/LDY ---
	case 0xA9:
		c.A = c.read(c.addrImmediate())
		c.setZN(c.A)
	case 0xA5:
		c.A = c.read(c.addrZeroPage())
		c.setZN(c.A)
	case 0xB5:
		c.A = c.read(c.addrZeroPageX())
		c.setZN(c.A)
	case 0xAD:
		c.A = c.read(c.addrAbsolute())
		c.setZN(c.A)
	case 0xBD:
		addr, cr := c.addrAbsoluteX()
		c.A = c.read(addr)
		c.setZN(c.A)
		if cr {
			cycles++
		}
	case 0xB9:
		addr, cr := c.addrAbsoluteY()
		c.A = c.read(addr)
		c.setZN(c.A)
		if cr {
			cycles++
		}
	case 0xA1:
		c.A = c.read(c.addrIndirectX())
		c.setZN(c.A)
	case 0xB1:
		addr, cr := c.addrIndirectY()
		c.A = c.read(addr)
		c.setZN(c.A)
		if cr {
			cycles++
		}
	case 0xA2:
		c.X = c.read(c.addrImmediate())
		c.setZN(c.X)
	case 0xA6:
		c.X = c.read(c.addrZeroPage())
		c.setZN(c.X)
	case 0xB6:
		c.X = c.read(c.addrZeroPageY())
		c.setZN(c.X)
	case 0xAE:
		c.X = c.read(c.addrAbsolute())
		c.setZN(c.X)
	case 0xBE:
		addr, cr := c.addrAbsoluteY()
		c.X = c.read(addr)
		c.setZN(c.X)
		if cr {
			cycles++
		}
	case 0xA0:
		c.Y = c.read(c.addrImmediate())
		c.setZN(c.Y)
	case 0xA4:
		c.Y = c.read(c.addrZeroPage())
		c.setZN(c.Y)
	case 0xB4:
		c.Y = c.read(c.addrZeroPageX())
		c.setZN(c.Y)
	case 0xAC:
		c.Y = c.read(c.addrAbsolute())
		c.setZN(c.Y)
	case 0xBC:
		addr, cr := c.addrAbsoluteX()
		c.Y = c.read(addr)
		c.setZN(c.Y)
		if cr {
			cycles++
		}

	// --- LSR ---
	case 0x4A:
		c.A = c.lsr(c.A)
	case 0x46:
		addr := c.addrZeroPage()
		c.write(addr, c.lsr(c.read(addr)))
	case 0x56:
		addr := c.addrZeroPageX()
		c.write(addr, c.lsr(c.read(addr)))
	case 0x4E:
		addr := c.addrAbsolute()
		c.write(addr, c.lsr(c.read(addr)))
	case 0x5E:
		addr, _ := c.addrAbsoluteX()
		c.write(addr, c.lsr(c.read(addr)))

	// --- NOP (official + unofficial, all addressing forms) ---
	case 0xEA, 0x1A, 0x3A, 0x5A, 0x7A, 0xDA, 0xFA:
		// implied, no operand
	case 0x80, 0x82, 0x89, 0xC2, 0xE2:
		c.addrImmediate()
	case 0x04, 0x44, 0x64:
		c.addrZeroPage()
	case 0x14, 0x34, 0x54, 0x74, 0xD4, 0xF4:
		c.addrZeroPageX()
	case 0x0C:
		c.addrAbsolute()
	case 0x1C, 0x3C, 0x5C, 0x7C, 0xDC, 0xFC:
		_, cr := c.addrAbsoluteX()
		if cr {
			cycles++
		}

	// --- ORA ---
	case 0x09:
		c.ora(c.read(c.addrImmediate()))
	case 0x05:
		c.ora(c.read(c.addrZeroPage()))
	case 0x15:
		c.ora(c.read(c.addrZeroPageX()))
	case 0x0D:
		c.ora(c.read(c.addrAbsolute()))
	case 0x1D:
		addr, cr := c.addrAbsoluteX()
		c.ora(c.read(addr))
		if cr {
			cycles++
		}
	case 0x19:
		addr, cr := c.addrAbsoluteY()
		c.ora(c.read(addr))
		if cr {
			cycles++
		}
	case 0x01:
		c.ora(c.read(c.addrIndirectX()))
	case 0x11:
		addr, cr := c.addrIndirectY()
		c.ora(c.read(addr))
		if cr {
			cycles++
		}

	// --- stack ---
	case 0x48:
		c.push8(c.A)
	case 0x08:
		c.push8(c.Status | flagB | flagU)
	case 0x68:
		c.A = c.pop8()
		c.setZN(c.A)
	case 0x28:
		// inhibit is left alone here: StepOneInstruction applies the new
		// I bit one instruction later.
		c.Status = (c.pop8() &^ (flagB | flagU)) | flagU

	// --- ROL/ROR ---
	case 0x2A:
		c.A = c.rol(c.A)
	case 0x26:
		addr := c.addrZeroPage()
		c.write(addr, c.rol(c.read(addr)))
	case 0x36:
		addr := c.addrZeroPageX()
		c.write(addr, c.rol(c.read(addr)))
	case 0x2E:
		addr := c.addrAbsolute()
		c.write(addr, c.rol(c.read(addr)))
	case 0x3E:
		addr, _ := c.addrAbsoluteX()
		c.write(addr, c.rol(c.read(addr)))
	case 0x6A:
		c.A = c.ror(c.A)
	case 0x66:
		addr := c.addrZeroPage()
		c.write(addr, c.ror(c.read(addr)))
	case 0x76:
		addr := c.addrZeroPageX()
		c.write(addr, c.ror(c.read(addr)))
	case 0x6E:
		addr := c.addrAbsolute()
		c.write(addr, c.ror(c.read(addr)))
	case 0x7E:
		addr, _ := c.addrAbsoluteX()
		c.write(addr, c.ror(c.read(addr)))

	// --- SBC ---
	case 0xE9, 0xEB:
		c.sbc(c.read(c.addrImmediate()))
	case 0xE5:
		c.sbc(c.read(c.addrZeroPage()))
	case 0xF5:
		c.sbc(c.read(c.addrZeroPageX()))
	case 0xED:
		c.sbc(c.read(c.addrAbsolute()))
	case 0xFD:
		addr, cr := c.addrAbsoluteX()
		c.sbc(c.read(addr))
		if cr {
			cycles++
		}
	case 0xF9:
		addr, cr := c.addrAbsoluteY()
		c.sbc(c.read(addr))
		if cr {
			cycles++
		}
	case 0xE1:
		c.sbc(c.read(c.addrIndirectX()))
	case 0xF1:
		addr, cr := c.addrIndirectY()
		c.sbc(c.read(addr))
		if cr {
			cycles++
		}

	// --- STA/STX/STY ---
	case 0x85:
		c.write(c.addrZeroPage(), c.A)
	case 0x95:
		c.write(c.addrZeroPageX(), c.A)
	case 0x8D:
		c.write(c.addrAbsolute(), c.A)
	case 0x9D:
		addr, _ := c.addrAbsoluteX()
		c.write(addr, c.A)
	case 0x99:
		addr, _ := c.addrAbsoluteY()
		c.write(addr, c.A)
	case 0x81:
		c.write(c.addrIndirectX(), c.A)
	case 0x91:
		addr, _ := c.addrIndirectY()
		c.write(addr, c.A)
	case 0x86:
		c.write(c.addrZeroPage(), c.X)
	case 0x96:
		c.write(c.addrZeroPageY(), c.X)
	case 0x8E:
		c.write(c.addrAbsolute(), c.X)
	case 0x84:
		c.write(c.addrZeroPage(), c.Y)
	case 0x94:
		c.write(c.addrZeroPageX(), c.Y)
	case 0x8C:
		c.write(c.addrAbsolute(), c.Y)

	// --- register transfers ---
	case 0xAA:
		c.X = c.A
		c.setZN(c.X)
	case 0xA8:
		c.Y = c.A
		c.setZN(c.Y)
	case 0xBA:
		c.X = c.SP
		c.setZN(c.X)
	case 0x8A:
		c.A = c.X
		c.setZN(c.A)
	case 0x9A:
		c.SP = c.X
	case 0x98:
		c.A = c.Y
		c.setZN(c.A)

	// --- unofficial: LAX ---
	case 0xA7:
		c.lax(c.read(c.addrZeroPage()))
	case 0xB7:
		c.lax(c.read(c.addrZeroPageY()))
	case 0xAF:
		c.lax(c.read(c.addrAbsolute()))
	case 0xBF:
		addr, cr := c.addrAbsoluteY()
		c.lax(c.read(addr))
		if cr {
			cycles++
		}
	case 0xA3:
		c.lax(c.read(c.addrIndirectX()))
	case 0xB3:
		addr, cr := c.addrIndirectY()
		c.lax(c.read(addr))
		if cr {
			cycles++
		}

	// --- unofficial: SAX ---
	case 0x87:
		c.write(c.addrZeroPage(), c.A&c.X)
	case 0x97:
		c.write(c.addrZeroPageY(), c.A&c.X)
	case 0x8F:
		c.write(c.addrAbsolute(), c.A&c.X)
	case 0x83:
		c.write(c.addrIndirectX(), c.A&c.X)

	// --- unofficial: DCP (DEC then CMP) ---
	case 0xC7:
		addr := c.addrZeroPage()
		v := c.dec(c.read(addr))
		c.write(addr, v)
		c.cmp(c.A, v)
	case 0xD7:
		addr := c.addrZeroPageX()
		v := c.dec(c.read(addr))
		c.write(addr, v)
		c.cmp(c.A, v)
	case 0xCF:
		addr := c.addrAbsolute()
		v := c.dec(c.read(addr))
		c.write(addr, v)
		c.cmp(c.A, v)
	case 0xDF:
		addr, _ := c.addrAbsoluteX()
		v := c.dec(c.read(addr))
		c.write(addr, v)
		c.cmp(c.A, v)
	case 0xDB:
		addr, _ := c.addrAbsoluteY()
		v := c.dec(c.read(addr))
		c.write(addr, v)
		c.cmp(c.A, v)
	case 0xC3:
		addr := c.addrIndirectX()
		v := c.dec(c.read(addr))
		c.write(addr, v)
		c.cmp(c.A, v)
	case 0xD3:
		addr, _ := c.addrIndirectY()
		v := c.dec(c.read(addr))
		c.write(addr, v)
		c.cmp(c.A, v)

	// --- unofficial: ISB/ISC (INC then SBC) ---
	case 0xE7:
		addr := c.addrZeroPage()
		v := c.inc(c.read(addr))
		c.write(addr, v)
		c.sbc(v)
	case 0xF7:
		addr := c.addrZeroPageX()
		v := c.inc(c.read(addr))
		c.write(addr, v)
		c.sbc(v)
	case 0xEF:
		addr := c.addrAbsolute()
		v := c.inc(c.read(addr))
		c.write(addr, v)
		c.sbc(v)
	case 0xFF:
		addr, _ := c.addrAbsoluteX()
		v := c.inc(c.read(addr))
		c.write(addr, v)
		c.sbc(v)
	case 0xFB:
		addr, _ := c.addrAbsoluteY()
		v := c.inc(c.read(addr))
		c.write(addr, v)
		c.sbc(v)
	case 0xE3:
		addr := c.addrIndirectX()
		v := c.inc(c.read(addr))
		c.write(addr, v)
		c.sbc(v)
	case 0xF3:
		addr, _ := c.addrIndirectY()
		v := c.inc(c.read(addr))
		c.write(addr, v)
		c.sbc(v)

	// --- unofficial: SLO (ASL then ORA) ---
	case 0x07:
		addr := c.addrZeroPage()
		v := c.asl(c.read(addr))
		c.write(addr, v)
		c.ora(v)
	case 0x17:
		addr := c.addrZeroPageX()
		v := c.asl(c.read(addr))
		c.write(addr, v)
		c.ora(v)
	case 0x0F:
		addr := c.addrAbsolute()
		v := c.asl(c.read(addr))
		c.write(addr, v)
		c.ora(v)
	case 0x1F:
		addr, _ := c.addrAbsoluteX()
		v := c.asl(c.read(addr))
		c.write(addr, v)
		c.ora(v)
	case 0x1B:
		addr, _ := c.addrAbsoluteY()
		v := c.asl(c.read(addr))
		c.write(addr, v)
		c.ora(v)
	case 0x03:
		addr := c.addrIndirectX()
		v := c.asl(c.read(addr))
		c.write(addr, v)
		c.ora(v)
	case 0x13:
		addr, _ := c.addrIndirectY()
		v := c.asl(c.read(addr))
		c.write(addr, v)
		c.ora(v)

	// --- unofficial: RLA (ROL then AND) ---
	case 0x27:
		addr := c.addrZeroPage()
		v := c.rol(c.read(addr))
		c.write(addr, v)
		c.and(v)
	case 0x37:
		addr := c.addrZeroPageX()
		v := c.rol(c.read(addr))
		c.write(addr, v)
		c.and(v)
	case 0x2F:
		addr := c.addrAbsolute()
		v := c.rol(c.read(addr))
		c.write(addr, v)
		c.and(v)
	case 0x3F:
		addr, _ := c.addrAbsoluteX()
		v := c.rol(c.read(addr))
		c.write(addr, v)
		c.and(v)
	case 0x3B:
		addr, _ := c.addrAbsoluteY()
		v := c.rol(c.read(addr))
		c.write(addr, v)
		c.and(v)
	case 0x23:
		addr := c.addrIndirectX()
		v := c.rol(c.read(addr))
		c.write(addr, v)
		c.and(v)
	case 0x33:
		addr, _ := c.addrIndirectY()
		v := c.rol(c.read(addr))
		c.write(addr, v)
		c.and(v)

	// --- unofficial: SRE (LSR then EOR) ---
	case 0x47:
		addr := c.addrZeroPage()
		v := c.lsr(c.read(addr))
		c.write(addr, v)
		c.eor(v)
	case 0x57:
		addr := c.addrZeroPageX()
		v := c.lsr(c.read(addr))
		c.write(addr, v)
		c.eor(v)
	case 0x4F:
		addr := c.addrAbsolute()
		v := c.lsr(c.read(addr))
		c.write(addr, v)
		c.eor(v)
	case 0x5F:
		addr, _ := c.addrAbsoluteX()
		v := c.lsr(c.read(addr))
		c.write(addr, v)
		c.eor(v)
	case 0x5B:
		addr, _ := c.addrAbsoluteY()
		v := c.lsr(c.read(addr))
		c.write(addr, v)
		c.eor(v)
	case 0x43:
		addr := c.addrIndirectX()
		v := c.lsr(c.read(addr))
		c.write(addr, v)
		c.eor(v)
	case 0x53:
		addr, _ := c.addrIndirectY()
		v := c.lsr(c.read(addr))
		c.write(addr, v)
		c.eor(v)

	// --- unofficial: RRA (ROR then ADC) ---
	case 0x67:
		addr := c.addrZeroPage()
		v := c.ror(c.read(addr))
		c.write(addr, v)
		c.adc(v)
	case 0x77:
		addr := c.addrZeroPageX()
		v := c.ror(c.read(addr))
		c.write(addr, v)
		c.adc(v)
	case 0x6F:
		addr := c.addrAbsolute()
		v := c.ror(c.read(addr))
		c.write(addr, v)
		c.adc(v)
	case 0x7F:
		addr, _ := c.addrAbsoluteX()
		v := c.ror(c.read(addr))
		c.write(addr, v)
		c.adc(v)
	case 0x7B:
		addr, _ := c.addrAbsoluteY()
		v := c.ror(c.read(addr))
		c.write(addr, v)
		c.adc(v)
	case 0x63:
		addr := c.addrIndirectX()
		v := c.ror(c.read(addr))
		c.write(addr, v)
		c.adc(v)
	case 0x73:
		addr, _ := c.addrIndirectY()
		v := c.ror(c.read(addr))
		c.write(addr, v)
		c.adc(v)

	// --- unofficial: ANC, ALR, ARR, AXS/SBX ---
	case 0x0B, 0x2B:
		c.anc(c.read(c.addrImmediate()))
	case 0x4B:
		c.alr(c.read(c.addrImmediate()))
	case 0x6B:
		c.arr(c.read(c.addrImmediate()))
	case 0xCB:
		c.axsSBX(c.read(c.addrImmediate()))

	// --- unofficial, highly unstable on real silicon: LAS/TAS/SHX/SHY/SHA/XAA ---
	// Modeled per the commonly documented (if not universally agreed)
	// behavior; no commercial game relies on these being bit-exact.
	case 0xBB:
		addr, cr := c.addrAbsoluteY()
		v := c.read(addr) & c.SP
		c.A, c.X, c.SP = v, v, v
		c.setZN(v)
		if cr {
			cycles++
		}
	case 0x9B:
		c.SP = c.A & c.X
		addr, _ := c.addrAbsoluteY()
		c.write(addr, c.SP&uint8(addr>>8+1))
	case 0x9E:
		addr, _ := c.addrAbsoluteY()
		c.write(addr, c.X&uint8(addr>>8+1))
	case 0x9C:
		addr, _ := c.addrAbsoluteX()
		c.write(addr, c.Y&uint8(addr>>8+1))
	case 0x9F:
		addr, _ := c.addrAbsoluteY()
		c.write(addr, c.A&c.X&uint8(addr>>8+1))
	case 0x93:
		addr, _ := c.addrIndirectY()
		c.write(addr, c.A&c.X&uint8(addr>>8+1))
	case 0x8B:
		v := c.read(c.addrImmediate())
		c.A = (c.A | 0xEE) & c.X & v
		c.setZN(c.A)
	case 0xAB:
		v := c.read(c.addrImmediate())
		c.A = (c.A | 0xEE) & v
		c.X = c.A
		c.setZN(c.A)

	// --- KIL/JAM: halt the CPU ---
	case 0x02, 0x12, 0x22, 0x32, 0x42, 0x52, 0x62, 0x72, 0x92, 0xB2, 0xD2, 0xF2:
		c.jammed = true

	default:
		// Every byte value is covered above; unreachable.
		c.jammed = true
	}

	c.addCycles(cycles)
}
