package mos6502

func pageCrossed(a, b uint16) bool { return a&0xFF00 != b&0xFF00 }

func (c *CPU) addrImmediate() uint16 {
	addr := c.PC
	c.PC++
	return addr
}

func (c *CPU) addrZeroPage() uint16 {
	addr := uint16(c.read(c.PC))
	c.PC++
	return addr
}

func (c *CPU) addrZeroPageX() uint16 {
	addr := uint16(uint8(c.read(c.PC) + c.X))
	c.PC++
	return addr
}

func (c *CPU) addrZeroPageY() uint16 {
	addr := uint16(uint8(c.read(c.PC) + c.Y))
	c.PC++
	return addr
}

func (c *CPU) addrAbsolute() uint16 {
	addr := c.read16(c.PC)
	c.PC += 2
	return addr
}

func (c *CPU) addrAbsoluteX() (uint16, bool) {
	base := c.read16(c.PC)
	c.PC += 2
	addr := base + uint16(c.X)
	return addr, pageCrossed(base, addr)
}

func (c *CPU) addrAbsoluteY() (uint16, bool) {
	base := c.read16(c.PC)
	c.PC += 2
	addr := base + uint16(c.Y)
	return addr, pageCrossed(base, addr)
}

func (c *CPU) addrIndirectX() uint16 {
	ptr := c.read(c.PC) + c.X
	c.PC++
	lo := uint16(c.read(uint16(ptr)))
	hi := uint16(c.read(uint16(ptr + 1)))
	return lo | hi<<8
}

func (c *CPU) addrIndirectY() (uint16, bool) {
	ptr := c.read(c.PC)
	c.PC++
	lo := uint16(c.read(uint16(ptr)))
	hi := uint16(c.read(uint16(ptr + 1)))
	base := lo | hi<<8
	addr := base + uint16(c.Y)
	return addr, pageCrossed(base, addr)
}

// addrRelative returns the branch target for a relative-mode opcode;
// the caller decides whether the branch is taken and accounts cycles.
func (c *CPU) addrRelative() uint16 {
	off := int8(c.read(c.PC))
	c.PC++
	return uint16(int32(c.PC) + int32(off))
}
