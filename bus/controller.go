package bus

// Controller models one NES controller's 8-bit parallel-to-serial shift
// register: $4016 bit0 strobes both controllers simultaneously, and
// while strobe is high the register continuously reloads from the
// live button state instead of shifting.
type Controller struct {
	state  uint8
	shift  uint8
	strobe bool
}

// SetState sets the live button mask (bit0=A, 1=B, 2=Select, 3=Start,
// 4=Up, 5=Down, 6=Left, 7=Right), read by the platform layer from its
// input source every frame.
func (c *Controller) SetState(mask uint8) { c.state = mask }

// Strobe implements the $4016 write side effect.
func (c *Controller) Strobe(high bool) {
	c.strobe = high
	if high {
		c.shift = c.state
	}
}

// Read pops the next bit off the shift register. While strobe is held
// high every read returns the A-button bit; with strobe low, reads past
// the eighth return 1s, matching the real shift register's behavior.
func (c *Controller) Read() uint8 {
	if c.strobe {
		c.shift = c.state
	}
	bit := c.shift & 0x01
	c.shift = c.shift>>1 | 0x80
	return bit
}
