package cpu6502

// Addressing mode resolvers. Each returns the effective address; extra
// signals whether a page boundary was crossed, which callers turn into an
// extra cycle for reads (unconditionally charged for writes and
// read-modify-write instructions).

func (c *CPU) fetch8() uint8 {
	v := c.Bus.Read(c.PC)
	c.PC++
	return v
}

func (c *CPU) fetch16() uint16 {
	lo := uint16(c.fetch8())
	hi := uint16(c.fetch8())
	return hi<<8 | lo
}

func samePage(a, b uint16) bool { return a&0xff00 == b&0xff00 }

func (c *CPU) addrImm() uint16 {
	a := c.PC
	c.PC++
	return a
}

func (c *CPU) addrZP() uint16 {
	return uint16(c.fetch8())
}

func (c *CPU) addrZPX() uint16 {
	return uint16(c.fetch8() + c.X)
}

func (c *CPU) addrZPY() uint16 {
	return uint16(c.fetch8() + c.Y)
}

func (c *CPU) addrAbs() uint16 {
	return c.fetch16()
}

// addrAbsX/addrAbsY return the effective address and whether the +1 page
// cross cycle applies. force makes it apply unconditionally (stores and
// read-modify-write instructions always pay it).
func (c *CPU) addrAbsX(force bool) (uint16, bool) {
	base := c.fetch16()
	eff := base + uint16(c.X)
	return eff, force || !samePage(base, eff)
}

func (c *CPU) addrAbsY(force bool) (uint16, bool) {
	base := c.fetch16()
	eff := base + uint16(c.Y)
	return eff, force || !samePage(base, eff)
}

// addrInd implements JMP (ind)'s page-wrap bug: if the pointer's low byte is
// $FF, the high byte is fetched from the start of the same page rather than
// the next page.
func (c *CPU) addrInd() uint16 {
	ptr := c.fetch16()
	lo := c.Bus.Read(ptr)
	hiAddr := (ptr & 0xff00) | ((ptr + 1) & 0x00ff)
	hi := c.Bus.Read(hiAddr)
	return uint16(hi)<<8 | uint16(lo)
}

func (c *CPU) addrIndX() uint16 {
	zp := c.fetch8() + c.X
	lo := uint16(c.Bus.Read(uint16(zp)))
	hi := uint16(c.Bus.Read(uint16(zp + 1)))
	return hi<<8 | lo
}

func (c *CPU) addrIndY(force bool) (uint16, bool) {
	zp := c.fetch8()
	lo := uint16(c.Bus.Read(uint16(zp)))
	hi := uint16(c.Bus.Read(uint16(zp + 1)))
	base := hi<<8 | lo
	eff := base + uint16(c.Y)
	return eff, force || !samePage(base, eff)
}

func (c *CPU) addrRel() uint16 {
	off := int8(c.fetch8())
	return uint16(int32(c.PC) + int32(off))
}
