package cpu6502

// The 6502's undocumented opcodes are a side effect of its decode PLA, not
// a deliberate instruction set, but a stable subset of them behaves
// identically across all real NMOS parts and is exercised by real 1541
// ROM code and by common test suites. Everything outside that subset (SHA/SHX/SHY/TAS/LAS/
// ANE/LXA, whose behaviour depends on internal bus capacitance and varies
// per chip) is left to fall through to the JAM default instead of guessing.
func registerIllegal() {
	iop(0x07, "SLO", mZP, 5, slo)
	iop(0x17, "SLO", mZPX, 6, slo)
	iop(0x0F, "SLO", mAbs, 6, slo)
	iop(0x1F, "SLO", mAbsXW, 7, slo)
	iop(0x1B, "SLO", mAbsYW, 7, slo)
	iop(0x03, "SLO", mIndX, 8, slo)
	iop(0x13, "SLO", mIndYW, 8, slo)

	iop(0x27, "RLA", mZP, 5, rla)
	iop(0x37, "RLA", mZPX, 6, rla)
	iop(0x2F, "RLA", mAbs, 6, rla)
	iop(0x3F, "RLA", mAbsXW, 7, rla)
	iop(0x3B, "RLA", mAbsYW, 7, rla)
	iop(0x23, "RLA", mIndX, 8, rla)
	iop(0x33, "RLA", mIndYW, 8, rla)

	iop(0x47, "SRE", mZP, 5, sre)
	iop(0x57, "SRE", mZPX, 6, sre)
	iop(0x4F, "SRE", mAbs, 6, sre)
	iop(0x5F, "SRE", mAbsXW, 7, sre)
	iop(0x5B, "SRE", mAbsYW, 7, sre)
	iop(0x43, "SRE", mIndX, 8, sre)
	iop(0x53, "SRE", mIndYW, 8, sre)

	iop(0x67, "RRA", mZP, 5, rra)
	iop(0x77, "RRA", mZPX, 6, rra)
	iop(0x6F, "RRA", mAbs, 6, rra)
	iop(0x7F, "RRA", mAbsXW, 7, rra)
	iop(0x7B, "RRA", mAbsYW, 7, rra)
	iop(0x63, "RRA", mIndX, 8, rra)
	iop(0x73, "RRA", mIndYW, 8, rra)

	iop(0x87, "SAX", mZP, 3, sax)
	iop(0x97, "SAX", mZPY, 4, sax)
	iop(0x8F, "SAX", mAbs, 4, sax)
	iop(0x83, "SAX", mIndX, 6, sax)

	iop(0xA7, "LAX", mZP, 3, lax)
	iop(0xB7, "LAX", mZPY, 4, lax)
	iop(0xAF, "LAX", mAbs, 4, lax)
	iop(0xBF, "LAX", mAbsY, 4, lax)
	iop(0xA3, "LAX", mIndX, 6, lax)
	iop(0xB3, "LAX", mIndY, 5, lax)

	iop(0xC7, "DCP", mZP, 5, dcp)
	iop(0xD7, "DCP", mZPX, 6, dcp)
	iop(0xCF, "DCP", mAbs, 6, dcp)
	iop(0xDF, "DCP", mAbsXW, 7, dcp)
	iop(0xDB, "DCP", mAbsYW, 7, dcp)
	iop(0xC3, "DCP", mIndX, 8, dcp)
	iop(0xD3, "DCP", mIndYW, 8, dcp)

	iop(0xE7, "ISC", mZP, 5, isc)
	iop(0xF7, "ISC", mZPX, 6, isc)
	iop(0xEF, "ISC", mAbs, 6, isc)
	iop(0xFF, "ISC", mAbsXW, 7, isc)
	iop(0xFB, "ISC", mAbsYW, 7, isc)
	iop(0xE3, "ISC", mIndX, 8, isc)
	iop(0xF3, "ISC", mIndYW, 8, isc)

	iop(0x0B, "ANC", mImm, 2, anc)
	iop(0x2B, "ANC", mImm, 2, anc)
	iop(0x4B, "ALR", mImm, 2, alr)
	iop(0x6B, "ARR", mImm, 2, arr)
	iop(0xCB, "SBX", mImm, 2, sbx)

	// NOP variants: some just burn cycles, some also fetch (and discard)
	// an operand, all stable and all seen in real drive/kernal timing
	// loops that happened to use them.
	for _, code := range []uint8{0x1A, 0x3A, 0x5A, 0x7A, 0xDA, 0xFA} {
		iop(code, "NOP", mImp, 2, nop)
	}
	iop(0x80, "NOP", mImm, 2, nop)
	iop(0x82, "NOP", mImm, 2, nop)
	iop(0x89, "NOP", mImm, 2, nop)
	iop(0xC2, "NOP", mImm, 2, nop)
	iop(0xE2, "NOP", mImm, 2, nop)
	for _, code := range []uint8{0x04, 0x44, 0x64} {
		iop(code, "NOP", mZP, 3, nop)
	}
	for _, code := range []uint8{0x14, 0x34, 0x54, 0x74, 0xD4, 0xF4} {
		iop(code, "NOP", mZPX, 4, nop)
	}
	iop(0x0C, "NOP", mAbs, 4, nop)
	for _, code := range []uint8{0x1C, 0x3C, 0x5C, 0x7C, 0xDC, 0xFC} {
		iop(code, "NOP", mAbsX, 4, nop)
	}
}

func nop(c *CPU, o operand) { c.load(o) }

func slo(c *CPU, o operand) {
	old := c.load(o)
	c.P.C = old&0x80 != 0
	v := old << 1
	c.store(o, v)
	c.A |= v
	c.P.setZN(c.A)
}

func rla(c *CPU, o operand) {
	old := c.load(o)
	carryIn := uint8(0)
	if c.P.C {
		carryIn = 1
	}
	c.P.C = old&0x80 != 0
	v := old<<1 | carryIn
	c.store(o, v)
	c.A &= v
	c.P.setZN(c.A)
}

func sre(c *CPU, o operand) {
	old := c.load(o)
	c.P.C = old&0x01 != 0
	v := old >> 1
	c.store(o, v)
	c.A ^= v
	c.P.setZN(c.A)
}

func rra(c *CPU, o operand) {
	old := c.load(o)
	carryIn := uint8(0)
	if c.P.C {
		carryIn = 0x80
	}
	c.P.C = old&0x01 != 0
	v := old>>1 | carryIn
	c.store(o, v)
	c.addWithCarry(v)
}

func sax(c *CPU, o operand) { c.store(o, c.A&c.X) }

func lax(c *CPU, o operand) {
	v := c.load(o)
	c.A = v
	c.X = v
	c.P.setZN(v)
}

func dcp(c *CPU, o operand) {
	v := c.load(o) - 1
	c.store(o, v)
	c.P.C = c.A >= v
	c.P.setZN(c.A - v)
}

func isc(c *CPU, o operand) {
	v := c.load(o) + 1
	c.store(o, v)
	c.addWithCarry(^v)
}

func anc(c *CPU, o operand) {
	c.A &= c.load(o)
	c.P.setZN(c.A)
	c.P.C = c.P.neg()
}

func alr(c *CPU, o operand) {
	c.A &= c.load(o)
	c.P.C = c.A&0x01 != 0
	c.A >>= 1
	c.P.setZN(c.A)
}

func arr(c *CPU, o operand) {
	c.A &= c.load(o)
	carryIn := uint8(0)
	if c.P.C {
		carryIn = 0x80
	}
	c.A = c.A>>1 | carryIn
	c.P.setZN(c.A)
	c.P.C = c.A&0x40 != 0
	c.P.V = (c.A>>6)&1^(c.A>>5)&1 != 0
}

func sbx(c *CPU, o operand) {
	v := c.load(o)
	r := (c.A & c.X) - v
	c.P.C = (c.A & c.X) >= v
	c.X = r
	c.P.setZN(c.X)
}
