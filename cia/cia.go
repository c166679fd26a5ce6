// Package cia implements the external interface of the two 6526 I/O
// chips: port/DDR registers and the timer pair, enough to drive the
// keyboard matrix, joysticks, the VIC bank select and the IEC pin
// contributions. Interrupt-driven timer behaviour beyond raising the
// shared IRQ/NMI line is out of scope.
package cia

import (
	"c64/emu/log"
	"c64/hwio"
)

// icr bits, per the 6526 datasheet.
const (
	icrTA   = 1 << 0
	icrTB   = 1 << 1
	icrFlag = 1 << 4
	icrIRQ  = 1 << 7
)

// CIA is one 6526: registers $00-$0f, wired through hwio's tag-driven
// register table.
type CIA struct {
	Name string

	PRA  hwio.Reg8 `hwio:"offset=0x0,rcb,wcb"`
	PRB  hwio.Reg8 `hwio:"offset=0x1,rcb,wcb"`
	DDRA hwio.Reg8 `hwio:"offset=0x2"`
	DDRB hwio.Reg8 `hwio:"offset=0x3"`
	TALO hwio.Reg8 `hwio:"offset=0x4,rcb"`
	TAHI hwio.Reg8 `hwio:"offset=0x5,rcb"`
	TBLO hwio.Reg8 `hwio:"offset=0x6,rcb"`
	TBHI hwio.Reg8 `hwio:"offset=0x7,rcb"`
	ICR  hwio.Reg8 `hwio:"offset=0xd,rcb,wcb"`
	CRA  hwio.Reg8 `hwio:"offset=0xe,wcb"`
	CRB  hwio.Reg8 `hwio:"offset=0xf,wcb"`

	// ReadPA/ReadPB let an external collaborator (keyboard matrix,
	// joystick, IEC bus) drive the input side of a port; nil reads back
	// whatever was last written, with no DDR masking.
	ReadPA func() uint8
	ReadPB func() uint8
	// WritePA/WritePB observe the output side of a port whenever the port
	// register is written, with undriven (input) bits read as 1. A DDR
	// write alone does not call them.
	WritePA func(val uint8)
	WritePB func(val uint8)

	// IRQ is called with the line's new level whenever an enabled timer
	// underflow changes it.
	IRQ func(active bool)

	ta, tb   uint16
	icrMask  uint8
	irqLevel bool

	regs [16]hwio.BankIO8
}

func New(name string) *CIA {
	c := &CIA{Name: name}
	hwio.MustInitRegs(c)
	c.regs = [16]hwio.BankIO8{
		0x0: &c.PRA, 0x1: &c.PRB, 0x2: &c.DDRA, 0x3: &c.DDRB,
		0x4: &c.TALO, 0x5: &c.TAHI, 0x6: &c.TBLO, 0x7: &c.TBHI,
		0xd: &c.ICR, 0xe: &c.CRA, 0xf: &c.CRB,
	}
	return c
}

// Read8/Write8 make CIA a hwio.BankIO8 directly: the 16-register block
// mirrors every 16 bytes across the 256-byte $dc00/$dd00 I/O page, as on
// real hardware. TOD and the serial shift register ($08-$0c) are not
// modelled and read back as open bus.
func (c *CIA) Read8(addr uint16, peek bool) uint8 {
	if r := c.regs[addr&0x0f]; r != nil {
		return r.Read8(addr, peek)
	}
	return uint8(addr)
}

func (c *CIA) Write8(addr uint16, val uint8) {
	if r := c.regs[addr&0x0f]; r != nil {
		r.Write8(addr, val)
	}
}

func (c *CIA) ReadPRA(val uint8) uint8 {
	if c.ReadPA != nil {
		return (c.ReadPA() &^ c.DDRA.Value) | (val & c.DDRA.Value)
	}
	return val
}

func (c *CIA) WritePRA(_, val uint8) {
	if c.WritePA != nil {
		c.WritePA(val | ^c.DDRA.Value)
	}
}

func (c *CIA) ReadPRB(val uint8) uint8 {
	if c.ReadPB != nil {
		return (c.ReadPB() &^ c.DDRB.Value) | (val & c.DDRB.Value)
	}
	return val
}

func (c *CIA) WritePRB(_, val uint8) {
	if c.WritePB != nil {
		c.WritePB(val | ^c.DDRB.Value)
	}
}

func (c *CIA) ReadTALO(uint8) uint8 { return uint8(c.ta) }
func (c *CIA) ReadTAHI(uint8) uint8 { return uint8(c.ta >> 8) }
func (c *CIA) ReadTBLO(uint8) uint8 { return uint8(c.tb) }
func (c *CIA) ReadTBHI(uint8) uint8 { return uint8(c.tb >> 8) }

func (c *CIA) ReadICR(uint8) uint8 {
	val := c.ICR.Value
	c.ICR.Value = 0
	c.setIRQ(false)
	return val
}

func (c *CIA) WriteICR(_, val uint8) {
	if val&icrIRQ != 0 {
		c.icrMask |= val &^ icrIRQ
	} else {
		c.icrMask &^= val
	}
}

func (c *CIA) WriteCRA(_, val uint8) { c.CRA.Value = val }
func (c *CIA) WriteCRB(_, val uint8) { c.CRB.Value = val }

// Reset reinitialises the chip to its power-on register state.
func (c *CIA) Reset() {
	c.DDRA.Value, c.DDRB.Value = 0, 0
	c.ta, c.tb = 0xffff, 0xffff
	c.icrMask = 0
	c.setIRQ(false)
}

// Tick advances both timers by n cycles (timer-A/B free-running mode
// only; the count-per-TOD-tick and serial-shift-triggered modes real
// software occasionally uses are not modelled).
func (c *CIA) Tick(n int) {
	if c.CRA.Value&0x01 != 0 {
		c.ta = c.countDown(c.ta, n, icrTA)
	}
	if c.CRB.Value&0x01 != 0 {
		c.tb = c.countDown(c.tb, n, icrTB)
	}
}

func (c *CIA) countDown(v uint16, n int, flag uint8) uint16 {
	for i := 0; i < n; i++ {
		if v == 0 {
			c.ICR.Value |= flag
			if c.icrMask&flag != 0 {
				c.ICR.Value |= icrIRQ
				c.setIRQ(true)
			}
			v = 0xffff
			continue
		}
		v--
	}
	return v
}

func (c *CIA) setIRQ(active bool) {
	if active == c.irqLevel {
		return
	}
	c.irqLevel = active
	log.ModCIA.DebugZ("CIA IRQ line").String("name", c.Name).Bool("active", active).End()
	if c.IRQ != nil {
		c.IRQ(active)
	}
}
