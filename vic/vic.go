// Package vic implements the 6569-class video chip: raster-line state
// machine, bad-line DMA, the six graphics-mode renderers, and the sprite
// engine.
package vic

import (
	"c64/emu/log"
	"c64/hwio"
)

const (
	TotalRasters  = 312
	FirstDispLine = 0x10
	LastDispLine  = 0x11f
	FirstDMALine  = 0x30
	LastDMALine   = 0xf7

	DisplayX    = 384
	DisplayY    = 272
	Col40XStart = 0x20
	Col40XStop  = Col40XStart + 40*8

	NormalLineCycles = 63
	BadLineCycles    = 23
)

// Memory is the VIC's own address space: raw memory access through the
// bank the main machine's CIA2 selects, independent of the CPU's
// bank-switching view. machine.VICBank, the implementation the machine
// wires in, returns plain RAM only; the character ROM is not visible.
type Memory interface {
	Read(addr uint16) uint8
}

// irq flag/mask bits.
const (
	irqRaster = 1 << 0
	irqSprBgr = 1 << 1
	irqSprSpr = 1 << 2
	irqLP     = 1 << 3
	irqMaster = 1 << 7
)

// VIC is the video chip's full state.
type VIC struct {
	Mem Memory

	// ReadColor fetches one nibble of colour RAM at the given video-matrix
	// offset. Colour RAM is wired straight to the VIC, bypassing the
	// bank-switch mux Mem otherwise goes through.
	ReadColor func(offset uint16) uint8

	// IRQ is called with the master interrupt bit's current level every
	// time the interrupt flags or mask are updated, whether or not the
	// level changed; the caller wires it to the main CPU's IRQ line.
	IRQ func(active bool)

	regs [0x2f]uint8

	rasterY      uint16
	vcBase, vc   uint16
	rc           uint8
	displayState bool
	badLine      bool
	badLinesOn   bool
	borderOn     bool

	irqRasterLatch uint16

	matrixLine [40]uint8
	colorLine  [40]uint8

	foreMask hwio.Bitset
	// sprColl[x] is a bitmask of which sprites drew an opaque pixel at
	// chunky column x on the current line, used to detect sprite-sprite
	// overlap while compositing; it never leaves the VIC.
	sprColl [DisplayX]uint8

	mc      [8]uint8
	sprOn   uint8
	lpTrig  bool
	lpx, lpy uint8

	fb   []uint8
	xmod int
}

func New(mem Memory) *VIC {
	v := &VIC{Mem: mem}
	return v
}

// SetFramebuffer installs the host-owned chunky pixel buffer the VIC
// writes DisplayX bytes into per visible line.
func (v *VIC) SetFramebuffer(buf []uint8, xmod int) {
	v.fb = buf
	v.xmod = xmod
}

func (v *VIC) Reset() {
	v.regs = [0x2f]uint8{}
	v.rasterY = 0
	v.vc, v.vcBase = 0, 0
	v.rc = 0
	v.displayState = false
	v.borderOn = false
	v.sprOn = 0
	v.mc = [8]uint8{}
}

// ctrl1/ctrl2 bit accessors.
func (v *VIC) den() bool    { return v.regs[0x11]&0x10 != 0 }
func (v *VIC) rsel() bool   { return v.regs[0x11]&0x08 != 0 }
func (v *VIC) ecm() bool    { return v.regs[0x11]&0x40 != 0 }
func (v *VIC) bmm() bool    { return v.regs[0x11]&0x20 != 0 }
func (v *VIC) yScroll() uint8 { return v.regs[0x11] & 0x07 }
func (v *VIC) mcm() bool    { return v.regs[0x16]&0x10 != 0 }
func (v *VIC) csel() bool   { return v.regs[0x16]&0x08 != 0 }
func (v *VIC) xScroll() uint8 { return v.regs[0x16] & 0x07 }

func (v *VIC) matrixBase() uint16 { return uint16(v.regs[0x18]&0xf0) << 6 }
func (v *VIC) charBase() uint16   { return uint16(v.regs[0x18]&0x0e) << 10 }

// displayIdx derives the six-way mode selector from {ECM,BMM,MCM}.
func (v *VIC) displayIdx() int {
	idx := 0
	if v.ecm() {
		idx |= 4
	}
	if v.bmm() {
		idx |= 2
	}
	if v.mcm() {
		idx |= 1
	}
	return idx
}

func (v *VIC) dyStartStop() (start, stop uint16) {
	if v.rsel() {
		return 0x33, 0xfb
	}
	return 0x37, 0xf7
}

func (v *VIC) spriteEnabled(n int) bool { return v.regs[0x15]&(1<<n) != 0 }
func (v *VIC) spriteXE(n int) bool      { return v.regs[0x1d]&(1<<n) != 0 }
func (v *VIC) spriteYE(n int) bool      { return v.regs[0x17]&(1<<n) != 0 }
func (v *VIC) spriteMC(n int) bool      { return v.regs[0x1c]&(1<<n) != 0 }
func (v *VIC) spriteX(n int) uint16 {
	x := uint16(v.regs[n*2])
	if v.regs[0x10]&(1<<n) != 0 {
		x |= 0x100
	}
	return x
}
func (v *VIC) spriteY(n int) uint8 { return v.regs[n*2+1] }

func (v *VIC) Read8(addr uint16, peek bool) uint8 {
	addr &= 0x3f
	switch addr {
	case 0x12:
		return uint8(v.rasterY)
	case 0x13:
		return v.lpx
	case 0x14:
		return v.lpy
	case 0x19:
		return v.regs[addr] | 0x70
	case 0x1e:
		val := v.regs[0x1e]
		if !peek {
			v.regs[0x1e] = 0
		}
		return val
	case 0x1f:
		val := v.regs[0x1f]
		if !peek {
			v.regs[0x1f] = 0
		}
		return val
	default:
		if int(addr) < len(v.regs) {
			return v.regs[addr] | 0xc0
		}
		return 0xff
	}
}

func (v *VIC) Write8(addr uint16, val uint8) {
	addr &= 0x3f
	if int(addr) >= len(v.regs) {
		return
	}
	old := v.regs[addr]
	v.regs[addr] = val

	switch addr {
	case 0x11:
		newLatch := v.irqRasterLatch&0xff | uint16(val&0x80)<<1
		v.checkRasterWrite(newLatch)
	case 0x12:
		newLatch := v.irqRasterLatch&0x100 | uint16(val)
		v.checkRasterWrite(newLatch)
	case 0x19:
		v.regs[0x19] = old &^ (val & 0x0f)
		v.updateMasterIRQ()
	case 0x1e, 0x1f:
		v.regs[addr] = old // read-only collision latches
	}

	log.ModVIC.DebugZ("VIC register write").Hex16("addr", addr).Hex8("val", val).End()
}

func (v *VIC) checkRasterWrite(newLatch uint16) {
	if newLatch != v.irqRasterLatch {
		v.irqRasterLatch = newLatch
		if newLatch == v.rasterY {
			v.raiseIRQ(irqRaster)
		}
	}
}

func (v *VIC) raiseIRQ(bit uint8) {
	v.regs[0x19] |= bit
	v.updateMasterIRQ()
}

func (v *VIC) updateMasterIRQ() {
	active := v.regs[0x19]&v.regs[0x1a]&0x0f != 0
	if active {
		v.regs[0x19] |= irqMaster
	} else {
		v.regs[0x19] &^= irqMaster
	}
	if v.IRQ != nil {
		v.IRQ(active)
	}
}

// RenderLine advances the raster to the next line, does the bad-line DMA
// fetch and pixel rendering, and returns the CPU cycle budget for the
// line that was just rendered along with whether a new frame started.
func (v *VIC) RenderLine() (cycles int, vblank bool) {
	v.rasterY++
	if v.rasterY >= TotalRasters {
		v.rasterY = 0
		v.vcBase = 0
		v.lpTrig = false
		vblank = true
	}

	if v.rasterY == v.irqRasterLatch {
		v.raiseIRQ(irqRaster)
	}

	if v.rasterY == FirstDMALine {
		v.badLinesOn = v.den()
	}

	v.badLine = v.rasterY >= FirstDMALine && v.rasterY <= LastDMALine &&
		uint16(v.yScroll()) == v.rasterY&7 && v.badLinesOn

	if v.badLine {
		v.displayState = true
		cycles = BadLineCycles
		v.rc = 0
		v.vc = v.vcBase
		v.fetchMatrixLine()
	} else {
		cycles = NormalLineCycles
	}

	dyStart, dyStop := v.dyStartStop()
	if v.rasterY == dyStop {
		v.borderOn = true
	}
	if v.rasterY == dyStart && v.den() {
		v.borderOn = false
	}

	cycles -= v.spriteDMAUpdate() * 2
	if cycles < 0 {
		cycles = 0
	}

	if v.rasterY >= FirstDispLine && v.rasterY <= LastDispLine {
		v.renderVisibleLine()
	}

	if v.rc == 7 {
		v.displayState = false
		v.vcBase = v.vc + 40
	} else if v.displayState {
		v.rc++
	}
	if v.rasterY+1 >= FirstDMALine && v.rasterY+1 <= LastDMALine &&
		uint16(v.yScroll()) == (v.rasterY+1)&7 && v.badLinesOn {
		v.rc = 0
	}

	return cycles, vblank
}

func (v *VIC) readColor(offset uint16) uint8 {
	if v.ReadColor == nil {
		return 0
	}
	return v.ReadColor(offset)
}

func (v *VIC) fetchMatrixLine() {
	mb := v.matrixBase()
	for i := 0; i < 40; i++ {
		v.matrixLine[i] = v.Mem.Read(mb + v.vc + uint16(i))
		v.colorLine[i] = v.readColor(v.vc+uint16(i)) & 0x0f
	}
}
