// Package cpu6502 implements the 6502 execution core shared by the main
// C64 CPU (6510) and the 1541 disk drive's 6502, parameterised by a small
// capability set (Bus, interrupt lines, side-effect hooks) rather than
// duplicated per chip. See CPU.Hooks for the handful of points where the
// two machines actually differ.
package cpu6502

// Flags holds the 6502 processor status bits using the same trick as most
// fast interpreters: Z and N are stored as the byte whose zero-ness/bit-7
// carry the flag, so ALU results can set them with a single assignment
// instead of a branch.
type Flags struct {
	C bool // carry
	Z uint8 // Z flag is true iff Z == 0
	I bool // interrupt disable
	D bool // decimal mode
	V bool // overflow
	N uint8 // N flag is true iff N&0x80 != 0
}

func (f *Flags) zero() bool { return f.Z == 0 }
func (f *Flags) neg() bool  { return f.N&0x80 != 0 }

func (f *Flags) setZN(v uint8) {
	f.Z = v
	f.N = v
}

// Byte packs the flags into the 6502 status byte layout: N V 1 B D I Z C.
// brk selects the B bit, which only ever exists in the pushed copy.
func (f *Flags) Byte(brk bool) uint8 {
	var b uint8 = 1 << 5 // bit 5 is always set
	if f.neg() {
		b |= 1 << 7
	}
	if f.V {
		b |= 1 << 6
	}
	if brk {
		b |= 1 << 4
	}
	if f.D {
		b |= 1 << 3
	}
	if f.I {
		b |= 1 << 2
	}
	if f.zero() {
		b |= 1 << 1
	}
	if f.C {
		b |= 1 << 0
	}
	return b
}

// SetByte unpacks a status byte (as pulled from the stack by PLP/RTI) into
// the flags. Bit 5 and B are not stored: they are synthesised on push.
func (f *Flags) SetByte(b uint8) {
	f.N = b & 0x80
	f.V = b&(1<<6) != 0
	f.D = b&(1<<3) != 0
	f.I = b&(1<<2) != 0
	if b&(1<<1) != 0 {
		f.Z = 0
	} else {
		f.Z = 1
	}
	f.C = b&(1<<0) != 0
}

// Registers holds the architectural state of one 6502, identical in shape
// for the main CPU and the drive CPU.
type Registers struct {
	A, X, Y uint8
	SP      uint8
	PC      uint16
	P       Flags
}
