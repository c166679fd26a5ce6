package hwio

import "testing"

type testBank struct {
	RAM  Mem  `hwio:"offset=0x0000,size=0x0800,vsize=0x1000"`
	CTRL Reg8 `hwio:"offset=0x0800,rcb,wcb"`

	written uint8
}

func (b *testBank) ReadCTRL(val uint8) uint8 { return val | 0x80 }
func (b *testBank) WriteCTRL(old, val uint8) { b.written = val }

func TestTableMapBankAndMirroring(t *testing.T) {
	b := &testBank{}
	MustInitRegs(b)

	tbl := NewTable("test")
	tbl.MapBank(0x0000, b, 0)

	tbl.Write8(0x0010, 0x42)
	if got := tbl.Read8(0x0010, false); got != 0x42 {
		t.Fatalf("Read8(0x0010) = %#x, want 0x42", got)
	}
	// vsize=0x1000 over an 0x0800 buffer must mirror.
	if got := tbl.Read8(0x0810, false); got != 0x42 {
		t.Fatalf("mirrored Read8(0x0810) = %#x, want 0x42", got)
	}

	tbl.Write8(0x0800, 0x7)
	if b.written != 0x7 {
		t.Fatalf("WriteCTRL not invoked, written = %#x", b.written)
	}
	if got := tbl.Read8(0x0800, false); got != 0x87 {
		t.Fatalf("ReadCTRL not invoked, got %#x, want 0x87", got)
	}
}

func TestTableUnmappedReadIsOpenBus(t *testing.T) {
	tbl := NewTable("test")
	if got, want := tbl.Read8(0x1234, false), uint8(0x12); got != want {
		t.Fatalf("unmapped Read8(0x1234) = %#x, want %#x", got, want)
	}
}

func TestReg8ReadOnlyMaskPreservesBits(t *testing.T) {
	r := Reg8{RoMask: 0x0f, Value: 0x05}
	r.Write8(0, 0xff)
	if r.Value != 0xf5 {
		t.Fatalf("Value = %#x, want 0xf5 (low nibble preserved)", r.Value)
	}
}

func TestReg8BitHelpers(t *testing.T) {
	r := Reg8{}
	r.SetBit(3)
	if !r.GetBit(3) {
		t.Fatal("SetBit/GetBit mismatch")
	}
	r.ClearBit(3)
	if r.GetBit(3) {
		t.Fatal("ClearBit failed")
	}
}
