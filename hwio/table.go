package hwio

import (
	"fmt"

	"c64/emu/log"
)

// BankIO8 is the interface every mappable device implements.
type BankIO8 interface {
	// Read8 reads a byte from addr. If peek is true, the read must have no
	// side effects (used by disassemblers/debuggers/snapshots).
	Read8(addr uint16, peek bool) uint8
	Write8(addr uint16, val uint8)
}

func Write16(b BankIO8, addr uint16, val uint16) {
	b.Write8(addr, uint8(val&0xff))
	b.Write8(addr+1, uint8(val>>8))
}

func Read16(b BankIO8, addr uint16) uint16 {
	lo := b.Read8(addr, false)
	hi := b.Read8(addr+1, false)
	return uint16(hi)<<8 | uint16(lo)
}

// Table is a 64K-entry, byte-addressable dispatch table. Both the main
// CPU's 64KiB space and the drive's 64KiB space (2KiB RAM + 16KiB ROM,
// heavily mirrored) fit comfortably as flat [65536] arrays, which keeps
// Read8/Write8 to a single slice index instead of a tree walk.
type Table struct {
	Name  string
	slots [65536]BankIO8
}

func NewTable(name string) *Table {
	return &Table{Name: name}
}

func (t *Table) Reset() {
	for i := range t.slots {
		t.slots[i] = nil
	}
}

// MapBank maps every hwio-tagged register field of bank (filtered to the
// given bankNum, see MustInitRegs) at addr-relative offsets.
func (t *Table) MapBank(addr uint16, bank any, bankNum int) {
	regs, err := bankGetRegs(bank, bankNum)
	if err != nil {
		panic(err)
	}
	for _, r := range regs {
		switch io := r.regPtr.(type) {
		case *Mem:
			t.MapMem(addr+r.offset, io)
		case *Reg8:
			t.MapReg8(addr+r.offset, io)
		case *Device:
			t.mapBus8(addr+r.offset, uint16(io.Size), io)
		default:
			panic(fmt.Errorf("hwio: invalid reg type %T", io))
		}
	}
}

func (t *Table) UnmapBank(addr uint16, bank any, bankNum int) {
	regs, err := bankGetRegs(bank, bankNum)
	if err != nil {
		panic(err)
	}
	for _, r := range regs {
		switch io := r.regPtr.(type) {
		case *Mem:
			t.Unmap(addr+r.offset, addr+r.offset+uint16(io.VSize)-1)
		case *Reg8:
			t.Unmap(addr+r.offset, addr+r.offset)
		case *Device:
			t.Unmap(addr+r.offset, addr+r.offset+uint16(io.Size)-1)
		}
	}
}

func (t *Table) mapBus8(addr, size uint16, io BankIO8) {
	for i := uint32(0); i < uint32(size); i++ {
		t.slots[(uint32(addr)+i)&0xffff] = io
	}
}

func (t *Table) MapReg8(addr uint16, r *Reg8) {
	t.mapBus8(addr, 1, r)
}

func (t *Table) MapMem(addr uint16, m *Mem) {
	log.ModHwIo.DebugZ("mapping mem").
		Hex16("addr", addr).
		Hex16("size", uint16(m.VSize)).
		String("area", m.Name).
		String("bus", t.Name).
		End()
	if len(m.Data)&(len(m.Data)-1) != 0 {
		panic(fmt.Sprintf("hwio: memory buffer %q size is not a power of two", m.Name))
	}
	t.mapBus8(addr, uint16(m.VSize), m.BankIO8())
}

// MapMemorySlice maps a raw byte slice directly, without going through a
// Mem — used for nametable/bank-switch style aliasing where several
// addresses must resolve to the very same backing array (e.g. VIC-II bank
// mirroring, or drive ROM mirrored at $8000 and $C000).
func (t *Table) MapMemorySlice(addr, end uint16, buf []uint8, readonly bool) {
	flags := MemFlagReadWrite
	if readonly {
		flags = MemFlag8ReadOnly
	}
	t.MapMem(addr, &Mem{Data: buf, Flags: flags, VSize: int(end-addr) + 1})
}

func (t *Table) Unmap(begin, end uint16) {
	for i := uint32(begin); i <= uint32(end); i++ {
		t.slots[i] = nil
	}
}

func (t *Table) Read8(addr uint16, peek bool) uint8 {
	io := t.slots[addr]
	if io == nil {
		if !peek {
			log.ModHwIo.DebugZ("unmapped Read8").
				String("name", t.Name).
				Hex16("addr", addr).
				End()
		}
		return uint8(addr >> 8) // C64 open-bus approximation: high byte of address
	}
	return io.Read8(addr, peek)
}

func (t *Table) Peek8(addr uint16) uint8 {
	return t.Read8(addr, true)
}

func (t *Table) Write8(addr uint16, val uint8) {
	io := t.slots[addr]
	if io == nil {
		log.ModHwIo.DebugZ("unmapped Write8").
			String("name", t.Name).
			Hex16("addr", addr).
			Hex8("val", val).
			End()
		return
	}
	io.Write8(addr, val)
}

func (t *Table) FetchPointer(addr uint16) []uint8 {
	if m, ok := t.slots[addr].(*memIO); ok {
		return m.FetchPointer(addr)
	}
	return nil
}
