package hwio

import "c64/emu/log"

// Mem is a linear memory area (RAM or ROM) that can be mapped into a Table.
// VSize may exceed len(Data): the buffer is then mirrored across the whole
// VSize window.
type Mem struct {
	Name    string
	Data    []byte
	VSize   int
	Flags   MemFlags
	WriteCb func(addr uint16, val uint8)
}

type MemFlags int

const (
	MemFlagReadWrite MemFlags = 0
	MemFlag8ReadOnly MemFlags = 1 << iota
	MemFlagNoROLog
)

func (m *memIO) mask() uint16 {
	return uint16(len(m.Data) - 1)
}

func (m *Mem) BankIO8() BankIO8 {
	return (*memIO)(m)
}

// memIO adapts Mem to BankIO8 by wrapping addresses into Data with a mask,
// which requires len(Data) to be a power of two.
type memIO Mem

func (m *memIO) Read8(addr uint16, peek bool) uint8 {
	return m.Data[addr&m.mask()]
}

func (m *memIO) Peek8(addr uint16) uint8 {
	return m.Data[addr&m.mask()]
}

func (m *memIO) Write8(addr uint16, val uint8) {
	off := addr & m.mask()
	if m.Flags&MemFlag8ReadOnly != 0 {
		if m.Flags&MemFlagNoROLog == 0 {
			log.ModHwIo.ErrorZ("write to read-only memory").
				String("name", m.Name).
				Hex16("addr", addr).
				Hex8("val", val).
				End()
		}
		return
	}
	m.Data[off] = val
	if m.WriteCb != nil {
		m.WriteCb(addr, val)
	}
}

func (m *memIO) FetchPointer(addr uint16) []uint8 {
	off := addr & m.mask()
	return m.Data[off:]
}
