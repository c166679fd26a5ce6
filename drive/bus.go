package drive

// Bus is the 1541's address space: 2 KiB of RAM mirrored through the low
// half, VIA1 and VIA2 carved out of it at fixed addresses, and 16 KiB of
// ROM mirrored at $8000 and $c000.
type Bus struct {
	RAM  [0x800]uint8
	ROM  [0x4000]uint8
	VIA1 *VIA
	VIA2 *VIA
}

func (b *Bus) Read(addr uint16) uint8 { return b.access(addr, false) }
func (b *Bus) Peek(addr uint16) uint8 { return b.access(addr, true) }

func (b *Bus) access(addr uint16, peek bool) uint8 {
	switch {
	case addr >= 0x1800 && addr < 0x1c00:
		return b.VIA1.Read8(addr, peek)
	case addr >= 0x1c00 && addr < 0x2000:
		return b.VIA2.Read8(addr, peek)
	case addr < 0x8000:
		return b.RAM[addr&0x7ff]
	default:
		return b.ROM[addr&0x3fff]
	}
}

func (b *Bus) Write(addr uint16, val uint8) {
	switch {
	case addr >= 0x1800 && addr < 0x1c00:
		b.VIA1.Write8(addr, val)
	case addr >= 0x1c00 && addr < 0x2000:
		b.VIA2.Write8(addr, val)
	case addr < 0x8000:
		b.RAM[addr&0x7ff] = val
	// writes to the ROM-mapped upper half are simply dropped, as on the
	// real drive.
	default:
	}
}
