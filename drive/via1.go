package drive

// IECPort is the drive's view of the serial bus, satisfied by
// iec.Bus. It is declared here, not imported from package iec, so the
// drive package doesn't need to depend on the bus implementation.
type IECPort interface {
	// SetDriveLines pushes the drive's own pulled state for CLK, DATA and
	// ATN-ack onto the bus.
	SetDriveLines(clk, data, atnAck bool)
	// Lines returns the bus's current wired-AND ATN/CLK/DATA values.
	Lines() (atn, clk, data bool)
}

// NewVIA1 builds the bus-side VIA. Its port B writes drive DATA (bit 1),
// CLK (bit 3) and ATN-ack (bit 4) onto the wire, inverted since the
// 1541's line drivers are open-collector; its port B reads rearrange the
// bus's wired-AND value into bits 0 (DATA), 2 (CLK) and 7 (ATN), with the
// remaining, output-only bits floating high.
func NewVIA1(iec IECPort) *VIA {
	v := &VIA{Name: "via1"}
	v.WritePB = func(val uint8) {
		data := val&(1<<1) == 0
		clk := val&(1<<3) == 0
		atnAck := val&(1<<4) == 0
		iec.SetDriveLines(clk, data, atnAck)
	}
	v.ReadPB = func(_ uint8) uint8 {
		atn, clk, data := iec.Lines()
		var pb uint8 = 0b0111_1010 // bits 1,3,4,5,6 float high; 0/2/7 filled below
		if !data {
			pb |= 1 << 0
		}
		if !clk {
			pb |= 1 << 2
		}
		if !atn {
			pb |= 1 << 7
		}
		return pb
	}
	return v
}
