package drive

// DiskMechanics is the opaque external GCR/mechanical subsystem VIA2
// drives: stepper motor, spindle motor, activity LED and bit rate select
// are pushed to it; write-protect and sync-mark are read back from it.
// This core only specifies the interface.
type DiskMechanics interface {
	SetStepper(phase uint8)
	SetMotor(on bool)
	SetLED(on bool)
	SetBitRate(sel uint8)
	WriteProtect() bool
	SyncMark() bool
}

// nullMechanics stands in until a real GCR subsystem is wired; disks
// always appear writable and never in sync, which is enough to let ROM
// code that polls these bits run without hanging.
type nullMechanics struct{}

func (nullMechanics) SetStepper(uint8)   {}
func (nullMechanics) SetMotor(bool)      {}
func (nullMechanics) SetLED(bool)        {}
func (nullMechanics) SetBitRate(uint8)   {}
func (nullMechanics) WriteProtect() bool { return false }
func (nullMechanics) SyncMark() bool     { return false }

// NewVIA2 builds the disk-side VIA. Its port B drives the stepper motor
// (bits 0-1), the spindle motor (bit 2), the drive LED (bit 3) and the
// GCR bit rate (bits 5-6) on write, and reports write-protect (bit 4) and
// sync (bit 7) on read.
func NewVIA2(mech DiskMechanics) *VIA {
	if mech == nil {
		mech = nullMechanics{}
	}
	v := &VIA{Name: "via2"}
	v.WritePB = func(val uint8) {
		mech.SetStepper(val & 0x03)
		mech.SetMotor(val&(1<<2) != 0)
		mech.SetLED(val&(1<<3) != 0)
		mech.SetBitRate((val >> 5) & 0x03)
	}
	v.ReadPB = func(_ uint8) uint8 {
		var pb uint8
		if mech.WriteProtect() {
			pb |= 1 << 4
		}
		if mech.SyncMark() {
			pb |= 0 // sync active pulls the line low
		} else {
			pb |= 1 << 7
		}
		return pb
	}
	return v
}
