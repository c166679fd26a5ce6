package drive

import (
	"github.com/go-faster/errors"

	"c64/cpu6502"
	"c64/emu/log"
)

// GCR is the opaque disk-encoding subsystem the emulator extension opcode
// dispatches into; this core only specifies the calls it makes; the
// decoder itself is out of scope.
type GCR interface {
	WriteSector()
	FormatTrack()
}

const extResumeAddr = 0xc100

// resetIRQ is the synthetic interrupt source AsyncReset uses to wake an
// idling drive without touching the CPU's real IRQ line semantics.
const resetIRQ cpu6502.IRQSource = 1 << 7

// Drive is the 1541: its CPU, its two VIAs, and the idle/wake state the
// scheduler needs to know whether it's worth stepping the CPU at all.
type Drive struct {
	CPU  *cpu6502.CPU
	Bus  *Bus
	VIA1 *VIA
	VIA2 *VIA
	GCR  GCR

	idle bool
}

// New builds a drive wired to iec for VIA1 and mech (may be nil) for
// VIA2, with checkSO fed by the GCR "byte ready" pulse.
func New(iec IECPort, mech DiskMechanics, gcr GCR, checkSO func() bool) *Drive {
	via1 := NewVIA1(iec)
	via2 := NewVIA2(mech)
	bus := &Bus{VIA1: via1, VIA2: via2}
	d := &Drive{Bus: bus, VIA1: via1, VIA2: via2, GCR: gcr}

	d.CPU = cpu6502.NewCPU(bus)
	d.CPU.Hooks.CheckSO = checkSO
	d.CPU.Hooks.ExtOpcode = d.extOpcode
	d.CPU.Hooks.OnJam = func(pc uint16, opcode uint8) {
		log.ModDrive.WarnZ("drive CPU jammed").Hex16("pc", pc).Hex8("opcode", opcode).End()
	}

	via1.SetIRQ = func(active bool) { d.CPU.SetIRQSource(1, active); d.wake() }
	via2.SetIRQ = func(active bool) { d.CPU.SetIRQSource(2, active); d.wake() }

	return d
}

// LoadROM installs a 16KiB 1541 ROM image. It rejects anything else with
// a stack-carrying error rather than silently truncating or zero-padding
// a mis-sized dump.
func (d *Drive) LoadROM(image []byte) error {
	if len(image) != len(d.Bus.ROM) {
		return errors.Errorf("1541 ROM: expected %d bytes, got %d", len(d.Bus.ROM), len(image))
	}
	copy(d.Bus.ROM[:], image)
	return nil
}

func (d *Drive) Reset() {
	d.CPU.Reset()
	d.idle = false
}

// AsyncReset requests a CPU reset and unconditionally wakes the drive
// from idle.
func (d *Drive) AsyncReset() {
	d.CPU.SetIRQSource(resetIRQ, true)
	d.CPU.RequestReset()
	d.CPU.SetIRQSource(resetIRQ, false)
	d.wake()
}

func (d *Drive) Idle() bool { return d.idle }

func (d *Drive) wake() { d.idle = false }

// NotifyLineChange un-idles the drive on any IEC line transition.
func (d *Drive) NotifyLineChange() { d.wake() }

// Run executes at least budget cycles (overshooting by up to one
// instruction, as cpu6502.CPU.Run does) and returns the cycles spent,
// skipping entirely while idle so a drive with no disk in it costs the
// scheduler nothing beyond a branch.
func (d *Drive) Run(budget int) int {
	if d.idle {
		return 0
	}
	spent := d.CPU.Run(budget)
	d.VIA1.Tick(spent)
	d.VIA2.Tick(spent)
	return spent
}

// extOpcode implements the drive's $f2 emulator extension:
// the byte after the opcode selects the GCR operation, after which
// execution resumes at a fixed ROM address rather than falling through.
func (d *Drive) extOpcode(cpu *cpu6502.CPU, sub uint8) {
	switch sub {
	case 0x00:
		d.idle = true
	case 0x01:
		if d.GCR != nil {
			d.GCR.WriteSector()
		}
	case 0x02:
		if d.GCR != nil {
			d.GCR.FormatTrack()
		}
	}
	cpu.PC = extResumeAddr
}
