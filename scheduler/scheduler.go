// Package scheduler implements the line-stepped loop that clocks the VIC,
// the main CPU, the drive, and both CIAs together one raster line at a
// time. It is the sole owner of every component's state: cross-component
// effects (raise IRQ, change IEC lines) are wired once at construction as
// direct method calls, not run-time callbacks discovered later.
package scheduler

import (
	"github.com/go-faster/errors"

	"c64/cia"
	"c64/cpu6502"
	"c64/drive"
	"c64/emu/log"
	"c64/iec"
	"c64/machine"
	"c64/vic"
)

// irqFromVIC/irqFromCIA identify the interrupt sources feeding the main
// CPU's wired-OR IRQ line, mirroring cpu6502.IRQSource's per-source bit
// model.
const (
	irqFromVIC cpu6502.IRQSource = 1 << 0
	irqFromCIA cpu6502.IRQSource = 1 << 1
)

// GCR is the disk-encoding collaborator the drive's extension opcode
// calls into; nil is a legal, silently-no-op decoder for
// running the core without a mounted disk image.
type GCR = drive.GCR

// DiskMechanics reports the physical state (stepper, motor, LED, write
// protect, sync) the drive's VIA2 surfaces.
type DiskMechanics = drive.DiskMechanics

// KeyboardJoystick is the input mailbox CIA1 reads.
type KeyboardJoystick = cia.KeyboardJoystick

// Machine owns every emulated component and drives them one raster line
// per StepLine call.
type Machine struct {
	Bus   *machine.Bus
	VIC   *vic.VIC
	Bank  *machine.VICBank
	SAM   *machine.SAM
	CIA1  *cia.CIA
	CIA2  *cia.CIA
	CPU   *cpu6502.CPU
	IEC   *iec.Bus
	Drive *drive.Drive

	driveCycleBudget int
	resetPending     bool
}

// New assembles a full machine: main bus and CPU, VIC, both CIAs, the IEC
// bus, and a 1541 drive. kb, mech and gcr may be nil.
func New(kb KeyboardJoystick, mech DiskMechanics, gcr GCR) *Machine {
	m := &Machine{}

	m.Bus = machine.NewBus()
	m.Bank = machine.NewVICBank(m.Bus)
	m.SAM = machine.NewSAM(m.Bus)

	m.VIC = vic.New(m.Bank)
	m.VIC.ReadColor = func(offset uint16) uint8 { return m.Bus.ColorRAM.Read8(offset, false) }
	m.VIC.IRQ = func(active bool) { m.CPU.SetIRQSource(irqFromVIC, active) }

	m.IEC = iec.New()
	m.IEC.OnChange(func() {
		if m.Drive != nil {
			m.Drive.NotifyLineChange()
		}
	})

	m.CIA1 = cia.NewCIA1(kb)
	m.CIA2 = cia.NewCIA2(m.IEC, m.Bank)
	m.CIA1.IRQ = func(active bool) { m.CPU.SetIRQSource(irqFromCIA, active) }
	m.CIA2.IRQ = func(active bool) { /* CIA2 drives NMI on real hardware; not modelled: no component consumes it */ }

	m.Bus.VIC = deviceFunc{read: m.VIC.Read8, write: m.VIC.Write8}
	m.Bus.CIA1 = m.CIA1
	m.Bus.CIA2 = m.CIA2

	m.CPU = cpu6502.NewCPU(m.Bus)

	m.Drive = drive.New(driveIEC{m.IEC}, mech, gcr, nil)

	m.driveCycleBudget = vic.NormalLineCycles

	return m
}

// deviceFunc adapts a pair of Read8/Write8 closures to hwio.BankIO8
// without pulling the VIC package into an import cycle with hwio.
type deviceFunc struct {
	read  func(addr uint16, peek bool) uint8
	write func(addr uint16, val uint8)
}

func (d deviceFunc) Read8(addr uint16, peek bool) uint8 { return d.read(addr, peek) }
func (d deviceFunc) Write8(addr uint16, val uint8)      { d.write(addr, val) }

// driveIEC adapts iec.Bus to drive.IECPort.
type driveIEC struct{ bus *iec.Bus }

func (d driveIEC) SetDriveLines(clk, data, atnAck bool) { d.bus.SetDriveLines(clk, data, atnAck) }
func (d driveIEC) Lines() (atn, clk, data bool)         { return d.bus.Lines() }

// Reset powers on every component from scratch.
func (m *Machine) Reset() {
	m.Bus.Reset()
	m.VIC.Reset()
	m.CIA1.Reset()
	m.CIA2.Reset()
	m.CPU.Reset()
	m.Drive.Reset()
}

// RequestReset marks a reset to take effect at the next StepLine call,
// rather than tearing down component state mid-line.
func (m *Machine) RequestReset() { m.resetPending = true }

// LoadDriveROM installs the 1541 firmware image, wrapping any size
// mismatch with the machine-level context a bare drive.LoadROM error
// lacks.
func (m *Machine) LoadDriveROM(image []byte) error {
	if err := m.Drive.LoadROM(image); err != nil {
		return errors.Wrap(err, "loading drive firmware")
	}
	return nil
}

// OnJam wires the host's illegal-opcode notification to both CPUs. cpuName distinguishes
// "main" from "drive" in the callback.
func (m *Machine) OnJam(fn func(cpuName string, pc uint16, opcode uint8)) {
	if fn == nil {
		return
	}
	m.CPU.Hooks.OnJam = func(pc uint16, opcode uint8) { fn("main", pc, opcode) }
	m.Drive.CPU.Hooks.OnJam = func(pc uint16, opcode uint8) { fn("drive", pc, opcode) }
}

// StepLine implements the §4.1 contract: render one raster line, then run
// both CPUs for their line-cycle budgets.
func (m *Machine) StepLine() (vblank bool, cpuCycles int) {
	if m.resetPending {
		m.resetPending = false
		m.Reset()
	}

	cycles, vb := m.VIC.RenderLine()

	m.CPU.Run(cycles)
	m.CIA1.Tick(cycles)
	m.CIA2.Tick(cycles)

	// The drive runs off its own ~1MHz clock; at line granularity the two
	// clocks are close enough that a straight per-line budget is used
	// rather than a shared cycle counter.
	driveCycles := cycles
	if cycles == vic.BadLineCycles {
		driveCycles = m.driveCycleBudget
	} else {
		m.driveCycleBudget = cycles
	}
	m.Drive.Run(driveCycles)

	if vb {
		log.ModSched.DebugZ("frame end").End()
	}
	return vb, cycles
}
