package cpu6502

// State is the flat, serializable shape of a CPU core's architectural and
// in-flight interrupt state. Drive-specific state like the idle flag
// lives in package drive, layered on top of this.
type State struct {
	A, X, Y uint8
	SP      uint8
	PC      uint16
	P       uint8 // packed status byte, via Flags.Byte/SetByte

	Cycles uint32

	IRQSources   IRQSource
	NMIPending   bool
	ResetPending bool
	Halted       bool
}

// Snapshot captures every field a Restore needs to resume this core
// exactly where it left off, including the mid-service interrupt latches
// that Step's boundary logic depends on.
func (c *CPU) Snapshot() State {
	return State{
		A: c.A, X: c.X, Y: c.Y, SP: c.SP, PC: c.PC,
		P:            c.P.Byte(false),
		Cycles:       c.Cycles,
		IRQSources:   c.irqSources,
		NMIPending:   c.nmiPending,
		ResetPending: c.resetPending,
		Halted:       c.halted,
	}
}

// Restore installs a previously captured State, leaving Bus and Hooks
// untouched since those are wiring, not saved state.
func (c *CPU) Restore(s State) {
	c.A, c.X, c.Y, c.SP, c.PC = s.A, s.X, s.Y, s.SP, s.PC
	c.P.SetByte(s.P)
	c.Cycles = s.Cycles
	c.irqSources = s.IRQSources
	c.nmiPending = s.NMIPending
	c.resetPending = s.ResetPending
	c.halted = s.Halted
	c.jamNotified = false
}
