package cpu6502

// Bus is the memory interface the core is parameterised over. The main
// CPU's implementation decodes the 64K C64 address space with its
// bank-switched ROM/RAM/IO windows; the drive CPU's implementation decodes
// its own 2K RAM + 16K ROM + two VIAs. Both satisfy this same interface:
// one interpreter, two bus wirings.
type Bus interface {
	Read(addr uint16) uint8
	// Peek must have no side effects; used by disassemblers and snapshotting.
	Peek(addr uint16) uint8
	Write(addr uint16, val uint8)
}

// Hooks are the handful of points where the two CPUs' behaviour actually
// diverges beyond their bus wiring.
type Hooks struct {
	// CheckSO is polled once per instruction fetch. If it returns true, the
	// core sets the V flag, mirroring the 6502's real /SO pin. Used by the
	// drive CPU so the external GCR decoder's "byte ready" signal can set
	// overflow without the CPU core knowing anything about disk encoding.
	CheckSO func() bool

	// ExtOpcode, if non-nil, intercepts opcode $F2 when PC>=$C000 instead of
	// jamming: the drive CPU's emulator extension. It is
	// passed the following immediate byte and must leave PC at a valid ROM
	// resumption address; the core does not advance PC itself for this case.
	ExtOpcode func(cpu *CPU, sub uint8)

	// OnJam is called exactly once when an undocumented/unstable opcode
	// freezes the CPU, satisfying the "one-shot notification to host"
	// error-handling requirement.
	OnJam func(pc uint16, opcode uint8)
}
