package drive

import "testing"

// stubIEC satisfies IECPort with nothing wired; the jam test never
// touches the serial bus.
type stubIEC struct{}

func (stubIEC) SetDriveLines(clk, data, atnAck bool) {}
func (stubIEC) Lines() (atn, clk, data bool)         { return false, false, false }

func TestIllegalOpcodeJamsDriveCPU(t *testing.T) {
	d := New(stubIEC{}, nil, nil, nil)

	// Reset vector points at $0000; RAM there holds an unassigned opcode,
	// which cpu6502's opcode table defaults to JAM.
	d.Bus.ROM[0x3ffc] = 0x00
	d.Bus.ROM[0x3ffd] = 0x00
	d.Bus.RAM[0] = 0x02

	var jammedPC uint16
	var jammedOpcode uint8
	var jamCount int
	d.CPU.Hooks.OnJam = func(pc uint16, opcode uint8) {
		jamCount++
		jammedPC = pc
		jammedOpcode = opcode
	}

	d.Reset()
	d.Run(100)

	if jamCount != 1 {
		t.Fatalf("expected exactly one jam notification, got %d", jamCount)
	}
	if jammedPC != 0 {
		t.Fatalf("expected jam at PC 0, got %#04x", jammedPC)
	}
	if jammedOpcode != 0x02 {
		t.Fatalf("expected jammed opcode 0x02, got %#02x", jammedOpcode)
	}

	// A jammed CPU stays parked on the same instruction; running it
	// further must not re-fire the notification or advance PC.
	d.Run(100)
	if jamCount != 1 {
		t.Fatalf("expected jam notification to latch, fired %d times", jamCount)
	}
	if d.CPU.PC != 0 {
		t.Fatalf("expected PC to stay parked at 0 after the jam, got %#04x", d.CPU.PC)
	}
}
