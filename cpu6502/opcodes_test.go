package cpu6502

import "testing"

func TestLDAImmediateSetsFlags(t *testing.T) {
	cpu, bus := newTestCPU()
	cpu.PC = 0x8000
	load(bus, 0x8000, 0xA9, 0x00) // LDA #$00
	cpu.Step()
	if cpu.A != 0 || !cpu.P.zero() {
		t.Fatalf("LDA #$00: A=%#x Z=%v, want 0/true", cpu.A, cpu.P.zero())
	}

	cpu.PC = 0x8000
	load(bus, 0x8000, 0xA9, 0x80) // LDA #$80
	cpu.Step()
	if cpu.A != 0x80 || !cpu.P.neg() {
		t.Fatalf("LDA #$80: A=%#x N=%v, want 0x80/true", cpu.A, cpu.P.neg())
	}
}

func TestADCCarryAndOverflow(t *testing.T) {
	cpu, bus := newTestCPU()
	cpu.PC = 0x8000
	cpu.A = 0x50
	load(bus, 0x8000, 0x69, 0x50) // ADC #$50
	cpu.Step()
	if cpu.A != 0xa0 || !cpu.P.V || cpu.P.C {
		t.Fatalf("ADC 0x50+0x50: A=%#x V=%v C=%v, want 0xa0/true/false", cpu.A, cpu.P.V, cpu.P.C)
	}
}

func TestSBCBorrow(t *testing.T) {
	cpu, bus := newTestCPU()
	cpu.PC = 0x8000
	cpu.A = 0x00
	cpu.P.C = true // no borrow going in
	load(bus, 0x8000, 0xE9, 0x01) // SBC #$01
	cpu.Step()
	if cpu.A != 0xff || cpu.P.C {
		t.Fatalf("SBC 0-1: A=%#x C=%v, want 0xff/false", cpu.A, cpu.P.C)
	}
}

func TestBranchTakenCrossesPageAddsCycle(t *testing.T) {
	cpu, bus := newTestCPU()
	cpu.PC = 0x80fe
	cpu.P.Z = 0 // BEQ taken
	load(bus, 0x80fe, 0xF0, 0xf0) // branch back across the page boundary
	n := cpu.Step()
	if cpu.PC != 0x80f0 {
		t.Fatalf("PC=%#x, want 0x80f0", cpu.PC)
	}
	if n != 4 {
		t.Fatalf("cycles=%d, want 4 (2 base + 1 taken + 1 page cross)", n)
	}
}

func TestJSRRTSRoundTrip(t *testing.T) {
	cpu, bus := newTestCPU()
	cpu.PC = 0x8000
	load(bus, 0x8000, 0x20, 0x00, 0x90) // JSR $9000
	load(bus, 0x9000, 0x60)             // RTS
	cpu.Step()
	if cpu.PC != 0x9000 {
		t.Fatalf("PC after JSR=%#x, want 0x9000", cpu.PC)
	}
	cpu.Step()
	if cpu.PC != 0x8003 {
		t.Fatalf("PC after RTS=%#x, want 0x8003", cpu.PC)
	}
}

func TestBRKPushShapeAndVector(t *testing.T) {
	cpu, bus := newTestCPU()
	bus.mem[0xfffe] = 0x00
	bus.mem[0xffff] = 0xa0
	cpu.PC = 0x1234
	load(bus, 0x1234, 0x00, 0xea) // BRK, then a padding byte
	cpu.Step()

	if cpu.PC != 0xa000 {
		t.Fatalf("PC after BRK=%#x, want 0xa000", cpu.PC)
	}
	if !cpu.P.I {
		t.Fatalf("I flag not set after BRK")
	}
	pushedP := bus.mem[0x0100+int(cpu.SP)+1]
	if pushedP&(1<<4) == 0 {
		t.Fatalf("pushed status %#x missing B bit", pushedP)
	}
	pc := uint16(bus.mem[0x0100+int(cpu.SP)+2]) | uint16(bus.mem[0x0100+int(cpu.SP)+3])<<8
	if pc != 0x1236 {
		t.Fatalf("pushed PC=%#x, want 0x1236 (BRK PC+2)", pc)
	}
}

func TestNMIPushesBWithoutSetting(t *testing.T) {
	cpu, bus := newTestCPU()
	bus.mem[0xfffa] = 0x00
	bus.mem[0xfffb] = 0xb0
	cpu.PC = 0x2000
	cpu.PulseNMI()
	cpu.Step()
	if cpu.PC != 0xb000 {
		t.Fatalf("PC after NMI=%#x, want 0xb000", cpu.PC)
	}
	pushedP := bus.mem[0x0100+int(cpu.SP)+1]
	if pushedP&(1<<4) != 0 {
		t.Fatalf("NMI pushed status %#x has B set, want clear", pushedP)
	}
}

func TestIRQMaskedByI(t *testing.T) {
	cpu, bus := newTestCPU()
	cpu.PC = 0x3000
	cpu.P.I = true
	load(bus, 0x3000, 0xea) // NOP
	cpu.SetIRQSource(IRQSource(1), true)
	cpu.Step()
	if cpu.PC != 0x3001 {
		t.Fatalf("IRQ fired while I set: PC=%#x", cpu.PC)
	}
}

func TestUnstableOpcodeJamsAndNotifiesOnce(t *testing.T) {
	cpu, bus := newTestCPU()
	cpu.PC = 0x4000
	load(bus, 0x4000, 0x02) // JAM
	notified := 0
	cpu.Hooks.OnJam = func(pc uint16, opcode uint8) {
		notified++
		if pc != 0x4000 || opcode != 0x02 {
			t.Fatalf("OnJam(%#x, %#x), want (0x4000, 0x02)", pc, opcode)
		}
	}
	cpu.Step()
	cpu.Step()
	cpu.Step()
	if !cpu.Halted() {
		t.Fatalf("CPU not halted after JAM opcode")
	}
	if cpu.PC != 0x4000 {
		t.Fatalf("PC drifted after JAM: %#x, want 0x4000", cpu.PC)
	}
	if notified != 1 {
		t.Fatalf("OnJam called %d times, want 1", notified)
	}
}

func TestDriveExtOpcodeBypassesJam(t *testing.T) {
	cpu, bus := newTestCPU()
	cpu.PC = 0xc000
	load(bus, 0xc000, 0xf2, 0x07) // $F2 07: emulator extension call
	var gotSub uint8
	cpu.Hooks.ExtOpcode = func(c *CPU, sub uint8) {
		gotSub = sub
		c.PC = 0xc020
	}
	cpu.Step()
	if gotSub != 0x07 {
		t.Fatalf("ExtOpcode sub=%#x, want 0x07", gotSub)
	}
	if cpu.PC != 0xc020 || cpu.Halted() {
		t.Fatalf("PC=%#x halted=%v, want 0xc020/false", cpu.PC, cpu.Halted())
	}
}

func TestLAXLoadsBothRegisters(t *testing.T) {
	cpu, bus := newTestCPU()
	cpu.PC = 0x5000
	load(bus, 0x5000, 0xA7, 0x10) // LAX $10
	bus.mem[0x10] = 0x42
	cpu.Step()
	if cpu.A != 0x42 || cpu.X != 0x42 {
		t.Fatalf("LAX: A=%#x X=%#x, want both 0x42", cpu.A, cpu.X)
	}
}

func TestSBXComputesANDMinusOperand(t *testing.T) {
	cpu, bus := newTestCPU()
	cpu.PC = 0x6000
	cpu.A = 0xff
	cpu.X = 0x0f
	load(bus, 0x6000, 0xCB, 0x05) // SBX #$05
	cpu.Step()
	if cpu.X != 0x0a || !cpu.P.C {
		t.Fatalf("SBX: X=%#x C=%v, want 0x0a/true", cpu.X, cpu.P.C)
	}
}
