// Package iec models the 3-wire IEC serial bus (ATN, CLK, DATA) as a
// wired-AND of every participant's pulled state, plus the drive's ATN
// acknowledge behaviour.
package iec

import "c64/emu/log"

const (
	bitATN  = 1 << 0
	bitCLK  = 1 << 1
	bitDATA = 1 << 2
)

// released is the power-on/idle state: every line high (not pulled).
const released uint8 = bitATN | bitCLK | bitDATA

// Bus resolves the two participants' independently-driven line state
// into the single wired-AND value everyone reads back: the main
// machine's CIA2 side and the drive's VIA1 side.
type Bus struct {
	cia2Lines  uint8
	driveLines uint8
	atnAck     bool

	onChange func()
}

func New() *Bus {
	return &Bus{cia2Lines: released, driveLines: released}
}

// OnChange registers a callback invoked whenever the resolved bus value
// changes, so the drive can un-idle on any line transition.
func (b *Bus) OnChange(fn func()) { b.onChange = fn }

func (b *Bus) notifyIfChanged(before uint8) {
	if b.calc() != before && b.onChange != nil {
		b.onChange()
	}
}

// SetCIA2Lines pushes the main machine's ATN/CLK/DATA contribution.
func (b *Bus) SetCIA2Lines(atn, clk, data bool) {
	before := b.calc()
	b.cia2Lines = boolBits(!atn, bitATN) | boolBits(!clk, bitCLK) | boolBits(!data, bitDATA)
	log.ModIEC.DebugZ("CIA2 IEC lines").Bool("atn", atn).Bool("clk", clk).Bool("data", data).End()
	b.notifyIfChanged(before)
}

// SetDriveLines pushes the 1541's own pulled state, including its ATN
// acknowledge bit, which forces DATA low whenever it disagrees with the
// bus's ATN state, regardless of what either side is otherwise driving
// on DATA (see calc).
func (b *Bus) SetDriveLines(clk, data, atnAck bool) {
	before := b.calc()
	b.driveLines = boolBits(!clk, bitCLK) | boolBits(!data, bitDATA) | bitATN
	b.atnAck = atnAck
	log.ModIEC.DebugZ("drive IEC lines").Bool("clk", clk).Bool("data", data).Bool("atnAck", atnAck).End()
	b.notifyIfChanged(before)
}

func boolBits(v bool, mask uint8) uint8 {
	if v {
		return mask
	}
	return 0
}

// calc implements CalcIECLines: the wired-AND of both sides, with DATA
// additionally forced low whenever the bus's current ATN state and the
// drive's latched ATN-acknowledge disagree. Two matching sides (ATN
// asserted and acknowledged, or ATN released and unacknowledged) leave
// DATA to whatever either side is otherwise driving.
func (b *Bus) calc() uint8 {
	wired := b.cia2Lines & b.driveLines
	atnAsserted := wired&bitATN == 0
	if atnAsserted != b.atnAck {
		wired &^= bitDATA
	}
	return wired
}

// Lines reports whether ATN, CLK and DATA are currently asserted (pulled
// low) on the bus.
func (b *Bus) Lines() (atn, clk, data bool) {
	v := b.calc()
	return v&bitATN == 0, v&bitCLK == 0, v&bitDATA == 0
}
