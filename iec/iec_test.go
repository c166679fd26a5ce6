package iec

import "testing"

func TestATNAckOnlyPullsDataWhenItDisagreesWithATN(t *testing.T) {
	b := New()

	// ATN released, atn_ack unset: they agree, DATA is untouched.
	b.SetCIA2Lines(false, false, false)
	b.SetDriveLines(false, false, false)
	if _, _, data := b.Lines(); data {
		t.Fatalf("expected DATA released when ATN and atn_ack agree (both false)")
	}

	// Drive latches atn_ack while ATN is still released: they now
	// disagree, so DATA is forced low.
	b.SetDriveLines(false, false, true)
	if _, _, data := b.Lines(); !data {
		t.Fatalf("expected DATA forced low when ATN and atn_ack disagree")
	}

	// CIA2 asserts ATN to match the latched atn_ack: they agree again,
	// DATA is released back to whatever either side otherwise drives.
	b.SetCIA2Lines(true, false, false)
	if _, _, data := b.Lines(); data {
		t.Fatalf("expected DATA released once ATN catches up with atn_ack")
	}
}

func TestWiredANDPullsLineLowIfEitherSideAsserts(t *testing.T) {
	b := New()
	b.SetCIA2Lines(false, true, false)
	b.SetDriveLines(false, false, false)
	if _, clk, _ := b.Lines(); !clk {
		t.Fatalf("expected CLK asserted when CIA2 pulls it low")
	}
}
