package snapshot

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"c64/cpu6502"
	"c64/vic"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	want := &State{
		Version: Version,
		MainCPU: cpu6502.State{A: 0x12, X: 0x34, Y: 0x56, SP: 0xfd, PC: 0xc000, P: 0x24, Cycles: 12345},
		DriveCPU: cpu6502.State{
			A: 1, PC: 0xc100, IRQSources: 1, NMIPending: true,
		},
		VIC: vic.State{
			RasterY: 51, VCBase: 40, RC: 3, BadLinesOn: true,
			MC: [8]uint8{1, 2, 3, 4, 5, 6, 7, 8}, SprOn: 0xff,
		},
		DriveIdle: true,
	}
	want.MainRAM[0x1000] = 0xea
	want.ColorRAM[42] = 0x0f

	got, err := Decode(Encode(want))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeRejectsWrongVersion(t *testing.T) {
	s := &State{Version: Version + 1}
	if _, err := Decode(Encode(s)); err == nil {
		t.Fatalf("expected an error decoding a mismatched snapshot version")
	}
}
