// Package snapshot implements a versioned state record covering the VIC
// and both CPUs, plus main/drive/colour RAM, encoded with
// github.com/go-faster/jx. The wire format is a flat JSON object: a small
// versioned envelope wrapping one sub-record per component.
package snapshot

import (
	"github.com/go-faster/errors"
	"github.com/go-faster/jx"

	"c64/cpu6502"
	"c64/vic"
)

// Version is bumped whenever a field is added, removed or reinterpreted;
// Decode refuses a mismatched version rather than guessing.
const Version = 1

// State is the whole restorable machine, save for anything that is pure
// wiring (bus collaborators, callbacks) rather than data.
type State struct {
	Version int

	MainCPU  cpu6502.State
	DriveCPU cpu6502.State
	VIC      vic.State

	MainRAM   [65536]uint8
	DriveRAM  [2048]uint8
	ColorRAM  [1024]uint8
	DriveIdle bool
}

// Encode serializes s as a compact JSON document.
func Encode(s *State) []byte {
	e := jx.GetEncoder()
	e.ObjStart()

	e.FieldStart("version")
	e.Int(s.Version)

	e.FieldStart("main_cpu")
	encodeCPU(e, &s.MainCPU)

	e.FieldStart("drive_cpu")
	encodeCPU(e, &s.DriveCPU)

	e.FieldStart("vic")
	encodeVIC(e, &s.VIC)

	e.FieldStart("main_ram")
	e.Base64(s.MainRAM[:])

	e.FieldStart("drive_ram")
	e.Base64(s.DriveRAM[:])

	e.FieldStart("color_ram")
	e.Base64(s.ColorRAM[:])

	e.FieldStart("drive_idle")
	e.Bool(s.DriveIdle)

	e.ObjEnd()
	return e.Bytes()
}

func encodeCPU(e *jx.Encoder, c *cpu6502.State) {
	e.ObjStart()
	e.FieldStart("a")
	e.UInt8(c.A)
	e.FieldStart("x")
	e.UInt8(c.X)
	e.FieldStart("y")
	e.UInt8(c.Y)
	e.FieldStart("sp")
	e.UInt8(c.SP)
	e.FieldStart("pc")
	e.UInt16(c.PC)
	e.FieldStart("p")
	e.UInt8(c.P)
	e.FieldStart("cycles")
	e.UInt32(c.Cycles)
	e.FieldStart("irq_sources")
	e.UInt8(uint8(c.IRQSources))
	e.FieldStart("nmi_pending")
	e.Bool(c.NMIPending)
	e.FieldStart("reset_pending")
	e.Bool(c.ResetPending)
	e.FieldStart("halted")
	e.Bool(c.Halted)
	e.ObjEnd()
}

func encodeVIC(e *jx.Encoder, v *vic.State) {
	e.ObjStart()
	e.FieldStart("regs")
	e.Base64(v.Regs[:])
	e.FieldStart("raster_y")
	e.UInt16(v.RasterY)
	e.FieldStart("vc_base")
	e.UInt16(v.VCBase)
	e.FieldStart("vc")
	e.UInt16(v.VC)
	e.FieldStart("rc")
	e.UInt8(v.RC)
	e.FieldStart("display_state")
	e.Bool(v.DisplayState)
	e.FieldStart("bad_line")
	e.Bool(v.BadLine)
	e.FieldStart("bad_lines_on")
	e.Bool(v.BadLinesOn)
	e.FieldStart("border_on")
	e.Bool(v.BorderOn)
	e.FieldStart("irq_raster_latch")
	e.UInt16(v.IRQRasterLatch)
	e.FieldStart("mc")
	e.Base64(v.MC[:])
	e.FieldStart("spr_on")
	e.UInt8(v.SprOn)
	e.FieldStart("lp_trig")
	e.Bool(v.LPTrig)
	e.FieldStart("lp_x")
	e.UInt8(v.LPX)
	e.FieldStart("lp_y")
	e.UInt8(v.LPY)
	e.ObjEnd()
}

// Decode parses a document written by Encode. It returns an error if the
// version doesn't match Version.
func Decode(data []byte) (*State, error) {
	d := jx.DecodeBytes(data)
	s := &State{}
	err := d.Obj(func(d *jx.Decoder, key string) error {
		switch key {
		case "version":
			v, err := d.Int()
			if err != nil {
				return err
			}
			s.Version = v
		case "main_cpu":
			return decodeCPU(d, &s.MainCPU)
		case "drive_cpu":
			return decodeCPU(d, &s.DriveCPU)
		case "vic":
			return decodeVIC(d, &s.VIC)
		case "main_ram":
			return decodeBytes(d, s.MainRAM[:])
		case "drive_ram":
			return decodeBytes(d, s.DriveRAM[:])
		case "color_ram":
			return decodeBytes(d, s.ColorRAM[:])
		case "drive_idle":
			v, err := d.Bool()
			if err != nil {
				return err
			}
			s.DriveIdle = v
		default:
			return d.Skip()
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "snapshot: decode")
	}
	if s.Version != Version {
		return nil, errors.Wrapf(&VersionError{Got: s.Version, Want: Version}, "snapshot: version check")
	}
	return s, nil
}

// VersionError reports a snapshot encoded by an incompatible version of
// this package.
type VersionError struct{ Got, Want int }

func (e *VersionError) Error() string {
	return "snapshot: incompatible version"
}

func decodeCPU(d *jx.Decoder, c *cpu6502.State) error {
	return d.Obj(func(d *jx.Decoder, key string) error {
		switch key {
		case "a":
			v, err := d.UInt8()
			c.A = v
			return err
		case "x":
			v, err := d.UInt8()
			c.X = v
			return err
		case "y":
			v, err := d.UInt8()
			c.Y = v
			return err
		case "sp":
			v, err := d.UInt8()
			c.SP = v
			return err
		case "pc":
			v, err := d.UInt16()
			c.PC = v
			return err
		case "p":
			v, err := d.UInt8()
			c.P = v
			return err
		case "cycles":
			v, err := d.UInt32()
			c.Cycles = v
			return err
		case "irq_sources":
			v, err := d.UInt8()
			c.IRQSources = cpu6502.IRQSource(v)
			return err
		case "nmi_pending":
			v, err := d.Bool()
			c.NMIPending = v
			return err
		case "reset_pending":
			v, err := d.Bool()
			c.ResetPending = v
			return err
		case "halted":
			v, err := d.Bool()
			c.Halted = v
			return err
		}
		return d.Skip()
	})
}

func decodeVIC(d *jx.Decoder, v *vic.State) error {
	return d.Obj(func(d *jx.Decoder, key string) error {
		switch key {
		case "regs":
			return decodeBytes(d, v.Regs[:])
		case "raster_y":
			x, err := d.UInt16()
			v.RasterY = x
			return err
		case "vc_base":
			x, err := d.UInt16()
			v.VCBase = x
			return err
		case "vc":
			x, err := d.UInt16()
			v.VC = x
			return err
		case "rc":
			x, err := d.UInt8()
			v.RC = x
			return err
		case "display_state":
			x, err := d.Bool()
			v.DisplayState = x
			return err
		case "bad_line":
			x, err := d.Bool()
			v.BadLine = x
			return err
		case "bad_lines_on":
			x, err := d.Bool()
			v.BadLinesOn = x
			return err
		case "border_on":
			x, err := d.Bool()
			v.BorderOn = x
			return err
		case "irq_raster_latch":
			x, err := d.UInt16()
			v.IRQRasterLatch = x
			return err
		case "mc":
			return decodeBytes(d, v.MC[:])
		case "spr_on":
			x, err := d.UInt8()
			v.SprOn = x
			return err
		case "lp_trig":
			x, err := d.Bool()
			v.LPTrig = x
			return err
		case "lp_x":
			x, err := d.UInt8()
			v.LPX = x
			return err
		case "lp_y":
			x, err := d.UInt8()
			v.LPY = x
			return err
		}
		return d.Skip()
	})
}

func decodeBytes(d *jx.Decoder, dst []byte) error {
	src, err := d.Base64()
	if err != nil {
		return err
	}
	copy(dst, src)
	return nil
}

// This package does not model CIA/SID sub-records: only the VIC and CPU
// shapes are captured, and the scheduler already recreates CIA/SID
// wiring from scratch on Reset.
