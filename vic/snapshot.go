package vic

// State is the flat, serializable shape of the video generator's
// register file and raster-position state machine.
// The scratch per-line buffers (matrixLine, colorLine, foreMask, sprColl)
// are not part of it: they hold no state across a line boundary that a
// restored VIC wouldn't immediately recompute on its next RenderLine.
type State struct {
	Regs [0x2f]uint8

	RasterY        uint16
	VCBase, VC     uint16
	RC             uint8
	DisplayState   bool
	BadLine        bool
	BadLinesOn     bool
	BorderOn       bool
	IRQRasterLatch uint16

	MC     [8]uint8
	SprOn  uint8
	LPTrig bool
	LPX    uint8
	LPY    uint8
}

// Snapshot captures the VIC's register file and raster-position state.
func (v *VIC) Snapshot() State {
	return State{
		Regs: v.regs, RasterY: v.rasterY, VCBase: v.vcBase, VC: v.vc, RC: v.rc,
		DisplayState: v.displayState, BadLine: v.badLine, BadLinesOn: v.badLinesOn,
		BorderOn: v.borderOn, IRQRasterLatch: v.irqRasterLatch,
		MC: v.mc, SprOn: v.sprOn, LPTrig: v.lpTrig, LPX: v.lpx, LPY: v.lpy,
	}
}

// Restore installs a previously captured State. Mem, ReadColor, IRQ and
// the host framebuffer binding (SetFramebuffer) are wiring, not state,
// and are left untouched.
func (v *VIC) Restore(s State) {
	v.regs = s.Regs
	v.rasterY, v.vcBase, v.vc, v.rc = s.RasterY, s.VCBase, s.VC, s.RC
	v.displayState, v.badLine, v.badLinesOn, v.borderOn = s.DisplayState, s.BadLine, s.BadLinesOn, s.BorderOn
	v.irqRasterLatch = s.IRQRasterLatch
	v.mc, v.sprOn, v.lpTrig, v.lpx, v.lpy = s.MC, s.SprOn, s.LPTrig, s.LPX, s.LPY
}
