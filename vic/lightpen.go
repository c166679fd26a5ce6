package vic

// TriggerLightPen latches the current beam position into $d013/$d014 and
// raises the light-pen interrupt, mirroring the one-shot-per-frame
// behaviour real light pen hardware exhibits (grounded on Frodo's
// VIC::TriggerLightpen: a pen can only latch once until vblank clears
// lpTrig). x is the chunky-buffer column the pen fired at.
func (v *VIC) TriggerLightPen(x int) {
	if v.lpTrig {
		return
	}
	v.lpTrig = true
	v.lpx = uint8(x >> 1)
	v.lpy = uint8(v.rasterY)
	v.raiseIRQ(irqLP)
}
