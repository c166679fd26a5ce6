package vic

// renderVisibleLine paints one line of the chunky buffer: the whole line
// starts border-coloured, the 320-pixel graphics window is rendered over
// it unless the vertical border is on, and the border strips (plus the
// 38-column narrow strips) are repainted on top so scrolled graphics
// never bleed into them.
func (v *VIC) renderVisibleLine() {
	if v.fb == nil {
		return
	}
	lineIdx := int(v.rasterY) - FirstDispLine
	if lineIdx < 0 || lineIdx >= DisplayY {
		return
	}
	line := v.fb[lineIdx*v.xmod : lineIdx*v.xmod+DisplayX]

	v.foreMask.ClearRange(0, DisplayX)
	for i := range v.sprColl {
		v.sprColl[i] = 0
	}

	border := v.regs[0x20] & 0x0f
	for i := range line {
		line[i] = border
	}

	if !v.borderOn {
		v.renderChars(line)
	}

	if v.sprOn != 0 {
		v.renderSprites(line)
	}

	for i := 0; i < Col40XStart; i++ {
		line[i] = border
	}
	for i := Col40XStop; i < DisplayX; i++ {
		line[i] = border
	}
	if !v.csel() {
		for i := Col40XStart; i < Col40XStart+8; i++ {
			line[i] = border
		}
		for i := Col40XStop - 8; i < Col40XStop; i++ {
			line[i] = border
		}
	}
}

// renderChars renders the 320-pixel graphics window: 40 character cells,
// each contributing 8 chunky pixels plus one foreground-mask bit per
// pixel, dispatched to one of six inner renderers by displayIdx.
func (v *VIC) renderChars(line []uint8) {
	x := Col40XStart
	xs := int(v.xScroll())

	// Leading x_scroll pixels are pre-filled with background 0 and carry
	// no foreground priority.
	bg0 := v.regs[0x21] & 0x0f
	for i := 0; i < xs && x+i < len(line); i++ {
		line[x+i] = bg0
	}
	x += xs

	idx := v.displayIdx()
	for col := 0; col < 40 && x+8 <= Col40XStop+8; col++ {
		var code, color uint8
		if v.displayState {
			code, color = v.matrixLine[col], v.colorLine[col]
		}
		bits := v.fetchCharBits(idx, col, code)
		v.paintChar(line, x, bits, code, color, idx)
		x += 8
	}
}

// fetchCharBits returns the 8-bit pattern for this character cell: the
// idle byte when the row isn't in display state, otherwise the fetch
// address selected by the mode. Colour selection for bitmap modes comes
// from the matrix byte itself, handled in paintChar.
func (v *VIC) fetchCharBits(idx int, col int, code uint8) uint8 {
	if !v.displayState {
		addr := uint16(0x3fff)
		if v.ecm() {
			addr = 0x39ff
		}
		return v.Mem.Read(addr)
	}
	switch idx {
	case 2, 3: // bitmap modes fetch 8 rows per character cell from vc*8
		base := (v.charBase() & 0x2000) | (v.vc+uint16(col))*8 + uint16(v.rc)
		return v.Mem.Read(base)
	case 4: // ECM: character index drops the top two colour-select bits
		base := v.charBase() + uint16(code&0x3f)*8 + uint16(v.rc)
		return v.Mem.Read(base)
	default:
		base := v.charBase() + uint16(code)*8 + uint16(v.rc)
		return v.Mem.Read(base)
	}
}

func (v *VIC) paintChar(line []uint8, x int, bits uint8, code, color uint8, idx int) {
	switch idx {
	case 0: // standard text
		v.paintHiRes(line, x, bits, v.regs[0x21]&0x0f, color)
	case 1: // multicolor text
		if color&0x08 == 0 {
			v.paintHiRes(line, x, bits, v.regs[0x21]&0x0f, color&0x07)
			return
		}
		colors := [4]uint8{v.regs[0x21] & 0x0f, v.regs[0x22] & 0x0f, v.regs[0x23] & 0x0f, color & 0x07}
		v.paintMulti(line, x, bits, colors, true)
	case 2: // standard bitmap
		v.paintHiRes(line, x, bits, code&0x0f, code>>4)
	case 3: // multicolor bitmap
		colors := [4]uint8{v.regs[0x21] & 0x0f, code >> 4, code & 0x0f, color & 0x0f}
		v.paintMulti(line, x, bits, colors, false)
	case 4: // ECM text
		bgIdx := (code >> 6) & 0x03
		bg := [4]uint8{v.regs[0x21] & 0x0f, v.regs[0x22] & 0x0f, v.regs[0x23] & 0x0f, v.regs[0x24] & 0x0f}[bgIdx]
		v.paintHiRes(line, x, bits, bg, color)
	default: // invalid modes render black
		for i := 0; i < 8 && x+i < len(line); i++ {
			line[x+i] = 0
		}
	}
}

// paintHiRes handles the one-bit-per-pixel modes: bit set draws fg, clear
// draws bg, and the foreground mask exactly mirrors the bit pattern.
func (v *VIC) paintHiRes(line []uint8, x int, bits uint8, bg, fg uint8) {
	for i := 0; i < 8 && x+i < len(line); i++ {
		set := bits&(0x80>>uint(i)) != 0
		if set {
			line[x+i] = fg
			v.foreMask.Set(uint(x + i))
		} else {
			line[x+i] = bg
		}
	}
}

// paintMulti handles the two-bit-per-pixel multicolor modes: each pair of
// bits selects one of four colours and covers two chunky pixels. "11"
// always wins foreground priority over sprites; "01"/"10" only do when
// multi is true, i.e. this cell actually requested multicolor rather than
// falling back to the hi-res rule.
func (v *VIC) paintMulti(line []uint8, x int, bits uint8, colors [4]uint8, multi bool) {
	for pair := 0; pair < 4; pair++ {
		shift := uint(6 - pair*2)
		sel := (bits >> shift) & 0x03
		c := colors[sel]
		px := x + pair*2
		for i := 0; i < 2 && px+i < len(line); i++ {
			line[px+i] = c
			if sel == 3 || (multi && sel >= 1) {
				v.foreMask.Set(uint(px + i))
			}
		}
	}
}
