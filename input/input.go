// Package input is the host-facing mailbox CIA1 reads from: an 8x8
// keyboard matrix and two joystick ports, mapped from SDL2 events and
// latched into a lock-free snapshot cia.CIA1 reads on every PRA/PRB
// access.
package input

import (
	"sync/atomic"

	"github.com/veandco/go-sdl2/sdl"
)

// Key identifies one of the 64 matrix positions (row*8+col), keyboard-scan
// order as on the real C64 keyboard PCB. Row/column assignment beyond
// "8x8 matrix, active low" is not spec'd; this core numbers them in the
// scan order the real ROM's keyboard table uses, so a completionist
// mapping can be dropped in later without touching CIA1's contract.
type Key uint8

// JoyBit is one bit of an active-low joystick byte: up, down, left,
// right, fire, in that pin order.
type JoyBit uint8

const (
	JoyUp JoyBit = 1 << iota
	JoyDown
	JoyLeft
	JoyRight
	JoyFire
)

// Mailbox is the keyboard/joystick state CIA1 samples. All state is
// stored as packed atomics so the SDL event thread (which must own SDL's
// event queue per go-sdl2's threading rules) can update it without
// synchronizing against the machine's own goroutine.
type Mailbox struct {
	cols     [8]atomic.Uint32 // indexed by matrix column; bit=row, 0=key down
	joy1     atomic.Uint32
	joy2     atomic.Uint32
	keymap   map[sdl.Scancode]Key
	swapped  atomic.Bool // ports 1/2 swap toggle
	joyIndex [2]int      // sdl joystick device index per logical port, -1 if none
}

// NewMailbox builds a mailbox with every row/joystick line released
// (matching the matrix's idle-high, active-low convention) and the
// default scancode-to-matrix-position map.
func NewMailbox() *Mailbox {
	m := &Mailbox{keymap: DefaultKeymap(), joyIndex: [2]int{-1, -1}}
	for i := range m.cols {
		m.cols[i].Store(0xff)
	}
	m.joy1.Store(0xff)
	m.joy2.Store(0xff)
	return m
}

// DefaultKeymap returns a plausible QWERTY-to-C64-matrix mapping covering
// most letters (L, O, P and U are not mapped), the digits, F1/F3/F5/F7,
// RETURN, SPACE, ESC, both shifts, left ctrl and the right/left/down
// cursor keys (up is not mapped); a full layout including shifted symbols
// is left to a config file overlay, out of scope here.
func DefaultKeymap() map[sdl.Scancode]Key {
	km := make(map[sdl.Scancode]Key, 64)
	rows := [8][8]sdl.Scancode{
		{sdl.SCANCODE_UNKNOWN, sdl.SCANCODE_S, sdl.SCANCODE_X, sdl.SCANCODE_T, sdl.SCANCODE_F, sdl.SCANCODE_H, sdl.SCANCODE_B, sdl.SCANCODE_K},
		{sdl.SCANCODE_RETURN, sdl.SCANCODE_W, sdl.SCANCODE_A, sdl.SCANCODE_R, sdl.SCANCODE_D, sdl.SCANCODE_G, sdl.SCANCODE_V, sdl.SCANCODE_J},
		{sdl.SCANCODE_RIGHT, sdl.SCANCODE_LSHIFT, sdl.SCANCODE_Z, sdl.SCANCODE_E, sdl.SCANCODE_C, sdl.SCANCODE_Y, sdl.SCANCODE_N, sdl.SCANCODE_I},
		{sdl.SCANCODE_F7, sdl.SCANCODE_4, sdl.SCANCODE_3, sdl.SCANCODE_5, sdl.SCANCODE_6, sdl.SCANCODE_7, sdl.SCANCODE_8, sdl.SCANCODE_9},
		{sdl.SCANCODE_F1, sdl.SCANCODE_Q, sdl.SCANCODE_UNKNOWN, sdl.SCANCODE_UNKNOWN, sdl.SCANCODE_UNKNOWN, sdl.SCANCODE_UNKNOWN, sdl.SCANCODE_UNKNOWN, sdl.SCANCODE_UNKNOWN},
		{sdl.SCANCODE_F3, sdl.SCANCODE_ESCAPE, sdl.SCANCODE_LCTRL, sdl.SCANCODE_UNKNOWN, sdl.SCANCODE_SPACE, sdl.SCANCODE_RSHIFT, sdl.SCANCODE_UNKNOWN, sdl.SCANCODE_UNKNOWN},
		{sdl.SCANCODE_F5, sdl.SCANCODE_2, sdl.SCANCODE_1, sdl.SCANCODE_UNKNOWN, sdl.SCANCODE_UNKNOWN, sdl.SCANCODE_UNKNOWN, sdl.SCANCODE_UNKNOWN, sdl.SCANCODE_0},
		{sdl.SCANCODE_DOWN, sdl.SCANCODE_UNKNOWN, sdl.SCANCODE_UNKNOWN, sdl.SCANCODE_UNKNOWN, sdl.SCANCODE_UNKNOWN, sdl.SCANCODE_UNKNOWN, sdl.SCANCODE_M, sdl.SCANCODE_LEFT},
	}
	for row, cols := range rows {
		for col, sc := range cols {
			if sc != sdl.SCANCODE_UNKNOWN {
				km[sc] = Key(row*8 + col)
			}
		}
	}
	return km
}

// HandleKey applies a keydown/keyup SDL event to the matrix.
func (m *Mailbox) HandleKey(sc sdl.Scancode, down bool) {
	key, ok := m.keymap[sc]
	if !ok {
		return
	}
	row, col := uint(int(key)/8), int(key)%8
	bits := m.cols[col].Load()
	if down {
		bits &^= 1 << row
	} else {
		bits |= 1 << row
	}
	m.cols[col].Store(bits)
}

// HandleJoystickButton updates one logical port's active-low state from an
// SDL joystick/game controller event.
func (m *Mailbox) HandleJoystickButton(port int, bit JoyBit, down bool) {
	reg := m.regFor(port)
	bits := reg.Load()
	if down {
		bits &^= uint32(bit)
	} else {
		bits |= uint32(bit)
	}
	reg.Store(bits)
}

func (m *Mailbox) regFor(port int) *atomic.Uint32 {
	if port == 1 {
		return &m.joy2
	}
	return &m.joy1
}

// SwapPorts toggles which logical joystick port feeds CIA1's joystick 1
// (port B) and which feeds its joystick 2 (port A), mirroring the C64's
// traditional "swap joystick ports" hotkey.
func (m *Mailbox) SwapPorts() { m.swapped.Store(!m.swapped.Load()) }

// ScanColumn implements cia.KeyboardJoystick: colMask selects which
// columns are being driven low by CIA1's PRA, and the return value is the
// row byte with a bit clear wherever a selected column has a key down.
func (m *Mailbox) ScanColumn(colMask uint8) uint8 {
	var result uint8 = 0xff
	for col := 0; col < 8; col++ {
		if colMask&(1<<uint(col)) == 0 {
			result &= uint8(m.cols[col].Load())
		}
	}
	return result
}

func (m *Mailbox) Joystick1() uint8 {
	if m.swapped.Load() {
		return uint8(m.joy2.Load())
	}
	return uint8(m.joy1.Load())
}

func (m *Mailbox) Joystick2() uint8 {
	if m.swapped.Load() {
		return uint8(m.joy1.Load())
	}
	return uint8(m.joy2.Load())
}
