// Package emu assembles a scheduler.Machine with real ROM images, a host
// input mailbox, an audio sink and an optional mounted disk image into a
// runnable Emulator, and drives its frame loop. Construction is separate
// from the run loop so a host can inspect or wire more callbacks (jam
// notifications, RPC) before calling Run.
package emu

import (
	"fmt"
	"os"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"c64/config"
	"c64/d64"
	"c64/drive"
	"c64/emu/log"
	"c64/input"
	"c64/scheduler"
	"c64/sid"
	"c64/vic"
)

// clock rates in Hz, PAL/NTSC.
const (
	clockPAL  = 985248
	clockNTSC = 1022727
)

// Framebuffer is the double-buffered chunky pixel sink the VIC renders
// into and the host reads out, swapped lock-free via an atomic index
// rather than a mutex.
type Framebuffer struct {
	bufs [2]([vic.DisplayX * vic.DisplayY]uint8)
	next atomic.Uint32
}

func newFramebuffer() *Framebuffer { return &Framebuffer{} }

// front returns the buffer currently safe for the host to read.
func (f *Framebuffer) front() []uint8 {
	return f.bufs[1-(f.next.Load()&1)][:]
}

// back returns the buffer the VIC should render the next frame into.
func (f *Framebuffer) back() []uint8 {
	return f.bufs[f.next.Load()&1][:]
}

func (f *Framebuffer) swap() { f.next.Add(1) }

// Front returns the most recently completed frame's pixels, one byte per
// pixel holding a 4-bit VIC color index.
func (f *Framebuffer) Front() []uint8 { return f.front() }

// Emulator owns a fully wired Machine and the loop that steps it one
// raster line at a time, swapping the framebuffer on every vblank.
type Emulator struct {
	Machine *scheduler.Machine
	Mailbox *input.Mailbox
	SID     *sid.SID
	fb      *Framebuffer

	clockHz int

	quit   atomic.Bool
	paused atomic.Bool
}

// Launch builds an Emulator from cfg: it loads the KERNAL/BASIC/character
// ROM images, opens and validates the configured disk image (if any), and
// wires the keyboard/joystick mailbox into CIA1. The disk image is only
// checked and logged; it is not handed to the drive, which runs with no
// disk mechanics or GCR decoder attached.
func Launch(cfg config.Config) (*Emulator, error) {
	mailbox := input.NewMailbox()

	var mech drive.DiskMechanics
	var gcr drive.GCR
	if cfg.Machine.DriveImage != "" {
		img, err := d64.Open(cfg.Machine.DriveImage)
		if err != nil {
			return nil, fmt.Errorf("mounting disk image: %w", err)
		}
		log.ModDrive.InfoZ("disk image mounted").String("path", cfg.Machine.DriveImage).Int("tracks", img.Tracks).End()
	}

	m := scheduler.New(mailbox, mech, gcr)

	// The three system ROMs are independent files; load them concurrently
	// rather than serially stalling on each os.ReadFile in turn.
	var g errgroup.Group
	g.Go(func() error { return loadROM(cfg.Machine.KernalROM, m.Bus.KernalROM[:]) })
	g.Go(func() error { return loadROM(cfg.Machine.BasicROM, m.Bus.BasicROM[:]) })
	g.Go(func() error { return loadROM(cfg.Machine.CharROM, m.Bus.CharROM[:]) })
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if cfg.Machine.Drive1541ROM != "" {
		image, err := os.ReadFile(cfg.Machine.Drive1541ROM)
		if err != nil {
			return nil, fmt.Errorf("loading 1541 ROM: %w", err)
		}
		if err := m.LoadDriveROM(image); err != nil {
			return nil, err
		}
	}

	clockHz := clockNTSC
	if cfg.Machine.PAL {
		clockHz = clockPAL
	}

	fb := newFramebuffer()
	m.VIC.SetFramebuffer(fb.back(), vic.DisplayX)

	e := &Emulator{
		Machine: m,
		Mailbox: mailbox,
		SID:     sid.New(uint32(clockHz), 48000),
		fb:      fb,
		clockHz: clockHz,
	}

	m.Bus.SID = sidDevice{e.SID}
	m.Reset()
	return e, nil
}

// sidDevice adapts *sid.SID to machine.IODevice.
type sidDevice struct{ s *sid.SID }

func (d sidDevice) Read8(addr uint16, peek bool) uint8 { return d.s.Read8(addr, peek) }
func (d sidDevice) Write8(addr uint16, val uint8)      { d.s.Write8(addr, val) }

func loadROM(path string, dst []uint8) error {
	if path == "" {
		return nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("loading ROM %s: %w", path, err)
	}
	if len(data) != len(dst) {
		return fmt.Errorf("ROM %s: expected %d bytes, got %d", path, len(dst), len(data))
	}
	copy(dst, data)
	return nil
}

// Framebuffer exposes the pixel double-buffer for a host renderer.
func (e *Emulator) Framebuffer() *Framebuffer { return e.fb }

// RunFrame steps the machine one full frame (until the VIC wraps back to
// raster line 0), then swaps the framebuffer and drains synthesized
// audio.
func (e *Emulator) RunFrame(audioOut []int16) int {
	cyclesThisFrame := 0
	for {
		vblank, cycles := e.Machine.StepLine()
		cyclesThisFrame += cycles
		e.SID.RunFrame(cycles)
		if vblank {
			break
		}
	}
	e.fb.swap()
	e.Machine.VIC.SetFramebuffer(e.fb.back(), vic.DisplayX)
	if audioOut != nil {
		e.SID.ReadSamples(audioOut, len(audioOut))
	}
	return cyclesThisFrame
}

// Run drives the emulator at roughly its native frame rate until Stop is
// called, sleeping on a ticker while paused rather than busy-looping.
func (e *Emulator) Run() {
	frameDur := time.Second / 60
	if e.clockHz == clockPAL {
		frameDur = time.Second / 50
	}
	ticker := time.NewTicker(frameDur)
	defer ticker.Stop()

	for !e.quit.Load() {
		<-ticker.C
		if e.paused.Load() {
			continue
		}
		e.RunFrame(nil)
	}
	log.ModEmu.InfoZ("emulation loop exited").End()
}

func (e *Emulator) SetPause(pause bool) { e.paused.Store(pause) }
func (e *Emulator) Stop()               { e.quit.Store(true) }
func (e *Emulator) Reset()              { e.Machine.RequestReset() }
