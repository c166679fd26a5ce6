// Package sid implements the external interface of the 6581/8580 sound
// chip: its 29-register bank at $d400 and a minimal band-limited synthesis
// sink behind it. Full SID emulation (waveform generators, ADSR envelopes,
// filter) is out of scope; this exists so the register bank has somewhere
// real to land and so the emulator produces audible output rather than
// silence, built on github.com/arl/blip.
package sid

import (
	"github.com/arl/blip"

	"c64/emu/log"
)

const numVoices = 3

// SID is the register bank CPU writes land in, plus a running mix of the
// three voices' fundamental frequency as a stand-in tone generator: real
// waveform/ADSR shaping is not modelled, only enough to prove the audio
// path end to end.
type SID struct {
	regs [0x20]uint8

	buf        *blip.Buffer
	clockRate  uint32
	sampleRate uint32
	phase      [numVoices]uint32
	prevOut    int16
}

// New builds a SID clocked at clockRate Hz (985248 for PAL, 1022727 for
// NTSC) rendering into a blip.Buffer sized for one video frame at
// sampleRate.
func New(clockRate, sampleRate uint32) *SID {
	return &SID{
		buf:        blip.NewBuffer(int(sampleRate/50) + 64),
		clockRate:  clockRate,
		sampleRate: sampleRate,
	}
}

// Read8/Write8 make SID a hwio.BankIO8: registers $00-$18 are write-only
// voice/filter controls that read back as open bus, $19-$1c are the
// (unmodelled, always-zero) ADC/envelope readback registers, $1d-$1f are
// unused.
func (s *SID) Read8(addr uint16, _ bool) uint8 {
	if addr >= 0x19 && addr <= 0x1c {
		return 0
	}
	return uint8(addr)
}

func (s *SID) Write8(addr uint16, val uint8) {
	if addr >= uint16(len(s.regs)) {
		return
	}
	s.regs[addr] = val
	log.ModSID.DebugZ("sid register write").Hex8("reg", uint8(addr)).Hex8("val", val).End()
}

// voiceFreq reads back a voice's 16-bit frequency register pair.
func (s *SID) voiceFreq(voice int) uint16 {
	base := voice * 7
	return uint16(s.regs[base]) | uint16(s.regs[base+1])<<8
}

func (s *SID) voiceGateOn(voice int) bool {
	return s.regs[voice*7+4]&0x01 != 0
}

// RunFrame advances the tone generators over cycles system clock cycles
// and emits the resulting samples into the internal blip.Buffer. It
// approximates each gated voice as a simple square wave at its
// programmed frequency; no envelope or filter is applied.
func (s *SID) RunFrame(cycles int) {
	for v := 0; v < numVoices; v++ {
		if !s.voiceGateOn(v) {
			continue
		}
		freq := s.voiceFreq(v)
		if freq == 0 {
			continue
		}
		step := uint32(freq) * (0x1000000 / (s.clockRate / 16))
		for c := 0; c < cycles; c++ {
			s.phase[v] += step
			var level int16 = -3000
			if s.phase[v]&0x800000 != 0 {
				level = 3000
			}
			if level != s.prevOut {
				s.buf.AddDelta(uint64(c), int32(level-s.prevOut))
				s.prevOut = level
			}
		}
	}
	s.buf.EndFrame(cycles)
}

// ReadSamples drains up to count synthesized mono samples into out.
func (s *SID) ReadSamples(out []int16, count int) int {
	return s.buf.ReadSamples(out, count, blip.Mono)
}

// Reset silences every voice and clears the register bank.
func (s *SID) Reset() {
	s.regs = [0x20]uint8{}
	s.phase = [numVoices]uint32{}
	s.prevOut = 0
}
