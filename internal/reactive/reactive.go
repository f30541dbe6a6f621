// Package reactive drives the parameter vector from live audio energy. The
// centerpiece is the sticky hue accumulator: it only ever advances while
// sound is present, never snaps back in silence, and is baked into the
// persisted hue exactly once when the session stops.
package reactive

import (
	"sync"

	"github.com/Wastetoken/Palettebuddy/internal/analyzer"
	"github.com/Wastetoken/Palettebuddy/internal/params"
	"github.com/Wastetoken/Palettebuddy/internal/pixel"
)

// State is the session lifecycle.
type State int

const (
	Idle State = iota
	Listening
)

// Modulation gains. Baseline values from tuning against live input.
const (
	HueGain        = 4.0  // degrees per tick at full volume
	volumeGate     = 0.02 // below this the accumulator holds still
	bassDistortion = 80
	bassScale      = 50
	highSpectra    = 100
)

// EnergySource delivers the latest band energies. The capture+analyzer pair
// implements it in production; tests inject scripted energy.
type EnergySource interface {
	Energy() analyzer.Energy
	Close() error
}

// Session owns the accumulator for one audio sync activation. It is explicit
// state passed in and out of the engine, not hidden package globals, so its
// lifetime is visibly tied to the audio session.
type Session struct {
	mu        sync.Mutex
	state     State
	source    EnergySource
	gain      float64
	hueOffset float64 // degrees, monotonically advanced
	last      analyzer.Energy
}

// NewSession returns an idle session with the baseline gain.
func NewSession() *Session {
	return &Session{gain: HueGain}
}

// State returns the current lifecycle state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Start transitions Idle -> Listening with an already-acquired source.
// Acquisition itself (which may block on the OS) belongs to the caller so the
// frame loop never waits on it.
func (s *Session) Start(source EnergySource) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == Listening {
		_ = source.Close()
		return
	}
	s.source = source
	s.hueOffset = 0
	s.last = analyzer.Energy{}
	s.state = Listening
}

// Tick reads the source once and advances the accumulator when the volume
// clears the gate. Called from the frame scheduler, never from a timer of its
// own. Returns the energy used for this tick.
func (s *Session) Tick() analyzer.Energy {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != Listening {
		return analyzer.Energy{}
	}
	e := s.source.Energy()
	if e.Volume > volumeGate {
		s.hueOffset += e.Volume * s.gain
	}
	s.last = e
	return e
}

// Effective derives the per-frame parameters from the persisted vector and
// the latest energy. The persisted vector is never written here.
func (s *Session) Effective(p params.Parameters) params.Parameters {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != Listening {
		return p
	}
	e := s.last
	p.Distortion = clamp100(p.Distortion + e.Bass*bassDistortion)
	p.Scale = clamp100(p.Scale + e.Bass*bassScale)
	p.Spectra = clamp100(p.Spectra + e.High*highSpectra)
	p.Hue = pixel.WrapHue(p.Hue + s.hueOffset)
	return p
}

// HueOffset returns the current accumulator value in degrees.
func (s *Session) HueOffset() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hueOffset
}

// Stop bakes the accumulator into the persisted hue, releases the source and
// returns the updated vector. The committed hue equals what was on screen at
// the instant of stopping, so there is no visible jump; a later Start begins
// from a zero offset against the new baseline.
func (s *Session) Stop(p params.Parameters) params.Parameters {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != Listening {
		return p
	}
	p.Hue = pixel.WrapHue(p.Hue + s.hueOffset)
	s.hueOffset = 0
	s.last = analyzer.Energy{}
	if s.source != nil {
		_ = s.source.Close()
		s.source = nil
	}
	s.state = Idle
	return p
}

func clamp100(v float64) float64 {
	if v > 100 {
		return 100
	}
	return v
}
