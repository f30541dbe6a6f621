// Package engine owns the frame scheduler: once per tick it snapshots the
// parameter vector, folds in the latest audio energy if a session is
// listening, runs the render pipeline and hands the frame to the surface.
package engine

import (
	"context"
	"errors"
	"log"
	"os"
	"sync"
	"time"

	"github.com/Wastetoken/Palettebuddy/internal/analyzer"
	"github.com/Wastetoken/Palettebuddy/internal/audio"
	"github.com/Wastetoken/Palettebuddy/internal/params"
	"github.com/Wastetoken/Palettebuddy/internal/pixel"
	"github.com/Wastetoken/Palettebuddy/internal/reactive"
)

// Config configures the engine runtime.
type Config struct {
	Width       int
	Height      int
	TargetFPS   float64
	AudioDevice string
	BufferSize  int
	SynthAudio  bool // substitute the oscillator source for a real device
	ProfilePath string
	Log         *log.Logger
}

// Engine ties parameters, audio session and pipeline to a display surface.
// The scheduler goroutine is the single rendering owner; everything shared
// with other goroutines goes through the mutex as whole-value snapshots.
type Engine struct {
	cfg     Config
	log     *log.Logger
	session *reactive.Session
	pool    *pixel.Pool
	surface Surface
	prof    *profiler

	mu          sync.RWMutex
	current     params.Parameters
	lastEnergy  analyzer.Energy
	fps         float64
	deviceLabel string
	acquiring   bool

	last time.Time
}

// New constructs an engine rendering to the given surface.
func New(cfg Config, surface Surface) *Engine {
	if cfg.TargetFPS <= 0 {
		cfg.TargetFPS = 30
	}
	if cfg.Width <= 0 {
		cfg.Width = 800
	}
	if cfg.Height <= 0 {
		cfg.Height = 600
	}
	if cfg.Log == nil {
		cfg.Log = log.New(os.Stderr, "[palettebuddy] ", log.LstdFlags)
	}
	if surface == nil {
		surface = NopSurface{}
	}
	return &Engine{
		cfg:     cfg,
		log:     cfg.Log,
		session: reactive.NewSession(),
		pool:    pixel.NewPool(cfg.Width, cfg.Height),
		surface: surface,
		prof:    newProfiler(cfg.ProfilePath, cfg.Log),
		current: params.Defaults(),
		last:    time.Now(),
	}
}

// Params returns the persisted parameter vector.
func (e *Engine) Params() params.Parameters {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.current
}

// SetParams replaces the persisted vector wholesale, clamping at the
// boundary. In-flight frames keep their snapshot.
func (e *Engine) SetParams(p params.Parameters) {
	clamped := p.Clamp()
	e.mu.Lock()
	e.current = clamped
	e.mu.Unlock()
}

// Energy returns the energy used by the most recent tick.
func (e *Engine) Energy() analyzer.Energy {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.lastEnergy
}

// FPS returns the most recently measured frame rate.
func (e *Engine) FPS() float64 {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.fps
}

// AudioActive reports whether a session is listening.
func (e *Engine) AudioActive() bool {
	return e.session.State() == reactive.Listening
}

// AudioDevice returns the label of the active input, if any.
func (e *Engine) AudioDevice() string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.deviceLabel
}

// StartAudioSync acquires an energy source off the scheduler path and starts
// the reactive session when it lands. Acquisition failure is reported once
// through the log; the engine keeps rendering non-reactively and a retry
// needs another explicit call.
func (e *Engine) StartAudioSync() {
	e.mu.Lock()
	if e.acquiring || e.session.State() == reactive.Listening {
		e.mu.Unlock()
		return
	}
	e.acquiring = true
	e.mu.Unlock()

	go func() {
		defer func() {
			e.mu.Lock()
			e.acquiring = false
			e.mu.Unlock()
		}()

		if e.cfg.SynthAudio {
			e.session.Start(newSynthSource())
			e.log.Println("audio sync started (synthetic source)")
			return
		}

		source, err := newCaptureSource(audio.Config{
			DeviceName: e.cfg.AudioDevice,
			BufferSize: e.cfg.BufferSize,
			Channels:   2,
		})
		if err != nil {
			if errors.Is(err, audio.ErrUnavailable) {
				e.log.Printf("audio sync unavailable: %v", err)
			} else {
				e.log.Printf("audio sync failed: %v", err)
			}
			return
		}

		e.mu.Lock()
		e.deviceLabel = source.deviceName()
		e.mu.Unlock()
		e.session.Start(source)
		e.log.Printf("audio sync started on %q @ %.0f Hz",
			source.deviceName(), source.capture.SampleRate())
	}()
}

// StopAudioSync bakes the hue accumulator into the persisted vector and
// releases the capture handle. Synchronous: after return no tick observes a
// half-applied offset.
func (e *Engine) StopAudioSync() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.current = e.session.Stop(e.current)
	e.deviceLabel = ""
	e.lastEnergy = analyzer.Energy{}
}

// ToggleAudioSync starts or stops depending on the session state.
func (e *Engine) ToggleAudioSync() {
	if e.AudioActive() {
		e.StopAudioSync()
	} else {
		e.StartAudioSync()
	}
}

// Snapshot returns the effective parameters the next frame would render:
// persisted values plus audio modulation when listening.
func (e *Engine) Snapshot() params.Parameters {
	return e.session.Effective(e.Params())
}

// ExportCurrent renders the current effective parameters at the target size
// into PNG bytes. Runs on the caller's goroutine, off the frame path.
func (e *Engine) ExportCurrent(w, h int) ([]byte, error) {
	return Export(e.Snapshot(), w, h)
}

// Run drives the scheduler until the context ends or the surface quits.
func (e *Engine) Run(ctx context.Context) error {
	frame := time.Duration(float64(time.Second) / e.cfg.TargetFPS)
	ticker := time.NewTicker(frame)
	defer ticker.Stop()

	e.mu.Lock()
	e.last = time.Now()
	e.mu.Unlock()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := e.step(); err != nil {
				if errors.Is(err, ErrQuit) {
					return nil
				}
				return err
			}
		}
	}
}

func (e *Engine) step() error {
	e.prof.beginFrame()

	energy := e.session.Tick()
	snapshot := e.session.Effective(e.Params())
	e.prof.mark("modulate")

	buf := RenderFrame(snapshot, e.pool.Get())
	e.prof.mark("render")

	err := e.surface.Present(buf)
	e.prof.mark("present")
	e.pool.Put(buf)

	now := time.Now()
	e.mu.Lock()
	e.lastEnergy = energy
	if delta := now.Sub(e.last).Seconds(); delta > 0 {
		e.fps = 1 / delta
	}
	e.last = now
	e.mu.Unlock()

	e.prof.endFrame()
	return err
}

// Close releases the audio session, surface and profiler.
func (e *Engine) Close() error {
	e.StopAudioSync()
	if err := e.prof.Close(); err != nil {
		e.log.Printf("profiler close: %v", err)
	}
	return e.surface.Close()
}
