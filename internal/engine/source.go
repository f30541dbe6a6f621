package engine

import (
	"math"
	"sync"
	"time"

	"github.com/Wastetoken/Palettebuddy/internal/analyzer"
	"github.com/Wastetoken/Palettebuddy/internal/audio"
)

// captureSource couples a live capture stream with the analyzer to satisfy
// reactive.EnergySource.
type captureSource struct {
	capture *audio.Capture
	an      *analyzer.Analyzer
}

func newCaptureSource(cfg audio.Config) (*captureSource, error) {
	capture, err := audio.NewCapture(cfg)
	if err != nil {
		return nil, err
	}
	return &captureSource{
		capture: capture,
		an:      analyzer.New(analyzer.Config{SampleRate: capture.SampleRate()}),
	}, nil
}

func (c *captureSource) Energy() analyzer.Energy {
	return c.an.Analyze(c.capture.Samples())
}

func (c *captureSource) Close() error {
	return c.capture.Close()
}

func (c *captureSource) deviceName() string {
	return c.capture.DeviceName()
}

// synthSource produces oscillating band energies without a device, so the
// reactive path can be exercised with -no-audio.
type synthSource struct {
	mu    sync.Mutex
	start time.Time
}

func newSynthSource() *synthSource {
	return &synthSource{start: time.Now()}
}

func (f *synthSource) Energy() analyzer.Energy {
	f.mu.Lock()
	t := time.Since(f.start).Seconds()
	f.mu.Unlock()

	bass := 0.5 + 0.5*math.Sin(t*0.7)
	mid := 0.4 + 0.4*math.Sin(t*1.2+0.5)
	high := 0.3 + 0.3*math.Sin(t*2.1+1.0)
	return analyzer.Energy{
		Bass:   clamp01(bass),
		Mid:    clamp01(mid),
		High:   clamp01(high),
		Volume: clamp01((bass + mid + high) / 3),
	}
}

func (f *synthSource) Close() error { return nil }

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
