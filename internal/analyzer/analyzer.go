package analyzer

import (
	"math"

	"github.com/mjibson/go-dsp/fft"
)

// Analyzer reduces a window of mono samples to the three coarse band energies
// the reactive modulator consumes. It keeps a small amount of smoothing state
// (peak envelopes per band) so the output does not flicker frame to frame.
type Analyzer struct {
	sampleRate float64

	bassPeak float64
	midPeak  float64
	highPeak float64

	buffer []complex128
	window []float64
}

// Config controls Analyzer behavior.
type Config struct {
	SampleRate float64
}

// New creates an Analyzer.
func New(cfg Config) *Analyzer {
	if cfg.SampleRate <= 0 {
		cfg.SampleRate = 44_100
	}
	return &Analyzer{sampleRate: cfg.SampleRate}
}

// Band boundaries in Hz. Bass drives distortion/scale, high drives spectra.
const (
	bassLow  = 20
	bassHigh = 250
	midHigh  = 2000
	highTop  = 8000
)

// Analyze windows the samples, runs an FFT and averages contiguous index
// ranges of the magnitude spectrum into the three bands plus overall volume.
func (a *Analyzer) Analyze(samples []float32) Energy {
	if len(samples) == 0 {
		return Energy{}
	}

	size := nextPow2(min(len(samples), 2048))
	if size < 256 {
		size = 256
	}
	a.ensureWorkspace(size)

	buffer := a.buffer[:size]
	window := a.window[:size]
	for i := 0; i < size; i++ {
		if i < len(samples) {
			buffer[i] = complex(float64(samples[i])*window[i], 0)
			continue
		}
		buffer[i] = 0
	}

	spectrum := fft.FFT(buffer)
	resolution := a.sampleRate / float64(size)

	bass := bandEnergy(spectrum, resolution, bassLow, bassHigh)
	mid := bandEnergy(spectrum, resolution, bassHigh, midHigh)
	high := bandEnergy(spectrum, resolution, midHigh, highTop)

	a.bassPeak = envelope(a.bassPeak, bass)
	a.midPeak = envelope(a.midPeak, mid)
	a.highPeak = envelope(a.highPeak, high)

	out := Energy{
		Bass: normalize(bass, a.bassPeak),
		Mid:  normalize(mid, a.midPeak),
		High: normalize(high, a.highPeak),
	}
	out.Volume = clamp01((out.Bass + out.Mid + out.High) / 3)
	return out
}

func bandEnergy(spectrum []complex128, resolution, minHz, maxHz float64) float64 {
	lo := int(math.Floor(minHz / resolution))
	hi := int(math.Ceil(maxHz/resolution)) + 1
	if hi > len(spectrum)/2 {
		hi = len(spectrum) / 2
	}
	if lo >= hi {
		return 0
	}
	sum := 0.0
	for _, v := range spectrum[lo:hi] {
		sum += math.Sqrt(real(v)*real(v) + imag(v)*imag(v))
	}
	normalized := sum / float64(hi-lo)
	return clamp01(normalized)
}

// envelope tracks a slowly decaying per-band peak used for normalization.
func envelope(peak, value float64) float64 {
	const attack, release = 0.94, 0.97
	if value > peak {
		return peak*attack + value*(1-attack)
	}
	return peak * release
}

func normalize(value, peak float64) float64 {
	if peak < 0.01 {
		return clamp01(value)
	}
	return clamp01(value / peak)
}

func (a *Analyzer) ensureWorkspace(size int) {
	if len(a.buffer) != size {
		a.buffer = make([]complex128, size)
	}
	if len(a.window) != size {
		a.window = make([]float64, size)
		sizeF := float64(size)
		for i := range a.window {
			a.window[i] = hann(float64(i), sizeF)
		}
	}
}

func hann(i, size float64) float64 {
	return 0.5 * (1.0 - math.Cos(2.0*math.Pi*i/size))
}

func nextPow2(n int) int {
	if n <= 0 {
		return 1
	}
	n--
	n |= n >> 1
	n |= n >> 2
	n |= n >> 4
	n |= n >> 8
	n |= n >> 16
	return n + 1
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
