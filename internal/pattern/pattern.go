// Package pattern holds the ten generative transforms. Each one consumes the
// current frame and produces the next; some mutate in place and some
// recomposite from a snapshot, but callers only ever see the unified Apply
// signature and must not assume which.
package pattern

import (
	"github.com/Wastetoken/Palettebuddy/internal/params"
	"github.com/Wastetoken/Palettebuddy/internal/pixel"
)

// Context carries the parameter slice a transform is allowed to see. All
// fields are pre-clamped.
type Context struct {
	Distortion float64 // [0,100]
	Scale      float64 // [0,100]
	Spectra    float64 // [0,100]
	Seed       int64
}

type transformFunc func(src *pixel.Buffer, ctx Context) *pixel.Buffer

var registry = map[params.Pattern]transformFunc{
	params.Wave:         wave,
	params.Interference: interference,
	params.Ripple:       ripple,
	params.Prism:        prism,
	params.Turbulence:   turbulence,
	params.Glitch:       glitch,
	params.Kaleido:      kaleido,
	params.Pixelate:     pixelate,
	params.Scanline:     scanline,
	params.Vortex:       vortex,
}

// Apply runs the selected transform. The input buffer must not be used by the
// caller afterwards; the returned buffer may or may not be the same object.
func Apply(kind params.Pattern, buf *pixel.Buffer, ctx Context) *pixel.Buffer {
	fn, ok := registry[kind]
	if !ok {
		return buf
	}
	return fn(buf, ctx)
}
