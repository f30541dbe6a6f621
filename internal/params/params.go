package params

import (
	"math"
	"strings"
)

// Pattern selects one of the generative transforms.
type Pattern int

const (
	Wave Pattern = iota
	Interference
	Ripple
	Prism
	Turbulence
	Glitch
	Kaleido
	Pixelate
	Scanline
	Vortex
	patternCount
)

var patternNames = [...]string{
	Wave:         "wave",
	Interference: "interference",
	Ripple:       "ripple",
	Prism:        "prism",
	Turbulence:   "turbulence",
	Glitch:       "glitch",
	Kaleido:      "kaleido",
	Pixelate:     "pixelate",
	Scanline:     "scanline",
	Vortex:       "vortex",
}

func (p Pattern) String() string {
	if p < 0 || int(p) >= len(patternNames) {
		return "wave"
	}
	return patternNames[p]
}

// Next cycles to the following pattern, wrapping at the end.
func (p Pattern) Next() Pattern {
	return Pattern((int(p) + 1) % int(patternCount))
}

// PatternNames returns all pattern identifiers in declaration order.
func PatternNames() []string {
	out := make([]string, len(patternNames))
	copy(out, patternNames[:])
	return out
}

// ParsePattern resolves a pattern name, defaulting to Wave.
func ParsePattern(name string) Pattern {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, n := range patternNames {
		if n == name {
			return Pattern(i)
		}
	}
	return Wave
}

// Parameters is the immutable per-frame parameter vector. The control surface
// replaces it wholesale between ticks; the pipeline only ever reads a copy.
type Parameters struct {
	Hue        float64 `json:"hue"`        // [0,360)
	Spectra    float64 `json:"spectra"`    // [0,100]
	Exposure   float64 `json:"exposure"`   // [0,100], 50 neutral
	Distortion float64 `json:"distortion"` // [0,100]
	Scale      float64 `json:"scale"`      // [0,100]
	Pattern    Pattern `json:"pattern"`
	Seed       int64   `json:"seed"`

	SmudgeActive bool    `json:"smudgeActive"`
	SmudgeFactor float64 `json:"smudgeFactor"` // [0,100]

	Grain     float64 `json:"grain"`     // [0,100]
	FineGrain float64 `json:"fineGrain"` // [0,100]
}

// Defaults returns a neutral starting vector.
func Defaults() Parameters {
	return Parameters{
		Hue:      200,
		Spectra:  50,
		Exposure: 50,
		Scale:    50,
		Pattern:  Wave,
		Seed:     1,
	}
}

// Clamp forces every field into its documented range. Out-of-range input is a
// boundary concern; the pipeline formulas all assume clamped values.
func (p Parameters) Clamp() Parameters {
	p.Hue = math.Mod(p.Hue, 360)
	if p.Hue < 0 {
		p.Hue += 360
	}
	p.Spectra = clamp(p.Spectra, 0, 100)
	p.Exposure = clamp(p.Exposure, 0, 100)
	p.Distortion = clamp(p.Distortion, 0, 100)
	p.Scale = clamp(p.Scale, 0, 100)
	p.SmudgeFactor = clamp(p.SmudgeFactor, 0, 100)
	p.Grain = clamp(p.Grain, 0, 100)
	p.FineGrain = clamp(p.FineGrain, 0, 100)
	if p.Pattern < 0 || p.Pattern >= patternCount {
		p.Pattern = Wave
	}
	return p
}

func clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
