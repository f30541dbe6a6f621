package engine

import (
	"github.com/Wastetoken/Palettebuddy/internal/field"
	"github.com/Wastetoken/Palettebuddy/internal/grain"
	"github.com/Wastetoken/Palettebuddy/internal/params"
	"github.com/Wastetoken/Palettebuddy/internal/pattern"
	"github.com/Wastetoken/Palettebuddy/internal/pixel"
	"github.com/Wastetoken/Palettebuddy/internal/post"
)

// RenderFrame runs the full pipeline for one parameter snapshot: base field,
// pattern transform, post chain, grain. The returned buffer may differ from
// dst (some transforms recomposite); dst must not be reused by the caller.
func RenderFrame(p params.Parameters, dst *pixel.Buffer) *pixel.Buffer {
	p = p.Clamp()

	field.Generate(dst, p.Hue, p.Spectra, p.Seed)

	buf := pattern.Apply(p.Pattern, dst, pattern.Context{
		Distortion: p.Distortion,
		Scale:      p.Scale,
		Spectra:    p.Spectra,
		Seed:       p.Seed,
	})

	post.Apply(buf, p.SmudgeActive, p.SmudgeFactor, p.Exposure)
	grain.Apply(buf, p.Grain, p.FineGrain, p.Scale, p.Seed)
	return buf
}

// Render allocates a buffer and renders one frame at the given size.
func Render(p params.Parameters, w, h int) *pixel.Buffer {
	return RenderFrame(p, pixel.NewBuffer(w, h))
}
