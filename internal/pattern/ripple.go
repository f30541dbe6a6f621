package pattern

import (
	"github.com/Wastetoken/Palettebuddy/internal/pixel"
	"github.com/Wastetoken/Palettebuddy/internal/rng"
)

// ripple displaces pixels by the same noise field read at two offset phases,
// which gives a more directional wobble than turbulence's independent axes.
// Coordinates clamp at the edges like turbulence (no wraparound).
func ripple(src *pixel.Buffer, ctx Context) *pixel.Buffer {
	mag := ctx.Distortion / 100 * 24
	cell := noiseCellSize(ctx.Scale)

	const phaseCells = 37

	snap := src.Clone()
	for y := 0; y < src.H; y++ {
		cy := y / cell
		for x := 0; x < src.W; x++ {
			cx := x / cell
			dx := rng.CellNoise(cx+phaseCells, cy, ctx.Seed) * mag
			dy := rng.CellNoise(cx, cy+phaseCells, ctx.Seed) * mag

			sx := snap.ClampX(x + int(dx))
			sy := snap.ClampY(y + int(dy))
			r, g, b, a := snap.At(sx, sy)
			src.Set(x, y, r, g, b, a)
		}
	}
	return src
}
