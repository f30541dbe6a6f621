package pattern

import (
	"github.com/Wastetoken/Palettebuddy/internal/pixel"
	"github.com/Wastetoken/Palettebuddy/internal/rng"
)

// turbulence displaces every pixel by two independent cell-noise lookups, one
// per axis. Samples are nearest-neighbor with coordinates clamped to the
// frame, so edges smear rather than wrap.
func turbulence(src *pixel.Buffer, ctx Context) *pixel.Buffer {
	mag := ctx.Distortion / 100 * 28
	cell := noiseCellSize(ctx.Scale)

	snap := src.Clone()
	for y := 0; y < src.H; y++ {
		cy := y / cell
		for x := 0; x < src.W; x++ {
			cx := x / cell
			dx := rng.CellNoise(cx, cy, ctx.Seed) * mag
			dy := rng.CellNoise(cx, cy, ctx.Seed+noisePhase) * mag

			sx := snap.ClampX(x + int(dx))
			sy := snap.ClampY(y + int(dy))
			r, g, b, a := snap.At(sx, sy)
			src.Set(x, y, r, g, b, a)
		}
	}
	return src
}

// noisePhase decorrelates the x and y displacement fields.
const noisePhase = 7919

// noiseCellSize maps scale [0,100] to a lattice cell size in pixels; higher
// scale means higher spatial frequency.
func noiseCellSize(scale float64) int {
	cell := 20 - int(scale/100*16)
	if cell < 2 {
		cell = 2
	}
	return cell
}
