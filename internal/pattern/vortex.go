package pattern

import (
	"math"

	"github.com/Wastetoken/Palettebuddy/internal/pixel"
)

// vortexThreshold skips the polar remap entirely when distortion is too low
// to be visible; below it the frame passes through byte-identical.
const vortexThreshold = 5

// vortex remaps the frame through polar space: the twist angle falls off with
// distance from the center and the radius contracts with scale (zoom).
// Samples that land outside the frame become opaque black.
func vortex(src *pixel.Buffer, ctx Context) *pixel.Buffer {
	if ctx.Distortion < vortexThreshold {
		return src
	}

	twist := ctx.Distortion / 100 * 3.0
	zoom := 1 - ctx.Scale/100*0.5

	cx := float64(src.W) / 2
	cy := float64(src.H) / 2
	falloff := math.Min(cx, cy)
	if falloff <= 0 {
		falloff = 1
	}

	snap := src.Clone()
	for y := 0; y < src.H; y++ {
		dy := float64(y) - cy
		for x := 0; x < src.W; x++ {
			dx := float64(x) - cx
			radius := math.Hypot(dx, dy)
			theta := math.Atan2(dy, dx)

			theta += twist * (1 - radius/falloff)
			radius *= zoom

			sx := int(cx + radius*math.Cos(theta))
			sy := int(cy + radius*math.Sin(theta))
			if sx < 0 || sx >= src.W || sy < 0 || sy >= src.H {
				src.Set(x, y, 0, 0, 0, 255)
				continue
			}
			r, g, b, a := snap.At(sx, sy)
			src.Set(x, y, r, g, b, a)
		}
	}
	return src
}
