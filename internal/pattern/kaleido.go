package pattern

import (
	"math"

	"github.com/Wastetoken/Palettebuddy/internal/pixel"
)

// kaleido slices the frame into N angular wedges around the center and
// resamples every wedge from the first one, mirroring alternate wedges. All
// sampling reads a single snapshot taken before the transform, rotated by a
// base offset that follows distortion.
func kaleido(src *pixel.Buffer, ctx Context) *pixel.Buffer {
	n := 4 + int(ctx.Scale/100*12)
	baseRot := ctx.Distortion / 100 * math.Pi / 2
	wedge := 2 * math.Pi / float64(n)

	cx := float64(src.W) / 2
	cy := float64(src.H) / 2

	snap := src.Clone()
	for y := 0; y < src.H; y++ {
		dy := float64(y) - cy
		for x := 0; x < src.W; x++ {
			dx := float64(x) - cx
			radius := math.Hypot(dx, dy)
			theta := math.Atan2(dy, dx) - baseRot

			k := int(math.Floor(theta / wedge))
			local := theta - float64(k)*wedge
			odd := (((k % n) + n) % n) % 2
			if odd == 1 {
				local = wedge - local
			}

			sampleTheta := local + baseRot
			sx := int(cx + radius*math.Cos(sampleTheta))
			sy := int(cy + radius*math.Sin(sampleTheta))
			if odd == 1 {
				sx = src.W - 1 - snap.ClampX(sx)
			}

			r, g, b, a := snap.At(snap.ClampX(sx), snap.ClampY(sy))
			src.Set(x, y, r, g, b, a)
		}
	}
	return src
}
