package pattern

import (
	"math"

	"github.com/Wastetoken/Palettebuddy/internal/pixel"
	"github.com/Wastetoken/Palettebuddy/internal/rng"
)

// interference difference-blends two tiled diagonal stripe fields of
// complementary hues over the frame. The second field is rotated away from
// the first by an amount that grows with distortion, which is what produces
// the moiré beat.
func interference(src *pixel.Buffer, ctx Context) *pixel.Buffer {
	g := rng.New(ctx.Seed)

	density := 30 - ctx.Scale*0.25
	if density < 3 {
		density = 3
	}
	period := float64(src.W) / density
	if period < 2 {
		period = 2
	}

	h1 := g.Next() * 360
	h2 := pixel.WrapHue(h1 + 180)
	r1, g1, b1 := pixel.HSL(h1, 0.85, 0.5)
	r2, g2, b2 := pixel.HSL(h2, 0.85, 0.5)

	theta := math.Pi/4 + ctx.Distortion/100*math.Pi/4
	cos, sin := math.Cos(theta), math.Sin(theta)
	offset := ctx.Distortion / 100 * period

	for y := 0; y < src.H; y++ {
		fy := float64(y)
		for x := 0; x < src.W; x++ {
			fx := float64(x)
			if stripeOn(fx+fy, period) {
				src.BlendPixel(pixel.BlendDifference, x, y, r1, g1, b1, 0.6)
			}
			if stripeOn(fx*cos+fy*sin+offset, period) {
				src.BlendPixel(pixel.BlendDifference, x, y, r2, g2, b2, 0.6)
			}
		}
	}
	return src
}

func stripeOn(v, period float64) bool {
	m := math.Mod(v, period)
	if m < 0 {
		m += period
	}
	return m < period/2
}
