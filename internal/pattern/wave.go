package pattern

import (
	"math"

	"github.com/Wastetoken/Palettebuddy/internal/pixel"
)

// wave shifts each scanline horizontally by a sine of its row index and each
// column vertically by a cosine of its column index, sampling R, G and B from
// three horizontally split source positions. Out-of-range samples reflect at
// the edges.
func wave(src *pixel.Buffer, ctx Context) *pixel.Buffer {
	amp := ctx.Distortion / 100 * 30
	freq := 0.02 + ctx.Scale/100*0.18
	split := 1 + int(ctx.Distortion/100*6)

	snap := src.Clone()
	for y := 0; y < src.H; y++ {
		hShift := math.Sin(float64(y)*freq) * amp
		for x := 0; x < src.W; x++ {
			vShift := math.Cos(float64(x)*freq) * amp

			sx := x + int(math.Round(hShift))
			sy := snap.ReflectY(y + int(math.Round(vShift)))

			rx := snap.ReflectX(sx - split)
			gx := snap.ReflectX(sx)
			bx := snap.ReflectX(sx + split)

			r, _, _, _ := snap.At(rx, sy)
			_, g, _, _ := snap.At(gx, sy)
			_, _, b, a := snap.At(bx, sy)
			src.Set(x, y, r, g, b, a)
		}
	}
	return src
}
