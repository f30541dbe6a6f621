package pattern

import (
	"math"

	"github.com/Wastetoken/Palettebuddy/internal/pixel"
)

// prism screens three channel-masked copies of the frame back together, each
// offset along its own direction. Offset magnitude follows distortion, the
// angular separation between the channel directions follows spectra.
func prism(src *pixel.Buffer, ctx Context) *pixel.Buffer {
	mag := 2 + ctx.Distortion/100*24
	sep := 2 * math.Pi / 3 * (0.6 + ctx.Spectra/100*0.8)

	snap := src.Clone()
	dst := src
	dst.Fill(0, 0, 0, 255)

	for ch := 0; ch < 3; ch++ {
		angle := float64(ch) * sep
		ox := int(math.Round(math.Cos(angle) * mag))
		oy := int(math.Round(math.Sin(angle) * mag))

		for y := 0; y < dst.H; y++ {
			sy := snap.ClampY(y - oy)
			for x := 0; x < dst.W; x++ {
				sx := snap.ClampX(x - ox)
				i := dst.Index(x, y) + ch
				v := snap.Pix[snap.Index(sx, sy)+ch]
				dst.Pix[i] = pixel.BlendChannel(pixel.BlendScreen, dst.Pix[i], v, 1)
			}
		}
	}
	return dst
}
