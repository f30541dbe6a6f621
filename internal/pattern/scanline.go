package pattern

import "github.com/Wastetoken/Palettebuddy/internal/pixel"

// scanline multiplies a tiled dark-stripe mask over the frame. Stripe height
// follows scale, stripe darkness follows distortion, and above the distortion
// threshold a chromatic-aberration pass splits the channels first.
func scanline(src *pixel.Buffer, ctx Context) *pixel.Buffer {
	if ctx.Distortion > 10 {
		aberrate(src, ctx.Distortion)
	}

	stripe := 1 + int(ctx.Scale/100*6)
	darkness := ctx.Distortion / 100 * 0.8
	if darkness <= 0 {
		return src
	}
	level := uint8((1 - darkness) * 255)

	for y := 0; y < src.H; y++ {
		if (y/stripe)%2 == 0 {
			continue
		}
		for x := 0; x < src.W; x++ {
			src.BlendPixel(pixel.BlendMultiply, x, y, level, level, level, 1)
		}
	}
	return src
}

// aberrate pushes the red and blue channels apart horizontally, dimming the
// original with multiply and lifting the shifted channel back in with screen.
func aberrate(buf *pixel.Buffer, distortion float64) {
	shift := 1 + int(distortion/100*8)
	snap := buf.Clone()

	for y := 0; y < buf.H; y++ {
		for x := 0; x < buf.W; x++ {
			i := buf.Index(x, y)

			r, _, _, _ := snap.At(snap.ClampX(x-shift), y)
			_, _, b, _ := snap.At(snap.ClampX(x+shift), y)

			dimR := pixel.BlendChannel(pixel.BlendMultiply, buf.Pix[i], 200, 1)
			dimB := pixel.BlendChannel(pixel.BlendMultiply, buf.Pix[i+2], 200, 1)
			buf.Pix[i] = pixel.BlendChannel(pixel.BlendScreen, dimR, r, 0.85)
			buf.Pix[i+2] = pixel.BlendChannel(pixel.BlendScreen, dimB, b, 0.85)
		}
	}
}
