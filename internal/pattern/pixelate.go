package pattern

import "github.com/Wastetoken/Palettebuddy/internal/pixel"

// pixelate downsamples to a coarse grid and scales straight back up with
// nearest-neighbor sampling, no smoothing in either direction. Block size
// shrinks as scale rises and grows with distortion, floored at 4.
func pixelate(src *pixel.Buffer, ctx Context) *pixel.Buffer {
	block := BlockSize(ctx.Scale, ctx.Distortion)

	snap := src.Clone()
	for y := 0; y < src.H; y++ {
		sy := (y / block) * block
		for x := 0; x < src.W; x++ {
			sx := (x / block) * block
			r, g, b, a := snap.At(snap.ClampX(sx), snap.ClampY(sy))
			src.Set(x, y, r, g, b, a)
		}
	}
	return src
}

// BlockSize computes the pixelation block edge in pixels.
func BlockSize(scale, distortion float64) int {
	b := 4 + (100-scale)/100*40 + distortion/100*20
	block := int(b)
	if block < 4 {
		block = 4
	}
	return block
}
