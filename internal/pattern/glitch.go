package pattern

import (
	"github.com/Wastetoken/Palettebuddy/internal/pixel"
	"github.com/Wastetoken/Palettebuddy/internal/rng"
)

// glitch runs two passes: an RGB recombination that slides the red and blue
// channels apart horizontally, then a burst of horizontal slice displacements
// at seed-chosen rows. A slice occasionally goes full black or flashes
// inverted instead of sliding. Everything is drawn from the seeded stream, so
// the damage is identical for identical inputs.
func glitch(src *pixel.Buffer, ctx Context) *pixel.Buffer {
	g := rng.New(ctx.Seed)

	if ctx.Distortion > 0 {
		shift := 1 + int(ctx.Distortion/100*18)
		snap := src.Clone()
		for y := 0; y < src.H; y++ {
			for x := 0; x < src.W; x++ {
				r, _, _, _ := snap.At(snap.ClampX(x+shift), y)
				_, gr, _, _ := snap.At(x, y)
				_, _, b, a := snap.At(snap.ClampX(x-shift), y)
				src.Set(x, y, r, gr, b, a)
			}
		}
	}

	sliceCount := 5 + int(ctx.Distortion/100*30)
	maxOffset := float64(src.W) * 0.2 * (ctx.Distortion/100*0.8 + 0.2)

	for i := 0; i < sliceCount; i++ {
		row := g.Intn(src.H)
		height := 2 + g.Intn(src.H/12+1)
		if row+height > src.H {
			height = src.H - row
		}
		offset := int(g.Range(-maxOffset, maxOffset))
		roll := g.Next()

		switch {
		case roll < 0.08:
			fillSlice(src, row, height)
		case roll < 0.16:
			invertSlice(src, row, height)
		default:
			displaceSlice(src, row, height, offset)
		}
	}
	return src
}

func fillSlice(buf *pixel.Buffer, row, height int) {
	for y := row; y < row+height; y++ {
		for x := 0; x < buf.W; x++ {
			buf.Set(x, y, 0, 0, 0, 255)
		}
	}
}

// invertSlice difference-flashes the slice against white.
func invertSlice(buf *pixel.Buffer, row, height int) {
	for y := row; y < row+height; y++ {
		i := buf.Index(0, y)
		end := i + buf.W*4
		for ; i < end; i += 4 {
			buf.Pix[i] = 255 - buf.Pix[i]
			buf.Pix[i+1] = 255 - buf.Pix[i+1]
			buf.Pix[i+2] = 255 - buf.Pix[i+2]
		}
	}
}

// displaceSlice shifts the slice horizontally with wraparound.
func displaceSlice(buf *pixel.Buffer, row, height, offset int) {
	w := buf.W
	if w == 0 {
		return
	}
	offset %= w
	if offset < 0 {
		offset += w
	}
	if offset == 0 {
		return
	}
	tmp := make([]uint8, w*4)
	for y := row; y < row+height; y++ {
		rowStart := buf.Index(0, y)
		line := buf.Pix[rowStart : rowStart+w*4]
		copy(tmp[offset*4:], line[:(w-offset)*4])
		copy(tmp[:offset*4], line[(w-offset)*4:])
		copy(line, tmp)
	}
}
