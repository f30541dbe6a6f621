// Package post applies the frame-wide finishing passes that run after the
// pattern transform: the smudge blur and the exposure adjustment.
package post

import "github.com/Wastetoken/Palettebuddy/internal/pixel"

// Apply runs the post chain in place. smudgeFactor and exposure are assumed
// clamped to [0,100]; exposure 50 is a strict no-op.
func Apply(buf *pixel.Buffer, smudgeActive bool, smudgeFactor, exposure float64) {
	if smudgeActive && smudgeFactor > 0 {
		radius := int(smudgeFactor / 100 * 40)
		if radius > 0 {
			boxBlur(buf, radius)
		}
	}

	switch {
	case exposure > 50:
		buf.BlendUniform(pixel.BlendSoftLight, 255, 255, 255, (exposure-50)/150)
	case exposure < 50:
		buf.BlendUniform(pixel.BlendMultiply, 0, 0, 0, (50-exposure)/100)
	}
}

// boxBlur runs three separable box passes, which is close enough to a
// gaussian for a smudge and stays monotonic in the radius.
func boxBlur(buf *pixel.Buffer, radius int) {
	r := radius / 3
	if r < 1 {
		r = 1
	}
	tmp := pixel.NewBuffer(buf.W, buf.H)
	for pass := 0; pass < 3; pass++ {
		blurHorizontal(buf, tmp, r)
		blurVertical(tmp, buf, r)
	}
}

func blurHorizontal(src, dst *pixel.Buffer, r int) {
	w := src.W
	div := float64(2*r + 1)
	for y := 0; y < src.H; y++ {
		var sumR, sumG, sumB, sumA float64
		for x := -r; x <= r; x++ {
			cr, cg, cb, ca := src.At(src.ClampX(x), y)
			sumR += float64(cr)
			sumG += float64(cg)
			sumB += float64(cb)
			sumA += float64(ca)
		}
		for x := 0; x < w; x++ {
			dst.Set(x, y,
				uint8(sumR/div+0.5), uint8(sumG/div+0.5),
				uint8(sumB/div+0.5), uint8(sumA/div+0.5))

			or, og, ob, oa := src.At(src.ClampX(x-r), y)
			nr, ng, nb, na := src.At(src.ClampX(x+r+1), y)
			sumR += float64(nr) - float64(or)
			sumG += float64(ng) - float64(og)
			sumB += float64(nb) - float64(ob)
			sumA += float64(na) - float64(oa)
		}
	}
}

func blurVertical(src, dst *pixel.Buffer, r int) {
	h := src.H
	div := float64(2*r + 1)
	for x := 0; x < src.W; x++ {
		var sumR, sumG, sumB, sumA float64
		for y := -r; y <= r; y++ {
			cr, cg, cb, ca := src.At(x, src.ClampY(y))
			sumR += float64(cr)
			sumG += float64(cg)
			sumB += float64(cb)
			sumA += float64(ca)
		}
		for y := 0; y < h; y++ {
			dst.Set(x, y,
				uint8(sumR/div+0.5), uint8(sumG/div+0.5),
				uint8(sumB/div+0.5), uint8(sumA/div+0.5))

			or, og, ob, oa := src.At(x, src.ClampY(y-r))
			nr, ng, nb, na := src.At(x, src.ClampY(y+r+1))
			sumR += float64(nr) - float64(or)
			sumG += float64(ng) - float64(og)
			sumB += float64(nb) - float64(ob)
			sumA += float64(na) - float64(oa)
		}
	}
}
