// Package field synthesizes the base color field every pattern transforms:
// an angled multi-stop color ramp with soft radial blobs composited over it.
// All randomness is drawn from the seeded generator, so a given
// (hue, spectra, seed, size) always produces the same pixels.
package field

import (
	"math"

	"github.com/Wastetoken/Palettebuddy/internal/pixel"
	"github.com/Wastetoken/Palettebuddy/internal/rng"
)

type stop struct {
	r, g, b uint8
}

// Generate fills dst with the base field for the given hue, spectral spread
// and seed. Every pixel is overwritten.
func Generate(dst *pixel.Buffer, hue, spectra float64, seed int64) {
	g := rng.New(seed)

	angle := g.Next() * 2 * math.Pi
	spread := 60 + spectra/100*120

	stopCount := 3 + g.Intn(2)
	stops := make([]stop, stopCount)
	for i := range stops {
		t := float64(i) / float64(stopCount-1)
		h := pixel.WrapHue(hue - spread/2 + spread*t)
		l := 0.35 + g.Next()*0.3
		r, gr, b := pixel.HSL(h, 0.95, l)
		stops[i] = stop{r, gr, b}
	}

	w, h := dst.W, dst.H
	cos, sin := math.Cos(angle), math.Sin(angle)

	// Projection extent along the ramp axis, so t spans [0,1] corner to corner.
	extent := math.Abs(float64(w)*cos) + math.Abs(float64(h)*sin)
	if extent <= 0 {
		extent = 1
	}
	offset := 0.0
	if cos < 0 {
		offset -= float64(w) * cos
	}
	if sin < 0 {
		offset -= float64(h) * sin
	}

	for y := 0; y < h; y++ {
		fy := float64(y)
		for x := 0; x < w; x++ {
			t := (float64(x)*cos + fy*sin + offset) / extent
			r, gr, b := rampColor(stops, t)
			dst.Set(x, y, r, gr, b, 255)
		}
	}

	blobCount := 6 + g.Intn(5)
	minDim := float64(w)
	if float64(h) < minDim {
		minDim = float64(h)
	}
	for i := 0; i < blobCount; i++ {
		bx := g.Next() * float64(w)
		by := g.Next() * float64(h)
		radius := g.Range(0.15, 0.45) * minDim
		bh := pixel.WrapHue(hue + g.Range(-180, 180))
		bl := 0.4 + g.Next()*0.25
		br, bg, bb := pixel.HSL(bh, 0.9, bl)
		compositeBlob(dst, bx, by, radius, br, bg, bb)
	}
}

func rampColor(stops []stop, t float64) (uint8, uint8, uint8) {
	if t <= 0 {
		s := stops[0]
		return s.r, s.g, s.b
	}
	if t >= 1 {
		s := stops[len(stops)-1]
		return s.r, s.g, s.b
	}
	span := t * float64(len(stops)-1)
	i := int(span)
	frac := span - float64(i)
	a, b := stops[i], stops[i+1]
	return mix8(a.r, b.r, frac), mix8(a.g, b.g, frac), mix8(a.b, b.b, frac)
}

func mix8(a, b uint8, t float64) uint8 {
	return uint8(float64(a)*(1-t) + float64(b)*t + 0.5)
}

// compositeBlob hard-lights a radial falloff of the blob color over the field.
func compositeBlob(dst *pixel.Buffer, cx, cy, radius float64, r, g, b uint8) {
	x0 := dst.ClampX(int(cx - radius))
	x1 := dst.ClampX(int(cx + radius))
	y0 := dst.ClampY(int(cy - radius))
	y1 := dst.ClampY(int(cy + radius))
	r2 := radius * radius

	for y := y0; y <= y1; y++ {
		dy := float64(y) - cy
		for x := x0; x <= x1; x++ {
			dx := float64(x) - cx
			d2 := dx*dx + dy*dy
			if d2 >= r2 {
				continue
			}
			fall := 1 - math.Sqrt(d2)/radius
			fall = fall * fall * (3 - 2*fall)
			dst.BlendPixel(pixel.BlendHardLight, x, y, r, g, b, fall)
		}
	}
}
