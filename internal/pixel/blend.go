package pixel

// Separable blend modes from the W3C compositing spec, evaluated per channel
// in normalized [0,1] space. Several patterns depend on the exact arithmetic
// (screen vs. additive, soft-light vs. gamma tweak), so these are the
// standard formulas verbatim, not approximations.

import "math"

// BlendMode identifies a separable per-channel blend function.
type BlendMode int

const (
	BlendMultiply BlendMode = iota
	BlendScreen
	BlendOverlay
	BlendHardLight
	BlendSoftLight
	BlendDifference
)

// Blend applies mode to a backdrop and source channel, both in [0,1].
func Blend(mode BlendMode, backdrop, source float64) float64 {
	switch mode {
	case BlendMultiply:
		return backdrop * source
	case BlendScreen:
		return backdrop + source - backdrop*source
	case BlendOverlay:
		return hardLight(source, backdrop)
	case BlendHardLight:
		return hardLight(backdrop, source)
	case BlendSoftLight:
		return softLight(backdrop, source)
	case BlendDifference:
		return math.Abs(backdrop - source)
	}
	return source
}

// overlay(b, s) = hardLight(s, b)
func hardLight(b, s float64) float64 {
	if s <= 0.5 {
		return 2 * b * s
	}
	return 1 - 2*(1-b)*(1-s)
}

func softLight(b, s float64) float64 {
	if s <= 0.5 {
		return b - (1-2*s)*b*(1-b)
	}
	var d float64
	if b <= 0.25 {
		d = ((16*b-12)*b + 4) * b
	} else {
		d = math.Sqrt(b)
	}
	return b + (2*s-1)*(d-b)
}

// BlendChannel applies mode to two 8-bit channels at the given source
// opacity, returning the composited 8-bit result.
func BlendChannel(mode BlendMode, backdrop, source uint8, opacity float64) uint8 {
	b := float64(backdrop) / 255
	s := float64(source) / 255
	out := b + (Blend(mode, b, s)-b)*opacity
	return clamp8(out * 255)
}

// BlendPixel composites one source pixel over the backdrop at (x, y).
func (buf *Buffer) BlendPixel(mode BlendMode, x, y int, r, g, b uint8, opacity float64) {
	i := buf.Index(x, y)
	buf.Pix[i] = BlendChannel(mode, buf.Pix[i], r, opacity)
	buf.Pix[i+1] = BlendChannel(mode, buf.Pix[i+1], g, opacity)
	buf.Pix[i+2] = BlendChannel(mode, buf.Pix[i+2], b, opacity)
}

// BlendUniform composites a solid color over the whole buffer.
func (buf *Buffer) BlendUniform(mode BlendMode, r, g, b uint8, opacity float64) {
	if opacity <= 0 {
		return
	}
	for i := 0; i < len(buf.Pix); i += 4 {
		buf.Pix[i] = BlendChannel(mode, buf.Pix[i], r, opacity)
		buf.Pix[i+1] = BlendChannel(mode, buf.Pix[i+1], g, opacity)
		buf.Pix[i+2] = BlendChannel(mode, buf.Pix[i+2], b, opacity)
	}
}

func clamp8(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v + 0.5)
}
