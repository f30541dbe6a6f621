// Package grain overlays tiled noise textures for film-like texture. Both
// layers are seed-derived, so grained frames stay reproducible end to end.
package grain

import (
	"github.com/Wastetoken/Palettebuddy/internal/pixel"
	"github.com/Wastetoken/Palettebuddy/internal/rng"
)

// Seed offsets keeping the grain lattices decorrelated from the pattern noise.
const (
	coarseSalt = 104729
	fineSalt   = 130363
)

// Apply overlays the coarse and fine grain layers in place. A layer at zero
// opacity is skipped before any texture work happens.
func Apply(buf *pixel.Buffer, grainAmount, fineAmount, scale float64, seed int64) {
	coarseOpacity := grainAmount / 100 * 0.8
	if coarseOpacity > 0 {
		freq := 0.5 + scale/100
		cell := int(8 / freq)
		if cell < 1 {
			cell = 1
		}
		overlayNoise(buf, cell, coarseOpacity, seed+coarseSalt)
	}

	fineOpacity := fineAmount / 100 * 0.5
	if fineOpacity > 0 {
		overlayNoise(buf, 1, fineOpacity, seed+fineSalt)
	}
}

func overlayNoise(buf *pixel.Buffer, cell int, opacity float64, seed int64) {
	for y := 0; y < buf.H; y++ {
		cy := y / cell
		for x := 0; x < buf.W; x++ {
			n := rng.CellNoise(x/cell, cy, seed)
			v := uint8(128 + n*127)
			buf.BlendPixel(pixel.BlendOverlay, x, y, v, v, v, opacity)
		}
	}
}
