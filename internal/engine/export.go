package engine

import (
	"bytes"
	"fmt"
	"image"
	"image/png"

	"github.com/Wastetoken/Palettebuddy/internal/params"
)

// MaxExportDim bounds export dimensions (4K UHD).
const MaxExportDim = 3840

// Export renders the parameter vector at the target size and encodes it as
// PNG. The pixels are exactly what a live frame at that size would show, not
// a rescale of the preview.
func Export(p params.Parameters, w, h int) ([]byte, error) {
	if w < 1 || h < 1 || w > MaxExportDim || h > MaxExportDim {
		return nil, fmt.Errorf("export size %dx%d out of range", w, h)
	}

	buf := Render(p, w, h)

	img := &image.NRGBA{
		Pix:    buf.Pix,
		Stride: buf.W * 4,
		Rect:   image.Rect(0, 0, buf.W, buf.H),
	}

	var out bytes.Buffer
	if err := png.Encode(&out, img); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return out.Bytes(), nil
}
