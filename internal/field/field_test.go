package field

import (
	"testing"

	"github.com/Wastetoken/Palettebuddy/internal/pixel"
	"github.com/stretchr/testify/require"
)

func render(hue, spectra float64, seed int64, w, h int) *pixel.Buffer {
	buf := pixel.NewBuffer(w, h)
	Generate(buf, hue, spectra, seed)
	return buf
}

func TestGenerateIsDeterministic(t *testing.T) {
	a := render(120, 40, 77, 64, 48)
	b := render(120, 40, 77, 64, 48)
	require.True(t, a.Equal(b), "same inputs must produce identical pixels")
}

func TestGenerateSeedSensitivity(t *testing.T) {
	a := render(120, 40, 1, 64, 48)
	b := render(120, 40, 2, 64, 48)
	require.False(t, a.Equal(b), "distinct seeds must change the field")
}

func TestGenerateFillsEveryPixelOpaque(t *testing.T) {
	buf := pixel.NewBuffer(32, 32)
	Generate(buf, 0, 0, 5)
	for y := 0; y < buf.H; y++ {
		for x := 0; x < buf.W; x++ {
			_, _, _, a := buf.At(x, y)
			require.Equal(t, uint8(255), a, "alpha at (%d,%d)", x, y)
		}
	}
}

func TestGenerateHueShiftsOutput(t *testing.T) {
	a := render(0, 50, 9, 48, 48)
	b := render(180, 50, 9, 48, 48)
	require.False(t, a.Equal(b), "hue must shift the palette")
}
