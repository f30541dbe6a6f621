package pattern

import (
	"testing"

	"github.com/Wastetoken/Palettebuddy/internal/field"
	"github.com/Wastetoken/Palettebuddy/internal/params"
	"github.com/Wastetoken/Palettebuddy/internal/pixel"
	"github.com/stretchr/testify/require"
)

func baseField(t *testing.T, w, h int, seed int64) *pixel.Buffer {
	t.Helper()
	buf := pixel.NewBuffer(w, h)
	field.Generate(buf, 200, 50, seed)
	return buf
}

func TestEveryPatternIsDeterministic(t *testing.T) {
	ctx := Context{Distortion: 60, Scale: 45, Spectra: 50, Seed: 321}
	for _, name := range params.PatternNames() {
		kind := params.ParsePattern(name)
		t.Run(name, func(t *testing.T) {
			a := Apply(kind, baseField(t, 64, 48, 321), ctx)
			b := Apply(kind, baseField(t, 64, 48, 321), ctx)
			require.True(t, a.Equal(b), "pattern %s not deterministic", name)
		})
	}
}

func TestEveryPatternChangesTheField(t *testing.T) {
	ctx := Context{Distortion: 80, Scale: 60, Spectra: 50, Seed: 11}
	for _, name := range params.PatternNames() {
		kind := params.ParsePattern(name)
		t.Run(name, func(t *testing.T) {
			before := baseField(t, 64, 48, 11)
			snapshot := before.Clone()
			after := Apply(kind, before, ctx)
			require.False(t, after.Equal(snapshot), "pattern %s left field untouched", name)
		})
	}
}

// channelSets collects the distinct values each channel takes across a frame.
func channelSets(buf *pixel.Buffer) [3]map[uint8]bool {
	var sets [3]map[uint8]bool
	for c := range sets {
		sets[c] = make(map[uint8]bool)
	}
	for i := 0; i < len(buf.Pix); i += 4 {
		sets[0][buf.Pix[i]] = true
		sets[1][buf.Pix[i+1]] = true
		sets[2][buf.Pix[i+2]] = true
	}
	return sets
}

// Wave reflects out-of-range samples, so every output channel value must have
// existed somewhere in the source. Verified at the four corners where the
// shift exceeds the frame.
func TestWaveCornersSampleFromSource(t *testing.T) {
	src := baseField(t, 40, 30, 5)
	sets := channelSets(src)
	out := Apply(params.Wave, src.Clone(), Context{Distortion: 100, Scale: 100, Seed: 5})

	for _, corner := range [][2]int{{0, 0}, {39, 0}, {0, 29}, {39, 29}} {
		r, g, b, _ := out.At(corner[0], corner[1])
		require.True(t, sets[0][r], "corner %v red not from source", corner)
		require.True(t, sets[1][g], "corner %v green not from source", corner)
		require.True(t, sets[2][b], "corner %v blue not from source", corner)
	}
}

// Ripple and turbulence clamp, which also keeps every sample inside the frame.
func TestClampedDisplacementCorners(t *testing.T) {
	for _, kind := range []params.Pattern{params.Ripple, params.Turbulence} {
		t.Run(kind.String(), func(t *testing.T) {
			src := baseField(t, 40, 30, 6)
			sets := channelSets(src)
			out := Apply(kind, src.Clone(), Context{Distortion: 100, Scale: 100, Seed: 6})
			for _, corner := range [][2]int{{0, 0}, {39, 0}, {0, 29}, {39, 29}} {
				r, g, b, _ := out.At(corner[0], corner[1])
				require.True(t, sets[0][r] && sets[1][g] && sets[2][b],
					"corner %v not sampled from source", corner)
			}
		})
	}
}

func TestVortexCornersGoBlack(t *testing.T) {
	src := baseField(t, 100, 100, 7)
	out := Apply(params.Vortex, src, Context{Distortion: 100, Scale: 0, Seed: 7})
	for _, corner := range [][2]int{{0, 0}, {99, 0}, {0, 99}, {99, 99}} {
		r, g, b, a := out.At(corner[0], corner[1])
		require.Equal(t, [4]uint8{0, 0, 0, 255}, [4]uint8{r, g, b, a},
			"corner %v should be opaque black", corner)
	}
}

func TestVortexBelowThresholdIsByteIdentical(t *testing.T) {
	src := baseField(t, 50, 50, 8)
	snapshot := src.Clone()
	out := Apply(params.Vortex, src, Context{Distortion: 3, Scale: 50, Seed: 8})
	require.True(t, out.Equal(snapshot), "distortion below 5 must be a no-op")
}

func TestPixelateBlockSize(t *testing.T) {
	require.Equal(t, 4, BlockSize(100, 0))
	require.Equal(t, 44, BlockSize(0, 0))
	require.Equal(t, 24, BlockSize(100, 100))
}

func TestPixelateBlocksAreUniform(t *testing.T) {
	src := baseField(t, 100, 100, 9)
	out := Apply(params.Pixelate, src, Context{Distortion: 0, Scale: 100, Seed: 9})

	// block size 4: every pixel matches its block origin
	for _, pt := range [][2]int{{1, 1}, {3, 3}, {50, 50}, {97, 99}, {5, 2}} {
		x, y := pt[0], pt[1]
		gr, gg, gb, _ := out.At((x/4)*4, (y/4)*4)
		r, g, b, _ := out.At(x, y)
		require.Equal(t, [3]uint8{gr, gg, gb}, [3]uint8{r, g, b},
			"pixel (%d,%d) should match its block origin", x, y)
	}
}

func TestGlitchSeedSensitivity(t *testing.T) {
	ctx1 := Context{Distortion: 70, Scale: 50, Seed: 100}
	ctx2 := Context{Distortion: 70, Scale: 50, Seed: 101}
	a := Apply(params.Glitch, baseField(t, 64, 64, 100), ctx1)
	b := Apply(params.Glitch, baseField(t, 64, 64, 100), ctx2)
	require.False(t, a.Equal(b), "glitch slices must follow the seed")
}

func TestScanlineWithoutDistortionOnlyStripes(t *testing.T) {
	src := baseField(t, 32, 32, 10)
	snapshot := src.Clone()
	out := Apply(params.Scanline, src, Context{Distortion: 0, Scale: 50, Seed: 10})
	// darkness 0: multiply mask is a no-op, no aberration below threshold
	require.True(t, out.Equal(snapshot))
}

func TestApplyUnknownKindPassesThrough(t *testing.T) {
	src := baseField(t, 16, 16, 3)
	snapshot := src.Clone()
	out := Apply(params.Pattern(42), src, Context{Seed: 3})
	require.True(t, out.Equal(snapshot))
}
