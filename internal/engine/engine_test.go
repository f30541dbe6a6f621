package engine

import (
	"bytes"
	"image/png"
	"testing"
	"time"

	"github.com/Wastetoken/Palettebuddy/internal/params"
	"github.com/stretchr/testify/require"
)

func testParams() params.Parameters {
	p := params.Defaults()
	p.Seed = 4242
	p.Pattern = params.Kaleido
	p.Distortion = 35
	p.Scale = 70
	p.Grain = 20
	return p
}

func TestRenderIsDeterministic(t *testing.T) {
	p := testParams()
	a := Render(p, 64, 64)
	b := Render(p, 64, 64)
	require.True(t, a.Equal(b), "same parameters must produce byte-identical frames")
}

func TestRenderSeedSensitivity(t *testing.T) {
	p := testParams()
	a := Render(p, 64, 64)
	p.Seed++
	b := Render(p, 64, 64)
	require.False(t, a.Equal(b), "seed change must change the frame")
}

func TestExportReproducesLiveFrame(t *testing.T) {
	p := testParams()
	data, err := Export(p, 80, 60)
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)

	live := Render(p, 80, 60)
	bounds := img.Bounds()
	require.Equal(t, 80, bounds.Dx())
	require.Equal(t, 60, bounds.Dy())

	for _, pt := range [][2]int{{0, 0}, {79, 0}, {0, 59}, {79, 59}, {40, 30}, {13, 7}} {
		r, g, b, a := img.At(pt[0], pt[1]).RGBA()
		lr, lg, lb, la := live.At(pt[0], pt[1])
		require.Equal(t, uint32(lr), r>>8, "red at %v", pt)
		require.Equal(t, uint32(lg), g>>8, "green at %v", pt)
		require.Equal(t, uint32(lb), b>>8, "blue at %v", pt)
		require.Equal(t, uint32(la), a>>8, "alpha at %v", pt)
	}
}

func TestExportRejectsBadSizes(t *testing.T) {
	p := testParams()
	for _, size := range [][2]int{{0, 10}, {10, 0}, {-1, 5}, {MaxExportDim + 1, 10}} {
		_, err := Export(p, size[0], size[1])
		require.Error(t, err, "size %v must be rejected", size)
	}
	_, err := Export(p, 16, 16)
	require.NoError(t, err)
}

func TestSetParamsClampsAtBoundary(t *testing.T) {
	e := New(Config{Width: 16, Height: 16}, NopSurface{})
	defer e.Close()

	e.SetParams(params.Parameters{Hue: 400, Distortion: 500, Exposure: -2})
	p := e.Params()
	require.InDelta(t, 40.0, p.Hue, 1e-9)
	require.Equal(t, 100.0, p.Distortion)
	require.Equal(t, 0.0, p.Exposure)
}

func TestAudioSyncLifecycleBakesHue(t *testing.T) {
	e := New(Config{Width: 16, Height: 16, SynthAudio: true}, NopSurface{})
	defer e.Close()

	start := params.Defaults()
	start.Hue = 10
	e.SetParams(start)

	e.StartAudioSync()
	require.Eventually(t, e.AudioActive, time.Second, 5*time.Millisecond)

	for i := 0; i < 5; i++ {
		require.NoError(t, e.step())
	}
	displayed := e.Snapshot().Hue
	require.NotEqual(t, start.Hue, displayed, "synth audio should advance the hue offset")

	e.StopAudioSync()
	require.False(t, e.AudioActive())
	require.InDelta(t, displayed, e.Params().Hue, 1e-9,
		"stopping must commit exactly the displayed hue")

	// restart accumulates from zero against the new baseline
	e.StartAudioSync()
	require.Eventually(t, e.AudioActive, time.Second, 5*time.Millisecond)
	require.InDelta(t, e.Params().Hue, e.Snapshot().Hue, 1e-9)
}

func TestStartAudioSyncIsIdempotentWhileListening(t *testing.T) {
	e := New(Config{Width: 16, Height: 16, SynthAudio: true}, NopSurface{})
	defer e.Close()

	e.StartAudioSync()
	require.Eventually(t, e.AudioActive, time.Second, 5*time.Millisecond)
	e.StartAudioSync() // no-op, no second session
	require.True(t, e.AudioActive())
}
