package reactive

import (
	"testing"

	"github.com/Wastetoken/Palettebuddy/internal/analyzer"
	"github.com/Wastetoken/Palettebuddy/internal/params"
	"github.com/stretchr/testify/require"
)

type scriptedSource struct {
	energy analyzer.Energy
	closed bool
}

func (f *scriptedSource) Energy() analyzer.Energy { return f.energy }
func (f *scriptedSource) Close() error {
	f.closed = true
	return nil
}

func TestIdleSessionPassesParametersThrough(t *testing.T) {
	s := NewSession()
	p := params.Defaults()
	require.Equal(t, p, s.Effective(p))
	require.Equal(t, analyzer.Energy{}, s.Tick())
}

func TestAccumulatorAdvancesWithVolume(t *testing.T) {
	s := NewSession()
	src := &scriptedSource{energy: analyzer.Energy{Volume: 0.5}}
	s.Start(src)

	for i := 0; i < 10; i++ {
		s.Tick()
	}
	require.InDelta(t, 10*0.5*HueGain, s.HueOffset(), 1e-9)
}

func TestSilenceHoldsTheAccumulator(t *testing.T) {
	s := NewSession()
	src := &scriptedSource{energy: analyzer.Energy{Volume: 0.5}}
	s.Start(src)
	s.Tick()
	advanced := s.HueOffset()
	require.Greater(t, advanced, 0.0)

	src.energy = analyzer.Energy{Volume: 0.01} // below the gate
	for i := 0; i < 20; i++ {
		s.Tick()
	}
	require.Equal(t, advanced, s.HueOffset(), "silence must hold, not reset")
}

func TestEffectiveModulation(t *testing.T) {
	s := NewSession()
	src := &scriptedSource{energy: analyzer.Energy{Bass: 0.5, High: 0.3, Volume: 0.4}}
	s.Start(src)
	s.Tick()

	p := params.Parameters{Hue: 350, Distortion: 10, Scale: 20, Spectra: 30}
	eff := s.Effective(p)

	require.InDelta(t, 10+0.5*80, eff.Distortion, 1e-9)
	require.InDelta(t, 20+0.5*50, eff.Scale, 1e-9)
	require.InDelta(t, 30+0.3*100, eff.Spectra, 1e-9)

	wantHue := 350 + 0.4*HueGain
	if wantHue >= 360 {
		wantHue -= 360
	}
	require.InDelta(t, wantHue, eff.Hue, 1e-9)

	// persisted vector untouched
	require.InDelta(t, 350.0, p.Hue, 1e-9)
}

func TestEffectiveClampsModulatedRanges(t *testing.T) {
	s := NewSession()
	src := &scriptedSource{energy: analyzer.Energy{Bass: 1, High: 1, Volume: 1}}
	s.Start(src)
	s.Tick()

	eff := s.Effective(params.Parameters{Distortion: 90, Scale: 90, Spectra: 90})
	require.Equal(t, 100.0, eff.Distortion)
	require.Equal(t, 100.0, eff.Scale)
	require.Equal(t, 100.0, eff.Spectra)
}

func TestStopBakesWithoutVisibleJump(t *testing.T) {
	s := NewSession()
	src := &scriptedSource{energy: analyzer.Energy{Volume: 0.8}}
	s.Start(src)
	for i := 0; i < 5; i++ {
		s.Tick()
	}

	p := params.Parameters{Hue: 100}
	displayed := s.Effective(p).Hue
	baked := s.Stop(p)

	require.InDelta(t, displayed, baked.Hue, 1e-9, "baked hue must equal displayed hue")
	require.True(t, src.closed, "stop must release the capture source")
	require.Equal(t, Idle, s.State())
	require.Zero(t, s.HueOffset(), "restart must begin from zero offset")

	// after stop the session is inert: no double application
	require.InDelta(t, baked.Hue, s.Effective(baked).Hue, 1e-9)
}

func TestHueWrapsPast360(t *testing.T) {
	s := NewSession()
	src := &scriptedSource{energy: analyzer.Energy{Volume: 1}}
	s.Start(src)
	for i := 0; i < 200; i++ { // 200 * 4 degrees = 800 degrees
		s.Tick()
	}
	eff := s.Effective(params.Parameters{Hue: 300})
	require.GreaterOrEqual(t, eff.Hue, 0.0)
	require.Less(t, eff.Hue, 360.0)

	baked := s.Stop(params.Parameters{Hue: 300})
	require.GreaterOrEqual(t, baked.Hue, 0.0)
	require.Less(t, baked.Hue, 360.0)
}

func TestStartWhileListeningClosesExtraSource(t *testing.T) {
	s := NewSession()
	first := &scriptedSource{}
	second := &scriptedSource{}
	s.Start(first)
	s.Start(second)
	require.True(t, second.closed, "redundant start must not leak a capture handle")
	require.False(t, first.closed)
}
