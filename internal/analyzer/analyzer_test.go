package analyzer

import (
	"math"
	"testing"
)

func sine(freq, sampleRate float64, n int) []float32 {
	out := make([]float32, n)
	for i := range out {
		out[i] = float32(math.Sin(2 * math.Pi * freq * float64(i) / sampleRate))
	}
	return out
}

func TestEmptySamplesYieldZeroEnergy(t *testing.T) {
	a := New(Config{SampleRate: 44_100})
	e := a.Analyze(nil)
	if e != (Energy{}) {
		t.Fatalf("expected zero energy, got %+v", e)
	}
}

func TestBassToneLandsInBassBand(t *testing.T) {
	a := New(Config{SampleRate: 44_100})
	e := a.Analyze(sine(100, 44_100, 2048))
	if e.Bass <= e.High {
		t.Fatalf("100 Hz tone: bass=%f should exceed high=%f", e.Bass, e.High)
	}
	if e.Volume <= 0 {
		t.Fatalf("tone should register volume, got %f", e.Volume)
	}
}

func TestHighToneLandsInHighBand(t *testing.T) {
	a := New(Config{SampleRate: 44_100})
	e := a.Analyze(sine(5000, 44_100, 2048))
	if e.High <= e.Bass {
		t.Fatalf("5 kHz tone: high=%f should exceed bass=%f", e.High, e.Bass)
	}
}

func TestEnergyStaysInUnitRange(t *testing.T) {
	a := New(Config{SampleRate: 44_100})
	loud := make([]float32, 2048)
	for i := range loud {
		loud[i] = 1
	}
	e := a.Analyze(loud)
	for name, v := range map[string]float64{"bass": e.Bass, "mid": e.Mid, "high": e.High, "volume": e.Volume} {
		if v < 0 || v > 1 {
			t.Fatalf("%s=%f out of [0,1]", name, v)
		}
	}
}

func TestNextPow2(t *testing.T) {
	cases := map[int]int{
		0:   1,
		1:   1,
		2:   2,
		3:   4,
		5:   8,
		16:  16,
		31:  32,
		257: 512,
	}
	for input, want := range cases {
		if got := nextPow2(input); got != want {
			t.Fatalf("nextPow2(%d)=%d want=%d", input, got, want)
		}
	}
}
