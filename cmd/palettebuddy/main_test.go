package main

import "testing"

func TestNeedAudioInit(t *testing.T) {
	cases := []struct {
		noAudio  bool
		listDevs bool
		want     bool
	}{
		{false, false, true}, // default run: hotkey toggle must be able to capture
		{false, true, true},
		{true, false, false},
		{true, true, true},
	}
	for _, c := range cases {
		if got := needAudioInit(c.noAudio, c.listDevs); got != c.want {
			t.Fatalf("needAudioInit(noAudio=%v, listDevs=%v)=%v want %v",
				c.noAudio, c.listDevs, got, c.want)
		}
	}
}
