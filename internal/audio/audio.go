// Package audio owns the PortAudio lifecycle and the microphone capture
// stream feeding the reactive modulator.
package audio

import (
	"errors"
	"sync"

	"github.com/gordonklaus/portaudio"
)

// ErrUnavailable reports that no usable input device could be opened
// (permission denied, no hardware, backend failure). Non-fatal: rendering
// continues without audio reactivity.
var ErrUnavailable = errors.New("audio input unavailable")

var (
	initOnce sync.Once
	termOnce sync.Once
	initErr  error
)

// Initialize wraps portaudio.Initialize so multiple callers are safe.
func Initialize() error {
	initOnce.Do(func() {
		initErr = portaudio.Initialize()
	})
	return initErr
}

// Terminate balances Initialize once at shutdown.
func Terminate() {
	if initErr != nil {
		return
	}
	termOnce.Do(func() {
		_ = portaudio.Terminate()
	})
}
