package audio

import (
	"fmt"
	"strings"
	"sync"

	"github.com/gordonklaus/portaudio"
)

// Capture wraps a PortAudio input stream and keeps the most recent samples in
// a ring buffer. The PortAudio callback writes, the analyzer tick reads a
// copy; a stale read is fine because the next tick catches up.
type Capture struct {
	stream     *portaudio.Stream
	sampleRate float64
	channels   int
	deviceName string

	mu     sync.RWMutex
	ring   []float32
	cursor int
}

// Config controls how a Capture is opened.
type Config struct {
	DeviceName string // substring match, empty for the default input
	BufferSize int
	Channels   int
}

const defaultBufferSize = 4096

// NewCapture opens and starts an input stream. Failures of any kind come back
// wrapped in ErrUnavailable so the caller can degrade to non-reactive mode.
func NewCapture(cfg Config) (*Capture, error) {
	if cfg.BufferSize <= 0 {
		cfg.BufferSize = defaultBufferSize
	}
	if cfg.Channels <= 0 {
		cfg.Channels = 1
	}

	device, err := findDevice(cfg.DeviceName)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	c := &Capture{
		sampleRate: device.DefaultSampleRate,
		channels:   cfg.Channels,
		deviceName: device.Name,
		ring:       make([]float32, cfg.BufferSize),
	}

	framesPerBuffer := cfg.BufferSize / cfg.Channels
	if framesPerBuffer < 64 {
		framesPerBuffer = portaudio.FramesPerBufferUnspecified
	}

	stream, err := portaudio.OpenStream(portaudio.StreamParameters{
		Input: portaudio.StreamDeviceParameters{
			Device:   device,
			Channels: cfg.Channels,
			Latency:  device.DefaultLowInputLatency,
		},
		SampleRate:      c.sampleRate,
		FramesPerBuffer: framesPerBuffer,
	}, c.callback)
	if err != nil {
		return nil, fmt.Errorf("%w: open stream: %v", ErrUnavailable, err)
	}
	c.stream = stream

	if err := stream.Start(); err != nil {
		_ = stream.Close()
		return nil, fmt.Errorf("%w: start stream: %v", ErrUnavailable, err)
	}
	return c, nil
}

// Close stops and releases the stream. Safe to call once per capture.
func (c *Capture) Close() error {
	if c.stream == nil {
		return nil
	}
	if err := c.stream.Stop(); err != nil && !isAlreadyStopped(err) {
		return err
	}
	return c.stream.Close()
}

// SampleRate returns the stream sample rate in Hz.
func (c *Capture) SampleRate() float64 { return c.sampleRate }

// DeviceName returns the name of the opened input device.
func (c *Capture) DeviceName() string { return c.deviceName }

// Samples copies the ring buffer out in chronological order.
func (c *Capture) Samples() []float32 {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]float32, len(c.ring))
	copy(out, c.ring[c.cursor:])
	copy(out[len(c.ring)-c.cursor:], c.ring[:c.cursor])
	return out
}

func (c *Capture) callback(in []float32) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.channels > 1 {
		mono := make([]float32, len(in)/c.channels)
		for i := range mono {
			sum := float32(0)
			base := i * c.channels
			for ch := 0; ch < c.channels; ch++ {
				sum += in[base+ch]
			}
			mono[i] = sum / float32(c.channels)
		}
		in = mono
	}
	c.push(in)
}

func (c *Capture) push(in []float32) {
	if len(in) == 0 {
		return
	}
	if len(in) >= len(c.ring) {
		copy(c.ring, in[len(in)-len(c.ring):])
		c.cursor = 0
		return
	}
	n := copy(c.ring[c.cursor:], in)
	if n < len(in) {
		copy(c.ring, in[n:])
	}
	c.cursor = (c.cursor + len(in)) % len(c.ring)
}

// isAlreadyStopped matches PortAudio's invalid-stream-state code so stopping
// twice is not treated as a failure.
func isAlreadyStopped(err error) bool {
	return err != nil && strings.Contains(err.Error(), "PaErrorCode -9986")
}
