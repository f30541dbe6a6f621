package engine

import (
	"errors"

	"github.com/Wastetoken/Palettebuddy/internal/pixel"
)

// ErrSurfaceUnavailable reports that no drawable target could be acquired.
// Fatal for the render call that hit it; no partial frame is emitted.
var ErrSurfaceUnavailable = errors.New("display surface unavailable")

// ErrQuit is returned by a surface when the user closed the window.
var ErrQuit = errors.New("surface closed by user")

// Surface accepts one finished frame per tick. Implementations own scaling to
// the viewport; the engine hands over pixels and nothing else.
type Surface interface {
	Present(buf *pixel.Buffer) error
	Close() error
}

// NopSurface discards frames. Used headless and in tests.
type NopSurface struct{}

func (NopSurface) Present(*pixel.Buffer) error { return nil }
func (NopSurface) Close() error                { return nil }
