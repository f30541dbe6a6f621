//go:build !sdl

package engine

import "fmt"

// NewSDLSurface fails without the sdl build tag.
func NewSDLSurface(title string, w, h int) (Surface, error) {
	return nil, fmt.Errorf("%w: rebuild with -tags sdl", ErrSurfaceUnavailable)
}

// SupportsSDL reports whether this build carries the SDL backend.
func SupportsSDL() bool { return false }
