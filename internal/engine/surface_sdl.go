//go:build sdl

package engine

import (
	"fmt"

	"github.com/Wastetoken/Palettebuddy/internal/pixel"
	"github.com/veandco/go-sdl2/sdl"
)

// sdlSurface streams frames into an SDL texture. Adapted window/renderer/
// texture lifetime: the texture is recreated when the frame size changes.
type sdlSurface struct {
	window   *sdl.Window
	renderer *sdl.Renderer
	texture  *sdl.Texture
	w, h     int
}

// NewSDLSurface opens a window sized to the frame.
func NewSDLSurface(title string, w, h int) (Surface, error) {
	if err := sdl.InitSubSystem(sdl.INIT_VIDEO); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSurfaceUnavailable, err)
	}
	window, err := sdl.CreateWindow(title,
		sdl.WINDOWPOS_CENTERED, sdl.WINDOWPOS_CENTERED,
		int32(w), int32(h), sdl.WINDOW_SHOWN)
	if err != nil {
		sdl.QuitSubSystem(sdl.INIT_VIDEO)
		return nil, fmt.Errorf("%w: %v", ErrSurfaceUnavailable, err)
	}
	renderer, err := sdl.CreateRenderer(window, -1, sdl.RENDERER_ACCELERATED|sdl.RENDERER_PRESENTVSYNC)
	if err != nil {
		window.Destroy()
		sdl.QuitSubSystem(sdl.INIT_VIDEO)
		return nil, fmt.Errorf("%w: %v", ErrSurfaceUnavailable, err)
	}
	_ = renderer.SetLogicalSize(int32(w), int32(h))
	return &sdlSurface{window: window, renderer: renderer}, nil
}

func (s *sdlSurface) ensureTexture(w, h int) error {
	if s.texture != nil && s.w == w && s.h == h {
		return nil
	}
	if s.texture != nil {
		s.texture.Destroy()
		s.texture = nil
	}
	tex, err := s.renderer.CreateTexture(
		sdl.PIXELFORMAT_ABGR8888, sdl.TEXTUREACCESS_STREAMING, int32(w), int32(h))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSurfaceUnavailable, err)
	}
	s.texture = tex
	s.w, s.h = w, h
	return nil
}

func (s *sdlSurface) Present(buf *pixel.Buffer) error {
	if err := s.ensureTexture(buf.W, buf.H); err != nil {
		return err
	}
	if err := s.texture.Update(nil, buf.Pix, buf.W*4); err != nil {
		return err
	}
	if err := s.renderer.Clear(); err != nil {
		return err
	}
	if err := s.renderer.Copy(s.texture, nil, nil); err != nil {
		return err
	}
	s.renderer.Present()

	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		if _, ok := event.(*sdl.QuitEvent); ok {
			return ErrQuit
		}
	}
	return nil
}

func (s *sdlSurface) Close() error {
	if s.texture != nil {
		s.texture.Destroy()
	}
	if s.renderer != nil {
		s.renderer.Destroy()
	}
	if s.window != nil {
		s.window.Destroy()
	}
	sdl.QuitSubSystem(sdl.INIT_VIDEO)
	return nil
}

// SupportsSDL reports whether this build carries the SDL backend.
func SupportsSDL() bool { return true }
