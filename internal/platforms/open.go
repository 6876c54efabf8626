package platforms

import (
	"fmt"

	"github.com/firodj/sdl-smoke/internal/app"
	"github.com/firodj/sdl-smoke/internal/config"
	"github.com/firodj/sdl-smoke/internal/overlay"
	"github.com/firodj/sdl-smoke/internal/renderers"
)

// Open is the app.Opener for SDL. The platform release covers the renderer,
// the window and SDL itself; the overlay is released before it.
func Open(cfg config.Config, session *app.Session) error {
	platform, err := NewSDL(cfg)
	if err != nil {
		return err
	}
	session.Defer("sdl", platform.Dispose)

	sdlRenderer, err := platform.CreateRenderer()
	if err != nil {
		return err
	}
	renderer, err := renderers.NewSDLRenderer(sdlRenderer)
	if err != nil {
		return err
	}
	session.Platform = platform
	session.Renderer = renderer
	session.RendererName = platform.RendererName()

	if cfg.Overlay {
		diagnostics, err := overlay.New(renderer)
		if err != nil {
			return fmt.Errorf("overlay: %w", err)
		}
		session.Defer("overlay", diagnostics.Dispose)
		session.Overlay = diagnostics
	}
	return nil
}

var _ app.Opener = Open
