package platforms

import (
	"github.com/veandco/go-sdl2/sdl"

	"github.com/firodj/sdl-smoke/internal/app"
	"github.com/firodj/sdl-smoke/internal/config"
)

// createRenderer is replaced in tests to force a renderer failure.
var createRenderer = sdl.CreateRenderer

// SDL implements a platform based on github.com/veandco/go-sdl2 (v2).
type SDL struct {
	window   *sdl.Window
	renderer *sdl.Renderer
	cfg      config.Config

	shouldStop bool
}

// NewSDL initializes the video subsystem and opens the window.
// On failure everything acquired so far is released again.
func NewSDL(cfg config.Config) (*SDL, error) {
	err := sdl.Init(sdl.INIT_VIDEO)
	if err != nil {
		return nil, &app.InitError{Stage: "SDL_Init", Err: err}
	}

	var flags uint32 = sdl.WINDOW_SHOWN | sdl.WINDOW_ALLOW_HIGHDPI
	if cfg.Resizable {
		flags |= sdl.WINDOW_RESIZABLE
	}
	window, err := sdl.CreateWindow(cfg.Title,
		sdl.WINDOWPOS_CENTERED, sdl.WINDOWPOS_CENTERED,
		cfg.Width, cfg.Height, flags)
	if err != nil {
		sdl.Quit()
		return nil, &app.InitError{Stage: "SDL_CreateWindow", Err: err}
	}

	return &SDL{
		window: window,
		cfg:    cfg,
	}, nil
}

// CreateRenderer creates the rendering context for the window.
// The renderer is owned by the platform and destroyed by Dispose.
func (platform *SDL) CreateRenderer() (*sdl.Renderer, error) {
	if platform.renderer != nil {
		return platform.renderer, nil
	}
	if platform.cfg.Driver != "" {
		sdl.SetHint(sdl.HINT_RENDER_DRIVER, platform.cfg.Driver)
	}

	var flags uint32
	if platform.cfg.VSync {
		flags |= sdl.RENDERER_PRESENTVSYNC
	}
	renderer, err := createRenderer(platform.window, -1, flags)
	if err != nil {
		return nil, &app.InitError{Stage: "SDL_CreateRenderer", Err: err}
	}
	platform.renderer = renderer
	return renderer, nil
}

// Dispose destroys the renderer and the window, then shuts SDL down.
// Calling it again is a no-op.
func (platform *SDL) Dispose() {
	if platform.renderer != nil {
		_ = platform.renderer.Destroy()
		platform.renderer = nil
	}
	if platform.window != nil {
		_ = platform.window.Destroy()
		platform.window = nil
		sdl.Quit()
	}
}

// ShouldStop returns true if the window is to be closed.
func (platform *SDL) ShouldStop() bool {
	return platform.shouldStop
}

// ProcessEvents drains all pending events without blocking.
func (platform *SDL) ProcessEvents() {
	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		if _, ok := event.(*sdl.QuitEvent); ok {
			platform.shouldStop = true
		}
	}
}

// DisplaySize returns the dimension of the display.
func (platform *SDL) DisplaySize() [2]float32 {
	w, h := platform.window.GetSize()
	return [2]float32{float32(w), float32(h)}
}

// FramebufferSize returns the dimension of the framebuffer.
func (platform *SDL) FramebufferSize() [2]float32 {
	if platform.renderer == nil {
		return platform.DisplaySize()
	}
	w, h, err := platform.renderer.GetOutputSize()
	if err != nil {
		return platform.DisplaySize()
	}
	return [2]float32{float32(w), float32(h)}
}

// RendererName returns the name of the active render driver.
func (platform *SDL) RendererName() string {
	if platform.renderer == nil {
		return ""
	}
	info, err := platform.renderer.GetInfo()
	if err != nil {
		return "unknown"
	}
	return info.Name
}
