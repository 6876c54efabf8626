package platforms

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/veandco/go-sdl2/sdl"

	"github.com/firodj/sdl-smoke/internal/app"
	"github.com/firodj/sdl-smoke/internal/config"
	"github.com/firodj/sdl-smoke/internal/overlay"
	"github.com/firodj/sdl-smoke/internal/sdltest"
)

func dummyConfig() config.Config {
	cfg := config.Default()
	cfg.Width, cfg.Height = 64, 48
	cfg.Driver = "software"
	return cfg
}

// openOrSkip runs Open and skips t if SDL itself cannot start here.
func openOrSkip(t *testing.T, cfg config.Config, session *app.Session) error {
	t.Helper()
	sdltest.UseDummyVideo(t)

	err := Open(cfg, session)
	var initErr *app.InitError
	if errors.As(err, &initErr) && initErr.Stage != "SDL_CreateRenderer" {
		session.Dispose()
		t.Skipf("SDL video unavailable: %v", err)
	}
	return err
}

func TestOpenReleasesOverlayBeforePlatform(t *testing.T) {
	cfg := dummyConfig()
	cfg.Overlay = true
	session := &app.Session{}
	t.Cleanup(session.Dispose)

	if err := openOrSkip(t, cfg, session); err != nil {
		t.Fatalf("Open: %v", err)
	}
	platform, ok := session.Platform.(*SDL)
	if !ok {
		t.Fatalf("session platform is %T, want *SDL", session.Platform)
	}
	if _, ok := session.Overlay.(*overlay.Overlay); !ok {
		t.Fatalf("session overlay is %T, want *overlay.Overlay", session.Overlay)
	}
	if session.Renderer == nil || session.RendererName != "software" {
		t.Errorf("renderer = %v (%q), want the software renderer", session.Renderer, session.RendererName)
	}

	session.Dispose()

	if got, want := strings.Join(session.Released(), " "), "overlay sdl"; got != want {
		t.Errorf("release order mismatch:\ngot:  %s\nwant: %s", got, want)
	}
	if platform.window != nil || platform.renderer != nil {
		t.Errorf("window or renderer survived Dispose")
	}
	if sdl.WasInit(sdl.INIT_VIDEO) != 0 {
		t.Errorf("SDL video still initialized after Dispose")
	}
}

func TestOpenWithoutOverlay(t *testing.T) {
	session := &app.Session{}
	t.Cleanup(session.Dispose)

	if err := openOrSkip(t, dummyConfig(), session); err != nil {
		t.Fatalf("Open: %v", err)
	}
	if session.Overlay != nil {
		t.Errorf("overlay created without --overlay")
	}

	session.Dispose()
	if got, want := strings.Join(session.Released(), " "), "sdl"; got != want {
		t.Errorf("released %q, want %q", got, want)
	}
}

func TestOpenRendererFailureReleasesWindow(t *testing.T) {
	cause := errors.New("no render driver")
	createRenderer = func(*sdl.Window, int, uint32) (*sdl.Renderer, error) {
		return nil, cause
	}
	t.Cleanup(func() { createRenderer = sdl.CreateRenderer })

	session := &app.Session{}
	t.Cleanup(session.Dispose)

	err := openOrSkip(t, dummyConfig(), session)
	var initErr *app.InitError
	if !errors.As(err, &initErr) || initErr.Stage != "SDL_CreateRenderer" || !errors.Is(err, cause) {
		t.Fatalf("Open error = %v, want SDL_CreateRenderer failure", err)
	}
	if session.Platform != nil || session.Renderer != nil {
		t.Errorf("failed Open left a platform or renderer in the session")
	}
	if sdl.WasInit(sdl.INIT_VIDEO) == 0 {
		t.Fatalf("SDL shut down before the session was disposed")
	}

	session.Dispose()

	if got, want := strings.Join(session.Released(), " "), "sdl"; got != want {
		t.Errorf("released %q, want %q", got, want)
	}
	if sdl.WasInit(sdl.INIT_VIDEO) != 0 {
		t.Errorf("SDL video still initialized after Dispose")
	}
}

func TestMainWithSDL(t *testing.T) {
	sdltest.UseDummyVideo(t)
	if err := sdl.Init(sdl.INIT_VIDEO); err != nil {
		t.Skipf("SDL video unavailable: %v", err)
	}
	sdl.Quit()

	cfg := dummyConfig()
	cfg.MaxFrames = 3
	cfg.Overlay = true

	if status := app.Main(context.Background(), cfg, log.New(io.Discard), Open); status != 0 {
		t.Errorf("exit status = %d, want 0", status)
	}
	if sdl.WasInit(sdl.INIT_VIDEO) != 0 {
		t.Errorf("SDL video still initialized after Main returned")
	}
}
