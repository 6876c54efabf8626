// Package sdltest brings SDL up on its offscreen drivers for tests.
package sdltest

import (
	"testing"
	"unsafe"

	"github.com/veandco/go-sdl2/sdl"
)

// UseDummyVideo points SDL at the dummy video driver for the rest of t.
func UseDummyVideo(t testing.TB) {
	t.Helper()
	t.Setenv("SDL_VIDEODRIVER", "dummy")
}

// Renderer opens a hidden w x h window with a software renderer.
// It skips t when SDL cannot run here, and releases everything on cleanup.
func Renderer(t testing.TB, w, h int32) *sdl.Renderer {
	t.Helper()
	UseDummyVideo(t)

	if err := sdl.Init(sdl.INIT_VIDEO); err != nil {
		t.Skipf("SDL video unavailable: %v", err)
	}
	window, err := sdl.CreateWindow("test", sdl.WINDOWPOS_UNDEFINED, sdl.WINDOWPOS_UNDEFINED, w, h, sdl.WINDOW_HIDDEN)
	if err != nil {
		sdl.Quit()
		t.Skipf("SDL window unavailable: %v", err)
	}
	renderer, err := sdl.CreateRenderer(window, -1, sdl.RENDERER_SOFTWARE)
	if err != nil {
		_ = window.Destroy()
		sdl.Quit()
		t.Skipf("SDL software renderer unavailable: %v", err)
	}

	t.Cleanup(func() {
		_ = renderer.Destroy()
		_ = window.Destroy()
		sdl.Quit()
	})
	return renderer
}

// Pixel reads the RGBA color at x, y of the current render target.
func Pixel(t testing.TB, renderer *sdl.Renderer, x, y int32) [4]uint8 {
	t.Helper()
	var pixel [4]uint8
	rect := sdl.Rect{X: x, Y: y, W: 1, H: 1}
	// ABGR8888 is R, G, B, A in memory on little-endian hosts.
	if err := renderer.ReadPixels(&rect, sdl.PIXELFORMAT_ABGR8888, unsafe.Pointer(&pixel[0]), 4); err != nil {
		t.Fatalf("ReadPixels: %v", err)
	}
	return pixel
}
