// Package overlay draws a small imgui window with frame diagnostics.
package overlay

import (
	"fmt"

	"github.com/inkyblackness/imgui-go/v4"

	"github.com/firodj/sdl-smoke/internal/app"
	"github.com/firodj/sdl-smoke/internal/renderers"
)

const windowFlags = imgui.WindowFlagsNoDecoration |
	imgui.WindowFlagsAlwaysAutoResize |
	imgui.WindowFlagsNoMove |
	imgui.WindowFlagsNoSavedSettings |
	imgui.WindowFlagsNoFocusOnAppearing |
	imgui.WindowFlagsNoNav

// Overlay owns an imgui context whose draw data goes to an SDLRenderer.
type Overlay struct {
	context  *imgui.Context
	renderer *renderers.SDLRenderer
}

// New creates the imgui context and uploads its font atlas through renderer.
func New(renderer *renderers.SDLRenderer) (*Overlay, error) {
	context := imgui.CreateContext(nil)
	io := imgui.CurrentIO()
	io.SetIniFilename("")

	if err := renderer.CreateDeviceObjects(); err != nil {
		context.Destroy()
		return nil, err
	}
	return &Overlay{context: context, renderer: renderer}, nil
}

// Dispose releases the font texture, then the imgui context.
func (overlay *Overlay) Dispose() {
	if overlay.context == nil {
		return
	}
	overlay.renderer.Dispose()
	overlay.context.Destroy()
	overlay.context = nil
}

// Render builds one imgui frame for stats and draws it.
func (overlay *Overlay) Render(displaySize [2]float32, framebufferSize [2]float32, stats app.Stats) error {
	io := imgui.CurrentIO()
	io.SetDisplaySize(imgui.Vec2{X: displaySize[0], Y: displaySize[1]})
	if dt := float32(stats.FrameTime.Seconds()); dt > 0 {
		io.SetDeltaTime(dt)
	}

	imgui.NewFrame()
	imgui.SetNextWindowPos(imgui.Vec2{X: 10, Y: 10})
	imgui.SetNextWindowBgAlpha(0.35)
	if imgui.BeginV("diagnostics", nil, windowFlags) {
		for _, line := range Lines(stats) {
			imgui.Text(line)
		}
	}
	imgui.End()
	imgui.Render()

	return overlay.renderer.Render(displaySize, framebufferSize, imgui.RenderedDrawData())
}

// Lines formats stats the way the overlay shows them.
func Lines(stats app.Stats) []string {
	name := stats.RendererName
	if name == "" {
		name = "unknown"
	}
	return []string{
		fmt.Sprintf("renderer: %s", name),
		fmt.Sprintf("frames:   %d", stats.Frames),
		fmt.Sprintf("fps:      %.1f", stats.FPS()),
		fmt.Sprintf("frame:    %.2f ms", float64(stats.FrameTime.Microseconds())/1000),
	}
}
