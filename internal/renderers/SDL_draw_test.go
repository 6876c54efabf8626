package renderers

import (
	"testing"

	"github.com/inkyblackness/imgui-go/v4"

	"github.com/firodj/sdl-smoke/internal/sdltest"
)

func TestPreRenderClears(t *testing.T) {
	sdlRenderer := sdltest.Renderer(t, 32, 32)
	renderer, err := NewSDLRenderer(sdlRenderer)
	if err != nil {
		t.Fatalf("NewSDLRenderer: %v", err)
	}

	tests := []struct {
		name  string
		color [4]float32
		want  [4]uint8
	}{
		{name: "red", color: [4]float32{1, 0, 0, 1}, want: [4]uint8{255, 0, 0, 255}},
		{name: "black", color: [4]float32{0, 0, 0, 1}, want: [4]uint8{0, 0, 0, 255}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := renderer.PreRender(tt.color); err != nil {
				t.Fatalf("PreRender: %v", err)
			}
			for _, at := range [][2]int32{{0, 0}, {16, 16}, {31, 31}} {
				if got := sdltest.Pixel(t, sdlRenderer, at[0], at[1]); got != tt.want {
					t.Errorf("pixel %v = %v, want %v", at, got, tt.want)
				}
			}
			renderer.PostRender()
		})
	}
}

func TestRenderDrawData(t *testing.T) {
	sdlRenderer := sdltest.Renderer(t, 64, 48)
	renderer, err := NewSDLRenderer(sdlRenderer)
	if err != nil {
		t.Fatalf("NewSDLRenderer: %v", err)
	}

	context := imgui.CreateContext(nil)
	defer context.Destroy()
	io := imgui.CurrentIO()
	io.SetIniFilename("")
	io.SetDisplaySize(imgui.Vec2{X: 64, Y: 48})

	if err := renderer.CreateDeviceObjects(); err != nil {
		t.Fatalf("CreateDeviceObjects: %v", err)
	}
	defer renderer.Dispose()
	if renderer.fontTexture == nil {
		t.Fatalf("font texture not created")
	}

	imgui.NewFrame()
	imgui.SetNextWindowPos(imgui.Vec2{})
	imgui.SetNextWindowSize(imgui.Vec2{X: 64, Y: 48})
	imgui.Begin("test")
	imgui.Text("hi")
	imgui.End()
	imgui.Render()

	size := [2]float32{64, 48}
	if err := renderer.PreRender([4]float32{0, 0, 0, 1}); err != nil {
		t.Fatalf("PreRender: %v", err)
	}
	if err := renderer.Render(size, size, imgui.RenderedDrawData()); err != nil {
		t.Fatalf("Render: %v", err)
	}

	if got := sdltest.Pixel(t, sdlRenderer, 32, 30); got == [4]uint8{0, 0, 0, 255} {
		t.Errorf("window background not drawn, pixel is still black")
	}
	if sdlRenderer.IsClipEnabled() {
		t.Errorf("clip rectangle left enabled after Render")
	}
	renderer.PostRender()

	renderer.Dispose()
	if renderer.fontTexture != nil {
		t.Errorf("font texture survived Dispose")
	}
}

func TestRenderMinimized(t *testing.T) {
	renderer := &SDLRenderer{}
	// A zero framebuffer returns before touching the SDL renderer.
	if err := renderer.Render([2]float32{800, 600}, [2]float32{0, 0}, imgui.DrawData(0)); err != nil {
		t.Errorf("Render with empty framebuffer: %v", err)
	}
}
