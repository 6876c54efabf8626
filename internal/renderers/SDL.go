package renderers

import (
	"fmt"
	"unsafe"

	"github.com/inkyblackness/imgui-go/v4"
	"github.com/veandco/go-sdl2/sdl"
)

// SDLRenderer draws through an SDL 2D rendering context.
type SDLRenderer struct {
	fontTexture *sdl.Texture
	sdlRenderer *sdl.Renderer
}

// NewSDLRenderer wraps sdlRenderer. The context stays owned by the caller.
func NewSDLRenderer(sdlRenderer *sdl.Renderer) (*SDLRenderer, error) {
	if sdlRenderer == nil {
		return nil, fmt.Errorf("nil SDL renderer")
	}
	return &SDLRenderer{sdlRenderer: sdlRenderer}, nil
}

// Dispose releases the device objects created by CreateDeviceObjects.
func (renderer *SDLRenderer) Dispose() {
	renderer.destroyDeviceObjects()
}

// CreateDeviceObjects uploads the font atlas of the current imgui context.
func (renderer *SDLRenderer) CreateDeviceObjects() error {
	return renderer.createFontsTexture()
}

func (renderer *SDLRenderer) destroyFontsTexture() {
	if renderer.fontTexture != nil {
		imgui.CurrentIO().Fonts().SetTextureID(0)
		_ = renderer.fontTexture.Destroy()
		renderer.fontTexture = nil
	}
}

func (renderer *SDLRenderer) createFontsTexture() error {
	if renderer.fontTexture != nil {
		return nil
	}
	io := imgui.CurrentIO()
	image := io.Fonts().TextureDataRGBA32()

	texture, err := renderer.sdlRenderer.CreateTexture(sdl.PIXELFORMAT_ABGR8888, sdl.TEXTUREACCESS_STATIC, int32(image.Width), int32(image.Height))
	if err != nil {
		return fmt.Errorf("font texture: %w", err)
	}

	pixels := unsafe.Slice((*byte)(image.Pixels), image.Width*image.Height*4)
	if err = texture.Update(nil, pixels, 4*image.Width); err != nil {
		_ = texture.Destroy()
		return fmt.Errorf("font texture upload: %w", err)
	}
	_ = texture.SetBlendMode(sdl.BLENDMODE_BLEND)

	renderer.fontTexture = texture
	io.Fonts().SetTextureID(imgui.TextureID(unsafe.Pointer(texture)))
	return nil
}

func (renderer *SDLRenderer) destroyDeviceObjects() {
	renderer.destroyFontsTexture()
}

// DrawColor converts a normalized RGBA color to SDL's 8-bit channels.
func DrawColor(color [4]float32) (r, g, b, a uint8) {
	channel := func(v float32) uint8 {
		switch {
		case v <= 0:
			return 0
		case v >= 1:
			return 255
		}
		return uint8(v*255 + 0.5)
	}
	return channel(color[0]), channel(color[1]), channel(color[2]), channel(color[3])
}

// PreRender clears the display buffer to clearColor.
func (renderer *SDLRenderer) PreRender(clearColor [4]float32) error {
	if err := renderer.sdlRenderer.SetDrawColor(DrawColor(clearColor)); err != nil {
		return fmt.Errorf("SDL_SetRenderDrawColor: %w", err)
	}
	if err := renderer.sdlRenderer.Clear(); err != nil {
		return fmt.Errorf("SDL_RenderClear: %w", err)
	}
	return nil
}

// scissor projects an imgui clip rectangle into framebuffer space.
// It reports false when nothing of the rectangle is visible.
func scissor(clipRect imgui.Vec4, clipOff, clipScale imgui.Vec2, fbWidth, fbHeight float32) (sdl.Rect, bool) {
	minX := (clipRect.X - clipOff.X) * clipScale.X
	minY := (clipRect.Y - clipOff.Y) * clipScale.Y
	maxX := (clipRect.Z - clipOff.X) * clipScale.X
	maxY := (clipRect.W - clipOff.Y) * clipScale.Y

	if minX < 0 {
		minX = 0
	}
	if minY < 0 {
		minY = 0
	}
	if maxX > fbWidth {
		maxX = fbWidth
	}
	if maxY > fbHeight {
		maxY = fbHeight
	}
	if maxX <= minX || maxY <= minY {
		return sdl.Rect{}, false
	}
	return sdl.Rect{
		X: int32(minX),
		Y: int32(minY),
		W: int32(maxX - minX),
		H: int32(maxY - minY),
	}, true
}

// Render draws the provided imgui draw data.
func (renderer *SDLRenderer) Render(displaySize [2]float32, framebufferSize [2]float32, drawData imgui.DrawData) error {
	// Avoid rendering when minimized, scale coordinates for retina displays (screen coordinates != framebuffer coordinates)
	displayWidth, displayHeight := displaySize[0], displaySize[1]
	fbWidth, fbHeight := framebufferSize[0], framebufferSize[1]
	if fbWidth <= 0 || fbHeight <= 0 || displayWidth <= 0 || displayHeight <= 0 {
		return nil
	}

	// Backup state
	lastClipEnabled := renderer.sdlRenderer.IsClipEnabled()
	lastViewport := renderer.sdlRenderer.GetViewport()
	lastClipRect := renderer.sdlRenderer.GetClipRect()
	defer func() {
		_ = renderer.sdlRenderer.SetViewport(&lastViewport)
		if lastClipEnabled {
			_ = renderer.sdlRenderer.SetClipRect(&lastClipRect)
		} else {
			_ = renderer.sdlRenderer.SetClipRect(nil)
		}
	}()

	clipOff := drawData.DisplayPos()
	clipScale := imgui.Vec2{
		X: fbWidth / displayWidth,
		Y: fbHeight / displayHeight,
	}

	vtxSize, posVtx, uvVtx, colVtx := imgui.VertexBufferLayout()
	idxSize := imgui.IndexBufferLayout()

	for _, list := range drawData.CommandLists() {
		vertexBuffer, vertexBufferSize := list.VertexBuffer()
		indexBuffer, _ := list.IndexBuffer()
		vertexCount := vertexBufferSize / vtxSize

		for _, cmd := range list.Commands() {
			if cmd.HasUserCallback() {
				cmd.CallUserCallback(list)
				continue
			}

			r, visible := scissor(cmd.ClipRect(), clipOff, clipScale, fbWidth, fbHeight)
			if !visible {
				continue
			}
			_ = renderer.sdlRenderer.SetClipRect(&r)

			//nolint:unsafeptr
			tex := (*sdl.Texture)(unsafe.Pointer(cmd.TextureID()))
			vtxOfs := unsafe.Add(vertexBuffer, vtxSize*cmd.VertexOffset())
			idxOfs := unsafe.Add(indexBuffer, idxSize*cmd.IndexOffset())
			xy := (*float32)(unsafe.Add(vtxOfs, posVtx))
			uv := (*float32)(unsafe.Add(vtxOfs, uvVtx))
			color := (*sdl.Color)(unsafe.Add(vtxOfs, colVtx))

			err := renderer.sdlRenderer.RenderGeometryRaw(tex,
				xy, vtxSize,
				color, vtxSize,
				uv, vtxSize,
				vertexCount-cmd.VertexOffset(),
				idxOfs, cmd.ElementCount(), idxSize,
			)
			if err != nil {
				return fmt.Errorf("SDL_RenderGeometryRaw: %w", err)
			}
		}
	}
	return nil
}

// PostRender presents the frame.
func (renderer *SDLRenderer) PostRender() {
	renderer.sdlRenderer.Present()
}
