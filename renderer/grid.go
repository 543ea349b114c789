// Package renderer draws the particle grid and its overlays with raylib.
package renderer

import (
	"image/color"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/grit/camera"
	"github.com/pthm-cable/grit/components"
	"github.com/pthm-cable/grit/material"
	"github.com/pthm-cable/grit/world"
)

// Background is the color painted for empty cells.
var Background = color.RGBA{R: 14, G: 16, B: 22, A: 255}

// GridRenderer paints the world into a texture with one texel per cell and
// draws it scaled through the camera.
type GridRenderer struct {
	width, height int
	pixels        []color.RGBA
	texture       rl.Texture2D
	initialized   bool
}

// NewGridRenderer creates a renderer for a width x height grid.
func NewGridRenderer(width, height int) *GridRenderer {
	return &GridRenderer{
		width:  width,
		height: height,
		pixels: make([]color.RGBA, width*height),
	}
}

// Init creates the GPU texture (must be called after the raylib window exists).
func (r *GridRenderer) Init() {
	if r.initialized {
		return
	}
	img := rl.GenImageColor(r.width, r.height, Background)
	r.texture = rl.LoadTextureFromImage(img)
	rl.UnloadImage(img)
	rl.SetTextureFilter(r.texture, rl.FilterPoint)
	r.initialized = true
}

// Paint sweeps the world into the pixel buffer and uploads it. The sweep
// also performs the per-tick flag refresh.
func (r *GridRenderer) Paint(w *world.World) {
	w.Sweep(func(xy world.XY, p world.Particle) {
		r.pixels[xy.Y*r.width+xy.X] = Shade(p.Type, xy.X, xy.Y)
	})
	if r.initialized {
		rl.UpdateTexture(r.texture, r.pixels)
	}
}

// Draw blits the grid texture through the camera.
func (r *GridRenderer) Draw(cam *camera.Camera) {
	if !r.initialized {
		r.Init()
	}
	x0, y0 := cam.CellToScreen(0, 0)
	s := cam.Scale()
	src := rl.Rectangle{X: 0, Y: 0, Width: float32(r.width), Height: float32(r.height)}
	dst := rl.Rectangle{X: x0, Y: y0, Width: float32(r.width) * s, Height: float32(r.height) * s}
	rl.DrawTexturePro(r.texture, src, dst, rl.Vector2{}, 0, rl.White)
}

// Unload frees resources.
func (r *GridRenderer) Unload() {
	if r.initialized {
		rl.UnloadTexture(r.texture)
		r.initialized = false
	}
}

// Shade returns the display color of a cell. Granular and static materials
// get a fixed per-cell brightness jitter so piles read as grains.
func Shade(t material.Type, x, y int) color.RGBA {
	if t == material.Empty {
		return Background
	}
	c := t.Color()
	if t.Fluid() {
		return c
	}
	j := int(grain(x, y)%17) - 8 // -8..8
	return color.RGBA{R: clampByte(int(c.R) + j), G: clampByte(int(c.G) + j), B: clampByte(int(c.B) + j), A: c.A}
}

func grain(x, y int) uint32 {
	h := uint32(x)*374761393 + uint32(y)*668265263
	h = (h ^ (h >> 13)) * 1274126177
	return h ^ (h >> 16)
}

func clampByte(v int) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}

// DrawChunks outlines chunks. With pending set it shows the wake set for the
// next tick, otherwise the chunks processed by the last tick.
func DrawChunks(w *world.World, cam *camera.Camera, pending bool) {
	cols, rows := w.ChunkCount()
	cs := w.ChunkSize()
	side := float32(cs) * cam.Scale()
	outline := rl.Color{R: 80, G: 220, B: 120, A: 160}
	if pending {
		outline = rl.Color{R: 240, G: 200, B: 60, A: 160}
	}
	for cy := 0; cy < rows; cy++ {
		for cx := 0; cx < cols; cx++ {
			on := w.ChunkActive(cx, cy)
			if pending {
				on = w.ChunkPending(cx, cy)
			}
			sx, sy := cam.CellToScreen(cx*cs, cy*cs)
			rect := rl.Rectangle{X: sx, Y: sy, Width: side, Height: side}
			if on {
				rl.DrawRectangleLinesEx(rect, 1, outline)
			} else {
				rl.DrawRectangleLinesEx(rect, 1, rl.Color{R: 255, G: 255, B: 255, A: 18})
			}
		}
	}
}

// DrawEntities marks sources, sinks and portals. Portals draw a tick toward
// their facing side and a faint line to their partner.
func DrawEntities(w *world.World, cam *camera.Camera) {
	s := cam.Scale()
	w.EachSource(func(xy world.XY, em components.Emitter) {
		sx, sy := cam.CellToScreen(xy.X, xy.Y)
		rect := rl.Rectangle{X: sx - 1, Y: sy - 1, Width: s + 2, Height: s + 2}
		if em.Sink() {
			rl.DrawRectangleLinesEx(rect, 1, rl.Black)
			rl.DrawLineV(rl.Vector2{X: sx, Y: sy}, rl.Vector2{X: sx + s, Y: sy + s}, rl.Red)
			return
		}
		rl.DrawRectangleLinesEx(rect, 1, em.Material.Color())
	})

	w.EachPortal(func(xy world.XY, g components.Gate) {
		sx, sy := cam.CellToScreen(xy.X, xy.Y)
		rl.DrawRectangleV(rl.Vector2{X: sx, Y: sy}, rl.Vector2{X: s, Y: s}, rl.Fade(g.Color, 0.6))

		dx, dy := g.Facing.Delta()
		cx, cy := sx+s/2, sy+s/2
		rl.DrawLineEx(rl.Vector2{X: cx, Y: cy}, rl.Vector2{X: cx + float32(dx)*s, Y: cy + float32(dy)*s}, 2, g.Color)

		// Draw the partner link once per pair.
		if g.Linked && (g.Partner.Y > xy.Y || (g.Partner.Y == xy.Y && g.Partner.X > xy.X)) {
			px, py := cam.CellToScreen(g.Partner.X, g.Partner.Y)
			rl.DrawLineV(rl.Vector2{X: cx, Y: cy}, rl.Vector2{X: px + s/2, Y: py + s/2}, rl.Fade(g.Color, 0.25))
		}
	})
}

// DrawBrush outlines the brush footprint around a cell.
func DrawBrush(cam *camera.Camera, x, y, radius int, c color.RGBA) {
	sx, sy := cam.CellToScreen(x, y)
	s := cam.Scale()
	rl.DrawCircleLines(int32(sx+s/2), int32(sy+s/2), (float32(radius)+0.5)*s, rl.Fade(c, 0.8))
}
