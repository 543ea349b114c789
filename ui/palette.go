package ui

import (
	"fmt"
	"strings"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/grit/components"
	"github.com/pthm-cable/grit/material"
)

// Tool selects what a click on the grid does.
type Tool int32

const (
	ToolBrush Tool = iota
	ToolSource
	ToolSink
	ToolPortal
	ToolDelete // removes sources, sinks and portals
)

var toolNames = []string{"Brush", "Source", "Sink", "Portal", "Delete"}

func (t Tool) String() string {
	if int(t) < len(toolNames) {
		return toolNames[t]
	}
	return fmt.Sprintf("tool(%d)", int32(t))
}

// PaletteState is the editable tool state shown by the palette.
type PaletteState struct {
	Tool     Tool
	Material material.Type
	Radius   float32
	Replace  bool
	Facing   components.Direction // facing for the next portal placed
}

const (
	rowHeight   = 24
	rowGap      = 4
	sliderMax   = 24
	paletteCols = 2
)

// paletteLayout holds the widget rectangles for one palette position.
type paletteLayout struct {
	bounds    rl.Rectangle
	tools     rl.Rectangle
	materials []rl.Rectangle
	radius    rl.Rectangle
	replace   rl.Rectangle
	facing    rl.Rectangle
	overlays  []rl.Rectangle
}

// Palette is the raygui tool panel: tool selector, material buttons, brush
// radius slider, replace toggle, portal facing and overlay checkboxes.
type Palette struct {
	renderer  *Renderer
	overlays  *OverlayRegistry
	materials []material.Type
	layout    paletteLayout
	x, y      float32
	width     float32
}

// NewPalette creates a palette anchored at (x, y).
func NewPalette(x, y, width float32, overlays *OverlayRegistry) *Palette {
	p := &Palette{
		renderer:  NewRenderer(),
		overlays:  overlays,
		materials: material.Placeable(),
		x:         x,
		y:         y,
		width:     width,
	}
	p.layout = p.computeLayout()
	return p
}

// SetPosition moves the palette.
func (p *Palette) SetPosition(x, y float32) {
	p.x, p.y = x, y
	p.layout = p.computeLayout()
}

func (p *Palette) computeLayout() paletteLayout {
	pad := float32(p.renderer.Theme.Padding)
	inner := p.width - 2*pad
	x := p.x + pad
	y := p.y + pad + float32(p.renderer.Theme.LineHeight)

	var l paletteLayout
	l.tools = rl.Rectangle{X: x, Y: y, Width: inner / float32(len(toolNames)), Height: rowHeight}
	y += rowHeight + rowGap*3

	colW := (inner - rowGap) / paletteCols
	for i := range p.materials {
		col, row := i%paletteCols, i/paletteCols
		l.materials = append(l.materials, rl.Rectangle{
			X: x + float32(col)*(colW+rowGap), Y: y + float32(row)*(rowHeight+rowGap),
			Width: colW, Height: rowHeight,
		})
	}
	rows := (len(p.materials) + paletteCols - 1) / paletteCols
	y += float32(rows)*(rowHeight+rowGap) + rowGap*2

	l.radius = rl.Rectangle{X: x + 40, Y: y, Width: inner - 80, Height: rowHeight - 6}
	y += rowHeight + rowGap
	l.replace = rl.Rectangle{X: x, Y: y, Width: rowHeight - 8, Height: rowHeight - 8}
	y += rowHeight + rowGap
	l.facing = rl.Rectangle{X: x + 60, Y: y, Width: inner - 60, Height: rowHeight}
	y += rowHeight + rowGap*3

	if p.overlays != nil {
		for range p.overlays.All() {
			l.overlays = append(l.overlays, rl.Rectangle{X: x, Y: y, Width: rowHeight - 8, Height: rowHeight - 8})
			y += rowHeight - 4
		}
	}
	l.bounds = rl.Rectangle{X: p.x, Y: p.y, Width: p.width, Height: y - p.y + pad}
	return l
}

// Contains reports whether a screen point lies on the palette, so clicks
// there are not forwarded to the grid.
func (p *Palette) Contains(x, y float32) bool {
	return rl.CheckCollisionPointRec(rl.Vector2{X: x, Y: y}, p.layout.bounds)
}

// Height returns the palette height in pixels.
func (p *Palette) Height() float32 {
	return p.layout.bounds.Height
}

// Draw renders the palette and applies any widget changes to s.
func (p *Palette) Draw(s *PaletteState) {
	l := p.layout
	r := p.renderer
	pad := r.Theme.Padding
	r.DrawPanel(int32(l.bounds.X), int32(l.bounds.Y), int32(l.bounds.Width), int32(l.bounds.Height))
	rl.DrawText("Tools", int32(p.x)+pad, int32(p.y)+pad-2, r.Theme.HeaderSize, r.Theme.SectionHeader)

	s.Tool = Tool(gui.ToggleGroup(l.tools, strings.Join(toolNames, ";"), int32(s.Tool)))

	for i, t := range p.materials {
		rect := l.materials[i]
		if gui.Toggle(rect, "   "+t.String(), s.Material == t) {
			s.Material = t
		}
		rl.DrawRectangle(int32(rect.X)+5, int32(rect.Y)+6, 10, int32(rect.Height)-12, t.Color())
	}

	rl.DrawText("Size", int32(l.radius.X)-40, int32(l.radius.Y)+2, r.Theme.FontSize, r.Theme.LabelColor)
	s.Radius = gui.SliderBar(l.radius, "", fmt.Sprintf("%.0f", s.Radius), s.Radius, 0, sliderMax)

	s.Replace = gui.CheckBox(l.replace, "Replace occupied cells", s.Replace)

	rl.DrawText("Facing", int32(l.facing.X)-60, int32(l.facing.Y)+6, r.Theme.FontSize, r.Theme.LabelColor)
	s.Facing = components.Direction(gui.ComboBox(l.facing, "up;down;left;right", int32(s.Facing)))

	if p.overlays != nil {
		for i, desc := range p.overlays.All() {
			label := fmt.Sprintf("%s [%s]", desc.Name, desc.KeyLabel)
			on := gui.CheckBox(l.overlays[i], label, p.overlays.IsEnabled(desc.ID))
			if on != p.overlays.IsEnabled(desc.ID) {
				p.overlays.SetEnabled(desc.ID, on)
			}
		}
	}
}
