package game

import (
	"image/color"

	"github.com/pthm-cable/grit/material"
	"github.com/pthm-cable/grit/ui"
	"github.com/pthm-cable/grit/world"
)

// portalColors cycles per placed pair.
var portalColors = []color.RGBA{
	{R: 220, G: 60, B: 220, A: 255},
	{R: 60, G: 220, B: 220, A: 255},
	{R: 240, G: 150, B: 40, A: 255},
	{R: 120, G: 240, B: 80, A: 255},
	{R: 250, G: 90, B: 90, A: 255},
}

// stamp places t on every in-bounds cell within radius of center.
func stamp(w *world.World, center world.XY, radius int, t material.Type, replace bool) {
	if radius < 0 {
		radius = 0
	}
	r2 := radius*radius + radius
	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			if dx*dx+dy*dy > r2 {
				continue
			}
			xy := world.XY{X: center.X + dx, Y: center.Y + dy}
			if w.InBounds(xy) {
				w.AddNewParticle(t, xy, replace)
			}
		}
	}
}

// line returns the cells from a to b inclusive (Bresenham), so a fast drag
// paints a continuous stroke.
func line(a, b world.XY) []world.XY {
	dx, dy := abs(b.X-a.X), -abs(b.Y-a.Y)
	sx, sy := 1, 1
	if a.X > b.X {
		sx = -1
	}
	if a.Y > b.Y {
		sy = -1
	}
	err := dx + dy
	cells := make([]world.XY, 0, dx-dy+1)
	for p := a; ; {
		cells = append(cells, p)
		if p == b {
			return cells
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			p.X += sx
		}
		if e2 <= dx {
			err += dx
			p.Y += sy
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// paintStroke stamps the brush along the segment from the previous stroke
// point, or at xy alone when a new stroke starts.
func (g *Game) paintStroke(xy world.XY, t material.Type, replace bool) {
	from := xy
	if g.stroking {
		from = g.lastStroke
	}
	for _, p := range line(from, xy) {
		stamp(g.world, p, int(g.tools.Radius), t, replace)
	}
	g.lastStroke = xy
	g.stroking = true
}

// endStroke ends the current brush stroke.
func (g *Game) endStroke() {
	g.stroking = false
}

// applyTool performs a single-click tool action at xy.
func (g *Game) applyTool(xy world.XY) {
	w := g.world
	switch g.tools.Tool {
	case ui.ToolSource:
		w.AddNewSource(g.tools.Material, xy, g.tools.Replace, true)
	case ui.ToolSink:
		w.AddNewSink(xy, true)
	case ui.ToolPortal:
		g.placePortal(xy)
	case ui.ToolDelete:
		w.DeleteSource(xy)
		w.DeletePortal(xy)
		if g.pendingPortal != nil && *g.pendingPortal == xy {
			g.pendingPortal = nil
		}
	}
}

// placePortal places the first or second half of a pair. The first click
// leaves an unlinked portal pending; the second links to it.
func (g *Game) placePortal(xy world.XY) {
	w := g.world
	c := portalColors[g.portalPairs%len(portalColors)]

	// The pending half may have been deleted or cleared since.
	if g.pendingPortal != nil && !w.PortalExistsAt(*g.pendingPortal) {
		g.pendingPortal = nil
	}

	if g.pendingPortal == nil {
		if w.AddNewPortal(xy, nil, g.tools.Facing, c) {
			p := xy
			g.pendingPortal = &p
			// The partner usually faces back the other way.
			g.tools.Facing = g.tools.Facing.Opposite()
		}
		return
	}
	if xy == *g.pendingPortal {
		return
	}
	if w.AddNewPortal(xy, g.pendingPortal, g.tools.Facing, c) {
		g.pendingPortal = nil
		g.portalPairs++
	}
}

// clearWorld removes all particles, sources and portals.
func (g *Game) clearWorld() {
	g.world.Clear()
	g.pendingPortal = nil
	g.stroking = false
}
