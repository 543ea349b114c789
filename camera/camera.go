// Package camera provides a 2D camera over the cell grid.
package camera

import "math"

// Camera controls the viewport into the grid. World coordinates are in cells;
// at zoom 1 one cell covers CellPixels screen pixels. The view is bounded:
// panning stops at the grid edges.
type Camera struct {
	// Position is the camera center in cell coordinates
	X, Y float32

	// Zoom level (1.0 = CellPixels per cell)
	Zoom float32

	ViewportW, ViewportH float32

	GridW, GridH float32
	CellPixels   float32

	MinZoom, MaxZoom float32
}

// New creates a camera centered on a gridW x gridH grid with zoom 1.
func New(viewportW, viewportH float32, gridW, gridH int, cellPixels float32) *Camera {
	if cellPixels <= 0 {
		cellPixels = 1
	}
	c := &Camera{
		Zoom:       1.0,
		GridW:      float32(gridW),
		GridH:      float32(gridH),
		CellPixels: cellPixels,
		MaxZoom:    8.0,
	}
	c.Resize(viewportW, viewportH)
	c.Reset()
	return c
}

// Scale returns screen pixels per cell at the current zoom.
func (c *Camera) Scale() float32 {
	return c.Zoom * c.CellPixels
}

// WorldToScreen converts cell coordinates to screen coordinates.
func (c *Camera) WorldToScreen(wx, wy float32) (sx, sy float32) {
	s := c.Scale()
	sx = c.ViewportW/2 + (wx-c.X)*s
	sy = c.ViewportH/2 + (wy-c.Y)*s
	return sx, sy
}

// ScreenToWorld converts screen coordinates to cell coordinates.
func (c *Camera) ScreenToWorld(sx, sy float32) (wx, wy float32) {
	s := c.Scale()
	wx = c.X + (sx-c.ViewportW/2)/s
	wy = c.Y + (sy-c.ViewportH/2)/s
	return wx, wy
}

// ScreenToCell returns the cell under a screen point and whether it lies
// inside the grid.
func (c *Camera) ScreenToCell(sx, sy float32) (x, y int, ok bool) {
	wx, wy := c.ScreenToWorld(sx, sy)
	x = int(math.Floor(float64(wx)))
	y = int(math.Floor(float64(wy)))
	ok = x >= 0 && y >= 0 && float32(x) < c.GridW && float32(y) < c.GridH
	return x, y, ok
}

// CellToScreen returns the screen position of a cell's top-left corner.
func (c *Camera) CellToScreen(x, y int) (sx, sy float32) {
	return c.WorldToScreen(float32(x), float32(y))
}

// IsVisible returns true if a circle at (wx, wy) with given radius in cells
// could be on screen.
func (c *Camera) IsVisible(wx, wy, radius float32) bool {
	s := c.Scale()
	halfW := c.ViewportW/(2*s) + radius
	halfH := c.ViewportH/(2*s) + radius
	return absf(wx-c.X) <= halfW && absf(wy-c.Y) <= halfH
}

// VisibleCells returns the inclusive cell range on screen, clamped to the grid.
func (c *Camera) VisibleCells() (minX, minY, maxX, maxY int) {
	s := c.Scale()
	halfW := c.ViewportW / (2 * s)
	halfH := c.ViewportH / (2 * s)
	minX = clampi(int(math.Floor(float64(c.X-halfW))), 0, int(c.GridW)-1)
	minY = clampi(int(math.Floor(float64(c.Y-halfH))), 0, int(c.GridH)-1)
	maxX = clampi(int(math.Ceil(float64(c.X+halfW))), 0, int(c.GridW)-1)
	maxY = clampi(int(math.Ceil(float64(c.Y+halfH))), 0, int(c.GridH)-1)
	return
}

// Resize updates viewport dimensions and recalculates zoom constraints.
// The minimum zoom shows the whole grid.
func (c *Camera) Resize(viewportW, viewportH float32) {
	c.ViewportW = viewportW
	c.ViewportH = viewportH
	minZoomX := viewportW / (c.GridW * c.CellPixels)
	minZoomY := viewportH / (c.GridH * c.CellPixels)
	c.MinZoom = minf(minZoomX, minZoomY)
	if c.MinZoom > 1 {
		c.MinZoom = 1
	}
	c.SetZoom(c.Zoom)
}

// Pan moves the camera by the given delta in screen pixels.
func (c *Camera) Pan(dx, dy float32) {
	s := c.Scale()
	c.X += dx / s
	c.Y += dy / s
	c.clampCenter()
}

// SetZoom sets the zoom level, clamped to min/max.
func (c *Camera) SetZoom(zoom float32) {
	c.Zoom = clamp(zoom, c.MinZoom, c.MaxZoom)
	c.clampCenter()
}

// ZoomBy multiplies the current zoom by the given factor.
func (c *Camera) ZoomBy(factor float32) {
	c.SetZoom(c.Zoom * factor)
}

// ZoomAt zooms by factor keeping the cell under (sx, sy) fixed on screen.
func (c *Camera) ZoomAt(sx, sy, factor float32) {
	wx, wy := c.ScreenToWorld(sx, sy)
	c.Zoom = clamp(c.Zoom*factor, c.MinZoom, c.MaxZoom)
	s := c.Scale()
	c.X = wx - (sx-c.ViewportW/2)/s
	c.Y = wy - (sy-c.ViewportH/2)/s
	c.clampCenter()
}

// Reset returns the camera to the grid center at zoom 1.
func (c *Camera) Reset() {
	c.X = c.GridW / 2
	c.Y = c.GridH / 2
	c.SetZoom(1.0)
}

// clampCenter keeps the view inside the grid. An axis wider on screen than
// the grid is centered instead.
func (c *Camera) clampCenter() {
	s := c.Scale()
	c.X = clampAxis(c.X, c.ViewportW/(2*s), c.GridW)
	c.Y = clampAxis(c.Y, c.ViewportH/(2*s), c.GridH)
}

func clampAxis(center, half, size float32) float32 {
	if 2*half >= size {
		return size / 2
	}
	return clamp(center, half, size-half)
}

func absf(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}

func minf(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}

// clamp restricts a value to a range.
func clamp(x, min, max float32) float32 {
	if x < min {
		return min
	}
	if x > max {
		return max
	}
	return x
}

func clampi(x, min, max int) int {
	if x < min {
		return min
	}
	if x > max {
		return max
	}
	return x
}
