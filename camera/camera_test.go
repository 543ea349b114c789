package camera

import (
	"math"
	"testing"
)

func TestNew(t *testing.T) {
	cam := New(1280, 720, 320, 176, 4)

	if cam.X != 160 || cam.Y != 88 {
		t.Errorf("expected camera at (160, 88), got (%f, %f)", cam.X, cam.Y)
	}
	if cam.Zoom != 1.0 {
		t.Errorf("expected zoom 1.0, got %f", cam.Zoom)
	}
	if cam.Scale() != 4 {
		t.Errorf("expected 4 pixels per cell, got %f", cam.Scale())
	}
}

func TestWorldToScreenCentered(t *testing.T) {
	cam := New(1280, 720, 320, 176, 4)
	cam.SetZoom(2)

	sx, sy := cam.WorldToScreen(cam.X, cam.Y)
	if math.Abs(float64(sx-640)) > 0.01 || math.Abs(float64(sy-360)) > 0.01 {
		t.Errorf("expected screen center (640, 360), got (%f, %f)", sx, sy)
	}
}

func TestScreenToWorldRoundtrip(t *testing.T) {
	cam := New(1280, 720, 320, 176, 4)
	cam.ZoomBy(3)
	cam.Pan(200, -50)

	testCases := []struct{ sx, sy float32 }{
		{640, 360},
		{100, 100},
		{1200, 600},
	}
	for _, tc := range testCases {
		wx, wy := cam.ScreenToWorld(tc.sx, tc.sy)
		sx, sy := cam.WorldToScreen(wx, wy)
		if math.Abs(float64(sx-tc.sx)) > 0.01 || math.Abs(float64(sy-tc.sy)) > 0.01 {
			t.Errorf("roundtrip failed: (%f,%f) -> (%f,%f) -> (%f,%f)",
				tc.sx, tc.sy, wx, wy, sx, sy)
		}
	}
}

func TestScreenToCell(t *testing.T) {
	cam := New(1280, 720, 320, 176, 4)
	// 176 rows cover 704 of 720 pixels, so the grid sits 8 pixels down.
	if _, _, ok := cam.ScreenToCell(9, 5); ok {
		t.Error("pixel above the first grid row should be outside")
	}
	x, y, ok := cam.ScreenToCell(9, 13)
	if !ok || x != 2 || y != 1 {
		t.Errorf("ScreenToCell(9,13) = (%d,%d,%v), want (2,1,true)", x, y, ok)
	}
	if _, _, ok := cam.ScreenToCell(1279, 719); ok {
		t.Error("pixel below the last grid row should be outside")
	}
	sx, sy := cam.CellToScreen(2, 1)
	if sx != 8 || sy != 12 {
		t.Errorf("CellToScreen(2,1) = (%f,%f), want (8,12)", sx, sy)
	}
}

func TestPanIsBounded(t *testing.T) {
	cam := New(1280, 720, 320, 176, 4)
	cam.SetZoom(2)

	cam.Pan(-100000, -100000)
	minX, minY, _, _ := cam.VisibleCells()
	if minX != 0 || minY != 0 {
		t.Errorf("view should stop at the top-left edge, got (%d,%d)", minX, minY)
	}
	if wx, wy := cam.ScreenToWorld(0, 0); math.Abs(float64(wx)) > 0.01 || math.Abs(float64(wy)) > 0.01 {
		t.Errorf("screen origin should map to cell origin, got (%f,%f)", wx, wy)
	}

	cam.Pan(100000, 100000)
	if wx, wy := cam.ScreenToWorld(1280, 720); math.Abs(float64(wx-320)) > 0.01 || math.Abs(float64(wy-176)) > 0.01 {
		t.Errorf("screen corner should map to grid corner, got (%f,%f)", wx, wy)
	}
}

func TestZoomClamping(t *testing.T) {
	cam := New(1280, 720, 320, 176, 4)

	cam.SetZoom(100)
	if cam.Zoom != cam.MaxZoom {
		t.Errorf("expected zoom clamped to max %f, got %f", cam.MaxZoom, cam.Zoom)
	}
	cam.SetZoom(0.01)
	if cam.Zoom != cam.MinZoom {
		t.Errorf("expected zoom clamped to min %f, got %f", cam.MinZoom, cam.Zoom)
	}
	// Zoomed out beyond the grid, the view centers it.
	if cam.X != 160 || cam.Y != 88 {
		t.Errorf("expected centered grid, got (%f,%f)", cam.X, cam.Y)
	}
}

func TestZoomAtKeepsCursorCell(t *testing.T) {
	cam := New(1280, 720, 320, 176, 4)
	sx, sy := float32(700), float32(300)
	before, beforeY := cam.ScreenToWorld(sx, sy)

	cam.ZoomAt(sx, sy, 2)

	after, afterY := cam.ScreenToWorld(sx, sy)
	if math.Abs(float64(after-before)) > 0.01 || math.Abs(float64(afterY-beforeY)) > 0.01 {
		t.Errorf("cell under cursor moved from (%f,%f) to (%f,%f)", before, beforeY, after, afterY)
	}
}

func TestIsVisible(t *testing.T) {
	cam := New(1280, 720, 320, 176, 4)
	cam.SetZoom(4)

	if !cam.IsVisible(cam.X, cam.Y, 0) {
		t.Error("center should be visible")
	}
	if cam.IsVisible(cam.X+100, cam.Y, 1) {
		t.Error("far cell should not be visible")
	}
}
