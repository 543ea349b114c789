package game

import (
	"log/slog"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/grit/components"
	"github.com/pthm-cable/grit/config"
	"github.com/pthm-cable/grit/material"
	"github.com/pthm-cable/grit/ui"
	"github.com/pthm-cable/grit/world"
)

const maxBrushRadius = 24

// handleInput processes keyboard and mouse input.
func (g *Game) handleInput() {
	g.handleResize()

	if rl.IsKeyPressed(rl.KeyF11) {
		rl.ToggleFullscreen()
	}

	if rl.IsKeyPressed(rl.KeySpace) {
		g.paused = !g.paused
	}
	// Single step while paused
	if g.paused && rl.IsKeyPressed(rl.KeyN) {
		g.step()
	}

	// Steps-per-update control with < > keys (comma and period)
	if rl.IsKeyPressed(rl.KeyComma) && g.stepsPerUpdate > 1 {
		g.stepsPerUpdate--
	}
	if rl.IsKeyPressed(rl.KeyPeriod) && g.stepsPerUpdate < maxStepsPerUpdate {
		g.stepsPerUpdate++
	}

	if key := rl.GetKeyPressed(); key != 0 {
		if id, on, ok := g.overlays.HandleKeyPress(key); ok {
			slog.Debug("overlay toggled", "overlay", id, "enabled", on)
		}
	}

	g.handleToolKeys()
	g.handleCameraInput()
	g.handleMouse()
}

// handleResize rebuilds the world when the window size changes the derived
// grid dimensions, and otherwise just refits the camera and panels.
func (g *Game) handleResize() {
	if !rl.IsWindowResized() {
		return
	}
	w := float32(rl.GetScreenWidth())
	h := float32(rl.GetScreenHeight())
	if w == g.screenWidth && h == g.screenHeight {
		return
	}
	g.screenWidth = w
	g.screenHeight = h
	g.layoutPanels()

	cfg := config.Cfg()
	cfg.Resize(int(w), int(h))
	if cfg.Derived.WorldW == g.world.Width() && cfg.Derived.WorldH == g.world.Height() {
		g.camera.Resize(w, h)
		return
	}
	if err := g.buildWorld(); err != nil {
		// Keep the old world; the scenario may not fit the new size.
		slog.Error("failed to rebuild world after resize", "error", err)
		g.camera.Resize(w, h)
	}
}

// handleToolKeys processes tool and brush shortcuts.
func (g *Game) handleToolKeys() {
	keys := []int32{rl.KeyOne, rl.KeyTwo, rl.KeyThree, rl.KeyFour, rl.KeyFive}
	for i, k := range keys {
		if rl.IsKeyPressed(k) {
			g.tools.Tool = ui.Tool(i)
		}
	}

	if rl.IsKeyPressed(rl.KeyLeftBracket) && g.tools.Radius > 0 {
		g.tools.Radius--
	}
	if rl.IsKeyPressed(rl.KeyRightBracket) && g.tools.Radius < maxBrushRadius {
		g.tools.Radius++
	}
	if rl.IsKeyPressed(rl.KeyM) {
		g.tools.Material = nextMaterial(g.tools.Material)
	}
	if rl.IsKeyPressed(rl.KeyR) {
		g.tools.Replace = !g.tools.Replace
	}
	if rl.IsKeyPressed(rl.KeyT) {
		g.tools.Facing = (g.tools.Facing + 1) % (components.Right + 1)
	}
	if rl.IsKeyPressed(rl.KeyBackspace) {
		g.clearWorld()
	}
}

// nextMaterial cycles through the placeable materials.
func nextMaterial(t material.Type) material.Type {
	all := material.Placeable()
	for i, m := range all {
		if m == t {
			return all[(i+1)%len(all)]
		}
	}
	return all[0]
}

// handleCameraInput processes camera pan/zoom controls.
func (g *Game) handleCameraInput() {
	// Pan speed scales inversely with zoom for natural feel
	panSpeed := float32(8.0) / g.camera.Zoom

	if rl.IsKeyDown(rl.KeyRight) {
		g.camera.Pan(panSpeed, 0)
	}
	if rl.IsKeyDown(rl.KeyLeft) {
		g.camera.Pan(-panSpeed, 0)
	}
	if rl.IsKeyDown(rl.KeyDown) {
		g.camera.Pan(0, panSpeed)
	}
	if rl.IsKeyDown(rl.KeyUp) {
		g.camera.Pan(0, -panSpeed)
	}

	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		m := rl.GetMousePosition()
		g.camera.ZoomAt(m.X, m.Y, 1+wheel*0.1)
	}
	if rl.IsKeyPressed(rl.KeyEqual) || rl.IsKeyPressed(rl.KeyKpAdd) {
		g.camera.ZoomBy(1.25)
	}
	if rl.IsKeyPressed(rl.KeyMinus) || rl.IsKeyPressed(rl.KeyKpSubtract) {
		g.camera.ZoomBy(0.8)
	}
	if rl.IsKeyPressed(rl.KeyHome) {
		g.camera.Reset()
	}
}

// handleMouse applies the current tool with the left button and erases with
// the right. Clicks on the palette are left to raygui.
func (g *Game) handleMouse() {
	m := rl.GetMousePosition()
	left := rl.IsMouseButtonDown(rl.MouseButtonLeft)
	right := rl.IsMouseButtonDown(rl.MouseButtonRight)
	if !left && !right {
		g.endStroke()
		return
	}
	if g.palette.Contains(m.X, m.Y) {
		g.endStroke()
		return
	}
	x, y, ok := g.camera.ScreenToCell(m.X, m.Y)
	if !ok {
		g.endStroke()
		return
	}
	xy := world.XY{X: x, Y: y}

	switch {
	case right:
		g.paintStroke(xy, material.Empty, true)
	case g.tools.Tool == ui.ToolBrush:
		g.paintStroke(xy, g.tools.Material, g.tools.Replace)
	case rl.IsMouseButtonPressed(rl.MouseButtonLeft):
		g.applyTool(xy)
	}
}

// hoverCell returns the cell under the mouse, if any.
func (g *Game) hoverCell() (world.XY, bool) {
	m := rl.GetMousePosition()
	x, y, ok := g.camera.ScreenToCell(m.X, m.Y)
	return world.XY{X: x, Y: y}, ok
}
