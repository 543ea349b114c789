package game

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/grit/renderer"
	"github.com/pthm-cable/grit/ui"
	"github.com/pthm-cable/grit/world"
)

const controlsHelp = "[Space] pause  [N] step  [</>] speed  [1-5] tool  [M] material  [[ ]] radius  [R] replace  [T] facing  [Bksp] clear  [C/W/E/F/H] overlays"

// Draw renders the game.
func (g *Game) Draw() {
	g.perfCollector.RecordFrame()

	// The sweep refreshes the flags left by the last tick, so painting every
	// frame also shows edits made while paused.
	g.grid.Paint(g.world)
	g.needsRefresh = false

	rl.BeginDrawing()
	rl.ClearBackground(renderer.Background)

	g.grid.Draw(g.camera)

	if g.overlays.IsEnabled(ui.OverlayChunks) {
		renderer.DrawChunks(g.world, g.camera, false)
	}
	if g.overlays.IsEnabled(ui.OverlayWakeSet) {
		renderer.DrawChunks(g.world, g.camera, true)
	}
	if g.overlays.IsEnabled(ui.OverlayEntities) {
		renderer.DrawEntities(g.world, g.camera)
	}

	hover, onGrid := g.hoverCell()
	if onGrid && g.tools.Tool == ui.ToolBrush {
		renderer.DrawBrush(g.camera, hover.X, hover.Y, int(g.tools.Radius), g.tools.Material.Color())
	}
	if g.pendingPortal != nil {
		renderer.DrawBrush(g.camera, g.pendingPortal.X, g.pendingPortal.Y, 1, rl.White)
	}

	g.drawHUD(hover, onGrid)
	g.palette.Draw(&g.tools)

	if g.overlays.IsEnabled(ui.OverlayPerf) {
		g.perfPanel.Draw(g.perfCollector.Stats())
	}
	if g.overlays.IsEnabled(ui.OverlayHelp) {
		g.hud.DrawControls(int32(g.screenHeight), controlsHelp)
	}

	rl.EndDrawing()
}

func (g *Game) drawHUD(hover world.XY, onGrid bool) {
	stats := g.world.Stats()
	cols, rows := g.world.ChunkCount()
	data := ui.HUDData{
		Tick:           g.world.Tick(),
		StepsPerUpdate: g.stepsPerUpdate,
		FPS:            rl.GetFPS(),
		Paused:         g.paused,
		ActiveChunks:   stats.ActiveChunks,
		TotalChunks:    cols * rows,
		Census:         g.world.Census(),
	}
	if onGrid {
		data.Hover = hoverText(g.world, hover)
	}
	g.hud.Draw(data)
}

// hoverText describes the cell at xy and anything attached to it.
func hoverText(w *world.World, xy world.XY) string {
	s := fmt.Sprintf("(%d,%d) %s", xy.X, xy.Y, w.ParticleAt(xy).Type)
	if em, ok := w.SourceAt(xy); ok {
		if em.Sink() {
			s += " sink"
		} else {
			s += " src:" + em.Material.String()
		}
	}
	if gate, ok := w.PortalAt(xy); ok {
		if gate.Linked {
			s += fmt.Sprintf(" portal %s->(%d,%d)", gate.Facing, gate.Partner.X, gate.Partner.Y)
		} else {
			s += fmt.Sprintf(" portal %s unlinked", gate.Facing)
		}
	}
	return s
}
