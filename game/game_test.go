package game

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pthm-cable/grit/components"
	"github.com/pthm-cable/grit/config"
	"github.com/pthm-cable/grit/material"
	"github.com/pthm-cable/grit/telemetry"
	"github.com/pthm-cable/grit/ui"
	"github.com/pthm-cable/grit/world"
)

func init() {
	config.MustInit("")
}

func newHeadless(t *testing.T, opts Options) *Game {
	t.Helper()
	opts.Headless = true
	if opts.Seed == 0 {
		opts.Seed = 1
	}
	g, err := NewGameWithOptions(opts)
	if err != nil {
		t.Fatalf("NewGameWithOptions: %v", err)
	}
	t.Cleanup(g.Unload)
	return g
}

func TestHeadlessRunAdvancesTicks(t *testing.T) {
	g := newHeadless(t, Options{StepsPerUpdate: 4})
	for i := 0; i < 5; i++ {
		g.UpdateHeadless()
	}
	if g.Tick() != 20 {
		t.Errorf("expected 20 ticks, got %d", g.Tick())
	}
	cfg := config.Cfg()
	if g.World().Width() != cfg.Derived.WorldW || g.World().Height() != cfg.Derived.WorldH {
		t.Errorf("world %dx%d does not match derived config %dx%d",
			g.World().Width(), g.World().Height(), cfg.Derived.WorldW, cfg.Derived.WorldH)
	}
}

func TestHeadlessStatsCallbackAndOutput(t *testing.T) {
	dir := t.TempDir()
	var windows []telemetry.WindowStats
	g := newHeadless(t, Options{
		StepsPerUpdate: 50,
		OutputDir:      dir,
		StatsCallback:  func(s telemetry.WindowStats) { windows = append(windows, s) },
	})

	window := uint64(config.Cfg().Telemetry.StatsWindow)
	for g.Tick() < 2*window {
		g.UpdateHeadless()
	}
	if len(windows) < 2 {
		t.Fatalf("expected at least 2 stats windows, got %d", len(windows))
	}
	if windows[0].Sources != 2 || windows[0].Portals != 2 {
		t.Errorf("default scenario should report 2 sources and 2 portals, got %d and %d",
			windows[0].Sources, windows[0].Portals)
	}
	if windows[0].Emitted == 0 {
		t.Error("sources should have emitted particles")
	}

	for _, name := range []string{"config.yaml", "telemetry.csv", "perf.csv"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("expected %s: %v", name, err)
		}
	}
}

func TestScenarioOverride(t *testing.T) {
	g := newHeadless(t, Options{Scenario: "empty"})
	if g.World().Census()[material.Stone] != 0 {
		t.Error("empty scenario should not build stone walls")
	}
	if _, err := NewGameWithOptions(Options{Headless: true, Scenario: "volcano"}); err == nil {
		t.Error("expected error for unknown scenario")
	}
}

func TestStampDisc(t *testing.T) {
	g := newHeadless(t, Options{Scenario: "empty"})
	g.World().Clear()
	center := world.XY{X: 100, Y: 100}
	stamp(g.World(), center, 2, material.Sand, false)

	n := g.World().Census()[material.Sand]
	if n != 21 {
		t.Errorf("radius 2 disc should cover 21 cells, got %d", n)
	}
	if g.World().ParticleAt(world.XY{X: 102, Y: 102}).Type == material.Sand {
		t.Error("disc corner should be left empty")
	}

	stamp(g.World(), center, 0, material.Water, false)
	if g.World().ParticleAt(center).Type != material.Sand {
		t.Error("stamp without replace must keep occupied cells")
	}
	stamp(g.World(), center, 0, material.Water, true)
	if g.World().ParticleAt(center).Type != material.Water {
		t.Error("stamp with replace should overwrite")
	}
}

func TestStampClipsAtBorder(t *testing.T) {
	g := newHeadless(t, Options{Scenario: "empty"})
	g.World().Clear()
	stamp(g.World(), world.XY{X: 0, Y: 0}, 3, material.Sand, true)
	if g.World().ParticleAt(world.XY{X: 0, Y: 0}).Type != material.Border {
		t.Error("border must survive a stamp")
	}
	if g.World().ParticleAt(world.XY{X: 1, Y: 1}).Type != material.Sand {
		t.Error("interior cells inside the radius should be painted")
	}
}

func TestLine(t *testing.T) {
	tests := []struct {
		name string
		a, b world.XY
		n    int
	}{
		{"point", world.XY{X: 3, Y: 3}, world.XY{X: 3, Y: 3}, 1},
		{"horizontal", world.XY{X: 0, Y: 0}, world.XY{X: 5, Y: 0}, 6},
		{"vertical up", world.XY{X: 2, Y: 9}, world.XY{X: 2, Y: 4}, 6},
		{"diagonal", world.XY{X: 0, Y: 0}, world.XY{X: 4, Y: 4}, 5},
		{"shallow", world.XY{X: 0, Y: 0}, world.XY{X: 7, Y: 2}, 8},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cells := line(tc.a, tc.b)
			if len(cells) != tc.n {
				t.Fatalf("expected %d cells, got %d: %v", tc.n, len(cells), cells)
			}
			if cells[0] != tc.a || cells[len(cells)-1] != tc.b {
				t.Errorf("line should run from %v to %v, got %v", tc.a, tc.b, cells)
			}
			for i := 1; i < len(cells); i++ {
				if abs(cells[i].X-cells[i-1].X) > 1 || abs(cells[i].Y-cells[i-1].Y) > 1 {
					t.Errorf("gap between %v and %v", cells[i-1], cells[i])
				}
			}
		})
	}
}

func TestPaintStrokeIsContinuous(t *testing.T) {
	g := newHeadless(t, Options{Scenario: "empty"})
	g.World().Clear()
	g.tools.Radius = 0

	g.paintStroke(world.XY{X: 10, Y: 50}, material.Stone, false)
	g.paintStroke(world.XY{X: 30, Y: 50}, material.Stone, false)
	g.endStroke()

	for x := 10; x <= 30; x++ {
		if g.World().ParticleAt(world.XY{X: x, Y: 50}).Type != material.Stone {
			t.Fatalf("gap in stroke at x=%d", x)
		}
	}

	// A new stroke does not connect to the old end point.
	g.paintStroke(world.XY{X: 30, Y: 80}, material.Stone, false)
	if g.World().ParticleAt(world.XY{X: 30, Y: 65}).Type == material.Stone {
		t.Error("new stroke should start fresh")
	}
}

func TestPortalToolPairs(t *testing.T) {
	g := newHeadless(t, Options{Scenario: "empty"})
	g.clearWorld()
	g.tools.Tool = ui.ToolPortal
	a, b := world.XY{X: 20, Y: 20}, world.XY{X: 60, Y: 40}

	g.tools.Facing = components.Down
	g.applyTool(a)
	if g.pendingPortal == nil || *g.pendingPortal != a {
		t.Fatal("first click should leave a pending portal")
	}
	if g.tools.Facing != components.Up {
		t.Errorf("facing for the second half should default to up, got %s", g.tools.Facing)
	}
	g.applyTool(a)
	if g.pendingPortal == nil {
		t.Fatal("clicking the pending cell again should not pair it with itself")
	}

	g.applyTool(b)
	if g.pendingPortal != nil {
		t.Error("second click should complete the pair")
	}
	ga, _ := g.World().PortalAt(a)
	gb, _ := g.World().PortalAt(b)
	if !ga.Linked || !gb.Linked {
		t.Fatalf("expected linked pair, got %+v and %+v", ga, gb)
	}
	if ga.Facing != components.Down || gb.Facing != components.Up {
		t.Errorf("expected facings down/up, got %s/%s", ga.Facing, gb.Facing)
	}
	if ga.Color != gb.Color {
		t.Error("both halves of a pair share a color")
	}
	if g.portalPairs != 1 {
		t.Errorf("expected 1 pair, got %d", g.portalPairs)
	}
}

func TestPortalToolSurvivesDeletedPending(t *testing.T) {
	g := newHeadless(t, Options{Scenario: "empty"})
	g.clearWorld()
	a := world.XY{X: 20, Y: 20}

	g.tools.Tool = ui.ToolPortal
	g.applyTool(a)
	// Delete through the world directly so the tool state goes stale.
	g.World().DeletePortal(a)

	b := world.XY{X: 40, Y: 40}
	g.applyTool(b)
	if g.pendingPortal == nil || *g.pendingPortal != b {
		t.Fatal("stale pending portal should be dropped and b become pending")
	}
	if gb, ok := g.World().PortalAt(b); !ok || gb.Linked {
		t.Errorf("b should be an unlinked portal, got %+v ok=%v", gb, ok)
	}
}

func TestDeleteTool(t *testing.T) {
	g := newHeadless(t, Options{Scenario: "empty"})
	g.clearWorld()
	xy := world.XY{X: 30, Y: 30}

	g.tools = ui.PaletteState{Tool: ui.ToolSource, Material: material.Oil}
	g.applyTool(xy)
	if em, ok := g.World().SourceAt(xy); !ok || em.Material != material.Oil {
		t.Fatalf("expected oil source, got %+v ok=%v", em, ok)
	}

	g.tools.Tool = ui.ToolPortal
	g.applyTool(xy)

	g.tools.Tool = ui.ToolDelete
	g.applyTool(xy)
	if _, ok := g.World().SourceAt(xy); ok {
		t.Error("source should be deleted")
	}
	if g.World().PortalExistsAt(xy) {
		t.Error("portal should be deleted")
	}
	if g.pendingPortal != nil {
		t.Error("deleting the pending portal should clear it")
	}

	g.tools.Tool = ui.ToolSink
	g.applyTool(xy)
	if em, ok := g.World().SourceAt(xy); !ok || !em.Sink() {
		t.Error("expected sink")
	}
}

func TestNextMaterialCycles(t *testing.T) {
	seen := map[material.Type]bool{}
	m := material.Empty
	for i := 0; i < len(material.Placeable()); i++ {
		m = nextMaterial(m)
		if m == material.Border {
			t.Fatal("cycle must skip border")
		}
		seen[m] = true
	}
	if len(seen) != len(material.Placeable()) {
		t.Errorf("expected to visit every placeable material, saw %d", len(seen))
	}
}

func TestHoverText(t *testing.T) {
	g := newHeadless(t, Options{Scenario: "empty"})
	g.clearWorld()
	w := g.World()
	xy := world.XY{X: 10, Y: 10}
	w.AddNewParticle(material.Water, xy, false)
	w.AddNewSink(xy, false)

	if got, want := hoverText(w, xy), "(10,10) water sink"; got != want {
		t.Errorf("hoverText = %q, want %q", got, want)
	}
}
