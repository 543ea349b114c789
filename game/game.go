// Package game wires the world, its tools, rendering and telemetry into a
// frame loop.
package game

import (
	"fmt"
	"log/slog"

	"github.com/pthm-cable/grit/camera"
	"github.com/pthm-cable/grit/config"
	"github.com/pthm-cable/grit/renderer"
	"github.com/pthm-cable/grit/telemetry"
	"github.com/pthm-cable/grit/ui"
	"github.com/pthm-cable/grit/world"
)

const maxStepsPerUpdate = 16

// Options configures a new Game.
type Options struct {
	Seed           int64
	Headless       bool
	StepsPerUpdate int
	Scenario       string // overrides scenario.name when non-empty
	OutputDir      string
	LogStats       bool
	StatsCallback  func(telemetry.WindowStats)
}

// Game holds the complete game state.
type Game struct {
	world    *world.World
	seed     int64
	scenario config.ScenarioConfig
	headless bool

	paused         bool
	stepsPerUpdate int
	needsRefresh   bool // a tick ran since the last sweep

	// Tools
	tools         ui.PaletteState
	pendingPortal *world.XY
	portalPairs   int
	lastStroke    world.XY
	stroking      bool

	// Rendering (nil in headless mode)
	camera    *camera.Camera
	grid      *renderer.GridRenderer
	hud       *ui.HUD
	perfPanel *ui.PerfPanel
	palette   *ui.Palette
	overlays  *ui.OverlayRegistry

	screenWidth, screenHeight float32

	// Telemetry
	perfCollector    *telemetry.PerfCollector
	collector        *telemetry.Collector
	bookmarkDetector *telemetry.BookmarkDetector
	outputManager    *telemetry.OutputManager
	logStats         bool
	statsCallback    func(telemetry.WindowStats)
}

// NewGameWithOptions builds the world from the global config and the options.
// In graphics mode the raylib window must already exist.
func NewGameWithOptions(opts Options) (*Game, error) {
	cfg := config.Cfg()

	steps := opts.StepsPerUpdate
	if steps < 1 {
		steps = 1
	}
	g := &Game{
		seed:             opts.Seed,
		scenario:         cfg.Scenario,
		headless:         opts.Headless,
		stepsPerUpdate:   steps,
		perfCollector:    telemetry.NewPerfCollector(cfg.Telemetry.PerfCollectorWindow),
		bookmarkDetector: telemetry.NewBookmarkDetector(10),
		logStats:         opts.LogStats,
		statsCallback:    opts.StatsCallback,
		screenWidth:      float32(cfg.Screen.Width),
		screenHeight:     float32(cfg.Screen.Height),
		tools: ui.PaletteState{
			Tool:     ui.ToolBrush,
			Material: cfg.Brush.Material,
			Radius:   float32(cfg.Brush.Radius),
			Replace:  cfg.Brush.Replace,
		},
	}
	if opts.Scenario != "" {
		g.scenario.Name = opts.Scenario
	}

	om, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		return nil, err
	}
	g.outputManager = om
	if err := om.WriteConfig(cfg); err != nil {
		om.Close()
		return nil, err
	}

	if err := g.buildWorld(); err != nil {
		om.Close()
		return nil, err
	}

	if !g.headless {
		g.overlays = ui.NewOverlayRegistry()
		g.hud = ui.NewHUD(10, 10, 220)
		g.palette = ui.NewPalette(g.screenWidth-250, 10, 240, g.overlays)
		g.perfPanel = ui.NewPerfPanel(10, 0, 220)
		g.layoutPanels()
	}
	return g, nil
}

// buildWorld discards any current world and builds a fresh one from the
// derived config dimensions and the scenario.
func (g *Game) buildWorld() error {
	cfg := config.Cfg()
	w, err := world.New(world.Options{
		Width:     cfg.Derived.WorldW,
		Height:    cfg.Derived.WorldH,
		ChunkSize: cfg.World.ChunkSize,
		Seed:      g.seed,
	})
	if err != nil {
		return fmt.Errorf("building world: %w", err)
	}
	if err := world.Populate(w, g.scenario, cfg.Terrain, g.seed); err != nil {
		return fmt.Errorf("populating scenario %q: %w", g.scenario.Name, err)
	}
	w.SetPhaseHook(g.perfCollector.StartPhase)

	g.world = w
	g.needsRefresh = false
	g.pendingPortal = nil
	g.stroking = false

	cols, rows := w.ChunkCount()
	g.collector = telemetry.NewCollector(cfg.Telemetry.StatsWindow, cols*rows)

	if !g.headless {
		if g.grid != nil {
			g.grid.Unload()
		}
		g.grid = renderer.NewGridRenderer(w.Width(), w.Height())
		g.grid.Init()
		g.camera = camera.New(g.screenWidth, g.screenHeight, w.Width(), w.Height(), float32(cfg.World.CellPixels))
	}

	slog.Info("world built",
		"width", w.Width(),
		"height", w.Height(),
		"chunk_size", w.ChunkSize(),
		"scenario", g.scenario.Name,
		"seed", g.seed,
	)
	return nil
}

// step runs one tick with timing and telemetry.
func (g *Game) step() {
	g.perfCollector.StartTick()
	if g.needsRefresh {
		g.perfCollector.StartPhase(telemetry.PhaseRefresh)
		g.world.Refresh()
	}
	g.world.UpdateAll()
	g.needsRefresh = true

	g.perfCollector.StartPhase(telemetry.PhaseTelemetry)
	g.collector.Record(g.world.Stats())
	g.flushTelemetry()
	g.perfCollector.EndTick()
}

// Update runs one frame of input handling and simulation in graphics mode.
func (g *Game) Update() {
	g.handleInput()
	if g.paused {
		return
	}
	for i := 0; i < g.stepsPerUpdate; i++ {
		g.step()
	}
}

// UpdateHeadless runs stepsPerUpdate ticks without input or rendering.
func (g *Game) UpdateHeadless() {
	for i := 0; i < g.stepsPerUpdate; i++ {
		g.step()
	}
}

// Tick returns the number of completed ticks of the current world.
func (g *Game) Tick() uint64 {
	return g.world.Tick()
}

// World returns the current world. It is replaced on resize.
func (g *Game) World() *world.World {
	return g.world
}

// Unload releases GPU resources and closes output files.
func (g *Game) Unload() {
	if g.grid != nil {
		g.grid.Unload()
	}
	if err := g.outputManager.Close(); err != nil {
		slog.Error("failed to close output", "error", err)
	}
}

// layoutPanels positions panels for the current screen size.
func (g *Game) layoutPanels() {
	g.palette.SetPosition(g.screenWidth-250, 10)
	g.perfPanel.SetPosition(10, int32(g.screenHeight)-190)
}
