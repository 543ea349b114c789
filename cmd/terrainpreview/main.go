// Terrain preview tool - interactive dunes generation with sliders.
//
// Usage: go run ./cmd/terrainpreview [-config path]
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/grit/camera"
	"github.com/pthm-cable/grit/config"
	"github.com/pthm-cable/grit/material"
	"github.com/pthm-cable/grit/renderer"
	"github.com/pthm-cable/grit/world"
)

const (
	windowWidth  = 1000
	windowHeight = 560
	gridW        = 256
	gridH        = 160
	chunkSize    = 16
	cellPixels   = 2
	previewW     = gridW * cellPixels
	previewH     = gridH * cellPixels
	panelWidth   = windowWidth - previewW - 30
)

// slider draws a labelled slider row and returns the new value and the next
// row's y.
func slider(x, y float32, label, format string, value, min, max float32) (float32, float32) {
	rl.DrawText(label, int32(x), int32(y), 14, rl.Gray)
	y += 18
	v := gui.SliderBar(
		rl.Rectangle{X: x, Y: y, Width: float32(panelWidth - 80), Height: 20},
		fmt.Sprintf(format, min), fmt.Sprintf(format, max),
		value, min, max,
	)
	rl.DrawText(fmt.Sprintf(format, value), int32(x+float32(panelWidth-70)), int32(y+2), 16, rl.DarkGray)
	return v, y + 35
}

func build(terrain config.TerrainConfig, seed int64) (*world.World, error) {
	w, err := world.New(world.Options{Width: gridW, Height: gridH, ChunkSize: chunkSize, Seed: seed})
	if err != nil {
		return nil, err
	}
	if err := world.Populate(w, config.ScenarioConfig{Name: "dunes"}, terrain, seed); err != nil {
		return nil, err
	}
	return w, nil
}

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	flag.Parse()

	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	defaults := config.Cfg().Terrain
	terrain := defaults
	seed := int64(12345)

	rl.InitWindow(windowWidth, windowHeight, "Terrain Preview")
	defer rl.CloseWindow()
	rl.SetTargetFPS(30)

	grid := renderer.NewGridRenderer(gridW, gridH)
	grid.Init()
	defer grid.Unload()
	cam := camera.New(previewW, previewH, gridW, gridH, cellPixels)

	var w *world.World
	simulating := false
	needsRegen := true

	for !rl.WindowShouldClose() {
		if needsRegen {
			nw, err := build(terrain, seed)
			if err != nil {
				slog.Error("failed to build terrain", "error", err)
			} else {
				w = nw
			}
			needsRegen = false
		}
		if simulating && w != nil {
			w.UpdateAll()
		}
		if w != nil {
			grid.Paint(w)
		}

		rl.BeginDrawing()
		rl.ClearBackground(rl.RayWhite)

		grid.Draw(cam)
		rl.DrawRectangleLines(0, 0, previewW, previewH, rl.DarkGray)

		if w != nil {
			counts := w.Census()
			stats := w.Stats()
			statsY := int32(previewH + 15)
			rl.DrawText(fmt.Sprintf("Sand: %d  Gravel: %d", counts[material.Sand], counts[material.Gravel]), 15, statsY, 16, rl.DarkGray)
			rl.DrawText(fmt.Sprintf("Tick: %d  Active chunks: %d", w.Tick(), stats.ActiveChunks), 15, statsY+20, 16, rl.DarkGray)
		}

		// Control panel
		panelX := float32(previewW + 20)
		panelY := float32(10)

		rl.DrawText("Dunes Terrain Parameters", int32(panelX), int32(panelY), 20, rl.DarkGray)
		panelY += 35

		before := terrain
		var v float32
		v, panelY = slider(panelX, panelY, "Scale (noise frequency per cell)", "%.3f", float32(terrain.Scale), 0.002, 0.1)
		terrain.Scale = float64(v)
		v, panelY = slider(panelX, panelY, "Octaves (FBM detail level)", "%.0f", float32(terrain.Octaves), 1, 6)
		terrain.Octaves = int(v)
		v, panelY = slider(panelX, panelY, "Gain (amplitude multiplier)", "%.2f", float32(terrain.Gain), 0.2, 0.9)
		terrain.Gain = float64(v)
		v, panelY = slider(panelX, panelY, "Base height (fraction of world)", "%.2f", float32(terrain.BaseHeight), 0.05, 0.9)
		terrain.BaseHeight = float64(v)
		v, panelY = slider(panelX, panelY, "Amplitude (fraction of world)", "%.2f", float32(terrain.Amplitude), 0, 0.5)
		terrain.Amplitude = float64(v)
		v, panelY = slider(panelX, panelY, "Gravel depth (cells)", "%.0f", float32(terrain.GravelDepth), 0, 60)
		terrain.GravelDepth = int(v)
		if terrain != before {
			needsRegen = true
		}

		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 120, Height: 30}, toggleText(simulating, "Stop", "Simulate")) {
			simulating = !simulating
		}
		if gui.Button(rl.Rectangle{X: panelX + 130, Y: panelY, Width: 120, Height: 30}, "Random Seed") {
			seed = int64(rl.GetRandomValue(0, 99999))
			needsRegen = true
		}
		panelY += 40
		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 120, Height: 30}, "Rebuild") {
			needsRegen = true
		}
		if gui.Button(rl.Rectangle{X: panelX + 130, Y: panelY, Width: 120, Height: 30}, "Reset All") {
			terrain = defaults
			needsRegen = true
		}
		panelY += 50

		rl.DrawText(fmt.Sprintf("Seed: %d", seed), int32(panelX), int32(panelY), 16, rl.DarkGray)
		panelY += 25
		yaml := terrainYAML(terrain)
		rl.DrawText(yaml, int32(panelX), int32(panelY), 14, rl.Gray)

		rl.DrawText("Press C to copy YAML to clipboard", int32(panelX), int32(windowHeight-30), 12, rl.LightGray)
		if rl.IsKeyPressed(rl.KeyC) {
			rl.SetClipboardText(yaml)
		}

		rl.EndDrawing()
	}
}

func terrainYAML(t config.TerrainConfig) string {
	return fmt.Sprintf(`terrain:
  scale: %.3f
  octaves: %d
  gain: %.2f
  base_height: %.2f
  amplitude: %.2f
  gravel_depth: %d`,
		t.Scale, t.Octaves, t.Gain, t.BaseHeight, t.Amplitude, t.GravelDepth)
}

func toggleText(cond bool, ifTrue, ifFalse string) string {
	if cond {
		return ifTrue
	}
	return ifFalse
}
