package ui

import (
	"fmt"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/grit/material"
	"github.com/pthm-cable/grit/telemetry"
)

// HUDData holds all the data needed to render the main HUD.
type HUDData struct {
	Tick           uint64
	StepsPerUpdate int
	FPS            int32
	Paused         bool

	ActiveChunks int
	TotalChunks  int
	Census       map[material.Type]int

	Hover string // description of the cell under the cursor, if any
}

// HUD renders the main heads-up display.
type HUD struct {
	renderer *Renderer
	x, y     int32
	width    int32
}

// NewHUD creates a HUD anchored at (x, y).
func NewHUD(x, y, width int32) *HUD {
	return &HUD{renderer: NewRenderer(), x: x, y: y, width: width}
}

// SetPosition moves the HUD.
func (h *HUD) SetPosition(x, y int32) {
	h.x = x
	h.y = y
}

// Draw renders the HUD.
func (h *HUD) Draw(data HUDData) {
	r := h.renderer
	pad := r.Theme.Padding
	movable := material.Placeable()
	height := pad*2 + r.Theme.LineHeight*int32(5+len(movable))
	r.DrawPanel(h.x, h.y, h.width, height)

	x, y := h.x+pad, h.y+pad
	status := "running"
	if data.Paused {
		status = "PAUSED"
	}
	y = r.DrawLabelValue(x, y, "Tick", fmt.Sprintf("%d  %s", data.Tick, status))
	y = r.DrawLabelValue(x, y, "Speed", fmt.Sprintf("%dx  FPS %d", data.StepsPerUpdate, data.FPS))

	var frac float32
	if data.TotalChunks > 0 {
		frac = float32(data.ActiveChunks) / float32(data.TotalChunks)
	}
	y = r.DrawBar(x, y, "Active", frac, 0.5, fmt.Sprintf("%d/%d", data.ActiveChunks, data.TotalChunks), h.width-2*pad)

	for _, t := range movable {
		if t == material.Empty {
			continue
		}
		y = r.DrawSwatchCount(x, y, t.Color(), t.String(), data.Census[t])
	}
	if data.Hover != "" {
		r.DrawLabelValue(x, y+4, "Cell", data.Hover)
	}
}

// DrawControls renders the control legend at the bottom of the screen.
func (h *HUD) DrawControls(screenHeight int32, controls string) {
	rl.DrawText(controls, 10, screenHeight-22, 14, rl.Gray)
}

// PerfPanel renders per-phase step timing.
type PerfPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
}

// NewPerfPanel creates a new performance panel.
func NewPerfPanel(x, y, width int32) *PerfPanel {
	return &PerfPanel{renderer: NewRenderer(), x: x, y: y, width: width}
}

// SetPosition updates the panel position.
func (p *PerfPanel) SetPosition(x, y int32) {
	p.x = x
	p.y = y
}

// Draw renders the performance panel.
func (p *PerfPanel) Draw(stats telemetry.PerfStats) {
	r := p.renderer
	pad := r.Theme.Padding
	phases := []string{telemetry.PhaseSources, telemetry.PhaseParticles, telemetry.PhaseRefresh, telemetry.PhaseTelemetry}
	r.DrawPanel(p.x, p.y, p.width, pad*2+r.Theme.LineHeight*int32(4+len(phases)))

	x, y := p.x+pad, p.y+pad
	y = r.DrawSectionHeader(x, y, "Step timing")
	y = r.DrawLabelValue(x, y, "avg", stats.AvgTickDuration.Round(time.Microsecond).String())
	y = r.DrawLabelValue(x, y, "p95", stats.P95TickDuration.Round(time.Microsecond).String())
	for _, phase := range phases {
		pct := float32(stats.PhasePct[phase] / 100)
		y = r.DrawBar(x, y, phase, pct, 0.6, fmt.Sprintf("%.0f%%", pct*100), p.width-2*pad)
	}
}
