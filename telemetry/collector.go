package telemetry

import (
	"github.com/pthm-cable/grit/components"
	"github.com/pthm-cable/grit/material"
	"github.com/pthm-cable/grit/world"
)

// EntityCounts holds the number of placed sources, sinks and portals.
type EntityCounts struct {
	Sources int
	Sinks   int
	Portals int
}

// CountEntities tallies the entities currently placed in w.
func CountEntities(w *world.World) EntityCounts {
	var n EntityCounts
	w.EachSource(func(_ world.XY, em components.Emitter) {
		if em.Sink() {
			n.Sinks++
		} else {
			n.Sources++
		}
	})
	w.EachPortal(func(world.XY, components.Gate) { n.Portals++ })
	return n
}

// Collector accumulates per-tick stats within a window and produces WindowStats.
type Collector struct {
	windowTicks uint64
	totalChunks int

	windowStartTick uint64

	activeChunks []float64
	cellsUpdated []float64
	emitted      int
	writes       int
}

// NewCollector creates a collector flushing every windowTicks ticks.
// totalChunks is used to report the active fraction.
func NewCollector(windowTicks, totalChunks int) *Collector {
	if windowTicks < 1 {
		windowTicks = 1
	}
	return &Collector{
		windowTicks:  uint64(windowTicks),
		totalChunks:  totalChunks,
		activeChunks: make([]float64, 0, windowTicks),
		cellsUpdated: make([]float64, 0, windowTicks),
	}
}

// Record adds one tick's stats to the current window.
func (c *Collector) Record(ts world.TickStats) {
	c.activeChunks = append(c.activeChunks, float64(ts.ActiveChunks))
	c.cellsUpdated = append(c.cellsUpdated, float64(ts.CellsUpdated))
	c.emitted += ts.Emitted
	c.writes += ts.Writes
}

// ShouldFlush returns true if enough ticks have passed to flush the window.
func (c *Collector) ShouldFlush(currentTick uint64) bool {
	return currentTick-c.windowStartTick >= c.windowTicks
}

// Flush produces a WindowStats and resets counters for the next window.
// census and entities describe the world at currentTick.
func (c *Collector) Flush(currentTick uint64, census map[material.Type]int, entities EntityCounts) WindowStats {
	acMean, acStd, acP50, acP90 := Distribution(c.activeChunks)
	cuMean, _, _, cuP90 := Distribution(c.cellsUpdated)

	stats := WindowStats{
		WindowStartTick: c.windowStartTick,
		WindowEndTick:   currentTick,
		Ticks:           len(c.activeChunks),

		Sand:   census[material.Sand],
		Gravel: census[material.Gravel],
		Water:  census[material.Water],
		Oil:    census[material.Oil],
		Stone:  census[material.Stone],

		Sources: entities.Sources,
		Sinks:   entities.Sinks,
		Portals: entities.Portals,

		Emitted: c.emitted,
		Writes:  c.writes,

		ActiveChunksMean: acMean,
		ActiveChunksStd:  acStd,
		ActiveChunksP50:  acP50,
		ActiveChunksP90:  acP90,

		CellsUpdatedMean: cuMean,
		CellsUpdatedP90:  cuP90,
	}
	if c.totalChunks > 0 {
		stats.ActiveFraction = acMean / float64(c.totalChunks)
	}

	c.windowStartTick = currentTick
	c.activeChunks = c.activeChunks[:0]
	c.cellsUpdated = c.cellsUpdated[:0]
	c.emitted = 0
	c.writes = 0

	return stats
}

// WindowTicks returns the number of ticks per window.
func (c *Collector) WindowTicks() uint64 {
	return c.windowTicks
}
