// Package components defines the ECS components attached to per-cell
// entities (sources, sinks and portals).
package components

import (
	"image/color"

	"github.com/pthm-cable/grit/material"
)

// Cell is the grid position an entity is anchored to.
type Cell struct {
	X, Y int
}

// Emitter makes a cell periodically (re-)emit a material.
// A sink is an emitter of material.Empty with Replaces set.
type Emitter struct {
	Material material.Type
	Replaces bool // overwrite occupied cells
}

// Sink reports whether the emitter erases rather than produces particles.
func (e Emitter) Sink() bool {
	return e.Material == material.Empty && e.Replaces
}

// Gate is one end of a portal pair.
type Gate struct {
	Partner Cell
	Linked  bool // Partner is valid
	Facing  Direction
	Color   color.RGBA
}
