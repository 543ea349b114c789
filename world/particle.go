package world

import (
	"fmt"
	"math/rand"

	"github.com/pthm-cable/grit/material"
)

// Particle is the value stored in every grid cell.
//
// moved is only meaningful for movable materials and movingRight only for
// fluids. The accessors panic when a material lacks the capability; that is
// a caller bug, never user input.
type Particle struct {
	Type    material.Type
	Updated bool // processed during the current tick

	moved       bool
	movingRight bool
}

// NewParticle creates a particle of type t. Fluids get a random flow bias.
func NewParticle(t material.Type, rng *rand.Rand) Particle {
	p := Particle{Type: t}
	if t.Fluid() {
		p.movingRight = rng.Intn(2) == 0
	}
	return p
}

// Moved reports whether the particle changed cell this tick.
func (p Particle) Moved() bool {
	p.mustBeMovable("Moved")
	return p.moved
}

// SetMoved sets the per-tick moved flag.
func (p *Particle) SetMoved(v bool) {
	p.mustBeMovable("SetMoved")
	p.moved = v
}

// MovingRight reports the persistent lateral flow bias of a fluid.
func (p Particle) MovingRight() bool {
	p.mustBeFluid("MovingRight")
	return p.movingRight
}

// ToggleMovingRight flips the flow bias.
func (p *Particle) ToggleMovingRight() {
	p.mustBeFluid("ToggleMovingRight")
	p.movingRight = !p.movingRight
}

// refresh clears the per-tick flags. movingRight survives.
func (p *Particle) refresh() {
	p.Updated = false
	p.moved = false
}

func (p Particle) mustBeMovable(op string) {
	if !p.Type.Movable() {
		panic(fmt.Sprintf("world: %s on immovable particle %s", op, p.Type))
	}
}

func (p Particle) mustBeFluid(op string) {
	if !p.Type.Fluid() {
		panic(fmt.Sprintf("world: %s on non-fluid particle %s", op, p.Type))
	}
}
