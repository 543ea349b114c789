package world

import "github.com/pthm-cable/grit/material"

// Capsule gives a movement rule scoped access to the grid while a single
// cell is being updated. It tracks the particle's position across moves.
//
// A Capsule is only valid inside the rule call it was passed to. Rules must
// not store it; any use after the call panics.
type Capsule struct {
	w    *World
	xy   XY
	self Particle
	live bool
}

func (c *Capsule) begin(xy XY, self Particle) {
	c.xy = xy
	c.self = self
	c.live = true
}

func (c *Capsule) release() {
	c.live = false
}

func (c *Capsule) check() {
	if !c.live {
		panic("world: capsule used outside its update call")
	}
}

// Rand returns a uniform draw in [0, 1).
func (c *Capsule) Rand() float64 {
	c.check()
	return c.w.rng.Float64()
}

// RandRange returns a uniform integer in [lo, hi).
func (c *Capsule) RandRange(lo, hi int) int {
	c.check()
	if hi <= lo {
		return lo
	}
	return lo + c.w.rng.Intn(hi-lo)
}

// Pos returns the current position of the particle being updated.
func (c *Capsule) Pos() XY {
	c.check()
	return c.xy
}

// Self returns the particle as it was when its update began.
func (c *Capsule) Self() Particle {
	c.check()
	return c.self
}

// Get reads the neighbour reached by delta d, following portals.
func (c *Capsule) Get(d XY) Particle {
	c.check()
	return c.w.ParticleAt(c.w.RelativeXY(c.xy, d))
}

// Set overwrites the neighbour reached by delta d. Off-grid and Border
// targets are ignored.
func (c *Capsule) Set(d XY, p Particle) {
	c.check()
	dst := c.w.RelativeXY(c.xy, d)
	if !c.w.InBounds(dst) || c.w.cell(dst).Type == material.Border {
		return
	}
	c.w.set(dst, p)
}

// Replace overwrites the particle's own cell.
func (c *Capsule) Replace(p Particle) {
	c.check()
	c.w.set(c.xy, p)
}

// Update edits the particle's own cell in place.
func (c *Capsule) Update(fn func(p *Particle)) {
	c.check()
	p := *c.w.cell(c.xy)
	fn(&p)
	c.w.set(c.xy, p)
}

// Swap exchanges the particle with the neighbour reached by d and follows
// it to its new cell. It returns false for off-grid targets and for static
// neighbours (Border, Stone), which never relocate.
func (c *Capsule) Swap(d XY) bool {
	c.check()
	dst := c.w.RelativeXY(c.xy, d)
	if !c.w.InBounds(dst) {
		return false
	}
	if t := c.w.cell(dst).Type; t != material.Empty && !t.Movable() {
		return false
	}
	c.w.swap(c.xy, dst)
	c.xy = dst
	return true
}

// Move tries to claim the neighbour reached by d under the claim rule and
// follows the particle on success. allowSwap permits displacing a lighter
// movable occupant.
func (c *Capsule) Move(d XY, allowSwap bool) bool {
	c.check()
	dst := c.w.RelativeXY(c.xy, d)
	if !c.w.tryGridPosition(c.xy, dst, d.Y == 0, allowSwap) {
		return false
	}
	c.xy = dst
	return true
}
