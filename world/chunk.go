package world

import "github.com/pthm-cable/grit/material"

// Chunk is a square block of the particle grid with double-buffered
// activity flags. A chunk is only processed on ticks where updateThisFrame
// is set, which is the case when something inside or near it changed during
// the previous tick.
type Chunk struct {
	size      int
	particles []Particle

	updateThisFrame bool
	updateNextFrame bool
}

func newChunk(size int) *Chunk {
	return &Chunk{
		size:            size,
		particles:       make([]Particle, size*size),
		updateNextFrame: true,
	}
}

// idx returns the linear index of local coordinates (lx, ly).
func (c *Chunk) idx(lx, ly int) int { return ly*c.size + lx }

// at returns a pointer to the particle at local coordinates.
func (c *Chunk) at(lx, ly int) *Particle {
	return &c.particles[c.idx(lx, ly)]
}

// shift advances the activity double buffer by one tick.
func (c *Chunk) shift() {
	c.updateThisFrame = c.updateNextFrame
	c.updateNextFrame = false
}

// wake schedules the chunk for processing on the next tick.
func (c *Chunk) wake() { c.updateNextFrame = true }

// Active reports whether the chunk is being processed this tick.
func (c *Chunk) Active() bool { return c.updateThisFrame }

// Pending reports whether the chunk is scheduled for the next tick.
func (c *Chunk) Pending() bool { return c.updateNextFrame }

// census adds the chunk's particle counts to counts.
func (c *Chunk) census(counts map[material.Type]int) {
	for i := range c.particles {
		counts[c.particles[i].Type]++
	}
}
