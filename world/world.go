// Package world implements the chunked falling-sand grid: particle storage,
// per-cell sources and portals, the tick scheduler and the material
// movement rules.
//
// A World is not safe for concurrent use. All mutation goes through its
// public API; renderers read it through ParticleAt and Sweep.
package world

import (
	"fmt"
	"math/rand"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/grit/components"
	"github.com/pthm-cable/grit/material"
)

// XY is a grid coordinate, or a grid delta. Y grows downwards.
type XY struct {
	X, Y int
}

// Add returns a + d.
func (a XY) Add(d XY) XY { return XY{a.X + d.X, a.Y + d.Y} }

// Unit deltas used by the movement rules.
var (
	Down      = XY{0, 1}
	DownLeft  = XY{-1, 1}
	DownRight = XY{1, 1}
	Left      = XY{-1, 0}
	Right     = XY{1, 0}
	Up        = XY{0, -1}
)

// Options configures a new World.
type Options struct {
	Width     int
	Height    int
	ChunkSize int
	Seed      int64
}

// World owns the chunk grid, the per-cell source and portal entities and the
// random stream shared by every stochastic decision.
type World struct {
	width, height int
	chunkSize     int
	chunksW       int
	chunksH       int
	chunks        []*Chunk

	rng *rand.Rand

	// Sources and portals live in an ECS world; the per-cell grids map a cell
	// index to its entity (zero entity = none).
	entities     *ecs.World
	sources      *ecs.Map2[components.Cell, components.Emitter]
	sourceFilter *ecs.Filter2[components.Cell, components.Emitter]
	gates        *ecs.Map2[components.Cell, components.Gate]
	gateFilter   *ecs.Filter2[components.Cell, components.Gate]
	sourceAt     []ecs.Entity
	portalAt     []ecs.Entity

	// Scheduler scratch, reshuffled every tick.
	rowOrder  []int
	colOrder  []int
	cellOrder []int
	capsule   Capsule

	tick      uint64
	stats     TickStats
	phaseHook func(pass string)
}

// New creates a world with its outer ring of cells filled with Border.
// Width and height must be positive multiples of the chunk size.
func New(opts Options) (*World, error) {
	cs := opts.ChunkSize
	if cs <= 0 {
		return nil, fmt.Errorf("chunk size must be positive, got %d", cs)
	}
	if opts.Width < 3 || opts.Height < 3 {
		return nil, fmt.Errorf("world must be at least 3x3, got %dx%d", opts.Width, opts.Height)
	}
	if opts.Width%cs != 0 || opts.Height%cs != 0 {
		return nil, fmt.Errorf("world %dx%d is not a multiple of chunk size %d", opts.Width, opts.Height, cs)
	}

	entities := ecs.NewWorld()
	w := &World{
		width:        opts.Width,
		height:       opts.Height,
		chunkSize:    cs,
		chunksW:      opts.Width / cs,
		chunksH:      opts.Height / cs,
		rng:          rand.New(rand.NewSource(opts.Seed)),
		entities:     entities,
		sources:      ecs.NewMap2[components.Cell, components.Emitter](entities),
		sourceFilter: ecs.NewFilter2[components.Cell, components.Emitter](entities),
		gates:        ecs.NewMap2[components.Cell, components.Gate](entities),
		gateFilter:   ecs.NewFilter2[components.Cell, components.Gate](entities),
		sourceAt:     make([]ecs.Entity, opts.Width*opts.Height),
		portalAt:     make([]ecs.Entity, opts.Width*opts.Height),
	}
	w.capsule.w = w

	w.chunks = make([]*Chunk, w.chunksW*w.chunksH)
	for i := range w.chunks {
		w.chunks[i] = newChunk(cs)
	}
	w.rowOrder = identity(w.chunksH)
	w.colOrder = identity(w.chunksW)
	w.cellOrder = identity(cs * cs)

	border := Particle{Type: material.Border}
	for y := 0; y < w.height; y++ {
		for x := 0; x < w.width; x++ {
			if x == 0 || y == 0 || x == w.width-1 || y == w.height-1 {
				*w.cell(XY{x, y}) = border
			}
		}
	}
	return w, nil
}

// Width returns the grid width in cells.
func (w *World) Width() int { return w.width }

// Height returns the grid height in cells.
func (w *World) Height() int { return w.height }

// ChunkSize returns the edge length of a chunk in cells.
func (w *World) ChunkSize() int { return w.chunkSize }

// ChunkCount returns the chunk grid dimensions.
func (w *World) ChunkCount() (cols, rows int) { return w.chunksW, w.chunksH }

// ChunkActive reports whether chunk (cx, cy) was processed on the last tick.
// Intended for debug overlays.
func (w *World) ChunkActive(cx, cy int) bool {
	if cx < 0 || cy < 0 || cx >= w.chunksW || cy >= w.chunksH {
		return false
	}
	return w.chunks[cy*w.chunksW+cx].updateThisFrame
}

// ChunkPending reports whether chunk (cx, cy) is scheduled for the next tick.
func (w *World) ChunkPending(cx, cy int) bool {
	if cx < 0 || cy < 0 || cx >= w.chunksW || cy >= w.chunksH {
		return false
	}
	return w.chunks[cy*w.chunksW+cx].updateNextFrame
}

// Tick returns the number of completed UpdateAll calls.
func (w *World) Tick() uint64 { return w.tick }

// Stats returns the counters of the last completed tick.
func (w *World) Stats() TickStats { return w.stats }

// InBounds reports whether xy lies on the grid.
func (w *World) InBounds(xy XY) bool {
	return xy.X >= 0 && xy.Y >= 0 && xy.X < w.width && xy.Y < w.height
}

// ParticleAt returns a copy of the particle at xy. Cells off the grid read
// as Border.
func (w *World) ParticleAt(xy XY) Particle {
	if !w.InBounds(xy) {
		return Particle{Type: material.Border}
	}
	return *w.cell(xy)
}

// AddNewParticle places a fresh particle of type t at xy.
//
// Border cells never change. Empty is a wildcard in both directions: placing
// Empty, or placing onto Empty, always succeeds. Otherwise the occupant is
// only overwritten when replace is set. Rejections are silent.
func (w *World) AddNewParticle(t material.Type, xy XY, replace bool) {
	if !w.InBounds(xy) {
		return
	}
	cur := w.cell(xy).Type
	if cur == material.Border {
		return
	}
	if t == material.Empty || cur == material.Empty || replace {
		w.set(xy, NewParticle(t, w.rng))
	}
}

// Census counts particles per material across the whole grid.
func (w *World) Census() map[material.Type]int {
	counts := make(map[material.Type]int, len(material.All()))
	for _, c := range w.chunks {
		c.census(counts)
	}
	return counts
}

// Clear empties every non-border cell and removes all sources and portals.
func (w *World) Clear() {
	for y := 1; y < w.height-1; y++ {
		for x := 1; x < w.width-1; x++ {
			w.set(XY{x, y}, Particle{})
		}
	}
	for i, e := range w.sourceAt {
		if !e.IsZero() {
			w.entities.RemoveEntity(e)
			w.sourceAt[i] = ecs.Entity{}
		}
	}
	for i, e := range w.portalAt {
		if !e.IsZero() {
			w.entities.RemoveEntity(e)
			w.portalAt[i] = ecs.Entity{}
		}
	}
}

// Sweep visits every cell in row-major order and then clears its per-tick
// flags (Updated, and moved for movable materials). Renderers paint from fn;
// fn may be nil. A sweep must run between consecutive UpdateAll calls.
func (w *World) Sweep(fn func(xy XY, p Particle)) {
	for y := 0; y < w.height; y++ {
		for x := 0; x < w.width; x++ {
			xy := XY{x, y}
			p := w.cell(xy)
			if fn != nil {
				fn(xy, *p)
			}
			p.refresh()
		}
	}
}

// Refresh clears per-tick flags without visiting cells. Headless runners
// call this in place of a painting sweep.
func (w *World) Refresh() {
	for _, c := range w.chunks {
		for i := range c.particles {
			c.particles[i].refresh()
		}
	}
}

// index returns the linear row-major index of xy in the per-cell grids.
func (w *World) index(xy XY) int { return xy.Y*w.width + xy.X }

// chunkAt returns the chunk containing xy and xy's local coordinates.
func (w *World) chunkAt(xy XY) (c *Chunk, lx, ly int) {
	cx, cy := xy.X/w.chunkSize, xy.Y/w.chunkSize
	return w.chunks[cy*w.chunksW+cx], xy.X % w.chunkSize, xy.Y % w.chunkSize
}

// cell returns a pointer to the particle at xy. xy must be in bounds.
func (w *World) cell(xy XY) *Particle {
	c, lx, ly := w.chunkAt(xy)
	return c.at(lx, ly)
}

// set is the structural write path. Writes that change the cell wake its
// chunk for the next tick, plus any neighbouring chunk within two cells.
func (w *World) set(xy XY, p Particle) {
	cur := w.cell(xy)
	if *cur == p {
		return
	}
	*cur = p
	w.stats.Writes++
	w.markDirty(xy)
}

func (w *World) markDirty(xy XY) {
	cs := w.chunkSize
	cx, cy := xy.X/cs, xy.Y/cs
	lx, ly := xy.X%cs, xy.Y%cs

	xs := [3]int{0}
	nx := 1
	if lx < 2 {
		xs[nx] = -1
		nx++
	}
	if lx >= cs-2 {
		xs[nx] = 1
		nx++
	}
	ys := [3]int{0}
	ny := 1
	if ly < 2 {
		ys[ny] = -1
		ny++
	}
	if ly >= cs-2 {
		ys[ny] = 1
		ny++
	}

	for _, dy := range ys[:ny] {
		for _, dx := range xs[:nx] {
			x, y := cx+dx, cy+dy
			if x < 0 || y < 0 || x >= w.chunksW || y >= w.chunksH {
				continue
			}
			w.chunks[y*w.chunksW+x].wake()
		}
	}
}

func identity(n int) []int {
	s := make([]int, n)
	for i := range s {
		s[i] = i
	}
	return s
}
