package world

// TickStats counts the work done by one UpdateAll call.
type TickStats struct {
	Tick         uint64
	ActiveChunks int // chunks processed by the particle pass
	CellsUpdated int // movement rules dispatched
	Writes       int // structural cell writes that changed a value
	Emitted      int // source emissions that changed a cell
}

// Pass names reported to the phase hook.
const (
	PassSources   = "sources"
	PassParticles = "particles"
)

// SetPhaseHook registers fn to be called with the pass name as each pass of
// UpdateAll begins. A nil fn removes the hook.
func (w *World) SetPhaseHook(fn func(pass string)) {
	w.phaseHook = fn
}

// UpdateAll advances the world by one tick: the sources pass, then the
// chunked particle pass. Both run to completion on the calling goroutine.
// A Sweep or Refresh must happen between consecutive calls.
func (w *World) UpdateAll() {
	w.stats = TickStats{Tick: w.tick + 1}
	if w.phaseHook != nil {
		w.phaseHook(PassSources)
	}
	w.updateSources()
	if w.phaseHook != nil {
		w.phaseHook(PassParticles)
	}
	w.updateParticles()
	w.tick++
}

// updateSources flips a fair coin per source and emits on heads.
func (w *World) updateSources() {
	query := w.sourceFilter.Query()
	for query.Next() {
		cell, em := query.Get()
		// Coin flip per source keeps emission from streaming in lockstep.
		if w.rng.Float64() >= 0.5 {
			continue
		}
		before := w.stats.Writes
		w.AddNewParticle(em.Material, XY{cell.X, cell.Y}, em.Replaces)
		if w.stats.Writes > before {
			w.stats.Emitted++
		}
	}
}

func (w *World) updateParticles() {
	w.rng.Shuffle(len(w.rowOrder), func(i, j int) {
		w.rowOrder[i], w.rowOrder[j] = w.rowOrder[j], w.rowOrder[i]
	})
	w.rng.Shuffle(len(w.colOrder), func(i, j int) {
		w.colOrder[i], w.colOrder[j] = w.colOrder[j], w.colOrder[i]
	})
	// One local permutation per tick, shared by every chunk.
	w.rng.Shuffle(len(w.cellOrder), func(i, j int) {
		w.cellOrder[i], w.cellOrder[j] = w.cellOrder[j], w.cellOrder[i]
	})

	// Shift every chunk before any runs, so a write into a chunk that is
	// visited later this tick still keeps it awake for the next one.
	for _, c := range w.chunks {
		c.shift()
	}

	for _, cy := range w.rowOrder {
		for _, cx := range w.colOrder {
			c := w.chunks[cy*w.chunksW+cx]
			if !c.updateThisFrame {
				continue
			}
			w.stats.ActiveChunks++
			w.updateChunk(c, cx, cy)
		}
	}
}

func (w *World) updateChunk(c *Chunk, cx, cy int) {
	cs := w.chunkSize
	ox, oy := cx*cs, cy*cs
	for _, i := range w.cellOrder {
		p := &c.particles[i]
		if p.Updated || !p.Type.Movable() {
			continue
		}
		// Marking a cell updated is bookkeeping, not a structural write.
		p.Updated = true
		self := *p
		w.stats.CellsUpdated++

		rule := ruleFor(self.Type)
		if rule == nil {
			continue
		}
		w.capsule.begin(XY{ox + i%cs, oy + i/cs}, self)
		rule(&w.capsule)
		w.capsule.release()
	}
}
