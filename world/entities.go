package world

import (
	"fmt"
	"image/color"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/grit/components"
	"github.com/pthm-cable/grit/material"
)

// AddNewSource installs an emitter of t at xy. An existing source is only
// overwritten when replace is set.
func (w *World) AddNewSource(t material.Type, xy XY, sourceReplaces, replace bool) {
	if !w.InBounds(xy) {
		return
	}
	i := w.index(xy)
	em := components.Emitter{Material: t, Replaces: sourceReplaces}
	if e := w.sourceAt[i]; !e.IsZero() {
		if !replace {
			return
		}
		_, cur := w.sources.Get(e)
		*cur = em
		return
	}
	cell := components.Cell{X: xy.X, Y: xy.Y}
	w.sourceAt[i] = w.sources.NewEntity(&cell, &em)
}

// AddNewSink installs a source that erases whatever occupies xy.
func (w *World) AddNewSink(xy XY, replace bool) {
	w.AddNewSource(material.Empty, xy, true, replace)
}

// DeleteSource removes the source at xy, if any.
func (w *World) DeleteSource(xy XY) {
	if !w.InBounds(xy) {
		return
	}
	i := w.index(xy)
	if e := w.sourceAt[i]; !e.IsZero() {
		w.entities.RemoveEntity(e)
		w.sourceAt[i] = ecs.Entity{}
	}
}

// SourceAt returns the emitter installed at xy.
func (w *World) SourceAt(xy XY) (components.Emitter, bool) {
	if !w.InBounds(xy) {
		return components.Emitter{}, false
	}
	e := w.sourceAt[w.index(xy)]
	if e.IsZero() {
		return components.Emitter{}, false
	}
	_, em := w.sources.Get(e)
	return *em, true
}

// EachSource calls fn for every installed source. fn must not add or
// remove sources or portals.
func (w *World) EachSource(fn func(xy XY, em components.Emitter)) {
	query := w.sourceFilter.Query()
	for query.Next() {
		cell, em := query.Get()
		fn(XY{cell.X, cell.Y}, *em)
	}
}

// AddNewPortal creates a portal at xy facing the given direction. It returns
// false when xy already holds a portal.
//
// When partner is given, the partner's link is patched to point back at xy.
// The partner must already hold a portal; citing an empty cell means the
// caller's bookkeeping is corrupt and panics.
func (w *World) AddNewPortal(xy XY, partner *XY, facing components.Direction, c color.RGBA) bool {
	if !w.InBounds(xy) {
		return false
	}
	i := w.index(xy)
	if !w.portalAt[i].IsZero() {
		return false
	}

	gate := components.Gate{Facing: facing, Color: c}
	if partner != nil {
		if !w.InBounds(*partner) || w.portalAt[w.index(*partner)].IsZero() {
			panic(fmt.Sprintf("world: portal partner %v holds no portal", *partner))
		}
		_, pg := w.gates.Get(w.portalAt[w.index(*partner)])
		pg.Partner = components.Cell{X: xy.X, Y: xy.Y}
		pg.Linked = true

		gate.Partner = components.Cell{X: partner.X, Y: partner.Y}
		gate.Linked = true
	}

	cell := components.Cell{X: xy.X, Y: xy.Y}
	w.portalAt[i] = w.gates.NewEntity(&cell, &gate)
	return true
}

// DeletePortal removes the portal at xy and unlinks its partner.
func (w *World) DeletePortal(xy XY) {
	if !w.InBounds(xy) {
		return
	}
	i := w.index(xy)
	e := w.portalAt[i]
	if e.IsZero() {
		return
	}
	_, gate := w.gates.Get(e)
	if gate.Linked {
		partner := XY{gate.Partner.X, gate.Partner.Y}
		if pe := w.portalAt[w.index(partner)]; !pe.IsZero() {
			_, pg := w.gates.Get(pe)
			if pg.Linked && pg.Partner.X == xy.X && pg.Partner.Y == xy.Y {
				pg.Linked = false
			}
		}
	}
	w.entities.RemoveEntity(e)
	w.portalAt[i] = ecs.Entity{}
}

// PortalExistsAt reports whether xy holds a portal.
func (w *World) PortalExistsAt(xy XY) bool {
	return w.InBounds(xy) && !w.portalAt[w.index(xy)].IsZero()
}

// PortalAt returns the portal at xy.
func (w *World) PortalAt(xy XY) (components.Gate, bool) {
	if !w.PortalExistsAt(xy) {
		return components.Gate{}, false
	}
	_, gate := w.gates.Get(w.portalAt[w.index(xy)])
	return *gate, true
}

// EachPortal calls fn for every portal. fn must not add or remove sources
// or portals.
func (w *World) EachPortal(fn func(xy XY, g components.Gate)) {
	query := w.gateFilter.Query()
	for query.Next() {
		cell, gate := query.Get()
		fn(XY{cell.X, cell.Y}, *gate)
	}
}

// RelativeXY resolves the cell reached from xy by delta d. Every neighbour
// lookup and move goes through here.
//
// An axis-aligned delta is warped to the partner cell when xy holds a linked
// portal facing exactly d. A diagonal delta is resolved as its x step
// followed by its y step from the intermediate cell, so it can pass through
// at most one x-facing and one y-facing portal.
//
// Writes only wake chunks near the written cell. A particle resting on a
// portal whose partner cell is blocked is not woken when that partner cell
// later empties, unless the two cells share a chunk neighbourhood.
func (w *World) RelativeXY(xy XY, d XY) XY {
	if d.X != 0 && d.Y != 0 {
		mid := w.RelativeXY(xy, XY{d.X, 0})
		return w.RelativeXY(mid, XY{0, d.Y})
	}
	if w.InBounds(xy) {
		if e := w.portalAt[w.index(xy)]; !e.IsZero() {
			_, gate := w.gates.Get(e)
			if gate.Linked {
				fx, fy := gate.Facing.Delta()
				if fx == d.X && fy == d.Y {
					return XY{gate.Partner.X, gate.Partner.Y}
				}
			}
		}
	}
	return xy.Add(d)
}
