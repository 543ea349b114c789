package world

import "github.com/pthm-cable/grit/material"

// Rule is a material movement rule. It runs once per particle per tick.
type Rule func(c *Capsule)

var rules = [...]Rule{
	material.Granular: granular,
	material.Fluid:    fluid,
}

func ruleFor(t material.Type) Rule {
	b := t.Props().Behavior
	if int(b) >= len(rules) {
		return nil
	}
	return rules[b]
}

// granular falls straight down, otherwise slides to one of the two lower
// diagonals, picking the first side at random.
func granular(c *Capsule) {
	if c.Move(Down, true) {
		return
	}
	first, second := DownLeft, DownRight
	if c.RandRange(0, 2) == 1 {
		first, second = second, first
	}
	if c.Move(first, true) {
		return
	}
	c.Move(second, true)
}

// fluid falls like a granular material and then spreads sideways. The
// diagonal and lateral order follows the particle's persistent flow bias;
// when only the last lateral option succeeds the bias flips, so fluids keep
// spreading in one direction instead of jittering in place.
func fluid(c *Capsule) {
	diag1, diag2 := DownLeft, DownRight
	side1, side2 := Left, Right
	if c.Self().MovingRight() {
		diag1, diag2 = DownRight, DownLeft
		side1, side2 = Right, Left
	}
	if c.Move(Down, true) || c.Move(diag1, true) || c.Move(diag2, true) || c.Move(side1, true) {
		return
	}
	if c.Move(side2, true) {
		c.Update(func(p *Particle) { p.ToggleMovingRight() })
	}
}

// displacementOrder is where a displaced occupant tries to go, relative to
// its own cell.
var displacementOrder = [...]XY{Down, DownRight, DownLeft, Right, Left}

// tryGridPosition applies the claim rule for moving the particle at src
// into dst and performs the move on success.
//
// Empty targets are always taken by horizontal moves; other moves need
// weight(src)*U > weight(Empty). An occupied target can only be taken when
// swapping is allowed and it holds a movable particle not yet updated this
// tick, with weight(src)*U > weight(dst). The occupant is first pushed into
// a free neighbour of its own; failing that it swaps into src.
func (w *World) tryGridPosition(src, dst XY, horizontal, allowSwap bool) bool {
	if !w.InBounds(dst) || src == dst {
		return false
	}
	mover := w.cell(src).Type
	target := *w.cell(dst)

	if target.Type == material.Empty {
		if !horizontal && mover.Weight()*w.rng.Float64() <= material.Empty.Weight() {
			return false
		}
		w.swap(src, dst)
		return true
	}

	if !allowSwap || !target.Type.Movable() || target.Updated {
		return false
	}
	if mover.Weight()*w.rng.Float64() <= target.Type.Weight() {
		return false
	}

	for _, d := range displacementOrder {
		next := w.RelativeXY(dst, d)
		if w.tryGridPosition(dst, next, d.Y == 0, false) {
			break
		}
	}
	// Either dst is now empty or still holds the occupant; both cases end
	// with the mover at dst.
	w.swap(src, dst)
	return true
}

// swap exchanges two cells through the structural write path and flags
// the movable particles involved as moved.
func (w *World) swap(a, b XY) {
	pa, pb := *w.cell(a), *w.cell(b)
	if pa.Type.Movable() {
		pa.moved = true
	}
	if pb.Type.Movable() {
		pb.moved = true
	}
	w.set(a, pb)
	w.set(b, pa)
}
