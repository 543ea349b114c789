package world

import (
	"fmt"
	"image/color"

	"github.com/ojrac/opensimplex-go"

	"github.com/pthm-cable/grit/config"
	"github.com/pthm-cable/grit/material"
)

// Populate fills a freshly built world with the configured scenario: the
// named layout first, then sources, sinks and portal pairs.
func Populate(w *World, sc config.ScenarioConfig, terrain config.TerrainConfig, seed int64) error {
	switch sc.Name {
	case "", "empty":
	case "basin":
		buildBasin(w)
	case "dunes":
		buildDunes(w, terrain, seed)
	default:
		return fmt.Errorf("unknown scenario %q", sc.Name)
	}

	for _, s := range sc.Sources {
		xy := XY{s.X, s.Y}
		if !w.InBounds(xy) {
			return fmt.Errorf("source %v outside %dx%d world", xy, w.width, w.height)
		}
		w.AddNewSource(s.Material, xy, s.Replaces, true)
	}
	for _, s := range sc.Sinks {
		xy := XY{s.X, s.Y}
		if !w.InBounds(xy) {
			return fmt.Errorf("sink %v outside %dx%d world", xy, w.width, w.height)
		}
		w.AddNewSink(xy, true)
	}
	for i, p := range sc.Portals {
		a, b := XY{p.A.X, p.A.Y}, XY{p.B.X, p.B.Y}
		if !w.InBounds(a) || !w.InBounds(b) {
			return fmt.Errorf("portal pair %d (%v, %v) outside %dx%d world", i, a, b, w.width, w.height)
		}
		c := color.RGBA{R: p.Color[0], G: p.Color[1], B: p.Color[2], A: 255}
		if !w.AddNewPortal(a, nil, p.FacingA, c) {
			return fmt.Errorf("portal pair %d: %v already holds a portal", i, a)
		}
		if !w.AddNewPortal(b, &a, p.FacingB, c) {
			return fmt.Errorf("portal pair %d: %v already holds a portal", i, b)
		}
	}
	return nil
}

// buildBasin draws an open-topped stone basin in the lower part of the world.
func buildBasin(w *World) {
	left, right := w.width/8, w.width-1-w.width/8
	top, floor := w.height/3, w.height-1-w.height/8
	for y := top; y <= floor; y++ {
		w.AddNewParticle(material.Stone, XY{left, y}, true)
		w.AddNewParticle(material.Stone, XY{right, y}, true)
	}
	for x := left; x <= right; x++ {
		w.AddNewParticle(material.Stone, XY{x, floor}, true)
	}
}

// buildDunes fills each column below an FBM noise surface: sand on top,
// gravel below gravel_depth.
func buildDunes(w *World, t config.TerrainConfig, seed int64) {
	noise := opensimplex.NewNormalized(seed)
	for x := 1; x < w.width-1; x++ {
		n := fbm(noise, float64(x)*t.Scale, t.Octaves, t.Gain)
		surface := int(float64(w.height) * (1 - t.BaseHeight - t.Amplitude*(n-0.5)*2))
		if surface < 1 {
			surface = 1
		}
		for y := surface; y < w.height-1; y++ {
			m := material.Sand
			if y-surface >= t.GravelDepth {
				m = material.Gravel
			}
			w.AddNewParticle(m, XY{x, y}, true)
		}
	}
}

// fbm sums octaves of normalized noise, returning a value in [0, 1).
func fbm(noise opensimplex.Noise, x float64, octaves int, gain float64) float64 {
	if octaves < 1 {
		octaves = 1
	}
	var sum, norm float64
	amp, freq := 1.0, 1.0
	for i := 0; i < octaves; i++ {
		sum += noise.Eval2(x*freq, float64(i)*17.3) * amp
		norm += amp
		amp *= gain
		freq *= 2
	}
	return sum / norm
}
