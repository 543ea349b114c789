package renderer

import (
	"testing"

	"github.com/pthm-cable/grit/material"
	"github.com/pthm-cable/grit/world"
)

func TestShade(t *testing.T) {
	if Shade(material.Empty, 3, 4) != Background {
		t.Error("empty cells should paint the background")
	}
	if Shade(material.Water, 3, 4) != material.Water.Color() {
		t.Error("fluids should paint their flat color")
	}
	base := material.Sand.Color()
	for x := 0; x < 50; x++ {
		c := Shade(material.Sand, x, 7)
		if d := int(c.R) - int(base.R); d < -8 || d > 8 {
			t.Fatalf("sand jitter out of range at x=%d: %d", x, d)
		}
		if c != Shade(material.Sand, x, 7) {
			t.Fatal("shade must be stable per cell")
		}
	}
}

func TestPaintSweepsWorld(t *testing.T) {
	w, err := world.New(world.Options{Width: 16, Height: 16, ChunkSize: 8, Seed: 3})
	if err != nil {
		t.Fatal(err)
	}
	w.AddNewParticle(material.Water, world.XY{X: 5, Y: 5}, false)
	w.UpdateAll()

	r := NewGridRenderer(16, 16)
	r.Paint(w) // not initialized: fills the buffer only

	water := 0
	for _, c := range r.pixels {
		if c == material.Water.Color() {
			water++
		}
	}
	if water != 1 {
		t.Errorf("expected one water pixel, got %d", water)
	}
	if r.pixels[0] != Shade(material.Border, 0, 0) {
		t.Error("border cell not painted")
	}
	w.Sweep(func(xy world.XY, p world.Particle) {
		if p.Updated {
			t.Fatalf("paint should refresh flags, %v still updated", xy)
		}
	})
}
