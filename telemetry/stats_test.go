package telemetry

import (
	"math"
	"testing"

	"github.com/pthm-cable/grit/material"
	"github.com/pthm-cable/grit/world"
)

func TestDistribution(t *testing.T) {
	values := []float64{10, 1, 9, 2, 8, 3, 7, 4, 6, 5}
	mean, std, p50, p90 := Distribution(values)

	if math.Abs(mean-5.5) > 1e-9 {
		t.Errorf("mean = %v, want 5.5", mean)
	}
	// Sample standard deviation of 1..10.
	if math.Abs(std-3.02765) > 1e-4 {
		t.Errorf("std = %v, want ~3.028", std)
	}
	if p50 != 5 {
		t.Errorf("p50 = %v, want 5", p50)
	}
	if p90 != 9 {
		t.Errorf("p90 = %v, want 9", p90)
	}
	if values[0] != 10 {
		t.Error("Distribution must not reorder its input")
	}
}

func TestDistributionEdgeCases(t *testing.T) {
	if m, s, p50, p90 := Distribution(nil); m != 0 || s != 0 || p50 != 0 || p90 != 0 {
		t.Error("empty slice should return all zeros")
	}
	if m, s, p50, p90 := Distribution([]float64{4}); m != 4 || s != 0 || p50 != 4 || p90 != 4 {
		t.Errorf("single value: got %v %v %v %v", m, s, p50, p90)
	}
}

func TestCollectorFlush(t *testing.T) {
	c := NewCollector(4, 8)

	for i, active := range []int{8, 4, 2, 2} {
		c.Record(world.TickStats{
			Tick:         uint64(i + 1),
			ActiveChunks: active,
			CellsUpdated: active * 10,
			Writes:       3,
			Emitted:      1,
		})
	}
	if c.ShouldFlush(3) {
		t.Error("window should not flush early")
	}
	if !c.ShouldFlush(4) {
		t.Fatal("window should flush after 4 ticks")
	}

	census := map[material.Type]int{material.Sand: 12, material.Water: 5}
	s := c.Flush(4, census, EntityCounts{Sources: 2, Sinks: 1, Portals: 2})

	if s.WindowStartTick != 0 || s.WindowEndTick != 4 || s.Ticks != 4 {
		t.Errorf("unexpected window bounds %+v", s)
	}
	if s.Writes != 12 || s.Emitted != 4 {
		t.Errorf("writes=%d emitted=%d, want 12 and 4", s.Writes, s.Emitted)
	}
	if s.ActiveChunksMean != 4 {
		t.Errorf("active chunk mean = %v, want 4", s.ActiveChunksMean)
	}
	if s.ActiveFraction != 0.5 {
		t.Errorf("active fraction = %v, want 0.5", s.ActiveFraction)
	}
	if s.CellsUpdatedMean != 40 {
		t.Errorf("cells updated mean = %v, want 40", s.CellsUpdatedMean)
	}
	if s.Sand != 12 || s.Water != 5 || s.Sources != 2 || s.Sinks != 1 || s.Portals != 2 {
		t.Errorf("census not carried into stats: %+v", s)
	}

	// Counters reset for the next window.
	next := c.Flush(8, census, EntityCounts{})
	if next.WindowStartTick != 4 || next.Writes != 0 || next.Ticks != 0 {
		t.Errorf("collector did not reset: %+v", next)
	}
}

func TestCountEntities(t *testing.T) {
	w, err := world.New(world.Options{Width: 16, Height: 16, ChunkSize: 8, Seed: 1})
	if err != nil {
		t.Fatal(err)
	}
	w.AddNewSource(material.Sand, world.XY{X: 2, Y: 2}, false, false)
	w.AddNewSource(material.Water, world.XY{X: 3, Y: 2}, false, false)
	w.AddNewSink(world.XY{X: 4, Y: 8}, false)

	n := CountEntities(w)
	if n.Sources != 2 || n.Sinks != 1 || n.Portals != 0 {
		t.Errorf("unexpected counts %+v", n)
	}
}
