package telemetry

import (
	"testing"
	"time"

	"github.com/pthm-cable/grit/material"
	"github.com/pthm-cable/grit/world"
)

func TestPerfCollectorTimesWorldPasses(t *testing.T) {
	w, err := world.New(world.Options{Width: 64, Height: 64, ChunkSize: 16, Seed: 3})
	if err != nil {
		t.Fatal(err)
	}
	for x := 2; x < 62; x++ {
		w.AddNewParticle(material.Sand, world.XY{X: x, Y: 5}, false)
	}
	w.AddNewSource(material.Water, world.XY{X: 30, Y: 2}, false, false)

	pc := NewPerfCollector(10)
	w.SetPhaseHook(pc.StartPhase)
	for i := 0; i < 8; i++ {
		pc.StartTick()
		pc.StartPhase(PhaseRefresh)
		w.Refresh()
		w.UpdateAll()
		pc.EndTick()
	}

	stats := pc.Stats()
	if stats.AvgTickDuration <= 0 || stats.TicksPerSecond <= 0 {
		t.Fatalf("expected positive timing, got %+v", stats)
	}
	for _, phase := range []string{PhaseSources, PhaseParticles, PhaseRefresh} {
		if _, ok := stats.PhaseAvg[phase]; !ok {
			t.Errorf("phase %s not tracked", phase)
		}
	}
	if stats.MaxTickDuration < stats.P95TickDuration || stats.P95TickDuration <= 0 {
		t.Errorf("expected 0 < p95 <= max, got p95=%v max=%v", stats.P95TickDuration, stats.MaxTickDuration)
	}
}

func TestPerfCollectorWindowEvictsOldTicks(t *testing.T) {
	pc := NewPerfCollector(3)
	for i := 0; i < 3; i++ {
		pc.StartTick()
		pc.StartPhase("slow")
		time.Sleep(5 * time.Millisecond)
		pc.EndTick()
	}
	if pc.Stats().MaxTickDuration < 5*time.Millisecond {
		t.Fatal("slow ticks should be in the window")
	}
	for i := 0; i < 3; i++ {
		pc.StartTick()
		pc.StartPhase("fast")
		pc.EndTick()
	}
	stats := pc.Stats()
	if stats.MaxTickDuration >= 5*time.Millisecond {
		t.Errorf("slow ticks should have left the window, max=%v", stats.MaxTickDuration)
	}
	if _, ok := stats.PhaseAvg["slow"]; ok {
		t.Error("evicted phase still reported")
	}
}

func TestPerfCollectorPhaseShare(t *testing.T) {
	pc := NewPerfCollector(4)
	for i := 0; i < 4; i++ {
		pc.StartTick()
		pc.StartPhase(PhaseSources)
		time.Sleep(50 * time.Microsecond)
		pc.StartPhase(PhaseParticles)
		time.Sleep(2 * time.Millisecond)
		pc.EndTick()
	}
	stats := pc.Stats()
	if stats.PhasePct[PhaseParticles] <= stats.PhasePct[PhaseSources] {
		t.Errorf("particles (%.1f%%) should outweigh sources (%.1f%%)",
			stats.PhasePct[PhaseParticles], stats.PhasePct[PhaseSources])
	}

	row := stats.ToCSV(99)
	if row.WindowEnd != 99 || row.ParticlesPct != stats.PhasePct[PhaseParticles] || row.RefreshPct != 0 {
		t.Errorf("unexpected csv row %+v", row)
	}
}

func TestPerfCollectorEmpty(t *testing.T) {
	stats := NewPerfCollector(0).Stats()
	if stats.AvgTickDuration != 0 || stats.FPS != 0 {
		t.Errorf("expected zero stats, got %+v", stats)
	}
	if stats.PhaseAvg == nil || stats.PhasePct == nil {
		t.Error("maps should be non-nil")
	}
}

func TestPerfCollectorFrames(t *testing.T) {
	pc := NewPerfCollector(10)
	pc.RecordFrame()
	time.Sleep(20 * time.Millisecond)
	pc.RecordFrame()

	stats := pc.Stats()
	if stats.FrameDuration < 20*time.Millisecond {
		t.Errorf("frame duration %v shorter than the sleep", stats.FrameDuration)
	}
	if stats.FPS <= 0 || stats.FPS > 50 {
		t.Errorf("expected FPS in (0, 50], got %.1f", stats.FPS)
	}
}
