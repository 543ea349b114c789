package telemetry

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gocarina/gocsv"

	"github.com/pthm-cable/grit/config"
)

func init() {
	config.MustInit("")
}

func TestOutputManagerDisabled(t *testing.T) {
	om, err := NewOutputManager("")
	if err != nil || om != nil {
		t.Fatalf("expected nil manager for empty dir, got %v, %v", om, err)
	}
	// Nil receiver is a no-op.
	if err := om.WriteTelemetry(WindowStats{}); err != nil {
		t.Error(err)
	}
	if err := om.Close(); err != nil {
		t.Error(err)
	}
}

func TestOutputManagerWritesCSV(t *testing.T) {
	dir := t.TempDir()
	om, err := NewOutputManager(dir)
	if err != nil {
		t.Fatal(err)
	}

	for i := 1; i <= 3; i++ {
		if err := om.WriteTelemetry(WindowStats{WindowEndTick: uint64(i * 600), Sand: i}); err != nil {
			t.Fatal(err)
		}
	}
	perf := PerfStats{AvgTickDuration: 250 * time.Microsecond, PhasePct: map[string]float64{PhaseParticles: 80}}
	if err := om.WritePerf(perf, 600); err != nil {
		t.Fatal(err)
	}
	if err := om.WriteBookmark(Bookmark{Type: BookmarkSettled, Tick: 1200, Description: "quiet"}); err != nil {
		t.Fatal(err)
	}
	if err := om.WriteConfig(config.Cfg()); err != nil {
		t.Fatal(err)
	}
	if err := om.Close(); err != nil {
		t.Fatal(err)
	}

	var rows []WindowStats
	f, err := os.Open(filepath.Join(dir, "telemetry.csv"))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := gocsv.UnmarshalFile(f, &rows); err != nil {
		t.Fatal(err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected 3 telemetry rows (one header), got %d", len(rows))
	}
	if rows[2].WindowEndTick != 1800 || rows[2].Sand != 3 {
		t.Errorf("unexpected last row %+v", rows[2])
	}

	var perfRows []PerfStatsCSV
	pf, err := os.Open(filepath.Join(dir, "perf.csv"))
	if err != nil {
		t.Fatal(err)
	}
	defer pf.Close()
	if err := gocsv.UnmarshalFile(pf, &perfRows); err != nil {
		t.Fatal(err)
	}
	if len(perfRows) != 1 || perfRows[0].AvgTickUS != 250 || perfRows[0].ParticlesPct != 80 {
		t.Errorf("unexpected perf rows %+v", perfRows)
	}

	if _, err := config.Load(filepath.Join(dir, "config.yaml")); err != nil {
		t.Errorf("config snapshot does not load back: %v", err)
	}
}
