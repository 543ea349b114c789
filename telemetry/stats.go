package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated statistics for a window of ticks.
type WindowStats struct {
	WindowStartTick uint64 `csv:"-"`
	WindowEndTick   uint64 `csv:"window_end"`
	Ticks           int    `csv:"ticks"`

	// Material census at window end
	Sand   int `csv:"sand"`
	Gravel int `csv:"gravel"`
	Water  int `csv:"water"`
	Oil    int `csv:"oil"`
	Stone  int `csv:"stone"`

	// Entities at window end
	Sources int `csv:"sources"`
	Sinks   int `csv:"sinks"`
	Portals int `csv:"portals"`

	// Totals over the window
	Emitted int `csv:"emitted"`
	Writes  int `csv:"writes"`

	// Chunk activity distribution
	ActiveChunksMean float64 `csv:"active_chunks_mean"`
	ActiveChunksStd  float64 `csv:"active_chunks_std"`
	ActiveChunksP50  float64 `csv:"active_chunks_p50"`
	ActiveChunksP90  float64 `csv:"active_chunks_p90"`
	ActiveFraction   float64 `csv:"active_fraction"` // mean active / total chunks

	// Rule dispatches per tick
	CellsUpdatedMean float64 `csv:"cells_updated_mean"`
	CellsUpdatedP90  float64 `csv:"cells_updated_p90"`
}

// Distribution summarizes values as mean, standard deviation and the 50th
// and 90th percentiles. Returns zeros for an empty slice.
func Distribution(values []float64) (mean, std, p50, p90 float64) {
	n := len(values)
	if n == 0 {
		return 0, 0, 0, 0
	}
	mean, std = stat.MeanStdDev(values, nil)
	if n < 2 {
		std = 0
	}
	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)
	p50 = stat.Quantile(0.5, stat.Empirical, sorted, nil)
	p90 = stat.Quantile(0.9, stat.Empirical, sorted, nil)
	return mean, std, p50, p90
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Uint64("window_start", s.WindowStartTick),
		slog.Uint64("window_end", s.WindowEndTick),
		slog.Int("sand", s.Sand),
		slog.Int("gravel", s.Gravel),
		slog.Int("water", s.Water),
		slog.Int("oil", s.Oil),
		slog.Int("stone", s.Stone),
		slog.Int("sources", s.Sources),
		slog.Int("sinks", s.Sinks),
		slog.Int("portals", s.Portals),
		slog.Int("emitted", s.Emitted),
		slog.Int("writes", s.Writes),
		slog.Float64("active_chunks_mean", s.ActiveChunksMean),
		slog.Float64("active_chunks_p90", s.ActiveChunksP90),
		slog.Float64("active_fraction", s.ActiveFraction),
		slog.Float64("cells_updated_mean", s.CellsUpdatedMean),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats",
		"window_end", s.WindowEndTick,
		"sand", s.Sand,
		"gravel", s.Gravel,
		"water", s.Water,
		"oil", s.Oil,
		"stone", s.Stone,
		"sources", s.Sources,
		"sinks", s.Sinks,
		"portals", s.Portals,
		"emitted", s.Emitted,
		"writes", s.Writes,
		"active_chunks_mean", s.ActiveChunksMean,
		"active_chunks_std", s.ActiveChunksStd,
		"active_chunks_p50", s.ActiveChunksP50,
		"active_chunks_p90", s.ActiveChunksP90,
		"active_fraction", s.ActiveFraction,
		"cells_updated_mean", s.CellsUpdatedMean,
		"cells_updated_p90", s.CellsUpdatedP90,
	)
}
