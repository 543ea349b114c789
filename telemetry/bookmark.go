package telemetry

import (
	"fmt"
	"log/slog"
)

// BookmarkType identifies the type of bookmark.
type BookmarkType string

const (
	BookmarkSettled       BookmarkType = "settled"
	BookmarkWoke          BookmarkType = "woke"
	BookmarkActivitySurge BookmarkType = "activity_surge"
	BookmarkDrain         BookmarkType = "drain"
)

// Bookmark marks a notable moment in a run.
type Bookmark struct {
	Type        BookmarkType `csv:"type"`
	Tick        uint64       `csv:"tick"`
	Description string       `csv:"description"`
}

// LogBookmark logs the bookmark using slog.
func (b Bookmark) LogBookmark() {
	slog.Info("bookmark",
		"type", string(b.Type),
		"tick", b.Tick,
		"description", b.Description,
	)
}

// BookmarkDetector watches successive windows for notable changes.
type BookmarkDetector struct {
	history     []WindowStats
	historySize int
	historyIdx  int
	historyFull bool

	settled        bool
	recentMassPeak int // peak movable particle count since the last drain
}

// NewBookmarkDetector creates a detector with the given history size.
func NewBookmarkDetector(historySize int) *BookmarkDetector {
	if historySize < 3 {
		historySize = 3
	}
	return &BookmarkDetector{
		history:     make([]WindowStats, historySize),
		historySize: historySize,
	}
}

// Check analyzes the latest stats and returns any triggered bookmarks.
func (bd *BookmarkDetector) Check(stats WindowStats) []Bookmark {
	var bookmarks []Bookmark

	if b := bd.checkSettled(stats); b != nil {
		bookmarks = append(bookmarks, *b)
	}
	if b := bd.checkSurge(stats); b != nil {
		bookmarks = append(bookmarks, *b)
	}
	if b := bd.checkDrain(stats); b != nil {
		bookmarks = append(bookmarks, *b)
	}

	bd.addToHistory(stats)
	if m := movable(stats); m > bd.recentMassPeak {
		bd.recentMassPeak = m
	}
	return bookmarks
}

func movable(s WindowStats) int { return s.Sand + s.Gravel + s.Water + s.Oil }

func (bd *BookmarkDetector) addToHistory(stats WindowStats) {
	bd.history[bd.historyIdx] = stats
	bd.historyIdx = (bd.historyIdx + 1) % bd.historySize
	if bd.historyIdx == 0 {
		bd.historyFull = true
	}
}

func (bd *BookmarkDetector) getHistory() []WindowStats {
	if bd.historyFull {
		return bd.history
	}
	return bd.history[:bd.historyIdx]
}

// checkSettled fires when every chunk has gone to sleep, and again when
// activity resumes afterwards.
func (bd *BookmarkDetector) checkSettled(stats WindowStats) *Bookmark {
	quiet := stats.Writes == 0 && stats.ActiveChunksP90 == 0
	switch {
	case quiet && !bd.settled:
		bd.settled = true
		return &Bookmark{
			Type:        BookmarkSettled,
			Tick:        stats.WindowEndTick,
			Description: fmt.Sprintf("World settled with %d movable particles", movable(stats)),
		}
	case !quiet && bd.settled:
		bd.settled = false
		return &Bookmark{
			Type:        BookmarkWoke,
			Tick:        stats.WindowEndTick,
			Description: fmt.Sprintf("Activity resumed: %d writes, %.1f active chunks", stats.Writes, stats.ActiveChunksMean),
		}
	}
	return nil
}

func (bd *BookmarkDetector) checkSurge(stats WindowStats) *Bookmark {
	history := bd.getHistory()
	if len(history) < 3 {
		return nil
	}
	var total int
	for _, h := range history {
		total += h.Writes
	}
	avg := float64(total) / float64(len(history))
	if avg == 0 || stats.Writes < 100 {
		return nil
	}
	if float64(stats.Writes) > avg*2 {
		return &Bookmark{
			Type:        BookmarkActivitySurge,
			Tick:        stats.WindowEndTick,
			Description: fmt.Sprintf("Writes %d are %.1fx average (%.0f)", stats.Writes, float64(stats.Writes)/avg, avg),
		}
	}
	return nil
}

func (bd *BookmarkDetector) checkDrain(stats WindowStats) *Bookmark {
	if bd.recentMassPeak == 0 {
		return nil
	}
	m := movable(stats)
	drop := 1 - float64(m)/float64(bd.recentMassPeak)
	if drop > 0.30 && m < bd.recentMassPeak-10 {
		oldPeak := bd.recentMassPeak
		bd.recentMassPeak = m
		return &Bookmark{
			Type:        BookmarkDrain,
			Tick:        stats.WindowEndTick,
			Description: fmt.Sprintf("Movable particles fell %.0f%% from peak %d to %d", drop*100, oldPeak, m),
		}
	}
	return nil
}
