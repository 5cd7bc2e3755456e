package telemetry

import (
	"fmt"
	"log/slog"

	"github.com/pthm-cable/rockfall/config"
)

// BookmarkType identifies the type of bookmark.
type BookmarkType string

const (
	BookmarkPlayerCritical  BookmarkType = "player_critical"
	BookmarkFieldCleared    BookmarkType = "field_cleared"
	BookmarkFragmentCascade BookmarkType = "fragment_cascade"
)

// Bookmark represents an automatically triggered bookmark.
type Bookmark struct {
	Type        BookmarkType `csv:"type" json:"type"`
	Tick        int32        `csv:"tick" json:"tick"`
	Description string       `csv:"description" json:"description"`
}

// LogBookmark logs the bookmark using slog.
func (b Bookmark) LogBookmark() {
	slog.Info("bookmark",
		"type", string(b.Type),
		"tick", b.Tick,
		"description", b.Description,
	)
}

// BookmarkDetector detects interesting moments in the simulation.
type BookmarkDetector struct {
	cfg config.BookmarksConfig

	// Rolling history (circular buffer)
	history     []WindowStats
	historySize int
	historyIdx  int
	historyFull bool

	// State tracking
	playerCritical bool // player already below the critical fraction
	lastAsteroids  int  // asteroid count at the previous window
}

// NewBookmarkDetector creates a detector with the given history size.
func NewBookmarkDetector(historySize int, cfg config.BookmarksConfig) *BookmarkDetector {
	if historySize < 3 {
		historySize = 3 // minimum for a meaningful rolling average
	}
	return &BookmarkDetector{
		cfg:           cfg,
		history:       make([]WindowStats, historySize),
		historySize:   historySize,
		lastAsteroids: -1,
	}
}

// Check analyzes the latest stats and returns any triggered bookmarks.
func (bd *BookmarkDetector) Check(stats WindowStats) []Bookmark {
	var bookmarks []Bookmark

	if b := bd.checkPlayerCritical(stats); b != nil {
		bookmarks = append(bookmarks, *b)
	}
	if b := bd.checkFieldCleared(stats); b != nil {
		bookmarks = append(bookmarks, *b)
	}
	if b := bd.checkFragmentCascade(stats); b != nil {
		bookmarks = append(bookmarks, *b)
	}

	bd.addToHistory(stats)
	bd.lastAsteroids = stats.AsteroidCount

	return bookmarks
}

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

// checkPlayerCritical fires once each time player health drops below the
// configured fraction. It rearms when health recovers above it.
func (bd *BookmarkDetector) checkPlayerCritical(stats WindowStats) *Bookmark {
	if stats.PlayerMax <= 0 {
		return nil
	}
	frac := stats.PlayerHealth / stats.PlayerMax
	if frac >= bd.cfg.PlayerCriticalFraction {
		bd.playerCritical = false
		return nil
	}
	if bd.playerCritical {
		return nil
	}
	bd.playerCritical = true

	return &Bookmark{
		Type:        BookmarkPlayerCritical,
		Tick:        stats.WindowEndTick,
		Description: fmt.Sprintf("Player health %.0f/%.0f (%.0f%%)", stats.PlayerHealth, stats.PlayerMax, frac*100),
	}
}

func (bd *BookmarkDetector) checkFieldCleared(stats WindowStats) *Bookmark {
	if stats.AsteroidCount != 0 || bd.lastAsteroids == 0 {
		return nil
	}
	return &Bookmark{
		Type:        BookmarkFieldCleared,
		Tick:        stats.WindowEndTick,
		Description: fmt.Sprintf("All asteroids cleared after %d destroyed this window", stats.AsteroidsDestroyed),
	}
}

func (bd *BookmarkDetector) checkFragmentCascade(stats WindowStats) *Bookmark {
	history := bd.getHistory()
	if len(history) < 3 || stats.FragmentsSpawned < bd.cfg.FragmentCascadeMin {
		return nil
	}

	var total int
	for _, h := range history {
		total += h.FragmentsSpawned
	}
	avg := float64(total) / float64(len(history))

	if float64(stats.FragmentsSpawned) > avg*2.0 {
		return &Bookmark{
			Type:        BookmarkFragmentCascade,
			Tick:        stats.WindowEndTick,
			Description: fmt.Sprintf("%d fragments spawned, rolling average %.1f", stats.FragmentsSpawned, avg),
		}
	}
	return nil
}
