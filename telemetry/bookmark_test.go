package telemetry

import (
	"testing"

	"github.com/pthm-cable/rockfall/config"
)

func newDetector() *BookmarkDetector {
	return NewBookmarkDetector(10, config.Default().Bookmarks)
}

func hasBookmark(bookmarks []Bookmark, typ BookmarkType) bool {
	for _, bm := range bookmarks {
		if bm.Type == typ {
			return true
		}
	}
	return false
}

func TestBookmarkDetector_PlayerCritical(t *testing.T) {
	bd := newDetector()

	steps := []struct {
		health float64
		want   bool
	}{
		{100, false},
		{50, false},
		{20, true},  // crossed below 25%
		{10, false}, // still critical, no repeat
		{60, false}, // recovered, rearm
		{5, true},
	}

	for i, s := range steps {
		stats := WindowStats{WindowEndTick: int32(i * 300), PlayerHealth: s.health, PlayerMax: 100, AsteroidCount: 4}
		got := hasBookmark(bd.Check(stats), BookmarkPlayerCritical)
		if got != s.want {
			t.Errorf("step %d (health %.0f): bookmark = %v, want %v", i, s.health, got, s.want)
		}
	}
}

func TestBookmarkDetector_FieldCleared(t *testing.T) {
	bd := newDetector()

	if hasBookmark(bd.Check(WindowStats{AsteroidCount: 3}), BookmarkFieldCleared) {
		t.Error("unexpected field_cleared with asteroids left")
	}
	if !hasBookmark(bd.Check(WindowStats{AsteroidCount: 0, AsteroidsDestroyed: 3}), BookmarkFieldCleared) {
		t.Error("expected field_cleared when the count reaches zero")
	}
	if hasBookmark(bd.Check(WindowStats{AsteroidCount: 0}), BookmarkFieldCleared) {
		t.Error("field_cleared repeated while the field stays empty")
	}
}

func TestBookmarkDetector_FragmentCascade(t *testing.T) {
	bd := newDetector()

	for i := 0; i < 5; i++ {
		bd.Check(WindowStats{WindowEndTick: int32(i * 300), FragmentsSpawned: 2, AsteroidCount: 5})
	}

	bookmarks := bd.Check(WindowStats{WindowEndTick: 1500, FragmentsSpawned: 9, AsteroidCount: 12})
	if !hasBookmark(bookmarks, BookmarkFragmentCascade) {
		t.Error("expected fragment_cascade bookmark")
	}
}

func TestBookmarkDetector_FragmentCascadeNeedsHistory(t *testing.T) {
	bd := newDetector()

	bd.Check(WindowStats{FragmentsSpawned: 0, AsteroidCount: 4})
	if hasBookmark(bd.Check(WindowStats{FragmentsSpawned: 20, AsteroidCount: 20}), BookmarkFragmentCascade) {
		t.Error("cascade triggered without enough history")
	}
}

func TestBookmarkDetector_FragmentCascadeMinimum(t *testing.T) {
	bd := newDetector()

	for i := 0; i < 5; i++ {
		bd.Check(WindowStats{FragmentsSpawned: 0, AsteroidCount: 4})
	}
	// Above twice the average of zero but below the configured minimum.
	if hasBookmark(bd.Check(WindowStats{FragmentsSpawned: 1, AsteroidCount: 4}), BookmarkFragmentCascade) {
		t.Error("cascade triggered below minimum")
	}
}
