package game

import "github.com/pthm-cable/rockfall/telemetry"

// Options holds per-run settings that are not part of the simulation config.
type Options struct {
	Seed        int64  // RNG seed; runs with the same seed and inputs are identical
	OutputDir   string // Directory for CSV logs and config copy (empty = disabled)
	SnapshotDir string // Directory for bookmark snapshots (empty = disabled)
	LogStats    bool   // Log window stats and bookmarks via slog

	// StatsCallback, if set, receives every flushed stats window.
	StatsCallback func(telemetry.WindowStats)
}

// DefaultOptions returns options with output disabled.
func DefaultOptions() Options {
	return Options{Seed: 1}
}
