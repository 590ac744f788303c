// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New(...) initializer to build a Config with defaults.
// - All future functions must accept context.Context as the first parameter.
// - External errors must be wrapped via this package's error helpers.
package config

import "context"

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// DBPath points at the SQLite pool database. Empty selects the
	// in-memory store with generated demo data.
	DBPath string `koanf:"db_path"`

	// MaxLeaderboardLimit caps GET /ranking?limit.
	MaxLeaderboardLimit int `koanf:"max_leaderboard_limit"`

	// PointsPerHit is awarded per matched scoring component (home goals,
	// away goals, result direction).
	PointsPerHit int `koanf:"points_per_hit"`

	// WorstAvgError is the comparator penalty for users without counted
	// matches, keeping them sortable behind every scorer.
	WorstAvgError float64 `koanf:"worst_avg_error"`

	// WorstMissLimit caps the worst-misses listing.
	WorstMissLimit int `koanf:"worst_miss_limit"`

	// ReplayStreamIntervalMS paces snapshots on the replay websocket.
	ReplayStreamIntervalMS int `koanf:"replay_stream_interval_ms"`
}

// New creates a Config with defaults. Context is accepted first to satisfy
// the project-wide convention; it is reserved for future use.
func New(_ context.Context) *Config {
	return &Config{
		LogLevel:               "info",
		Addr:                   ":9080",
		DBPath:                 "",
		MaxLeaderboardLimit:    100,
		PointsPerHit:           3,
		WorstAvgError:          999,
		WorstMissLimit:         50,
		ReplayStreamIntervalMS: 50,
	}
}
