// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New(...) initializer to build a Config with defaults.
// - All loading functions accept context.Context as the first parameter.
// - External errors must be wrapped via this package's error helpers.
package config

import (
	"context"
)

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// StoreBackend selects the vote store: "memory" or "mongo".
	StoreBackend string `koanf:"store_backend"`

	// MongoURI is the MongoDB connection string when StoreBackend is "mongo".
	MongoURI string `koanf:"mongo_uri"`

	// MongoDatabase names the MongoDB database when StoreBackend is "mongo".
	MongoDatabase string `koanf:"mongo_database"`

	// GuardSize bounds the in-memory duplicate-vote guard. Zero means unbounded.
	GuardSize int `koanf:"guard_size"`

	// CriteriaFile optionally points at a YAML criteria catalog. Empty means
	// the built-in catalog is used.
	CriteriaFile string `koanf:"criteria_file"`

	// MaxTopMatches caps GET /matches/top?limit.
	MaxTopMatches int `koanf:"max_top_matches"`

	// VoteRateLimitRPS and VoteRateLimitBurst bound vote submission throughput.
	// An RPS of zero disables rate limiting.
	VoteRateLimitRPS   float64 `koanf:"vote_rate_limit_rps"`
	VoteRateLimitBurst int     `koanf:"vote_rate_limit_burst"`
}

// New creates a Config with defaults. Context is accepted first to satisfy
// the project-wide convention; it is reserved for future use and currently
// unused.
func New(_ context.Context) *Config {
	return &Config{
		LogLevel:           "info",
		Addr:               ":9080",
		StoreBackend:       "memory",
		MongoURI:           "",
		MongoDatabase:      "arbinote",
		GuardSize:          100_000,
		CriteriaFile:       "",
		MaxTopMatches:      50,
		VoteRateLimitRPS:   50,
		VoteRateLimitBurst: 100,
	}
}
