package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// envPrefix namespaces all configuration environment variables.
const envPrefix = "ARBINOTE_"

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):.
//  1. defaults (New(ctx))
//  2. file (YAML) if ARBINOTE_CONFIG is set
//  3. env (prefix ARBINOTE_)
func Load(ctx context.Context) (*Config, error) {
	base := New(ctx)

	k := koanf.New(".")

	// Load from file if provided
	if path := os.Getenv(envPrefix + "CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
		}
	}

	// Environment variables: ARBINOTE_ADDR, ARBINOTE_STORE_BACKEND, ...
	// Map env keys like ARBINOTE_GUARD_SIZE -> guard_size (flat keys);
	// underscores are preserved to match the koanf tags on the struct.
	envProvider := env.Provider(envPrefix, ".", func(s string) string {
		s = strings.ToLower(s)
		s = strings.TrimPrefix(s, strings.ToLower(envPrefix))
		return s
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	// Unmarshal into a copy
	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Addr == "" {
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	}
	switch c.StoreBackend {
	case "memory":
	case "mongo":
		if c.MongoURI == "" {
			return fmt.Errorf("%w: mongo_uri required for mongo store backend", ErrInvalidConfig)
		}
		if c.MongoDatabase == "" {
			return fmt.Errorf("%w: mongo_database required for mongo store backend", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: unknown store backend %q", ErrInvalidConfig, c.StoreBackend)
	}
	if c.MaxTopMatches < 1 {
		return fmt.Errorf("%w: max_top_matches must be positive", ErrInvalidConfig)
	}
	if c.VoteRateLimitRPS < 0 {
		return fmt.Errorf("%w: vote_rate_limit_rps must not be negative", ErrInvalidConfig)
	}
	if c.GuardSize < 0 {
		return fmt.Errorf("%w: guard_size must not be negative", ErrInvalidConfig)
	}
	return nil
}
