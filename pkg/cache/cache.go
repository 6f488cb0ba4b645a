// Package cache stores short-lived string values keyed by name.
// Backends are Redis, an in-process map, or nothing at all.
package cache

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/JaimeStill/heritage/pkg/lifecycle"
)

// System is a string key-value cache with per-entry expiration.
type System interface {
	// Start registers connectivity checks and cleanup with the lifecycle coordinator.
	Start(lc *lifecycle.Coordinator) error
	// Get returns the value stored at key and whether it was present.
	Get(ctx context.Context, key string) (string, bool, error)
	// Set stores value at key for ttl. A zero ttl uses the configured default.
	Set(ctx context.Context, key, value string, ttl time.Duration) error
}

// New creates the cache system selected by cfg.Provider.
func New(cfg *Config, logger *slog.Logger) (System, error) {
	logger = logger.With("system", "cache", "provider", cfg.Provider)

	switch cfg.Provider {
	case ProviderNone:
		return none{}, nil
	case ProviderMemory:
		return newMemory(cfg.TTLDuration(), cfg.KeyPrefix), nil
	case ProviderRedis:
		return newRedis(cfg, logger), nil
	default:
		return nil, fmt.Errorf("unknown cache provider: %q", cfg.Provider)
	}
}

type none struct{}

// Disabled returns a cache that stores nothing.
func Disabled() System { return none{} }

func (none) Start(*lifecycle.Coordinator) error { return nil }

func (none) Get(context.Context, string) (string, bool, error) { return "", false, nil }

func (none) Set(context.Context, string, string, time.Duration) error { return nil }
