package cache

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Supported cache providers.
const (
	ProviderNone   = "none"
	ProviderMemory = "memory"
	ProviderRedis  = "redis"
)

// Config selects the cache backend and its entry lifetime.
type Config struct {
	Provider  string `toml:"provider"`
	Address   string `toml:"address"`
	Password  string `toml:"password"`
	DB        int    `toml:"db"`
	TTL       string `toml:"ttl"`
	KeyPrefix string `toml:"key_prefix"`
}

// Env maps config fields to environment variable names for override injection.
type Env struct {
	Provider  string
	Address   string
	Password  string
	DB        string
	TTL       string
	KeyPrefix string
}

// TTLDuration parses TTL. Call after Finalize.
func (c *Config) TTLDuration() time.Duration {
	d, _ := time.ParseDuration(c.TTL)
	return d
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *Config) Finalize(env *Env) error {
	c.loadDefaults()
	if env != nil {
		if err := c.loadEnv(env); err != nil {
			return err
		}
	}
	return c.validate()
}

// Merge overwrites non-zero fields from overlay.
func (c *Config) Merge(overlay *Config) {
	if overlay.Provider != "" {
		c.Provider = overlay.Provider
	}
	if overlay.Address != "" {
		c.Address = overlay.Address
	}
	if overlay.Password != "" {
		c.Password = overlay.Password
	}
	if overlay.DB != 0 {
		c.DB = overlay.DB
	}
	if overlay.TTL != "" {
		c.TTL = overlay.TTL
	}
	if overlay.KeyPrefix != "" {
		c.KeyPrefix = overlay.KeyPrefix
	}
}

func (c *Config) loadDefaults() {
	if c.Provider == "" {
		c.Provider = ProviderNone
	}
	if c.Address == "" {
		c.Address = "localhost:6379"
	}
	if c.TTL == "" {
		c.TTL = "24h"
	}
	if c.KeyPrefix == "" {
		c.KeyPrefix = "heritage:"
	}
}

func (c *Config) loadEnv(env *Env) error {
	if env.Provider != "" {
		if v := os.Getenv(env.Provider); v != "" {
			c.Provider = v
		}
	}
	if env.Address != "" {
		if v := os.Getenv(env.Address); v != "" {
			c.Address = v
		}
	}
	if env.Password != "" {
		if v := os.Getenv(env.Password); v != "" {
			c.Password = v
		}
	}
	if env.DB != "" {
		if v := os.Getenv(env.DB); v != "" {
			db, err := strconv.Atoi(v)
			if err != nil {
				return fmt.Errorf("invalid %s: %w", env.DB, err)
			}
			c.DB = db
		}
	}
	if env.TTL != "" {
		if v := os.Getenv(env.TTL); v != "" {
			c.TTL = v
		}
	}
	if env.KeyPrefix != "" {
		if v := os.Getenv(env.KeyPrefix); v != "" {
			c.KeyPrefix = v
		}
	}
	return nil
}

func (c *Config) validate() error {
	switch c.Provider {
	case ProviderNone, ProviderMemory, ProviderRedis:
	default:
		return fmt.Errorf("unknown cache provider: %q", c.Provider)
	}
	d, err := time.ParseDuration(c.TTL)
	if err != nil {
		return fmt.Errorf("invalid ttl: %w", err)
	}
	if d <= 0 {
		return fmt.Errorf("ttl must be positive")
	}
	return nil
}
