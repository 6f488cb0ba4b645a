// Package config loads the service configuration from TOML files and
// HERITAGE_* environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/JaimeStill/heritage/pkg/cache"
	"github.com/JaimeStill/heritage/pkg/database"
	"github.com/JaimeStill/heritage/pkg/storage"
)

const (
	BaseConfigFile       = "config.toml"
	OverlayConfigPattern = "config.%s.toml"

	EnvHeritageEnv             = "HERITAGE_ENV"
	EnvHeritageShutdownTimeout = "HERITAGE_SHUTDOWN_TIMEOUT"
	EnvHeritageVersion         = "HERITAGE_VERSION"
)

var databaseEnv = &database.Env{
	Enabled:         "HERITAGE_DB_ENABLED",
	Host:            "HERITAGE_DB_HOST",
	Port:            "HERITAGE_DB_PORT",
	Name:            "HERITAGE_DB_NAME",
	User:            "HERITAGE_DB_USER",
	Password:        "HERITAGE_DB_PASSWORD",
	SSLMode:         "HERITAGE_DB_SSL_MODE",
	MaxOpenConns:    "HERITAGE_DB_MAX_OPEN_CONNS",
	MaxIdleConns:    "HERITAGE_DB_MAX_IDLE_CONNS",
	ConnMaxLifetime: "HERITAGE_DB_CONN_MAX_LIFETIME",
	ConnTimeout:     "HERITAGE_DB_CONN_TIMEOUT",
}

var storageEnv = &storage.Env{
	Provider:         "HERITAGE_STORAGE_PROVIDER",
	Root:             "HERITAGE_STORAGE_ROOT",
	Container:        "HERITAGE_STORAGE_CONTAINER",
	ConnectionString: "HERITAGE_STORAGE_CONNECTION_STRING",
	AccountURL:       "HERITAGE_STORAGE_ACCOUNT_URL",
	Endpoint:         "HERITAGE_STORAGE_ENDPOINT",
	Region:           "HERITAGE_STORAGE_REGION",
	AccessKey:        "HERITAGE_STORAGE_ACCESS_KEY",
	SecretKey:        "HERITAGE_STORAGE_SECRET_KEY",
}

var cacheEnv = &cache.Env{
	Provider:  "HERITAGE_CACHE_PROVIDER",
	Address:   "HERITAGE_CACHE_ADDRESS",
	Password:  "HERITAGE_CACHE_PASSWORD",
	DB:        "HERITAGE_CACHE_DB",
	TTL:       "HERITAGE_CACHE_TTL",
	KeyPrefix: "HERITAGE_CACHE_KEY_PREFIX",
}

// Config is the root configuration for the Heritage service.
type Config struct {
	Server          ServerConfig     `toml:"server"`
	API             APIConfig        `toml:"api"`
	Database        database.Config  `toml:"database"`
	Storage         storage.Config   `toml:"storage"`
	Cache           cache.Config     `toml:"cache"`
	Classifier      ClassifierConfig `toml:"classifier"`
	Generator       GeneratorConfig  `toml:"generator"`
	ShutdownTimeout string           `toml:"shutdown_timeout"`
	Version         string           `toml:"version"`
}

// Env returns the HERITAGE_ENV value, defaulting to "local".
func (c *Config) Env() string {
	if env := os.Getenv(EnvHeritageEnv); env != "" {
		return env
	}
	return "local"
}

// ShutdownTimeoutDuration returns ShutdownTimeout as a time.Duration.
func (c *Config) ShutdownTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.ShutdownTimeout)
	return d
}

// Load reads config.toml from the working directory.
func Load() (*Config, error) {
	return LoadDir(".")
}

// LoadDir reads the base config in dir (if present), applies the overlay named by
// HERITAGE_ENV, and finalizes all values. Without any file, defaults and environment
// variables provide all configuration.
func LoadDir(dir string) (*Config, error) {
	cfg := &Config{}

	base := filepath.Join(dir, BaseConfigFile)
	if _, err := os.Stat(base); err == nil {
		loaded, err := load(base)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if path := overlayPath(dir); path != "" {
		overlay, err := load(path)
		if err != nil {
			return nil, fmt.Errorf("load overlay %s: %w", path, err)
		}
		cfg.Merge(overlay)
	}

	if err := cfg.finalize(); err != nil {
		return nil, fmt.Errorf("finalize config: %w", err)
	}

	return cfg, nil
}

// Merge overwrites non-zero fields from overlay across all sub-configs.
func (c *Config) Merge(overlay *Config) {
	if overlay.ShutdownTimeout != "" {
		c.ShutdownTimeout = overlay.ShutdownTimeout
	}
	if overlay.Version != "" {
		c.Version = overlay.Version
	}
	c.Server.Merge(&overlay.Server)
	c.API.Merge(&overlay.API)
	c.Database.Merge(&overlay.Database)
	c.Storage.Merge(&overlay.Storage)
	c.Cache.Merge(&overlay.Cache)
	c.Classifier.Merge(&overlay.Classifier)
	c.Generator.Merge(&overlay.Generator)
}

func (c *Config) finalize() error {
	c.loadDefaults()
	c.loadEnv()

	if err := c.validate(); err != nil {
		return err
	}
	if err := c.Server.Finalize(); err != nil {
		return fmt.Errorf("server: %w", err)
	}
	if err := c.API.Finalize(); err != nil {
		return fmt.Errorf("api: %w", err)
	}
	if err := c.Database.Finalize(databaseEnv); err != nil {
		return fmt.Errorf("database: %w", err)
	}
	if err := c.Storage.Finalize(storageEnv); err != nil {
		return fmt.Errorf("storage: %w", err)
	}
	if err := c.Cache.Finalize(cacheEnv); err != nil {
		return fmt.Errorf("cache: %w", err)
	}
	if err := c.Classifier.Finalize(); err != nil {
		return fmt.Errorf("classifier: %w", err)
	}
	if err := c.Generator.Finalize(); err != nil {
		return fmt.Errorf("generator: %w", err)
	}
	return nil
}

func (c *Config) loadDefaults() {
	if c.ShutdownTimeout == "" {
		c.ShutdownTimeout = "30s"
	}
	if c.Version == "" {
		c.Version = "0.1.0"
	}
}

func (c *Config) loadEnv() {
	if v := os.Getenv(EnvHeritageShutdownTimeout); v != "" {
		c.ShutdownTimeout = v
	}
	if v := os.Getenv(EnvHeritageVersion); v != "" {
		c.Version = v
	}
}

func (c *Config) validate() error {
	if _, err := time.ParseDuration(c.ShutdownTimeout); err != nil {
		return fmt.Errorf("invalid shutdown_timeout: %w", err)
	}
	return nil
}

func load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	return &cfg, nil
}

func overlayPath(dir string) string {
	if env := os.Getenv(EnvHeritageEnv); env != "" {
		path := filepath.Join(dir, fmt.Sprintf(OverlayConfigPattern, env))
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}
