// Package infrastructure assembles the shared systems every domain depends on:
// logging, lifecycle coordination, the artifact store, the cache, and the
// optional prediction history database.
package infrastructure

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/JaimeStill/heritage/internal/config"
	"github.com/JaimeStill/heritage/pkg/cache"
	"github.com/JaimeStill/heritage/pkg/database"
	"github.com/JaimeStill/heritage/pkg/lifecycle"
	"github.com/JaimeStill/heritage/pkg/storage"
)

// Infrastructure holds the core systems required by the domain.
// Database is nil when prediction history is disabled.
type Infrastructure struct {
	Lifecycle *lifecycle.Coordinator
	Logger    *slog.Logger
	Database  database.System
	Storage   storage.System
	Cache     cache.System
}

// New creates an Infrastructure from the application configuration.
// Systems are constructed but not started; call Start separately.
func New(cfg *config.Config) (*Infrastructure, error) {
	return NewWithLogger(cfg, slog.New(slog.NewTextHandler(os.Stderr, nil)))
}

// NewWithLogger is New with a caller-supplied logger.
func NewWithLogger(cfg *config.Config, logger *slog.Logger) (*Infrastructure, error) {
	infra := &Infrastructure{
		Lifecycle: lifecycle.New(),
		Logger:    logger,
	}

	if cfg.Database.Enabled {
		db, err := database.New(&cfg.Database, logger)
		if err != nil {
			return nil, fmt.Errorf("database init failed: %w", err)
		}
		infra.Database = db
	} else {
		logger.Info("database disabled, prediction history will not be recorded")
	}

	store, err := storage.New(&cfg.Storage, logger)
	if err != nil {
		return nil, fmt.Errorf("storage init failed: %w", err)
	}
	infra.Storage = store

	c, err := cache.New(&cfg.Cache, logger)
	if err != nil {
		return nil, fmt.Errorf("cache init failed: %w", err)
	}
	infra.Cache = c

	return infra, nil
}

// Start registers every system's startup and shutdown hooks with the lifecycle coordinator.
func (i *Infrastructure) Start() error {
	if i.Database != nil {
		if err := i.Database.Start(i.Lifecycle); err != nil {
			return fmt.Errorf("database start failed: %w", err)
		}
	}
	if err := i.Storage.Start(i.Lifecycle); err != nil {
		return fmt.Errorf("storage start failed: %w", err)
	}
	if err := i.Cache.Start(i.Lifecycle); err != nil {
		return fmt.Errorf("cache start failed: %w", err)
	}
	return nil
}
