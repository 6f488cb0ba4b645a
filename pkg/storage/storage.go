// Package storage provides read access to deployment artifacts (the site catalog
// and classifier label map) held on local disk, Azure Blob Storage, or S3.
package storage

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/JaimeStill/heritage/pkg/lifecycle"
)

// System reads artifacts by key.
type System interface {
	// Start registers a startup hook that verifies the backing store is reachable.
	Start(lc *lifecycle.Coordinator) error
	// Download returns a stream for the object at key. The caller must close the reader.
	// Returns ErrNotFound if the object does not exist.
	Download(ctx context.Context, key string) (io.ReadCloser, error)
	// Exists reports whether an object exists at key.
	Exists(ctx context.Context, key string) (bool, error)
}

// New creates the storage system selected by cfg.Provider.
func New(cfg *Config, logger *slog.Logger) (System, error) {
	logger = logger.With("system", "storage", "provider", cfg.Provider)

	switch cfg.Provider {
	case ProviderLocal:
		return newLocal(cfg, logger), nil
	case ProviderAzure:
		return newAzure(cfg, logger)
	case ProviderS3:
		return newS3(cfg, logger), nil
	default:
		return nil, fmt.Errorf("unknown storage provider: %q", cfg.Provider)
	}
}

// ReadAll downloads the object at key and returns its full contents.
func ReadAll(ctx context.Context, s System, key string) ([]byte, error) {
	body, err := s.Download(ctx, key)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	data, err := io.ReadAll(body)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", key, err)
	}
	return data, nil
}

func validateKey(key string) error {
	if key == "" {
		return ErrEmptyKey
	}
	if strings.Contains(key, "..") {
		return ErrInvalidKey
	}
	return nil
}
