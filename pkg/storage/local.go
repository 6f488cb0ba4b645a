package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/JaimeStill/heritage/pkg/lifecycle"
)

type local struct {
	root   string
	logger *slog.Logger
}

func newLocal(cfg *Config, logger *slog.Logger) *local {
	return &local{
		root:   cfg.Root,
		logger: logger,
	}
}

func (l *local) Start(lc *lifecycle.Coordinator) error {
	l.logger.Info("starting storage system", "root", l.root)

	lc.OnStartup(func() error {
		info, err := os.Stat(l.root)
		if err != nil {
			l.logger.Error("storage root unavailable", "error", err)
			return fmt.Errorf("storage root: %w", err)
		}
		if !info.IsDir() {
			return fmt.Errorf("storage root %s is not a directory", l.root)
		}
		l.logger.Info("storage root ready", "root", l.root)
		return nil
	})

	return nil
}

func (l *local) Download(ctx context.Context, key string) (io.ReadCloser, error) {
	if err := validateKey(key); err != nil {
		return nil, err
	}

	f, err := os.Open(l.path(key))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("open %s: %w", key, err)
	}
	return f, nil
}

func (l *local) Exists(ctx context.Context, key string) (bool, error) {
	if err := validateKey(key); err != nil {
		return false, err
	}

	_, err := os.Stat(l.path(key))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, fmt.Errorf("stat %s: %w", key, err)
}

func (l *local) path(key string) string {
	return filepath.Join(l.root, filepath.FromSlash(key))
}
