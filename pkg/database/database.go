// Package database provides PostgreSQL connection management with lifecycle coordination.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"

	"github.com/JaimeStill/heritage/pkg/lifecycle"
)

// System manages database connections and lifecycle coordination.
type System interface {
	// Connection returns the underlying database connection pool.
	Connection() *sql.DB
	// Start registers startup and shutdown hooks with the lifecycle coordinator.
	Start(lc *lifecycle.Coordinator) error
}

type database struct {
	conn        *sql.DB
	logger      *slog.Logger
	connTimeout time.Duration
}

// ApplicationName is reported to PostgreSQL for every pooled connection.
const ApplicationName = "heritage"

// New builds a pgx-backed pool. No connection is made until Start runs its ping.
func New(cfg *Config, logger *slog.Logger) (System, error) {
	connCfg, err := pgx.ParseConfig(cfg.Dsn())
	if err != nil {
		return nil, fmt.Errorf("parse database config: %w", err)
	}
	connCfg.ConnectTimeout = cfg.ConnTimeoutDuration()
	connCfg.RuntimeParams["application_name"] = ApplicationName

	db := stdlib.OpenDB(*connCfg)

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetimeDuration())

	return &database{
		conn:        db,
		logger:      logger.With("system", "database"),
		connTimeout: cfg.ConnTimeoutDuration(),
	}, nil
}

func (d *database) Connection() *sql.DB {
	return d.conn
}

func (d *database) Start(lc *lifecycle.Coordinator) error {
	d.logger.Info("starting database connection")

	lc.OnStartup(func() error {
		ctx, cancel := context.WithTimeout(lc.Context(), d.connTimeout)
		defer cancel()

		if err := d.conn.PingContext(ctx); err != nil {
			d.logger.Error("database ping failed", "error", err)
			return fmt.Errorf("%w: %w", ErrNotReady, err)
		}

		stats := d.conn.Stats()
		d.logger.Info("database connection established", "max_open", stats.MaxOpenConnections)
		return nil
	})

	lc.OnShutdown(func() {
		<-lc.Context().Done()
		d.logger.Info("closing database connection")

		if err := d.conn.Close(); err != nil {
			d.logger.Error("database close failed", "error", err)
			return
		}

		d.logger.Info("database connection closed")
	})

	return nil
}
