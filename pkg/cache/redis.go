package cache

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/JaimeStill/heritage/pkg/lifecycle"
)

type redisCache struct {
	client *redis.Client
	ttl    time.Duration
	prefix string
	logger *slog.Logger
}

func newRedis(cfg *Config, logger *slog.Logger) *redisCache {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	return &redisCache{
		client: client,
		ttl:    cfg.TTLDuration(),
		prefix: cfg.KeyPrefix,
		logger: logger,
	}
}

func (r *redisCache) Start(lc *lifecycle.Coordinator) error {
	r.logger.Info("starting cache system", "address", r.client.Options().Addr)

	lc.OnStartup(func() error {
		if err := r.client.Ping(lc.Context()).Err(); err != nil {
			r.logger.Error("cache ping failed", "error", err)
			return fmt.Errorf("cache ping: %w", err)
		}
		r.logger.Info("cache connection established")
		return nil
	})

	lc.OnShutdown(func() {
		<-lc.Context().Done()
		r.logger.Info("closing cache connection")
		if err := r.client.Close(); err != nil {
			r.logger.Error("cache close failed", "error", err)
			return
		}
		r.logger.Info("cache connection closed")
	})

	return nil
}

func (r *redisCache) Get(ctx context.Context, key string) (string, bool, error) {
	v, err := r.client.Get(ctx, r.prefix+key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("cache get %s: %w", key, err)
	}
	return v, true, nil
}

func (r *redisCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = r.ttl
	}
	if err := r.client.Set(ctx, r.prefix+key, value, ttl).Err(); err != nil {
		return fmt.Errorf("cache set %s: %w", key, err)
	}
	return nil
}
