package sites

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/JaimeStill/heritage/internal/catalog"
	"github.com/JaimeStill/heritage/internal/generator"
	"github.com/JaimeStill/heritage/pkg/cache"
)

// System resolves site information.
type System interface {
	Handler() *Handler
	Info(ctx context.Context, name string) (*Info, error)
}

type system struct {
	catalog   *catalog.Catalog
	generator generator.Generator
	cache     cache.System
	logger    *slog.Logger
}

// New creates a site information System. A nil cache disables caching.
func New(c *catalog.Catalog, gen generator.Generator, store cache.System, logger *slog.Logger) System {
	if store == nil {
		store = cache.Disabled()
	}
	return &system{
		catalog:   c,
		generator: gen,
		cache:     store,
		logger:    logger.With("system", "sites"),
	}
}

func (s *system) Handler() *Handler {
	return NewHandler(s, s.logger)
}

// Info generates the three text sections concurrently. Each falls back to the
// catalog entry when generation fails; video always comes from the catalog.
// Returns ErrNotFound when every field is empty.
func (s *system) Info(ctx context.Context, name string) (*Info, error) {
	base, _ := s.catalog.Lookup(name)

	var results [len(sections)]generator.Result
	g, gctx := errgroup.WithContext(ctx)
	for i, sec := range sections {
		g.Go(func() error {
			results[i] = s.generate(gctx, name, sec)
			return nil
		})
	}
	g.Wait()

	info := &Info{
		History:  resolve(results[0], base.History),
		Overview: resolve(results[1], base.Overview),
		Facts:    resolve(results[2], string(base.Facts)),
		Video:    base.Video,
	}

	if info.empty() {
		return nil, ErrNotFound
	}
	return info, nil
}

func (s *system) generate(ctx context.Context, name string, sec Section) generator.Result {
	key := "site:" + name + ":" + string(sec)

	if text, ok, err := s.cache.Get(ctx, key); err != nil {
		s.logger.Warn("cache read failed", "key", key, "error", err)
	} else if ok {
		return generator.Success(text)
	}

	res := s.generator.Generate(ctx, Prompt(sec, name))
	if !res.OK() {
		s.logger.Debug("generation unavailable", "site", name, "section", sec, "error", res.Err)
		return res
	}

	if err := s.cache.Set(ctx, key, res.Text, 0); err != nil {
		s.logger.Warn("cache write failed", "key", key, "error", err)
	}
	return res
}

func resolve(res generator.Result, fallback string) string {
	if res.OK() {
		return res.Text
	}
	return fallback
}
