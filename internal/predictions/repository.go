package predictions

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/JaimeStill/heritage/pkg/pagination"
	"github.com/JaimeStill/heritage/pkg/query"
	"github.com/JaimeStill/heritage/pkg/repository"
)

type repo struct {
	db         *sql.DB
	logger     *slog.Logger
	pagination pagination.Config
}

// New creates a PostgreSQL-backed prediction history.
func New(db *sql.DB, logger *slog.Logger, pagination pagination.Config) System {
	return &repo{
		db:         db,
		logger:     logger.With("system", "predictions"),
		pagination: pagination,
	}
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.logger, r.pagination)
}

func (r *repo) Record(ctx context.Context, cmd RecordCommand) (*Prediction, error) {
	q := `
		INSERT INTO predictions(label, confidence, known, filename, image_hash)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, label, confidence, known, filename, image_hash, created_at`

	args := []any{cmd.Label, cmd.Confidence, cmd.Known, cmd.Filename, cmd.ImageHash}

	p, err := repository.QueryOne(ctx, r.db, q, args, scanPrediction)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("prediction recorded", "id", p.ID, "known", p.Known, "confidence", p.Confidence)
	return &p, nil
}

func (r *repo) List(
	ctx context.Context,
	page pagination.PageRequest,
	filters Filters,
) (*pagination.PageResult[Prediction], error) {
	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(projection, defaultSort).
		WhereSearch(page.Search, "label", "filename")

	filters.Apply(qb)

	if len(page.Sort) > 0 {
		qb.OrderBy(page.Sort)
	}

	countSQL, countArgs := qb.BuildCount()
	total, err := repository.Count(ctx, r.db, countSQL, countArgs)
	if err != nil {
		return nil, fmt.Errorf("count predictions: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)
	items, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanPrediction)
	if err != nil {
		return nil, fmt.Errorf("query predictions: %w", err)
	}

	result := pagination.NewPageResult(items, total, page.Page, page.PageSize)
	return &result, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*Prediction, error) {
	q, args := query.NewBuilder(projection).BuildSingle("id", id)

	p, err := repository.QueryOne(ctx, r.db, q, args, scanPrediction)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &p, nil
}
