package predictions

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/JaimeStill/heritage/pkg/pagination"
)

type disabled struct {
	logger     *slog.Logger
	pagination pagination.Config
}

// Disabled returns a System that stores nothing. Record reports ErrDisabled
// and List always yields an empty page.
func Disabled(logger *slog.Logger, pagination pagination.Config) System {
	return &disabled{
		logger:     logger.With("system", "predictions"),
		pagination: pagination,
	}
}

func (d *disabled) Handler() *Handler {
	return NewHandler(d, d.logger, d.pagination)
}

func (d *disabled) Record(context.Context, RecordCommand) (*Prediction, error) {
	return nil, ErrDisabled
}

func (d *disabled) List(_ context.Context, page pagination.PageRequest, _ Filters) (*pagination.PageResult[Prediction], error) {
	page.Normalize(d.pagination)
	result := pagination.NewPageResult[Prediction](nil, 0, page.Page, page.PageSize)
	return &result, nil
}

func (d *disabled) Find(context.Context, uuid.UUID) (*Prediction, error) {
	return nil, ErrNotFound
}
