package predictions

import (
	"context"

	"github.com/google/uuid"

	"github.com/JaimeStill/heritage/pkg/pagination"
)

// System defines the public contract for prediction history.
type System interface {
	Handler() *Handler

	Record(ctx context.Context, cmd RecordCommand) (*Prediction, error)

	List(
		ctx context.Context,
		page pagination.PageRequest,
		filters Filters,
	) (*pagination.PageResult[Prediction], error)

	Find(ctx context.Context, id uuid.UUID) (*Prediction, error)
}
