package predictions

import (
	"net/url"
	"strconv"

	"github.com/JaimeStill/heritage/pkg/query"
	"github.com/JaimeStill/heritage/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "predictions", "p").
	Project("id", "id").
	Project("label", "label").
	Project("confidence", "confidence").
	Project("known", "known").
	Project("filename", "filename").
	Project("image_hash", "image_hash").
	Project("created_at", "created_at")

var defaultSort = query.SortField{
	Field:      "created_at",
	Descending: true,
}

// Filters narrows prediction queries. Nil fields are ignored.
type Filters struct {
	Label *string `json:"label,omitempty"`
	Known *bool   `json:"known,omitempty"`
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	return b.
		WhereEquals("label", f.Label).
		WhereEquals("known", f.Known)
}

// FiltersFromQuery reads label and known from URL query values.
// An unparsable known value is ignored.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	if l := values.Get("label"); l != "" {
		f.Label = &l
	}
	if k := values.Get("known"); k != "" {
		if known, err := strconv.ParseBool(k); err == nil {
			f.Known = &known
		}
	}

	return f
}

func scanPrediction(s repository.Scanner) (Prediction, error) {
	var p Prediction
	err := s.Scan(
		&p.ID,
		&p.Label,
		&p.Confidence,
		&p.Known,
		&p.Filename,
		&p.ImageHash,
		&p.CreatedAt,
	)
	return p, err
}
