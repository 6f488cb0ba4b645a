// Package predictions stores and queries the outcome of each recognition request.
package predictions

import (
	"time"

	"github.com/google/uuid"
)

// Prediction is one recorded recognition outcome.
// Label is nil when the confidence did not clear the threshold.
type Prediction struct {
	ID         uuid.UUID `json:"id"`
	Label      *string   `json:"label"`
	Confidence float64   `json:"confidence"`
	Known      bool      `json:"known"`
	Filename   string    `json:"filename"`
	ImageHash  string    `json:"image_hash"`
	CreatedAt  time.Time `json:"created_at"`
}

// RecordCommand carries the fields of a new prediction.
type RecordCommand struct {
	Label      *string
	Confidence float64
	Known      bool
	Filename   string
	ImageHash  string
}
