package classifier

import (
	"context"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/JaimeStill/heritage/pkg/storage"
)

// Distribution is the model's score vector, one entry per label index.
type Distribution []float64

// Labels maps model output indices to site names.
type Labels []string

// ParseLabels reads a JSON or YAML list of label names.
func ParseLabels(data []byte) (Labels, error) {
	var labels []string
	if err := yaml.Unmarshal(data, &labels); err != nil {
		return nil, fmt.Errorf("parse labels: %w", err)
	}
	if len(labels) == 0 {
		return nil, ErrNoLabels
	}
	return Labels(labels), nil
}

// LoadLabels downloads and parses the label list at key.
func LoadLabels(ctx context.Context, store storage.System, key string) (Labels, error) {
	data, err := storage.ReadAll(ctx, store, key)
	if err != nil {
		return nil, fmt.Errorf("load labels %s: %w", key, err)
	}
	return ParseLabels(data)
}

// Validate checks that dist has one score per label.
func (l Labels) Validate(dist Distribution) error {
	if len(dist) != len(l) {
		return fmt.Errorf("%w: %d scores, %d labels", ErrLabelMismatch, len(dist), len(l))
	}
	return nil
}
