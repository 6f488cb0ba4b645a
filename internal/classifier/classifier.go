// Package classifier turns an image into a score distribution over site labels.
// Inference is delegated to a model server; this package owns preprocessing
// and the index-to-label mapping.
package classifier

import (
	"context"
	"image"
	"io"
)

// Classifier scores a preprocessed image. Implementations must be safe for concurrent use.
type Classifier interface {
	Classify(ctx context.Context, t Tensor) (Distribution, error)
}

// Func adapts a function to the Classifier interface.
type Func func(ctx context.Context, t Tensor) (Distribution, error)

func (f Func) Classify(ctx context.Context, t Tensor) (Distribution, error) {
	return f(ctx, t)
}

// Model pairs a classifier with the labels it was trained on.
type Model struct {
	classifier Classifier
	labels     Labels
	size       int
	maxPixels  int
}

// NewModel returns a Model. A non-positive size uses DefaultImageSize and a
// non-positive maxPixels uses DefaultMaxPixels.
func NewModel(c Classifier, labels Labels, size, maxPixels int) (*Model, error) {
	if len(labels) == 0 {
		return nil, ErrNoLabels
	}
	if size <= 0 {
		size = DefaultImageSize
	}
	if maxPixels <= 0 {
		maxPixels = DefaultMaxPixels
	}
	return &Model{
		classifier: c,
		labels:     labels,
		size:       size,
		maxPixels:  maxPixels,
	}, nil
}

// Labels returns the model's index-to-label mapping.
func (m *Model) Labels() Labels {
	return m.labels
}

// Decode reads an upload within the model's pixel budget.
func (m *Model) Decode(r io.Reader) (image.Image, error) {
	return Decode(r, m.maxPixels)
}

// Classify preprocesses img, runs inference, and verifies the result covers every label.
func (m *Model) Classify(ctx context.Context, img image.Image) (Distribution, error) {
	dist, err := m.classifier.Classify(ctx, ToTensor(img, m.size))
	if err != nil {
		return nil, err
	}
	if err := m.labels.Validate(dist); err != nil {
		return nil, err
	}
	return dist, nil
}
