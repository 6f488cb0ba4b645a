package classifier

import "errors"

var (
	// ErrDecodeImage indicates the upload is not a decodable image.
	ErrDecodeImage = errors.New("decode image")
	// ErrImageTooLarge indicates the upload declares more pixels than allowed.
	ErrImageTooLarge = errors.New("image too large")
	// ErrInference indicates the model server failed or returned no scores.
	ErrInference = errors.New("inference failed")
	// ErrLabelMismatch indicates the score vector length differs from the label count.
	ErrLabelMismatch = errors.New("distribution does not match labels")
	// ErrNoLabels indicates an empty label set.
	ErrNoLabels = errors.New("no labels")
)
