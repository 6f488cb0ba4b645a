package generator

import "errors"

var (
	// ErrDisabled indicates no credential is configured; no request was made.
	ErrDisabled = errors.New("generator disabled")
	// ErrEmptyResponse indicates the model returned no text.
	ErrEmptyResponse = errors.New("empty generation")
	// ErrRequest indicates the generation API rejected the request.
	ErrRequest = errors.New("generation request failed")
)
