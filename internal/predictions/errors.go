package predictions

import (
	"errors"
	"net/http"
)

// Domain errors for prediction operations.
var (
	ErrNotFound  = errors.New("prediction not found")
	ErrDuplicate = errors.New("prediction already exists")
	ErrDisabled  = errors.New("prediction history disabled")
)

// MapHTTPStatus maps prediction domain errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrDuplicate):
		return http.StatusConflict
	case errors.Is(err, ErrDisabled):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
