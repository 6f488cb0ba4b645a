package recognition

import (
	"errors"
	"net/http"

	"github.com/JaimeStill/heritage/internal/classifier"
)

var (
	// ErrClassification indicates the upload could not be classified.
	ErrClassification = errors.New("classification failed")
	// ErrUpload indicates the upload could not be staged for classification.
	ErrUpload = errors.New("stage upload")
)

// MapHTTPStatus maps recognition errors to HTTP status codes.
// Undecodable images are the client's fault; everything else is a server failure.
func MapHTTPStatus(err error) int {
	if errors.Is(err, classifier.ErrDecodeImage) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
