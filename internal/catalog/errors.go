package catalog

import "errors"

var (
	// ErrInvalidFormat indicates the catalog document is not a mapping of site names to entries.
	ErrInvalidFormat = errors.New("invalid catalog format")
	// ErrDuplicateSite indicates a site name appears more than once in the document.
	ErrDuplicateSite = errors.New("duplicate site in catalog")
)
