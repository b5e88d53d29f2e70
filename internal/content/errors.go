package content

import "errors"

// Sentinel errors shared by every entity service. Handlers map these onto
// the HTTP error envelope: validation and conflict to 400, not-found to 404,
// anything else to 500.
var (
	ErrNotFound    = errors.New("record not found")
	ErrValidation  = errors.New("validation failed")
	ErrRateLimited = errors.New("rate limit reached")
)
