package scoreboardservice

import "errors"

// Service-level error classes. Callers match them with errors.Is; the
// wrapped domain error carries the specific reason.
var (
	// ErrValidation marks input rejected before any side effect.
	ErrValidation = errors.New("validation failed")

	// ErrStorageUnavailable marks a database failure. The transaction was rolled back.
	ErrStorageUnavailable = errors.New("storage unavailable")

	// ErrNotFound marks a read of a category that has no score entry.
	ErrNotFound = errors.New("not found")
)
