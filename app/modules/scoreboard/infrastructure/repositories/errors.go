package scoreboarddb

import "errors"

// Sentinel errors for the repository layer.
// These are infrastructure-level signals; the service layer decides what they mean.
var (
	// ErrNotFound indicates the requested score entry does not exist.
	ErrNotFound = errors.New("score entry not found")

	// ErrNoRowsAffected indicates an UPDATE matched no rows.
	ErrNoRowsAffected = errors.New("no rows affected")
)
