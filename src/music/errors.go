package music

import "errors"

// Sentinel errors shared across features. Services wrap these with context via
// fmt.Errorf("...: %w", ...) and the HTTP layer maps them to status codes.
var (
	// ErrNotFound indicates a referenced playlist, track or row does not exist.
	ErrNotFound = errors.New("not found")

	// ErrValidation indicates malformed or out-of-range input.
	ErrValidation = errors.New("invalid input")

	// ErrConflict indicates a uniqueness violation, e.g. favouriting a track twice.
	ErrConflict = errors.New("already exists")

	// ErrExternalService indicates an upstream provider timeout or error response.
	ErrExternalService = errors.New("external service failure")
)
