package storage

import "errors"

var (
	// ErrNotFound is returned when an update target does not exist.
	// Deletes of missing ids are no-ops, not errors.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate is returned by strict adds on a key collision
	// (e.g. a mantra name that already exists).
	ErrDuplicate = errors.New("record already exists")
	// ErrValidation is returned for malformed input that cannot be
	// treated as a silent no-op.
	ErrValidation = errors.New("invalid input")
)
