package ports

import "errors"

// Repositories and providers wrap these so callers can match with errors.Is.
var (
	ErrNotFound = errors.New("not found")
	ErrConflict = errors.New("conflict")
)
