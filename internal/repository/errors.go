package repository

import "errors"

var (
	// ErrNotFound indicates the referenced entity does not exist. Distinct
	// from a storage failure; callers branch on it with errors.Is.
	ErrNotFound = errors.New("not found")
	// ErrConflict indicates a unique constraint was violated (duplicate
	// username or follow edge).
	ErrConflict = errors.New("already exists")
)
