package store

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound means no status folder holds a file for the numero.
	ErrNotFound = errors.New("pendency not found")
	// ErrValidation marks a request missing required fields.
	ErrValidation = errors.New("validation error")
	// ErrConflict marks an optimistic-concurrency failure on Update.
	ErrConflict = errors.New("edit conflict")
)

// ConflictError reports that another process modified a record after the
// caller last read it. It carries the conflicting modifier so the caller can
// tell the user who to coordinate with before retrying.
type ConflictError struct {
	Number     string
	ModifiedBy string
	ModifiedAt string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("pendency %s modified by %s at %s since last read", e.Number, e.ModifiedBy, e.ModifiedAt)
}

func (e *ConflictError) Is(target error) bool {
	return target == ErrConflict
}
