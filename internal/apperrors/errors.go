package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// HasDependentsError is returned when a delete is refused because transactions
// still reference the target. Count carries the number of dependents so callers
// can tell the user exactly what blocks the operation.
type HasDependentsError struct {
	EntityKind string // "account" or "category"
	EntityID   string
	Count      int64
}

func (e *HasDependentsError) Error() string {
	return fmt.Sprintf("%s %s has %d dependent transaction(s)", e.EntityKind, e.EntityID, e.Count)
}

// NewHasDependentsError builds a HasDependentsError for the given entity.
func NewHasDependentsError(entityKind, entityID string, count int64) *HasDependentsError {
	return &HasDependentsError{EntityKind: entityKind, EntityID: entityID, Count: count}
}
