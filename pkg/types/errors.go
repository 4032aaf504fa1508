package types

import (
	"errors"
	"fmt"
)

// Record operation errors.
var (
	ErrNotFound     = errors.New("record not found")
	ErrValidation   = errors.New("validation failed")
	ErrPersistence  = errors.New("persistence failed")
	ErrUnknownField = errors.New("unknown field")
)

// ValidationError reports an empty required field. It matches ErrValidation
// with errors.Is.
type ValidationError struct {
	Kind  string
	Field string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s is required", e.Kind, e.Field)
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// PersistenceError reports a failed load or save. It matches ErrPersistence
// with errors.Is and unwraps to the underlying I/O or decode error.
type PersistenceError struct {
	Op   string // "load" or "save"
	Path string
	Err  error
}

func (e *PersistenceError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

func (e *PersistenceError) Is(target error) bool { return target == ErrPersistence }
