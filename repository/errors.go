package repository

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when a row does not exist or belongs to
	// another user. Callers cannot tell the two apart.
	ErrNotFound = errors.New("not found")
	// ErrInvalidReference is returned when a card points at a deck or
	// template the caller may not use.
	ErrInvalidReference = errors.New("invalid reference")
)

// ReferenceError names the field and id of a rejected reference.
type ReferenceError struct {
	Field string
	ID    string
}

func (e *ReferenceError) Error() string {
	return fmt.Sprintf("invalid reference: %s %q", e.Field, e.ID)
}

func (e *ReferenceError) Is(target error) bool {
	return target == ErrInvalidReference
}
