package model

import (
	"errors"
	"fmt"
)

var (
	ErrDuplicateResult = errors.New("duplicate result")
	ErrInvalidInput    = errors.New("invalid input")
)

// DuplicateResultError signals more than one result for the same entrant at
// the same event. This is an upstream data-integrity problem.
type DuplicateResultError struct {
	EntrantID string
	EventID   string
}

func (e *DuplicateResultError) Error() string {
	return fmt.Sprintf("duplicate result for entrant %q at event %q",
		e.EntrantID, e.EventID)
}

func (e *DuplicateResultError) Is(target error) bool {
	return target == ErrDuplicateResult
}

type InvalidInputError struct {
	Field  string
	Value  any
	Reason string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid %s (%v): %s", e.Field, e.Value, e.Reason)
}

func (e *InvalidInputError) Is(target error) bool {
	return target == ErrInvalidInput
}

func NewInvalidInput(field string, value any, reason string) error {
	return &InvalidInputError{Field: field, Value: value, Reason: reason}
}
