// Package apperr holds the failure taxonomy shared by the resource layer and the
// HTTP error classifier.
package apperr

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound     = errors.New("entity not found")
	ErrUnauthorized = errors.New("unauthorized access")
	ErrForbidden    = errors.New("forbidden")
)

// ValidationError reports input rejected by a schema or rule check.
type ValidationError struct {
	Problems []string
}

func Validation(problems ...string) error {
	return &ValidationError{Problems: problems}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %v", e.Problems)
}

// ArgumentError reports a malformed or invalid request argument.
type ArgumentError struct {
	Detail string
}

func BadArgument(format string, args ...any) error {
	return &ArgumentError{Detail: fmt.Sprintf(format, args...)}
}

func (e *ArgumentError) Error() string { return e.Detail }

// OperationError reports an operation that cannot run in the entity's current state.
type OperationError struct {
	Detail string
}

func InvalidOperation(format string, args ...any) error {
	return &OperationError{Detail: fmt.Sprintf(format, args...)}
}

func (e *OperationError) Error() string { return e.Detail }

// StoreError wraps a failure raised by the storage tier.
type StoreError struct {
	Err error
}

func Store(err error) error {
	if err == nil {
		return nil
	}
	return &StoreError{Err: err}
}

func (e *StoreError) Error() string { return "store: " + e.Err.Error() }

func (e *StoreError) Unwrap() error { return e.Err }
