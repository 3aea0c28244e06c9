// Package errors defines the typed errors shared by the repositories,
// services and HTTP handlers.
package errors

import (
	stderrors "errors"
	"fmt"
)

// ErrNotFound is returned when a caller needs absence to be an error.
type ErrNotFound struct {
	Resource string
	ID       string
}

func (e *ErrNotFound) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

// ErrConnection reports that the database could not be reached.
type ErrConnection struct {
	Op  string
	Err error
}

func (e *ErrConnection) Error() string {
	return fmt.Sprintf("%s: unable to connect to server or database: %v", e.Op, e.Err)
}

func (e *ErrConnection) Unwrap() error { return e.Err }

// ErrIntegrity reports a constraint violation on write.
type ErrIntegrity struct {
	Op         string
	Constraint string
	Err        error
}

func (e *ErrIntegrity) Error() string {
	if e.Constraint != "" {
		return fmt.Sprintf("%s: data integrity violation (%s): %v", e.Op, e.Constraint, e.Err)
	}
	return fmt.Sprintf("%s: data integrity violation: %v", e.Op, e.Err)
}

func (e *ErrIntegrity) Unwrap() error { return e.Err }

// ErrUnexpectedRowCount is raised when an update touched fewer rows than expected.
type ErrUnexpectedRowCount struct {
	Op       string
	Expected int64
	Got      int64
}

func (e *ErrUnexpectedRowCount) Error() string {
	return fmt.Sprintf("%s: %d rows affected, expected at least %d", e.Op, e.Got, e.Expected)
}

// ErrValidation is returned for input the domain refuses to accept.
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// ErrUnauthorized is returned when the caller cannot be identified.
type ErrUnauthorized struct {
	Message string
}

func (e *ErrUnauthorized) Error() string {
	return "unauthorized: " + e.Message
}

// ErrForbidden is returned when the caller lacks the required role.
type ErrForbidden struct {
	Message string
}

func (e *ErrForbidden) Error() string {
	return "forbidden: " + e.Message
}

// ErrTaxUnavailable wraps a failed tax rate lookup.
type ErrTaxUnavailable struct {
	State string
	Err   error
}

func (e *ErrTaxUnavailable) Error() string {
	return fmt.Sprintf("tax rate unavailable for state %q: %v", e.State, e.Err)
}

func (e *ErrTaxUnavailable) Unwrap() error { return e.Err }

func IsNotFound(err error) bool {
	var target *ErrNotFound
	return stderrors.As(err, &target)
}

func IsConnection(err error) bool {
	var target *ErrConnection
	return stderrors.As(err, &target)
}

func IsIntegrity(err error) bool {
	var target *ErrIntegrity
	return stderrors.As(err, &target)
}

func IsUnexpectedRowCount(err error) bool {
	var target *ErrUnexpectedRowCount
	return stderrors.As(err, &target)
}

func IsValidation(err error) bool {
	var target *ErrValidation
	return stderrors.As(err, &target)
}

func IsUnauthorized(err error) bool {
	var target *ErrUnauthorized
	return stderrors.As(err, &target)
}

func IsForbidden(err error) bool {
	var target *ErrForbidden
	return stderrors.As(err, &target)
}

func IsTaxUnavailable(err error) bool {
	var target *ErrTaxUnavailable
	return stderrors.As(err, &target)
}
