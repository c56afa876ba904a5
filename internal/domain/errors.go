package domain

import (
	"errors"
	"fmt"
)

// NotFoundError maps to HTTP 404. Msg, when set, replaces the default
// "<Resource> not found" text.
type NotFoundError struct {
	Resource string
	Msg      string
	Err      error
}

func (e NotFoundError) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	if e.Resource == "" {
		return "not found"
	}
	return fmt.Sprintf("%s not found", e.Resource)
}

func (e NotFoundError) Unwrap() error { return e.Err }

// ValidationError maps to HTTP 400 (422 for semantic failures) and carries
// a field -> message map surfaced to clients as the "errors" object.
type ValidationError struct {
	Msg    string
	Fields map[string]string
	Err    error
}

func (e ValidationError) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	return "validation error"
}

func (e ValidationError) Unwrap() error { return e.Err }

// NewFieldError builds a single-field validation failure.
func NewFieldError(field, msg string) ValidationError {
	return ValidationError{Msg: "Validation Error", Fields: map[string]string{field: msg}}
}

// ConflictError maps to HTTP 409 (duplicate email, duplicate registration).
type ConflictError struct {
	Resource string
	Msg      string
	Err      error
}

func (e ConflictError) Error() string {
	switch {
	case e.Msg != "":
		return e.Msg
	case e.Resource != "":
		return fmt.Sprintf("%s conflict", e.Resource)
	default:
		return "conflict"
	}
}

func (e ConflictError) Unwrap() error { return e.Err }

// CapacityError maps to HTTP 409 and signals an exhausted seat pool.
type CapacityError struct {
	Msg string
}

func (e CapacityError) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	return "no remaining capacity"
}

// UnauthorizedError maps to HTTP 401 (missing credential).
type UnauthorizedError struct {
	Msg string
}

func (e UnauthorizedError) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	return "unauthorized"
}

// ForbiddenError maps to HTTP 403 (invalid or expired credential,
// insufficient role).
type ForbiddenError struct {
	Msg string
}

func (e ForbiddenError) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	return "forbidden"
}

// InternalError maps to HTTP 500. Msg, when set, is a safe summary for
// clients; the wrapped Err never leaves the server.
type InternalError struct {
	Msg string
	Err error
}

func (e InternalError) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	return "internal error"
}

func (e InternalError) Unwrap() error { return e.Err }

func IsNotFound(err error) bool {
	var target NotFoundError
	return errors.As(err, &target)
}

func IsValidation(err error) bool {
	var target ValidationError
	return errors.As(err, &target)
}

func IsConflict(err error) bool {
	var target ConflictError
	return errors.As(err, &target)
}

func IsCapacity(err error) bool {
	var target CapacityError
	return errors.As(err, &target)
}

func IsUnauthorized(err error) bool {
	var target UnauthorizedError
	return errors.As(err, &target)
}

func IsForbidden(err error) bool {
	var target ForbiddenError
	return errors.As(err, &target)
}

func IsInternal(err error) bool {
	var target InternalError
	return errors.As(err, &target)
}
