package services

import (
	"errors"
	"fmt"
)

// Sentinel kinds for every failure a workflow operation can return. Handlers
// map these onto HTTP statuses; nothing is ever thrown past this boundary.
var (
	ErrNotFound     = errors.New("not found")
	ErrForbidden    = errors.New("forbidden")
	ErrConflict     = errors.New("conflict")
	ErrBadRequest   = errors.New("bad request")
	ErrUnauthorized = errors.New("unauthorized")
)

// Error wraps a sentinel kind with a caller-facing message.
type Error struct {
	Err     error
	Message string
}

func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Message)
	}
	return e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// ErrorMessage extracts the caller-facing message, falling back to the plain
// error text.
func ErrorMessage(err error) string {
	var svcErr *Error
	if errors.As(err, &svcErr) && svcErr.Message != "" {
		return svcErr.Message
	}
	return err.Error()
}

func notFound(message string) error {
	return &Error{Err: ErrNotFound, Message: message}
}

func forbidden(message string) error {
	return &Error{Err: ErrForbidden, Message: message}
}

func conflict(message string) error {
	return &Error{Err: ErrConflict, Message: message}
}

func badRequest(message string) error {
	return &Error{Err: ErrBadRequest, Message: message}
}

func unauthorized(message string) error {
	return &Error{Err: ErrUnauthorized, Message: message}
}
