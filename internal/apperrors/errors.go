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

// ErrConflict indicates the operation conflicts with the current state of a
// resource, e.g. signing into a till that another teller occupies.
var ErrConflict = errors.New("state conflict")

// ErrUnauthorized indicates that no valid caller identity was supplied.
var ErrUnauthorized = errors.New("unauthorized")

// ErrForbidden indicates the caller is known but lacks the role or till
// occupancy the operation requires.
var ErrForbidden = errors.New("forbidden")

// ErrInsufficientBalance indicates a cash-out, wholesale sell or exchange leg
// would drive a balance below zero.
var ErrInsufficientBalance = errors.New("insufficient balance")

// AppError wraps a lower-level error with a status code and message.
// Repositories use it to attach context to infrastructure failures.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new AppError wrapping err.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// NewNotFoundError creates an AppError that satisfies errors.Is(err, ErrNotFound).
func NewNotFoundError(message string) *AppError {
	return &AppError{Code: 404, Message: message, Err: ErrNotFound}
}
