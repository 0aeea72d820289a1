package apperrors

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound = errors.New("resource not found")

	ErrDuplicateResource = errors.New("duplicate resource")

	ErrRequestValidation = errors.New("request validation failed")

	ErrInvalidArgument = errors.New("invalid argument")

	ErrValidation = errors.New("validation failed")

	ErrDatabase = errors.New("database error")

	ErrInternalServer = errors.New("internal server error")

	ErrUnauthorized = errors.New("unauthorized")

	ErrForbidden = errors.New("forbidden")
)

type ValidationError struct {
	Field   string
	Message string
	Cause   error
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for field '%s': %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

func (e *ValidationError) Unwrap() error {
	return e.Cause
}

func NewValidationError(field, message string) error {

	return fmt.Errorf("%w: %w", ErrValidation, &ValidationError{Field: field, Message: message})
}

// AppError is a classified failure whose Message is safe to show to clients.
// Kind is one of the sentinel errors above and drives the HTTP status.
type AppError struct {
	Code    string
	Message string
	Kind    error
	Cause   error
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Is(target error) bool {
	return e.Kind != nil && target == e.Kind
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

func NewNotFoundError(format string, args ...any) error {
	return &AppError{Code: "NOT_FOUND", Message: fmt.Sprintf(format, args...), Kind: ErrNotFound}
}

func NewDuplicateResourceError(message string) error {
	return &AppError{Code: "DUPLICATE_RESOURCE", Message: message, Kind: ErrDuplicateResource}
}

func NewRequestValidationError(message string) error {
	return &AppError{Code: "REQUEST_VALIDATION", Message: message, Kind: ErrRequestValidation}
}

func NewUnauthorizedError(message string) error {
	return &AppError{Code: "UNAUTHORIZED", Message: message, Kind: ErrUnauthorized}
}

func NewForbiddenError(message string) error {
	return &AppError{Code: "FORBIDDEN", Message: message, Kind: ErrForbidden}
}

func WrapDatabaseError(cause error, message string) error {
	return &AppError{
		Code:    "DB_ERROR",
		Message: message,
		Kind:    ErrDatabase,
		Cause:   cause,
	}
}
