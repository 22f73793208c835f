package model

import (
	"errors"
	"fmt"
)

// ErrorCode represents a structured error code.
type ErrorCode string

const (
	ErrValidation      ErrorCode = "VALIDATION_ERROR"
	ErrInvalidArgument ErrorCode = "INVALID_ARGUMENT"
	ErrParse           ErrorCode = "PARSE_ERROR"
	ErrNotFound        ErrorCode = "NOT_FOUND"
	ErrInternal        ErrorCode = "INTERNAL_ERROR"
)

// APIError is a structured error returned by the scheduler and the API.
type APIError struct {
	Code    ErrorCode    `json:"code"`
	Message string       `json:"message"`
	Details []FieldError `json:"details,omitempty"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// FieldError describes a validation error on a specific field.
type FieldError struct {
	Field   string `json:"field,omitempty"`
	Path    string `json:"path,omitempty"`
	Message string `json:"message"`
}

// NewValidationError creates an APIError with validation details.
func NewValidationError(msg string, details ...FieldError) *APIError {
	return &APIError{Code: ErrValidation, Message: msg, Details: details}
}

// NewInvalidArgumentError creates an INVALID_ARGUMENT APIError.
func NewInvalidArgumentError(format string, args ...any) *APIError {
	return &APIError{Code: ErrInvalidArgument, Message: fmt.Sprintf(format, args...)}
}

// NewNotFoundError creates a NOT_FOUND APIError.
func NewNotFoundError(resource, id string) *APIError {
	return &APIError{
		Code:    ErrNotFound,
		Message: fmt.Sprintf("%s '%s' not found", resource, id),
	}
}

// ParseError reports a task field that could not be converted to a timestamp.
type ParseError struct {
	TaskID int
	Field  string
	Value  string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: task %d: invalid %s %q: %v", ErrParse, e.TaskID, e.Field, e.Value, e.Err)
	}
	return fmt.Sprintf("%s: task %d: invalid %s %q", ErrParse, e.TaskID, e.Field, e.Value)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// IsInvalidArgument reports whether err carries the INVALID_ARGUMENT code.
func IsInvalidArgument(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Code == ErrInvalidArgument
}

// IsParseError reports whether err is (or wraps) a *ParseError.
func IsParseError(err error) bool {
	var pe *ParseError
	return errors.As(err, &pe)
}
