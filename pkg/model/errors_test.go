package model

import (
	"errors"
	"fmt"
	"testing"
	"time"
)

func TestAPIError_Error(t *testing.T) {
	err := &APIError{Code: ErrInvalidArgument, Message: `unknown algorithm "lifo"`}
	want := `INVALID_ARGUMENT: unknown algorithm "lifo"`
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestNewNotFoundError(t *testing.T) {
	err := NewNotFoundError("run", "run_abc")
	if err.Code != ErrNotFound {
		t.Errorf("Code = %q, want %q", err.Code, ErrNotFound)
	}
	if err.Message != "run 'run_abc' not found" {
		t.Errorf("Message = %q, want %q", err.Message, "run 'run_abc' not found")
	}
}

func TestNewValidationError(t *testing.T) {
	err := NewValidationError("Invalid request",
		FieldError{Field: "task_list", Message: "required"},
		FieldError{Field: "algo", Message: "required"},
	)
	if err.Code != ErrValidation {
		t.Errorf("Code = %q, want %q", err.Code, ErrValidation)
	}
	if len(err.Details) != 2 {
		t.Errorf("Details length = %d, want 2", len(err.Details))
	}
}

func TestIsInvalidArgument(t *testing.T) {
	err := fmt.Errorf("dispatch: %w", NewInvalidArgumentError("quantum must be positive, got %d", 0))
	if !IsInvalidArgument(err) {
		t.Error("IsInvalidArgument(wrapped) = false, want true")
	}
	if IsInvalidArgument(NewValidationError("bad")) {
		t.Error("IsInvalidArgument(validation) = true, want false")
	}
	if IsInvalidArgument(errors.New("plain")) {
		t.Error("IsInvalidArgument(plain) = true, want false")
	}
}

func TestParseError(t *testing.T) {
	_, cause := time.Parse(DateLayout, "2025-13-01")
	err := fmt.Errorf("schedule: %w", &ParseError{TaskID: 7, Field: "arrivalTime.date", Value: "2025-13-01", Err: cause})

	if !IsParseError(err) {
		t.Fatal("IsParseError = false, want true")
	}
	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatal("errors.As failed")
	}
	if pe.TaskID != 7 || pe.Field != "arrivalTime.date" {
		t.Errorf("ParseError = %+v", pe)
	}
	if !errors.Is(err, cause) {
		t.Error("ParseError does not unwrap to its cause")
	}

	noCause := &ParseError{TaskID: 1, Field: "arrivalTime.hrs", Value: "24"}
	want := `PARSE_ERROR: task 1: invalid arrivalTime.hrs "24"`
	if got := noCause.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}
