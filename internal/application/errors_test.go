package application

import (
	"errors"
	"fmt"
	"testing"
)

func TestValidationError_Error(t *testing.T) {
	t.Parallel()

	var err *ValidationError
	if err.Error() != "" {
		t.Fatalf("expected empty string for nil error, got %q", err.Error())
	}

	empty := &ValidationError{}
	if got := empty.Error(); got != "validation failed" {
		t.Fatalf("expected generic message for empty error, got %q", got)
	}

	withFields := &ValidationError{FieldErrors: map[string]string{
		"name":     "name is required",
		"capacity": "capacity must be positive",
	}}
	want := "validation failed: capacity: capacity must be positive; name: name is required"
	if got := withFields.Error(); got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestValidationError_HasErrors(t *testing.T) {
	t.Parallel()

	if (&ValidationError{}).HasErrors() {
		t.Fatalf("expected HasErrors to report false for empty error")
	}

	if !(&ValidationError{FieldErrors: map[string]string{"field": "bad"}}).HasErrors() {
		t.Fatalf("expected HasErrors to report true when fields are present")
	}
}

func TestValidationError_Add(t *testing.T) {
	t.Parallel()

	vErr := &ValidationError{}
	vErr.add("first", "value")
	vErr.add("first", "replaced")
	if got := vErr.FieldErrors["first"]; got != "replaced" {
		t.Fatalf("expected add to overwrite the field message, got %q", got)
	}
	if len(vErr.FieldErrors) != 1 {
		t.Fatalf("expected a single field, got %v", vErr.FieldErrors)
	}
}

func TestFormatError(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("booking: %w", &FormatError{Field: "start", Input: "not-a-date", Pattern: TimestampPattern})
	if !errors.Is(err, ErrInvalidFormat) {
		t.Fatalf("expected FormatError to match ErrInvalidFormat")
	}

	var fErr *FormatError
	if !errors.As(err, &fErr) {
		t.Fatalf("expected errors.As to find FormatError")
	}
	if fErr.Field != "start" || fErr.Input != "not-a-date" {
		t.Fatalf("unexpected details: %#v", fErr)
	}
	if got := fErr.Error(); got != `invalid start "not-a-date": expected YYYY-MM-DD HH:MM` {
		t.Fatalf("unexpected message %q", got)
	}
}
