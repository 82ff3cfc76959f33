package domain

import (
	"errors"
	"fmt"
	"testing"
)

func TestValidationError_SingleField(t *testing.T) {
	t.Parallel()

	err := NewValidationError("email", "required")

	if got := err.Error(); got != "validation: email: required" {
		t.Fatalf("unexpected Error(): %q", got)
	}
	if !errors.Is(err, ErrValidation) {
		t.Fatal("errors.Is(err, ErrValidation) = false")
	}
}

func TestValidationError_MultipleFields(t *testing.T) {
	t.Parallel()

	err := NewValidationErrors([]FieldError{
		{Field: "conversation_id", Message: "required"},
		{Field: "user_id", Message: "required"},
	})

	if got := err.Error(); got != "validation: 2 errors" {
		t.Fatalf("unexpected Error(): %q", got)
	}
	if !errors.Is(err, ErrValidation) {
		t.Fatal("errors.Is(err, ErrValidation) = false")
	}
	if len(err.Errors) != 2 {
		t.Fatalf("expected 2 field errors, got %d", len(err.Errors))
	}
}

func TestAuthorizationError_Unwrap(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("add participant: %w", unauthorized("only owner may modify membership"))

	if !errors.Is(err, ErrUnauthorized) {
		t.Fatal("errors.Is(err, ErrUnauthorized) = false")
	}
	if errors.Is(err, ErrInvariantViolation) {
		t.Fatal("authorization error must not match ErrInvariantViolation")
	}

	var authErr *AuthorizationError
	if !errors.As(err, &authErr) {
		t.Fatalf("expected *AuthorizationError, got %T", err)
	}
	if authErr.Reason != "only owner may modify membership" {
		t.Errorf("Reason = %q", authErr.Reason)
	}
}

func TestInvariantError_Unwrap(t *testing.T) {
	t.Parallel()

	err := invariant("already a participant")

	if got := err.Error(); got != "invariant violation: already a participant" {
		t.Fatalf("unexpected Error(): %q", got)
	}
	if !errors.Is(err, ErrInvariantViolation) {
		t.Fatal("errors.Is(err, ErrInvariantViolation) = false")
	}
	if errors.Is(err, ErrUnauthorized) {
		t.Fatal("invariant error must not match ErrUnauthorized")
	}
}

func TestSentinelErrors_AreDistinct(t *testing.T) {
	t.Parallel()

	sentinels := []error{
		ErrNotFound, ErrAlreadyExists, ErrValidation,
		ErrUnauthorized, ErrInvariantViolation,
	}
	for i, a := range sentinels {
		for j, b := range sentinels {
			if i != j && errors.Is(a, b) {
				t.Errorf("sentinel errors %d and %d should not match", i, j)
			}
		}
	}
}
