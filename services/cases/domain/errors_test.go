package domain

import (
	"errors"
	"fmt"
	"testing"
)

func TestSentinelErrors_NonNil(t *testing.T) {
	for _, err := range []error{
		ErrCaseNotFound,
		ErrMissingCustomer,
		ErrActiveCaseExists,
		ErrInvalidCaseSubject,
		ErrInvalidStatusTransition,
	} {
		if err == nil {
			t.Fatal("sentinel error must not be nil")
		}
	}
}

func TestSentinelErrors_Messages(t *testing.T) {
	// ErrActiveCaseExists is caller-facing and surfaced verbatim, so its
	// exact wording is part of the contract.
	if ErrActiveCaseExists.Error() != "a given customer may not have more than one open case" {
		t.Fatalf("unexpected message: %q", ErrActiveCaseExists.Error())
	}
	if ErrMissingCustomer.Error() != "missing or invalid customer reference" {
		t.Fatalf("unexpected message: %q", ErrMissingCustomer.Error())
	}
	if ErrCaseNotFound.Error() != "case not found" {
		t.Fatalf("unexpected message: %q", ErrCaseNotFound.Error())
	}
}

func TestSentinelErrors_WrappedIdentity(t *testing.T) {
	wrapped := fmt.Errorf("context: %w", ErrActiveCaseExists)
	if !errors.Is(wrapped, ErrActiveCaseExists) {
		t.Fatal("errors.Is must match wrapped ErrActiveCaseExists")
	}

	wrapped2 := fmt.Errorf("%w: %w", ErrMissingCustomer, errors.New("no customer on case"))
	if !errors.Is(wrapped2, ErrMissingCustomer) {
		t.Fatal("errors.Is must match double-wrapped ErrMissingCustomer")
	}
}

func TestSentinelErrors_Distinct(t *testing.T) {
	// The data-integrity failure and the business-rule rejection must stay
	// distinguishable to callers.
	if errors.Is(ErrMissingCustomer, ErrActiveCaseExists) {
		t.Fatal("ErrMissingCustomer must not match ErrActiveCaseExists")
	}
	if errors.Is(ErrActiveCaseExists, ErrMissingCustomer) {
		t.Fatal("ErrActiveCaseExists must not match ErrMissingCustomer")
	}
}
