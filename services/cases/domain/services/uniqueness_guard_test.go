package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	casedomain "github.com/ghuser/casedesk/services/cases/domain"
	"github.com/ghuser/casedesk/services/cases/domain/models"
)

// fakeLookup is an in-memory ActiveCaseLookup keyed by customer ID.
type fakeLookup struct {
	active map[uuid.UUID]bool
	err    error

	calls int
}

func (f *fakeLookup) HasActiveCase(ctx context.Context, orgID, customerID uuid.UUID) (bool, error) {
	f.calls++
	if f.err != nil {
		return false, f.err
	}
	if err := ctx.Err(); err != nil {
		return false, err
	}
	return f.active[customerID], nil
}

func makePending(t *testing.T, customer models.CustomerRef) *models.Case {
	t.Helper()
	c, err := models.NewCase(uuid.New(), customer, "Printer on fire")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return c
}

func TestCheckCaseUniqueness_AllowsCustomerWithNoCases(t *testing.T) {
	customer, _ := models.NewCustomerRef(models.KindOrganization, uuid.New())
	lookup := &fakeLookup{active: map[uuid.UUID]bool{}}

	if err := CheckCaseUniqueness(context.Background(), lookup, makePending(t, customer)); err != nil {
		t.Fatalf("expected allow, got %v", err)
	}
	if lookup.calls != 1 {
		t.Fatalf("expected exactly one lookup, got %d", lookup.calls)
	}
}

func TestCheckCaseUniqueness_RejectsCustomerWithActiveCase(t *testing.T) {
	customerID := uuid.New()
	customer, _ := models.NewCustomerRef(models.KindIndividual, customerID)
	lookup := &fakeLookup{active: map[uuid.UUID]bool{customerID: true}}

	err := CheckCaseUniqueness(context.Background(), lookup, makePending(t, customer))
	if !errors.Is(err, casedomain.ErrActiveCaseExists) {
		t.Fatalf("expected ErrActiveCaseExists, got %v", err)
	}
	if err.Error() != "a given customer may not have more than one open case" {
		t.Fatalf("unexpected rejection message: %q", err.Error())
	}
}

func TestCheckCaseUniqueness_KindIgnoredByLookup(t *testing.T) {
	// The same identity behind either kind must be rejected: uniqueness is
	// enforced per customer identity, not per customer kind.
	customerID := uuid.New()
	lookup := &fakeLookup{active: map[uuid.UUID]bool{customerID: true}}

	for _, kind := range []models.CustomerKind{models.KindOrganization, models.KindIndividual} {
		customer, _ := models.NewCustomerRef(kind, customerID)
		err := CheckCaseUniqueness(context.Background(), lookup, makePending(t, customer))
		if !errors.Is(err, casedomain.ErrActiveCaseExists) {
			t.Fatalf("kind %s: expected ErrActiveCaseExists, got %v", kind, err)
		}
	}
}

func TestCheckCaseUniqueness_MissingCustomer(t *testing.T) {
	lookup := &fakeLookup{active: map[uuid.UUID]bool{}}

	tests := []struct {
		name    string
		pending *models.Case
	}{
		{"nil case", nil},
		{"zero customer reference", makePending(t, models.CustomerRef{})},
		{"unknown kind", makePending(t, models.CustomerRef{Kind: "partnership", ID: uuid.New()})},
		{"nil customer id", makePending(t, models.CustomerRef{Kind: models.KindOrganization})},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckCaseUniqueness(context.Background(), lookup, tt.pending)
			if !errors.Is(err, casedomain.ErrMissingCustomer) {
				t.Fatalf("expected ErrMissingCustomer, got %v", err)
			}
			if errors.Is(err, casedomain.ErrActiveCaseExists) {
				t.Fatal("data-integrity failure must not look like a business-rule rejection")
			}
		})
	}

	if lookup.calls != 0 {
		t.Fatalf("invalid references must fail before the store is queried, got %d calls", lookup.calls)
	}
}

func TestCheckCaseUniqueness_StoreErrorPropagatesUnchanged(t *testing.T) {
	storeErr := errors.New("connection refused")
	customer, _ := models.NewCustomerRef(models.KindOrganization, uuid.New())
	lookup := &fakeLookup{err: storeErr}

	err := CheckCaseUniqueness(context.Background(), lookup, makePending(t, customer))
	if !errors.Is(err, storeErr) {
		t.Fatalf("expected wrapped store error, got %v", err)
	}
	if errors.Is(err, casedomain.ErrActiveCaseExists) || errors.Is(err, casedomain.ErrMissingCustomer) {
		t.Fatal("store failure must not be reclassified as a domain rejection")
	}
}

func TestCheckCaseUniqueness_CancellationPropagates(t *testing.T) {
	customer, _ := models.NewCustomerRef(models.KindIndividual, uuid.New())
	lookup := &fakeLookup{active: map[uuid.UUID]bool{}}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := CheckCaseUniqueness(ctx, lookup, makePending(t, customer))
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
