// Package services contains stateless domain services for the cases bounded context.
// Domain services enforce business rules that operate purely on domain types
// and have zero external dependencies beyond stdlib and the domain layer.
package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	casedomain "github.com/ghuser/casedesk/services/cases/domain"
	"github.com/ghuser/casedesk/services/cases/domain/models"
)

// ActiveCaseLookup is the read access the uniqueness guard needs from the
// record store: an existence check for active cases tied to a customer.
// Implementations must cap the result set at one record and must report
// store failures (connectivity, permissions, cancellation) as errors;
// "no match" is a false result, not an error.
type ActiveCaseLookup interface {
	HasActiveCase(ctx context.Context, orgID, customerID uuid.UUID) (bool, error)
}

// CheckCaseUniqueness enforces the one-open-case-per-customer invariant
// against a pending (not yet committed) case.
//
// The check runs in three phases, each terminal on first failure:
//  1. resolve the customer identity from the pending record; an absent or
//     malformed reference fails with ErrMissingCustomer;
//  2. query the store for an existing active case keyed on the customer
//     identity (the kind tag is irrelevant to the lookup); store errors
//     propagate unchanged;
//  3. decide: a match rejects with ErrActiveCaseExists, no match allows.
//
// The guard is stateless, mutates nothing, and holds no lock across the
// query; the store-level partial unique index backstops the window between
// this check and the commit.
func CheckCaseUniqueness(ctx context.Context, lookup ActiveCaseLookup, pending *models.Case) error {
	if pending == nil {
		return fmt.Errorf("%w: pending case is nil", casedomain.ErrMissingCustomer)
	}

	ref := pending.Customer
	if ref.IsZero() {
		return fmt.Errorf("%w: no customer on case", casedomain.ErrMissingCustomer)
	}
	if !ref.Valid() {
		return fmt.Errorf("%w: %s", casedomain.ErrMissingCustomer, ref)
	}

	exists, err := lookup.HasActiveCase(ctx, pending.OrgID, ref.ID)
	if err != nil {
		return fmt.Errorf("lookup active case for customer %s: %w", ref.ID, err)
	}
	if exists {
		return casedomain.ErrActiveCaseExists
	}
	return nil
}
