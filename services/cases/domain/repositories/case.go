package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/ghuser/casedesk/services/cases/domain/models"
)

// QueryOpts contains pagination parameters for list queries.
type QueryOpts struct {
	Limit  int // Maximum number of records to return
	Offset int // Number of records to skip
}

// CaseRepository is the persistence interface for the Case aggregate.
// The domain layer owns this interface; infrastructure implements it.
//
// Implementations also satisfy services.ActiveCaseLookup, so the same
// repository backs both the guard's existence check and the CRUD surface.
type CaseRepository interface {
	// Save persists a new Case. A unique-constraint violation on the
	// active-case index surfaces as domain.ErrActiveCaseExists.
	Save(ctx context.Context, c *models.Case) error

	GetByID(ctx context.Context, orgID, id uuid.UUID) (*models.Case, error)

	// FindByOrgID retrieves a paginated list of cases for the given org.
	// Returns the cases slice and the total count (ignoring pagination).
	FindByOrgID(ctx context.Context, orgID uuid.UUID, opts QueryOpts) ([]*models.Case, int, error)

	// FindByCustomer retrieves cases referencing the given customer identity,
	// newest first. The customer kind is not part of the filter.
	FindByCustomer(ctx context.Context, orgID, customerID uuid.UUID, opts QueryOpts) ([]*models.Case, int, error)

	// UpdateStatus persists a lifecycle change to an existing Case.
	UpdateStatus(ctx context.Context, c *models.Case) error

	// HasActiveCase reports whether any case with status active references
	// the given customer identity. The query is capped at one record.
	HasActiveCase(ctx context.Context, orgID, customerID uuid.UUID) (bool, error)
}
