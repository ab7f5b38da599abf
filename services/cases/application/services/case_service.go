package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	pkgcache "github.com/ghuser/casedesk/pkg/cache"
	casedomain "github.com/ghuser/casedesk/services/cases/domain"
	"github.com/ghuser/casedesk/services/cases/domain/models"
	"github.com/ghuser/casedesk/services/cases/domain/repositories"
	domainsvcs "github.com/ghuser/casedesk/services/cases/domain/services"
)

// CaseService orchestrates opening, reading, and transitioning cases.
// Event publishing is handled by the repository layer (outbox pattern).
// Reads are served from Redis cache when available.
type CaseService struct {
	repo  repositories.CaseRepository
	cache *pkgcache.CaseCache
}

// NewCaseService returns a CaseService wired with the given repository and cache.
func NewCaseService(repo repositories.CaseRepository, caseCache *pkgcache.CaseCache) *CaseService {
	return &CaseService{repo: repo, cache: caseCache}
}

// Open validates the request, runs the uniqueness guard against the record
// store, and persists the new case. The repository publishes CaseOpenedEvent
// in the same transaction as the insert.
//
// Failure modes, in checking order:
//   - invalid subject → ErrInvalidCaseSubject
//   - absent/malformed customer reference → ErrMissingCustomer
//   - store failure during the guard query → propagated unchanged
//   - existing active case for the customer → ErrActiveCaseExists
func (s *CaseService) Open(ctx context.Context, orgID uuid.UUID, customer models.CustomerRef, subject string) (*models.Case, error) {
	caseSubject, err := models.NewCaseSubject(subject)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", casedomain.ErrInvalidCaseSubject, err)
	}

	pending, err := models.NewCase(orgID, customer, caseSubject)
	if err != nil {
		return nil, fmt.Errorf("open case: %w", err)
	}

	if err := domainsvcs.CheckCaseUniqueness(ctx, s.repo, pending); err != nil {
		return nil, err
	}

	if err := s.repo.Save(ctx, pending); err != nil {
		return nil, fmt.Errorf("save case: %w", err)
	}

	return pending, nil
}

// GetByID retrieves a Case using a read-through cache pattern:
//  1. Check Redis cache first.
//  2. On cache miss (or cache error), query Postgres.
//  3. Asynchronously warm the cache with the Postgres result.
func (s *CaseService) GetByID(ctx context.Context, orgID, id uuid.UUID) (*models.Case, error) {
	if s.cache != nil {
		// A miss and a cache error both fall through to Postgres.
		if cached, err := s.cache.Get(ctx, orgID, id); err == nil {
			return &models.Case{
				ID:    cached.ID,
				OrgID: cached.OrgID,
				Customer: models.CustomerRef{
					Kind: models.CustomerKind(cached.CustomerKind),
					ID:   cached.CustomerID,
				},
				Subject:   models.CaseSubject(cached.Subject),
				Status:    models.CaseStatus(cached.Status),
				CreatedAt: cached.CreatedAt,
			}, nil
		}
	}

	c, err := s.repo.GetByID(ctx, orgID, id)
	if err != nil {
		return nil, fmt.Errorf("get case: %w", err)
	}

	if s.cache != nil {
		go func() {
			_ = s.cache.Set(context.Background(), &pkgcache.CachedCase{
				ID:           c.ID,
				OrgID:        c.OrgID,
				CustomerKind: string(c.Customer.Kind),
				CustomerID:   c.Customer.ID,
				Subject:      c.Subject.String(),
				Status:       c.Status.String(),
				CreatedAt:    c.CreatedAt,
			})
		}()
	}

	return c, nil
}

// List returns a paginated slice of cases for the org plus total count.
func (s *CaseService) List(ctx context.Context, orgID uuid.UUID, opts repositories.QueryOpts) ([]*models.Case, int, error) {
	cases, total, err := s.repo.FindByOrgID(ctx, orgID, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("list cases: %w", err)
	}
	return cases, total, nil
}

// ListByCustomer returns the cases referencing a customer identity, newest
// first. The customer kind does not participate in the filter.
func (s *CaseService) ListByCustomer(ctx context.Context, orgID, customerID uuid.UUID, opts repositories.QueryOpts) ([]*models.Case, int, error) {
	cases, total, err := s.repo.FindByCustomer(ctx, orgID, customerID, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("list cases by customer: %w", err)
	}
	return cases, total, nil
}

// Transition moves a case to a new lifecycle status. Leaving the active
// status publishes CaseClosedEvent (via the repository) and evicts the cache
// entry so stale reads cannot resurrect an open case.
func (s *CaseService) Transition(ctx context.Context, orgID, id uuid.UUID, next models.CaseStatus) (*models.Case, error) {
	c, err := s.repo.GetByID(ctx, orgID, id)
	if err != nil {
		return nil, fmt.Errorf("get case: %w", err)
	}

	if err := c.Transition(next); err != nil {
		return nil, fmt.Errorf("%w: %w", casedomain.ErrInvalidStatusTransition, err)
	}

	if err := s.repo.UpdateStatus(ctx, c); err != nil {
		return nil, fmt.Errorf("update case: %w", err)
	}

	if s.cache != nil {
		_ = s.cache.Delete(context.Background(), orgID, id)
	}
	return c, nil
}
