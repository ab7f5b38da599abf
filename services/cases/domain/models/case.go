package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Case is the core aggregate for this bounded context: one support case
// opened on behalf of exactly one customer.
type Case struct {
	ID        uuid.UUID
	OrgID     uuid.UUID // tenant scope, always filter by this in queries
	Customer  CustomerRef
	Subject   CaseSubject
	Status    CaseStatus
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewCase constructs a pending Case aggregate with generated ID, status
// active, and current timestamp. The aggregate is not persisted until the
// repository commits it; the uniqueness guard observes it in this form.
func NewCase(orgID uuid.UUID, customer CustomerRef, subject CaseSubject) (*Case, error) {
	now := time.Now().UTC()
	return &Case{
		ID:        uuid.New(),
		OrgID:     orgID,
		Customer:  customer,
		Subject:   subject,
		Status:    StatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// Transition moves the case to next, enforcing the lifecycle rules.
func (c *Case) Transition(next CaseStatus) error {
	if !c.Status.CanTransitionTo(next) {
		return fmt.Errorf("cannot move case from %s to %s", c.Status, next)
	}
	c.Status = next
	c.UpdatedAt = time.Now().UTC()
	return nil
}
