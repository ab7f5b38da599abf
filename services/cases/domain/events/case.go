package events

import (
	"time"

	"github.com/google/uuid"
)

// Watermill topics for case lifecycle events.
const (
	TopicCaseOpened = "case.opened"
	TopicCaseClosed = "case.closed"
)

// CaseOpenedEvent is published after a new Case is persisted.
// Consumers subscribe via EventBus.Subscribe(ctx, events.TopicCaseOpened).
type CaseOpenedEvent struct {
	EventID      uuid.UUID `json:"event_id"` // Unique publish-time identifier for deduplication
	Version      int       `json:"version"`  // Schema version; increment on breaking changes
	CaseID       uuid.UUID `json:"case_id"`
	OrgID        uuid.UUID `json:"org_id"`
	CustomerKind string    `json:"customer_kind"`
	CustomerID   uuid.UUID `json:"customer_id"`
	Subject      string    `json:"subject"`
	OccurredAt   time.Time `json:"occurred_at"`
}

// CaseClosedEvent is published when a case leaves the active status
// (resolved, cancelled, or closed).
type CaseClosedEvent struct {
	EventID    uuid.UUID `json:"event_id"`
	Version    int       `json:"version"`
	CaseID     uuid.UUID `json:"case_id"`
	OrgID      uuid.UUID `json:"org_id"`
	CustomerID uuid.UUID `json:"customer_id"`
	Status     string    `json:"status"` // the non-active status the case moved to
	OccurredAt time.Time `json:"occurred_at"`
}
