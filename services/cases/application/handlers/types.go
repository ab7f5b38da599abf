package handlers

import (
	"time"

	"github.com/google/uuid"

	"github.com/ghuser/casedesk/services/cases/domain/models"
)

// CaseResponse is the JSON representation of a case returned by all handlers.
type CaseResponse struct {
	ID           uuid.UUID `json:"id"            example:"123e4567-e89b-12d3-a456-426614174000"`
	OrgID        uuid.UUID `json:"org_id"        example:"550e8400-e29b-41d4-a716-446655440000"`
	CustomerKind string    `json:"customer_kind" example:"organization"`
	CustomerID   uuid.UUID `json:"customer_id"   example:"6ba7b810-9dad-11d1-80b4-00c04fd430c8"`
	Subject      string    `json:"subject"       example:"Printer on fire"`
	Status       string    `json:"status"        example:"active"`
	CreatedAt    time.Time `json:"created_at"    example:"2024-01-15T10:30:00Z"`
} // @name CaseResponse

// ErrorResponse is returned on all error responses.
type ErrorResponse struct {
	Error string `json:"error" example:"a given customer may not have more than one open case"`
} // @name ErrorResponse

func toCaseResponse(c *models.Case) CaseResponse {
	return CaseResponse{
		ID:           c.ID,
		OrgID:        c.OrgID,
		CustomerKind: string(c.Customer.Kind),
		CustomerID:   c.Customer.ID,
		Subject:      c.Subject.String(),
		Status:       c.Status.String(),
		CreatedAt:    c.CreatedAt,
	}
}
