package models

import (
	"fmt"

	"github.com/google/uuid"
)

// CustomerKind tags which entity a CustomerRef points at.
type CustomerKind string

const (
	KindOrganization CustomerKind = "organization"
	KindIndividual   CustomerKind = "individual"
)

// ParseCustomerKind converts a raw string into a CustomerKind.
func ParseCustomerKind(s string) (CustomerKind, error) {
	switch CustomerKind(s) {
	case KindOrganization, KindIndividual:
		return CustomerKind(s), nil
	}
	return "", fmt.Errorf("unknown customer kind %q", s)
}

// CustomerRef is a polymorphic reference to exactly one customer record:
// either an organization or an individual. The kind disambiguates which
// table the ID resolves against; the uniqueness invariant keys purely on ID.
type CustomerRef struct {
	Kind CustomerKind
	ID   uuid.UUID
}

// NewCustomerRef constructs a valid CustomerRef or returns an error when
// the kind is unknown or the ID is the zero UUID.
func NewCustomerRef(kind CustomerKind, id uuid.UUID) (CustomerRef, error) {
	if kind != KindOrganization && kind != KindIndividual {
		return CustomerRef{}, fmt.Errorf("customer kind must be %q or %q, got %q",
			KindOrganization, KindIndividual, kind)
	}
	if id == uuid.Nil {
		return CustomerRef{}, fmt.Errorf("customer id must be set")
	}
	return CustomerRef{Kind: kind, ID: id}, nil
}

// IsZero reports whether the reference is unset.
func (r CustomerRef) IsZero() bool {
	return r == CustomerRef{}
}

// Valid reports whether the reference resolves to a single customer identity.
func (r CustomerRef) Valid() bool {
	return (r.Kind == KindOrganization || r.Kind == KindIndividual) && r.ID != uuid.Nil
}

// String renders the reference as "kind:id" for logs.
func (r CustomerRef) String() string {
	return fmt.Sprintf("%s:%s", r.Kind, r.ID)
}
