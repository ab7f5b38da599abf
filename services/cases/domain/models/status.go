package models

import "fmt"

// CaseStatus describes the lifecycle state of a case.
// Only StatusActive counts toward the one-open-case-per-customer invariant;
// every other value is "not active" as far as the uniqueness guard is concerned.
type CaseStatus string

const (
	StatusActive    CaseStatus = "active"
	StatusResolved  CaseStatus = "resolved"
	StatusCancelled CaseStatus = "cancelled"
	StatusClosed    CaseStatus = "closed"
)

// ParseStatus converts a raw string into a CaseStatus.
func ParseStatus(s string) (CaseStatus, error) {
	switch CaseStatus(s) {
	case StatusActive, StatusResolved, StatusCancelled, StatusClosed:
		return CaseStatus(s), nil
	}
	return "", fmt.Errorf("unknown case status %q", s)
}

// IsActive reports whether the status counts as open.
func (s CaseStatus) IsActive() bool {
	return s == StatusActive
}

// CanTransitionTo reports whether the lifecycle allows moving to next.
// Active cases may resolve, cancel, or close; resolved and cancelled cases
// may still be closed; closed is terminal.
func (s CaseStatus) CanTransitionTo(next CaseStatus) bool {
	switch s {
	case StatusActive:
		return next == StatusResolved || next == StatusCancelled || next == StatusClosed
	case StatusResolved, StatusCancelled:
		return next == StatusClosed
	default:
		return false
	}
}

// String returns the underlying string value.
func (s CaseStatus) String() string {
	return string(s)
}
