package domain

import "errors"

// Sentinel errors for the cases domain. Use errors.Is() to check these.
var (
	// ErrCaseNotFound indicates the requested case does not exist.
	ErrCaseNotFound = errors.New("case not found")

	// ErrMissingCustomer indicates the pending case carries no resolvable
	// customer reference. This is a data-integrity failure, distinct from
	// ErrActiveCaseExists.
	ErrMissingCustomer = errors.New("missing or invalid customer reference")

	// ErrActiveCaseExists is the business-rule rejection raised by the
	// uniqueness guard. The message is caller-facing and surfaced verbatim.
	ErrActiveCaseExists = errors.New("a given customer may not have more than one open case")

	// ErrInvalidCaseSubject indicates the case subject violates domain constraints.
	ErrInvalidCaseSubject = errors.New("invalid case subject")

	// ErrInvalidStatusTransition indicates a disallowed case lifecycle move.
	ErrInvalidStatusTransition = errors.New("invalid status transition")
)
