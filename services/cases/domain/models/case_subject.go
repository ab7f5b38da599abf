package models

import "fmt"

// CaseSubject is a value object representing a valid case subject line.
// Encapsulates validation rules: 1 <= len(subject) <= 255.
type CaseSubject string

const (
	minCaseSubjectLength = 1
	maxCaseSubjectLength = 255
)

// NewCaseSubject constructs a valid CaseSubject or returns an error if constraints are violated.
func NewCaseSubject(s string) (CaseSubject, error) {
	if len(s) < minCaseSubjectLength {
		return "", fmt.Errorf("case subject must be at least %d character", minCaseSubjectLength)
	}
	if len(s) > maxCaseSubjectLength {
		return "", fmt.Errorf("case subject must not exceed %d characters", maxCaseSubjectLength)
	}
	return CaseSubject(s), nil
}

// String returns the underlying string value.
func (s CaseSubject) String() string {
	return string(s)
}
