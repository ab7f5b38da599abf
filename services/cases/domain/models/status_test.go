package models

import "testing"

func TestParseStatus(t *testing.T) {
	for _, valid := range []string{"active", "resolved", "cancelled", "closed"} {
		if _, err := ParseStatus(valid); err != nil {
			t.Fatalf("ParseStatus(%q) unexpected error: %v", valid, err)
		}
	}
	for _, invalid := range []string{"", "open", "Active", "ACTIVE", "done"} {
		if _, err := ParseStatus(invalid); err == nil {
			t.Fatalf("ParseStatus(%q) expected error", invalid)
		}
	}
}

func TestCaseStatus_IsActive(t *testing.T) {
	// Status filtering for the uniqueness invariant is exact: only "active"
	// counts, every other value does not.
	if !StatusActive.IsActive() {
		t.Fatal("active must count as open")
	}
	for _, s := range []CaseStatus{StatusResolved, StatusCancelled, StatusClosed} {
		if s.IsActive() {
			t.Fatalf("%s must not count as open", s)
		}
	}
}

func TestCaseStatus_CanTransitionTo(t *testing.T) {
	tests := []struct {
		from, to CaseStatus
		want     bool
	}{
		{StatusActive, StatusResolved, true},
		{StatusActive, StatusCancelled, true},
		{StatusActive, StatusClosed, true},
		{StatusActive, StatusActive, false},
		{StatusResolved, StatusClosed, true},
		{StatusResolved, StatusActive, false},
		{StatusCancelled, StatusClosed, true},
		{StatusCancelled, StatusResolved, false},
		{StatusClosed, StatusActive, false},
		{StatusClosed, StatusResolved, false},
	}

	for _, tt := range tests {
		if got := tt.from.CanTransitionTo(tt.to); got != tt.want {
			t.Errorf("%s -> %s = %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}
}
