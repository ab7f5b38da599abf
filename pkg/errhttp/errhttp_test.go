package errhttp

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	casedomain "github.com/ghuser/casedesk/services/cases/domain"
)

func TestWriteError_StatusCodes(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"ErrCaseNotFound", casedomain.ErrCaseNotFound, http.StatusNotFound},
		{"ErrActiveCaseExists", casedomain.ErrActiveCaseExists, http.StatusConflict},
		{"ErrMissingCustomer", casedomain.ErrMissingCustomer, http.StatusUnprocessableEntity},
		{"ErrInvalidCaseSubject", casedomain.ErrInvalidCaseSubject, http.StatusUnprocessableEntity},
		{"ErrInvalidStatusTransition", casedomain.ErrInvalidStatusTransition, http.StatusUnprocessableEntity},
		{"wrapped ErrCaseNotFound", fmt.Errorf("get case: %w", casedomain.ErrCaseNotFound), http.StatusNotFound},
		{"wrapped ErrMissingCustomer", fmt.Errorf("%w: no customer on case", casedomain.ErrMissingCustomer), http.StatusUnprocessableEntity},
		{"unknown error", errors.New("something unexpected"), http.StatusInternalServerError},
		{"store failure stays 500", fmt.Errorf("lookup active case: %w", errors.New("connection refused")), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			WriteError(w, tt.err)

			if w.Code != tt.wantStatus {
				t.Fatalf("expected status %d, got %d", tt.wantStatus, w.Code)
			}
		})
	}
}

func TestWriteError_BusinessRuleMessageVerbatim(t *testing.T) {
	w := httptest.NewRecorder()
	WriteError(w, casedomain.ErrActiveCaseExists)

	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("response body is not valid JSON: %v", err)
	}
	if body["error"] != "a given customer may not have more than one open case" {
		t.Fatalf("rejection message must reach the caller verbatim, got %q", body["error"])
	}
}

func TestWriteError_JSONBody(t *testing.T) {
	w := httptest.NewRecorder()
	WriteError(w, casedomain.ErrCaseNotFound)

	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("response body is not valid JSON: %v", err)
	}
	if _, ok := body["error"]; !ok {
		t.Fatal("response body missing 'error' key")
	}
}

func TestWriteError_ContentType(t *testing.T) {
	w := httptest.NewRecorder()
	WriteError(w, casedomain.ErrCaseNotFound)

	if ct := w.Header().Get("Content-Type"); ct == "" {
		t.Fatal("Content-Type header not set")
	}
}
