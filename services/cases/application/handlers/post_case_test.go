package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/ghuser/casedesk/pkg/auth"
	appsvcs "github.com/ghuser/casedesk/services/cases/application/services"
	casedomain "github.com/ghuser/casedesk/services/cases/domain"
	"github.com/ghuser/casedesk/services/cases/domain/models"
	"github.com/ghuser/casedesk/services/cases/domain/repositories"
)

// stubRepo satisfies repositories.CaseRepository for handler tests.
type stubRepo struct {
	hasActive bool
	lookupErr error
	saved     []*models.Case
}

func (s *stubRepo) Save(ctx context.Context, c *models.Case) error {
	s.saved = append(s.saved, c)
	return nil
}

func (s *stubRepo) GetByID(ctx context.Context, orgID, id uuid.UUID) (*models.Case, error) {
	return nil, casedomain.ErrCaseNotFound
}

func (s *stubRepo) FindByOrgID(ctx context.Context, orgID uuid.UUID, opts repositories.QueryOpts) ([]*models.Case, int, error) {
	return nil, 0, nil
}

func (s *stubRepo) FindByCustomer(ctx context.Context, orgID, customerID uuid.UUID, opts repositories.QueryOpts) ([]*models.Case, int, error) {
	return nil, 0, nil
}

func (s *stubRepo) UpdateStatus(ctx context.Context, c *models.Case) error {
	return casedomain.ErrCaseNotFound
}

func (s *stubRepo) HasActiveCase(ctx context.Context, orgID, customerID uuid.UUID) (bool, error) {
	return s.hasActive, s.lookupErr
}

func newHandler(repo repositories.CaseRepository) *PostCaseHandler {
	return NewPostCaseHandler(&appsvcs.Services{
		Cases: appsvcs.NewCaseService(repo, nil),
	})
}

func postCase(t *testing.T, h *PostCaseHandler, body string, orgID uuid.UUID) *httptest.ResponseRecorder {
	t.Helper()
	r := httptest.NewRequest(http.MethodPost, "/cases", strings.NewReader(body))
	r.Header.Set("Content-Type", "application/json")
	if orgID != uuid.Nil {
		r = r.WithContext(auth.WithOrgID(r.Context(), orgID))
	}
	w := httptest.NewRecorder()
	h.Execute(w, r)
	return w
}

func TestPostCase_Created(t *testing.T) {
	repo := &stubRepo{}
	h := newHandler(repo)
	orgID := uuid.New()

	body := `{"customer_kind":"organization","customer_id":"6ba7b810-9dad-11d1-80b4-00c04fd430c8","subject":"Printer on fire"}`
	w := postCase(t, h, body, orgID)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	var resp CaseResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid JSON response: %v", err)
	}
	if resp.Status != "active" {
		t.Fatalf("expected active status, got %q", resp.Status)
	}
	if resp.OrgID != orgID {
		t.Fatalf("expected org %s, got %s", orgID, resp.OrgID)
	}
	if len(repo.saved) != 1 {
		t.Fatalf("expected one saved case, got %d", len(repo.saved))
	}
}

func TestPostCase_Unauthenticated(t *testing.T) {
	h := newHandler(&stubRepo{})

	body := `{"customer_kind":"individual","customer_id":"6ba7b810-9dad-11d1-80b4-00c04fd430c8","subject":"Subject"}`
	w := postCase(t, h, body, uuid.Nil)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestPostCase_ActiveCaseConflict(t *testing.T) {
	repo := &stubRepo{hasActive: true}
	h := newHandler(repo)

	body := `{"customer_kind":"individual","customer_id":"6ba7b810-9dad-11d1-80b4-00c04fd430c8","subject":"Second complaint"}`
	w := postCase(t, h, body, uuid.New())

	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d: %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), "a given customer may not have more than one open case") {
		t.Fatalf("expected verbatim rejection message, got: %s", w.Body.String())
	}
	if len(repo.saved) != 0 {
		t.Fatal("nothing may be saved on rejection")
	}
}

func TestPostCase_ValidationFailures(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"missing customer_kind", `{"customer_id":"6ba7b810-9dad-11d1-80b4-00c04fd430c8","subject":"s"}`},
		{"unknown customer_kind", `{"customer_kind":"partnership","customer_id":"6ba7b810-9dad-11d1-80b4-00c04fd430c8","subject":"s"}`},
		{"missing customer_id", `{"customer_kind":"organization","subject":"s"}`},
		{"malformed customer_id", `{"customer_kind":"organization","customer_id":"not-a-uuid","subject":"s"}`},
		{"missing subject", `{"customer_kind":"organization","customer_id":"6ba7b810-9dad-11d1-80b4-00c04fd430c8"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &stubRepo{}
			w := postCase(t, newHandler(repo), tt.body, uuid.New())

			if w.Code != http.StatusUnprocessableEntity {
				t.Fatalf("expected 422, got %d: %s", w.Code, w.Body.String())
			}
			if len(repo.saved) != 0 {
				t.Fatal("nothing may be saved on validation failure")
			}
		})
	}
}

func TestPostCase_StoreFailureIsNot409(t *testing.T) {
	repo := &stubRepo{lookupErr: context.DeadlineExceeded}
	w := postCase(t, newHandler(repo), `{"customer_kind":"organization","customer_id":"6ba7b810-9dad-11d1-80b4-00c04fd430c8","subject":"s"}`, uuid.New())

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("store failure must surface as 500, got %d", w.Code)
	}
}
