package handlers

import (
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/ghuser/casedesk/pkg/auth"
	"github.com/ghuser/casedesk/pkg/errhttp"
	"github.com/ghuser/casedesk/pkg/httpx"
	appsvcs "github.com/ghuser/casedesk/services/cases/application/services"
	"github.com/ghuser/casedesk/services/cases/domain/models"
	"github.com/ghuser/casedesk/services/cases/domain/repositories"
)

const (
	defaultPageLimit = 20
	maxPageLimit     = 100
)

// ListCasesResponse is the paginated list envelope.
type ListCasesResponse struct {
	Cases []CaseResponse `json:"cases"`
	Total int            `json:"total" example:"42"`
} // @name ListCasesResponse

// ListCasesHandler handles GET /cases requests.
type ListCasesHandler struct {
	svc *appsvcs.Services
}

// NewListCasesHandler returns a ListCasesHandler backed by the given services.
func NewListCasesHandler(svc *appsvcs.Services) *ListCasesHandler {
	return &ListCasesHandler{svc: svc}
}

// Execute lists cases for the caller's org, optionally filtered to one
// customer identity via ?customer_id=.
//
//	@Summary		List cases
//	@Description	Lists cases for the caller's organization, newest first
//	@Tags			cases
//	@Produce		json
//	@Param			customer_id	query		string	false	"Filter by customer identity"
//	@Param			limit		query		int		false	"Page size (max 100)"
//	@Param			offset		query		int		false	"Page offset"
//	@Success		200			{object}	ListCasesResponse
//	@Failure		400			{object}	ErrorResponse
//	@Failure		401			{object}	ErrorResponse
//	@Router			/cases [get]
func (h *ListCasesHandler) Execute(w http.ResponseWriter, r *http.Request) {
	orgID, err := auth.OrgIDFromCtx(r.Context())
	if err != nil {
		httpx.JSONError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	opts := parseQueryOpts(r)

	var (
		cases []*models.Case
		total int
	)
	if rawCustomer := r.URL.Query().Get("customer_id"); rawCustomer != "" {
		customerID, err := uuid.Parse(rawCustomer)
		if err != nil {
			httpx.JSONError(w, http.StatusBadRequest, "customer_id must be a valid UUID")
			return
		}
		cases, total, err = h.svc.Cases.ListByCustomer(r.Context(), orgID, customerID, opts)
		if err != nil {
			errhttp.WriteError(w, err)
			return
		}
	} else {
		cases, total, err = h.svc.Cases.List(r.Context(), orgID, opts)
		if err != nil {
			errhttp.WriteError(w, err)
			return
		}
	}

	resp := ListCasesResponse{Cases: make([]CaseResponse, len(cases)), Total: total}
	for i, c := range cases {
		resp.Cases[i] = toCaseResponse(c)
	}
	httpx.JSON(w, http.StatusOK, resp)
}

// parseQueryOpts reads limit/offset query params with clamped defaults.
func parseQueryOpts(r *http.Request) repositories.QueryOpts {
	opts := repositories.QueryOpts{Limit: defaultPageLimit}
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			opts.Limit = min(n, maxPageLimit)
		}
	}
	if raw := r.URL.Query().Get("offset"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n >= 0 {
			opts.Offset = n
		}
	}
	return opts
}
