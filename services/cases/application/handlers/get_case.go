package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/ghuser/casedesk/pkg/auth"
	"github.com/ghuser/casedesk/pkg/errhttp"
	"github.com/ghuser/casedesk/pkg/httpx"
	appsvcs "github.com/ghuser/casedesk/services/cases/application/services"
)

// GetCaseHandler handles GET /cases/{id} requests.
type GetCaseHandler struct {
	svc *appsvcs.Services
}

// NewGetCaseHandler returns a GetCaseHandler backed by the given services.
func NewGetCaseHandler(svc *appsvcs.Services) *GetCaseHandler {
	return &GetCaseHandler{svc: svc}
}

// Execute fetches a single case by ID.
//
//	@Summary		Get case
//	@Description	Fetches a case by ID, scoped to the caller's organization
//	@Tags			cases
//	@Produce		json
//	@Param			id	path		string	true	"Case ID"
//	@Success		200	{object}	CaseResponse
//	@Failure		400	{object}	ErrorResponse
//	@Failure		401	{object}	ErrorResponse
//	@Failure		404	{object}	ErrorResponse
//	@Router			/cases/{id} [get]
func (h *GetCaseHandler) Execute(w http.ResponseWriter, r *http.Request) {
	orgID, err := auth.OrgIDFromCtx(r.Context())
	if err != nil {
		httpx.JSONError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "id must be a valid UUID")
		return
	}

	c, err := h.svc.Cases.GetByID(r.Context(), orgID, id)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, toCaseResponse(c))
}
