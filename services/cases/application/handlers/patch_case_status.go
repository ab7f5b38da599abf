package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/ghuser/casedesk/pkg/auth"
	"github.com/ghuser/casedesk/pkg/errhttp"
	"github.com/ghuser/casedesk/pkg/httpx"
	pkgvalidator "github.com/ghuser/casedesk/pkg/validator"
	appsvcs "github.com/ghuser/casedesk/services/cases/application/services"
	"github.com/ghuser/casedesk/services/cases/domain/models"
)

// TransitionCaseRequest is the request body for PATCH /cases/{id}/status.
type TransitionCaseRequest struct {
	Status string `json:"status" validate:"required,oneof=resolved cancelled closed" example:"resolved"`
} // @name TransitionCaseRequest

// PatchCaseStatusHandler handles PATCH /cases/{id}/status requests.
type PatchCaseStatusHandler struct {
	svc *appsvcs.Services
}

// NewPatchCaseStatusHandler returns a PatchCaseStatusHandler backed by the given services.
func NewPatchCaseStatusHandler(svc *appsvcs.Services) *PatchCaseStatusHandler {
	return &PatchCaseStatusHandler{svc: svc}
}

// Execute moves a case through its lifecycle. Once a case leaves the active
// status, the customer is free to open a new one.
//
//	@Summary		Transition case status
//	@Description	Moves a case to resolved, cancelled, or closed
//	@Tags			cases
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string					true	"Case ID"
//	@Param			request	body		TransitionCaseRequest	true	"Target status"
//	@Success		200		{object}	CaseResponse
//	@Failure		400		{object}	ErrorResponse
//	@Failure		401		{object}	ErrorResponse
//	@Failure		404		{object}	ErrorResponse
//	@Failure		422		{object}	ErrorResponse
//	@Router			/cases/{id}/status [patch]
func (h *PatchCaseStatusHandler) Execute(w http.ResponseWriter, r *http.Request) {
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

	req, ok := pkgvalidator.ValidateRequest[TransitionCaseRequest](w, r)
	if !ok {
		return
	}

	status, err := models.ParseStatus(req.Status)
	if err != nil {
		httpx.JSONError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	c, err := h.svc.Cases.Transition(r.Context(), orgID, id, status)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, toCaseResponse(c))
}
