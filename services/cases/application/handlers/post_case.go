package handlers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/ghuser/casedesk/pkg/auth"
	"github.com/ghuser/casedesk/pkg/errhttp"
	"github.com/ghuser/casedesk/pkg/httpx"
	pkgvalidator "github.com/ghuser/casedesk/pkg/validator"
	appsvcs "github.com/ghuser/casedesk/services/cases/application/services"
	"github.com/ghuser/casedesk/services/cases/domain/models"
)

// OpenCaseRequest is the request body for POST /cases.
type OpenCaseRequest struct {
	CustomerKind string `json:"customer_kind" validate:"required,oneof=organization individual" example:"organization"`
	CustomerID   string `json:"customer_id"   validate:"required,uuid"                          example:"6ba7b810-9dad-11d1-80b4-00c04fd430c8"`
	Subject      string `json:"subject"       validate:"required,min=1,max=255"                 example:"Printer on fire"`
} // @name OpenCaseRequest

// PostCaseHandler handles POST /cases requests.
type PostCaseHandler struct {
	svc *appsvcs.Services
}

// NewPostCaseHandler returns a PostCaseHandler backed by the given services.
func NewPostCaseHandler(svc *appsvcs.Services) *PostCaseHandler {
	return &PostCaseHandler{svc: svc}
}

// Execute opens a new case for a customer. The request is rejected with 409
// when the customer already has an open case.
//
//	@Summary		Open case
//	@Description	Opens a new case for an organization or individual customer
//	@Tags			cases
//	@Accept			json
//	@Produce		json
//	@Param			request	body		OpenCaseRequest	true	"Case creation request"
//	@Success		201		{object}	CaseResponse
//	@Failure		400		{object}	ErrorResponse
//	@Failure		401		{object}	ErrorResponse
//	@Failure		409		{object}	ErrorResponse
//	@Failure		422		{object}	ErrorResponse
//	@Router			/cases [post]
func (h *PostCaseHandler) Execute(w http.ResponseWriter, r *http.Request) {
	orgID, err := auth.OrgIDFromCtx(r.Context())
	if err != nil {
		httpx.JSONError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	req, ok := pkgvalidator.ValidateRequest[OpenCaseRequest](w, r)
	if !ok {
		return
	}

	kind, err := models.ParseCustomerKind(req.CustomerKind)
	if err != nil {
		httpx.JSONError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	customerID, err := uuid.Parse(req.CustomerID)
	if err != nil {
		httpx.JSONError(w, http.StatusUnprocessableEntity, "customer_id must be a valid UUID")
		return
	}
	customer, err := models.NewCustomerRef(kind, customerID)
	if err != nil {
		httpx.JSONError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	c, err := h.svc.Cases.Open(r.Context(), orgID, customer, req.Subject)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	httpx.JSON(w, http.StatusCreated, toCaseResponse(c))
}
