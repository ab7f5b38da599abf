// Package errhttp maps domain sentinel errors to HTTP status codes.
// Add a case to mapErrorToStatus for each new domain sentinel error.
package errhttp

import (
	"errors"
	"net/http"

	"github.com/ghuser/casedesk/pkg/httpx"
	casedomain "github.com/ghuser/casedesk/services/cases/domain"
)

// WriteError maps err to an HTTP status code and writes a JSON error response.
// Uses errors.Is() so wrapped sentinel errors are matched correctly.
// Defaults to 500 Internal Server Error for unrecognized errors, including
// record-store failures, which must not be misreported as rule violations.
func WriteError(w http.ResponseWriter, err error) {
	httpx.JSONError(w, mapErrorToStatus(err), err.Error())
}

func mapErrorToStatus(err error) int {
	switch {
	case errors.Is(err, casedomain.ErrCaseNotFound):
		return http.StatusNotFound // 404
	case errors.Is(err, casedomain.ErrActiveCaseExists):
		return http.StatusConflict // 409
	case errors.Is(err, casedomain.ErrMissingCustomer):
		return http.StatusUnprocessableEntity // 422
	case errors.Is(err, casedomain.ErrInvalidCaseSubject):
		return http.StatusUnprocessableEntity // 422
	case errors.Is(err, casedomain.ErrInvalidStatusTransition):
		return http.StatusUnprocessableEntity // 422
	default:
		return http.StatusInternalServerError // 500
	}
}
