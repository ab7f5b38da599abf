package api

import (
	"github.com/go-chi/chi/v5"

	"github.com/ghuser/casedesk/pkg/app"
	"github.com/ghuser/casedesk/services/cases/application/handlers"
	appsvcs "github.com/ghuser/casedesk/services/cases/application/services"
)

// CaseRoutes registers case endpoints on the provided chi router.
func CaseRoutes(r chi.Router, a *app.Application) {
	svcs := appsvcs.New(a)
	r.Group(func(r chi.Router) {
		r.Route("/cases", func(r chi.Router) {
			r.Post("/", handlers.NewPostCaseHandler(svcs).Execute)
			r.Get("/", handlers.NewListCasesHandler(svcs).Execute)
			r.Get("/{id}", handlers.NewGetCaseHandler(svcs).Execute)
			r.Patch("/{id}/status", handlers.NewPatchCaseStatusHandler(svcs).Execute)
		})
	})
}
