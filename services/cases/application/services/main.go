package services

import (
	"github.com/ghuser/casedesk/pkg/app"
	"github.com/ghuser/casedesk/pkg/cache"
	"github.com/ghuser/casedesk/services/cases/infrastructure/persistence/postgres"
)

// Services is the application-layer service container for this bounded context.
// It wires domain services with their infrastructure implementations.
type Services struct {
	Cases *CaseService
}

// New wires all case application services with infrastructure from the Application container.
func New(a *app.Application) *Services {
	repo := postgres.NewCaseRepository(a.Db, a.EventBus)
	caseCache := cache.NewCaseCache(a.Redis)
	return &Services{
		Cases: NewCaseService(repo, caseCache),
	}
}
