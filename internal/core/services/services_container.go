package services

import (
	portsrepo "github.com/finbook-app/finbook_backend/internal/core/ports/repositories"
	portssvc "github.com/finbook-app/finbook_backend/internal/core/ports/services"
	"github.com/finbook-app/finbook_backend/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// Company service first: it is the authorizer every other service depends on
	container.Company = NewCompanyService(repos.CompanyRepo)
	authorizer := container.Company.(portssvc.CompanyAuthorizerSvc)

	container.Account = NewAccountService(
		repos.AccountRepo,
		WithCompanyAuthorizer(authorizer),
	)

	container.Journal = NewJournalService(repos.JournalRepo, container.Account, authorizer)
	container.Reporting = NewReportingService(repos.LedgerRepo, WithReportingCompanyAuthorizer(authorizer))
	container.Auth = NewAuthService(cfg, repos.UserRepo)
	container.APIToken = NewAPITokenService(repos.APITokenRepo)

	return container
}
