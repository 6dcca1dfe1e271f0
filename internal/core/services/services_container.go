package services

import (
	"github.com/pocketfin/budget_tracker_app/internal/core/events"
	portsrepo "github.com/pocketfin/budget_tracker_app/internal/core/ports/repositories"
	portssvc "github.com/pocketfin/budget_tracker_app/internal/core/ports/services"
)

// NewServiceContainer wires all services over one repository provider and
// change bus.
func NewServiceContainer(repos portsrepo.RepositoryProvider, bus *events.Bus) *portssvc.ServiceContainer {
	return &portssvc.ServiceContainer{
		Account:     NewAccountService(repos.AccountRepo),
		Category:    NewCategoryService(repos.CategoryRepo),
		Transaction: NewTransactionService(repos.TransactionRepo, repos.AccountRepo, repos.CategoryRepo),
		Summary:     NewSummaryService(repos.TransactionRepo, bus),
	}
}
