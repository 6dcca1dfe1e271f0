package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pocketfin/budget_tracker_app/internal/core/events"
	portsrepo "github.com/pocketfin/budget_tracker_app/internal/core/ports/repositories"
)

// NewRepositoryProvider wires the pgsql-backed repositories over one shared
// pool and change bus.
func NewRepositoryProvider(pool *pgxpool.Pool, bus *events.Bus) *portsrepo.RepositoryProvider {
	return &portsrepo.RepositoryProvider{
		AccountRepo:     newPgxAccountRepository(pool, bus),
		CategoryRepo:    newPgxCategoryRepository(pool, bus),
		TransactionRepo: newPgxTransactionRepository(pool, bus),
	}
}
