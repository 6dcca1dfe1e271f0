package sqlite

import (
	"database/sql"

	"github.com/pocketfin/budget_tracker_app/internal/core/events"
	portsrepo "github.com/pocketfin/budget_tracker_app/internal/core/ports/repositories"
)

// NewRepositoryProvider wires the sqlite-backed repositories over one shared
// connection and change bus.
func NewRepositoryProvider(db *sql.DB, bus *events.Bus) *portsrepo.RepositoryProvider {
	return &portsrepo.RepositoryProvider{
		AccountRepo:     newSQLiteAccountRepository(db, bus),
		CategoryRepo:    newSQLiteCategoryRepository(db, bus),
		TransactionRepo: newSQLiteTransactionRepository(db, bus),
	}
}
