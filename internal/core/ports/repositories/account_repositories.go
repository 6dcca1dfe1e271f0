package repositories

import (
	"context"

	"github.com/pocketfin/budget_tracker_app/internal/core/domain"
)

// AccountRepository defines persistence operations for accounts.
type AccountRepository interface {
	// SaveAccount inserts a new account.
	SaveAccount(ctx context.Context, account domain.Account) error
	// FindAccountByID retrieves an account, or apperrors.ErrNotFound.
	FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error)
	// ListAccounts returns all accounts ordered by name.
	ListAccounts(ctx context.Context) ([]domain.Account, error)
	// UpdateAccount rewrites the mutable fields of an existing account.
	// Returns apperrors.ErrNotFound when the account no longer exists.
	UpdateAccount(ctx context.Context, account domain.Account) error
	// DeleteAccount removes the account. It refuses with
	// *apperrors.HasDependentsError while transactions reference the account,
	// and returns apperrors.ErrNotFound when it does not exist. The dependents
	// check and the delete run in one store transaction.
	DeleteAccount(ctx context.Context, accountID string) error
}
