package services

import (
	"context"

	"github.com/pocketfin/budget_tracker_app/internal/core/domain"
	"github.com/pocketfin/budget_tracker_app/internal/dto"
)

// AccountSvc defines operations on accounts.
type AccountSvc interface {
	// CreateAccount persists a new account.
	CreateAccount(ctx context.Context, req dto.CreateAccountRequest) (*domain.Account, error)

	// GetAccountByID retrieves a specific account by its unique identifier.
	GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// ListAccounts retrieves all accounts.
	ListAccounts(ctx context.Context) ([]domain.Account, error)

	// UpdateAccount updates an existing account's details.
	UpdateAccount(ctx context.Context, accountID string, req dto.UpdateAccountRequest) (*domain.Account, error)

	// DeleteAccount removes an account. The delete is refused with
	// *apperrors.HasDependentsError while transactions reference the account.
	// Deleting an account that no longer exists is a no-op.
	DeleteAccount(ctx context.Context, accountID string) error
}
