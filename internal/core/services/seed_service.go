package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/pocketfin/budget_tracker_app/internal/core/domain"
	portssvc "github.com/pocketfin/budget_tracker_app/internal/core/ports/services"
	"github.com/pocketfin/budget_tracker_app/internal/dto"
)

// defaultCategories are created on first run so a fresh store is usable
// without any setup.
var defaultCategories = []dto.CreateCategoryRequest{
	{Name: "Groceries", Kind: domain.Expense},
	{Name: "Bills", Kind: domain.Expense},
	{Name: "Transportation", Kind: domain.Expense},
	{Name: "Entertainment", Kind: domain.Expense},
	{Name: "Miscellaneous", Kind: domain.Expense},
	{Name: "Salary", Kind: domain.Income},
	{Name: "Investments", Kind: domain.Income},
	{Name: "Freelance", Kind: domain.Income},
}

const defaultAccountName = "Main Account"

// EnsureDefaultData seeds the default categories and account when the store
// holds none. A store with any existing account or category is left alone.
func EnsureDefaultData(ctx context.Context, svc *portssvc.ServiceContainer, logger *slog.Logger) error {
	accounts, err := svc.Account.ListAccounts(ctx)
	if err != nil {
		return fmt.Errorf("failed to inspect accounts for seeding: %w", err)
	}
	categories, err := svc.Category.ListCategories(ctx, "")
	if err != nil {
		return fmt.Errorf("failed to inspect categories for seeding: %w", err)
	}
	if len(accounts) > 0 || len(categories) > 0 {
		return nil
	}

	for _, req := range defaultCategories {
		if _, err := svc.Category.CreateCategory(ctx, req); err != nil {
			return fmt.Errorf("failed to seed category %q: %w", req.Name, err)
		}
	}
	if _, err := svc.Account.CreateAccount(ctx, dto.CreateAccountRequest{Name: defaultAccountName}); err != nil {
		return fmt.Errorf("failed to seed default account: %w", err)
	}

	logger.Info("Seeded default data",
		slog.Int("categories", len(defaultCategories)),
		slog.String("account", defaultAccountName))
	return nil
}
