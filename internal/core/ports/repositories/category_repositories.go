package repositories

import (
	"context"

	"github.com/pocketfin/budget_tracker_app/internal/core/domain"
)

// CategoryRepository defines persistence operations for categories.
type CategoryRepository interface {
	// SaveCategory inserts a new category.
	SaveCategory(ctx context.Context, category domain.Category) error
	// FindCategoryByID retrieves a category, or apperrors.ErrNotFound.
	FindCategoryByID(ctx context.Context, categoryID string) (*domain.Category, error)
	// ListCategories returns categories ordered by name, restricted to the
	// given kind when it is non-empty.
	ListCategories(ctx context.Context, kind domain.TransactionKind) ([]domain.Category, error)
	// UpdateCategory rewrites the mutable fields of an existing category.
	// Returns apperrors.ErrNotFound when the category no longer exists.
	UpdateCategory(ctx context.Context, category domain.Category) error
	// DeleteCategory removes the category. It refuses with
	// *apperrors.HasDependentsError while transactions reference the
	// category, and returns apperrors.ErrNotFound when it does not exist.
	// The dependents check and the delete run in one store transaction.
	DeleteCategory(ctx context.Context, categoryID string) error
}
