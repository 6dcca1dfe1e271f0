package services

import (
	"context"

	"github.com/pocketfin/budget_tracker_app/internal/core/domain"
	"github.com/pocketfin/budget_tracker_app/internal/dto"
)

// CategorySvc defines operations on categories.
type CategorySvc interface {
	// CreateCategory persists a new category.
	CreateCategory(ctx context.Context, req dto.CreateCategoryRequest) (*domain.Category, error)

	// GetCategoryByID retrieves a specific category by its unique identifier.
	GetCategoryByID(ctx context.Context, categoryID string) (*domain.Category, error)

	// ListCategories retrieves categories, restricted to kind when non-empty.
	ListCategories(ctx context.Context, kind domain.TransactionKind) ([]domain.Category, error)

	// UpdateCategory updates an existing category's details.
	UpdateCategory(ctx context.Context, categoryID string, req dto.UpdateCategoryRequest) (*domain.Category, error)

	// DeleteCategory removes a category. The delete is refused with
	// *apperrors.HasDependentsError while transactions reference the
	// category. Deleting a category that no longer exists is a no-op.
	DeleteCategory(ctx context.Context, categoryID string) error
}
