package dto

import (
	"time"

	"github.com/pocketfin/budget_tracker_app/internal/core/domain"
)

// CreateCategoryRequest defines the data needed to create a new category.
type CreateCategoryRequest struct {
	Name string                 `json:"name" binding:"required,notblank"`
	Kind domain.TransactionKind `json:"kind" binding:"required,oneof=income expense"`
}

// UpdateCategoryRequest defines the data allowed for updating a category.
type UpdateCategoryRequest struct {
	Name *string                 `json:"name" binding:"omitempty,notblank"`
	Kind *domain.TransactionKind `json:"kind" binding:"omitempty,oneof=income expense"`
}

// CategoryResponse defines the data returned for a category.
type CategoryResponse struct {
	CategoryID    string                 `json:"categoryID"`
	Name          string                 `json:"name"`
	Kind          domain.TransactionKind `json:"kind"`
	CreatedAt     time.Time              `json:"createdAt"`
	LastUpdatedAt time.Time              `json:"lastUpdatedAt"`
}

// ToCategoryResponse converts a domain.Category to CategoryResponse DTO.
func ToCategoryResponse(cat *domain.Category) CategoryResponse {
	return CategoryResponse{
		CategoryID:    cat.CategoryID,
		Name:          cat.Name,
		Kind:          cat.Kind,
		CreatedAt:     cat.CreatedAt,
		LastUpdatedAt: cat.LastUpdatedAt,
	}
}

// ToListCategoryResponse converts a slice of domain.Category to response DTOs.
func ToListCategoryResponse(categories []domain.Category) []CategoryResponse {
	res := make([]CategoryResponse, len(categories))
	for i, cat := range categories {
		res[i] = ToCategoryResponse(&cat)
	}
	return res
}

// ListCategoriesParams defines query parameters for listing categories.
type ListCategoriesParams struct {
	Kind string `form:"kind" binding:"omitempty,oneof=income expense"`
}

// ListCategoriesResponse wraps the list of categories.
type ListCategoriesResponse struct {
	Categories []CategoryResponse `json:"categories"`
}
