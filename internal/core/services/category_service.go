package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pocketfin/budget_tracker_app/internal/apperrors"
	"github.com/pocketfin/budget_tracker_app/internal/core/domain"
	portsrepo "github.com/pocketfin/budget_tracker_app/internal/core/ports/repositories"
	portssvc "github.com/pocketfin/budget_tracker_app/internal/core/ports/services"
	"github.com/pocketfin/budget_tracker_app/internal/dto"
)

// categoryService implements the CategorySvc interface.
type categoryService struct {
	BaseService
	categoryRepo portsrepo.CategoryRepository
}

// NewCategoryService creates a new category service.
func NewCategoryService(repo portsrepo.CategoryRepository) portssvc.CategorySvc {
	return &categoryService{categoryRepo: repo}
}

var _ portssvc.CategorySvc = (*categoryService)(nil)

func (s *categoryService) CreateCategory(ctx context.Context, req dto.CreateCategoryRequest) (*domain.Category, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: category name cannot be empty", apperrors.ErrValidation)
	}
	if !req.Kind.Valid() {
		return nil, fmt.Errorf("%w: category kind must be income or expense", apperrors.ErrValidation)
	}

	now := time.Now()
	category := domain.Category{
		CategoryID: uuid.NewString(),
		Name:       name,
		Kind:       req.Kind,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}

	if err := s.categoryRepo.SaveCategory(ctx, category); err != nil {
		s.LogError(ctx, err, "Failed to save category in repository", slog.String("category_id", category.CategoryID))
		return nil, err
	}

	s.LogInfo(ctx, "Category created",
		slog.String("category_id", category.CategoryID),
		slog.String("name", category.Name),
		slog.String("kind", string(category.Kind)))
	return &category, nil
}

func (s *categoryService) GetCategoryByID(ctx context.Context, categoryID string) (*domain.Category, error) {
	category, err := s.categoryRepo.FindCategoryByID(ctx, categoryID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find category by ID in repository", slog.String("category_id", categoryID))
		}
		return nil, err
	}
	return category, nil
}

func (s *categoryService) ListCategories(ctx context.Context, kind domain.TransactionKind) ([]domain.Category, error) {
	if kind != "" && !kind.Valid() {
		return nil, fmt.Errorf("%w: unknown category kind %q", apperrors.ErrValidation, kind)
	}
	categories, err := s.categoryRepo.ListCategories(ctx, kind)
	if err != nil {
		s.LogError(ctx, err, "Failed to list categories from repository", slog.String("kind", string(kind)))
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	if categories == nil {
		categories = []domain.Category{}
	}
	return categories, nil
}

func (s *categoryService) UpdateCategory(ctx context.Context, categoryID string, req dto.UpdateCategoryRequest) (*domain.Category, error) {
	category, err := s.categoryRepo.FindCategoryByID(ctx, categoryID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: category name cannot be empty", apperrors.ErrValidation)
		}
		category.Name = name
	}
	if req.Kind != nil {
		if !req.Kind.Valid() {
			return nil, fmt.Errorf("%w: category kind must be income or expense", apperrors.ErrValidation)
		}
		category.Kind = *req.Kind
	}
	category.LastUpdatedAt = time.Now()

	if err := s.categoryRepo.UpdateCategory(ctx, *category); err != nil {
		s.LogError(ctx, err, "Failed to update category in repository", slog.String("category_id", categoryID))
		return nil, err
	}

	s.LogInfo(ctx, "Category updated", slog.String("category_id", categoryID))
	return category, nil
}

// DeleteCategory removes a category unless transactions still reference it.
// The repository refuses with *apperrors.HasDependentsError in that case; a
// category that is already gone is a no-op.
func (s *categoryService) DeleteCategory(ctx context.Context, categoryID string) error {
	err := s.categoryRepo.DeleteCategory(ctx, categoryID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			s.LogDebug(ctx, "Category already deleted", slog.String("category_id", categoryID))
			return nil
		}
		var depErr *apperrors.HasDependentsError
		if errors.As(err, &depErr) {
			s.LogInfo(ctx, "Category delete refused, dependents exist",
				slog.String("category_id", categoryID),
				slog.Int64("dependent_count", depErr.Count))
			return err
		}
		s.LogError(ctx, err, "Failed to delete category in repository", slog.String("category_id", categoryID))
		return err
	}

	s.LogInfo(ctx, "Category deleted", slog.String("category_id", categoryID))
	return nil
}
