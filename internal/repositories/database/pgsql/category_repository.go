package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pocketfin/budget_tracker_app/internal/apperrors"
	"github.com/pocketfin/budget_tracker_app/internal/core/domain"
	"github.com/pocketfin/budget_tracker_app/internal/core/events"
	portsrepo "github.com/pocketfin/budget_tracker_app/internal/core/ports/repositories"
	"github.com/pocketfin/budget_tracker_app/internal/models"
)

// PgxCategoryRepository persists categories in PostgreSQL.
type PgxCategoryRepository struct {
	BaseRepository
	bus *events.Bus
}

func newPgxCategoryRepository(pool *pgxpool.Pool, bus *events.Bus) portsrepo.CategoryRepository {
	return &PgxCategoryRepository{BaseRepository: BaseRepository{Pool: pool}, bus: bus}
}

var _ portsrepo.CategoryRepository = (*PgxCategoryRepository)(nil)

func toModelCategory(d domain.Category) models.Category {
	return models.Category{
		CategoryID: d.CategoryID,
		Name:       d.Name,
		Kind:       string(d.Kind),
		AuditFields: models.AuditFields{
			CreatedAt:     d.CreatedAt,
			LastUpdatedAt: d.LastUpdatedAt,
		},
	}
}

func toDomainCategory(m models.Category) domain.Category {
	return domain.Category{
		CategoryID: m.CategoryID,
		Name:       m.Name,
		Kind:       domain.TransactionKind(m.Kind),
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			LastUpdatedAt: m.LastUpdatedAt,
		},
	}
}

// SaveCategory inserts a new category.
func (r *PgxCategoryRepository) SaveCategory(ctx context.Context, category domain.Category) error {
	m := toModelCategory(category)

	query := `
		INSERT INTO categories (category_id, name, kind, created_at, last_updated_at)
		VALUES ($1, $2, $3, $4, $5);
	`
	_, err := r.Pool.Exec(ctx, query, m.CategoryID, m.Name, m.Kind, m.CreatedAt, m.LastUpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to save category %s: %w", m.CategoryID, err)
	}

	r.bus.Publish(events.Event{Kind: events.KindCategory, Op: events.OpCreate, IDs: []string{m.CategoryID}})
	return nil
}

// FindCategoryByID retrieves a category by its ID.
func (r *PgxCategoryRepository) FindCategoryByID(ctx context.Context, categoryID string) (*domain.Category, error) {
	query := `
		SELECT category_id, name, kind, created_at, last_updated_at
		FROM categories
		WHERE category_id = $1;
	`
	var m models.Category
	err := r.Pool.QueryRow(ctx, query, categoryID).Scan(&m.CategoryID, &m.Name, &m.Kind, &m.CreatedAt, &m.LastUpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find category %s: %w", categoryID, err)
	}

	category := toDomainCategory(m)
	return &category, nil
}

// ListCategories returns categories ordered by name, optionally restricted to
// one kind.
func (r *PgxCategoryRepository) ListCategories(ctx context.Context, kind domain.TransactionKind) ([]domain.Category, error) {
	query := `
		SELECT category_id, name, kind, created_at, last_updated_at
		FROM categories
	`
	args := []any{}
	if kind != "" {
		query += ` WHERE kind = $1`
		args = append(args, string(kind))
	}
	query += ` ORDER BY name ASC, category_id ASC;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	defer rows.Close()

	modelCategories, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Category, error) {
		var m models.Category
		err := row.Scan(&m.CategoryID, &m.Name, &m.Kind, &m.CreatedAt, &m.LastUpdatedAt)
		return m, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan categories: %w", err)
	}

	categories := make([]domain.Category, 0, len(modelCategories))
	for _, m := range modelCategories {
		categories = append(categories, toDomainCategory(m))
	}
	return categories, nil
}

// UpdateCategory rewrites the mutable fields of an existing category.
func (r *PgxCategoryRepository) UpdateCategory(ctx context.Context, category domain.Category) error {
	m := toModelCategory(category)

	query := `
		UPDATE categories
		SET name = $1, kind = $2, last_updated_at = $3
		WHERE category_id = $4;
	`
	tag, err := r.Pool.Exec(ctx, query, m.Name, m.Kind, m.LastUpdatedAt, m.CategoryID)
	if err != nil {
		return fmt.Errorf("failed to update category %s: %w", m.CategoryID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	r.bus.Publish(events.Event{Kind: events.KindCategory, Op: events.OpUpdate, IDs: []string{m.CategoryID}})
	return nil
}

// DeleteCategory removes the category unless transactions still reference it.
// The dependents check and the delete run in one store transaction.
func (r *PgxCategoryRepository) DeleteCategory(ctx context.Context, categoryID string) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	var dependents int64
	err = tx.QueryRow(ctx, `SELECT COUNT(*) FROM transactions WHERE category_id = $1;`, categoryID).Scan(&dependents)
	if err != nil {
		return fmt.Errorf("failed to count dependent transactions for category %s: %w", categoryID, err)
	}
	if dependents > 0 {
		return apperrors.NewHasDependentsError("category", categoryID, dependents)
	}

	tag, err := tx.Exec(ctx, `DELETE FROM categories WHERE category_id = $1;`, categoryID)
	if err != nil {
		return fmt.Errorf("failed to delete category %s: %w", categoryID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit category delete: %w", err)
	}

	r.bus.Publish(events.Event{Kind: events.KindCategory, Op: events.OpDelete, IDs: []string{categoryID}})
	return nil
}
