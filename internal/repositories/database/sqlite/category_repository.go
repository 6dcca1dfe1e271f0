package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/pocketfin/budget_tracker_app/internal/apperrors"
	"github.com/pocketfin/budget_tracker_app/internal/core/domain"
	"github.com/pocketfin/budget_tracker_app/internal/core/events"
	portsrepo "github.com/pocketfin/budget_tracker_app/internal/core/ports/repositories"
	"github.com/pocketfin/budget_tracker_app/internal/models"
)

// SQLiteCategoryRepository persists categories in the embedded store.
type SQLiteCategoryRepository struct {
	BaseRepository
	bus *events.Bus
}

func newSQLiteCategoryRepository(db *sql.DB, bus *events.Bus) portsrepo.CategoryRepository {
	return &SQLiteCategoryRepository{BaseRepository: BaseRepository{DB: db}, bus: bus}
}

var _ portsrepo.CategoryRepository = (*SQLiteCategoryRepository)(nil)

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
func (r *SQLiteCategoryRepository) SaveCategory(ctx context.Context, category domain.Category) error {
	m := toModelCategory(category)

	query := `
		INSERT INTO categories (category_id, name, kind, created_at, last_updated_at)
		VALUES (?, ?, ?, ?, ?);
	`
	_, err := r.DB.ExecContext(ctx, query, m.CategoryID, m.Name, m.Kind, toMillis(m.CreatedAt), toMillis(m.LastUpdatedAt))
	if err != nil {
		return fmt.Errorf("failed to save category %s: %w", m.CategoryID, err)
	}

	r.bus.Publish(events.Event{Kind: events.KindCategory, Op: events.OpCreate, IDs: []string{m.CategoryID}})
	return nil
}

// FindCategoryByID retrieves a category by its ID.
func (r *SQLiteCategoryRepository) FindCategoryByID(ctx context.Context, categoryID string) (*domain.Category, error) {
	query := `
		SELECT category_id, name, kind, created_at, last_updated_at
		FROM categories
		WHERE category_id = ?;
	`
	var m models.Category
	var createdAt, updatedAt int64
	err := r.DB.QueryRowContext(ctx, query, categoryID).Scan(&m.CategoryID, &m.Name, &m.Kind, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find category %s: %w", categoryID, err)
	}
	m.CreatedAt = fromMillis(createdAt)
	m.LastUpdatedAt = fromMillis(updatedAt)

	category := toDomainCategory(m)
	return &category, nil
}

// ListCategories returns categories ordered by name, optionally restricted to
// one kind.
func (r *SQLiteCategoryRepository) ListCategories(ctx context.Context, kind domain.TransactionKind) ([]domain.Category, error) {
	query := `
		SELECT category_id, name, kind, created_at, last_updated_at
		FROM categories
	`
	args := []any{}
	if kind != "" {
		query += ` WHERE kind = ?`
		args = append(args, string(kind))
	}
	query += ` ORDER BY name ASC, category_id ASC;`

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	defer rows.Close()

	categories := []domain.Category{}
	for rows.Next() {
		var m models.Category
		var createdAt, updatedAt int64
		if err := rows.Scan(&m.CategoryID, &m.Name, &m.Kind, &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan category row: %w", err)
		}
		m.CreatedAt = fromMillis(createdAt)
		m.LastUpdatedAt = fromMillis(updatedAt)
		categories = append(categories, toDomainCategory(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate category rows: %w", err)
	}
	return categories, nil
}

// UpdateCategory rewrites the mutable fields of an existing category.
func (r *SQLiteCategoryRepository) UpdateCategory(ctx context.Context, category domain.Category) error {
	m := toModelCategory(category)

	query := `
		UPDATE categories
		SET name = ?, kind = ?, last_updated_at = ?
		WHERE category_id = ?;
	`
	res, err := r.DB.ExecContext(ctx, query, m.Name, m.Kind, toMillis(m.LastUpdatedAt), m.CategoryID)
	if err != nil {
		return fmt.Errorf("failed to update category %s: %w", m.CategoryID, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected for category %s: %w", m.CategoryID, err)
	}
	if affected == 0 {
		return apperrors.ErrNotFound
	}

	r.bus.Publish(events.Event{Kind: events.KindCategory, Op: events.OpUpdate, IDs: []string{m.CategoryID}})
	return nil
}

// DeleteCategory removes the category unless transactions still reference it.
// The dependents check and the delete run in one store transaction.
func (r *SQLiteCategoryRepository) DeleteCategory(ctx context.Context, categoryID string) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(tx)

	var dependents int64
	err = tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM transactions WHERE category_id = ?;`, categoryID).Scan(&dependents)
	if err != nil {
		return fmt.Errorf("failed to count dependent transactions for category %s: %w", categoryID, err)
	}
	if dependents > 0 {
		return apperrors.NewHasDependentsError("category", categoryID, dependents)
	}

	res, err := tx.ExecContext(ctx, `DELETE FROM categories WHERE category_id = ?;`, categoryID)
	if err != nil {
		return fmt.Errorf("failed to delete category %s: %w", categoryID, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected for category %s: %w", categoryID, err)
	}
	if affected == 0 {
		return apperrors.ErrNotFound
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit category delete: %w", err)
	}

	r.bus.Publish(events.Event{Kind: events.KindCategory, Op: events.OpDelete, IDs: []string{categoryID}})
	return nil
}
