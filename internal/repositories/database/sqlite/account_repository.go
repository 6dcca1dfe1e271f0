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

// SQLiteAccountRepository persists accounts in the embedded store.
type SQLiteAccountRepository struct {
	BaseRepository
	bus *events.Bus
}

func newSQLiteAccountRepository(db *sql.DB, bus *events.Bus) portsrepo.AccountRepository {
	return &SQLiteAccountRepository{BaseRepository: BaseRepository{DB: db}, bus: bus}
}

var _ portsrepo.AccountRepository = (*SQLiteAccountRepository)(nil)

func toModelAccount(d domain.Account) models.Account {
	return models.Account{
		AccountID: d.AccountID,
		Name:      d.Name,
		AuditFields: models.AuditFields{
			CreatedAt:     d.CreatedAt,
			LastUpdatedAt: d.LastUpdatedAt,
		},
	}
}

func toDomainAccount(m models.Account) domain.Account {
	return domain.Account{
		AccountID: m.AccountID,
		Name:      m.Name,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			LastUpdatedAt: m.LastUpdatedAt,
		},
	}
}

// SaveAccount inserts a new account.
func (r *SQLiteAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	m := toModelAccount(account)

	query := `
		INSERT INTO accounts (account_id, name, created_at, last_updated_at)
		VALUES (?, ?, ?, ?);
	`
	_, err := r.DB.ExecContext(ctx, query, m.AccountID, m.Name, toMillis(m.CreatedAt), toMillis(m.LastUpdatedAt))
	if err != nil {
		return fmt.Errorf("failed to save account %s: %w", m.AccountID, err)
	}

	r.bus.Publish(events.Event{Kind: events.KindAccount, Op: events.OpCreate, IDs: []string{m.AccountID}})
	return nil
}

// FindAccountByID retrieves an account by its ID.
func (r *SQLiteAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	query := `
		SELECT account_id, name, created_at, last_updated_at
		FROM accounts
		WHERE account_id = ?;
	`
	var m models.Account
	var createdAt, updatedAt int64
	err := r.DB.QueryRowContext(ctx, query, accountID).Scan(&m.AccountID, &m.Name, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find account %s: %w", accountID, err)
	}
	m.CreatedAt = fromMillis(createdAt)
	m.LastUpdatedAt = fromMillis(updatedAt)

	account := toDomainAccount(m)
	return &account, nil
}

// ListAccounts returns all accounts ordered by name.
func (r *SQLiteAccountRepository) ListAccounts(ctx context.Context) ([]domain.Account, error) {
	query := `
		SELECT account_id, name, created_at, last_updated_at
		FROM accounts
		ORDER BY name ASC, account_id ASC;
	`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	defer rows.Close()

	accounts := []domain.Account{}
	for rows.Next() {
		var m models.Account
		var createdAt, updatedAt int64
		if err := rows.Scan(&m.AccountID, &m.Name, &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan account row: %w", err)
		}
		m.CreatedAt = fromMillis(createdAt)
		m.LastUpdatedAt = fromMillis(updatedAt)
		accounts = append(accounts, toDomainAccount(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate account rows: %w", err)
	}
	return accounts, nil
}

// UpdateAccount rewrites the mutable fields of an existing account.
func (r *SQLiteAccountRepository) UpdateAccount(ctx context.Context, account domain.Account) error {
	m := toModelAccount(account)

	query := `
		UPDATE accounts
		SET name = ?, last_updated_at = ?
		WHERE account_id = ?;
	`
	res, err := r.DB.ExecContext(ctx, query, m.Name, toMillis(m.LastUpdatedAt), m.AccountID)
	if err != nil {
		return fmt.Errorf("failed to update account %s: %w", m.AccountID, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected for account %s: %w", m.AccountID, err)
	}
	if affected == 0 {
		return apperrors.ErrNotFound
	}

	r.bus.Publish(events.Event{Kind: events.KindAccount, Op: events.OpUpdate, IDs: []string{m.AccountID}})
	return nil
}

// DeleteAccount removes the account unless transactions still reference it.
// The dependents check and the delete run in one store transaction.
func (r *SQLiteAccountRepository) DeleteAccount(ctx context.Context, accountID string) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(tx)

	var dependents int64
	err = tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM transactions WHERE account_id = ?;`, accountID).Scan(&dependents)
	if err != nil {
		return fmt.Errorf("failed to count dependent transactions for account %s: %w", accountID, err)
	}
	if dependents > 0 {
		return apperrors.NewHasDependentsError("account", accountID, dependents)
	}

	res, err := tx.ExecContext(ctx, `DELETE FROM accounts WHERE account_id = ?;`, accountID)
	if err != nil {
		return fmt.Errorf("failed to delete account %s: %w", accountID, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected for account %s: %w", accountID, err)
	}
	if affected == 0 {
		return apperrors.ErrNotFound
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit account delete: %w", err)
	}

	r.bus.Publish(events.Event{Kind: events.KindAccount, Op: events.OpDelete, IDs: []string{accountID}})
	return nil
}
