package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pocketfin/budget_tracker_app/internal/apperrors"
	"github.com/pocketfin/budget_tracker_app/internal/core/domain"
	"github.com/pocketfin/budget_tracker_app/internal/core/events"
	portsrepo "github.com/pocketfin/budget_tracker_app/internal/core/ports/repositories"
	"github.com/pocketfin/budget_tracker_app/internal/models"
)

// PgxTransactionRepository persists transactions in PostgreSQL.
type PgxTransactionRepository struct {
	BaseRepository
	bus *events.Bus
}

func newPgxTransactionRepository(pool *pgxpool.Pool, bus *events.Bus) portsrepo.TransactionRepository {
	return &PgxTransactionRepository{BaseRepository: BaseRepository{Pool: pool}, bus: bus}
}

var _ portsrepo.TransactionRepository = (*PgxTransactionRepository)(nil)

func toModelTransaction(d domain.Transaction) models.Transaction {
	return models.Transaction{
		TransactionID:      d.TransactionID,
		Kind:               string(d.Kind),
		DateTime:           d.DateTime,
		Amount:             d.Amount,
		CategoryID:         d.CategoryID,
		AccountID:          d.AccountID,
		Description:        d.Description,
		Note:               d.Note,
		RepeatingFrequency: d.RepeatingFrequency,
		RepeatingEndDate:   d.RepeatingEndDate,
		AuditFields: models.AuditFields{
			CreatedAt:     d.CreatedAt,
			LastUpdatedAt: d.LastUpdatedAt,
		},
	}
}

// transactionColumns is the select list shared by the find and list queries.
// Category and account names come from joins so callers never chase ids.
const transactionColumns = `
	t.transaction_id, t.kind, t.date_time, t.amount, t.category_id, t.account_id,
	t.description, t.note, t.repeating_frequency, t.repeating_end_date,
	t.created_at, t.last_updated_at,
	c.name AS category_name, a.name AS account_name
`

func scanTransaction(scan func(dest ...any) error) (domain.Transaction, error) {
	var m models.Transaction
	var categoryName, accountName string

	err := scan(
		&m.TransactionID, &m.Kind, &m.DateTime, &m.Amount, &m.CategoryID, &m.AccountID,
		&m.Description, &m.Note, &m.RepeatingFrequency, &m.RepeatingEndDate,
		&m.CreatedAt, &m.LastUpdatedAt,
		&categoryName, &accountName,
	)
	if err != nil {
		return domain.Transaction{}, err
	}

	return domain.Transaction{
		TransactionID:      m.TransactionID,
		Kind:               domain.TransactionKind(m.Kind),
		DateTime:           m.DateTime,
		Amount:             m.Amount,
		CategoryID:         m.CategoryID,
		AccountID:          m.AccountID,
		Description:        m.Description,
		Note:               m.Note,
		RepeatingFrequency: m.RepeatingFrequency,
		RepeatingEndDate:   m.RepeatingEndDate,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			LastUpdatedAt: m.LastUpdatedAt,
		},
		CategoryName: categoryName,
		AccountName:  accountName,
	}, nil
}

// SaveTransaction inserts a new transaction.
func (r *PgxTransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction) error {
	m := toModelTransaction(txn)

	query := `
		INSERT INTO transactions (
			transaction_id, kind, date_time, amount, category_id, account_id,
			description, note, repeating_frequency, repeating_end_date,
			created_at, last_updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.TransactionID, m.Kind, m.DateTime, m.Amount, m.CategoryID, m.AccountID,
		m.Description, m.Note, m.RepeatingFrequency, m.RepeatingEndDate,
		m.CreatedAt, m.LastUpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save transaction %s: %w", m.TransactionID, err)
	}

	r.bus.Publish(events.Event{Kind: events.KindTransaction, Op: events.OpCreate, IDs: []string{m.TransactionID}})
	return nil
}

// FindTransactionByID retrieves a transaction with its category and account
// names resolved.
func (r *PgxTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions t
		JOIN categories c ON c.category_id = t.category_id
		JOIN accounts a ON a.account_id = t.account_id
		WHERE t.transaction_id = $1;
	`
	row := r.Pool.QueryRow(ctx, query, transactionID)
	txn, err := scanTransaction(row.Scan)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find transaction %s: %w", transactionID, err)
	}
	return &txn, nil
}

// ListTransactions translates the typed query into SQL filters. Results are
// sorted descending by the requested key, ties broken by transaction id
// descending so a repeated query over an unchanged store yields an identical
// sequence.
func (r *PgxTransactionRepository) ListTransactions(ctx context.Context, query domain.TransactionQuery) ([]domain.Transaction, error) {
	var sb strings.Builder
	sb.WriteString(`
		SELECT ` + transactionColumns + `
		FROM transactions t
		JOIN categories c ON c.category_id = t.category_id
		JOIN accounts a ON a.account_id = t.account_id
	`)

	conditions := []string{}
	args := []any{}
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if query.Kind != "" {
		conditions = append(conditions, "t.kind = "+arg(string(query.Kind)))
	}
	if len(query.AccountIDs) > 0 {
		placeholders := make([]string, len(query.AccountIDs))
		for i, id := range query.AccountIDs {
			placeholders[i] = arg(id)
		}
		conditions = append(conditions, "t.account_id IN ("+strings.Join(placeholders, ", ")+")")
	}
	if query.DateRange != nil {
		conditions = append(conditions, "t.date_time >= "+arg(query.DateRange.From)+" AND t.date_time <= "+arg(query.DateRange.To))
	}

	if len(conditions) > 0 {
		sb.WriteString(" WHERE ")
		sb.WriteString(strings.Join(conditions, " AND "))
	}

	switch query.Sort() {
	case domain.SortByAmount:
		sb.WriteString(" ORDER BY t.amount DESC, t.transaction_id DESC;")
	default:
		sb.WriteString(" ORDER BY t.date_time DESC, t.transaction_id DESC;")
	}

	rows, err := r.Pool.Query(ctx, sb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	defer rows.Close()

	transactions := []domain.Transaction{}
	for rows.Next() {
		txn, err := scanTransaction(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction row: %w", err)
		}
		transactions = append(transactions, txn)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate transaction rows: %w", err)
	}
	return transactions, nil
}

// UpdateTransaction rewrites the mutable fields of an existing transaction.
func (r *PgxTransactionRepository) UpdateTransaction(ctx context.Context, txn domain.Transaction) error {
	m := toModelTransaction(txn)

	query := `
		UPDATE transactions
		SET kind = $1, date_time = $2, amount = $3, category_id = $4, account_id = $5,
			description = $6, note = $7, repeating_frequency = $8, repeating_end_date = $9,
			last_updated_at = $10
		WHERE transaction_id = $11;
	`
	tag, err := r.Pool.Exec(ctx, query,
		m.Kind, m.DateTime, m.Amount, m.CategoryID, m.AccountID,
		m.Description, m.Note, m.RepeatingFrequency, m.RepeatingEndDate,
		m.LastUpdatedAt,
		m.TransactionID,
	)
	if err != nil {
		return fmt.Errorf("failed to update transaction %s: %w", m.TransactionID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	r.bus.Publish(events.Event{Kind: events.KindTransaction, Op: events.OpUpdate, IDs: []string{m.TransactionID}})
	return nil
}

// DeleteTransactionsByIDs removes every listed transaction that still exists,
// in one store write, and reports how many were removed. Ids that no longer
// resolve are skipped, not errors.
func (r *PgxTransactionRepository) DeleteTransactionsByIDs(ctx context.Context, transactionIDs []string) (int64, error) {
	if len(transactionIDs) == 0 {
		return 0, nil
	}

	query := `DELETE FROM transactions WHERE transaction_id = ANY($1);`
	tag, err := r.Pool.Exec(ctx, query, transactionIDs)
	if err != nil {
		return 0, fmt.Errorf("failed to delete transactions: %w", err)
	}
	deleted := tag.RowsAffected()

	if deleted > 0 {
		r.bus.Publish(events.Event{Kind: events.KindTransaction, Op: events.OpDelete, IDs: transactionIDs})
	}
	return deleted, nil
}
