package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/pocketfin/budget_tracker_app/internal/apperrors"
	"github.com/pocketfin/budget_tracker_app/internal/core/domain"
	"github.com/pocketfin/budget_tracker_app/internal/core/events"
	portsrepo "github.com/pocketfin/budget_tracker_app/internal/core/ports/repositories"
	"github.com/pocketfin/budget_tracker_app/internal/models"
)

// SQLiteTransactionRepository persists transactions in the embedded store.
type SQLiteTransactionRepository struct {
	BaseRepository
	bus *events.Bus
}

func newSQLiteTransactionRepository(db *sql.DB, bus *events.Bus) portsrepo.TransactionRepository {
	return &SQLiteTransactionRepository{BaseRepository: BaseRepository{DB: db}, bus: bus}
}

var _ portsrepo.TransactionRepository = (*SQLiteTransactionRepository)(nil)

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
	var dateTime, createdAt, updatedAt int64
	var repeatingEnd sql.NullInt64
	var categoryName, accountName string

	err := scan(
		&m.TransactionID, &m.Kind, &dateTime, &m.Amount, &m.CategoryID, &m.AccountID,
		&m.Description, &m.Note, &m.RepeatingFrequency, &repeatingEnd,
		&createdAt, &updatedAt,
		&categoryName, &accountName,
	)
	if err != nil {
		return domain.Transaction{}, err
	}

	return domain.Transaction{
		TransactionID:      m.TransactionID,
		Kind:               domain.TransactionKind(m.Kind),
		DateTime:           fromMillis(dateTime),
		Amount:             m.Amount,
		CategoryID:         m.CategoryID,
		AccountID:          m.AccountID,
		Description:        m.Description,
		Note:               m.Note,
		RepeatingFrequency: m.RepeatingFrequency,
		RepeatingEndDate:   fromNullMillis(repeatingEnd),
		AuditFields: domain.AuditFields{
			CreatedAt:     fromMillis(createdAt),
			LastUpdatedAt: fromMillis(updatedAt),
		},
		CategoryName: categoryName,
		AccountName:  accountName,
	}, nil
}

// SaveTransaction inserts a new transaction.
func (r *SQLiteTransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction) error {
	m := toModelTransaction(txn)

	query := `
		INSERT INTO transactions (
			transaction_id, kind, date_time, amount, category_id, account_id,
			description, note, repeating_frequency, repeating_end_date,
			created_at, last_updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?);
	`
	_, err := r.DB.ExecContext(ctx, query,
		m.TransactionID, m.Kind, toMillis(m.DateTime), m.Amount.String(), m.CategoryID, m.AccountID,
		m.Description, m.Note, m.RepeatingFrequency, toNullMillis(m.RepeatingEndDate),
		toMillis(m.CreatedAt), toMillis(m.LastUpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("failed to save transaction %s: %w", m.TransactionID, err)
	}

	r.bus.Publish(events.Event{Kind: events.KindTransaction, Op: events.OpCreate, IDs: []string{m.TransactionID}})
	return nil
}

// FindTransactionByID retrieves a transaction with its category and account
// names resolved.
func (r *SQLiteTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions t
		JOIN categories c ON c.category_id = t.category_id
		JOIN accounts a ON a.account_id = t.account_id
		WHERE t.transaction_id = ?;
	`
	row := r.DB.QueryRowContext(ctx, query, transactionID)
	txn, err := scanTransaction(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
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
func (r *SQLiteTransactionRepository) ListTransactions(ctx context.Context, query domain.TransactionQuery) ([]domain.Transaction, error) {
	var sb strings.Builder
	sb.WriteString(`
		SELECT ` + transactionColumns + `
		FROM transactions t
		JOIN categories c ON c.category_id = t.category_id
		JOIN accounts a ON a.account_id = t.account_id
	`)

	conditions := []string{}
	args := []any{}

	if query.Kind != "" {
		conditions = append(conditions, "t.kind = ?")
		args = append(args, string(query.Kind))
	}
	if len(query.AccountIDs) > 0 {
		placeholders := make([]string, len(query.AccountIDs))
		for i, id := range query.AccountIDs {
			placeholders[i] = "?"
			args = append(args, id)
		}
		conditions = append(conditions, "t.account_id IN ("+strings.Join(placeholders, ", ")+")")
	}
	if query.DateRange != nil {
		conditions = append(conditions, "t.date_time >= ? AND t.date_time <= ?")
		args = append(args, toMillis(query.DateRange.From), toMillis(query.DateRange.To))
	}

	if len(conditions) > 0 {
		sb.WriteString(" WHERE ")
		sb.WriteString(strings.Join(conditions, " AND "))
	}

	switch query.Sort() {
	case domain.SortByAmount:
		// Amounts are stored as decimal strings; cast for numeric ordering.
		sb.WriteString(" ORDER BY CAST(t.amount AS REAL) DESC, t.transaction_id DESC;")
	default:
		sb.WriteString(" ORDER BY t.date_time DESC, t.transaction_id DESC;")
	}

	rows, err := r.DB.QueryContext(ctx, sb.String(), args...)
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
func (r *SQLiteTransactionRepository) UpdateTransaction(ctx context.Context, txn domain.Transaction) error {
	m := toModelTransaction(txn)

	query := `
		UPDATE transactions
		SET kind = ?, date_time = ?, amount = ?, category_id = ?, account_id = ?,
			description = ?, note = ?, repeating_frequency = ?, repeating_end_date = ?,
			last_updated_at = ?
		WHERE transaction_id = ?;
	`
	res, err := r.DB.ExecContext(ctx, query,
		m.Kind, toMillis(m.DateTime), m.Amount.String(), m.CategoryID, m.AccountID,
		m.Description, m.Note, m.RepeatingFrequency, toNullMillis(m.RepeatingEndDate),
		toMillis(m.LastUpdatedAt),
		m.TransactionID,
	)
	if err != nil {
		return fmt.Errorf("failed to update transaction %s: %w", m.TransactionID, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected for transaction %s: %w", m.TransactionID, err)
	}
	if affected == 0 {
		return apperrors.ErrNotFound
	}

	r.bus.Publish(events.Event{Kind: events.KindTransaction, Op: events.OpUpdate, IDs: []string{m.TransactionID}})
	return nil
}

// DeleteTransactionsByIDs removes every listed transaction that still exists,
// in one store write, and reports how many were removed. Ids that no longer
// resolve are skipped, not errors.
func (r *SQLiteTransactionRepository) DeleteTransactionsByIDs(ctx context.Context, transactionIDs []string) (int64, error) {
	if len(transactionIDs) == 0 {
		return 0, nil
	}

	placeholders := make([]string, len(transactionIDs))
	args := make([]any, len(transactionIDs))
	for i, id := range transactionIDs {
		placeholders[i] = "?"
		args[i] = id
	}

	query := "DELETE FROM transactions WHERE transaction_id IN (" + strings.Join(placeholders, ", ") + ");"
	res, err := r.DB.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("failed to delete transactions: %w", err)
	}
	deleted, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read rows affected for batch delete: %w", err)
	}

	if deleted > 0 {
		r.bus.Publish(events.Event{Kind: events.KindTransaction, Op: events.OpDelete, IDs: transactionIDs})
	}
	return deleted, nil
}
