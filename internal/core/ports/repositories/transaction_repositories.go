package repositories

import (
	"context"

	"github.com/pocketfin/budget_tracker_app/internal/core/domain"
)

// TransactionRepository defines persistence operations for transactions.
type TransactionRepository interface {
	// SaveTransaction inserts a new transaction.
	SaveTransaction(ctx context.Context, txn domain.Transaction) error
	// FindTransactionByID retrieves a transaction with its category and
	// account names resolved, or apperrors.ErrNotFound.
	FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error)
	// ListTransactions translates the typed query into store filters and
	// returns the matching transactions sorted descending by the query's sort
	// key, ties broken by transaction id descending so a repeated query over
	// an unchanged store yields an identical sequence.
	ListTransactions(ctx context.Context, query domain.TransactionQuery) ([]domain.Transaction, error)
	// UpdateTransaction rewrites the mutable fields of an existing
	// transaction. Returns apperrors.ErrNotFound when it no longer exists.
	UpdateTransaction(ctx context.Context, txn domain.Transaction) error
	// DeleteTransactionsByIDs removes every listed transaction that still
	// exists, in one store write, and reports how many were removed. Ids that
	// no longer resolve are skipped, not errors.
	DeleteTransactionsByIDs(ctx context.Context, transactionIDs []string) (int64, error)
}
