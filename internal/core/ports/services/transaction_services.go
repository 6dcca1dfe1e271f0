package services

import (
	"context"

	"github.com/pocketfin/budget_tracker_app/internal/core/domain"
	"github.com/pocketfin/budget_tracker_app/internal/dto"
)

// TransactionSvc defines operations on transactions.
type TransactionSvc interface {
	// CreateTransaction persists a new transaction. The kind defaults to the
	// category's kind when omitted and must agree with it when provided.
	CreateTransaction(ctx context.Context, req dto.CreateTransactionRequest) (*domain.Transaction, error)

	// GetTransactionByID retrieves a specific transaction.
	GetTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error)

	// ListTransactions returns the filtered, sorted transaction sequence for
	// the query. It never mutates the underlying collection.
	ListTransactions(ctx context.Context, query domain.TransactionQuery) ([]domain.Transaction, error)

	// UpdateTransaction edits a transaction in place; its identity is
	// unchanged and the edit is visible to subsequent queries immediately.
	UpdateTransaction(ctx context.Context, transactionID string, req dto.UpdateTransactionRequest) (*domain.Transaction, error)

	// DeleteTransaction removes one transaction; missing ids are a no-op.
	DeleteTransaction(ctx context.Context, transactionID string) error

	// DeleteTransactions removes the selected transactions as one unit. Ids
	// that no longer resolve are skipped silently; the returned counts report
	// how many were deleted and how many were skipped.
	DeleteTransactions(ctx context.Context, transactionIDs []string) (deleted int64, skipped int64, err error)
}
