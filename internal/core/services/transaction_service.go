package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/pocketfin/budget_tracker_app/internal/apperrors"
	"github.com/pocketfin/budget_tracker_app/internal/core/domain"
	portsrepo "github.com/pocketfin/budget_tracker_app/internal/core/ports/repositories"
	portssvc "github.com/pocketfin/budget_tracker_app/internal/core/ports/services"
	"github.com/pocketfin/budget_tracker_app/internal/dto"
)

// transactionService implements the TransactionSvc interface.
type transactionService struct {
	BaseService
	txnRepo      portsrepo.TransactionRepository
	accountRepo  portsrepo.AccountRepository
	categoryRepo portsrepo.CategoryRepository
}

// NewTransactionService creates a new transaction service.
func NewTransactionService(
	txnRepo portsrepo.TransactionRepository,
	accountRepo portsrepo.AccountRepository,
	categoryRepo portsrepo.CategoryRepository,
) portssvc.TransactionSvc {
	return &transactionService{
		txnRepo:      txnRepo,
		accountRepo:  accountRepo,
		categoryRepo: categoryRepo,
	}
}

var _ portssvc.TransactionSvc = (*transactionService)(nil)

func (s *transactionService) CreateTransaction(ctx context.Context, req dto.CreateTransactionRequest) (*domain.Transaction, error) {
	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: amount must be a positive magnitude", apperrors.ErrValidation)
	}
	if req.DateTime.IsZero() {
		return nil, fmt.Errorf("%w: dateTime is required", apperrors.ErrValidation)
	}

	category, err := s.categoryRepo.FindCategoryByID(ctx, req.CategoryID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: category %s does not exist", apperrors.ErrValidation, req.CategoryID)
		}
		return nil, err
	}
	if _, err := s.accountRepo.FindAccountByID(ctx, req.AccountID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: account %s does not exist", apperrors.ErrValidation, req.AccountID)
		}
		return nil, err
	}

	// Kind is optional on input: inherit from the category, and refuse a
	// contradiction when it is provided.
	kind := req.Kind
	if kind == "" {
		kind = category.Kind
	} else if kind != category.Kind {
		return nil, fmt.Errorf("%w: transaction kind %s does not match category kind %s", apperrors.ErrValidation, kind, category.Kind)
	}

	now := time.Now()
	txn := domain.Transaction{
		TransactionID:      uuid.NewString(),
		Kind:               kind,
		DateTime:           req.DateTime,
		Amount:             req.Amount,
		CategoryID:         req.CategoryID,
		AccountID:          req.AccountID,
		Description:        req.Description,
		Note:               req.Note,
		RepeatingFrequency: req.RepeatingFrequency,
		RepeatingEndDate:   req.RepeatingEndDate,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}

	if err := s.txnRepo.SaveTransaction(ctx, txn); err != nil {
		s.LogError(ctx, err, "Failed to save transaction in repository", slog.String("transaction_id", txn.TransactionID))
		return nil, err
	}

	s.LogInfo(ctx, "Transaction created",
		slog.String("transaction_id", txn.TransactionID),
		slog.String("kind", string(txn.Kind)),
		slog.String("amount", txn.Amount.String()))

	return s.txnRepo.FindTransactionByID(ctx, txn.TransactionID)
}

func (s *transactionService) GetTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	txn, err := s.txnRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find transaction by ID in repository", slog.String("transaction_id", transactionID))
		}
		return nil, err
	}
	return txn, nil
}

func (s *transactionService) ListTransactions(ctx context.Context, query domain.TransactionQuery) ([]domain.Transaction, error) {
	if query.Kind != "" && !query.Kind.Valid() {
		return nil, fmt.Errorf("%w: unknown transaction kind %q", apperrors.ErrValidation, query.Kind)
	}
	if query.SortBy != "" && !query.SortBy.Valid() {
		return nil, fmt.Errorf("%w: unknown sort key %q", apperrors.ErrValidation, query.SortBy)
	}

	txns, err := s.txnRepo.ListTransactions(ctx, query)
	if err != nil {
		s.LogError(ctx, err, "Failed to list transactions from repository")
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	if txns == nil {
		txns = []domain.Transaction{}
	}
	return txns, nil
}

func (s *transactionService) UpdateTransaction(ctx context.Context, transactionID string, req dto.UpdateTransactionRequest) (*domain.Transaction, error) {
	txn, err := s.txnRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		return nil, err
	}

	if req.CategoryID != nil {
		txn.CategoryID = *req.CategoryID
	}
	if req.AccountID != nil {
		if _, err := s.accountRepo.FindAccountByID(ctx, *req.AccountID); err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("%w: account %s does not exist", apperrors.ErrValidation, *req.AccountID)
			}
			return nil, err
		}
		txn.AccountID = *req.AccountID
	}

	category, err := s.categoryRepo.FindCategoryByID(ctx, txn.CategoryID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: category %s does not exist", apperrors.ErrValidation, txn.CategoryID)
		}
		return nil, err
	}

	if req.Kind != nil {
		if *req.Kind != category.Kind {
			return nil, fmt.Errorf("%w: transaction kind %s does not match category kind %s", apperrors.ErrValidation, *req.Kind, category.Kind)
		}
		txn.Kind = *req.Kind
	} else {
		txn.Kind = category.Kind
	}
	if req.DateTime != nil {
		if req.DateTime.IsZero() {
			return nil, fmt.Errorf("%w: dateTime cannot be zero", apperrors.ErrValidation)
		}
		txn.DateTime = *req.DateTime
	}
	if req.Amount != nil {
		if !req.Amount.IsPositive() {
			return nil, fmt.Errorf("%w: amount must be a positive magnitude", apperrors.ErrValidation)
		}
		txn.Amount = *req.Amount
	}
	if req.Description != nil {
		txn.Description = *req.Description
	}
	if req.Note != nil {
		txn.Note = *req.Note
	}
	if req.RepeatingFrequency != nil {
		txn.RepeatingFrequency = *req.RepeatingFrequency
	}
	if req.RepeatingEndDate != nil {
		txn.RepeatingEndDate = req.RepeatingEndDate
	}
	txn.LastUpdatedAt = time.Now()

	if err := s.txnRepo.UpdateTransaction(ctx, *txn); err != nil {
		s.LogError(ctx, err, "Failed to update transaction in repository", slog.String("transaction_id", transactionID))
		return nil, err
	}

	s.LogInfo(ctx, "Transaction updated", slog.String("transaction_id", transactionID))
	return s.txnRepo.FindTransactionByID(ctx, transactionID)
}

func (s *transactionService) DeleteTransaction(ctx context.Context, transactionID string) error {
	deleted, skipped, err := s.DeleteTransactions(ctx, []string{transactionID})
	if err != nil {
		return err
	}
	if deleted == 0 && skipped == 1 {
		s.LogDebug(ctx, "Transaction already deleted", slog.String("transaction_id", transactionID))
	}
	return nil
}

// DeleteTransactions removes the selected transactions in one store write.
// Ids that no longer resolve are skipped silently; the rest proceed.
func (s *transactionService) DeleteTransactions(ctx context.Context, transactionIDs []string) (int64, int64, error) {
	if len(transactionIDs) == 0 {
		return 0, 0, nil
	}

	deleted, err := s.txnRepo.DeleteTransactionsByIDs(ctx, transactionIDs)
	if err != nil {
		s.LogError(ctx, err, "Failed to batch-delete transactions", slog.Int("requested", len(transactionIDs)))
		return 0, 0, err
	}

	skipped := int64(len(transactionIDs)) - deleted
	s.LogInfo(ctx, "Transactions deleted",
		slog.Int64("deleted", deleted),
		slog.Int64("skipped", skipped))
	return deleted, skipped, nil
}
