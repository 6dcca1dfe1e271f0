package dto

import (
	"time"

	"github.com/pocketfin/budget_tracker_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateTransactionRequest defines the data needed to record a transaction.
// Kind is optional; when omitted it is inherited from the category.
type CreateTransactionRequest struct {
	Kind               domain.TransactionKind `json:"kind" binding:"omitempty,oneof=income expense"`
	DateTime           time.Time              `json:"dateTime" binding:"required"`
	Amount             decimal.Decimal        `json:"amount" binding:"required"`
	CategoryID         string                 `json:"categoryID" binding:"required"`
	AccountID          string                 `json:"accountID" binding:"required"`
	Description        string                 `json:"description"`
	Note               string                 `json:"note"`
	RepeatingFrequency string                 `json:"repeatingFrequency"`
	RepeatingEndDate   *time.Time             `json:"repeatingEndDate"`
}

// UpdateTransactionRequest defines the fields editable on a transaction.
// Pointers distinguish zero-value updates from fields not provided.
type UpdateTransactionRequest struct {
	Kind               *domain.TransactionKind `json:"kind" binding:"omitempty,oneof=income expense"`
	DateTime           *time.Time              `json:"dateTime"`
	Amount             *decimal.Decimal        `json:"amount"`
	CategoryID         *string                 `json:"categoryID"`
	AccountID          *string                 `json:"accountID"`
	Description        *string                 `json:"description"`
	Note               *string                 `json:"note"`
	RepeatingFrequency *string                 `json:"repeatingFrequency"`
	RepeatingEndDate   *time.Time              `json:"repeatingEndDate"`
}

// TransactionResponse defines the data returned for a transaction.
type TransactionResponse struct {
	TransactionID      string                 `json:"transactionID"`
	Kind               domain.TransactionKind `json:"kind"`
	DateTime           time.Time              `json:"dateTime"`
	Amount             decimal.Decimal        `json:"amount"`
	CategoryID         string                 `json:"categoryID"`
	CategoryName       string                 `json:"categoryName"`
	AccountID          string                 `json:"accountID"`
	AccountName        string                 `json:"accountName"`
	Description        string                 `json:"description"`
	Note               string                 `json:"note"`
	RepeatingFrequency string                 `json:"repeatingFrequency,omitempty"`
	RepeatingEndDate   *time.Time             `json:"repeatingEndDate,omitempty"`
	CreatedAt          time.Time              `json:"createdAt"`
	LastUpdatedAt      time.Time              `json:"lastUpdatedAt"`
}

// ToTransactionResponse converts a domain.Transaction to its response DTO.
func ToTransactionResponse(txn *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		TransactionID:      txn.TransactionID,
		Kind:               txn.Kind,
		DateTime:           txn.DateTime,
		Amount:             txn.Amount,
		CategoryID:         txn.CategoryID,
		CategoryName:       txn.CategoryName,
		AccountID:          txn.AccountID,
		AccountName:        txn.AccountName,
		Description:        txn.Description,
		Note:               txn.Note,
		RepeatingFrequency: txn.RepeatingFrequency,
		RepeatingEndDate:   txn.RepeatingEndDate,
		CreatedAt:          txn.CreatedAt,
		LastUpdatedAt:      txn.LastUpdatedAt,
	}
}

// ToListTransactionResponse converts a slice of transactions to response DTOs.
func ToListTransactionResponse(txns []domain.Transaction) []TransactionResponse {
	res := make([]TransactionResponse, len(txns))
	for i, txn := range txns {
		res[i] = ToTransactionResponse(&txn)
	}
	return res
}

// ListTransactionsParams defines query parameters for listing transactions
// and for summaries. Repeated accountId params select a set of accounts.
type ListTransactionsParams struct {
	Kind       string    `form:"kind" binding:"omitempty,oneof=income expense"`
	AccountIDs []string  `form:"accountId"`
	From       time.Time `form:"from" time_format:"2006-01-02T15:04:05Z07:00"`
	To         time.Time `form:"to" time_format:"2006-01-02T15:04:05Z07:00"`
	SortBy     string    `form:"sortBy" binding:"omitempty,oneof=date amount"`
}

// ToQuery translates the bound parameters into the typed query spec.
func (p ListTransactionsParams) ToQuery() domain.TransactionQuery {
	q := domain.TransactionQuery{
		Kind:       domain.TransactionKind(p.Kind),
		AccountIDs: p.AccountIDs,
		SortBy:     domain.SortKey(p.SortBy),
	}
	if !p.From.IsZero() || !p.To.IsZero() {
		to := p.To
		if to.IsZero() {
			// Open-ended range: far future upper bound.
			to = time.Date(9999, 12, 31, 23, 59, 59, 0, time.UTC)
		}
		q.DateRange = &domain.DateRange{From: p.From, To: to}
	}
	return q
}

// ListTransactionsResponse wraps the list of transactions with the totals
// computed over that same filtered sequence.
type ListTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	Totals       TotalsResponse        `json:"totals"`
}

// BatchDeleteTransactionsRequest selects transactions to delete as one unit.
type BatchDeleteTransactionsRequest struct {
	TransactionIDs []string `json:"transactionIDs" binding:"required,min=1"`
}

// BatchDeleteTransactionsResponse reports the outcome of a batch delete.
// Skipped counts ids that no longer resolved when the delete ran.
type BatchDeleteTransactionsResponse struct {
	Deleted int64 `json:"deleted"`
	Skipped int64 `json:"skipped"`
}
