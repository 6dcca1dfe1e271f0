package domain

import "time"

// AuditFields holds the common bookkeeping timestamps embedded in every entity.
type AuditFields struct {
	CreatedAt     time.Time `json:"createdAt"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
}

// TransactionKind labels money movement as income or expense. Category kinds
// use the same values: a category only ever holds transactions of its kind.
type TransactionKind string

const (
	Income  TransactionKind = "income"
	Expense TransactionKind = "expense"
)

// Valid reports whether k is one of the two known kinds.
func (k TransactionKind) Valid() bool {
	return k == Income || k == Expense
}
