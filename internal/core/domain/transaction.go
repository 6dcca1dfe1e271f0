package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is a single income or expense entry. Amount is always a positive
// magnitude; direction comes from Kind, never from the sign of the number.
//
// RepeatingFrequency and RepeatingEndDate are stored and returned but no logic
// acts on them; recurrence expansion is out of scope.
type Transaction struct {
	TransactionID string          `json:"transactionID"` // Primary Key (UUID)
	Kind          TransactionKind `json:"kind"`          // Matches the category's kind
	DateTime      time.Time       `json:"dateTime"`
	Amount        decimal.Decimal `json:"amount"`     // Positive magnitude, currency-agnostic
	CategoryID    string          `json:"categoryID"` // FK -> Category.CategoryID (Not Null)
	AccountID     string          `json:"accountID"`  // FK -> Account.AccountID (Not Null)
	Description   string          `json:"description"`
	Note          string          `json:"note"`
	RepeatingFrequency string     `json:"repeatingFrequency,omitempty"` // e.g. "Daily", "Weekly", "Monthly"
	RepeatingEndDate   *time.Time `json:"repeatingEndDate,omitempty"`
	AuditFields

	// Denormalized display names, populated by list/find queries via joins.
	CategoryName string `json:"categoryName"`
	AccountName  string `json:"accountName"`
}
