package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is the storage representation of a single income or expense
// entry. Amount is a positive magnitude; kind carries the direction.
type Transaction struct {
	TransactionID      string          `db:"transaction_id"`
	Kind               string          `db:"kind"`
	DateTime           time.Time       `db:"date_time"`
	Amount             decimal.Decimal `db:"amount"`
	CategoryID         string          `db:"category_id"`
	AccountID          string          `db:"account_id"`
	Description        string          `db:"description"`
	Note               string          `db:"note"`
	RepeatingFrequency string          `db:"repeating_frequency"` // stored, never interpreted
	RepeatingEndDate   *time.Time      `db:"repeating_end_date"`
	AuditFields
}
