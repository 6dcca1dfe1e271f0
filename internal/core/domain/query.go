package domain

import "time"

// SortKey selects the field a transaction listing is ordered by.
// Order is always descending (most recent / largest first).
type SortKey string

const (
	SortByDate   SortKey = "date"
	SortByAmount SortKey = "amount"
)

// Valid reports whether k is a known sort key.
func (k SortKey) Valid() bool {
	return k == SortByDate || k == SortByAmount
}

// DateRange restricts a query to transactions with From <= DateTime <= To.
type DateRange struct {
	From time.Time
	To   time.Time
}

// TransactionQuery is the typed filter/sort specification for transaction
// listings and summaries. The zero value matches everything, sorted by date.
type TransactionQuery struct {
	Kind       TransactionKind // "" = all kinds
	AccountIDs []string        // empty = all accounts
	DateRange  *DateRange      // nil = all time
	SortBy     SortKey         // "" = SortByDate
}

// Sort returns the effective sort key, defaulting to date.
func (q TransactionQuery) Sort() SortKey {
	if q.SortBy == "" {
		return SortByDate
	}
	return q.SortBy
}
