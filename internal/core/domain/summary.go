package domain

import "github.com/shopspring/decimal"

// Totals holds the income and expense sums over some transaction sequence.
// When the sequence was filtered, these are totals for that filter, not
// global totals.
type Totals struct {
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
}

// Balance returns income minus expense.
func (t Totals) Balance() decimal.Decimal {
	return t.Income.Sub(t.Expense)
}

// CategoryTotal is a per-category summed amount.
type CategoryTotal struct {
	Name   string          `json:"name"`
	Amount decimal.Decimal `json:"amount"`
}

// CategoryBreakdown groups summed amounts by category name, split by kind.
// Categories with no matching transactions are absent, not present with zero.
//
// Grouping is by name, not identity: two categories with the same name merge
// into one row. This mirrors how the figures are presented to the user and is
// a known limitation since names are not unique.
type CategoryBreakdown struct {
	Income  []CategoryTotal `json:"income"`
	Expense []CategoryTotal `json:"expense"`
}

// ShareSplit is the proportional weight of income and expense in their sum,
// used for proportional-width rendering. When both totals are zero the shares
// are both 0 rather than NaN.
type ShareSplit struct {
	Income  float64 `json:"income"`
	Expense float64 `json:"expense"`
}

// Summary is one consistent snapshot of a filtered transaction listing and
// its derived aggregates.
type Summary struct {
	Transactions []Transaction     `json:"transactions"`
	Totals       Totals            `json:"totals"`
	Breakdown    CategoryBreakdown `json:"breakdown"`
	Shares       ShareSplit        `json:"shares"`
}
