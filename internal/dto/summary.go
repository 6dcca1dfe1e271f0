package dto

import (
	"github.com/pocketfin/budget_tracker_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// TotalsResponse carries the income/expense sums and their balance.
type TotalsResponse struct {
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
	Balance decimal.Decimal `json:"balance"`
}

// ToTotalsResponse converts domain.Totals to its response DTO.
func ToTotalsResponse(t domain.Totals) TotalsResponse {
	return TotalsResponse{
		Income:  t.Income,
		Expense: t.Expense,
		Balance: t.Balance(),
	}
}

// CategoryTotalResponse is one row of a category breakdown.
type CategoryTotalResponse struct {
	Name   string          `json:"name"`
	Amount decimal.Decimal `json:"amount"`
}

// BreakdownResponse is the per-category breakdown split by kind.
type BreakdownResponse struct {
	Income  []CategoryTotalResponse `json:"income"`
	Expense []CategoryTotalResponse `json:"expense"`
}

// SharesResponse is the proportional income/expense split.
type SharesResponse struct {
	Income  float64 `json:"income"`
	Expense float64 `json:"expense"`
}

// SummaryResponse is the full snapshot returned by the summary endpoints.
type SummaryResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	Totals       TotalsResponse        `json:"totals"`
	Breakdown    BreakdownResponse     `json:"breakdown"`
	Shares       SharesResponse        `json:"shares"`
}

// ToSummaryResponse converts a domain.Summary to its response DTO.
func ToSummaryResponse(s *domain.Summary) SummaryResponse {
	toRows := func(totals []domain.CategoryTotal) []CategoryTotalResponse {
		rows := make([]CategoryTotalResponse, len(totals))
		for i, ct := range totals {
			rows[i] = CategoryTotalResponse{Name: ct.Name, Amount: ct.Amount}
		}
		return rows
	}
	return SummaryResponse{
		Transactions: ToListTransactionResponse(s.Transactions),
		Totals:       ToTotalsResponse(s.Totals),
		Breakdown: BreakdownResponse{
			Income:  toRows(s.Breakdown.Income),
			Expense: toRows(s.Breakdown.Expense),
		},
		Shares: SharesResponse{Income: s.Shares.Income, Expense: s.Shares.Expense},
	}
}
