package domain_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/pocketfin/budget_tracker_app/internal/core/domain"
)

func TestTransactionKindValid(t *testing.T) {
	assert.True(t, domain.Income.Valid())
	assert.True(t, domain.Expense.Valid())
	assert.False(t, domain.TransactionKind("").Valid())
	assert.False(t, domain.TransactionKind("transfer").Valid())
}

func TestSortKeyValid(t *testing.T) {
	assert.True(t, domain.SortByDate.Valid())
	assert.True(t, domain.SortByAmount.Valid())
	assert.False(t, domain.SortKey("color").Valid())
}

func TestQuerySortDefaultsToDate(t *testing.T) {
	assert.Equal(t, domain.SortByDate, domain.TransactionQuery{}.Sort())
	assert.Equal(t, domain.SortByAmount, domain.TransactionQuery{SortBy: domain.SortByAmount}.Sort())
}

func TestTotalsBalance(t *testing.T) {
	totals := domain.Totals{
		Income:  decimal.NewFromInt(500),
		Expense: decimal.NewFromInt(180),
	}
	assert.True(t, totals.Balance().Equal(decimal.NewFromInt(320)))

	overdrawn := domain.Totals{
		Income:  decimal.NewFromInt(100),
		Expense: decimal.NewFromInt(150),
	}
	assert.True(t, overdrawn.Balance().IsNegative())
}
