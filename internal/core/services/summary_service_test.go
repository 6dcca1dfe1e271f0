package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/pocketfin/budget_tracker_app/internal/core/domain"
	"github.com/pocketfin/budget_tracker_app/internal/core/events"
	portssvc "github.com/pocketfin/budget_tracker_app/internal/core/ports/services"
	"github.com/pocketfin/budget_tracker_app/internal/core/services"
)

type SummaryServiceTestSuite struct {
	suite.Suite
	mockTxnRepo *MockTransactionRepository
	bus         *events.Bus
	service     portssvc.SummarySvc
}

func (suite *SummaryServiceTestSuite) SetupTest() {
	suite.mockTxnRepo = new(MockTransactionRepository)
	suite.bus = events.NewBus()
	suite.service = services.NewSummaryService(suite.mockTxnRepo, suite.bus)
}

func txn(kind domain.TransactionKind, category string, amount int64) domain.Transaction {
	return domain.Transaction{
		Kind:         kind,
		CategoryName: category,
		Amount:       decimal.NewFromInt(amount),
		DateTime:     time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
	}
}

// --- Totals ---

func (suite *SummaryServiceTestSuite) TestTotals_PartitionByKind() {
	txns := []domain.Transaction{
		txn(domain.Income, "Salary", 3000),
		txn(domain.Expense, "Groceries", 120),
		txn(domain.Expense, "Bills", 80),
		txn(domain.Income, "Freelance", 500),
	}

	totals := suite.service.Totals(txns)

	suite.True(totals.Income.Equal(decimal.NewFromInt(3500)))
	suite.True(totals.Expense.Equal(decimal.NewFromInt(200)))
	suite.True(totals.Balance().Equal(decimal.NewFromInt(3300)))
}

func (suite *SummaryServiceTestSuite) TestTotals_EmptyInput() {
	totals := suite.service.Totals(nil)

	suite.True(totals.Income.IsZero())
	suite.True(totals.Expense.IsZero())
	suite.True(totals.Balance().IsZero())
}

func (suite *SummaryServiceTestSuite) TestTotals_Idempotent() {
	txns := []domain.Transaction{
		txn(domain.Income, "Salary", 100),
		txn(domain.Expense, "Bills", 40),
	}

	first := suite.service.Totals(txns)
	second := suite.service.Totals(txns)

	suite.True(first.Income.Equal(second.Income))
	suite.True(first.Expense.Equal(second.Expense))
}

// --- CategoryBreakdown ---

func (suite *SummaryServiceTestSuite) TestCategoryBreakdown_GroupsByName() {
	txns := []domain.Transaction{
		txn(domain.Expense, "Groceries", 50),
		txn(domain.Expense, "Groceries", 30),
		txn(domain.Expense, "Bills", 100),
		txn(domain.Income, "Salary", 2000),
	}

	breakdown := suite.service.CategoryBreakdown(txns)

	suite.Require().Len(breakdown.Expense, 2)
	suite.Equal("Bills", breakdown.Expense[0].Name)
	suite.True(breakdown.Expense[0].Amount.Equal(decimal.NewFromInt(100)))
	suite.Equal("Groceries", breakdown.Expense[1].Name)
	suite.True(breakdown.Expense[1].Amount.Equal(decimal.NewFromInt(80)))

	suite.Require().Len(breakdown.Income, 1)
	suite.Equal("Salary", breakdown.Income[0].Name)
}

func (suite *SummaryServiceTestSuite) TestCategoryBreakdown_InactiveCategoriesAbsent() {
	txns := []domain.Transaction{
		txn(domain.Expense, "Groceries", 10),
	}

	breakdown := suite.service.CategoryBreakdown(txns)

	suite.Len(breakdown.Expense, 1)
	suite.Empty(breakdown.Income, "categories without activity never appear as zero rows")
}

// --- Shares ---

func (suite *SummaryServiceTestSuite) TestShares_SumToOne() {
	totals := domain.Totals{
		Income:  decimal.NewFromInt(300),
		Expense: decimal.NewFromInt(100),
	}

	shares := suite.service.Shares(totals)

	suite.InDelta(0.75, shares.Income, 1e-9)
	suite.InDelta(0.25, shares.Expense, 1e-9)
	suite.InDelta(1.0, shares.Income+shares.Expense, 1e-9)
}

func (suite *SummaryServiceTestSuite) TestShares_ZeroTotal() {
	shares := suite.service.Shares(domain.Totals{Income: decimal.Zero, Expense: decimal.Zero})

	suite.Zero(shares.Income)
	suite.Zero(shares.Expense)
}

// --- Summarize ---

func (suite *SummaryServiceTestSuite) TestSummarize_AggregatesOverFilteredSequence() {
	ctx := context.Background()
	accountA := "acc-a"
	query := domain.TransactionQuery{AccountIDs: []string{accountA}}
	filtered := []domain.Transaction{
		txn(domain.Income, "Salary", 1000),
		txn(domain.Expense, "Groceries", 250),
	}

	suite.mockTxnRepo.On("ListTransactions", ctx, query).Return(filtered, nil).Once()

	summary, err := suite.service.Summarize(ctx, query)

	suite.Require().NoError(err)
	suite.Len(summary.Transactions, 2)
	suite.True(summary.Totals.Income.Equal(decimal.NewFromInt(1000)))
	suite.True(summary.Totals.Expense.Equal(decimal.NewFromInt(250)))
	suite.Require().Len(summary.Breakdown.Expense, 1)
	suite.Equal("Groceries", summary.Breakdown.Expense[0].Name)
	suite.InDelta(0.8, summary.Shares.Income, 1e-9)
}

func (suite *SummaryServiceTestSuite) TestSummarize_EmptyStore() {
	ctx := context.Background()
	query := domain.TransactionQuery{}

	suite.mockTxnRepo.On("ListTransactions", ctx, query).Return([]domain.Transaction{}, nil).Once()

	summary, err := suite.service.Summarize(ctx, query)

	suite.Require().NoError(err)
	suite.NotNil(summary.Transactions)
	suite.Empty(summary.Transactions)
	suite.True(summary.Totals.Income.IsZero())
	suite.Zero(summary.Shares.Income)
}

// --- Watch ---

func (suite *SummaryServiceTestSuite) TestWatch_InitialSnapshotThenRecompute() {
	ctx := context.Background()
	query := domain.TransactionQuery{}
	before := []domain.Transaction{txn(domain.Expense, "Bills", 60)}
	after := []domain.Transaction{
		txn(domain.Expense, "Bills", 60),
		txn(domain.Income, "Salary", 900),
	}

	suite.mockTxnRepo.On("ListTransactions", ctx, query).Return(before, nil).Once()
	suite.mockTxnRepo.On("ListTransactions", ctx, query).Return(after, nil).Once()

	var snapshots []domain.Summary
	stop, err := suite.service.Watch(ctx, query, func(s domain.Summary) {
		snapshots = append(snapshots, s)
	})
	suite.Require().NoError(err)
	defer stop()

	suite.Require().Len(snapshots, 1, "initial snapshot is delivered before any change")
	suite.True(snapshots[0].Totals.Expense.Equal(decimal.NewFromInt(60)))

	// Delivery is synchronous, so the snapshot is visible as soon as
	// Publish returns.
	suite.bus.Publish(events.Event{Kind: events.KindTransaction, Op: events.OpCreate, IDs: []string{"t1"}})

	suite.Require().Len(snapshots, 2)
	suite.True(snapshots[1].Totals.Income.Equal(decimal.NewFromInt(900)))
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *SummaryServiceTestSuite) TestWatch_StopEndsDelivery() {
	ctx := context.Background()
	query := domain.TransactionQuery{}

	suite.mockTxnRepo.On("ListTransactions", ctx, query).Return([]domain.Transaction{}, nil)

	calls := 0
	stop, err := suite.service.Watch(ctx, query, func(domain.Summary) { calls++ })
	suite.Require().NoError(err)
	suite.Equal(1, calls)

	stop()
	suite.bus.Publish(events.Event{Kind: events.KindTransaction, Op: events.OpDelete, IDs: []string{"t1"}})

	suite.Equal(1, calls, "no callbacks after stop returns")
}

func (suite *SummaryServiceTestSuite) TestWatch_IgnoresOtherCollections() {
	ctx := context.Background()
	query := domain.TransactionQuery{}

	suite.mockTxnRepo.On("ListTransactions", ctx, query).Return([]domain.Transaction{}, nil)

	calls := 0
	stop, err := suite.service.Watch(ctx, query, func(domain.Summary) { calls++ })
	suite.Require().NoError(err)
	defer stop()

	suite.bus.Publish(events.Event{Kind: events.KindAccount, Op: events.OpUpdate, IDs: []string{"a1"}})

	suite.Equal(1, calls, "account writes do not retrigger the summary")
}

func TestSummaryServiceTestSuite(t *testing.T) {
	suite.Run(t, new(SummaryServiceTestSuite))
}
