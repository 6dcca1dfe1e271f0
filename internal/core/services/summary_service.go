package services

import (
	"context"
	"log/slog"
	"sort"

	"github.com/pocketfin/budget_tracker_app/internal/core/domain"
	"github.com/pocketfin/budget_tracker_app/internal/core/events"
	portsrepo "github.com/pocketfin/budget_tracker_app/internal/core/ports/repositories"
	portssvc "github.com/pocketfin/budget_tracker_app/internal/core/ports/services"
	"github.com/shopspring/decimal"
)

// summaryService implements the SummarySvc interface: the query/aggregation
// engine over the transaction collection. The store and the change bus are
// explicit dependencies; nothing here reaches for a global handle.
type summaryService struct {
	BaseService
	txnRepo portsrepo.TransactionRepository
	bus     *events.Bus
}

// NewSummaryService creates the aggregation engine over the given
// transaction repository and change bus.
func NewSummaryService(txnRepo portsrepo.TransactionRepository, bus *events.Bus) portssvc.SummarySvc {
	return &summaryService{txnRepo: txnRepo, bus: bus}
}

var _ portssvc.SummarySvc = (*summaryService)(nil)

// Summarize computes one snapshot under the given query: the filtered and
// sorted listing plus the aggregates derived from that same sequence.
func (s *summaryService) Summarize(ctx context.Context, query domain.TransactionQuery) (*domain.Summary, error) {
	txns, err := s.txnRepo.ListTransactions(ctx, query)
	if err != nil {
		s.LogError(ctx, err, "Failed to list transactions for summary")
		return nil, err
	}
	if txns == nil {
		txns = []domain.Transaction{}
	}

	totals := s.Totals(txns)
	return &domain.Summary{
		Transactions: txns,
		Totals:       totals,
		Breakdown:    s.CategoryBreakdown(txns),
		Shares:       s.Shares(totals),
	}, nil
}

// Totals sums income and expense amounts over the sequence passed in. When
// the sequence was produced by a filtered query these are the totals for
// that filter. Empty input yields zero totals.
func (s *summaryService) Totals(transactions []domain.Transaction) domain.Totals {
	totals := domain.Totals{Income: decimal.Zero, Expense: decimal.Zero}
	for _, txn := range transactions {
		switch txn.Kind {
		case domain.Income:
			totals.Income = totals.Income.Add(txn.Amount)
		case domain.Expense:
			totals.Expense = totals.Expense.Add(txn.Amount)
		}
	}
	return totals
}

// CategoryBreakdown groups the sequence by (kind, category name) and sums
// amounts per group. A category with no matching transactions is absent from
// the result. Rows are sorted by name so repeated calls over the same
// sequence are identical.
func (s *summaryService) CategoryBreakdown(transactions []domain.Transaction) domain.CategoryBreakdown {
	incomeByName := make(map[string]decimal.Decimal)
	expenseByName := make(map[string]decimal.Decimal)

	for _, txn := range transactions {
		switch txn.Kind {
		case domain.Income:
			incomeByName[txn.CategoryName] = incomeByName[txn.CategoryName].Add(txn.Amount)
		case domain.Expense:
			expenseByName[txn.CategoryName] = expenseByName[txn.CategoryName].Add(txn.Amount)
		}
	}

	toRows := func(byName map[string]decimal.Decimal) []domain.CategoryTotal {
		rows := make([]domain.CategoryTotal, 0, len(byName))
		for name, amount := range byName {
			rows = append(rows, domain.CategoryTotal{Name: name, Amount: amount})
		}
		sort.Slice(rows, func(i, j int) bool { return rows[i].Name < rows[j].Name })
		return rows
	}

	return domain.CategoryBreakdown{
		Income:  toRows(incomeByName),
		Expense: toRows(expenseByName),
	}
}

// Shares computes each side's proportion of income+expense. A zero total
// yields 0 for both shares rather than NaN, since proportional-width
// rendering cannot tolerate NaN.
func (s *summaryService) Shares(totals domain.Totals) domain.ShareSplit {
	total := totals.Income.Add(totals.Expense)
	if total.IsZero() {
		return domain.ShareSplit{}
	}
	return domain.ShareSplit{
		Income:  totals.Income.Div(total).InexactFloat64(),
		Expense: totals.Expense.Div(total).InexactFloat64(),
	}
}

// Watch delivers an initial snapshot, then recomputes under the same query
// after every committed write to the transaction collection. The returned
// stop function releases the bus subscription; no callbacks fire after it
// returns.
func (s *summaryService) Watch(ctx context.Context, query domain.TransactionQuery, fn func(domain.Summary)) (func(), error) {
	snapshot, err := s.Summarize(ctx, query)
	if err != nil {
		return nil, err
	}
	fn(*snapshot)

	sub := s.bus.Subscribe(func(e events.Event) {
		snap, err := s.Summarize(ctx, query)
		if err != nil {
			s.LogError(ctx, err, "Failed to recompute summary after store change",
				slog.String("op", string(e.Op)))
			return
		}
		fn(*snap)
	}, events.KindTransaction)

	return sub.Close, nil
}
