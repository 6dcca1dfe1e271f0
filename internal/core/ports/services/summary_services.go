package services

import (
	"context"

	"github.com/pocketfin/budget_tracker_app/internal/core/domain"
)

// SummarySvc is the query/aggregation engine: it turns the transaction
// collection plus a filter/sort configuration into a display list and
// aggregate figures, and keeps subscribers up to date as the collection
// changes.
type SummarySvc interface {
	// Summarize computes one snapshot (list, totals, breakdown, shares)
	// under the given query.
	Summarize(ctx context.Context, query domain.TransactionQuery) (*domain.Summary, error)

	// Totals sums income and expense amounts over the sequence passed in.
	// An empty input yields zero totals.
	Totals(transactions []domain.Transaction) domain.Totals

	// CategoryBreakdown groups the sequence by (kind, category name),
	// summing amounts per group. Categories without activity are absent.
	CategoryBreakdown(transactions []domain.Transaction) domain.CategoryBreakdown

	// Shares computes the proportional split of income and expense in their
	// sum; both shares are 0 when the sum is zero.
	Shares(totals domain.Totals) domain.ShareSplit

	// Watch delivers an initial snapshot and then recomputes and redelivers
	// after every committed write to the transaction collection, all under
	// the query given here. The returned stop function releases the
	// underlying subscription; no callbacks fire after it returns.
	Watch(ctx context.Context, query domain.TransactionQuery, fn func(domain.Summary)) (stop func(), err error)
}
