package service

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"payout_manager/internal/domain"
	"payout_manager/internal/wordcount"
)

// MetricsAggregator rolls up per-content-item counters into per-author
// totals. Results are recomputed from the store on every call, never cached.
type MetricsAggregator struct {
	authors AuthorStore
	content ContentStore
}

func NewMetricsAggregator(authors AuthorStore, content ContentStore) *MetricsAggregator {
	return &MetricsAggregator{authors: authors, content: content}
}

// Aggregate sums views, reading time and word counts over all content items
// owned by the author and derives the average-seconds-per-word engagement
// signal. An author with no content or no accumulated metrics yields zero
// totals, not an error.
func (a *MetricsAggregator) Aggregate(ctx context.Context, authorID int64) (*domain.AuthorAggregate, error) {
	if _, err := a.authors.GetByID(ctx, authorID); err != nil {
		return nil, fmt.Errorf("resolve author %d: %w", authorID, err)
	}

	items, err := a.content.ListByAuthor(ctx, authorID)
	if err != nil {
		return nil, fmt.Errorf("list content for author %d: %w", authorID, err)
	}

	return aggregateItems(authorID, items), nil
}

func aggregateItems(authorID int64, items []domain.ContentItem) *domain.AuthorAggregate {
	agg := &domain.AuthorAggregate{
		Metrics: domain.AuthorMetrics{AuthorID: authorID},
	}

	for _, item := range items {
		agg.Metrics.TotalViews += item.Views
		agg.Metrics.TotalReadingTime += item.ReadingTimeSeconds
		agg.Metrics.TotalWords += int64(wordcount.Count(item.Body))

		agg.Items = append(agg.Items, domain.MetricSnapshot{
			ContentID:   item.ID,
			Views:       item.Views,
			ReadingTime: item.ReadingTimeSeconds,
		})
	}

	if agg.Metrics.TotalWords > 0 {
		agg.Metrics.AvgSecondsPerWord = decimal.NewFromInt(agg.Metrics.TotalReadingTime).
			Div(decimal.NewFromInt(agg.Metrics.TotalWords))
	}

	return agg
}

// GlobalTotals sums views and reading time across the given aggregates. The
// result is the normalization denominator for the budget-proportional
// strategy and must be computed once per payout cycle, before any counters
// are reset.
func GlobalTotals(aggregates []*domain.AuthorAggregate) domain.GlobalTotals {
	var totals domain.GlobalTotals
	for _, agg := range aggregates {
		totals.Views += agg.Metrics.TotalViews
		totals.ReadingTime += agg.Metrics.TotalReadingTime
	}
	return totals
}
