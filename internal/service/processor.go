package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"payout_manager/internal/config"
	"payout_manager/internal/domain"
)

// Processor runs payout cycles: aggregate every eligible author, compute
// payouts against cycle-wide totals, append ledger entries and reset the
// source counters. Only one cycle can run at a time.
type Processor struct {
	authors    AuthorStore
	ledger     LedgerStore
	content    ContentStore
	settings   SettingsStore
	aggregator Aggregator
	txManager  TransactionManager
	logger     *slog.Logger
	config     config.PayoutConfig

	mu sync.Mutex
}

func NewProcessor(
	authors AuthorStore,
	ledger LedgerStore,
	content ContentStore,
	settings SettingsStore,
	aggregator Aggregator,
	txManager TransactionManager,
	logger *slog.Logger,
	cfg config.PayoutConfig,
) *Processor {
	return &Processor{
		authors:    authors,
		ledger:     ledger,
		content:    content,
		settings:   settings,
		aggregator: aggregator,
		txManager:  txManager,
		logger:     logger,
		config:     cfg,
	}
}

// cycleState is everything a cycle needs up front: the eligible authors in a
// stable order, their pre-reset aggregates and the totals over them.
type cycleState struct {
	settings   *domain.Settings
	authors    []domain.Author
	aggregates map[int64]*domain.AuthorAggregate
	totals     domain.GlobalTotals
	failures   map[int64]error
}

// Run executes one payout cycle. Authors whose counters are all zero are
// skipped. For the rest, the ledger entry is written and the counters reset
// inside one transaction per author; a failed author is reported in the
// result and does not stop the cycle.
func (p *Processor) Run(ctx context.Context) (*domain.CycleReport, error) {
	if !p.mu.TryLock() {
		return nil, domain.ErrCycleInProgress
	}
	defer p.mu.Unlock()

	if p.config.CycleTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.config.CycleTimeout)
		defer cancel()
	}

	startTime := time.Now()

	state, err := p.collect(ctx)
	if err != nil {
		return nil, err
	}

	p.logger.Info("starting payout cycle",
		"method", state.settings.Method,
		"eligible_authors", len(state.authors),
		"total_views", state.totals.Views,
		"total_reading_time", state.totals.ReadingTime,
	)

	report := &domain.CycleReport{}

	for _, author := range state.authors {
		if err := ctx.Err(); err != nil {
			return report, fmt.Errorf("payout cycle interrupted: %w", err)
		}

		result := p.processAuthor(ctx, author, state)
		report.Results = append(report.Results, result)

		switch result.Outcome {
		case domain.OutcomePaid:
			report.Paid++
		case domain.OutcomeSkipped:
			report.Skipped++
		case domain.OutcomeFailed:
			report.Failed++
			p.logger.Error("author payout failed", "author_id", author.ID, "error", result.Error)
		}
	}

	report.Duration = time.Since(startTime)

	p.logger.Info("payout cycle completed",
		"paid", report.Paid,
		"skipped", report.Skipped,
		"failed", report.Failed,
		"duration", report.Duration,
	)

	return report, nil
}

// Preview computes the payout every eligible author would receive if a cycle
// ran right now. No ledger entries are written and no counters are touched.
func (p *Processor) Preview(ctx context.Context) ([]domain.AuthorPreview, error) {
	state, err := p.collect(ctx)
	if err != nil {
		return nil, err
	}

	previews := make([]domain.AuthorPreview, 0, len(state.authors))
	for _, author := range state.authors {
		agg, ok := state.aggregates[author.ID]
		if !ok || !agg.Metrics.HasActivity() {
			continue
		}

		previews = append(previews, domain.AuthorPreview{
			AuthorID:    author.ID,
			DisplayName: author.DisplayName,
			Views:       agg.Metrics.TotalViews,
			ReadingTime: agg.Metrics.TotalReadingTime,
			Payout:      CalculatePayout(agg.Metrics, state.totals, *state.settings),
		})
	}

	return previews, nil
}

// collect aggregates all eligible authors before anything is paid or reset,
// so the budget-proportional denominators are consistent across the whole
// cycle.
func (p *Processor) collect(ctx context.Context) (*cycleState, error) {
	settings, err := p.settings.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("load payout settings: %w", err)
	}

	authors, err := p.eligibleAuthors(ctx)
	if err != nil {
		return nil, err
	}

	state := &cycleState{
		settings:   settings,
		authors:    authors,
		aggregates: make(map[int64]*domain.AuthorAggregate, len(authors)),
		failures:   make(map[int64]error),
	}

	var aggregates []*domain.AuthorAggregate
	for _, author := range authors {
		agg, err := p.aggregator.Aggregate(ctx, author.ID)
		if err != nil {
			state.failures[author.ID] = err
			continue
		}
		state.aggregates[author.ID] = agg
		aggregates = append(aggregates, agg)
	}

	state.totals = GlobalTotals(aggregates)

	return state, nil
}

// eligibleAuthors resolves the payable author set: payable roles minus the
// configured exclusion list.
func (p *Processor) eligibleAuthors(ctx context.Context) ([]domain.Author, error) {
	authors, err := p.authors.ListByRoles(ctx, domain.PayableRoles)
	if err != nil {
		return nil, fmt.Errorf("list eligible authors: %w", err)
	}

	excluded := make(map[int64]struct{}, len(p.config.ExcludedAuthorIDs))
	for _, id := range p.config.ExcludedAuthorIDs {
		excluded[id] = struct{}{}
	}

	eligible := authors[:0]
	for _, author := range authors {
		if _, ok := excluded[author.ID]; ok {
			continue
		}
		eligible = append(eligible, author)
	}

	return eligible, nil
}

func (p *Processor) processAuthor(ctx context.Context, author domain.Author, state *cycleState) domain.AuthorResult {
	result := domain.AuthorResult{
		AuthorID:    author.ID,
		DisplayName: author.DisplayName,
	}

	if err, ok := state.failures[author.ID]; ok {
		result.Outcome = domain.OutcomeFailed
		result.Error = err.Error()
		return result
	}

	agg := state.aggregates[author.ID]
	result.Views = agg.Metrics.TotalViews
	result.ReadingTime = agg.Metrics.TotalReadingTime

	if !agg.Metrics.HasActivity() {
		result.Outcome = domain.OutcomeSkipped
		return result
	}

	payout := CalculatePayout(agg.Metrics, state.totals, *state.settings)

	// Ledger write and counter reset commit together. The reset subtracts
	// the snapshot instead of zeroing, so increments that raced the cycle
	// survive into the next period.
	err := p.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		if _, err := p.ledger.Append(txCtx, author.ID, agg.Metrics.TotalViews, agg.Metrics.TotalReadingTime, payout); err != nil {
			return fmt.Errorf("append ledger entry: %w", err)
		}
		if err := p.content.SubtractMetrics(txCtx, agg.Items); err != nil {
			return fmt.Errorf("reset content metrics: %w", err)
		}
		return nil
	})
	if err != nil {
		result.Outcome = domain.OutcomeFailed
		result.Error = err.Error()
		return result
	}

	result.Outcome = domain.OutcomePaid
	result.Payout = payout

	return result
}
