package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// CalculationMethod selects how author payouts are computed.
type CalculationMethod string

const (
	// MethodBudget distributes a fixed budget weighted by view share and
	// reading engagement.
	MethodBudget CalculationMethod = "budget"
	// MethodPerView pays a flat rate per view.
	MethodPerView CalculationMethod = "ppv"
)

// Valid reports whether m is a known calculation method.
func (m CalculationMethod) Valid() bool {
	return m == MethodBudget || m == MethodPerView
}

// Settings is the payout configuration, stored as a single row and passed
// explicitly into every calculation.
type Settings struct {
	TotalBudget decimal.Decimal   `db:"total_budget" json:"total_budget"`
	PayPerView  decimal.Decimal   `db:"pay_per_view" json:"pay_per_view"`
	Method      CalculationMethod `db:"calculation_method" json:"calculation_method"`
}

// AuthorMetrics are per-author totals aggregated over the author's content
// items. Recomputed fresh on every aggregation, never persisted.
type AuthorMetrics struct {
	AuthorID          int64
	TotalViews        int64
	TotalReadingTime  int64
	TotalWords        int64
	AvgSecondsPerWord decimal.Decimal
}

// HasActivity reports whether the author accumulated anything since the last
// payout cycle.
func (m AuthorMetrics) HasActivity() bool {
	return m.TotalViews > 0 || m.TotalReadingTime > 0
}

// AuthorAggregate couples the derived metrics with the per-item counter
// snapshot they were summed from.
type AuthorAggregate struct {
	Metrics AuthorMetrics
	Items   []MetricSnapshot
}

// GlobalTotals are the cross-author normalization denominators for the
// budget-proportional strategy, computed once per cycle over the eligible
// author set.
type GlobalTotals struct {
	Views       int64
	ReadingTime int64
}

// LogEntry is one finalized payout transaction. Entries are append-only.
type LogEntry struct {
	ID          int64           `db:"id" json:"id"`
	AuthorID    int64           `db:"author_id" json:"author_id"`
	DisplayName string          `db:"display_name" json:"display_name"`
	Views       int64           `db:"views" json:"views"`
	ReadingTime int64           `db:"reading_time" json:"reading_time"`
	Payout      decimal.Decimal `db:"payout" json:"payout"`
	PayoutDate  time.Time       `db:"payout_date" json:"payout_date"`
}

// AuthorSummary is the all-time rollup of an author's logged payouts.
type AuthorSummary struct {
	AuthorID         int64           `db:"author_id" json:"author_id"`
	DisplayName      string          `db:"display_name" json:"display_name"`
	TotalViews       int64           `db:"total_views" json:"total_views"`
	TotalReadingTime int64           `db:"total_reading_time" json:"total_reading_time"`
	TotalPayout      decimal.Decimal `db:"total_payout" json:"total_payout"`
}
