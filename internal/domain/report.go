package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Outcome of a single author within a payout cycle.
const (
	OutcomePaid    = "paid"
	OutcomeSkipped = "skipped"
	OutcomeFailed  = "failed"
)

// AuthorResult is the typed per-author outcome of a payout cycle.
type AuthorResult struct {
	AuthorID    int64           `json:"author_id"`
	DisplayName string          `json:"display_name"`
	Outcome     string          `json:"outcome"`
	Views       int64           `json:"views"`
	ReadingTime int64           `json:"reading_time"`
	Payout      decimal.Decimal `json:"payout"`
	Error       string          `json:"error,omitempty"`
}

// CycleReport summarizes one payout cycle. Paid and Failed counts are
// reported separately so a partial failure is visible to the caller.
type CycleReport struct {
	Paid     int            `json:"paid"`
	Skipped  int            `json:"skipped"`
	Failed   int            `json:"failed"`
	Results  []AuthorResult `json:"results"`
	Duration time.Duration  `json:"duration"`
}

// AuthorPreview is a dry-run payout line: what an author would be paid if a
// cycle ran right now. Nothing is logged or reset.
type AuthorPreview struct {
	AuthorID    int64           `json:"author_id"`
	DisplayName string          `json:"display_name"`
	Views       int64           `json:"views"`
	ReadingTime int64           `json:"reading_time"`
	Payout      decimal.Decimal `json:"payout"`
}
