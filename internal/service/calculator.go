package service

import (
	"github.com/shopspring/decimal"

	"payout_manager/internal/domain"
)

// CalculatePayout computes one author's payout from their aggregated metrics,
// the cycle-wide totals and the payout settings. Amounts are rounded to two
// decimal places. Zero-denominator cases resolve to a zero payout; no error
// is ever returned.
//
// The budget-proportional formula weights the author's view share by an
// engagement ratio (author seconds-per-word over global seconds-per-view).
// The engagement multipliers are not normalized across authors, so the sum of
// all payouts is not guaranteed to match the configured budget. That is the
// documented behavior of this strategy; see the regression test before
// changing it.
func CalculatePayout(metrics domain.AuthorMetrics, totals domain.GlobalTotals, settings domain.Settings) decimal.Decimal {
	switch settings.Method {
	case domain.MethodBudget:
		if totals.Views == 0 || totals.ReadingTime == 0 {
			return decimal.Zero
		}

		globalViews := decimal.NewFromInt(totals.Views)
		viewShare := decimal.NewFromInt(metrics.TotalViews).Div(globalViews)
		secondsPerView := decimal.NewFromInt(totals.ReadingTime).Div(globalViews)
		engagement := metrics.AvgSecondsPerWord.Div(secondsPerView)

		return viewShare.Mul(settings.TotalBudget).Mul(engagement).Round(2)
	default:
		return decimal.NewFromInt(metrics.TotalViews).Mul(settings.PayPerView).Round(2)
	}
}
