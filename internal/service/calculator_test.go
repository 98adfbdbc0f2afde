package service

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"payout_manager/internal/domain"
)

func TestCalculatePayout_PerView(t *testing.T) {
	settings := domain.Settings{
		Method:     domain.MethodPerView,
		PayPerView: decimal.RequireFromString("2.5"),
	}

	tests := []struct {
		name  string
		views int64
		want  string
	}{
		{"zero views", 0, "0.00"},
		{"one view", 1, "2.50"},
		{"fifteen views", 15, "37.50"},
		{"linear in views", 1000, "2500.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			metrics := domain.AuthorMetrics{AuthorID: 7, TotalViews: tt.views}
			payout := CalculatePayout(metrics, domain.GlobalTotals{}, settings)
			assert.Equal(t, tt.want, payout.StringFixed(2))
		})
	}
}

func TestCalculatePayout_Budget(t *testing.T) {
	settings := domain.Settings{
		Method:      domain.MethodBudget,
		TotalBudget: decimal.RequireFromString("1000"),
	}

	metrics := domain.AuthorMetrics{
		AuthorID:         7,
		TotalViews:       15,
		TotalReadingTime: 400,
		TotalWords:       150,
		AvgSecondsPerWord: decimal.NewFromInt(400).
			Div(decimal.NewFromInt(150)),
	}

	t.Run("weighted share of the budget", func(t *testing.T) {
		totals := domain.GlobalTotals{Views: 100, ReadingTime: 2000}
		payout := CalculatePayout(metrics, totals, settings)
		assert.Equal(t, "20.00", payout.StringFixed(2))
	})

	t.Run("zero global views", func(t *testing.T) {
		totals := domain.GlobalTotals{Views: 0, ReadingTime: 2000}
		payout := CalculatePayout(metrics, totals, settings)
		assert.True(t, payout.IsZero())
	})

	t.Run("zero global reading time", func(t *testing.T) {
		totals := domain.GlobalTotals{Views: 100, ReadingTime: 0}
		payout := CalculatePayout(metrics, totals, settings)
		assert.True(t, payout.IsZero())
	})

	t.Run("author without words", func(t *testing.T) {
		totals := domain.GlobalTotals{Views: 100, ReadingTime: 2000}
		inactive := domain.AuthorMetrics{AuthorID: 8, TotalViews: 10}
		payout := CalculatePayout(inactive, totals, settings)
		assert.True(t, payout.IsZero())
	})
}

// The budget strategy does not normalize the engagement multipliers across
// authors, so the committed payouts can exceed the configured budget. This
// pins that behavior: if the formula is ever "corrected", this test must be
// revisited deliberately.
func TestCalculatePayout_BudgetNotNormalized(t *testing.T) {
	settings := domain.Settings{
		Method:      domain.MethodBudget,
		TotalBudget: decimal.RequireFromString("1000"),
	}
	totals := domain.GlobalTotals{Views: 100, ReadingTime: 1000}

	highEngagement := decimal.NewFromInt(40)
	a := domain.AuthorMetrics{AuthorID: 1, TotalViews: 50, AvgSecondsPerWord: highEngagement}
	b := domain.AuthorMetrics{AuthorID: 2, TotalViews: 50, AvgSecondsPerWord: highEngagement}

	sum := CalculatePayout(a, totals, settings).Add(CalculatePayout(b, totals, settings))

	assert.True(t, sum.GreaterThan(settings.TotalBudget),
		"sum of payouts %s should exceed budget %s", sum, settings.TotalBudget)
}
