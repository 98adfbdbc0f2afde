package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"payout_manager/internal/domain"
)

type SettingsStore struct {
	db *sqlx.DB
}

func NewSettingsStore(db *sqlx.DB) *SettingsStore {
	return &SettingsStore{db: db}
}

// Get reads the singleton settings row. Before the first save, defaults are
// returned: zero budget, zero rate, budget-proportional method.
func (s *SettingsStore) Get(ctx context.Context) (*domain.Settings, error) {
	var settings domain.Settings
	query := `
		SELECT total_budget, pay_per_view, calculation_method
		FROM payout_settings
		WHERE id = 1`

	err := s.db.GetContext(ctx, &settings, query)
	if errors.Is(err, sql.ErrNoRows) {
		return &domain.Settings{
			TotalBudget: decimal.Zero,
			PayPerView:  decimal.Zero,
			Method:      domain.MethodBudget,
		}, nil
	}
	if err != nil {
		return nil, err
	}
	return &settings, nil
}

func (s *SettingsStore) Save(ctx context.Context, settings *domain.Settings) error {
	query := `
		INSERT INTO payout_settings (id, total_budget, pay_per_view, calculation_method)
		VALUES (1, $1, $2, $3)
		ON CONFLICT (id) DO UPDATE SET
			total_budget = EXCLUDED.total_budget,
			pay_per_view = EXCLUDED.pay_per_view,
			calculation_method = EXCLUDED.calculation_method`

	_, err := s.db.ExecContext(ctx, query,
		settings.TotalBudget,
		settings.PayPerView,
		settings.Method,
	)
	return err
}
