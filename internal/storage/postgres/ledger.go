package postgres

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"payout_manager/internal/domain"
)

// LedgerStore is the append-only payout log. Entries are only ever inserted;
// there is no update or delete path.
type LedgerStore struct {
	db *sqlx.DB
}

func NewLedgerStore(db *sqlx.DB) *LedgerStore {
	return &LedgerStore{db: db}
}

// Append writes one payout entry and returns it with the assigned ID and
// timestamp.
func (s *LedgerStore) Append(ctx context.Context, authorID, views, readingTime int64, payout decimal.Decimal) (*domain.LogEntry, error) {
	query := `
		INSERT INTO payout_logs (author_id, views, reading_time, payout)
		VALUES ($1, $2, $3, $4)
		RETURNING id, payout_date`

	entry := &domain.LogEntry{
		AuthorID:    authorID,
		Views:       views,
		ReadingTime: readingTime,
		Payout:      payout,
	}

	err := GetExecutor(ctx, s.db).QueryRowxContext(ctx, query,
		authorID, views, readingTime, payout,
	).Scan(&entry.ID, &entry.PayoutDate)
	if err != nil {
		return nil, err
	}

	return entry, nil
}

func (s *LedgerStore) ListAll(ctx context.Context) ([]domain.LogEntry, error) {
	query := `
		SELECT l.id, l.author_id, a.display_name, l.views, l.reading_time, l.payout, l.payout_date
		FROM payout_logs l
		JOIN authors a ON a.id = l.author_id
		ORDER BY l.payout_date DESC, l.id DESC`

	var entries []domain.LogEntry
	err := s.db.SelectContext(ctx, &entries, query)
	return entries, err
}

func (s *LedgerStore) SummarizeByAuthor(ctx context.Context) ([]domain.AuthorSummary, error) {
	query := `
		SELECT
			l.author_id,
			a.display_name,
			SUM(l.views) AS total_views,
			SUM(l.reading_time) AS total_reading_time,
			SUM(l.payout) AS total_payout
		FROM payout_logs l
		JOIN authors a ON a.id = l.author_id
		GROUP BY l.author_id, a.display_name
		ORDER BY total_payout DESC`

	var summaries []domain.AuthorSummary
	err := s.db.SelectContext(ctx, &summaries, query)
	return summaries, err
}
