package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"payout_manager/internal/domain"
)

type ContentStore struct {
	db *sqlx.DB
}

func NewContentStore(db *sqlx.DB) *ContentStore {
	return &ContentStore{db: db}
}

func (s *ContentStore) ListByAuthor(ctx context.Context, authorID int64) ([]domain.ContentItem, error) {
	query := `
		SELECT id, author_id, title, body, views, reading_time_seconds, created_at, updated_at
		FROM content_items
		WHERE author_id = $1
		ORDER BY id`

	var items []domain.ContentItem
	err := sqlx.SelectContext(ctx, GetExecutor(ctx, s.db), &items, query, authorID)
	return items, err
}

// IncrementViews bumps the view counter in a single statement so concurrent
// increments for the same item never lose an update.
func (s *ContentStore) IncrementViews(ctx context.Context, contentID int64) error {
	query := `
		UPDATE content_items
		SET views = views + 1, updated_at = now()
		WHERE id = $1`

	res, err := GetExecutor(ctx, s.db).ExecContext(ctx, query, contentID)
	if err != nil {
		return err
	}
	return checkFound(res, contentID)
}

// AddReadingTime accumulates reported seconds in a single statement; see
// IncrementViews.
func (s *ContentStore) AddReadingTime(ctx context.Context, contentID, seconds int64) error {
	query := `
		UPDATE content_items
		SET reading_time_seconds = reading_time_seconds + $2, updated_at = now()
		WHERE id = $1`

	res, err := GetExecutor(ctx, s.db).ExecContext(ctx, query, contentID, seconds)
	if err != nil {
		return err
	}
	return checkFound(res, contentID)
}

// SubtractMetrics decrements each item's counters by the snapshotted values.
// Subtracting instead of zeroing preserves increments that arrived between
// the snapshot and the reset.
func (s *ContentStore) SubtractMetrics(ctx context.Context, snapshots []domain.MetricSnapshot) error {
	if len(snapshots) == 0 {
		return nil
	}

	query := `
		UPDATE content_items
		SET views = views - $2,
		    reading_time_seconds = reading_time_seconds - $3,
		    updated_at = now()
		WHERE id = $1`

	exec := GetExecutor(ctx, s.db)
	for _, snap := range snapshots {
		if snap.Views == 0 && snap.ReadingTime == 0 {
			continue
		}
		if _, err := exec.ExecContext(ctx, query, snap.ContentID, snap.Views, snap.ReadingTime); err != nil {
			return fmt.Errorf("reset content %d: %w", snap.ContentID, err)
		}
	}

	return nil
}

func checkFound(res interface{ RowsAffected() (int64, error) }, contentID int64) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("content %d: %w", contentID, domain.ErrContentNotFound)
	}
	return nil
}
