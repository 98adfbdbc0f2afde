package service

import (
	"context"
	"fmt"
	"log/slog"

	"payout_manager/internal/domain"
)

// Tracker applies incoming tracking events to the per-content-item counters.
// Every mutation is a single atomic SQL increment, so concurrent events for
// the same item never lose an update.
type Tracker struct {
	content ContentStore
	logger  *slog.Logger
}

func NewTracker(content ContentStore, logger *slog.Logger) *Tracker {
	return &Tracker{content: content, logger: logger}
}

// Apply validates and records one tracking event. Malformed events return
// domain.ErrInvalidEvent and have no effect.
func (t *Tracker) Apply(ctx context.Context, event *domain.TrackingEvent) error {
	if event.ContentID <= 0 {
		return fmt.Errorf("%w: content_id %d", domain.ErrInvalidEvent, event.ContentID)
	}

	switch event.Type {
	case domain.EventView:
		if err := t.content.IncrementViews(ctx, event.ContentID); err != nil {
			return fmt.Errorf("increment views for content %d: %w", event.ContentID, err)
		}
	case domain.EventRead:
		if event.ElapsedSeconds < 0 {
			return fmt.Errorf("%w: negative elapsed_seconds %d", domain.ErrInvalidEvent, event.ElapsedSeconds)
		}
		if event.ElapsedSeconds == 0 {
			return nil
		}
		if err := t.content.AddReadingTime(ctx, event.ContentID, event.ElapsedSeconds); err != nil {
			return fmt.Errorf("add reading time for content %d: %w", event.ContentID, err)
		}
	default:
		return fmt.Errorf("%w: unknown type %q", domain.ErrInvalidEvent, event.Type)
	}

	t.logger.Debug("tracking event applied",
		"type", event.Type,
		"content_id", event.ContentID,
		"elapsed_seconds", event.ElapsedSeconds,
	)

	return nil
}
