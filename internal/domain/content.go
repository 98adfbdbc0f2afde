package domain

import "time"

// ContentItem is an individually trackable unit of content owned by one
// author. The view and reading-time counters are incremented by the tracking
// pipeline and reset only by a payout cycle.
type ContentItem struct {
	ID                 int64     `db:"id"`
	AuthorID           int64     `db:"author_id"`
	Title              string    `db:"title"`
	Body               string    `db:"body"`
	Views              int64     `db:"views"`
	ReadingTimeSeconds int64     `db:"reading_time_seconds"`
	CreatedAt          time.Time `db:"created_at"`
	UpdatedAt          time.Time `db:"updated_at"`
}

// Tracking event types reported by clients.
const (
	EventView = "view"
	EventRead = "read"
)

// TrackingEvent is a fire-and-forget signal from a client page view: either
// a single view or a number of seconds spent reading. Events are additive;
// duplicate delivery over-counts but never corrupts.
type TrackingEvent struct {
	Type           string    `json:"type"`
	ContentID      int64     `json:"content_id"`
	ElapsedSeconds int64     `json:"elapsed_seconds,omitempty"`
	ReportedAt     time.Time `json:"reported_at"`
}

// MetricSnapshot captures one content item's counters at a point in time.
// Payout cycles subtract the snapshot from the live counters instead of
// zeroing them, so increments that arrive mid-cycle are preserved.
type MetricSnapshot struct {
	ContentID   int64
	Views       int64
	ReadingTime int64
}
