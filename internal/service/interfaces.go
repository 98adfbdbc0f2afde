package service

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks

import (
	"context"

	"github.com/shopspring/decimal"

	"payout_manager/internal/domain"
)

type ContentStore interface {
	ListByAuthor(ctx context.Context, authorID int64) ([]domain.ContentItem, error)
	IncrementViews(ctx context.Context, contentID int64) error
	AddReadingTime(ctx context.Context, contentID, seconds int64) error
	SubtractMetrics(ctx context.Context, snapshots []domain.MetricSnapshot) error
}

type AuthorStore interface {
	GetByID(ctx context.Context, id int64) (*domain.Author, error)
	ListByRoles(ctx context.Context, roles []string) ([]domain.Author, error)
}

type LedgerStore interface {
	Append(ctx context.Context, authorID, views, readingTime int64, payout decimal.Decimal) (*domain.LogEntry, error)
	ListAll(ctx context.Context) ([]domain.LogEntry, error)
	SummarizeByAuthor(ctx context.Context) ([]domain.AuthorSummary, error)
}

type SettingsStore interface {
	Get(ctx context.Context) (*domain.Settings, error)
	Save(ctx context.Context, settings *domain.Settings) error
}

type Aggregator interface {
	Aggregate(ctx context.Context, authorID int64) (*domain.AuthorAggregate, error)
}

type TransactionManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

type EventPublisher interface {
	Publish(ctx context.Context, event *domain.TrackingEvent) error
	Close() error
}
