package consumer

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"

	"payout_manager/internal/domain"
)

type recordingApplier struct {
	events []domain.TrackingEvent
	err    error
}

func (a *recordingApplier) Apply(_ context.Context, event *domain.TrackingEvent) error {
	a.events = append(a.events, *event)
	return a.err
}

func newTestConsumer(applier EventApplier) *RabbitMQ {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
	return &RabbitMQ{tracker: applier, logger: logger}
}

func TestHandle_AppliesValidEvent(t *testing.T) {
	applier := &recordingApplier{}
	c := newTestConsumer(applier)

	c.handle(context.Background(), amqp.Delivery{
		Body: []byte(`{"type":"read","content_id":42,"elapsed_seconds":37}`),
	})

	assert.Len(t, applier.events, 1)
	assert.Equal(t, domain.EventRead, applier.events[0].Type)
	assert.Equal(t, int64(42), applier.events[0].ContentID)
	assert.Equal(t, int64(37), applier.events[0].ElapsedSeconds)
}

func TestHandle_DiscardsMalformedPayload(t *testing.T) {
	applier := &recordingApplier{}
	c := newTestConsumer(applier)

	c.handle(context.Background(), amqp.Delivery{Body: []byte(`{"content_id":`)})

	assert.Empty(t, applier.events)
}

func TestHandle_DiscardsInvalidEvent(t *testing.T) {
	applier := &recordingApplier{err: domain.ErrInvalidEvent}
	c := newTestConsumer(applier)

	// The applier rejects the event; the consumer must not panic and must
	// treat it as consumed.
	c.handle(context.Background(), amqp.Delivery{
		Body: []byte(`{"type":"scroll","content_id":42}`),
	})

	assert.Len(t, applier.events, 1)
}

func TestHandle_StoreFailureDoesNotPanic(t *testing.T) {
	applier := &recordingApplier{err: errors.New("connection refused")}
	c := newTestConsumer(applier)

	c.handle(context.Background(), amqp.Delivery{
		Body: []byte(`{"type":"view","content_id":42}`),
	})

	assert.Len(t, applier.events, 1)
}
