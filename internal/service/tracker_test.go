package service

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"payout_manager/internal/domain"
	"payout_manager/internal/service/mocks"
)

type TrackerTestSuite struct {
	suite.Suite
	ctrl *gomock.Controller

	content *mocks.MockContentStore
	tracker *Tracker
}

func (s *TrackerTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.content = mocks.NewMockContentStore(s.ctrl)

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
	s.tracker = NewTracker(s.content, logger)
}

func (s *TrackerTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func TestTrackerTestSuite(t *testing.T) {
	suite.Run(t, new(TrackerTestSuite))
}

func (s *TrackerTestSuite) TestApply_View() {
	ctx := context.Background()

	s.content.EXPECT().IncrementViews(ctx, int64(42)).Return(nil)

	err := s.tracker.Apply(ctx, &domain.TrackingEvent{Type: domain.EventView, ContentID: 42})
	s.NoError(err)
}

func (s *TrackerTestSuite) TestApply_Read() {
	ctx := context.Background()

	s.content.EXPECT().AddReadingTime(ctx, int64(42), int64(37)).Return(nil)

	err := s.tracker.Apply(ctx, &domain.TrackingEvent{
		Type:           domain.EventRead,
		ContentID:      42,
		ElapsedSeconds: 37,
	})
	s.NoError(err)
}

func (s *TrackerTestSuite) TestApply_ZeroSecondsIsNoop() {
	err := s.tracker.Apply(context.Background(), &domain.TrackingEvent{
		Type:      domain.EventRead,
		ContentID: 42,
	})
	s.NoError(err)
}

func (s *TrackerTestSuite) TestApply_NegativeSeconds() {
	err := s.tracker.Apply(context.Background(), &domain.TrackingEvent{
		Type:           domain.EventRead,
		ContentID:      42,
		ElapsedSeconds: -5,
	})
	s.ErrorIs(err, domain.ErrInvalidEvent)
}

func (s *TrackerTestSuite) TestApply_MissingContentID() {
	err := s.tracker.Apply(context.Background(), &domain.TrackingEvent{Type: domain.EventView})
	s.ErrorIs(err, domain.ErrInvalidEvent)
}

func (s *TrackerTestSuite) TestApply_UnknownType() {
	err := s.tracker.Apply(context.Background(), &domain.TrackingEvent{Type: "scroll", ContentID: 42})
	s.ErrorIs(err, domain.ErrInvalidEvent)
}

func (s *TrackerTestSuite) TestApply_UnknownContent() {
	ctx := context.Background()

	s.content.EXPECT().IncrementViews(ctx, int64(404)).Return(domain.ErrContentNotFound)

	err := s.tracker.Apply(ctx, &domain.TrackingEvent{Type: domain.EventView, ContentID: 404})
	s.ErrorIs(err, domain.ErrContentNotFound)
}

func (s *TrackerTestSuite) TestApply_StoreError() {
	ctx := context.Background()
	storeErr := errors.New("connection refused")

	s.content.EXPECT().AddReadingTime(ctx, int64(42), int64(10)).Return(storeErr)

	err := s.tracker.Apply(ctx, &domain.TrackingEvent{
		Type:           domain.EventRead,
		ContentID:      42,
		ElapsedSeconds: 10,
	})
	s.ErrorIs(err, storeErr)
}
