package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"payout_manager/internal/domain"
	"payout_manager/internal/service/mocks"
)

type AggregatorTestSuite struct {
	suite.Suite
	ctrl *gomock.Controller

	authors *mocks.MockAuthorStore
	content *mocks.MockContentStore

	aggregator *MetricsAggregator
}

func (s *AggregatorTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())

	s.authors = mocks.NewMockAuthorStore(s.ctrl)
	s.content = mocks.NewMockContentStore(s.ctrl)

	s.aggregator = NewMetricsAggregator(s.authors, s.content)
}

func (s *AggregatorTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func TestAggregatorTestSuite(t *testing.T) {
	suite.Run(t, new(AggregatorTestSuite))
}

// body returns an HTML fragment containing exactly n words.
func body(n int) string {
	return "<p>" + strings.TrimSpace(strings.Repeat("word ", n)) + "</p>"
}

func (s *AggregatorTestSuite) TestAggregate_SumsOwnedContent() {
	ctx := context.Background()

	s.authors.EXPECT().GetByID(ctx, int64(7)).Return(&domain.Author{ID: 7, Role: domain.RoleAuthor}, nil)
	s.content.EXPECT().ListByAuthor(ctx, int64(7)).Return([]domain.ContentItem{
		{ID: 101, AuthorID: 7, Body: body(100), Views: 10, ReadingTimeSeconds: 300},
		{ID: 102, AuthorID: 7, Body: body(50), Views: 5, ReadingTimeSeconds: 100},
	}, nil)

	agg, err := s.aggregator.Aggregate(ctx, 7)

	s.NoError(err)
	s.Equal(int64(15), agg.Metrics.TotalViews)
	s.Equal(int64(400), agg.Metrics.TotalReadingTime)
	s.Equal(int64(150), agg.Metrics.TotalWords)
	s.Equal("2.667", agg.Metrics.AvgSecondsPerWord.Round(3).String())

	s.Equal([]domain.MetricSnapshot{
		{ContentID: 101, Views: 10, ReadingTime: 300},
		{ContentID: 102, Views: 5, ReadingTime: 100},
	}, agg.Items)
}

func (s *AggregatorTestSuite) TestAggregate_NoContent() {
	ctx := context.Background()

	s.authors.EXPECT().GetByID(ctx, int64(7)).Return(&domain.Author{ID: 7, Role: domain.RoleAuthor}, nil)
	s.content.EXPECT().ListByAuthor(ctx, int64(7)).Return(nil, nil)

	agg, err := s.aggregator.Aggregate(ctx, 7)

	s.NoError(err)
	s.Equal(int64(0), agg.Metrics.TotalViews)
	s.Equal(int64(0), agg.Metrics.TotalReadingTime)
	s.True(agg.Metrics.AvgSecondsPerWord.IsZero())
	s.False(agg.Metrics.HasActivity())
	s.Empty(agg.Items)
}

func (s *AggregatorTestSuite) TestAggregate_ZeroWords() {
	ctx := context.Background()

	s.authors.EXPECT().GetByID(ctx, int64(7)).Return(&domain.Author{ID: 7, Role: domain.RoleAuthor}, nil)
	s.content.EXPECT().ListByAuthor(ctx, int64(7)).Return([]domain.ContentItem{
		{ID: 101, AuthorID: 7, Body: "<img src='x'/>", Views: 3, ReadingTimeSeconds: 60},
	}, nil)

	agg, err := s.aggregator.Aggregate(ctx, 7)

	s.NoError(err)
	s.Equal(int64(0), agg.Metrics.TotalWords)
	s.True(agg.Metrics.AvgSecondsPerWord.IsZero())
	s.True(agg.Metrics.HasActivity())
}

func (s *AggregatorTestSuite) TestAggregate_UnknownAuthor() {
	ctx := context.Background()

	s.authors.EXPECT().GetByID(ctx, int64(99)).Return(nil, domain.ErrAuthorNotFound)

	agg, err := s.aggregator.Aggregate(ctx, 99)

	s.Nil(agg)
	s.ErrorIs(err, domain.ErrAuthorNotFound)
}

func TestGlobalTotals(t *testing.T) {
	aggregates := []*domain.AuthorAggregate{
		{Metrics: domain.AuthorMetrics{AuthorID: 1, TotalViews: 15, TotalReadingTime: 400}},
		{Metrics: domain.AuthorMetrics{AuthorID: 2, TotalViews: 85, TotalReadingTime: 1600}},
	}

	totals := GlobalTotals(aggregates)

	if totals.Views != 100 || totals.ReadingTime != 2000 {
		t.Fatalf("unexpected totals: %+v", totals)
	}
}
