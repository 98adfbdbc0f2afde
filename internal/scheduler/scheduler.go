package scheduler

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"payout_manager/internal/domain"
)

// CycleRunner runs one payout cycle.
type CycleRunner interface {
	Run(ctx context.Context) (*domain.CycleReport, error)
}

// Scheduler triggers payout cycles on a fixed interval. The processor bounds
// each run with its own cycle timeout.
type Scheduler struct {
	runner   CycleRunner
	interval time.Duration
	logger   *slog.Logger
}

func NewScheduler(runner CycleRunner, interval time.Duration, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		runner:   runner,
		interval: interval,
		logger:   logger,
	}
}

func (s *Scheduler) Start(ctx context.Context) error {
	s.logger.Info("payout scheduler started", "interval", s.interval)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("payout scheduler stopped")
			return ctx.Err()
		case <-ticker.C:
			s.runCycle(ctx)
		}
	}
}

func (s *Scheduler) runCycle(ctx context.Context) {
	report, err := s.runner.Run(ctx)
	if errors.Is(err, domain.ErrCycleInProgress) {
		s.logger.Warn("skipping scheduled cycle, previous cycle still running")
		return
	}
	if err != nil {
		s.logger.Error("scheduled payout cycle failed", "error", err)
		return
	}

	s.logger.Info("scheduled payout cycle finished",
		"paid", report.Paid,
		"skipped", report.Skipped,
		"failed", report.Failed,
	)
}
