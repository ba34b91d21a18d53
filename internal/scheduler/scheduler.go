// Package scheduler runs the poll reconciliation pass on a fixed interval.
package scheduler

import (
	"context"
	"time"

	"trackersync/internal/domain"

	"go.uber.org/zap"
)

type Sweeper interface {
	TransitionMergedStories(ctx context.Context) (domain.PassResult, error)
}

type Scheduler struct {
	sweeper  Sweeper
	interval time.Duration
	log      *zap.SugaredLogger
}

func New(sweeper Sweeper, interval time.Duration, log *zap.SugaredLogger) *Scheduler {
	return &Scheduler{
		sweeper:  sweeper,
		interval: interval,
		log:      log.Named("scheduler"),
	}
}

// Run sweeps once immediately and then on every tick until ctx is done.
// A zero interval disables the scheduler.
func (s *Scheduler) Run(ctx context.Context) {
	if s.interval <= 0 {
		s.log.Infow("periodic sweep disabled")
		return
	}
	s.log.Infow("periodic sweep enabled", "interval", s.interval)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		s.sweep(ctx)

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

func (s *Scheduler) sweep(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}
	result, err := s.sweeper.TransitionMergedStories(ctx)
	if err != nil {
		s.log.Errorw("sweep failed", "error", err)
		return
	}
	if result.Failed() {
		s.log.Warnw("sweep finished with failures", "failures", len(result.Failures), "delivered", len(result.Delivered))
	}
}
