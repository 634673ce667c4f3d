// Package scheduler runs the periodic summary sweep.
package scheduler

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/Shivanand-hulikatti/event-planner/internal/service"
)

// DefaultInterval is used when no positive interval is configured.
const DefaultInterval = time.Hour

// Sweeper recomputes the summaries of events near their lead time.
type Sweeper interface {
	Sweep(ctx context.Context) (service.SweepResult, error)
}

// Scheduler triggers a sweep once at start and then on every tick. At most
// one sweep runs at a time; a tick that fires while one is in flight is
// dropped.
type Scheduler struct {
	sweeper  Sweeper
	interval time.Duration
	log      *zap.Logger

	running atomic.Bool
	wg      sync.WaitGroup
	cancel  context.CancelFunc
}

// New constructs a Scheduler.
func New(sweeper Sweeper, interval time.Duration, log *zap.Logger) *Scheduler {
	if interval <= 0 {
		interval = DefaultInterval
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Scheduler{sweeper: sweeper, interval: interval, log: log.Named("scheduler")}
}

// Start launches the ticker loop. It returns immediately.
func (s *Scheduler) Start(ctx context.Context) {
	ctx, s.cancel = context.WithCancel(ctx)

	s.log.Info("summary sweeper started", zap.Duration("interval", s.interval))

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		s.spawn(ctx)

		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.spawn(ctx)
			}
		}
	}()
}

// Stop cancels the loop and waits for an in-flight sweep to return.
func (s *Scheduler) Stop() {
	if s.cancel != nil {
		s.cancel()
	}
	s.wg.Wait()
	s.log.Info("summary sweeper stopped")
}

// Running reports whether a sweep is in flight.
func (s *Scheduler) Running() bool {
	return s.running.Load()
}

func (s *Scheduler) spawn(ctx context.Context) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.Tick(ctx)
	}()
}

// Tick runs one sweep unless another is still running, in which case it
// returns false without doing anything.
func (s *Scheduler) Tick(ctx context.Context) bool {
	if !s.running.CompareAndSwap(false, true) {
		s.log.Debug("previous sweep still running, skipping tick")
		return false
	}
	defer s.running.Store(false)

	start := time.Now()
	res, err := s.sweeper.Sweep(ctx)
	fields := []zap.Field{
		zap.Int("due", res.Due),
		zap.Int("recomputed", res.Recomputed),
		zap.Int("failed", res.Failed),
		zap.Duration("duration", time.Since(start)),
	}
	if err != nil {
		s.log.Error("summary sweep failed", append(fields, zap.Error(err))...)
		return true
	}
	s.log.Info("summary sweep finished", fields...)
	return true
}
