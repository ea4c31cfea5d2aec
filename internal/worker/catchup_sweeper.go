package worker

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/familybank/allowance/internal/domain/model"
)

// AllowanceFacade exposes the subset of application functionality required by the sweeper.
type AllowanceFacade interface {
	Children(ctx context.Context) ([]model.User, error)
	CatchupChild(ctx context.Context, usr *model.User) error
}

// CatchupSweeper periodically runs the accrual catchup for every child, so
// daily income and month-end interest land even when nobody opens the app.
// Catchup is idempotent, so overlapping with request-triggered runs is safe.
type CatchupSweeper struct {
	facade        AllowanceFacade
	sweepInterval time.Duration
	workers       int
	logger        *slog.Logger

	jobs   chan model.User
	wg     sync.WaitGroup
	cancel context.CancelFunc
	mu     sync.Mutex
}

// NewCatchupSweeper constructs the sweeper worker pool.
func NewCatchupSweeper(facade AllowanceFacade, sweepInterval time.Duration, workers int, logger *slog.Logger) *CatchupSweeper {
	if workers <= 0 {
		workers = 1
	}
	return &CatchupSweeper{
		facade:        facade,
		sweepInterval: sweepInterval,
		workers:       workers,
		logger:        logger,
		jobs:          make(chan model.User, workers*4),
	}
}

// Start launches background sweeping. The sweeper detaches from ctx's
// cancellation: startup hooks hand in short-lived contexts, and a sweeper tied
// to one would die as soon as startup finished. Only Stop terminates the pool;
// ctx contributes values alone.
func (s *CatchupSweeper) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	runCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	s.cancel = cancel

	for i := 0; i < s.workers; i++ {
		s.wg.Add(1)
		go s.worker(runCtx)
	}

	s.wg.Add(1)
	go s.dispatch(runCtx)
}

// Stop waits for all workers to finish.
func (s *CatchupSweeper) Stop() {
	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.mu.Unlock()

	s.wg.Wait()
}

func (s *CatchupSweeper) dispatch(ctx context.Context) {
	defer s.wg.Done()
	defer close(s.jobs)
	ticker := time.NewTicker(s.sweepInterval)
	defer ticker.Stop()

	// First sweep right away; a server restarted after downtime should not
	// wait a full interval to backfill postings.
	s.sweep(ctx)

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

func (s *CatchupSweeper) sweep(ctx context.Context) {
	children, err := s.facade.Children(ctx)
	if err != nil {
		s.logger.Error("list children for sweep failed", slog.String("error", err.Error()))
		return
	}
	for _, child := range children {
		select {
		case <-ctx.Done():
			return
		case s.jobs <- child:
		}
	}
}

func (s *CatchupSweeper) worker(ctx context.Context) {
	defer s.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case child, ok := <-s.jobs:
			if !ok {
				return
			}
			if err := s.facade.CatchupChild(ctx, &child); err != nil {
				s.logger.Error("catchup sweep failed",
					slog.Int64("user_id", child.ID), slog.String("error", err.Error()))
			}
		}
	}
}
