package stats

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/shopzone-microservice/internal/usecase"
	"github.com/shopzone-microservice/internal/worker"
)

// RefreshWorker periodically recomputes the per-boundary shop counts that
// back low-zoom map aggregates. Counts drift as shops come and go; this
// keeps them eventually consistent without putting COUNT queries on the
// map read path.
type RefreshWorker struct {
	*worker.BaseWorker
	statsUC    *usecase.StatsUseCase
	interval   time.Duration
	runTimeout time.Duration
}

// NewRefreshWorker creates a new RefreshWorker.
func NewRefreshWorker(
	statsUC *usecase.StatsUseCase,
	interval time.Duration,
	runTimeout time.Duration,
	logger *zap.Logger,
) *RefreshWorker {
	return &RefreshWorker{
		BaseWorker: worker.NewBaseWorker("stats-refresh", logger),
		statsUC:    statsUC,
		interval:   interval,
		runTimeout: runTimeout,
	}
}

// Start runs a pass immediately, then on every tick. Overlap protection
// lives in the usecase, so an admin-triggered pass and a scheduled one
// never run concurrently.
func (w *RefreshWorker) Start(ctx context.Context) error {
	logger := w.Logger()
	logger.Info("Starting stats refresh worker",
		zap.Duration("interval", w.interval),
		zap.Duration("run_timeout", w.runTimeout),
	)

	w.runPass(ctx)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-w.StopChan():
			logger.Info("Worker stopped")
			return nil

		case <-ctx.Done():
			logger.Info("Context cancelled")
			return ctx.Err()

		case <-ticker.C:
			w.runPass(ctx)
		}
	}
}

// runPass executes one bounded refresh pass. Failures are logged and the
// loop keeps ticking.
func (w *RefreshWorker) runPass(ctx context.Context) {
	runCtx, cancel := context.WithTimeout(ctx, w.runTimeout)
	defer cancel()

	result, err := w.statsUC.RunOnce(runCtx)
	if err != nil {
		w.Logger().Error("Stats refresh pass failed", zap.Error(err))
		return
	}
	if result.Skipped {
		w.Logger().Info("Stats refresh pass skipped, previous pass still running")
	}
}
