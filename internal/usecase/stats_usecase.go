package usecase

import (
	"context"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/shopzone-microservice/internal/domain"
	"github.com/shopzone-microservice/internal/domain/repository"
)

// StatsUseCase maintains the per-boundary shop count cache that backs
// low-zoom map aggregates.
type StatsUseCase struct {
	boundaryRepo repository.BoundaryRepository
	shopRepo     repository.ShopRepository
	statsRepo    repository.StatsRepository
	logger       *zap.Logger
	running      atomic.Bool
}

// NewStatsUseCase creates a new StatsUseCase.
func NewStatsUseCase(
	boundaryRepo repository.BoundaryRepository,
	shopRepo repository.ShopRepository,
	statsRepo repository.StatsRepository,
	logger *zap.Logger,
) *StatsUseCase {
	return &StatsUseCase{
		boundaryRepo: boundaryRepo,
		shopRepo:     shopRepo,
		statsRepo:    statsRepo,
		logger:       logger,
	}
}

// RefreshResult summarizes one refresh pass.
type RefreshResult struct {
	Refreshed int  `json:"refreshed"`
	Failed    int  `json:"failed"`
	Skipped   bool `json:"skipped"`
}

// RunOnce recounts every boundary and upserts the cache rows. Overlapping
// runs are collapsed: a call while a pass is in flight returns Skipped
// instead of piling up. One boundary failing never aborts the pass.
func (uc *StatsUseCase) RunOnce(ctx context.Context) (*RefreshResult, error) {
	if !uc.running.CompareAndSwap(false, true) {
		uc.logger.Info("Stats refresh already in flight, skipping")
		return &RefreshResult{Skipped: true}, nil
	}
	defer uc.running.Store(false)

	ids, err := uc.boundaryRepo.ListIDs(ctx)
	if err != nil {
		return nil, err
	}

	started := time.Now()
	result := &RefreshResult{}

	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		count, err := uc.shopRepo.CountActiveInBoundary(ctx, id)
		if err != nil {
			uc.logger.Error("Failed to count shops for boundary",
				zap.Int64("boundary_id", id), zap.Error(err))
			result.Failed++
			continue
		}

		err = uc.statsRepo.Upsert(ctx, &domain.AreaShopStats{
			BoundaryID:    id,
			ShopCount:     count,
			LastUpdatedAt: time.Now().UTC(),
		})
		if err != nil {
			uc.logger.Error("Failed to upsert boundary stats",
				zap.Int64("boundary_id", id), zap.Error(err))
			result.Failed++
			continue
		}
		result.Refreshed++
	}

	uc.logger.Info("Stats refresh pass completed",
		zap.Int("refreshed", result.Refreshed),
		zap.Int("failed", result.Failed),
		zap.Duration("took", time.Since(started)),
	)

	return result, nil
}

// GetAll returns every cached stats row.
func (uc *StatsUseCase) GetAll(ctx context.Context) ([]*domain.AreaShopStats, error) {
	return uc.statsRepo.GetAll(ctx)
}
