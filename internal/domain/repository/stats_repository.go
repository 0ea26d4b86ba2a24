package repository

import (
	"context"

	"github.com/shopzone-microservice/internal/domain"
)

// StatsRepository owns the per-boundary shop count cache.
type StatsRepository interface {
	// Upsert writes one boundary's count with the refresh timestamp.
	Upsert(ctx context.Context, stats *domain.AreaShopStats) error

	// GetByBoundaryIDs returns cached counts keyed by boundary id.
	GetByBoundaryIDs(ctx context.Context, ids []int64) (map[int64]*domain.AreaShopStats, error)

	// GetAll returns every cached row.
	GetAll(ctx context.Context) ([]*domain.AreaShopStats, error)
}
