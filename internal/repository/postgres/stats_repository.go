package postgres

import (
	"context"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/shopzone-microservice/internal/domain"
	"github.com/shopzone-microservice/internal/domain/repository"
	"github.com/shopzone-microservice/internal/pkg/errors"
)

type statsRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

// NewStatsRepository creates the AreaShopStats repository. Only the aggregate
// refresher writes through it.
func NewStatsRepository(db *DB) repository.StatsRepository {
	return &statsRepository{
		db:     db.DB,
		logger: db.logger,
	}
}

// Upsert writes one boundary's cached shop count.
func (r *statsRepository) Upsert(ctx context.Context, stats *domain.AreaShopStats) error {
	query := `
		INSERT INTO area_shop_stats (boundary_id, shop_count, last_updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (boundary_id) DO UPDATE
		SET shop_count = EXCLUDED.shop_count,
		    last_updated_at = EXCLUDED.last_updated_at
	`

	_, err := r.db.ExecContext(ctx, query, stats.BoundaryID, stats.ShopCount, stats.LastUpdatedAt)
	if err != nil {
		r.logger.Error("Failed to upsert area shop stats",
			zap.Int64("boundary_id", stats.BoundaryID), zap.Error(err))
		return errors.ErrDatabaseError
	}

	return nil
}

// GetByBoundaryIDs returns cached counts keyed by boundary id.
func (r *statsRepository) GetByBoundaryIDs(ctx context.Context, ids []int64) (map[int64]*domain.AreaShopStats, error) {
	if len(ids) == 0 {
		return map[int64]*domain.AreaShopStats{}, nil
	}

	query := `
		SELECT boundary_id, shop_count, last_updated_at
		FROM area_shop_stats
		WHERE boundary_id = ANY($1)
	`

	rows, err := r.db.QueryContext(ctx, query, ids)
	if err != nil {
		r.logger.Error("Failed to get area shop stats", zap.Int("id_count", len(ids)), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	defer rows.Close()

	stats := make(map[int64]*domain.AreaShopStats, len(ids))
	for rows.Next() {
		var s domain.AreaShopStats
		if err := rows.Scan(&s.BoundaryID, &s.ShopCount, &s.LastUpdatedAt); err != nil {
			r.logger.Error("Failed to scan area shop stats", zap.Error(err))
			continue
		}
		stats[s.BoundaryID] = &s
	}

	if err = rows.Err(); err != nil {
		r.logger.Error("Error iterating stats rows", zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	return stats, nil
}

// GetAll returns every cached stats row.
func (r *statsRepository) GetAll(ctx context.Context) ([]*domain.AreaShopStats, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT boundary_id, shop_count, last_updated_at FROM area_shop_stats ORDER BY boundary_id ASC`,
	)
	if err != nil {
		r.logger.Error("Failed to get all area shop stats", zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	defer rows.Close()

	var stats []*domain.AreaShopStats
	for rows.Next() {
		var s domain.AreaShopStats
		if err := rows.Scan(&s.BoundaryID, &s.ShopCount, &s.LastUpdatedAt); err != nil {
			r.logger.Error("Failed to scan area shop stats", zap.Error(err))
			continue
		}
		stats = append(stats, &s)
	}

	if err = rows.Err(); err != nil {
		r.logger.Error("Error iterating stats rows", zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	return stats, nil
}
