package postgres

import (
	"context"
	stderrors "errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/shopzone-microservice/internal/domain"
	"github.com/shopzone-microservice/internal/domain/repository"
	"github.com/shopzone-microservice/internal/pkg/errors"
)

const uniqueViolationCode = "23505"

type shopRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

// NewShopRepository creates the PostGIS-backed ShopRepository.
func NewShopRepository(db *DB) repository.ShopRepository {
	return &shopRepository{
		db:     db.DB,
		logger: db.logger,
	}
}

// Insert stores one shop. A unique violation on (operational_area_id, slug)
// surfaces as ErrSlugConflict so the caller can retry with the next suffix.
func (r *shopRepository) Insert(ctx context.Context, shop *domain.Shop) error {
	query := `
		INSERT INTO shops (
			id, name_en, name_ar, slug, lat, lon, location, category,
			operational_area_id, is_deleted
		) VALUES (
			$1, $2, $3, $4, $5, $6,
			ST_SetSRID(ST_MakePoint($6, $5), 4326),
			$7, $8, $9
		)
		RETURNING created_at, updated_at
	`

	err := r.db.QueryRowContext(ctx, query,
		shop.ID, shop.NameEn, shop.NameAr, shop.Slug, shop.Lat, shop.Lon,
		shop.Category, shop.OperationalAreaID, shop.IsDeleted,
	).Scan(&shop.CreatedAt, &shop.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if stderrors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return errors.ErrSlugConflict
		}
		r.logger.Error("Failed to insert shop",
			zap.String("name_en", shop.NameEn),
			zap.String("area_id", shop.OperationalAreaID),
			zap.Error(err),
		)
		return errors.ErrDatabaseError
	}

	return nil
}

// SlugExistsInArea probes slug uniqueness within one operational area.
func (r *shopRepository) SlugExistsInArea(ctx context.Context, areaID, slug string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM shops WHERE operational_area_id = $1 AND slug = $2)`,
		areaID, slug,
	).Scan(&exists)
	if err != nil {
		r.logger.Error("Failed to probe shop slug",
			zap.String("area_id", areaID), zap.String("slug", slug), zap.Error(err))
		return false, errors.ErrDatabaseError
	}
	return exists, nil
}

// GetInViewport returns active shops inside the bounding box, ordered by id
// so repeated identical requests are stable, capped at limit.
func (r *shopRepository) GetInViewport(ctx context.Context, bbox domain.BoundingBox, category string, limit int) ([]*domain.Shop, error) {
	query := `
		SELECT
			id, name_en, name_ar, slug, lat, lon, category,
			operational_area_id, created_at, updated_at
		FROM shops
		WHERE NOT is_deleted
		  AND location && ST_MakeEnvelope($1, $2, $3, $4, 4326)
		  AND ($5 = '' OR category = $5)
		ORDER BY id ASC
		LIMIT $6
	`

	rows, err := r.db.QueryContext(ctx, query,
		bbox.MinLon, bbox.MinLat, bbox.MaxLon, bbox.MaxLat, category, limit,
	)
	if err != nil {
		r.logger.Error("Failed to get shops in viewport",
			zap.Float64("min_lat", bbox.MinLat),
			zap.Float64("max_lat", bbox.MaxLat),
			zap.Error(err),
		)
		return nil, errors.ErrDatabaseError
	}
	defer rows.Close()

	var shops []*domain.Shop
	for rows.Next() {
		var s domain.Shop
		err := rows.Scan(
			&s.ID, &s.NameEn, &s.NameAr, &s.Slug, &s.Lat, &s.Lon, &s.Category,
			&s.OperationalAreaID, &s.CreatedAt, &s.UpdatedAt,
		)
		if err != nil {
			r.logger.Error("Failed to scan shop", zap.Error(err))
			continue
		}
		shops = append(shops, &s)
	}

	if err = rows.Err(); err != nil {
		r.logger.Error("Error iterating shop rows", zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	return shops, nil
}

// GetInRadius returns active shops within radiusM meters of the point with
// geodesic distances, nearest first. ST_DWithin on geography uses the
// spatial index; no full scan.
func (r *shopRepository) GetInRadius(ctx context.Context, lat, lon, radiusM float64, category string, limit int) ([]*domain.ShopWithDistance, error) {
	query := `
		WITH point AS (
			SELECT ST_SetSRID(ST_MakePoint($1, $2), 4326)::geography AS geom
		)
		SELECT
			s.id, s.name_en, s.name_ar, s.slug, s.lat, s.lon, s.category,
			s.operational_area_id, s.created_at, s.updated_at,
			ST_Distance(s.location::geography, point.geom) AS distance_m
		FROM shops s, point
		WHERE NOT s.is_deleted
		  AND ST_DWithin(s.location::geography, point.geom, $3)
		  AND ($4 = '' OR s.category = $4)
		ORDER BY distance_m ASC, s.id ASC
		LIMIT $5
	`

	rows, err := r.db.QueryContext(ctx, query, lon, lat, radiusM, category, limit)
	if err != nil {
		r.logger.Error("Failed to get shops in radius",
			zap.Float64("lat", lat),
			zap.Float64("lon", lon),
			zap.Float64("radius_m", radiusM),
			zap.Error(err),
		)
		return nil, errors.ErrDatabaseError
	}
	defer rows.Close()

	var shops []*domain.ShopWithDistance
	for rows.Next() {
		var s domain.ShopWithDistance
		err := rows.Scan(
			&s.ID, &s.NameEn, &s.NameAr, &s.Slug, &s.Lat, &s.Lon, &s.Category,
			&s.OperationalAreaID, &s.CreatedAt, &s.UpdatedAt, &s.DistanceM,
		)
		if err != nil {
			r.logger.Error("Failed to scan shop with distance", zap.Error(err))
			continue
		}
		shops = append(shops, &s)
	}

	if err = rows.Err(); err != nil {
		r.logger.Error("Error iterating shop rows", zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	return shops, nil
}

// ListActive returns active shops ordered by English name.
func (r *shopRepository) ListActive(ctx context.Context, category string, nameDesc bool, limit int) ([]*domain.Shop, error) {
	order := "ASC"
	if nameDesc {
		order = "DESC"
	}

	query := `
		SELECT
			id, name_en, name_ar, slug, lat, lon, category,
			operational_area_id, created_at, updated_at
		FROM shops
		WHERE NOT is_deleted
		  AND ($1 = '' OR category = $1)
		ORDER BY name_en ` + order + `, id ASC
		LIMIT $2
	`

	rows, err := r.db.QueryContext(ctx, query, category, limit)
	if err != nil {
		r.logger.Error("Failed to list active shops", zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	defer rows.Close()

	var shops []*domain.Shop
	for rows.Next() {
		var s domain.Shop
		err := rows.Scan(
			&s.ID, &s.NameEn, &s.NameAr, &s.Slug, &s.Lat, &s.Lon, &s.Category,
			&s.OperationalAreaID, &s.CreatedAt, &s.UpdatedAt,
		)
		if err != nil {
			r.logger.Error("Failed to scan shop", zap.Error(err))
			continue
		}
		shops = append(shops, &s)
	}

	if err = rows.Err(); err != nil {
		r.logger.Error("Error iterating shop rows", zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	return shops, nil
}

// CountActiveInBoundary counts non-deleted shops located inside the
// boundary's detailed geometry.
func (r *shopRepository) CountActiveInBoundary(ctx context.Context, boundaryID int64) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM shops s
		JOIN admin_boundaries ab ON ab.id = $1
		WHERE NOT s.is_deleted
		  AND s.location && ab.detailed_boundary
		  AND ST_Contains(ab.detailed_boundary, s.location)
	`

	var count int
	err := r.db.QueryRowContext(ctx, query, boundaryID).Scan(&count)
	if err != nil {
		r.logger.Error("Failed to count shops in boundary",
			zap.Int64("boundary_id", boundaryID), zap.Error(err))
		return 0, errors.ErrDatabaseError
	}

	return count, nil
}
