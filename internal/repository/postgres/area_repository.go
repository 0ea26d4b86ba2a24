package postgres

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/shopzone-microservice/internal/domain"
	"github.com/shopzone-microservice/internal/domain/repository"
	"github.com/shopzone-microservice/internal/pkg/errors"
)

type areaRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

// NewAreaRepository creates the PostGIS-backed AreaRepository.
func NewAreaRepository(db *DB) repository.AreaRepository {
	return &areaRepository{
		db:     db.DB,
		logger: db.logger,
	}
}

const areaColumns = `
	oa.id, oa.name_en, oa.name_ar, oa.slug, oa.is_active, oa.display_level,
	oa.centroid_lat, oa.centroid_lon, oa.default_search_radius_m, oa.default_map_zoom,
	oa.geometry_source, oa.primary_admin_boundary_id, oa.created_at, oa.updated_at
`

func scanArea(row interface {
	Scan(dest ...interface{}) error
}) (*domain.OperationalArea, error) {
	var a domain.OperationalArea
	err := row.Scan(
		&a.ID, &a.NameEn, &a.NameAr, &a.Slug, &a.IsActive, &a.DisplayLevel,
		&a.CentroidLat, &a.CentroidLon, &a.DefaultSearchRadiusM, &a.DefaultMapZoom,
		&a.GeometrySource, &a.PrimaryAdminBoundaryID, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// Insert stores one operational area. Custom geometry columns stay NULL for
// derived areas, the admin reference stays NULL for custom ones.
func (r *areaRepository) Insert(ctx context.Context, area *domain.OperationalArea) error {
	query := `
		INSERT INTO operational_areas (
			id, name_en, name_ar, slug, is_active, display_level,
			centroid_lat, centroid_lon, default_search_radius_m, default_map_zoom,
			geometry_source, custom_boundary, custom_simplified_boundary,
			primary_admin_boundary_id
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11,
			ST_SetSRID(ST_Multi(ST_GeomFromGeoJSON($12)), 4326),
			ST_SetSRID(ST_Multi(ST_GeomFromGeoJSON($13)), 4326),
			$14
		)
		RETURNING created_at, updated_at
	`

	custom, err := multiPolygonToJSON(area.CustomBoundary)
	if err != nil {
		r.logger.Error("Failed to encode custom boundary", zap.String("slug", area.Slug), zap.Error(err))
		return errors.ErrDatabaseError
	}
	customSimplified, err := multiPolygonToJSON(area.CustomSimplified)
	if err != nil {
		r.logger.Error("Failed to encode simplified custom boundary", zap.String("slug", area.Slug), zap.Error(err))
		return errors.ErrDatabaseError
	}

	err = r.db.QueryRowContext(ctx, query,
		area.ID, area.NameEn, area.NameAr, area.Slug, area.IsActive, area.DisplayLevel,
		area.CentroidLat, area.CentroidLon, area.DefaultSearchRadiusM, area.DefaultMapZoom,
		area.GeometrySource, custom, customSimplified, area.PrimaryAdminBoundaryID,
	).Scan(&area.CreatedAt, &area.UpdatedAt)
	if err != nil {
		r.logger.Error("Failed to insert operational area",
			zap.String("slug", area.Slug), zap.Error(err))
		return errors.ErrDatabaseError
	}

	return nil
}

// GetBySlug returns an area by its globally unique slug.
func (r *areaRepository) GetBySlug(ctx context.Context, slug string) (*domain.OperationalArea, error) {
	query := `SELECT ` + areaColumns + ` FROM operational_areas oa WHERE oa.slug = $1`

	area, err := scanArea(r.db.QueryRowContext(ctx, query, slug))
	if err == sql.ErrNoRows {
		return nil, errors.ErrAreaNotFound
	}
	if err != nil {
		r.logger.Error("Failed to get area by slug", zap.String("slug", slug), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	return area, nil
}

// SlugExists probes for an existing slug, used by synthesis idempotence.
func (r *areaRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM operational_areas WHERE slug = $1)`, slug,
	).Scan(&exists)
	if err != nil {
		r.logger.Error("Failed to probe area slug", zap.String("slug", slug), zap.Error(err))
		return false, errors.ErrDatabaseError
	}
	return exists, nil
}

// ListActive returns active areas ordered by English name.
func (r *areaRepository) ListActive(ctx context.Context) ([]*domain.OperationalArea, error) {
	query := `SELECT ` + areaColumns + ` FROM operational_areas oa WHERE oa.is_active ORDER BY oa.name_en ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		r.logger.Error("Failed to list active areas", zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	defer rows.Close()

	var areas []*domain.OperationalArea
	for rows.Next() {
		area, err := scanArea(rows)
		if err != nil {
			r.logger.Error("Failed to scan area", zap.Error(err))
			continue
		}
		areas = append(areas, area)
	}

	if err = rows.Err(); err != nil {
		r.logger.Error("Error iterating area rows", zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	return areas, nil
}

// ListSlugs returns every known area slug for assignment diagnostics.
func (r *areaRepository) ListSlugs(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT slug FROM operational_areas ORDER BY slug ASC`)
	if err != nil {
		r.logger.Error("Failed to list area slugs", zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	defer rows.Close()

	var slugs []string
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			r.logger.Error("Failed to scan area slug", zap.Error(err))
			continue
		}
		slugs = append(slugs, s)
	}

	if err = rows.Err(); err != nil {
		r.logger.Error("Error iterating area slug rows", zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	return slugs, nil
}

// GetIntersectingViewport returns active areas whose effective geometry
// intersects the viewport. The effective geometry is the area's own custom
// boundary or, for derived areas, the linked admin boundary's geometry.
func (r *areaRepository) GetIntersectingViewport(ctx context.Context, bbox domain.BoundingBox) ([]*domain.OperationalArea, error) {
	query := `
		SELECT ` + areaColumns + `
		FROM operational_areas oa
		LEFT JOIN admin_boundaries ab ON ab.id = oa.primary_admin_boundary_id
		WHERE oa.is_active
		  AND COALESCE(oa.custom_boundary, ab.detailed_boundary) && ST_MakeEnvelope($1, $2, $3, $4, 4326)
		  AND ST_Intersects(
			COALESCE(oa.custom_boundary, ab.detailed_boundary),
			ST_MakeEnvelope($1, $2, $3, $4, 4326)
		  )
		ORDER BY oa.name_en ASC
	`

	rows, err := r.db.QueryContext(ctx, query, bbox.MinLon, bbox.MinLat, bbox.MaxLon, bbox.MaxLat)
	if err != nil {
		r.logger.Error("Failed to get areas in viewport",
			zap.Float64("min_lat", bbox.MinLat),
			zap.Float64("min_lon", bbox.MinLon),
			zap.Float64("max_lat", bbox.MaxLat),
			zap.Float64("max_lon", bbox.MaxLon),
			zap.Error(err),
		)
		return nil, errors.ErrDatabaseError
	}
	defer rows.Close()

	var areas []*domain.OperationalArea
	for rows.Next() {
		area, err := scanArea(rows)
		if err != nil {
			r.logger.Error("Failed to scan area", zap.Error(err))
			continue
		}
		areas = append(areas, area)
	}

	if err = rows.Err(); err != nil {
		r.logger.Error("Error iterating area rows", zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	return areas, nil
}

// GetContainingPoint returns the active area containing the point, preferring
// the smallest default radius when areas overlap (the most specific zone).
func (r *areaRepository) GetContainingPoint(ctx context.Context, lat, lon float64) (*domain.OperationalArea, error) {
	query := `
		WITH point AS (
			SELECT ST_SetSRID(ST_MakePoint($1, $2), 4326) AS geom
		)
		SELECT ` + areaColumns + `
		FROM operational_areas oa
		LEFT JOIN admin_boundaries ab ON ab.id = oa.primary_admin_boundary_id, point
		WHERE oa.is_active
		  AND COALESCE(oa.custom_boundary, ab.detailed_boundary) && point.geom
		  AND ST_Contains(COALESCE(oa.custom_boundary, ab.detailed_boundary), point.geom)
		ORDER BY oa.default_search_radius_m ASC
		LIMIT 1
	`

	area, err := scanArea(r.db.QueryRowContext(ctx, query, lon, lat))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to get area containing point",
			zap.Float64("lat", lat), zap.Float64("lon", lon), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	return area, nil
}
