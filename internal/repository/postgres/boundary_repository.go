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

type boundaryRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

// NewBoundaryRepository creates the PostGIS-backed BoundaryRepository.
func NewBoundaryRepository(db *DB) repository.BoundaryRepository {
	return &boundaryRepository{
		db:     db.DB,
		logger: db.logger,
	}
}

// InsertBatch stores boundaries inside one transaction and returns them with
// assigned ids, in input order.
func (r *boundaryRepository) InsertBatch(ctx context.Context, boundaries []*domain.AdministrativeBoundary) ([]*domain.AdministrativeBoundary, error) {
	query := `
		INSERT INTO admin_boundaries (
			name_en, name_ar, admin_level, country_code, official_code, parent_id,
			detailed_boundary, simplified_boundary, centroid_lat, centroid_lon, is_active
		) VALUES (
			$1, $2, $3, $4, $5, $6,
			ST_SetSRID(ST_Multi(ST_GeomFromGeoJSON($7)), 4326),
			ST_SetSRID(ST_Multi(ST_GeomFromGeoJSON($8)), 4326),
			$9, $10, $11
		)
		RETURNING id, created_at, updated_at
	`

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		r.logger.Error("Failed to begin boundary insert transaction", zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	defer tx.Rollback()

	for _, b := range boundaries {
		detailed, err := multiPolygonToJSON(b.Detailed)
		if err != nil {
			r.logger.Error("Failed to encode detailed boundary",
				zap.String("official_code", b.OfficialCode), zap.Error(err))
			return nil, errors.ErrDatabaseError
		}
		simplified, err := multiPolygonToJSON(b.Simplified)
		if err != nil {
			r.logger.Error("Failed to encode simplified boundary",
				zap.String("official_code", b.OfficialCode), zap.Error(err))
			return nil, errors.ErrDatabaseError
		}

		err = tx.QueryRowContext(ctx, query,
			b.NameEn, b.NameAr, b.AdminLevel, b.CountryCode, b.OfficialCode, b.ParentID,
			detailed, simplified, b.CentroidLat, b.CentroidLon, b.IsActive,
		).Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt)
		if err != nil {
			r.logger.Error("Failed to insert boundary",
				zap.String("official_code", b.OfficialCode),
				zap.Int("admin_level", b.AdminLevel),
				zap.Error(err),
			)
			return nil, errors.ErrDatabaseError
		}
	}

	if err := tx.Commit(); err != nil {
		r.logger.Error("Failed to commit boundary batch", zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	return boundaries, nil
}

// CountByLevel reports the row count at an admin level.
func (r *boundaryRepository) CountByLevel(ctx context.Context, level int) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM admin_boundaries WHERE admin_level = $1`, level,
	).Scan(&count)
	if err != nil {
		r.logger.Error("Failed to count boundaries", zap.Int("level", level), zap.Error(err))
		return 0, errors.ErrDatabaseError
	}
	return count, nil
}

// GetByLevel returns all boundaries at a level without geometry payloads.
func (r *boundaryRepository) GetByLevel(ctx context.Context, level int) ([]*domain.AdministrativeBoundary, error) {
	query := `
		SELECT
			id, name_en, name_ar, admin_level, country_code, official_code,
			parent_id, centroid_lat, centroid_lon, is_active, created_at, updated_at
		FROM admin_boundaries
		WHERE admin_level = $1
		ORDER BY official_code ASC
	`

	rows, err := r.db.QueryContext(ctx, query, level)
	if err != nil {
		r.logger.Error("Failed to get boundaries by level", zap.Int("level", level), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	defer rows.Close()

	var boundaries []*domain.AdministrativeBoundary
	for rows.Next() {
		var b domain.AdministrativeBoundary
		err := rows.Scan(
			&b.ID, &b.NameEn, &b.NameAr, &b.AdminLevel, &b.CountryCode, &b.OfficialCode,
			&b.ParentID, &b.CentroidLat, &b.CentroidLon, &b.IsActive, &b.CreatedAt, &b.UpdatedAt,
		)
		if err != nil {
			r.logger.Error("Failed to scan boundary", zap.Error(err))
			continue
		}
		boundaries = append(boundaries, &b)
	}

	if err = rows.Err(); err != nil {
		r.logger.Error("Error iterating boundary rows", zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	return boundaries, nil
}

// GetByID returns one boundary with both geometry resolutions.
func (r *boundaryRepository) GetByID(ctx context.Context, id int64) (*domain.AdministrativeBoundary, error) {
	query := `
		SELECT
			id, name_en, name_ar, admin_level, country_code, official_code,
			parent_id, centroid_lat, centroid_lon, is_active, created_at, updated_at,
			ST_AsGeoJSON(detailed_boundary), ST_AsGeoJSON(simplified_boundary)
		FROM admin_boundaries
		WHERE id = $1
	`

	var b domain.AdministrativeBoundary
	var detailedJSON, simplifiedJSON []byte

	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&b.ID, &b.NameEn, &b.NameAr, &b.AdminLevel, &b.CountryCode, &b.OfficialCode,
		&b.ParentID, &b.CentroidLat, &b.CentroidLon, &b.IsActive, &b.CreatedAt, &b.UpdatedAt,
		&detailedJSON, &simplifiedJSON,
	)
	if err == sql.ErrNoRows {
		return nil, errors.ErrBoundaryNotFound
	}
	if err != nil {
		r.logger.Error("Failed to get boundary by ID", zap.Int64("id", id), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	if b.Detailed, err = jsonToMultiPolygon(detailedJSON); err != nil {
		r.logger.Error("Failed to decode detailed boundary", zap.Int64("id", id), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	if b.Simplified, err = jsonToMultiPolygon(simplifiedJSON); err != nil {
		r.logger.Error("Failed to decode simplified boundary", zap.Int64("id", id), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	return &b, nil
}

// GetCodeMap returns officialCode -> id for one admin level.
func (r *boundaryRepository) GetCodeMap(ctx context.Context, level int) (map[string]int64, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT official_code, id FROM admin_boundaries WHERE admin_level = $1`, level,
	)
	if err != nil {
		r.logger.Error("Failed to get boundary code map", zap.Int("level", level), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	defer rows.Close()

	codes := make(map[string]int64)
	for rows.Next() {
		var code string
		var id int64
		if err := rows.Scan(&code, &id); err != nil {
			r.logger.Error("Failed to scan boundary code", zap.Error(err))
			continue
		}
		codes[code] = id
	}

	if err = rows.Err(); err != nil {
		r.logger.Error("Error iterating boundary code rows", zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	return codes, nil
}

// ListIDs returns every boundary id.
func (r *boundaryRepository) ListIDs(ctx context.Context) ([]int64, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id FROM admin_boundaries ORDER BY id ASC`)
	if err != nil {
		r.logger.Error("Failed to list boundary ids", zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			r.logger.Error("Failed to scan boundary id", zap.Error(err))
			continue
		}
		ids = append(ids, id)
	}

	if err = rows.Err(); err != nil {
		r.logger.Error("Error iterating boundary id rows", zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	return ids, nil
}

// DeleteAll clears the schema in child-before-parent order: shops reference
// operational areas, stats and areas reference boundaries, level-2 boundaries
// reference level-1 rows.
func (r *boundaryRepository) DeleteAll(ctx context.Context) error {
	statements := []string{
		`DELETE FROM shops`,
		`DELETE FROM operational_areas`,
		`DELETE FROM area_shop_stats`,
		`DELETE FROM admin_boundaries WHERE admin_level = 2`,
		`DELETE FROM admin_boundaries WHERE admin_level = 1`,
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		r.logger.Error("Failed to begin reseed delete transaction", zap.Error(err))
		return errors.ErrDatabaseError
	}
	defer tx.Rollback()

	for _, stmt := range statements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			r.logger.Error("Failed to delete during reseed", zap.String("statement", stmt), zap.Error(err))
			return errors.ErrDatabaseError
		}
	}

	if err := tx.Commit(); err != nil {
		r.logger.Error("Failed to commit reseed delete", zap.Error(err))
		return errors.ErrDatabaseError
	}

	r.logger.Info("All boundary data deleted for reseed")
	return nil
}
