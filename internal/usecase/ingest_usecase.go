package usecase

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/shopzone-microservice/internal/domain"
	"github.com/shopzone-microservice/internal/domain/repository"
	"github.com/shopzone-microservice/internal/geometry"
)

// IngestUseCase builds the administrative boundary tree from official source
// features. Level 1 must be ingested before level 2: level-2 parents resolve
// against the committed level-1 code set.
type IngestUseCase struct {
	boundaryRepo     repository.BoundaryRepository
	logger           *zap.Logger
	countryCode      string
	fallbackCentroid domain.LatLon
}

// NewIngestUseCase creates a new IngestUseCase.
func NewIngestUseCase(
	boundaryRepo repository.BoundaryRepository,
	countryCode string,
	fallbackCentroid domain.LatLon,
	logger *zap.Logger,
) *IngestUseCase {
	return &IngestUseCase{
		boundaryRepo:     boundaryRepo,
		logger:           logger,
		countryCode:      countryCode,
		fallbackCentroid: fallbackCentroid,
	}
}

// IngestLevel ingests one admin level. Idempotent: existing rows at the level
// and forceReplace=false make the whole call a no-op. forceReplace reseeds,
// deleting dependents child-before-parent across the schema first, so a
// forced reseed always restarts from level 1.
func (uc *IngestUseCase) IngestLevel(
	ctx context.Context,
	features []domain.BoundaryFeature,
	level int,
	forceReplace bool,
) (*domain.BatchResult, error) {
	if level != domain.AdminLevelRegion && level != domain.AdminLevelSubRegion {
		return nil, fmt.Errorf("unsupported admin level %d", level)
	}

	existing, err := uc.boundaryRepo.CountByLevel(ctx, level)
	if err != nil {
		return nil, err
	}
	if existing > 0 {
		if !forceReplace {
			uc.logger.Info("Boundary level already ingested, skipping",
				zap.Int("level", level),
				zap.Int("existing", existing),
			)
			return &domain.BatchResult{}, nil
		}
		if err := uc.boundaryRepo.DeleteAll(ctx); err != nil {
			return nil, err
		}
	}

	var parentCodes map[string]int64
	if level == domain.AdminLevelSubRegion {
		parentCodes, err = uc.boundaryRepo.GetCodeMap(ctx, domain.AdminLevelRegion)
		if err != nil {
			return nil, err
		}
	}

	result := &domain.BatchResult{}
	batch := make([]*domain.AdministrativeBoundary, 0, len(features))

	for _, f := range features {
		boundary, reason := uc.buildBoundary(f, level, parentCodes)
		if boundary == nil {
			uc.logger.Warn("Skipping boundary feature",
				zap.String("code", f.Code),
				zap.String("name_en", f.NameEn),
				zap.Int("level", level),
				zap.String("reason", reason),
			)
			result.Skip(reason)
			continue
		}
		batch = append(batch, boundary)
	}

	if len(batch) > 0 {
		if _, err := uc.boundaryRepo.InsertBatch(ctx, batch); err != nil {
			return nil, err
		}
		result.Inserted = len(batch)
	}

	uc.logger.Info("Boundary level ingested",
		zap.Int("level", level),
		zap.Int("inserted", result.Inserted),
		zap.Int("skipped", result.Skipped),
	)

	return result, nil
}

// buildBoundary validates one feature and prepares its row. A nil return with
// a reason marks the feature skipped; the batch never aborts on bad input.
func (uc *IngestUseCase) buildBoundary(
	f domain.BoundaryFeature,
	level int,
	parentCodes map[string]int64,
) (*domain.AdministrativeBoundary, string) {
	if f.NameEn == "" && f.NameAr == "" {
		return nil, fmt.Sprintf("feature %q has no name", f.Code)
	}
	if f.Code == "" {
		return nil, fmt.Sprintf("feature %q has no official code", f.NameEn)
	}

	var parentID *int64
	if level == domain.AdminLevelSubRegion {
		if f.ParentCode == "" {
			return nil, fmt.Sprintf("feature %q has no parent code", f.Code)
		}
		id, ok := parentCodes[f.ParentCode]
		if !ok {
			return nil, fmt.Sprintf("feature %q references unknown parent %q", f.Code, f.ParentCode)
		}
		parentID = &id
	}

	detailed, ok := geometry.Normalize(f.Geometry)
	if !ok {
		return nil, fmt.Sprintf("feature %q has non-polygonal geometry", f.Code)
	}

	tolerance := geometry.ToleranceSubRegion
	if level == domain.AdminLevelRegion {
		tolerance = geometry.ToleranceRegion
	}
	simplified, _ := geometry.Simplify(f.Geometry, tolerance)

	lat, lon := uc.fallbackCentroid.Lat, uc.fallbackCentroid.Lon
	if center, ok := geometry.Centroid(detailed); ok {
		lat, lon = center.Lat(), center.Lon()
	}

	return &domain.AdministrativeBoundary{
		NameEn:       f.NameEn,
		NameAr:       f.NameAr,
		AdminLevel:   level,
		CountryCode:  uc.countryCode,
		OfficialCode: f.Code,
		ParentID:     parentID,
		Detailed:     detailed,
		Simplified:   simplified,
		CentroidLat:  lat,
		CentroidLon:  lon,
		IsActive:     true,
	}, ""
}
