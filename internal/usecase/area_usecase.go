package usecase

import (
	"context"

	"github.com/paulmach/orb/geojson"
	"go.uber.org/zap"

	"github.com/shopzone-microservice/internal/domain"
	"github.com/shopzone-microservice/internal/domain/repository"
	"github.com/shopzone-microservice/internal/pkg/errors"
	"github.com/shopzone-microservice/internal/usecase/dto"
)

// AreaUseCase serves the operational area browse API.
type AreaUseCase struct {
	areaRepo     repository.AreaRepository
	boundaryRepo repository.BoundaryRepository
	logger       *zap.Logger
}

// NewAreaUseCase creates a new AreaUseCase.
func NewAreaUseCase(
	areaRepo repository.AreaRepository,
	boundaryRepo repository.BoundaryRepository,
	logger *zap.Logger,
) *AreaUseCase {
	return &AreaUseCase{
		areaRepo:     areaRepo,
		boundaryRepo: boundaryRepo,
		logger:       logger,
	}
}

// ListAreas returns active areas. With geometry requested, each area carries
// its simplified outline: the custom one for unions, the linked boundary's
// otherwise.
func (uc *AreaUseCase) ListAreas(ctx context.Context, req *dto.AreaListRequest) (*dto.AreaListResponse, error) {
	areas, err := uc.areaRepo.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	items := make([]dto.AreaDTO, 0, len(areas))
	for _, area := range areas {
		item := uc.toDTO(area)
		if req.WithGeometry {
			item.Geometry = uc.simplifiedGeometry(ctx, area)
		}
		items = append(items, item)
	}

	return &dto.AreaListResponse{
		Areas: items,
		Total: len(items),
	}, nil
}

// GetAreaBySlug returns one area with its simplified geometry.
func (uc *AreaUseCase) GetAreaBySlug(ctx context.Context, slug string) (*dto.AreaDTO, error) {
	area, err := uc.areaRepo.GetBySlug(ctx, slug)
	if err != nil {
		if err == errors.ErrAreaNotFound {
			return nil, errors.ErrAreaNotFound.WithDetails(map[string]interface{}{
				"requested_slug": slug,
			})
		}
		return nil, err
	}

	item := uc.toDTO(area)
	item.Geometry = uc.simplifiedGeometry(ctx, area)
	return &item, nil
}

// simplifiedGeometry resolves an area's display outline. Lookup failures on
// the linked boundary degrade to a geometry-less record.
func (uc *AreaUseCase) simplifiedGeometry(ctx context.Context, area *domain.OperationalArea) *geojson.Geometry {
	if area.HasCustomGeometry() {
		if len(area.CustomSimplified) > 0 {
			return geojson.NewGeometry(area.CustomSimplified)
		}
		return geojson.NewGeometry(area.CustomBoundary)
	}

	if area.PrimaryAdminBoundaryID == nil {
		return nil
	}
	boundary, err := uc.boundaryRepo.GetByID(ctx, *area.PrimaryAdminBoundaryID)
	if err != nil {
		uc.logger.Warn("Failed to resolve area boundary geometry",
			zap.String("area_slug", area.Slug),
			zap.Int64("boundary_id", *area.PrimaryAdminBoundaryID),
			zap.Error(err),
		)
		return nil
	}
	if len(boundary.Simplified) > 0 {
		return geojson.NewGeometry(boundary.Simplified)
	}
	if len(boundary.Detailed) > 0 {
		return geojson.NewGeometry(boundary.Detailed)
	}
	return nil
}

func (uc *AreaUseCase) toDTO(area *domain.OperationalArea) dto.AreaDTO {
	return dto.AreaDTO{
		ID:                     area.ID,
		NameEn:                 area.NameEn,
		NameAr:                 area.NameAr,
		Slug:                   area.Slug,
		DisplayLevel:           area.DisplayLevel,
		CentroidLat:            area.CentroidLat,
		CentroidLon:            area.CentroidLon,
		DefaultSearchRadiusM:   area.DefaultSearchRadiusM,
		DefaultMapZoom:         area.DefaultMapZoom,
		GeometrySource:         string(area.GeometrySource),
		PrimaryAdminBoundaryID: area.PrimaryAdminBoundaryID,
	}
}

// ListBoundaries returns the boundary hierarchy at one admin level, without
// geometry.
func (uc *AreaUseCase) ListBoundaries(ctx context.Context, level int) ([]dto.BoundaryDTO, error) {
	if level != domain.AdminLevelRegion && level != domain.AdminLevelSubRegion {
		return nil, errors.ErrInvalidRequest.WithDetails(map[string]interface{}{
			"admin_level": level,
		})
	}

	boundaries, err := uc.boundaryRepo.GetByLevel(ctx, level)
	if err != nil {
		return nil, err
	}

	items := make([]dto.BoundaryDTO, 0, len(boundaries))
	for _, b := range boundaries {
		items = append(items, dto.BoundaryDTO{
			ID:           b.ID,
			NameEn:       b.NameEn,
			NameAr:       b.NameAr,
			AdminLevel:   b.AdminLevel,
			CountryCode:  b.CountryCode,
			OfficialCode: b.OfficialCode,
			ParentID:     b.ParentID,
			CentroidLat:  b.CentroidLat,
			CentroidLon:  b.CentroidLon,
		})
	}
	return items, nil
}

// GetBoundary returns one boundary with its simplified geometry.
func (uc *AreaUseCase) GetBoundary(ctx context.Context, id int64) (*dto.BoundaryDTO, error) {
	b, err := uc.boundaryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	item := &dto.BoundaryDTO{
		ID:           b.ID,
		NameEn:       b.NameEn,
		NameAr:       b.NameAr,
		AdminLevel:   b.AdminLevel,
		CountryCode:  b.CountryCode,
		OfficialCode: b.OfficialCode,
		ParentID:     b.ParentID,
		CentroidLat:  b.CentroidLat,
		CentroidLon:  b.CentroidLon,
	}
	if len(b.Simplified) > 0 {
		item.Geometry = geojson.NewGeometry(b.Simplified)
	} else if len(b.Detailed) > 0 {
		item.Geometry = geojson.NewGeometry(b.Detailed)
	}
	return item, nil
}
