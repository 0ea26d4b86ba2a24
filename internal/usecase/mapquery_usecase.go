package usecase

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/shopzone-microservice/internal/config"
	"github.com/shopzone-microservice/internal/domain"
	"github.com/shopzone-microservice/internal/domain/repository"
	"github.com/shopzone-microservice/internal/pkg/errors"
	"github.com/shopzone-microservice/internal/pkg/utils"
	"github.com/shopzone-microservice/internal/pkg/validator"
	"github.com/shopzone-microservice/internal/usecase/dto"
)

// MapQueryUseCase answers viewport queries with zoom-adaptive content: area
// aggregates below the zoom threshold, individual shop points at or above it.
type MapQueryUseCase struct {
	areaRepo  repository.AreaRepository
	shopRepo  repository.ShopRepository
	statsRepo repository.StatsRepository
	cacheRepo repository.CacheRepository
	cfg       *config.Config
	logger    *zap.Logger
}

// NewMapQueryUseCase creates a new MapQueryUseCase.
func NewMapQueryUseCase(
	areaRepo repository.AreaRepository,
	shopRepo repository.ShopRepository,
	statsRepo repository.StatsRepository,
	cacheRepo repository.CacheRepository,
	cfg *config.Config,
	logger *zap.Logger,
) *MapQueryUseCase {
	return &MapQueryUseCase{
		areaRepo:  areaRepo,
		shopRepo:  shopRepo,
		statsRepo: statsRepo,
		cacheRepo: cacheRepo,
		cfg:       cfg,
		logger:    logger,
	}
}

// Query resolves one viewport request. Responses are cached briefly; cache
// failures degrade to a direct store query and are only logged.
func (uc *MapQueryUseCase) Query(ctx context.Context, req *dto.MapQueryRequest) (*dto.MapQueryResponse, error) {
	if err := validator.Validate(req); err != nil {
		return nil, errors.ErrInvalidRequest.WithDetails(map[string]interface{}{
			"validation": err.Error(),
		})
	}
	if !utils.ValidateBoundingBox(req.MinLat, req.MinLon, req.MaxLat, req.MaxLon) {
		return nil, errors.ErrInvalidBoundingBox
	}
	if !utils.ValidateZoom(req.Zoom) {
		return nil, errors.ErrInvalidZoom
	}

	cacheKey := uc.cacheKey(req)
	if cached, err := uc.cacheRepo.Get(ctx, cacheKey); err == nil && cached != nil {
		var resp dto.MapQueryResponse
		if err := json.Unmarshal(cached, &resp); err == nil {
			return &resp, nil
		}
		uc.logger.Warn("Dropping unreadable cached map response", zap.String("key", cacheKey))
	}

	bbox := domain.BoundingBox{
		MinLat: req.MinLat,
		MinLon: req.MinLon,
		MaxLat: req.MaxLat,
		MaxLon: req.MaxLon,
	}

	var resp *dto.MapQueryResponse
	var err error
	if req.Zoom < uc.cfg.Map.AggregateZoomThreshold {
		resp, err = uc.queryAreas(ctx, bbox)
	} else {
		resp, err = uc.queryShops(ctx, bbox, req.Category)
	}
	if err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(resp); err == nil {
		if err := uc.cacheRepo.Set(ctx, cacheKey, payload, uc.cfg.Cache.MapCacheTTL); err != nil {
			uc.logger.Warn("Failed to cache map response", zap.String("key", cacheKey), zap.Error(err))
		}
	}

	return resp, nil
}

// queryAreas aggregates per operational area: each intersecting area renders
// as its centroid plus the refresher's cached shop count. Counts are cached
// per administrative boundary, so an area reports the count of its linked
// primary boundary: exact for derived areas, the ancestor region's total for
// composite zones (regional context, not a per-zone tally). Areas with no
// cached count (or no boundary link) report zero rather than blocking on a
// live count.
func (uc *MapQueryUseCase) queryAreas(ctx context.Context, bbox domain.BoundingBox) (*dto.MapQueryResponse, error) {
	areas, err := uc.areaRepo.GetIntersectingViewport(ctx, bbox)
	if err != nil {
		return nil, err
	}

	var boundaryIDs []int64
	for _, area := range areas {
		if area.PrimaryAdminBoundaryID != nil {
			boundaryIDs = append(boundaryIDs, *area.PrimaryAdminBoundaryID)
		}
	}

	stats := map[int64]*domain.AreaShopStats{}
	if len(boundaryIDs) > 0 {
		stats, err = uc.statsRepo.GetByBoundaryIDs(ctx, boundaryIDs)
		if err != nil {
			return nil, err
		}
	}

	aggregates := make([]dto.AreaAggregateDTO, 0, len(areas))
	for _, area := range areas {
		count := 0
		if area.PrimaryAdminBoundaryID != nil {
			if s, ok := stats[*area.PrimaryAdminBoundaryID]; ok {
				count = s.ShopCount
			}
		}
		aggregates = append(aggregates, dto.AreaAggregateDTO{
			AreaID:      area.ID,
			Slug:        area.Slug,
			NameEn:      area.NameEn,
			NameAr:      area.NameAr,
			CentroidLat: area.CentroidLat,
			CentroidLon: area.CentroidLon,
			ShopCount:   count,
		})
	}

	return &dto.MapQueryResponse{
		Mode:  dto.MapModeAreas,
		Areas: aggregates,
	}, nil
}

// queryShops returns raw shop points, capped so a city-wide viewport at high
// zoom cannot produce an unbounded payload.
func (uc *MapQueryUseCase) queryShops(ctx context.Context, bbox domain.BoundingBox, category string) (*dto.MapQueryResponse, error) {
	shops, err := uc.shopRepo.GetInViewport(ctx, bbox, category, uc.cfg.Map.MaxShopPoints)
	if err != nil {
		return nil, err
	}

	points := make([]dto.ShopPointDTO, 0, len(shops))
	for _, s := range shops {
		points = append(points, dto.ShopPointDTO{
			ID:       s.ID,
			NameEn:   s.NameEn,
			NameAr:   s.NameAr,
			Slug:     s.Slug,
			Lat:      s.Lat,
			Lon:      s.Lon,
			Category: s.Category,
		})
	}

	return &dto.MapQueryResponse{
		Mode:  dto.MapModeShops,
		Shops: points,
	}, nil
}

func (uc *MapQueryUseCase) cacheKey(req *dto.MapQueryRequest) string {
	mode := dto.MapModeShops
	if req.Zoom < uc.cfg.Map.AggregateZoomThreshold {
		mode = dto.MapModeAreas
	}
	return fmt.Sprintf("map:%s:%.5f:%.5f:%.5f:%.5f:%s",
		mode, req.MinLat, req.MinLon, req.MaxLat, req.MaxLon, req.Category)
}
