package usecase

import (
	"context"
	"sort"

	"go.uber.org/zap"

	"github.com/shopzone-microservice/internal/config"
	"github.com/shopzone-microservice/internal/domain"
	"github.com/shopzone-microservice/internal/domain/repository"
	"github.com/shopzone-microservice/internal/pkg/errors"
	"github.com/shopzone-microservice/internal/pkg/utils"
	"github.com/shopzone-microservice/internal/pkg/validator"
	"github.com/shopzone-microservice/internal/usecase/dto"
)

// RadiusSearchUseCase ranks shops around a point. The effective radius is the
// caller's, else the containing area's default, else the configured fallback.
type RadiusSearchUseCase struct {
	areaRepo repository.AreaRepository
	shopRepo repository.ShopRepository
	cfg      *config.Config
	logger   *zap.Logger
}

// NewRadiusSearchUseCase creates a new RadiusSearchUseCase.
func NewRadiusSearchUseCase(
	areaRepo repository.AreaRepository,
	shopRepo repository.ShopRepository,
	cfg *config.Config,
	logger *zap.Logger,
) *RadiusSearchUseCase {
	return &RadiusSearchUseCase{
		areaRepo: areaRepo,
		shopRepo: shopRepo,
		cfg:      cfg,
		logger:   logger,
	}
}

// Search runs one radius search. Without a query point the distance sort is
// meaningless, so the search degrades to a name-ordered listing.
func (uc *RadiusSearchUseCase) Search(ctx context.Context, req *dto.RadiusSearchRequest) (*dto.RadiusSearchResponse, error) {
	switch req.Sort {
	case "", domain.SortDistanceAsc, domain.SortNameAsc, domain.SortNameDesc:
	default:
		return nil, errors.ErrInvalidSortMode.WithDetails(map[string]interface{}{
			"sort": req.Sort,
		})
	}
	if err := validator.Validate(req); err != nil {
		return nil, errors.ErrInvalidRequest.WithDetails(map[string]interface{}{
			"validation": err.Error(),
		})
	}

	limit := req.Limit
	if limit <= 0 {
		limit = uc.cfg.Search.DefaultLimit
	}

	if !req.HasPoint() {
		return uc.searchByName(ctx, req, limit)
	}

	lat, lon := *req.Lat, *req.Lon
	if !utils.ValidateCoordinates(lat, lon) {
		return nil, errors.ErrInvalidCoordinates
	}

	radiusM, err := uc.effectiveRadius(ctx, req, lat, lon)
	if err != nil {
		return nil, err
	}

	shops, err := uc.shopRepo.GetInRadius(ctx, lat, lon, radiusM, req.Category, limit)
	if err != nil {
		return nil, err
	}

	results := make([]dto.ShopDistanceDTO, 0, len(shops))
	for _, s := range shops {
		// Cross-check the store's distance; a row drifting past the radius
		// (geography vs haversine rounding) gets the recomputed value.
		distance := utils.HaversineDistance(lat, lon, s.Lat, s.Lon)
		if distance > radiusM && s.DistanceM > radiusM {
			continue
		}
		d := s.DistanceM
		results = append(results, dto.ShopDistanceDTO{
			ID:        s.ID,
			NameEn:    s.NameEn,
			NameAr:    s.NameAr,
			Slug:      s.Slug,
			Lat:       s.Lat,
			Lon:       s.Lon,
			Category:  s.Category,
			AreaID:    s.OperationalAreaID,
			DistanceM: &d,
		})
	}

	sortMode := req.Sort
	if sortMode == "" {
		sortMode = domain.SortDistanceAsc
	}
	sortResults(results, sortMode)

	return &dto.RadiusSearchResponse{
		Shops:            results,
		EffectiveRadiusM: radiusM,
		Sort:             sortMode,
		Total:            len(results),
	}, nil
}

// searchByName is the point-less fallback. A requested distance sort cannot
// be honored and silently becomes name ascending.
func (uc *RadiusSearchUseCase) searchByName(ctx context.Context, req *dto.RadiusSearchRequest, limit int) (*dto.RadiusSearchResponse, error) {
	sortMode := req.Sort
	if sortMode == "" || sortMode == domain.SortDistanceAsc {
		sortMode = domain.SortNameAsc
	}

	shops, err := uc.shopRepo.ListActive(ctx, req.Category, sortMode == domain.SortNameDesc, limit)
	if err != nil {
		return nil, err
	}

	results := make([]dto.ShopDistanceDTO, 0, len(shops))
	for _, s := range shops {
		results = append(results, dto.ShopDistanceDTO{
			ID:       s.ID,
			NameEn:   s.NameEn,
			NameAr:   s.NameAr,
			Slug:     s.Slug,
			Lat:      s.Lat,
			Lon:      s.Lon,
			Category: s.Category,
			AreaID:   s.OperationalAreaID,
		})
	}

	return &dto.RadiusSearchResponse{
		Shops: results,
		Sort:  sortMode,
		Total: len(results),
	}, nil
}

func (uc *RadiusSearchUseCase) effectiveRadius(ctx context.Context, req *dto.RadiusSearchRequest, lat, lon float64) (float64, error) {
	if req.RadiusM != nil {
		if !utils.ValidateRadius(*req.RadiusM) {
			return 0, errors.ErrInvalidRadius
		}
		return *req.RadiusM, nil
	}

	area, err := uc.areaRepo.GetContainingPoint(ctx, lat, lon)
	if err != nil {
		return 0, err
	}
	if area != nil && area.DefaultSearchRadiusM > 0 {
		uc.logger.Debug("Using area default search radius",
			zap.String("area_slug", area.Slug),
			zap.Float64("radius_m", area.DefaultSearchRadiusM),
		)
		return area.DefaultSearchRadiusM, nil
	}
	return uc.cfg.Search.DefaultRadiusM, nil
}

func sortResults(results []dto.ShopDistanceDTO, mode string) {
	switch mode {
	case domain.SortNameAsc:
		sort.SliceStable(results, func(i, j int) bool {
			return results[i].NameEn < results[j].NameEn
		})
	case domain.SortNameDesc:
		sort.SliceStable(results, func(i, j int) bool {
			return results[i].NameEn > results[j].NameEn
		})
	default:
		sort.SliceStable(results, func(i, j int) bool {
			if results[i].DistanceM == nil || results[j].DistanceM == nil {
				return results[i].ID < results[j].ID
			}
			return *results[i].DistanceM < *results[j].DistanceM
		})
	}
}
