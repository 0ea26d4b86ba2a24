package usecase

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/google/uuid"
	"github.com/paulmach/orb"
	"go.uber.org/zap"

	"github.com/shopzone-microservice/internal/domain"
	"github.com/shopzone-microservice/internal/domain/repository"
	"github.com/shopzone-microservice/internal/geometry"
	"github.com/shopzone-microservice/internal/pkg/slug"
)

// Default search radius bounds for synthesized areas, meters.
const (
	minSynthesizedRadiusM = 3000
	maxSynthesizedRadiusM = 30000
)

// SynthesisUseCase produces operational areas on top of the ingested
// boundary tree: whole-region promotions, composite unions of sub-regions,
// and direct sub-region promotions.
type SynthesisUseCase struct {
	boundaryRepo     repository.BoundaryRepository
	areaRepo         repository.AreaRepository
	logger           *zap.Logger
	fallbackCentroid domain.LatLon
}

// NewSynthesisUseCase creates a new SynthesisUseCase.
func NewSynthesisUseCase(
	boundaryRepo repository.BoundaryRepository,
	areaRepo repository.AreaRepository,
	fallbackCentroid domain.LatLon,
	logger *zap.Logger,
) *SynthesisUseCase {
	return &SynthesisUseCase{
		boundaryRepo:     boundaryRepo,
		areaRepo:         areaRepo,
		logger:           logger,
		fallbackCentroid: fallbackCentroid,
	}
}

// Synthesize materializes the given plans. Each plan is independently
// skippable: missing boundaries or an already-present slug skip that plan
// with a diagnostic, never aborting the batch. Re-running without a forced
// reset is a no-op because every plan's slug already exists.
func (uc *SynthesisUseCase) Synthesize(ctx context.Context, plans []domain.AreaPlan) (*domain.BatchResult, error) {
	regionCodes, err := uc.boundaryRepo.GetCodeMap(ctx, domain.AdminLevelRegion)
	if err != nil {
		return nil, err
	}
	subRegionCodes, err := uc.boundaryRepo.GetCodeMap(ctx, domain.AdminLevelSubRegion)
	if err != nil {
		return nil, err
	}

	result := &domain.BatchResult{}

	for _, plan := range plans {
		area, reason, err := uc.buildArea(ctx, plan, regionCodes, subRegionCodes)
		if err != nil {
			return nil, err
		}
		if area == nil {
			uc.logger.Warn("Skipping area plan",
				zap.String("kind", plan.Kind),
				zap.String("name_en", plan.NameEn),
				zap.String("reason", reason),
			)
			result.Skip(reason)
			continue
		}

		if err := uc.areaRepo.Insert(ctx, area); err != nil {
			return nil, err
		}
		result.Inserted++

		uc.logger.Info("Operational area synthesized",
			zap.String("slug", area.Slug),
			zap.String("kind", plan.Kind),
			zap.String("geometry_source", string(area.GeometrySource)),
		)
	}

	return result, nil
}

func (uc *SynthesisUseCase) buildArea(
	ctx context.Context,
	plan domain.AreaPlan,
	regionCodes, subRegionCodes map[string]int64,
) (*domain.OperationalArea, string, error) {
	areaSlug := planSlug(plan)
	if areaSlug == "" {
		return nil, fmt.Sprintf("plan %q produces an empty slug", plan.NameEn), nil
	}

	exists, err := uc.areaRepo.SlugExists(ctx, areaSlug)
	if err != nil {
		return nil, "", err
	}
	if exists {
		return nil, fmt.Sprintf("area %q already exists", areaSlug), nil
	}

	switch plan.Kind {
	case domain.PlanWholeRegion:
		return uc.buildWholeRegion(ctx, plan, areaSlug, regionCodes)
	case domain.PlanComposite:
		return uc.buildComposite(ctx, plan, areaSlug, regionCodes, subRegionCodes)
	case domain.PlanDirect:
		return uc.buildDirect(ctx, plan, areaSlug, subRegionCodes)
	default:
		return nil, fmt.Sprintf("plan %q has unknown kind %q", plan.NameEn, plan.Kind), nil
	}
}

// buildWholeRegion promotes a level-1 boundary into an area that inherits
// the boundary's geometry by reference.
func (uc *SynthesisUseCase) buildWholeRegion(
	ctx context.Context,
	plan domain.AreaPlan,
	areaSlug string,
	regionCodes map[string]int64,
) (*domain.OperationalArea, string, error) {
	boundaryID, ok := regionCodes[plan.RegionCode]
	if !ok {
		return nil, fmt.Sprintf("plan %q: region code %q not ingested", plan.NameEn, plan.RegionCode), nil
	}

	boundary, err := uc.boundaryRepo.GetByID(ctx, boundaryID)
	if err != nil {
		return nil, "", err
	}

	lat, lon := boundary.CentroidLat, boundary.CentroidLon
	if len(boundary.Detailed) == 0 {
		lat, lon = uc.fallbackCentroid.Lat, uc.fallbackCentroid.Lon
	}

	area := uc.newArea(plan, areaSlug, domain.GeometrySourceDerivedFromAdmin)
	area.CentroidLat = lat
	area.CentroidLon = lon
	area.DefaultSearchRadiusM = radiusForAreaSize(geometry.AreaSqKm(boundary.Detailed))
	area.PrimaryAdminBoundaryID = &boundaryID
	return area, "", nil
}

// buildComposite unions N level-2 boundaries into one custom geometry.
func (uc *SynthesisUseCase) buildComposite(
	ctx context.Context,
	plan domain.AreaPlan,
	areaSlug string,
	regionCodes, subRegionCodes map[string]int64,
) (*domain.OperationalArea, string, error) {
	var parts []orb.Geometry
	var missing []string

	for _, code := range plan.SubRegionCodes {
		id, ok := subRegionCodes[code]
		if !ok {
			missing = append(missing, code)
			continue
		}
		boundary, err := uc.boundaryRepo.GetByID(ctx, id)
		if err != nil {
			return nil, "", err
		}
		if len(boundary.Detailed) == 0 {
			missing = append(missing, code)
			continue
		}
		parts = append(parts, boundary.Detailed)
	}

	if len(parts) < 1 {
		return nil, fmt.Sprintf(
			"plan %q: no source geometries resolved, missing codes: %s",
			plan.NameEn, strings.Join(missing, ", "),
		), nil
	}
	if len(missing) > 0 {
		uc.logger.Warn("Composite area missing some source boundaries",
			zap.String("name_en", plan.NameEn),
			zap.Strings("missing_codes", missing),
		)
	}

	union, ok := geometry.Union(parts)
	if !ok {
		return nil, fmt.Sprintf("plan %q: union produced no geometry", plan.NameEn), nil
	}
	simplified, _ := geometry.Simplify(union, geometry.ToleranceCustom)

	lat, lon := uc.fallbackCentroid.Lat, uc.fallbackCentroid.Lon
	if center, ok := geometry.Centroid(union); ok {
		lat, lon = center.Lat(), center.Lon()
	}

	area := uc.newArea(plan, areaSlug, domain.GeometrySourceCustom)
	area.CustomBoundary = union
	area.CustomSimplified = simplified
	area.CentroidLat = lat
	area.CentroidLon = lon
	area.DefaultSearchRadiusM = radiusForAreaSize(geometry.AreaSqKm(union))

	if ancestorID, ok := regionCodes[plan.AncestorCode]; ok {
		area.PrimaryAdminBoundaryID = &ancestorID
	}
	return area, "", nil
}

// buildDirect promotes a single level-2 boundary by reference.
func (uc *SynthesisUseCase) buildDirect(
	ctx context.Context,
	plan domain.AreaPlan,
	areaSlug string,
	subRegionCodes map[string]int64,
) (*domain.OperationalArea, string, error) {
	if len(plan.SubRegionCodes) != 1 {
		return nil, fmt.Sprintf("plan %q: direct promotion needs exactly one sub-region code", plan.NameEn), nil
	}

	boundaryID, ok := subRegionCodes[plan.SubRegionCodes[0]]
	if !ok {
		return nil, fmt.Sprintf("plan %q: sub-region code %q not ingested", plan.NameEn, plan.SubRegionCodes[0]), nil
	}

	boundary, err := uc.boundaryRepo.GetByID(ctx, boundaryID)
	if err != nil {
		return nil, "", err
	}

	lat, lon := boundary.CentroidLat, boundary.CentroidLon
	if len(boundary.Detailed) == 0 {
		lat, lon = uc.fallbackCentroid.Lat, uc.fallbackCentroid.Lon
	}

	area := uc.newArea(plan, areaSlug, domain.GeometrySourceDerivedFromAdmin)
	area.CentroidLat = lat
	area.CentroidLon = lon
	area.DefaultSearchRadiusM = radiusForAreaSize(geometry.AreaSqKm(boundary.Detailed))
	area.PrimaryAdminBoundaryID = &boundaryID
	return area, "", nil
}

func (uc *SynthesisUseCase) newArea(plan domain.AreaPlan, areaSlug string, source domain.GeometrySource) *domain.OperationalArea {
	return &domain.OperationalArea{
		ID:             uuid.NewString(),
		NameEn:         plan.NameEn,
		NameAr:         plan.NameAr,
		Slug:           areaSlug,
		IsActive:       true,
		DisplayLevel:   plan.DisplayLevel,
		DefaultMapZoom: plan.DefaultMapZoom,
		GeometrySource: source,
	}
}

// planSlug derives the deterministic area slug. Whole-region promotions get
// a "-governorate" style disambiguation so a region and a same-named city
// zone never collide.
func planSlug(plan domain.AreaPlan) string {
	name := plan.NameEn
	if plan.Kind == domain.PlanWholeRegion {
		name += " governorate"
	}
	return slug.Make(name)
}

// radiusForAreaSize scales a default search radius with zone size: roughly
// half the radius of a circle with the zone's area, clamped to sane bounds.
func radiusForAreaSize(areaSqKm float64) float64 {
	if areaSqKm <= 0 {
		return minSynthesizedRadiusM
	}
	radius := math.Sqrt(areaSqKm/math.Pi) * 1000 / 2
	return math.Min(math.Max(radius, minSynthesizedRadiusM), maxSynthesizedRadiusM)
}
