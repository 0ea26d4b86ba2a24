package usecase_test

import (
	"context"
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"github.com/shopzone-microservice/internal/domain"
	"github.com/shopzone-microservice/internal/usecase"
)

func orbMultiPolygon(p orb.Polygon) orb.MultiPolygon {
	return orb.MultiPolygon{p}
}

func TestSynthesisUseCase_Synthesize(t *testing.T) {
	logger := zap.NewNop()
	ctx := context.Background()

	regionCodes := map[string]int64{"EG-C": 1, "EG-GZ": 2}
	subRegionCodes := map[string]int64{"EG-C-NC": 10, "EG-C-HL": 11, "EG-C-MD": 12}

	newBoundary := func(id int64, code string, lat, lon float64) *domain.AdministrativeBoundary {
		return &domain.AdministrativeBoundary{
			ID:           id,
			NameEn:       code,
			OfficialCode: code,
			Detailed:     orbMultiPolygon(squareAround(lat, lon, 0.05)),
			CentroidLat:  lat,
			CentroidLon:  lon,
		}
	}

	t.Run("composite plan unions sub-regions into a custom geometry", func(t *testing.T) {
		mockBoundary := &MockBoundaryRepository{}
		mockArea := &MockAreaRepository{}

		mockBoundary.On("GetCodeMap", ctx, domain.AdminLevelRegion).Return(regionCodes, nil)
		mockBoundary.On("GetCodeMap", ctx, domain.AdminLevelSubRegion).Return(subRegionCodes, nil)
		mockBoundary.On("GetByID", ctx, int64(10)).Return(newBoundary(10, "EG-C-NC", 30.06, 31.34), nil)
		mockBoundary.On("GetByID", ctx, int64(11)).Return(newBoundary(11, "EG-C-HL", 30.09, 31.33), nil)
		mockBoundary.On("GetByID", ctx, int64(12)).Return(newBoundary(12, "EG-C-MD", 30.12, 31.35), nil)

		mockArea.On("SlugExists", ctx, "east-cairo").Return(false, nil)

		var saved *domain.OperationalArea
		mockArea.On("Insert", ctx, mock.Anything).
			Run(func(args mock.Arguments) {
				saved = args.Get(1).(*domain.OperationalArea)
			}).
			Return(nil)

		uc := usecase.NewSynthesisUseCase(mockBoundary, mockArea, fallbackCentroid, logger)

		plans := []domain.AreaPlan{{
			Kind:           domain.PlanComposite,
			NameEn:         "East Cairo",
			NameAr:         "شرق القاهرة",
			DisplayLevel:   "city_zone",
			AncestorCode:   "EG-C",
			SubRegionCodes: []string{"EG-C-NC", "EG-C-HL", "EG-C-MD"},
		}}

		result, err := uc.Synthesize(ctx, plans)

		assert.NoError(t, err)
		assert.Equal(t, 1, result.Inserted)
		if assert.NotNil(t, saved) {
			assert.Equal(t, "east-cairo", saved.Slug)
			assert.Equal(t, domain.GeometrySourceCustom, saved.GeometrySource)
			assert.Len(t, saved.CustomBoundary, 3)
			assert.NotEmpty(t, saved.CustomSimplified)
			assert.True(t, saved.IsActive)
			assert.InDelta(t, 30.09, saved.CentroidLat, 0.05)
			assert.InDelta(t, 31.34, saved.CentroidLon, 0.05)
			assert.GreaterOrEqual(t, saved.DefaultSearchRadiusM, 3000.0)
			assert.LessOrEqual(t, saved.DefaultSearchRadiusM, 30000.0)
			if assert.NotNil(t, saved.PrimaryAdminBoundaryID) {
				assert.Equal(t, int64(1), *saved.PrimaryAdminBoundaryID)
			}
		}
		mockArea.AssertExpectations(t)
	})

	t.Run("rerun without reset is a no-op", func(t *testing.T) {
		mockBoundary := &MockBoundaryRepository{}
		mockArea := &MockAreaRepository{}

		mockBoundary.On("GetCodeMap", ctx, domain.AdminLevelRegion).Return(regionCodes, nil)
		mockBoundary.On("GetCodeMap", ctx, domain.AdminLevelSubRegion).Return(subRegionCodes, nil)
		mockArea.On("SlugExists", ctx, "east-cairo").Return(true, nil)

		uc := usecase.NewSynthesisUseCase(mockBoundary, mockArea, fallbackCentroid, logger)

		plans := []domain.AreaPlan{{
			Kind:           domain.PlanComposite,
			NameEn:         "East Cairo",
			SubRegionCodes: []string{"EG-C-NC"},
		}}

		result, err := uc.Synthesize(ctx, plans)

		assert.NoError(t, err)
		assert.Equal(t, 0, result.Inserted)
		assert.Equal(t, 1, result.Skipped)
		mockArea.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
	})

	t.Run("whole-region plan links the boundary by reference", func(t *testing.T) {
		mockBoundary := &MockBoundaryRepository{}
		mockArea := &MockAreaRepository{}

		mockBoundary.On("GetCodeMap", ctx, domain.AdminLevelRegion).Return(regionCodes, nil)
		mockBoundary.On("GetCodeMap", ctx, domain.AdminLevelSubRegion).Return(subRegionCodes, nil)
		mockBoundary.On("GetByID", ctx, int64(2)).Return(newBoundary(2, "EG-GZ", 29.99, 31.01), nil)
		mockArea.On("SlugExists", ctx, "giza-governorate").Return(false, nil)

		var saved *domain.OperationalArea
		mockArea.On("Insert", ctx, mock.Anything).
			Run(func(args mock.Arguments) {
				saved = args.Get(1).(*domain.OperationalArea)
			}).
			Return(nil)

		uc := usecase.NewSynthesisUseCase(mockBoundary, mockArea, fallbackCentroid, logger)

		plans := []domain.AreaPlan{{
			Kind:         domain.PlanWholeRegion,
			NameEn:       "Giza",
			DisplayLevel: "governorate",
			RegionCode:   "EG-GZ",
		}}

		result, err := uc.Synthesize(ctx, plans)

		assert.NoError(t, err)
		assert.Equal(t, 1, result.Inserted)
		if assert.NotNil(t, saved) {
			assert.Equal(t, "giza-governorate", saved.Slug)
			assert.Equal(t, domain.GeometrySourceDerivedFromAdmin, saved.GeometrySource)
			assert.Empty(t, saved.CustomBoundary)
			assert.InDelta(t, 29.99, saved.CentroidLat, 0.001)
			if assert.NotNil(t, saved.PrimaryAdminBoundaryID) {
				assert.Equal(t, int64(2), *saved.PrimaryAdminBoundaryID)
			}
		}
	})

	t.Run("composite with no resolvable sources is skipped with its codes named", func(t *testing.T) {
		mockBoundary := &MockBoundaryRepository{}
		mockArea := &MockAreaRepository{}

		mockBoundary.On("GetCodeMap", ctx, domain.AdminLevelRegion).Return(regionCodes, nil)
		mockBoundary.On("GetCodeMap", ctx, domain.AdminLevelSubRegion).Return(subRegionCodes, nil)
		mockArea.On("SlugExists", ctx, "ghost-zone").Return(false, nil)

		uc := usecase.NewSynthesisUseCase(mockBoundary, mockArea, fallbackCentroid, logger)

		plans := []domain.AreaPlan{{
			Kind:           domain.PlanComposite,
			NameEn:         "Ghost Zone",
			SubRegionCodes: []string{"EG-Z-1", "EG-Z-2"},
		}}

		result, err := uc.Synthesize(ctx, plans)

		assert.NoError(t, err)
		assert.Equal(t, 1, result.Skipped)
		assert.Contains(t, result.SkipReasons[0], "EG-Z-1")
		mockArea.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
	})

	t.Run("direct plan promotes one sub-region", func(t *testing.T) {
		mockBoundary := &MockBoundaryRepository{}
		mockArea := &MockAreaRepository{}

		mockBoundary.On("GetCodeMap", ctx, domain.AdminLevelRegion).Return(regionCodes, nil)
		mockBoundary.On("GetCodeMap", ctx, domain.AdminLevelSubRegion).Return(subRegionCodes, nil)
		mockBoundary.On("GetByID", ctx, int64(12)).Return(newBoundary(12, "EG-C-MD", 30.12, 31.35), nil)
		mockArea.On("SlugExists", ctx, "maadi").Return(false, nil)

		var saved *domain.OperationalArea
		mockArea.On("Insert", ctx, mock.Anything).
			Run(func(args mock.Arguments) {
				saved = args.Get(1).(*domain.OperationalArea)
			}).
			Return(nil)

		uc := usecase.NewSynthesisUseCase(mockBoundary, mockArea, fallbackCentroid, logger)

		plans := []domain.AreaPlan{{
			Kind:           domain.PlanDirect,
			NameEn:         "Maadi",
			DisplayLevel:   "district",
			SubRegionCodes: []string{"EG-C-MD"},
		}}

		result, err := uc.Synthesize(ctx, plans)

		assert.NoError(t, err)
		assert.Equal(t, 1, result.Inserted)
		if assert.NotNil(t, saved) {
			assert.Equal(t, domain.GeometrySourceDerivedFromAdmin, saved.GeometrySource)
			if assert.NotNil(t, saved.PrimaryAdminBoundaryID) {
				assert.Equal(t, int64(12), *saved.PrimaryAdminBoundaryID)
			}
		}
	})
}
