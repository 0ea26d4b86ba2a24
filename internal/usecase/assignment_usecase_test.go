package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"github.com/shopzone-microservice/internal/domain"
	"github.com/shopzone-microservice/internal/pkg/errors"
	"github.com/shopzone-microservice/internal/usecase"
)

func testArea() *domain.OperationalArea {
	return &domain.OperationalArea{
		ID:       "a1b2c3d4-0000-0000-0000-000000000001",
		NameEn:   "East Cairo",
		Slug:     "east-cairo",
		IsActive: true,
	}
}

func TestAssignmentUseCase_AssignShop(t *testing.T) {
	logger := zap.NewNop()
	ctx := context.Background()
	area := testArea()

	t.Run("composes the area-scoped slug", func(t *testing.T) {
		mockArea := &MockAreaRepository{}
		mockShop := &MockShopRepository{}

		mockArea.On("GetBySlug", ctx, "east-cairo").Return(area, nil)
		mockShop.On("SlugExistsInArea", ctx, area.ID, "speed-motors-in-east-cairo").Return(false, nil)
		mockShop.On("Insert", ctx, mock.Anything).Return(nil)

		uc := usecase.NewAssignmentUseCase(mockArea, mockShop, logger)
		shop, err := uc.AssignShop(ctx, domain.ShopSeedRecord{
			NameEn:   "Speed Motors",
			NameAr:   "سبيد موتورز",
			Lat:      30.06,
			Lon:      31.34,
			Category: "tires",
			AreaSlug: "east-cairo",
		})

		assert.NoError(t, err)
		if assert.NotNil(t, shop) {
			assert.NotEmpty(t, shop.ID)
			assert.Equal(t, area.ID, shop.OperationalAreaID)
			if assert.NotNil(t, shop.Slug) {
				assert.Equal(t, "speed-motors-in-east-cairo", *shop.Slug)
			}
		}
	})

	t.Run("prefers an explicit candidate slug", func(t *testing.T) {
		mockArea := &MockAreaRepository{}
		mockShop := &MockShopRepository{}

		mockArea.On("GetBySlug", ctx, "east-cairo").Return(area, nil)
		mockShop.On("SlugExistsInArea", ctx, area.ID, "sm-tires-in-east-cairo").Return(false, nil)
		mockShop.On("Insert", ctx, mock.Anything).Return(nil)

		uc := usecase.NewAssignmentUseCase(mockArea, mockShop, logger)
		shop, err := uc.AssignShop(ctx, domain.ShopSeedRecord{
			NameEn:        "Speed Motors",
			Lat:           30.06,
			Lon:           31.34,
			AreaSlug:      "east-cairo",
			CandidateSlug: "sm-tires",
		})

		assert.NoError(t, err)
		assert.Equal(t, "sm-tires-in-east-cairo", *shop.Slug)
	})

	t.Run("suffixes when the composite slug is taken", func(t *testing.T) {
		mockArea := &MockAreaRepository{}
		mockShop := &MockShopRepository{}

		mockArea.On("GetBySlug", ctx, "east-cairo").Return(area, nil)
		mockShop.On("SlugExistsInArea", ctx, area.ID, "speed-motors-in-east-cairo").Return(true, nil)
		mockShop.On("SlugExistsInArea", ctx, area.ID, "speed-motors-in-east-cairo-1").Return(false, nil)
		mockShop.On("Insert", ctx, mock.Anything).Return(nil)

		uc := usecase.NewAssignmentUseCase(mockArea, mockShop, logger)
		shop, err := uc.AssignShop(ctx, domain.ShopSeedRecord{
			NameEn:   "Speed Motors",
			Lat:      30.06,
			Lon:      31.34,
			AreaSlug: "east-cairo",
		})

		assert.NoError(t, err)
		assert.Equal(t, "speed-motors-in-east-cairo-1", *shop.Slug)
	})

	t.Run("unknown area fails naming the requested slug", func(t *testing.T) {
		mockArea := &MockAreaRepository{}
		mockShop := &MockShopRepository{}

		mockArea.On("GetBySlug", ctx, "nowhere").Return(nil, errors.ErrAreaNotFound)
		mockArea.On("ListSlugs", ctx).Return([]string{"east-cairo", "giza-governorate"}, nil)

		uc := usecase.NewAssignmentUseCase(mockArea, mockShop, logger)
		_, err := uc.AssignShop(ctx, domain.ShopSeedRecord{
			NameEn:   "Speed Motors",
			Lat:      30.06,
			Lon:      31.34,
			AreaSlug: "nowhere",
		})

		appErr, ok := err.(*errors.AppError)
		if assert.True(t, ok) {
			assert.Equal(t, errors.ErrAreaNotFound.Code, appErr.Code)
			assert.Equal(t, "nowhere", appErr.Details["requested_slug"])
		}
		mockShop.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
	})

	t.Run("retries once on a store-level slug conflict", func(t *testing.T) {
		mockArea := &MockAreaRepository{}
		mockShop := &MockShopRepository{}

		mockArea.On("GetBySlug", ctx, "east-cairo").Return(area, nil)
		mockShop.On("SlugExistsInArea", ctx, area.ID, "speed-motors-in-east-cairo").Return(false, nil)
		mockShop.On("SlugExistsInArea", ctx, area.ID, "speed-motors-in-east-cairo-1").Return(false, nil)

		mockShop.On("Insert", ctx, mock.Anything).Return(errors.ErrSlugConflict).Once()
		mockShop.On("Insert", ctx, mock.Anything).Return(nil).Once()

		uc := usecase.NewAssignmentUseCase(mockArea, mockShop, logger)
		shop, err := uc.AssignShop(ctx, domain.ShopSeedRecord{
			NameEn:   "Speed Motors",
			Lat:      30.06,
			Lon:      31.34,
			AreaSlug: "east-cairo",
		})

		assert.NoError(t, err)
		assert.Equal(t, "speed-motors-in-east-cairo-1", *shop.Slug)
		mockShop.AssertNumberOfCalls(t, "Insert", 2)
	})

	t.Run("rejects out-of-range coordinates", func(t *testing.T) {
		mockArea := &MockAreaRepository{}
		mockShop := &MockShopRepository{}

		uc := usecase.NewAssignmentUseCase(mockArea, mockShop, logger)
		_, err := uc.AssignShop(ctx, domain.ShopSeedRecord{
			NameEn:   "Broken",
			Lat:      120,
			Lon:      31.34,
			AreaSlug: "east-cairo",
		})

		appErr, ok := err.(*errors.AppError)
		if assert.True(t, ok) {
			assert.Equal(t, errors.ErrInvalidCoordinates.Code, appErr.Code)
		}
	})
}

func TestAssignmentUseCase_AssignBatch(t *testing.T) {
	logger := zap.NewNop()
	ctx := context.Background()
	area := testArea()

	t.Run("deduplicates within the batch before touching the store", func(t *testing.T) {
		mockArea := &MockAreaRepository{}
		mockShop := &MockShopRepository{}

		mockArea.On("GetBySlug", ctx, "east-cairo").Return(area, nil)
		mockShop.On("SlugExistsInArea", ctx, area.ID, mock.Anything).Return(false, nil)

		var slugs []string
		mockShop.On("Insert", ctx, mock.Anything).
			Run(func(args mock.Arguments) {
				slugs = append(slugs, *args.Get(1).(*domain.Shop).Slug)
			}).
			Return(nil)

		uc := usecase.NewAssignmentUseCase(mockArea, mockShop, logger)
		result, err := uc.AssignBatch(ctx, []domain.ShopSeedRecord{
			{NameEn: "Speed Motors", Lat: 30.06, Lon: 31.34, AreaSlug: "east-cairo"},
			{NameEn: "Speed Motors", Lat: 30.07, Lon: 31.35, AreaSlug: "east-cairo"},
			{NameEn: "Speed Motors", Lat: 30.08, Lon: 31.36, AreaSlug: "east-cairo"},
		})

		assert.NoError(t, err)
		assert.Equal(t, 3, result.Inserted)
		assert.Equal(t, []string{
			"speed-motors-in-east-cairo",
			"speed-motors-in-east-cairo-1",
			"speed-motors-in-east-cairo-2",
		}, slugs)
	})

	t.Run("skips bad records without aborting the batch", func(t *testing.T) {
		mockArea := &MockAreaRepository{}
		mockShop := &MockShopRepository{}

		mockArea.On("GetBySlug", ctx, "east-cairo").Return(area, nil)
		mockArea.On("GetBySlug", ctx, "nowhere").Return(nil, errors.ErrAreaNotFound)
		mockArea.On("ListSlugs", ctx).Return([]string{"east-cairo"}, nil)
		mockShop.On("SlugExistsInArea", ctx, area.ID, mock.Anything).Return(false, nil)
		mockShop.On("Insert", ctx, mock.Anything).Return(nil)

		uc := usecase.NewAssignmentUseCase(mockArea, mockShop, logger)
		result, err := uc.AssignBatch(ctx, []domain.ShopSeedRecord{
			{NameEn: "Speed Motors", Lat: 30.06, Lon: 31.34, AreaSlug: "east-cairo"},
			{NameEn: "Lost Shop", Lat: 30.06, Lon: 31.34, AreaSlug: "nowhere"},
		})

		assert.NoError(t, err)
		assert.Equal(t, 1, result.Inserted)
		assert.Equal(t, 1, result.Skipped)
	})
}
