package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"github.com/shopzone-microservice/internal/config"
	"github.com/shopzone-microservice/internal/domain"
	"github.com/shopzone-microservice/internal/usecase"
	"github.com/shopzone-microservice/internal/usecase/dto"
)

func testSearchConfig() *config.Config {
	return &config.Config{
		Search: config.SearchConfig{
			DefaultRadiusM: 5000,
			DefaultLimit:   50,
		},
	}
}

func shopAt(id, name string, lat, lon, distanceM float64) *domain.ShopWithDistance {
	return &domain.ShopWithDistance{
		Shop: domain.Shop{
			ID:                id,
			NameEn:            name,
			Lat:               lat,
			Lon:               lon,
			Category:          "tires",
			OperationalAreaID: "area-1",
		},
		DistanceM: distanceM,
	}
}

func TestRadiusSearchUseCase_Search(t *testing.T) {
	logger := zap.NewNop()
	ctx := context.Background()
	cfg := testSearchConfig()

	t.Run("explicit radius ranks by distance", func(t *testing.T) {
		mockArea := &MockAreaRepository{}
		mockShop := &MockShopRepository{}

		mockShop.On("GetInRadius", ctx, 30.06, 31.34, 2000.0, "", 50).
			Return([]*domain.ShopWithDistance{
				shopAt("s1", "Speed Motors", 30.061, 31.341, 150),
				shopAt("s2", "Auto Care", 30.07, 31.35, 1400),
			}, nil)

		uc := usecase.NewRadiusSearchUseCase(mockArea, mockShop, cfg, logger)
		resp, err := uc.Search(ctx, &dto.RadiusSearchRequest{
			Lat:     ptrFloat64(30.06),
			Lon:     ptrFloat64(31.34),
			RadiusM: ptrFloat64(2000),
		})

		assert.NoError(t, err)
		assert.Equal(t, domain.SortDistanceAsc, resp.Sort)
		assert.Equal(t, 2000.0, resp.EffectiveRadiusM)
		if assert.Len(t, resp.Shops, 2) {
			assert.Equal(t, "s1", resp.Shops[0].ID)
			if assert.NotNil(t, resp.Shops[0].DistanceM) {
				assert.LessOrEqual(t, *resp.Shops[0].DistanceM, 2000.0)
			}
		}
		mockArea.AssertNotCalled(t, "GetContainingPoint", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("drops store rows beyond the effective radius", func(t *testing.T) {
		mockArea := &MockAreaRepository{}
		mockShop := &MockShopRepository{}

		mockShop.On("GetInRadius", ctx, 30.06, 31.34, 2000.0, "", 50).
			Return([]*domain.ShopWithDistance{
				shopAt("s1", "Speed Motors", 30.061, 31.341, 150),
				shopAt("s3", "Far Garage", 31.0, 32.5, 2500),
			}, nil)

		uc := usecase.NewRadiusSearchUseCase(mockArea, mockShop, cfg, logger)
		resp, err := uc.Search(ctx, &dto.RadiusSearchRequest{
			Lat:     ptrFloat64(30.06),
			Lon:     ptrFloat64(31.34),
			RadiusM: ptrFloat64(2000),
		})

		assert.NoError(t, err)
		if assert.Len(t, resp.Shops, 1) {
			assert.Equal(t, "s1", resp.Shops[0].ID)
		}
		assert.Equal(t, 1, resp.Total)
	})

	t.Run("omitted radius takes the containing area default", func(t *testing.T) {
		mockArea := &MockAreaRepository{}
		mockShop := &MockShopRepository{}

		mockArea.On("GetContainingPoint", ctx, 30.06, 31.34).
			Return(&domain.OperationalArea{
				Slug:                 "east-cairo",
				DefaultSearchRadiusM: 7500,
			}, nil)
		mockShop.On("GetInRadius", ctx, 30.06, 31.34, 7500.0, "", 50).
			Return([]*domain.ShopWithDistance{}, nil)

		uc := usecase.NewRadiusSearchUseCase(mockArea, mockShop, cfg, logger)
		resp, err := uc.Search(ctx, &dto.RadiusSearchRequest{
			Lat: ptrFloat64(30.06),
			Lon: ptrFloat64(31.34),
		})

		assert.NoError(t, err)
		assert.Equal(t, 7500.0, resp.EffectiveRadiusM)
	})

	t.Run("omitted radius outside every area takes the configured fallback", func(t *testing.T) {
		mockArea := &MockAreaRepository{}
		mockShop := &MockShopRepository{}

		mockArea.On("GetContainingPoint", ctx, 25.0, 30.0).Return(nil, nil)
		mockShop.On("GetInRadius", ctx, 25.0, 30.0, 5000.0, "", 50).
			Return([]*domain.ShopWithDistance{}, nil)

		uc := usecase.NewRadiusSearchUseCase(mockArea, mockShop, cfg, logger)
		resp, err := uc.Search(ctx, &dto.RadiusSearchRequest{
			Lat: ptrFloat64(25.0),
			Lon: ptrFloat64(30.0),
		})

		assert.NoError(t, err)
		assert.Equal(t, 5000.0, resp.EffectiveRadiusM)
	})

	t.Run("name sort applies on point queries", func(t *testing.T) {
		mockArea := &MockAreaRepository{}
		mockShop := &MockShopRepository{}

		mockShop.On("GetInRadius", ctx, 30.06, 31.34, 2000.0, "", 50).
			Return([]*domain.ShopWithDistance{
				shopAt("s1", "Speed Motors", 30.061, 31.341, 150),
				shopAt("s2", "Auto Care", 30.07, 31.35, 1400),
			}, nil)

		uc := usecase.NewRadiusSearchUseCase(mockArea, mockShop, cfg, logger)
		resp, err := uc.Search(ctx, &dto.RadiusSearchRequest{
			Lat:     ptrFloat64(30.06),
			Lon:     ptrFloat64(31.34),
			RadiusM: ptrFloat64(2000),
			Sort:    domain.SortNameAsc,
		})

		assert.NoError(t, err)
		if assert.Len(t, resp.Shops, 2) {
			assert.Equal(t, "Auto Care", resp.Shops[0].NameEn)
		}
	})

	t.Run("no point degrades to name ordering without distances", func(t *testing.T) {
		mockArea := &MockAreaRepository{}
		mockShop := &MockShopRepository{}

		mockShop.On("ListActive", ctx, "", false, 50).
			Return([]*domain.Shop{
				{ID: "s2", NameEn: "Auto Care"},
				{ID: "s1", NameEn: "Speed Motors"},
			}, nil)

		uc := usecase.NewRadiusSearchUseCase(mockArea, mockShop, cfg, logger)
		resp, err := uc.Search(ctx, &dto.RadiusSearchRequest{Sort: domain.SortDistanceAsc})

		assert.NoError(t, err)
		assert.Equal(t, domain.SortNameAsc, resp.Sort)
		if assert.Len(t, resp.Shops, 2) {
			assert.Nil(t, resp.Shops[0].DistanceM)
		}
		mockShop.AssertNotCalled(t, "GetInRadius",
			mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("rejects an unknown sort mode", func(t *testing.T) {
		uc := usecase.NewRadiusSearchUseCase(&MockAreaRepository{}, &MockShopRepository{}, cfg, logger)

		_, err := uc.Search(ctx, &dto.RadiusSearchRequest{Sort: "rating_desc"})
		assert.Error(t, err)
	})

	t.Run("rejects an out-of-bounds radius", func(t *testing.T) {
		uc := usecase.NewRadiusSearchUseCase(&MockAreaRepository{}, &MockShopRepository{}, cfg, logger)

		_, err := uc.Search(ctx, &dto.RadiusSearchRequest{
			Lat:     ptrFloat64(30.06),
			Lon:     ptrFloat64(31.34),
			RadiusM: ptrFloat64(10),
		})
		assert.Error(t, err)
	})
}
