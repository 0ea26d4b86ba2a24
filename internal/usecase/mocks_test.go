package usecase_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/shopzone-microservice/internal/domain"
)

// MockBoundaryRepository is a mock of BoundaryRepository
type MockBoundaryRepository struct {
	mock.Mock
}

func (m *MockBoundaryRepository) InsertBatch(ctx context.Context, boundaries []*domain.AdministrativeBoundary) ([]*domain.AdministrativeBoundary, error) {
	args := m.Called(ctx, boundaries)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.AdministrativeBoundary), args.Error(1)
}

func (m *MockBoundaryRepository) CountByLevel(ctx context.Context, level int) (int, error) {
	args := m.Called(ctx, level)
	return args.Int(0), args.Error(1)
}

func (m *MockBoundaryRepository) GetByLevel(ctx context.Context, level int) ([]*domain.AdministrativeBoundary, error) {
	args := m.Called(ctx, level)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.AdministrativeBoundary), args.Error(1)
}

func (m *MockBoundaryRepository) GetByID(ctx context.Context, id int64) (*domain.AdministrativeBoundary, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AdministrativeBoundary), args.Error(1)
}

func (m *MockBoundaryRepository) GetCodeMap(ctx context.Context, level int) (map[string]int64, error) {
	args := m.Called(ctx, level)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]int64), args.Error(1)
}

func (m *MockBoundaryRepository) ListIDs(ctx context.Context) ([]int64, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int64), args.Error(1)
}

func (m *MockBoundaryRepository) DeleteAll(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// MockAreaRepository is a mock of AreaRepository
type MockAreaRepository struct {
	mock.Mock
}

func (m *MockAreaRepository) Insert(ctx context.Context, area *domain.OperationalArea) error {
	args := m.Called(ctx, area)
	return args.Error(0)
}

func (m *MockAreaRepository) GetBySlug(ctx context.Context, slug string) (*domain.OperationalArea, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.OperationalArea), args.Error(1)
}

func (m *MockAreaRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	args := m.Called(ctx, slug)
	return args.Bool(0), args.Error(1)
}

func (m *MockAreaRepository) ListActive(ctx context.Context) ([]*domain.OperationalArea, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.OperationalArea), args.Error(1)
}

func (m *MockAreaRepository) ListSlugs(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockAreaRepository) GetIntersectingViewport(ctx context.Context, bbox domain.BoundingBox) ([]*domain.OperationalArea, error) {
	args := m.Called(ctx, bbox)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.OperationalArea), args.Error(1)
}

func (m *MockAreaRepository) GetContainingPoint(ctx context.Context, lat, lon float64) (*domain.OperationalArea, error) {
	args := m.Called(ctx, lat, lon)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.OperationalArea), args.Error(1)
}

// MockShopRepository is a mock of ShopRepository
type MockShopRepository struct {
	mock.Mock
}

func (m *MockShopRepository) Insert(ctx context.Context, shop *domain.Shop) error {
	args := m.Called(ctx, shop)
	return args.Error(0)
}

func (m *MockShopRepository) SlugExistsInArea(ctx context.Context, areaID, slug string) (bool, error) {
	args := m.Called(ctx, areaID, slug)
	return args.Bool(0), args.Error(1)
}

func (m *MockShopRepository) GetInViewport(ctx context.Context, bbox domain.BoundingBox, category string, limit int) ([]*domain.Shop, error) {
	args := m.Called(ctx, bbox, category, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Shop), args.Error(1)
}

func (m *MockShopRepository) GetInRadius(ctx context.Context, lat, lon, radiusM float64, category string, limit int) ([]*domain.ShopWithDistance, error) {
	args := m.Called(ctx, lat, lon, radiusM, category, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.ShopWithDistance), args.Error(1)
}

func (m *MockShopRepository) ListActive(ctx context.Context, category string, nameDesc bool, limit int) ([]*domain.Shop, error) {
	args := m.Called(ctx, category, nameDesc, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Shop), args.Error(1)
}

func (m *MockShopRepository) CountActiveInBoundary(ctx context.Context, boundaryID int64) (int, error) {
	args := m.Called(ctx, boundaryID)
	return args.Int(0), args.Error(1)
}

// MockStatsRepository is a mock of StatsRepository
type MockStatsRepository struct {
	mock.Mock
}

func (m *MockStatsRepository) Upsert(ctx context.Context, stats *domain.AreaShopStats) error {
	args := m.Called(ctx, stats)
	return args.Error(0)
}

func (m *MockStatsRepository) GetByBoundaryIDs(ctx context.Context, ids []int64) (map[int64]*domain.AreaShopStats, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[int64]*domain.AreaShopStats), args.Error(1)
}

func (m *MockStatsRepository) GetAll(ctx context.Context) ([]*domain.AreaShopStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.AreaShopStats), args.Error(1)
}

// MockCacheRepository is a mock of CacheRepository
type MockCacheRepository struct {
	mock.Mock
}

func (m *MockCacheRepository) Get(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockCacheRepository) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	args := m.Called(ctx, key, value, ttl)
	return args.Error(0)
}

func (m *MockCacheRepository) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func ptrFloat64(v float64) *float64 {
	return &v
}
