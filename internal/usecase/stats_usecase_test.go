package usecase_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"github.com/shopzone-microservice/internal/domain"
	"github.com/shopzone-microservice/internal/pkg/errors"
	"github.com/shopzone-microservice/internal/usecase"
)

func TestStatsUseCase_RunOnce(t *testing.T) {
	logger := zap.NewNop()
	ctx := context.Background()

	t.Run("recounts and upserts every boundary", func(t *testing.T) {
		mockBoundary := &MockBoundaryRepository{}
		mockShop := &MockShopRepository{}
		mockStats := &MockStatsRepository{}

		mockBoundary.On("ListIDs", ctx).Return([]int64{1, 2, 3}, nil)
		mockShop.On("CountActiveInBoundary", ctx, int64(1)).Return(10, nil)
		mockShop.On("CountActiveInBoundary", ctx, int64(2)).Return(0, nil)
		mockShop.On("CountActiveInBoundary", ctx, int64(3)).Return(7, nil)

		var upserts []*domain.AreaShopStats
		mockStats.On("Upsert", ctx, mock.Anything).
			Run(func(args mock.Arguments) {
				upserts = append(upserts, args.Get(1).(*domain.AreaShopStats))
			}).
			Return(nil)

		uc := usecase.NewStatsUseCase(mockBoundary, mockShop, mockStats, logger)
		result, err := uc.RunOnce(ctx)

		assert.NoError(t, err)
		assert.Equal(t, 3, result.Refreshed)
		assert.Equal(t, 0, result.Failed)
		assert.False(t, result.Skipped)
		if assert.Len(t, upserts, 3) {
			assert.Equal(t, int64(1), upserts[0].BoundaryID)
			assert.Equal(t, 10, upserts[0].ShopCount)
			assert.WithinDuration(t, time.Now().UTC(), upserts[0].LastUpdatedAt, 5*time.Second)
		}
	})

	t.Run("one failing boundary does not abort the pass", func(t *testing.T) {
		mockBoundary := &MockBoundaryRepository{}
		mockShop := &MockShopRepository{}
		mockStats := &MockStatsRepository{}

		mockBoundary.On("ListIDs", ctx).Return([]int64{1, 2}, nil)
		mockShop.On("CountActiveInBoundary", ctx, int64(1)).Return(0, errors.ErrDatabaseError)
		mockShop.On("CountActiveInBoundary", ctx, int64(2)).Return(4, nil)
		mockStats.On("Upsert", ctx, mock.Anything).Return(nil)

		uc := usecase.NewStatsUseCase(mockBoundary, mockShop, mockStats, logger)
		result, err := uc.RunOnce(ctx)

		assert.NoError(t, err)
		assert.Equal(t, 1, result.Refreshed)
		assert.Equal(t, 1, result.Failed)
	})

	t.Run("overlapping runs collapse to one pass", func(t *testing.T) {
		mockBoundary := &MockBoundaryRepository{}
		mockShop := &MockShopRepository{}
		mockStats := &MockStatsRepository{}

		started := make(chan struct{})
		release := make(chan struct{})

		mockBoundary.On("ListIDs", ctx).Return([]int64{1}, nil)
		mockShop.On("CountActiveInBoundary", ctx, int64(1)).
			Run(func(mock.Arguments) {
				close(started)
				<-release
			}).
			Return(1, nil)
		mockStats.On("Upsert", ctx, mock.Anything).Return(nil)

		uc := usecase.NewStatsUseCase(mockBoundary, mockShop, mockStats, logger)

		var wg sync.WaitGroup
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := uc.RunOnce(ctx)
			assert.NoError(t, err)
		}()

		<-started
		overlapped, err := uc.RunOnce(ctx)
		assert.NoError(t, err)
		assert.True(t, overlapped.Skipped)

		close(release)
		wg.Wait()

		mockBoundary.AssertNumberOfCalls(t, "ListIDs", 1)
	})

	t.Run("a cancelled context stops the pass", func(t *testing.T) {
		mockBoundary := &MockBoundaryRepository{}
		mockShop := &MockShopRepository{}
		mockStats := &MockStatsRepository{}

		cancelled, cancel := context.WithCancel(context.Background())
		cancel()

		mockBoundary.On("ListIDs", cancelled).Return([]int64{1, 2}, nil)

		uc := usecase.NewStatsUseCase(mockBoundary, mockShop, mockStats, logger)
		_, err := uc.RunOnce(cancelled)

		assert.Error(t, err)
		mockShop.AssertNotCalled(t, "CountActiveInBoundary", mock.Anything, mock.Anything)
	})
}
