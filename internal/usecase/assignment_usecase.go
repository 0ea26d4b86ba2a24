package usecase

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/shopzone-microservice/internal/domain"
	"github.com/shopzone-microservice/internal/domain/repository"
	"github.com/shopzone-microservice/internal/pkg/errors"
	"github.com/shopzone-microservice/internal/pkg/slug"
	"github.com/shopzone-microservice/internal/pkg/utils"
)

// AssignmentUseCase binds shops to operational areas by explicit slug
// reference. The caller declares the target area; assignment never guesses
// by spatial containment.
type AssignmentUseCase struct {
	areaRepo repository.AreaRepository
	shopRepo repository.ShopRepository
	logger   *zap.Logger
}

// NewAssignmentUseCase creates a new AssignmentUseCase.
func NewAssignmentUseCase(
	areaRepo repository.AreaRepository,
	shopRepo repository.ShopRepository,
	logger *zap.Logger,
) *AssignmentUseCase {
	return &AssignmentUseCase{
		areaRepo: areaRepo,
		shopRepo: shopRepo,
		logger:   logger,
	}
}

// AssignShop binds one shop record. Fails with AREA_NOT_FOUND naming the
// requested slug when the target area does not exist.
func (uc *AssignmentUseCase) AssignShop(ctx context.Context, rec domain.ShopSeedRecord) (*domain.Shop, error) {
	batch := newBatchSlugSet()
	return uc.assignOne(ctx, rec, batch)
}

// AssignBatch binds a batch of shop records. Individual failures are skipped
// and counted; composite slugs are deduplicated against committed rows and
// the rest of the current batch.
func (uc *AssignmentUseCase) AssignBatch(ctx context.Context, recs []domain.ShopSeedRecord) (*domain.BatchResult, error) {
	result := &domain.BatchResult{}
	batch := newBatchSlugSet()

	for _, rec := range recs {
		if _, err := uc.assignOne(ctx, rec, batch); err != nil {
			if appErr, ok := err.(*errors.AppError); ok {
				result.Skip(appErr.Error())
				continue
			}
			return nil, err
		}
		result.Inserted++
	}

	uc.logger.Info("Shop batch assigned",
		zap.Int("inserted", result.Inserted),
		zap.Int("skipped", result.Skipped),
	)

	return result, nil
}

func (uc *AssignmentUseCase) assignOne(ctx context.Context, rec domain.ShopSeedRecord, batch *batchSlugSet) (*domain.Shop, error) {
	if !utils.ValidateCoordinates(rec.Lat, rec.Lon) {
		uc.logger.Warn("Shop record has invalid coordinates",
			zap.String("name_en", rec.NameEn),
			zap.Float64("lat", rec.Lat),
			zap.Float64("lon", rec.Lon),
		)
		return nil, errors.ErrInvalidCoordinates.WithDetails(map[string]interface{}{
			"shop": rec.NameEn,
		})
	}

	area, err := uc.areaRepo.GetBySlug(ctx, rec.AreaSlug)
	if err != nil {
		if err == errors.ErrAreaNotFound {
			known, listErr := uc.areaRepo.ListSlugs(ctx)
			if listErr != nil {
				uc.logger.Error("Failed to list area slugs for diagnostics", zap.Error(listErr))
			}
			uc.logger.Warn("Shop references unknown operational area",
				zap.String("shop", rec.NameEn),
				zap.String("requested_slug", rec.AreaSlug),
				zap.Strings("known_slugs", known),
			)
			return nil, errors.ErrAreaNotFound.WithDetails(map[string]interface{}{
				"requested_slug": rec.AreaSlug,
			})
		}
		return nil, err
	}

	base := rec.CandidateSlug
	if base == "" {
		base = slug.Make(rec.NameEn)
	}
	composite := slug.Compose(base, area.Slug)

	shopSlug, err := uc.uniqueSlug(ctx, area.ID, composite, batch)
	if err != nil {
		return nil, err
	}

	shop := &domain.Shop{
		ID:                uuid.NewString(),
		NameEn:            rec.NameEn,
		NameAr:            rec.NameAr,
		Slug:              &shopSlug,
		Lat:               rec.Lat,
		Lon:               rec.Lon,
		Category:          rec.Category,
		OperationalAreaID: area.ID,
	}

	if err := uc.insertWithRetry(ctx, shop, area.ID, composite, batch); err != nil {
		return nil, err
	}

	batch.add(area.ID, *shop.Slug)
	return shop, nil
}

// uniqueSlug appends an incrementing numeric suffix until the composite slug
// is free both in the store and in the current batch.
func (uc *AssignmentUseCase) uniqueSlug(ctx context.Context, areaID, composite string, batch *batchSlugSet) (string, error) {
	candidate := composite
	for n := 1; ; n++ {
		taken := batch.has(areaID, candidate)
		if !taken {
			exists, err := uc.shopRepo.SlugExistsInArea(ctx, areaID, candidate)
			if err != nil {
				return "", err
			}
			taken = exists
		}
		if !taken {
			return candidate, nil
		}
		candidate = slug.WithSuffix(composite, n)
	}
}

// insertWithRetry handles the probe/insert race: a concurrent assignment can
// claim the probed slug first, so a unique violation gets one retry with a
// freshly probed suffix before surfacing.
func (uc *AssignmentUseCase) insertWithRetry(ctx context.Context, shop *domain.Shop, areaID, composite string, batch *batchSlugSet) error {
	err := uc.shopRepo.Insert(ctx, shop)
	if err != errors.ErrSlugConflict {
		return err
	}

	batch.add(areaID, *shop.Slug) // the probed slug is taken after all
	retrySlug, err := uc.uniqueSlug(ctx, areaID, composite, batch)
	if err != nil {
		return err
	}
	shop.Slug = &retrySlug

	uc.logger.Warn("Shop slug conflicted on insert, retrying with suffix",
		zap.String("shop", shop.NameEn),
		zap.String("slug", retrySlug),
	)

	if err := uc.shopRepo.Insert(ctx, shop); err != nil {
		if err == errors.ErrSlugConflict {
			return errors.ErrSlugConflict.WithDetails(map[string]interface{}{
				"shop": shop.NameEn,
				"slug": retrySlug,
			})
		}
		return err
	}
	return nil
}

// batchSlugSet tracks slugs claimed by the in-flight batch, keyed per area.
type batchSlugSet struct {
	claimed map[string]map[string]struct{}
}

func newBatchSlugSet() *batchSlugSet {
	return &batchSlugSet{claimed: make(map[string]map[string]struct{})}
}

func (s *batchSlugSet) has(areaID, slug string) bool {
	_, ok := s.claimed[areaID][slug]
	return ok
}

func (s *batchSlugSet) add(areaID, slug string) {
	if s.claimed[areaID] == nil {
		s.claimed[areaID] = make(map[string]struct{})
	}
	s.claimed[areaID][slug] = struct{}{}
}
