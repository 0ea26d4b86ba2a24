package repository

import (
	"context"

	"github.com/shopzone-microservice/internal/domain"
)

// ShopRepository persists shops and answers spatial shop queries.
type ShopRepository interface {
	// Insert stores one shop. Returns a slug-conflict error when the
	// (operational_area_id, slug) unique constraint is violated, so the
	// caller can retry once with the next suffix.
	Insert(ctx context.Context, shop *domain.Shop) error

	// SlugExistsInArea probes composite slug uniqueness within one area.
	SlugExistsInArea(ctx context.Context, areaID, slug string) (bool, error)

	// GetInViewport returns active shops inside the bounding box, ordered by
	// id, capped at limit.
	GetInViewport(ctx context.Context, bbox domain.BoundingBox, category string, limit int) ([]*domain.Shop, error)

	// GetInRadius returns active shops within radiusM meters of the point,
	// with computed geodesic distances.
	GetInRadius(ctx context.Context, lat, lon, radiusM float64, category string, limit int) ([]*domain.ShopWithDistance, error)

	// ListActive returns active shops ordered by English name, for searches
	// without a query point.
	ListActive(ctx context.Context, category string, nameDesc bool, limit int) ([]*domain.Shop, error)

	// CountActiveInBoundary counts non-deleted shops whose location falls
	// inside the boundary's detailed geometry.
	CountActiveInBoundary(ctx context.Context, boundaryID int64) (int, error)
}
