package repository

import (
	"context"

	"github.com/shopzone-microservice/internal/domain"
)

// AreaRepository persists operational areas.
type AreaRepository interface {
	// Insert stores one operational area.
	Insert(ctx context.Context, area *domain.OperationalArea) error

	// GetBySlug returns an area by its globally unique slug.
	GetBySlug(ctx context.Context, slug string) (*domain.OperationalArea, error)

	// SlugExists probes for synthesis idempotence.
	SlugExists(ctx context.Context, slug string) (bool, error)

	// ListActive returns active areas ordered by English name.
	ListActive(ctx context.Context) ([]*domain.OperationalArea, error)

	// ListSlugs returns every known area slug, for assignment diagnostics.
	ListSlugs(ctx context.Context) ([]string, error)

	// GetIntersectingViewport returns active areas whose effective geometry
	// (custom, or the linked admin boundary's) intersects the bounding box.
	GetIntersectingViewport(ctx context.Context, bbox domain.BoundingBox) ([]*domain.OperationalArea, error)

	// GetContainingPoint returns the active area containing the point, or
	// nil when no area covers it.
	GetContainingPoint(ctx context.Context, lat, lon float64) (*domain.OperationalArea, error)
}
