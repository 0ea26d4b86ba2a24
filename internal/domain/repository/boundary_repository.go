package repository

import (
	"context"

	"github.com/shopzone-microservice/internal/domain"
)

// BoundaryRepository persists the administrative boundary tree. Detailed and
// simplified geometries are stored with spatial indexes; intersection and
// containment predicates run on the store's index, never as full scans.
type BoundaryRepository interface {
	// InsertBatch stores boundaries and returns the stored rows with
	// database-assigned ids, in input order.
	InsertBatch(ctx context.Context, boundaries []*domain.AdministrativeBoundary) ([]*domain.AdministrativeBoundary, error)

	// CountByLevel reports how many rows exist at an admin level, for the
	// ingestor's idempotence check.
	CountByLevel(ctx context.Context, level int) (int, error)

	// GetByLevel returns all boundaries at a level, without geometry.
	GetByLevel(ctx context.Context, level int) ([]*domain.AdministrativeBoundary, error)

	// GetByID returns one boundary with its geometries.
	GetByID(ctx context.Context, id int64) (*domain.AdministrativeBoundary, error)

	// GetCodeMap returns officialCode -> id for a level, used to resolve
	// level-2 parents against the committed level-1 set.
	GetCodeMap(ctx context.Context, level int) (map[string]int64, error)

	// ListIDs returns all boundary ids, for the aggregate refresher.
	ListIDs(ctx context.Context) ([]int64, error)

	// DeleteAll removes every dependent table and the boundaries themselves
	// in child-before-parent order. Reseed path only.
	DeleteAll(ctx context.Context) error
}
