package domain

import "time"

// AreaShopStats caches the active shop count for one administrative boundary.
// Written only by the aggregate refresher; read-only everywhere else.
type AreaShopStats struct {
	BoundaryID    int64     `json:"boundary_id" db:"boundary_id"`
	ShopCount     int       `json:"shop_count" db:"shop_count"`
	LastUpdatedAt time.Time `json:"last_updated_at" db:"last_updated_at"`
}
