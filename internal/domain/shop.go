package domain

import "time"

// Shop is a service provider bound to exactly one operational area. The slug
// is unique within the area, not globally.
type Shop struct {
	ID                string    `json:"id" db:"id"`
	NameEn            string    `json:"name_en" db:"name_en"`
	NameAr            string    `json:"name_ar" db:"name_ar"`
	Slug              *string   `json:"slug,omitempty" db:"slug"`
	Lat               float64   `json:"lat" db:"lat"`
	Lon               float64   `json:"lon" db:"lon"`
	Category          string    `json:"category" db:"category"`
	OperationalAreaID string    `json:"operational_area_id" db:"operational_area_id"`
	IsDeleted         bool      `json:"-" db:"is_deleted"`
	CreatedAt         time.Time `json:"created_at" db:"created_at"`
	UpdatedAt         time.Time `json:"updated_at" db:"updated_at"`
}

// ShopWithDistance decorates a shop with its geodesic distance to a query point.
type ShopWithDistance struct {
	Shop
	DistanceM float64 `json:"distance_m" db:"distance_m"`
}

// Shop sort modes for radius search.
const (
	SortDistanceAsc = "distance_asc"
	SortNameAsc     = "name_asc"
	SortNameDesc    = "name_desc"
)
