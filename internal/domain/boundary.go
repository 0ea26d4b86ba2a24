package domain

import (
	"time"

	"github.com/paulmach/orb"
)

// Administrative levels of the boundary hierarchy.
const (
	AdminLevelRegion    = 1 // top-level region (governorate)
	AdminLevelSubRegion = 2 // sub-region (district / markaz)
)

// AdministrativeBoundary is an officially defined geographic unit. Rows are
// created only by the boundary ingestor, in batch; a full reseed is the only
// delete path. The tree is linked by ParentID: level-2 rows point at the
// level-1 row whose official code prefixes their own.
type AdministrativeBoundary struct {
	ID           int64            `json:"id" db:"id"`
	NameEn       string           `json:"name_en" db:"name_en"`
	NameAr       string           `json:"name_ar" db:"name_ar"`
	AdminLevel   int              `json:"admin_level" db:"admin_level"`
	CountryCode  string           `json:"country_code" db:"country_code"`
	OfficialCode string           `json:"official_code" db:"official_code"`
	ParentID     *int64           `json:"parent_id,omitempty" db:"parent_id"`
	Detailed     orb.MultiPolygon `json:"-" db:"-"`
	Simplified   orb.MultiPolygon `json:"-" db:"-"`
	CentroidLat  float64          `json:"centroid_lat" db:"centroid_lat"`
	CentroidLon  float64          `json:"centroid_lon" db:"centroid_lon"`
	IsActive     bool             `json:"is_active" db:"is_active"`
	CreatedAt    time.Time        `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at" db:"updated_at"`
}

// LatLon is a WGS84 point.
type LatLon struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// BoundingBox is a lat/lon viewport rectangle.
type BoundingBox struct {
	MinLat float64 `json:"min_lat"`
	MinLon float64 `json:"min_lon"`
	MaxLat float64 `json:"max_lat"`
	MaxLon float64 `json:"max_lon"`
}
