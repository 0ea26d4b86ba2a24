package dto

// Map response modes.
const (
	MapModeAreas = "areas"
	MapModeShops = "shops"
)

// MapQueryRequest is a viewport query. Below the configured zoom threshold
// the response aggregates per area; at or above it, individual shop points.
type MapQueryRequest struct {
	MinLat   float64 `json:"min_lat" query:"min_lat" validate:"min=-90,max=90"`
	MinLon   float64 `json:"min_lon" query:"min_lon" validate:"min=-180,max=180"`
	MaxLat   float64 `json:"max_lat" query:"max_lat" validate:"min=-90,max=90"`
	MaxLon   float64 `json:"max_lon" query:"max_lon" validate:"min=-180,max=180"`
	Zoom     float64 `json:"zoom" query:"zoom" validate:"min=0,max=22"`
	Category string  `json:"category,omitempty" query:"category"`
}

// MapQueryResponse carries exactly one of Areas or Shops depending on Mode.
type MapQueryResponse struct {
	Mode  string             `json:"mode"`
	Areas []AreaAggregateDTO `json:"areas,omitempty"`
	Shops []ShopPointDTO     `json:"shops,omitempty"`
}

// AreaAggregateDTO is one low-zoom aggregate record: area identity, centroid
// for map placement, and the cached shop count.
type AreaAggregateDTO struct {
	AreaID      string  `json:"area_id"`
	Slug        string  `json:"slug"`
	NameEn      string  `json:"name_en"`
	NameAr      string  `json:"name_ar"`
	CentroidLat float64 `json:"centroid_lat"`
	CentroidLon float64 `json:"centroid_lon"`
	ShopCount   int     `json:"shop_count"`
}

// ShopPointDTO is a minimal shop record for high-zoom map rendering.
type ShopPointDTO struct {
	ID       string  `json:"id"`
	NameEn   string  `json:"name_en"`
	NameAr   string  `json:"name_ar"`
	Slug     *string `json:"slug,omitempty"`
	Lat      float64 `json:"lat"`
	Lon      float64 `json:"lon"`
	Category string  `json:"category"`
}
