package dto

import "github.com/paulmach/orb/geojson"

// AreaDTO is one operational area for the browse API. Geometry is the
// simplified boundary and is only populated on request.
type AreaDTO struct {
	ID                     string            `json:"id"`
	NameEn                 string            `json:"name_en"`
	NameAr                 string            `json:"name_ar"`
	Slug                   string            `json:"slug"`
	DisplayLevel           string            `json:"display_level"`
	CentroidLat            float64           `json:"centroid_lat"`
	CentroidLon            float64           `json:"centroid_lon"`
	DefaultSearchRadiusM   float64           `json:"default_search_radius_m"`
	DefaultMapZoom         *float64          `json:"default_map_zoom,omitempty"`
	GeometrySource         string            `json:"geometry_source"`
	PrimaryAdminBoundaryID *int64            `json:"primary_admin_boundary_id,omitempty"`
	Geometry               *geojson.Geometry `json:"geometry,omitempty"`
}

// AreaListRequest selects the browse payload shape.
type AreaListRequest struct {
	WithGeometry bool `json:"with_geometry" query:"with_geometry"`
}

// AreaListResponse lists active areas.
type AreaListResponse struct {
	Areas []AreaDTO `json:"areas"`
	Total int       `json:"total"`
}

// BoundaryDTO is one administrative boundary for the hierarchy API.
type BoundaryDTO struct {
	ID           int64             `json:"id"`
	NameEn       string            `json:"name_en"`
	NameAr       string            `json:"name_ar"`
	AdminLevel   int               `json:"admin_level"`
	CountryCode  string            `json:"country_code"`
	OfficialCode string            `json:"official_code"`
	ParentID     *int64            `json:"parent_id,omitempty"`
	CentroidLat  float64           `json:"centroid_lat"`
	CentroidLon  float64           `json:"centroid_lon"`
	Geometry     *geojson.Geometry `json:"geometry,omitempty"`
}
