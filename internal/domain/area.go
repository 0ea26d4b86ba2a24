package domain

import (
	"time"

	"github.com/paulmach/orb"
)

// GeometrySource tags where an operational area's boundary comes from.
type GeometrySource string

const (
	// GeometrySourceCustom means the area carries its own (possibly unioned)
	// boundary in CustomBoundary.
	GeometrySourceCustom GeometrySource = "custom"
	// GeometrySourceDerivedFromAdmin means the linked administrative boundary
	// is the authoritative geometry and CustomBoundary is empty.
	GeometrySourceDerivedFromAdmin GeometrySource = "derived_from_admin"
)

// OperationalArea is a business-defined service zone. Exactly one geometry
// source is authoritative: a custom boundary, or the referenced administrative
// boundary. Constructors in the synthesis usecase enforce the invariant.
type OperationalArea struct {
	ID                     string           `json:"id" db:"id"`
	NameEn                 string           `json:"name_en" db:"name_en"`
	NameAr                 string           `json:"name_ar" db:"name_ar"`
	Slug                   string           `json:"slug" db:"slug"`
	IsActive               bool             `json:"is_active" db:"is_active"`
	DisplayLevel           string           `json:"display_level" db:"display_level"`
	CentroidLat            float64          `json:"centroid_lat" db:"centroid_lat"`
	CentroidLon            float64          `json:"centroid_lon" db:"centroid_lon"`
	DefaultSearchRadiusM   float64          `json:"default_search_radius_m" db:"default_search_radius_m"`
	DefaultMapZoom         *float64         `json:"default_map_zoom,omitempty" db:"default_map_zoom"`
	GeometrySource         GeometrySource   `json:"geometry_source" db:"geometry_source"`
	CustomBoundary         orb.MultiPolygon `json:"-" db:"-"`
	CustomSimplified       orb.MultiPolygon `json:"-" db:"-"`
	PrimaryAdminBoundaryID *int64           `json:"primary_admin_boundary_id,omitempty" db:"primary_admin_boundary_id"`
	CreatedAt              time.Time        `json:"created_at" db:"created_at"`
	UpdatedAt              time.Time        `json:"updated_at" db:"updated_at"`
}

// HasCustomGeometry reports whether the area's own boundary is authoritative.
func (a *OperationalArea) HasCustomGeometry() bool {
	return a.GeometrySource == GeometrySourceCustom
}
