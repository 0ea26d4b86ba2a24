package dto

// RadiusSearchRequest searches shops around a point. RadiusM omitted means
// the containing area's default radius (or the configured fallback) bounds
// the scan. Without a point, sorting falls back to name ordering.
type RadiusSearchRequest struct {
	Lat      *float64 `json:"lat,omitempty" query:"lat" validate:"omitempty,min=-90,max=90"`
	Lon      *float64 `json:"lon,omitempty" query:"lon" validate:"omitempty,min=-180,max=180"`
	RadiusM  *float64 `json:"radius_m,omitempty" query:"radius_m" validate:"omitempty,min=50,max=100000"`
	Category string   `json:"category,omitempty" query:"category"`
	Sort     string   `json:"sort,omitempty" query:"sort" validate:"omitempty,oneof=distance_asc name_asc name_desc"`
	Limit    int      `json:"limit,omitempty" query:"limit" validate:"omitempty,min=1,max=200"`
}

// HasPoint reports whether both coordinates are present.
func (r *RadiusSearchRequest) HasPoint() bool {
	return r.Lat != nil && r.Lon != nil
}

// RadiusSearchResponse is the ranked shop list with computed distances.
type RadiusSearchResponse struct {
	Shops            []ShopDistanceDTO `json:"shops"`
	EffectiveRadiusM float64           `json:"effective_radius_m,omitempty"`
	Sort             string            `json:"sort"`
	Total            int               `json:"total"`
}

// ShopDistanceDTO is one ranked shop. DistanceM is present only for point
// queries.
type ShopDistanceDTO struct {
	ID        string   `json:"id"`
	NameEn    string   `json:"name_en"`
	NameAr    string   `json:"name_ar"`
	Slug      *string  `json:"slug,omitempty"`
	Lat       float64  `json:"lat"`
	Lon       float64  `json:"lon"`
	Category  string   `json:"category"`
	AreaID    string   `json:"area_id"`
	DistanceM *float64 `json:"distance_m,omitempty"`
}
