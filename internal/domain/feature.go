package domain

import "github.com/paulmach/orb"

// BoundaryFeature is one unit from the official boundary source files:
// a bilingual name, an official code, the parent's code for sub-regions,
// and a polygon or multi-polygon geometry.
type BoundaryFeature struct {
	NameEn     string       `json:"name_en"`
	NameAr     string       `json:"name_ar"`
	Code       string       `json:"code"`
	ParentCode string       `json:"parent_code,omitempty"`
	Geometry   orb.Geometry `json:"-"`
}

// ShopSeedRecord is one shop from the shop source files. AreaSlug declares the
// target operational area explicitly; CandidateSlug optionally overrides the
// name-derived slug base.
type ShopSeedRecord struct {
	NameEn        string  `json:"name_en"`
	NameAr        string  `json:"name_ar"`
	Lat           float64 `json:"lat"`
	Lon           float64 `json:"lon"`
	Category      string  `json:"category"`
	AreaSlug      string  `json:"area_slug"`
	CandidateSlug string  `json:"candidate_slug,omitempty"`
}

// BatchResult reports the outcome of an ingestion or synthesis batch so
// callers and tests can assert on counts instead of log output.
type BatchResult struct {
	Inserted    int      `json:"inserted"`
	Skipped     int      `json:"skipped"`
	SkipReasons []string `json:"skip_reasons,omitempty"`
}

// Skip records one skipped item with its reason.
func (r *BatchResult) Skip(reason string) {
	r.Skipped++
	r.SkipReasons = append(r.SkipReasons, reason)
}
