package domain

// Synthesis plan kinds.
const (
	PlanWholeRegion = "whole_region" // one level-1 boundary promoted as-is
	PlanComposite   = "composite"    // union of several level-2 boundaries
	PlanDirect      = "direct"       // one level-2 boundary promoted as-is
)

// AreaPlan describes one operational area the synthesizer should produce.
// Plans come from the business seed file; each resolves against already
// ingested administrative boundaries.
type AreaPlan struct {
	Kind           string   `json:"kind"`
	NameEn         string   `json:"name_en"`
	NameAr         string   `json:"name_ar"`
	DisplayLevel   string   `json:"display_level"`
	RegionCode     string   `json:"region_code,omitempty"`      // whole_region
	SubRegionCodes []string `json:"sub_region_codes,omitempty"` // composite (N) / direct (1)
	AncestorCode   string   `json:"ancestor_code,omitempty"`    // composite: display context
	DefaultMapZoom *float64 `json:"default_map_zoom,omitempty"`
}
