// Package geometry is the pure geometry pipeline: normalization to
// multi-polygon form, Douglas-Peucker simplification, and unioning of
// administrative source geometries. All functions are side-effect free.
package geometry

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
	"github.com/paulmach/orb/planar"
	"github.com/paulmach/orb/simplify"
)

// Default simplification tolerances in degrees. Larger units tolerate
// coarser simplification: the simplified copy only feeds low-zoom rendering,
// the detailed geometry stays authoritative.
const (
	ToleranceRegion    = 0.01
	ToleranceSubRegion = 0.005
	ToleranceCustom    = 0.005
)

// Normalize converts any polygonal geometry to multi-polygon form: a lone
// polygon becomes a one-member multi-polygon, a multi-polygon is copied
// through. The second return is false for non-polygonal shapes, which callers
// treat as a skip condition.
func Normalize(g orb.Geometry) (orb.MultiPolygon, bool) {
	switch v := g.(type) {
	case orb.Polygon:
		return orb.MultiPolygon{v.Clone()}, true
	case orb.MultiPolygon:
		return v.Clone(), true
	default:
		return nil, false
	}
}

// Simplify reduces vertex count with Douglas-Peucker at the given tolerance
// (degrees), then re-normalizes. Simplification is a size optimization, not a
// correctness requirement: any internal failure degrades to the normalized,
// unsimplified input.
func Simplify(g orb.Geometry, toleranceDeg float64) (orb.MultiPolygon, bool) {
	normalized, ok := Normalize(g)
	if !ok {
		return nil, false
	}

	simplified, ok := trySimplify(normalized, toleranceDeg)
	if !ok {
		return normalized, true
	}
	return simplified, true
}

func trySimplify(mp orb.MultiPolygon, toleranceDeg float64) (result orb.MultiPolygon, ok bool) {
	defer func() {
		if recover() != nil {
			result, ok = nil, false
		}
	}()

	reduced := simplify.DouglasPeucker(toleranceDeg).Simplify(mp.Clone())
	normalized, valid := Normalize(reduced)
	if !valid || len(normalized) == 0 {
		return nil, false
	}
	// A ring collapsed below a valid polygon is a failed simplification.
	for _, poly := range normalized {
		if len(poly) == 0 || len(poly[0]) < 4 {
			return nil, false
		}
	}
	return normalized, true
}

// Union combines 1..N polygonal geometries into a single multi-polygon.
// A single input is copied directly. Administrative sub-units are disjoint,
// so the union of their polygons is the combined member set. Empty or
// all-invalid input yields ok=false, which callers treat as a synthesis skip.
func Union(gs []orb.Geometry) (orb.MultiPolygon, bool) {
	if len(gs) == 1 {
		return Normalize(gs[0])
	}

	var union orb.MultiPolygon
	for _, g := range gs {
		mp, ok := Normalize(g)
		if !ok {
			continue
		}
		union = append(union, mp...)
	}

	if len(union) == 0 {
		return nil, false
	}
	return union, true
}

// Centroid returns the planar centroid of a multi-polygon. ok is false for
// empty or degenerate geometry, letting callers fall back to a supplied point.
func Centroid(mp orb.MultiPolygon) (orb.Point, bool) {
	if len(mp) == 0 {
		return orb.Point{}, false
	}
	center, area := planar.CentroidArea(mp)
	if area == 0 {
		return orb.Point{}, false
	}
	return center, true
}

// AreaSqKm returns the geodesic area of a multi-polygon in square kilometers.
func AreaSqKm(mp orb.MultiPolygon) float64 {
	if len(mp) == 0 {
		return 0
	}
	return geo.Area(mp) / 1e6
}

// VertexCount counts the vertices across all rings of a multi-polygon.
func VertexCount(mp orb.MultiPolygon) int {
	count := 0
	for _, poly := range mp {
		for _, ring := range poly {
			count += len(ring)
		}
	}
	return count
}
