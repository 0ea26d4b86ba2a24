package postgres

import (
	"encoding/json"
	"fmt"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// multiPolygonToJSON encodes a multi-polygon as GeoJSON for
// ST_GeomFromGeoJSON parameters. Empty geometry maps to nil (SQL NULL).
func multiPolygonToJSON(mp orb.MultiPolygon) ([]byte, error) {
	if len(mp) == 0 {
		return nil, nil
	}
	return json.Marshal(geojson.NewGeometry(mp))
}

// jsonToMultiPolygon decodes an ST_AsGeoJSON result. A single Polygon is
// wrapped, matching the normalization contract.
func jsonToMultiPolygon(data []byte) (orb.MultiPolygon, error) {
	if len(data) == 0 {
		return nil, nil
	}

	g, err := geojson.UnmarshalGeometry(data)
	if err != nil {
		return nil, fmt.Errorf("decode geometry: %w", err)
	}

	switch v := g.Geometry().(type) {
	case orb.MultiPolygon:
		return v, nil
	case orb.Polygon:
		return orb.MultiPolygon{v}, nil
	default:
		return nil, fmt.Errorf("unexpected geometry type %q", g.Type)
	}
}
