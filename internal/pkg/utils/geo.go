package utils

import "math"

const earthRadiusM = 6371000.0

// HaversineDistance returns the great-circle distance between two points in meters.
func HaversineDistance(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := (lat2 - lat1) * math.Pi / 180.0
	dLon := (lon2 - lon1) * math.Pi / 180.0

	lat1Rad := lat1 * math.Pi / 180.0
	lat2Rad := lat2 * math.Pi / 180.0

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Sin(dLon/2)*math.Sin(dLon/2)*math.Cos(lat1Rad)*math.Cos(lat2Rad)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusM * c
}

// ValidateCoordinates checks that a point is a plausible WGS84 coordinate.
func ValidateCoordinates(lat, lon float64) bool {
	return lat >= -90 && lat <= 90 && lon >= -180 && lon <= 180
}

// ValidateRadius checks a search radius in meters (50 m - 100 km).
func ValidateRadius(radiusM float64) bool {
	return radiusM >= 50 && radiusM <= 100000
}

// ValidateZoom checks a web-mercator style zoom level.
func ValidateZoom(zoom float64) bool {
	return zoom >= 0 && zoom <= 22
}

// ValidateBoundingBox checks corner ordering and coordinate ranges.
func ValidateBoundingBox(minLat, minLon, maxLat, maxLon float64) bool {
	if !ValidateCoordinates(minLat, minLon) || !ValidateCoordinates(maxLat, maxLon) {
		return false
	}
	return minLat < maxLat && minLon < maxLon
}
