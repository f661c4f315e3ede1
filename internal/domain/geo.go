package domain

import "math"

// IsValidLatitude reports whether lat is a finite latitude in [-90, 90].
func IsValidLatitude(lat float64) bool {
	return !math.IsNaN(lat) && !math.IsInf(lat, 0) && lat >= -90 && lat <= 90
}

// IsValidLongitude reports whether lng is a finite longitude in [-180, 180].
func IsValidLongitude(lng float64) bool {
	return !math.IsNaN(lng) && !math.IsInf(lng, 0) && lng >= -180 && lng <= 180
}

// IsValidCoordinates reports whether both values form a drawable location.
// Callers must treat a false result as "no location data" rather than falling
// back to (0, 0).
func IsValidCoordinates(lat, lng float64) bool {
	return IsValidLatitude(lat) && IsValidLongitude(lng)
}

// ParseCoordinate converts a raw JSON value (number or numeric string) to a
// float. It returns false for anything that is not a finite number.
func ParseCoordinate(v any) (float64, bool) {
	return parseNumber(v)
}

// parseGeo builds a Geo from raw latitude and longitude values, or returns nil
// when either is missing, non-numeric, or out of bounds.
func parseGeo(latRaw, lonRaw any) *Geo {
	lat, ok := ParseCoordinate(latRaw)
	if !ok {
		return nil
	}
	lon, ok := ParseCoordinate(lonRaw)
	if !ok {
		return nil
	}
	if !IsValidCoordinates(lat, lon) {
		return nil
	}
	return &Geo{Lat: lat, Lon: lon}
}
