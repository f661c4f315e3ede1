package domain

import (
	"context"
	"log/slog"
)

// EnrichWithGeocoding backfills location data. Projects missing coordinates
// are forward geocoded from municipality and province; projects with
// coordinates but no address are reverse geocoded. Failures never drop the
// project, they only set GeoSource to "failed".
func EnrichWithGeocoding(ctx context.Context, p Project, geocoder Geocoder, logger *slog.Logger) Project {
	if geocoder == nil {
		return p
	}

	place, area := geocodeQuery(p.Location)

	if p.Geo == nil && place != "" {
		result, err := geocoder.ForwardGeocode(ctx, place, area)
		if err != nil {
			logger.Warn("forward geocoding failed",
				"project_id", p.ID,
				"place", place,
				"area", area,
				"error", err,
			)
			p.GeoSource = "failed"
			return p
		}
		if (result.Lat != 0 || result.Lon != 0) && IsValidCoordinates(result.Lat, result.Lon) {
			p.Geo = &Geo{Lat: result.Lat, Lon: result.Lon}
			p.FormattedAddress = result.FormattedAddress
			p.GeoConfidence = result.Confidence
			p.GeoSource = "forward"
			return p
		}
		p.GeoSource = "original"
		return p
	}

	if p.Geo != nil && p.FormattedAddress == "" {
		result, err := geocoder.ReverseGeocode(ctx, p.Geo.Lat, p.Geo.Lon)
		if err != nil {
			logger.Warn("reverse geocoding failed",
				"project_id", p.ID,
				"lat", p.Geo.Lat,
				"lon", p.Geo.Lon,
				"error", err,
			)
			p.GeoSource = "failed"
			return p
		}
		if result.FormattedAddress != "" {
			p.FormattedAddress = result.FormattedAddress
			p.GeoConfidence = result.Confidence
			p.GeoSource = "reverse"
			if p.Location.Municipality == "" {
				p.Location.Municipality = result.PlaceName
			}
			return p
		}
	}

	p.GeoSource = "original"
	return p
}

// geocodeQuery picks the most specific place name and the area it lies in.
func geocodeQuery(loc Location) (place, area string) {
	switch {
	case loc.Municipality != "":
		return loc.Municipality, loc.Province
	case loc.Province != "":
		return loc.Province, loc.Region
	default:
		return "", ""
	}
}
