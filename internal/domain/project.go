package domain

import (
	"context"
	"time"
)

// RawRecord is one backend project record decoded without a schema.
// Values are whatever the JSON carried: string, float64, bool, nil, or nested.
type RawRecord map[string]any

// RawEvent represents an unprocessed message from the source topic.
type RawEvent struct {
	Key       []byte
	Value     []byte
	Headers   map[string]string
	Topic     string
	Partition int
	Offset    int64
	Timestamp time.Time
	Commit    func(ctx context.Context) error
}

// Location holds the administrative place names of a project site.
type Location struct {
	Region       string `json:"region,omitempty"`
	Province     string `json:"province,omitempty"`
	Municipality string `json:"municipality,omitempty"`
}

// Geo represents a WGS-84 latitude/longitude coordinate pair.
type Geo struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Project is the canonical record every derivation works on.
// Geo is nil when the record had no usable coordinates.
type Project struct {
	ID              string     `json:"id"`
	Name            string     `json:"name"`
	Contractor      string     `json:"contractor"`
	Score           float64    `json:"score"`
	RiskLabel       string     `json:"risk_label,omitempty"`
	Risk            Risk       `json:"risk"`
	Color           Color      `json:"color"`
	RiskDescription string     `json:"risk_description,omitempty"`
	Geo             *Geo       `json:"geo,omitempty"`
	Budget          float64    `json:"budget,omitempty"`
	StartDate       *time.Time `json:"start_date,omitempty"`
	EndDate         *time.Time `json:"end_date,omitempty"`
	Status          string     `json:"status,omitempty"`
	Location        Location   `json:"location"`

	// Geocoding enrichment fields.
	FormattedAddress string  `json:"formatted_address,omitempty"`
	GeoConfidence    float64 `json:"geo_confidence,omitempty"`
	GeoSource        string  `json:"geo_source,omitempty"` // "forward", "reverse", "original", "failed"

	RawPayload  []byte    `json:"-"`
	ProcessedAt time.Time `json:"processed_at"`
}

// HasLocation reports whether the project can be drawn on a map.
func (p Project) HasLocation() bool {
	return p.Geo != nil && IsValidCoordinates(p.Geo.Lat, p.Geo.Lon)
}

// OutputEvent is the serialized form destined for the sink topic.
type OutputEvent struct {
	Key     []byte
	Value   []byte
	Headers map[string]string
}
