package domain

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidCoordinates(t *testing.T) {
	tests := []struct {
		name     string
		lat, lng float64
		expected bool
	}{
		{"manila", 14.6, 121.0, true},
		{"latitude too high", 91, 10, false},
		{"longitude too low", 45, -200, false},
		{"poles and antimeridian", -90, 180, true},
		{"NaN latitude", math.NaN(), 121.0, false},
		{"infinite longitude", 14.6, math.Inf(1), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsValidCoordinates(tt.lat, tt.lng))
		})
	}
}

func TestParseCoordinate(t *testing.T) {
	tests := []struct {
		name  string
		in    any
		want  float64
		valid bool
	}{
		{"number", 14.5995, 14.5995, true},
		{"numeric string", " 121.0 ", 121.0, true},
		{"empty string", "", 0, false},
		{"junk string", "north", 0, false},
		{"NaN string", "NaN", 0, false},
		{"nil", nil, 0, false},
		{"bool", true, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseCoordinate(tt.in)
			assert.Equal(t, tt.valid, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseGeo(t *testing.T) {
	assert.Equal(t, &Geo{Lat: 14.6, Lon: 121.0}, parseGeo("14.6", 121.0))
	assert.Nil(t, parseGeo(nil, 121.0))
	assert.Nil(t, parseGeo(14.6, "east"))
	assert.Nil(t, parseGeo(91.0, 10.0))
}
