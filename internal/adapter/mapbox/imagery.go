package mapbox

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/couchcryptid/hydra-monitor-service/internal/domain"
	"github.com/couchcryptid/hydra-monitor-service/internal/observability"
)

const (
	stylesBaseURL = "https://api.mapbox.com/styles/v1/mapbox"

	staticStyle = "satellite-v9"
	tileStyle   = "satellite-streets-v12"

	minZoom      = 0
	maxZoom      = 22
	minDimension = 1
	maxDimension = 1280
)

// Imagery builds Mapbox satellite imagery URLs. Without a token no URL is
// produced, so a placeholder token never reaches the browser.
type Imagery struct {
	token   string
	baseURL string
	metrics *observability.Metrics
}

// NewImagery creates an imagery URL builder. metrics may be nil.
func NewImagery(token string, metrics *observability.Metrics) *Imagery {
	return &Imagery{
		token:   strings.TrimSpace(token),
		baseURL: stylesBaseURL,
		metrics: metrics,
	}
}

// Enabled reports whether a token is configured.
func (i *Imagery) Enabled() bool {
	return i != nil && i.token != ""
}

// StaticMapURL returns a satellite snapshot centered on lat/lng. Zoom is
// clamped to [0, 22] and the size to [1, 1280] pixels per side. It reports
// false when no token is configured or the coordinates are invalid.
func (i *Imagery) StaticMapURL(lat, lng float64, zoom, width, height int) (string, bool) {
	if !i.Enabled() || !domain.IsValidCoordinates(lat, lng) {
		i.unavailable()
		return "", false
	}

	zoom = clamp(zoom, minZoom, maxZoom)
	width = clamp(width, minDimension, maxDimension)
	height = clamp(height, minDimension, maxDimension)

	u := fmt.Sprintf("%s/%s/static/%s,%s,%d,0,0/%dx%d?access_token=%s",
		i.baseURL, staticStyle,
		formatCoord(lng), formatCoord(lat), zoom,
		width, height,
		url.QueryEscape(i.token),
	)
	return u, true
}

// TileLayerURL returns the satellite-streets raster tile template for
// interactive maps. It reports false when no token is configured.
func (i *Imagery) TileLayerURL() (string, bool) {
	if !i.Enabled() {
		i.unavailable()
		return "", false
	}
	return fmt.Sprintf("%s/%s/tiles/{z}/{x}/{y}?access_token=%s",
		i.baseURL, tileStyle, url.QueryEscape(i.token)), true
}

func (i *Imagery) unavailable() {
	if i != nil && i.metrics != nil {
		i.metrics.ImageryUnavailable.Inc()
	}
}

func formatCoord(v float64) string {
	return fmt.Sprintf("%.6f", v)
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
