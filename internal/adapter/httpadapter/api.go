package httpadapter

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/couchcryptid/hydra-monitor-service/internal/domain"
	"github.com/couchcryptid/hydra-monitor-service/internal/store"
	"github.com/go-chi/chi/v5"
)

const (
	dateLayout = "2006-01-02"

	defaultAnalyticsLimit = 8
	defaultZoom           = 16
	defaultImageWidth     = 600
	defaultImageHeight    = 400
)

type api struct {
	deps   Deps
	logger *slog.Logger
}

func newAPI(deps Deps, logger *slog.Logger) *api {
	return &api{deps: deps, logger: logger}
}

type projectList struct {
	Projects []domain.Project `json:"projects"`
	Count    int              `json:"count"`
}

type mapResponse struct {
	Groups      domain.Groups `json:"groups"`
	RenderOrder []string      `json:"render_order"`
	Unlocated   int           `json:"unlocated"`
	TileURL     string        `json:"tile_url,omitempty"`
}

type regionList struct {
	Default string          `json:"default"`
	Regions []domain.Region `json:"regions"`
}

type timelineResponse struct {
	Timeline   domain.Timeline  `json:"timeline"`
	Threshold  time.Time        `json:"imagery_threshold"`
	Selection  domain.Selection `json:"selection"`
	Markers    []domain.Marker  `json:"markers"`
	HasImagery bool             `json:"has_imagery"`
}

type imageryResponse struct {
	Available bool   `json:"available"`
	Reason    string `json:"reason,omitempty"`
	StaticURL string `json:"static_url,omitempty"`
	TileURL   string `json:"tile_url,omitempty"`
}

// inRegion returns the snapshot filtered by the region query parameter.
func (a *api) inRegion(r *http.Request) []domain.Project {
	return a.deps.Regions.FilterByRegion(a.deps.Projects.Snapshot(), r.URL.Query().Get("region"))
}

func (a *api) listProjects(w http.ResponseWriter, r *http.Request) {
	projects := domain.Search(a.inRegion(r), r.URL.Query().Get("q"))
	a.writeJSON(w, http.StatusOK, projectList{Projects: projects, Count: len(projects)})
}

func (a *api) getProject(w http.ResponseWriter, r *http.Request) {
	p, ok := a.project(w, r)
	if !ok {
		return
	}
	a.writeJSON(w, http.StatusOK, p)
}

func (a *api) mapView(w http.ResponseWriter, r *http.Request) {
	projects := a.inRegion(r)
	markers := domain.MapMarkers(projects)

	resp := mapResponse{
		Groups:      domain.GroupBySeverity(markers),
		RenderOrder: make([]string, 0, len(markers)),
		Unlocated:   len(projects) - len(markers),
	}
	for _, p := range markers {
		resp.RenderOrder = append(resp.RenderOrder, p.ID)
	}
	if a.deps.Imagery != nil {
		resp.TileURL, _ = a.deps.Imagery.TileLayerURL()
	}
	a.writeJSON(w, http.StatusOK, resp)
}

func (a *api) stats(w http.ResponseWriter, r *http.Request) {
	a.writeJSON(w, http.StatusOK, domain.ComputeStats(a.inRegion(r)))
}

func (a *api) topContractors(w http.ResponseWriter, r *http.Request) {
	limit := domain.ParseLimit(r.URL.Query().Get("limit"), defaultAnalyticsLimit)
	a.writeJSON(w, http.StatusOK, domain.TopContractors(a.inRegion(r), limit))
}

func (a *api) redFlags(w http.ResponseWriter, r *http.Request) {
	limit := domain.ParseLimit(r.URL.Query().Get("limit"), defaultAnalyticsLimit)
	a.writeJSON(w, http.StatusOK, domain.TopRedFlags(a.inRegion(r), limit))
}

func (a *api) riskTrend(w http.ResponseWriter, r *http.Request) {
	a.writeJSON(w, http.StatusOK, domain.RiskTrend(a.inRegion(r)))
}

func (a *api) listRegions(w http.ResponseWriter, _ *http.Request) {
	resp := regionList{Default: domain.AllRegions, Regions: []domain.Region{}}
	if a.deps.Regions != nil {
		resp.Regions = a.deps.Regions.Regions
	}
	a.writeJSON(w, http.StatusOK, resp)
}

func (a *api) timeline(w http.ResponseWriter, r *http.Request) {
	p, ok := a.project(w, r)
	if !ok {
		return
	}
	q := r.URL.Query()

	available, err := parseDates(q["available"])
	if err != nil {
		a.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	tl := domain.TimelineFor(p, domain.Now().UTC(), a.deps.LookbackYears)

	var sel domain.Selection
	switch {
	case q.Get("date") != "":
		d, err := time.Parse(dateLayout, q.Get("date"))
		if err != nil {
			a.writeError(w, http.StatusBadRequest, "date must be YYYY-MM-DD")
			return
		}
		sel = tl.Select(d)
	case q.Get("value") != "":
		v, err := strconv.ParseFloat(q.Get("value"), 64)
		if err != nil {
			a.writeError(w, http.StatusBadRequest, "value must be a number between 0 and 100")
			return
		}
		sel = tl.SelectValue(v)
	default:
		sel = tl.Select(tl.End)
	}

	a.writeJSON(w, http.StatusOK, timelineResponse{
		Timeline:   tl,
		Threshold:  tl.ImageryThreshold(),
		Selection:  sel,
		Markers:    tl.Markers(available),
		HasImagery: domain.HasImagery(sel.Date, available),
	})
}

func (a *api) imagery(w http.ResponseWriter, r *http.Request) {
	p, ok := a.project(w, r)
	if !ok {
		return
	}
	if !p.HasLocation() {
		a.writeJSON(w, http.StatusOK, imageryResponse{Reason: "project has no location data"})
		return
	}
	if a.deps.Imagery == nil {
		a.writeJSON(w, http.StatusOK, imageryResponse{Reason: "imagery is not configured"})
		return
	}

	q := r.URL.Query()
	staticURL, ok := a.deps.Imagery.StaticMapURL(p.Geo.Lat, p.Geo.Lon,
		intParam(q.Get("zoom"), defaultZoom),
		intParam(q.Get("width"), defaultImageWidth),
		intParam(q.Get("height"), defaultImageHeight),
	)
	if !ok {
		a.writeJSON(w, http.StatusOK, imageryResponse{Reason: "imagery is not configured"})
		return
	}
	tileURL, _ := a.deps.Imagery.TileLayerURL()
	a.writeJSON(w, http.StatusOK, imageryResponse{Available: true, StaticURL: staticURL, TileURL: tileURL})
}

// project loads the {id} project, writing a 404 when it is unknown.
func (a *api) project(w http.ResponseWriter, r *http.Request) (domain.Project, bool) {
	id := chi.URLParam(r, "id")
	p, err := a.deps.Projects.Get(id)
	if errors.Is(err, store.ErrNotFound) {
		a.writeError(w, http.StatusNotFound, fmt.Sprintf("project %q not found", id))
		return domain.Project{}, false
	}
	if err != nil {
		a.logger.Error("load project failed", "project_id", id, "error", err)
		a.writeError(w, http.StatusInternalServerError, "internal error")
		return domain.Project{}, false
	}
	return p, true
}

func (a *api) writeJSON(w http.ResponseWriter, status int, v any) {
	data, err := sonic.Marshal(v)
	if err != nil {
		a.logger.Error("encode response failed", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(data); err != nil {
		a.logger.Debug("write response failed", "error", err)
	}
}

func (a *api) writeError(w http.ResponseWriter, status int, msg string) {
	a.writeJSON(w, status, map[string]string{"error": msg})
}

// parseDates accepts repeated and comma-separated YYYY-MM-DD values.
func parseDates(values []string) ([]time.Time, error) {
	var out []time.Time
	for _, v := range values {
		for _, s := range strings.Split(v, ",") {
			s = strings.TrimSpace(s)
			if s == "" {
				continue
			}
			d, err := time.Parse(dateLayout, s)
			if err != nil {
				return nil, fmt.Errorf("available date %q must be YYYY-MM-DD", s)
			}
			out = append(out, d)
		}
	}
	return out, nil
}

func intParam(s string, def int) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return def
	}
	return n
}
