package httpadapter

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/couchcryptid/hydra-monitor-service/internal/domain"
	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// ProjectSource is the read side of the project store.
type ProjectSource interface {
	Snapshot() []domain.Project
	Get(id string) (domain.Project, error)
}

// ImageryURLs builds satellite imagery URLs; both methods report false when
// imagery cannot be served.
type ImageryURLs interface {
	StaticMapURL(lat, lng float64, zoom, width, height int) (string, bool)
	TileLayerURL() (string, bool)
}

// Deps are the collaborators the API reads from. Imagery may be nil.
type Deps struct {
	Projects      ProjectSource
	Regions       *domain.RegionCatalog
	Imagery       ImageryURLs
	Ready         sharedobs.ReadinessChecker
	LookbackYears int
}

// Server exposes the dashboard API along with health, readiness, and metrics
// endpoints.
type Server struct {
	httpServer *http.Server
	logger     *slog.Logger
}

// NewServer creates an HTTP server with the /api routes plus /healthz,
// /readyz, and /metrics.
func NewServer(addr string, deps Deps, logger *slog.Logger) *Server {
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(requestLogger(logger))
	router.Use(middleware.Recoverer)

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      router,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		logger: logger,
	}

	router.Get("/healthz", sharedobs.LivenessHandler())
	router.Get("/readyz", sharedobs.ReadinessHandler(deps.Ready))
	router.Handle("/metrics", promhttp.Handler())

	api := newAPI(deps, logger)
	router.Route("/api", func(r chi.Router) {
		r.Get("/regions", api.listRegions)
		r.Get("/stats", api.stats)
		r.Get("/map", api.mapView)

		r.Route("/analytics", func(r chi.Router) {
			r.Get("/contractors", api.topContractors)
			r.Get("/red-flags", api.redFlags)
			r.Get("/trend", api.riskTrend)
		})

		r.Route("/projects", func(r chi.Router) {
			r.Get("/", api.listProjects)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", api.getProject)
				r.Get("/timeline", api.timeline)
				r.Get("/imagery", api.imagery)
			})
		})
	})

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

func requestLogger(logger *slog.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			logger.Debug("http request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"request_id", middleware.GetReqID(r.Context()),
			)
		})
	}
}
