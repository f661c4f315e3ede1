package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/couchcryptid/hydra-monitor-service/internal/adapter/httpadapter"
	kafkaadapter "github.com/couchcryptid/hydra-monitor-service/internal/adapter/kafka"
	"github.com/couchcryptid/hydra-monitor-service/internal/adapter/mapbox"
	"github.com/couchcryptid/hydra-monitor-service/internal/config"
	"github.com/couchcryptid/hydra-monitor-service/internal/domain"
	"github.com/couchcryptid/hydra-monitor-service/internal/observability"
	"github.com/couchcryptid/hydra-monitor-service/internal/pipeline"
	"github.com/couchcryptid/hydra-monitor-service/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	regions, err := domain.LoadRegionCatalog(cfg.RegionsFile)
	if err != nil {
		logger.Error("failed to load region catalog", "path", cfg.RegionsFile, "error", err)
		os.Exit(1)
	}

	// Geocoding and imagery are feature-flagged via MAPBOX_ENABLED / MAPBOX_TOKEN.
	var geocoder domain.Geocoder
	if cfg.MapboxEnabled {
		client := mapbox.NewClient(cfg.MapboxToken, cfg.MapboxCountry, cfg.MapboxTimeout, metrics, logger)
		geocoder = mapbox.NewCachedGeocoder(client, cfg.MapboxCacheSize, metrics)
		metrics.GeocodeEnabled.Set(1)
		logger.Info("mapbox geocoding enabled",
			"country", cfg.MapboxCountry, "cache_size", cfg.MapboxCacheSize, "timeout", cfg.MapboxTimeout)
	} else {
		logger.Info("mapbox geocoding disabled")
	}
	imagery := mapbox.NewImagery(cfg.MapboxToken, metrics)
	if !imagery.Enabled() {
		logger.Warn("MAPBOX_TOKEN not set, satellite imagery unavailable")
	}

	projects := store.New(metrics)
	reader := kafkaadapter.NewReader(cfg, logger)
	writer := kafkaadapter.NewWriter(cfg, logger)
	transformer := pipeline.NewTransformer(geocoder, logger)

	p := pipeline.New(reader, transformer, pipeline.FanOut{projects, writer}, logger, metrics, cfg.BatchSize)

	srv := httpadapter.NewServer(cfg.HTTPAddr, httpadapter.Deps{
		Projects:      projects,
		Regions:       regions,
		Imagery:       imagery,
		Ready:         p,
		LookbackYears: cfg.ImageryLookbackYears,
	}, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	go func() {
		if err := p.Run(ctx); err != nil {
			logger.Error("pipeline error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if err := reader.Close(); err != nil {
		logger.Error("kafka reader close error", "error", err)
	}
	if err := writer.Close(); err != nil {
		logger.Error("kafka writer close error", "error", err)
	}

	logger.Info("shutdown complete", "projects", projects.Len())
}
