package pipeline

import (
	"context"
	"log/slog"

	"github.com/couchcryptid/hydra-monitor-service/internal/domain"
)

// ProjectTransformer implements Transformer using the domain normalization
// functions with optional geocoding enrichment.
type ProjectTransformer struct {
	geocoder domain.Geocoder
	logger   *slog.Logger
}

// NewTransformer creates a ProjectTransformer. Pass a nil geocoder to disable
// geocoding enrichment.
func NewTransformer(geocoder domain.Geocoder, logger *slog.Logger) *ProjectTransformer {
	return &ProjectTransformer{
		geocoder: geocoder,
		logger:   logger,
	}
}

func (t *ProjectTransformer) Transform(ctx context.Context, raw domain.RawEvent) (domain.Project, error) {
	p, err := domain.ParseRawEvent(raw)
	if err != nil {
		return domain.Project{}, err
	}

	p = domain.EnrichProject(p)
	p = domain.EnrichWithGeocoding(ctx, p, t.geocoder, t.logger)

	return p, nil
}
