package pipeline

import (
	"context"
	"fmt"

	"github.com/couchcryptid/hydra-monitor-service/internal/domain"
)

// FanOut loads every batch into each loader in order and stops at the first
// failure. Offsets of a failed batch stay uncommitted, so loaders see the same
// projects again after a redelivery and must upsert.
type FanOut []BatchLoader

func (f FanOut) LoadBatch(ctx context.Context, projects []domain.Project) error {
	for i, l := range f {
		if l == nil {
			continue
		}
		if err := l.LoadBatch(ctx, projects); err != nil {
			return fmt.Errorf("loader %d: %w", i, err)
		}
	}
	return nil
}
