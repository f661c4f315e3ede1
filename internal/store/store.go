// Package store keeps the latest normalized version of every project in
// memory for the query API.
package store

import (
	"context"
	"errors"
	"sync"

	"github.com/couchcryptid/hydra-monitor-service/internal/domain"
	"github.com/couchcryptid/hydra-monitor-service/internal/observability"
)

// ErrNotFound is returned by Get for unknown project IDs.
var ErrNotFound = errors.New("project not found")

// ProjectStore is an in-memory index of projects keyed by ID. Snapshots keep
// first-seen order; a later version of a project replaces the earlier one in
// place.
type ProjectStore struct {
	mu      sync.RWMutex
	order   []string
	byID    map[string]domain.Project
	metrics *observability.Metrics
}

// New creates an empty store. metrics may be nil.
func New(metrics *observability.Metrics) *ProjectStore {
	return &ProjectStore{
		byID:    make(map[string]domain.Project),
		metrics: metrics,
	}
}

// LoadBatch upserts projects by ID. It satisfies pipeline.BatchLoader.
func (s *ProjectStore) LoadBatch(ctx context.Context, projects []domain.Project) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, p := range projects {
		if p.ID == "" {
			continue
		}
		if _, ok := s.byID[p.ID]; !ok {
			s.order = append(s.order, p.ID)
		}
		s.byID[p.ID] = p
	}
	s.recordBuckets()
	return nil
}

// Snapshot returns a copy of every stored project in first-seen order.
func (s *ProjectStore) Snapshot() []domain.Project {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Project, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.byID[id])
	}
	return out
}

// Get returns the project with the given ID.
func (s *ProjectStore) Get(id string) (domain.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.byID[id]
	if !ok {
		return domain.Project{}, ErrNotFound
	}
	return p, nil
}

// Len returns the number of stored projects.
func (s *ProjectStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.order)
}

// recordBuckets refreshes the per-bucket gauge. Callers hold s.mu.
func (s *ProjectStore) recordBuckets() {
	if s.metrics == nil {
		return
	}
	counts := map[domain.Bucket]int{
		domain.BucketLow:      0,
		domain.BucketHigh:     0,
		domain.BucketCritical: 0,
	}
	for _, p := range s.byID {
		counts[domain.BucketOf(p.Risk)]++
	}
	for bucket, n := range counts {
		s.metrics.StoredProjects.WithLabelValues(string(bucket)).Set(float64(n))
	}
}
