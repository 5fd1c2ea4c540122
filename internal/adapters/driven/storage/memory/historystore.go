package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/custodia-labs/wayfinder-cli/internal/core/domain"
	"github.com/custodia-labs/wayfinder-cli/internal/core/ports/driven"
)

// Ensure HistoryStore implements the interface.
var _ driven.RouteHistoryStore = (*HistoryStore)(nil)

// HistoryStore is an in-memory implementation of driven.RouteHistoryStore.
// Used when history is disabled on disk and in tests.
type HistoryStore struct {
	mu     sync.RWMutex
	routes map[string]domain.SavedRoute
}

// NewHistoryStore creates a new in-memory history store.
func NewHistoryStore() *HistoryStore {
	return &HistoryStore{
		routes: make(map[string]domain.SavedRoute),
	}
}

// Save stores or updates a route.
func (s *HistoryStore) Save(_ context.Context, route domain.SavedRoute) error {
	if route.ID == "" {
		return domain.ErrInvalidInput
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	route.Geometry = append(domain.RouteGeometry(nil), route.Geometry...)
	s.routes[route.ID] = route
	return nil
}

// Get retrieves a route by ID.
func (s *HistoryStore) Get(_ context.Context, id string) (*domain.SavedRoute, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	route, ok := s.routes[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &route, nil
}

// List returns up to limit routes, most recent first. Zero means no limit.
func (s *HistoryStore) List(_ context.Context, limit int) ([]domain.SavedRoute, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]domain.SavedRoute, 0, len(s.routes))
	for _, route := range s.routes {
		result = append(result, route)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].ID < result[j].ID
		}
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})

	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

// Delete removes a route.
func (s *HistoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.routes[id]; !ok {
		return domain.ErrNotFound
	}
	delete(s.routes, id)
	return nil
}
