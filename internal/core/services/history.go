package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/wayfinder-cli/internal/core/domain"
	"github.com/custodia-labs/wayfinder-cli/internal/core/ports/driven"
	"github.com/custodia-labs/wayfinder-cli/internal/core/ports/driving"
)

// Ensure HistoryService implements the interface.
var _ driving.HistoryService = (*HistoryService)(nil)

// HistoryService records computed routes so they can be reopened later.
type HistoryService struct {
	store   driven.RouteHistoryStore
	profile domain.TravelProfile
	now     func() time.Time
}

// NewHistoryService creates a new history service. Saved routes are tagged
// with profile.
func NewHistoryService(store driven.RouteHistoryStore, profile domain.TravelProfile) *HistoryService {
	if !profile.IsValid() {
		profile = domain.ProfileDriving
	}
	return &HistoryService{
		store:   store,
		profile: profile,
		now:     time.Now,
	}
}

// Save records a computed route and returns the saved entry.
func (s *HistoryService) Save(
	ctx context.Context,
	selection domain.RouteSelection,
	result domain.RouteResult,
) (*domain.SavedRoute, error) {
	if s.store == nil {
		return nil, domain.ErrNotImplemented
	}
	if !selection.Complete() {
		return nil, domain.ErrIncompleteSelection
	}

	saved := domain.SavedRoute{
		ID:              uuid.New().String(),
		Origin:          *selection.Origin,
		Destination:     *selection.Destination,
		Profile:         s.profile,
		DistanceMeters:  result.DistanceMeters,
		DurationSeconds: result.DurationSeconds,
		Summary:         result.Summary,
		Geometry:        append(domain.RouteGeometry(nil), result.Geometry...),
		CreatedAt:       s.now().UTC(),
	}
	if saved.Summary == "" {
		saved.Summary = domain.RouteSummary(saved.Origin, saved.Destination)
	}

	if err := s.store.Save(ctx, saved); err != nil {
		return nil, fmt.Errorf("save route: %w", err)
	}
	return &saved, nil
}

// Get retrieves a saved route by ID.
func (s *HistoryService) Get(ctx context.Context, id string) (*domain.SavedRoute, error) {
	if s.store == nil {
		return nil, domain.ErrNotImplemented
	}
	if id == "" {
		return nil, domain.ErrInvalidInput
	}
	return s.store.Get(ctx, id)
}

// List returns saved routes, most recent first.
func (s *HistoryService) List(ctx context.Context, limit int) ([]domain.SavedRoute, error) {
	if s.store == nil {
		return nil, domain.ErrNotImplemented
	}
	if limit < 0 {
		limit = 0
	}
	return s.store.List(ctx, limit)
}

// Delete removes a saved route.
func (s *HistoryService) Delete(ctx context.Context, id string) error {
	if s.store == nil {
		return domain.ErrNotImplemented
	}
	if id == "" {
		return domain.ErrInvalidInput
	}
	return s.store.Delete(ctx, id)
}
