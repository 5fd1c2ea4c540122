package driven

import (
	"context"

	"github.com/custodia-labs/wayfinder-cli/internal/core/domain"
)

// RouteHistoryStore persists saved routes.
type RouteHistoryStore interface {
	// Save stores or updates a route.
	Save(ctx context.Context, route domain.SavedRoute) error

	// Get retrieves a route by ID.
	// Returns domain.ErrNotFound if it does not exist.
	Get(ctx context.Context, id string) (*domain.SavedRoute, error)

	// List returns up to limit routes, most recent first. Zero means no limit.
	List(ctx context.Context, limit int) ([]domain.SavedRoute, error)

	// Delete removes a route.
	// Returns domain.ErrNotFound if it does not exist.
	Delete(ctx context.Context, id string) error
}
