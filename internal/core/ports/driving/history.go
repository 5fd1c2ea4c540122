package driving

import (
	"context"

	"github.com/custodia-labs/wayfinder-cli/internal/core/domain"
)

// HistoryService manages saved routes.
type HistoryService interface {
	// Save records a computed route and returns the saved entry.
	Save(ctx context.Context, selection domain.RouteSelection, result domain.RouteResult) (*domain.SavedRoute, error)

	// Get retrieves a saved route by ID.
	Get(ctx context.Context, id string) (*domain.SavedRoute, error)

	// List returns saved routes, most recent first.
	List(ctx context.Context, limit int) ([]domain.SavedRoute, error)

	// Delete removes a saved route.
	Delete(ctx context.Context, id string) error
}
