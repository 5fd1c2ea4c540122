package driving

import (
	"context"

	"github.com/custodia-labs/wayfinder-cli/internal/core/domain"
)

// RouteProvider computes routes between places.
type RouteProvider interface {
	// ComputeRoute returns the route from origin to destination.
	// Fails with *domain.RouteError. The result summary is
	// "{origin.Address} → {destination.Address}".
	ComputeRoute(ctx context.Context, origin, destination domain.Place) (*domain.RouteResult, error)
}

// AddressResolver turns coordinates and free text into places.
type AddressResolver interface {
	// Resolve returns the place at coord. It never fails: when the lookup
	// errors or has no answer the address is the coordinate fallback.
	Resolve(ctx context.Context, coord domain.Coordinate) domain.Place

	// Search returns places matching free text, best match first.
	Search(ctx context.Context, query string, limit int) ([]domain.Place, error)

	// ParsePlace accepts "lat,lng" (reverse-resolved) or free text (searched).
	ParsePlace(ctx context.Context, input string) (domain.Place, error)
}
