package driven

import (
	"context"

	"github.com/custodia-labs/wayfinder-cli/internal/core/domain"
)

// RoutingEngine computes a path between two coordinates.
// Backed by an OSRM-compatible HTTP service.
type RoutingEngine interface {
	// Route returns the best route between from and to.
	// Fails with *domain.RouteError: RouteErrorNotFound when the engine has no
	// route, RouteErrorTransport when the request could not complete.
	Route(ctx context.Context, from, to domain.Coordinate) (*RoutedPath, error)
}

// RoutedPath is the raw answer of a routing engine.
type RoutedPath struct {
	// Geometry is the route polyline from origin to destination.
	Geometry domain.RouteGeometry

	// DistanceMeters is the route length.
	DistanceMeters float64

	// DurationSeconds is the expected travel time.
	DurationSeconds float64
}
