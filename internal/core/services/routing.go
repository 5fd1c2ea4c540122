package services

import (
	"context"
	"errors"

	"github.com/custodia-labs/wayfinder-cli/internal/core/domain"
	"github.com/custodia-labs/wayfinder-cli/internal/core/ports/driven"
	"github.com/custodia-labs/wayfinder-cli/internal/core/ports/driving"
	"github.com/custodia-labs/wayfinder-cli/internal/logger"
)

// Ensure RouteService implements the interface.
var _ driving.RouteProvider = (*RouteService)(nil)

var routeLog = logger.Named("route")

// RouteService computes routes through a routing engine.
// It holds no per-call state; each call is a single attempt.
type RouteService struct {
	engine driven.RoutingEngine
}

// NewRouteService creates a new route service.
func NewRouteService(engine driven.RoutingEngine) *RouteService {
	return &RouteService{engine: engine}
}

// ComputeRoute returns the route from origin to destination.
func (s *RouteService) ComputeRoute(
	ctx context.Context,
	origin, destination domain.Place,
) (*domain.RouteResult, error) {
	routeLog.Debug("computing %s -> %s", origin.Coordinate, destination.Coordinate)

	path, err := s.engine.Route(ctx, origin.Coordinate, destination.Coordinate)
	if err != nil {
		var routeErr *domain.RouteError
		if errors.As(err, &routeErr) {
			return nil, err
		}
		return nil, domain.NewRouteError(domain.RouteErrorTransport, err)
	}

	if path == nil || len(path.Geometry) < 2 {
		return nil, domain.NewRouteError(domain.RouteErrorNotFound, domain.ErrInvalidGeometry)
	}

	result := &domain.RouteResult{
		Geometry:        append(domain.RouteGeometry(nil), path.Geometry...),
		DistanceMeters:  nonNegative(path.DistanceMeters),
		DurationSeconds: nonNegative(path.DurationSeconds),
		Summary:         domain.RouteSummary(origin, destination),
	}
	routeLog.Debug("route %q: %.0fm, %.0fs, %d points",
		result.Summary, result.DistanceMeters, result.DurationSeconds, len(result.Geometry))

	return result, nil
}

func nonNegative(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}
