package mcp

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/custodia-labs/wayfinder-cli/internal/core/domain"
)

// mockRouteProvider is a mock implementation of driving.RouteProvider.
type mockRouteProvider struct {
	err   error
	calls int
}

func (m *mockRouteProvider) ComputeRoute(_ context.Context, origin, destination domain.Place) (*domain.RouteResult, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	return &domain.RouteResult{
		Geometry: domain.RouteGeometry{
			origin.Coordinate,
			{Lat: (origin.Coordinate.Lat + destination.Coordinate.Lat) / 2, Lng: origin.Coordinate.Lng},
			destination.Coordinate,
		},
		DistanceMeters:  14200,
		DurationSeconds: 900,
		Summary:         domain.RouteSummary(origin, destination),
	}, nil
}

// mockResolver is a mock implementation of driving.AddressResolver.
// It accepts "lat,lng" and the names in places.
type mockResolver struct {
	places map[string]domain.Place
}

func (m *mockResolver) Resolve(_ context.Context, coord domain.Coordinate) domain.Place {
	return domain.NewPlace(coord, coord.String())
}

func (m *mockResolver) Search(_ context.Context, query string, _ int) ([]domain.Place, error) {
	if p, ok := m.places[query]; ok {
		return []domain.Place{p}, nil
	}
	return nil, nil
}

func (m *mockResolver) ParsePlace(ctx context.Context, input string) (domain.Place, error) {
	if p, ok := m.places[input]; ok {
		return p, nil
	}
	lat, lng, ok := strings.Cut(input, ",")
	if !ok {
		return domain.Place{}, fmt.Errorf("%w: no match for %q", domain.ErrGeocodeFailure, input)
	}
	la, err1 := strconv.ParseFloat(strings.TrimSpace(lat), 64)
	ln, err2 := strconv.ParseFloat(strings.TrimSpace(lng), 64)
	if err1 != nil || err2 != nil {
		return domain.Place{}, domain.ErrInvalidInput
	}
	return m.Resolve(ctx, domain.Coordinate{Lat: la, Lng: ln}), nil
}

func newMockResolver() *mockResolver {
	return &mockResolver{places: map[string]domain.Place{
		"Home": domain.NewPlace(domain.Coordinate{Lat: 40.0, Lng: -74.0}, "Home"),
		"Work": domain.NewPlace(domain.Coordinate{Lat: 40.1, Lng: -74.0}, "Work"),
	}}
}
