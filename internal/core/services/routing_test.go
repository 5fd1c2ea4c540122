package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/wayfinder-cli/internal/core/domain"
	"github.com/custodia-labs/wayfinder-cli/internal/core/ports/driven"
)

// mockRoutingEngine implements driven.RoutingEngine for testing.
type mockRoutingEngine struct {
	path  *driven.RoutedPath
	err   error
	calls int
	from  domain.Coordinate
	to    domain.Coordinate
}

func (m *mockRoutingEngine) Route(_ context.Context, from, to domain.Coordinate) (*driven.RoutedPath, error) {
	m.calls++
	m.from, m.to = from, to
	return m.path, m.err
}

func TestRouteService_ComputeRoute(t *testing.T) {
	engine := &mockRoutingEngine{path: &driven.RoutedPath{
		Geometry:        line([2]float64{40.0, -74.0}, [2]float64{40.1, -74.1}),
		DistanceMeters:  14000,
		DurationSeconds: 900,
	}}
	svc := NewRouteService(engine)

	result, err := svc.ComputeRoute(context.Background(),
		*place(40.0, -74.0, "Origin St"), *place(40.1, -74.1, "Destination Ave"))

	require.NoError(t, err)
	assert.Equal(t, "Origin St → Destination Ave", result.Summary)
	assert.InDelta(t, 14000, result.DistanceMeters, 0)
	assert.InDelta(t, 900, result.DurationSeconds, 0)
	assert.Len(t, result.Geometry, 2)
	assert.Equal(t, 1, engine.calls)
	assert.Equal(t, domain.Coordinate{Lat: 40.0, Lng: -74.0}, engine.from)
	assert.Equal(t, domain.Coordinate{Lat: 40.1, Lng: -74.1}, engine.to)
}

func TestRouteService_ResultDoesNotAliasEngineGeometry(t *testing.T) {
	geometry := line([2]float64{0, 0}, [2]float64{1, 1})
	svc := NewRouteService(&mockRoutingEngine{path: &driven.RoutedPath{Geometry: geometry}})

	result, err := svc.ComputeRoute(context.Background(), *place(0, 0, "A"), *place(1, 1, "B"))
	require.NoError(t, err)

	geometry[0].Lat = 99
	assert.InDelta(t, 0, result.Geometry[0].Lat, 0)
}

func TestRouteService_PassesThroughRouteErrors(t *testing.T) {
	svc := NewRouteService(&mockRoutingEngine{err: domain.NewRouteError(domain.RouteErrorNotFound, nil)})

	_, err := svc.ComputeRoute(context.Background(), *place(0, 0, "A"), *place(1, 1, "B"))

	assert.ErrorIs(t, err, domain.ErrRouteNotFound)
}

func TestRouteService_WrapsOtherErrorsAsTransport(t *testing.T) {
	cause := errors.New("dial tcp: refused")
	svc := NewRouteService(&mockRoutingEngine{err: cause})

	_, err := svc.ComputeRoute(context.Background(), *place(0, 0, "A"), *place(1, 1, "B"))

	assert.ErrorIs(t, err, domain.ErrTransportFailure)
	assert.ErrorIs(t, err, cause)
}

func TestRouteService_ShortGeometryIsNotFound(t *testing.T) {
	svc := NewRouteService(&mockRoutingEngine{path: &driven.RoutedPath{Geometry: line([2]float64{0, 0})}})

	_, err := svc.ComputeRoute(context.Background(), *place(0, 0, "A"), *place(1, 1, "B"))

	assert.ErrorIs(t, err, domain.ErrRouteNotFound)
	assert.ErrorIs(t, err, domain.ErrInvalidGeometry)
}
