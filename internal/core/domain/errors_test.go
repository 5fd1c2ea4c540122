package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRouteError_IsMatchesKind(t *testing.T) {
	notFound := NewRouteError(RouteErrorNotFound, nil)
	transport := NewRouteError(RouteErrorTransport, errors.New("connection refused"))

	assert.ErrorIs(t, notFound, ErrRouteNotFound)
	assert.NotErrorIs(t, notFound, ErrTransportFailure)
	assert.ErrorIs(t, transport, ErrTransportFailure)
	assert.NotErrorIs(t, transport, ErrRouteNotFound)
}

func TestRouteError_UnwrapsCause(t *testing.T) {
	cause := errors.New("status 502")
	err := fmt.Errorf("compute: %w", NewRouteError(RouteErrorTransport, cause))

	assert.ErrorIs(t, err, cause)

	var routeErr *RouteError
	require.ErrorAs(t, err, &routeErr)
	assert.Equal(t, RouteErrorTransport, routeErr.Kind)
}

func TestRouteError_Message(t *testing.T) {
	assert.Equal(t, "no route found", NewRouteError(RouteErrorNotFound, nil).Error())
	assert.Equal(t, "routing transport failure: timeout",
		NewRouteError(RouteErrorTransport, errors.New("timeout")).Error())
}

func TestRouteError_Reason(t *testing.T) {
	assert.Equal(t, "No route found", NewRouteError(RouteErrorNotFound, nil).Reason())
	assert.Equal(t, "Failed to calculate route", NewRouteError(RouteErrorTransport, nil).Reason())
}

func TestRouteErrorKind_String(t *testing.T) {
	assert.Equal(t, "not_found", RouteErrorNotFound.String())
	assert.Equal(t, "transport_failure", RouteErrorTransport.String())
	assert.Equal(t, "unknown", RouteErrorKind(42).String())
}

func TestErrors_AreDistinct(t *testing.T) {
	errs := []error{
		ErrNotFound, ErrInvalidInput, ErrNotImplemented, ErrRouteNotFound, ErrTransportFailure,
		ErrInvalidGeometry, ErrGeocodeFailure, ErrShareDecode, ErrIncompleteSelection,
		ErrNoRoute, ErrAlreadyNavigating, ErrNotNavigating, ErrRouteComplete,
		ErrSessionClosed, ErrLocationUnavailable, ErrRecognitionFailed,
	}
	for i := range errs {
		for j := range errs {
			if i != j {
				assert.NotErrorIs(t, errs[i], errs[j])
			}
		}
	}
}
