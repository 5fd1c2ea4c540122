package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotImplemented indicates a feature has no backing implementation configured.
	ErrNotImplemented = errors.New("not implemented")

	// Routing Errors.

	// ErrRouteNotFound indicates the routing provider returned no routes.
	ErrRouteNotFound = errors.New("no route found")

	// ErrTransportFailure indicates the routing request could not complete.
	ErrTransportFailure = errors.New("routing transport failure")

	// ErrInvalidGeometry indicates a route geometry with fewer than two points.
	// This is a data contract violation, not a user-facing condition.
	ErrInvalidGeometry = errors.New("invalid geometry: at least two points required")

	// ErrGeocodeFailure indicates an address lookup failed.
	// Never surfaced past the address resolver, which falls back to coordinates.
	ErrGeocodeFailure = errors.New("geocode failure")

	// ErrShareDecode indicates a shared link could not be decoded.
	ErrShareDecode = errors.New("share link could not be decoded")

	// ErrIncompleteSelection indicates an operation needs both endpoints.
	ErrIncompleteSelection = errors.New("origin and destination are both required")

	// Session Errors.

	// ErrNoRoute indicates navigation was requested without a ready route.
	ErrNoRoute = errors.New("no route to navigate")

	// ErrAlreadyNavigating indicates start was requested while navigating.
	ErrAlreadyNavigating = errors.New("already navigating")

	// ErrNotNavigating indicates a navigation-only command outside navigation.
	ErrNotNavigating = errors.New("not navigating")

	// ErrRouteComplete indicates there is no instruction after the active one.
	ErrRouteComplete = errors.New("route complete")

	// ErrSessionClosed indicates the session has been shut down.
	ErrSessionClosed = errors.New("session closed")

	// Capability Errors.

	// ErrLocationUnavailable indicates no location fix could be obtained.
	ErrLocationUnavailable = errors.New("location unavailable")

	// ErrRecognitionFailed indicates no transcript could be recognised.
	ErrRecognitionFailed = errors.New("speech not recognised")
)

// RouteErrorKind classifies routing failures.
type RouteErrorKind int

const (
	// RouteErrorNotFound means the provider answered with zero routes.
	RouteErrorNotFound RouteErrorKind = iota
	// RouteErrorTransport means the request could not complete.
	RouteErrorTransport
)

// String returns the string representation.
func (k RouteErrorKind) String() string {
	switch k {
	case RouteErrorNotFound:
		return "not_found"
	case RouteErrorTransport:
		return "transport_failure"
	default:
		return "unknown"
	}
}

// RouteError is returned by route computation.
// It matches ErrRouteNotFound or ErrTransportFailure under errors.Is.
type RouteError struct {
	Kind RouteErrorKind
	Err  error
}

// NewRouteError creates a RouteError of the given kind wrapping cause.
func NewRouteError(kind RouteErrorKind, cause error) *RouteError {
	return &RouteError{Kind: kind, Err: cause}
}

// Error implements error.
func (e *RouteError) Error() string {
	base := e.sentinel().Error()
	if e.Err == nil {
		return base
	}
	return base + ": " + e.Err.Error()
}

// Unwrap returns the underlying cause.
func (e *RouteError) Unwrap() error {
	return e.Err
}

// Is reports whether target is the sentinel for this error's kind.
func (e *RouteError) Is(target error) bool {
	return target == e.sentinel()
}

// Reason returns the user-facing failure message for this error.
func (e *RouteError) Reason() string {
	if e.Kind == RouteErrorNotFound {
		return "No route found"
	}
	return "Failed to calculate route"
}

func (e *RouteError) sentinel() error {
	if e.Kind == RouteErrorNotFound {
		return ErrRouteNotFound
	}
	return ErrTransportFailure
}
