package driven

import (
	"context"

	"github.com/custodia-labs/wayfinder-cli/internal/core/domain"
)

// LocationSource provides the device position.
type LocationSource interface {
	// Current returns the latest known position.
	// Returns domain.ErrLocationUnavailable when there is no fix yet.
	Current(ctx context.Context) (domain.Coordinate, error)

	// Watch streams position updates until ctx is done.
	// The channel is closed when watching stops.
	Watch(ctx context.Context) (<-chan domain.Coordinate, error)
}
