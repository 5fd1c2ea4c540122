package driven

import (
	"context"

	"github.com/custodia-labs/wayfinder-cli/internal/core/domain"
)

// Geocoder converts between coordinates and human-readable addresses.
type Geocoder interface {
	// Reverse returns the address for a coordinate.
	// Returns an empty string and no error when the provider has no name for it.
	Reverse(ctx context.Context, coord domain.Coordinate) (string, error)

	// Search returns places matching a free-text query, best match first.
	Search(ctx context.Context, query string, limit int) ([]domain.Place, error)
}
