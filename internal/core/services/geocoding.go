package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/custodia-labs/wayfinder-cli/internal/core/domain"
	"github.com/custodia-labs/wayfinder-cli/internal/core/ports/driven"
	"github.com/custodia-labs/wayfinder-cli/internal/core/ports/driving"
	"github.com/custodia-labs/wayfinder-cli/internal/logger"
)

// Ensure AddressResolver implements the interface.
var _ driving.AddressResolver = (*AddressResolver)(nil)

var geocodeLog = logger.Named("geocode")

// AddressResolver wraps a geocoder with a coordinate fallback.
type AddressResolver struct {
	geocoder driven.Geocoder
}

// NewAddressResolver creates a new address resolver.
// A nil geocoder resolves every coordinate to its fallback address.
func NewAddressResolver(geocoder driven.Geocoder) *AddressResolver {
	return &AddressResolver{geocoder: geocoder}
}

// Resolve returns the place at coord. Lookup failures are absorbed.
func (r *AddressResolver) Resolve(ctx context.Context, coord domain.Coordinate) domain.Place {
	if r.geocoder == nil {
		return domain.NewPlace(coord, "")
	}

	address, err := r.geocoder.Reverse(ctx, coord)
	if err != nil {
		geocodeLog.Debug("reverse %s failed, using coordinates: %v", coord, err)
		return domain.NewPlace(coord, "")
	}
	return domain.NewPlace(coord, strings.TrimSpace(address))
}

// Search returns places matching free text.
func (r *AddressResolver) Search(ctx context.Context, query string, limit int) ([]domain.Place, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("%w: empty search query", domain.ErrInvalidInput)
	}
	if r.geocoder == nil {
		return nil, fmt.Errorf("%w: no geocoder configured", domain.ErrGeocodeFailure)
	}
	if limit <= 0 {
		limit = 5
	}

	places, err := r.geocoder.Search(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrGeocodeFailure, err)
	}
	return places, nil
}

// ParsePlace accepts "lat,lng" or a free-text query.
func (r *AddressResolver) ParsePlace(ctx context.Context, input string) (domain.Place, error) {
	if coord, err := ParseCoordinate(input); err == nil {
		return r.Resolve(ctx, coord), nil
	}

	places, err := r.Search(ctx, input, 1)
	if err != nil {
		return domain.Place{}, err
	}
	if len(places) == 0 {
		return domain.Place{}, fmt.Errorf("%w: no place matches %q", domain.ErrNotFound, input)
	}
	return places[0], nil
}
