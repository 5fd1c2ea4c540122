package services

import (
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"

	"github.com/custodia-labs/wayfinder-cli/internal/core/domain"
	"github.com/custodia-labs/wayfinder-cli/internal/core/ports/driving"
	"github.com/custodia-labs/wayfinder-cli/internal/logger"
)

// Ensure ShareCodec implements the interface.
var _ driving.ShareCodec = (*ShareCodec)(nil)

// Shareable link query keys, in encoding order.
const (
	shareKeyOrigin             = "origin"
	shareKeyOriginAddress      = "originAddress"
	shareKeyDestination        = "destination"
	shareKeyDestinationAddress = "destinationAddress"
)

var shareLog = logger.Named("share")

// ShareCodec encodes route selections as URL query strings and back.
type ShareCodec struct {
	baseURL string
}

// NewShareCodec creates a codec producing links under baseURL.
func NewShareCodec(baseURL string) *ShareCodec {
	return &ShareCodec{baseURL: strings.TrimRight(baseURL, "?")}
}

// Encode returns the query string for a complete selection.
func (c *ShareCodec) Encode(selection domain.RouteSelection) (string, error) {
	if !selection.Complete() {
		return "", domain.ErrIncompleteSelection
	}

	// Built by hand because url.Values.Encode sorts keys.
	var b strings.Builder
	writePair := func(key, value string) {
		if b.Len() > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(key))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(value))
	}

	writePair(shareKeyOrigin, formatCoordinate(selection.Origin.Coordinate))
	writePair(shareKeyOriginAddress, selection.Origin.Address)
	writePair(shareKeyDestination, formatCoordinate(selection.Destination.Coordinate))
	writePair(shareKeyDestinationAddress, selection.Destination.Address)

	return b.String(), nil
}

// Decode parses a shared selection. Any missing or malformed key yields false.
func (c *ShareCodec) Decode(query string) (domain.RouteSelection, bool) {
	selection, err := decodeSelection(query)
	if err != nil {
		shareLog.Debug("ignoring shared link: %v", err)
		return domain.RouteSelection{}, false
	}
	return selection, true
}

// Link returns the full shareable URL for a selection.
func (c *ShareCodec) Link(selection domain.RouteSelection) (string, error) {
	query, err := c.Encode(selection)
	if err != nil {
		return "", err
	}
	sep := "?"
	if strings.Contains(c.baseURL, "?") {
		sep = "&"
	}
	return c.baseURL + sep + query, nil
}

// ShareText returns a message suitable for pasting into a chat or email.
func (c *ShareCodec) ShareText(selection domain.RouteSelection, result domain.RouteResult, link string) string {
	summary := result.Summary
	if selection.Complete() {
		summary = domain.RouteSummary(*selection.Origin, *selection.Destination)
	}
	return fmt.Sprintf("Route: %s\nDistance: %.1f km\nDuration: %d min\n\nView route: %s",
		summary,
		result.DistanceMeters/1000,
		int64(math.Round(result.DurationSeconds/60)),
		link,
	)
}

func decodeSelection(query string) (domain.RouteSelection, error) {
	query = strings.TrimSpace(query)
	if i := strings.IndexByte(query, '?'); i >= 0 {
		query = query[i+1:]
	}
	if i := strings.IndexByte(query, '#'); i >= 0 {
		query = query[:i]
	}

	values, err := url.ParseQuery(query)
	if err != nil {
		return domain.RouteSelection{}, fmt.Errorf("%w: %v", domain.ErrShareDecode, err)
	}

	origin, err := decodePlace(values, shareKeyOrigin, shareKeyOriginAddress)
	if err != nil {
		return domain.RouteSelection{}, err
	}
	destination, err := decodePlace(values, shareKeyDestination, shareKeyDestinationAddress)
	if err != nil {
		return domain.RouteSelection{}, err
	}

	return domain.RouteSelection{Origin: &origin, Destination: &destination}, nil
}

func decodePlace(values url.Values, coordKey, addressKey string) (domain.Place, error) {
	rawCoord := values.Get(coordKey)
	address := values.Get(addressKey)
	if rawCoord == "" || address == "" {
		return domain.Place{}, fmt.Errorf("%w: missing %s or %s", domain.ErrShareDecode, coordKey, addressKey)
	}

	coord, err := parseCoordinate(rawCoord)
	if err != nil {
		return domain.Place{}, fmt.Errorf("%w: %s: %v", domain.ErrShareDecode, coordKey, err)
	}

	return domain.Place{Coordinate: coord, Address: address}, nil
}

// formatCoordinate uses the shortest representation that parses back exactly.
func formatCoordinate(c domain.Coordinate) string {
	return strconv.FormatFloat(c.Lat, 'f', -1, 64) + "," + strconv.FormatFloat(c.Lng, 'f', -1, 64)
}

// parseCoordinate parses "lat,lng" into a valid coordinate.
func parseCoordinate(s string) (domain.Coordinate, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return domain.Coordinate{}, fmt.Errorf("expected \"lat,lng\", got %q", s)
	}

	lat, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return domain.Coordinate{}, fmt.Errorf("latitude: %w", err)
	}
	lng, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return domain.Coordinate{}, fmt.Errorf("longitude: %w", err)
	}

	coord := domain.Coordinate{Lat: lat, Lng: lng}
	if !coord.Valid() {
		return domain.Coordinate{}, fmt.Errorf("out of range: %s", s)
	}
	return coord, nil
}

// ParseCoordinate parses "lat,lng" into a valid coordinate.
func ParseCoordinate(s string) (domain.Coordinate, error) {
	coord, err := parseCoordinate(s)
	if err != nil {
		return domain.Coordinate{}, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	return coord, nil
}
