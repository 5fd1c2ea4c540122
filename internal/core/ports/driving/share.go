package driving

import "github.com/custodia-labs/wayfinder-cli/internal/core/domain"

// ShareCodec serialises route selections into shareable links.
type ShareCodec interface {
	// Encode returns the query string for a complete selection.
	// Returns domain.ErrIncompleteSelection if an endpoint is missing.
	Encode(selection domain.RouteSelection) (string, error)

	// Decode parses a query string, a "?"-prefixed query or a full URL.
	// Returns false when any required key is missing or malformed.
	Decode(query string) (domain.RouteSelection, bool)

	// Link returns the full shareable URL for a selection.
	Link(selection domain.RouteSelection) (string, error)

	// ShareText returns a human-readable message describing a route and its link.
	ShareText(selection domain.RouteSelection, result domain.RouteResult, link string) string
}
