package mcp

import (
	"github.com/custodia-labs/wayfinder-cli/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Routes computes routes.
	Routes driving.RouteProvider

	// Resolver turns free text and coordinates into places.
	Resolver driving.AddressResolver

	// Share encodes and decodes share links. Optional.
	Share driving.ShareCodec

	// History stores saved routes. Optional.
	History driving.HistoryService

	// Version is reported to clients during initialisation.
	// Defaults to "dev".
	Version string
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Routes == nil {
		return ErrMissingRouteProvider
	}
	if p.Resolver == nil {
		return ErrMissingResolver
	}
	// Share and History are optional
	return nil
}
