// Package tui provides an interactive terminal user interface for wayfinder.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/custodia-labs/wayfinder-cli/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the TUI.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Session is the navigation state machine the UI drives.
	Session driving.NavigationSession

	// Resolver searches and reverse-resolves places.
	Resolver driving.AddressResolver

	// Share copies share links. Optional.
	Share driving.ShareActionService

	// History stores and lists saved routes. Optional.
	History driving.HistoryService
}

// NewPorts creates a new Ports aggregate with the required services.
func NewPorts(session driving.NavigationSession, resolver driving.AddressResolver) *Ports {
	return &Ports{
		Session:  session,
		Resolver: resolver,
	}
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p == nil {
		return ErrInvalidPorts
	}
	if p.Session == nil {
		return ErrMissingSession
	}
	if p.Resolver == nil {
		return ErrMissingResolver
	}
	return nil
}
