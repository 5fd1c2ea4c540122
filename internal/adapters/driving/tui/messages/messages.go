// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/custodia-labs/wayfinder-cli/internal/core/domain"
)

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewPlanner is where origin and destination are chosen.
	ViewPlanner ViewType = iota
	// ViewNavigation shows the route and turn-by-turn guidance.
	ViewNavigation
	// ViewHistory lists saved routes.
	ViewHistory
	// ViewHelp is the help/keybindings view.
	ViewHelp
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewPlanner:
		return "planner"
	case ViewNavigation:
		return "navigation"
	case ViewHistory:
		return "history"
	case ViewHelp:
		return "help"
	default:
		return "unknown"
	}
}

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// Endpoint identifies the origin or destination field.
type Endpoint int

const (
	// EndpointOrigin is the route start.
	EndpointOrigin Endpoint = iota
	// EndpointDestination is the route end.
	EndpointDestination
)

// String returns the string representation of the endpoint.
func (e Endpoint) String() string {
	if e == EndpointDestination {
		return "destination"
	}
	return "origin"
}

// StateChanged carries a navigation session snapshot.
type StateChanged struct {
	State domain.SessionState
}

// PlacesFound carries search results for one endpoint field.
type PlacesFound struct {
	Endpoint Endpoint
	Query    string
	Places   []domain.Place
	Err      error
}

// PlaceChosen is sent when a place is picked for an endpoint.
type PlaceChosen struct {
	Endpoint Endpoint
	Place    domain.Place
}

// LinkShared signals a share link was copied.
type LinkShared struct {
	Link string
	Err  error
}

// RouteSaved signals a route was stored in history.
type RouteSaved struct {
	ID  string
	Err error
}

// HistoryLoaded carries saved routes.
type HistoryLoaded struct {
	Routes []domain.SavedRoute
	Err    error
}

// HistoryDeleted signals a saved route was removed.
type HistoryDeleted struct {
	ID  string
	Err error
}

// RouteOpened is sent when a saved route is chosen.
type RouteOpened struct {
	Route domain.SavedRoute
}

// VoiceHandled reports the outcome of a listen request.
type VoiceHandled struct {
	Command domain.VoiceCommand
	Err     error
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}
