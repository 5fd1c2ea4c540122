package driving

import (
	"context"

	"github.com/custodia-labs/wayfinder-cli/internal/core/domain"
)

// NavigationSession is the state machine behind an active navigation.
//
// Commands validate and apply their transition before returning.
// Side effects (narration, state notifications) are delivered in order
// on a separate goroutine after the transition completes.
type NavigationSession interface {
	// SetOrigin sets the origin. A complete selection starts a computation.
	SetOrigin(place domain.Place)

	// SetDestination sets the destination. A complete selection starts a computation.
	SetDestination(place domain.Place)

	// PickOrigin resolves coord to a place and sets it as origin.
	// Only the most recently issued pick or set for the origin is applied.
	PickOrigin(coord domain.Coordinate)

	// PickDestination resolves coord to a place and sets it as destination.
	PickDestination(coord domain.Coordinate)

	// UseCurrentLocation sets the origin from the location source.
	UseCurrentLocation() error

	// Hydrate replaces the selection, e.g. from a shared link.
	Hydrate(selection domain.RouteSelection)

	// Recompute re-issues the computation for the current complete selection.
	Recompute() error

	// Start begins navigation from a ready route.
	Start() error

	// Stop ends navigation, keeping the route.
	Stop() error

	// Advance moves to the next instruction and narrates it.
	Advance() error

	// Clear discards the selection and any route.
	Clear()

	// RepeatInstruction narrates the active instruction again.
	RepeatInstruction()

	// SetVoiceEnabled toggles narration.
	SetVoiceEnabled(enabled bool)

	// HandleTranscript dispatches a recognised utterance as a voice command.
	HandleTranscript(transcript string) domain.VoiceCommand

	// Listen narrates a prompt, waits for one utterance and dispatches it.
	Listen(ctx context.Context) (domain.VoiceCommand, error)

	// TrackLocation follows position updates until ctx is done.
	TrackLocation(ctx context.Context) error

	// State returns a snapshot of the current state.
	State() domain.SessionState

	// OnStateChange registers a listener for state snapshots.
	// The returned function unregisters it.
	OnStateChange(fn func(domain.SessionState)) func()

	// Close cancels outstanding work and stops notifications.
	Close() error
}
