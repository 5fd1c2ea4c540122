package services

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"

	"github.com/custodia-labs/wayfinder-cli/internal/core/domain"
	"github.com/custodia-labs/wayfinder-cli/internal/core/ports/driven"
	"github.com/custodia-labs/wayfinder-cli/internal/core/ports/driving"
	"github.com/custodia-labs/wayfinder-cli/internal/logger"
)

// Ensure NavigationSession implements the interface.
var _ driving.NavigationSession = (*NavigationSession)(nil)

var sessionLog = logger.Named("session")

// ErrMissingRouteProvider is returned when a session is created without a route provider.
var ErrMissingRouteProvider = errors.New("session: route provider is required")

// SessionConfig holds the collaborators of a navigation session.
type SessionConfig struct {
	// Routes computes routes. Required.
	Routes driving.RouteProvider

	// Resolver turns picked coordinates into places.
	// Defaults to coordinate-only addresses.
	Resolver driving.AddressResolver

	// Speech receives narration. Optional.
	Speech driven.SpeechSink

	// Recognizer supplies voice command transcripts. Optional.
	Recognizer driven.SpeechRecognizer

	// Location supplies the device position. Optional.
	Location driven.LocationSource

	// VoiceEnabled is the initial narration setting.
	VoiceEnabled bool

	// ArrivalRadiusMeters is how close a tracked fix must come to the
	// destination to count as arrived. Zero disables arrival detection.
	ArrivalRadiusMeters float64
}

// NavigationSession owns the route selection, the current route and the
// navigation progress. All state lives behind mu; every command runs its
// whole transition while holding it.
//
// Route computation, address resolution and location reads run on their own
// goroutines. Each is tagged with a sequence number when issued and its
// answer is applied only if no newer request of the same kind was issued
// since (last-issued-wins).
type NavigationSession struct {
	routes     driving.RouteProvider
	resolver   driving.AddressResolver
	speech     driven.SpeechSink
	recognizer driven.SpeechRecognizer
	location   driven.LocationSource
	arrivalM   float64

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
	fx     *effectQueue

	mu           sync.Mutex
	closed       bool
	selection    domain.RouteSelection
	phase        domain.SessionPhase
	result       *domain.RouteResult
	instructions []domain.Instruction
	active       int
	reason       string
	voiceEnabled bool
	lastFix      *domain.Coordinate

	routeSeq  uint64
	originSeq uint64
	destSeq   uint64

	listenersMu sync.Mutex
	listeners   map[int]func(domain.SessionState)
	nextID      int
}

// NewNavigationSession creates an idle session.
func NewNavigationSession(cfg SessionConfig) (*NavigationSession, error) {
	if cfg.Routes == nil {
		return nil, ErrMissingRouteProvider
	}
	if cfg.Resolver == nil {
		cfg.Resolver = NewAddressResolver(nil)
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &NavigationSession{
		routes:       cfg.Routes,
		resolver:     cfg.Resolver,
		speech:       cfg.Speech,
		recognizer:   cfg.Recognizer,
		location:     cfg.Location,
		arrivalM:     cfg.ArrivalRadiusMeters,
		ctx:          ctx,
		cancel:       cancel,
		fx:           newEffectQueue(),
		phase:        domain.PhaseIdle,
		voiceEnabled: cfg.VoiceEnabled,
		listeners:    make(map[int]func(domain.SessionState)),
	}, nil
}

// SetOrigin sets the origin, superseding any pending origin pick.
func (s *NavigationSession) SetOrigin(place domain.Place) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.originSeq++
	s.setEndpointLocked(true, place)
}

// SetDestination sets the destination, superseding any pending destination pick.
func (s *NavigationSession) SetDestination(place domain.Place) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.destSeq++
	s.setEndpointLocked(false, place)
}

// PickOrigin resolves coord in the background and sets it as origin.
func (s *NavigationSession) PickOrigin(coord domain.Coordinate) {
	s.pick(true, coord)
}

// PickDestination resolves coord in the background and sets it as destination.
func (s *NavigationSession) PickDestination(coord domain.Coordinate) {
	s.pick(false, coord)
}

func (s *NavigationSession) pick(origin bool, coord domain.Coordinate) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	seq := s.bumpEndpointSeqLocked(origin)
	s.wg.Add(1)
	s.mu.Unlock()

	go func() {
		defer s.wg.Done()
		place := s.resolver.Resolve(s.ctx, coord)
		s.applyEndpoint(origin, seq, place)
	}()
}

// UseCurrentLocation reads the location source in the background and sets
// the resolved position as origin.
func (s *NavigationSession) UseCurrentLocation() error {
	if s.location == nil {
		return domain.ErrLocationUnavailable
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return domain.ErrSessionClosed
	}
	seq := s.bumpEndpointSeqLocked(true)
	s.wg.Add(1)
	s.mu.Unlock()

	go func() {
		defer s.wg.Done()
		coord, err := s.location.Current(s.ctx)
		if err != nil {
			sessionLog.Warn("current location unavailable: %v", err)
			return
		}
		place := s.resolver.Resolve(s.ctx, coord)
		s.applyEndpoint(true, seq, place)
	}()
	return nil
}

func (s *NavigationSession) bumpEndpointSeqLocked(origin bool) uint64 {
	if origin {
		s.originSeq++
		return s.originSeq
	}
	s.destSeq++
	return s.destSeq
}

func (s *NavigationSession) applyEndpoint(origin bool, seq uint64, place domain.Place) {
	s.mu.Lock()
	defer s.mu.Unlock()

	latest := s.destSeq
	if origin {
		latest = s.originSeq
	}
	if s.closed || seq != latest {
		sessionLog.Debug("dropping stale endpoint %q (seq %d, latest %d)", place.Address, seq, latest)
		return
	}
	s.setEndpointLocked(origin, place)
}

// setEndpointLocked applies an endpoint change. Setting an endpoint to the
// place it already holds changes nothing.
func (s *NavigationSession) setEndpointLocked(origin bool, place domain.Place) {
	place = domain.NewPlace(place.Coordinate, place.Address)

	current := s.selection.Destination
	if origin {
		current = s.selection.Origin
	}
	if current != nil && *current == place {
		return
	}

	if origin {
		s.selection.Origin = &place
	} else {
		s.selection.Destination = &place
	}

	if s.selection.Complete() {
		s.issueLocked()
		return
	}
	s.emitLocked()
}

// Hydrate replaces the whole selection, e.g. from a shared link.
func (s *NavigationSession) Hydrate(selection domain.RouteSelection) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}

	s.originSeq++
	s.destSeq++
	if selection.Equal(s.selection) && s.phase != domain.PhaseIdle && s.phase != domain.PhaseFailed {
		return
	}

	s.selection = selection.Clone()
	if s.selection.Complete() {
		s.issueLocked()
		return
	}

	s.routeSeq++
	s.resetRouteLocked(domain.PhaseIdle)
	s.emitLocked()
}

// Recompute re-issues the computation for the current selection.
func (s *NavigationSession) Recompute() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return domain.ErrSessionClosed
	}
	if !s.selection.Complete() {
		return domain.ErrIncompleteSelection
	}
	s.issueLocked()
	return nil
}

// issueLocked moves to Computing and starts a computation for the current
// selection. Any computation already in flight becomes stale.
func (s *NavigationSession) issueLocked() {
	s.routeSeq++
	seq := s.routeSeq
	origin, destination := *s.selection.Origin, *s.selection.Destination

	s.resetRouteLocked(domain.PhaseComputing)
	s.emitLocked()

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		result, err := s.routes.ComputeRoute(s.ctx, origin, destination)
		s.applyRoute(seq, result, err)
	}()
}

func (s *NavigationSession) applyRoute(seq uint64, result *domain.RouteResult, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed || seq != s.routeSeq {
		sessionLog.Debug("dropping stale route response (seq %d, latest %d)", seq, s.routeSeq)
		return
	}

	if err != nil {
		s.failLocked(err)
		return
	}

	instructions, err := GenerateInstructions(result.Geometry, result.DistanceMeters)
	if err != nil {
		s.failLocked(err)
		return
	}

	s.phase = domain.PhaseReady
	s.result = result
	s.instructions = instructions
	s.active = 0
	sessionLog.Info("route ready: %s (%d instructions)", result.Summary, len(instructions))
	s.emitLocked()
}

func (s *NavigationSession) failLocked(err error) {
	reason := "Failed to calculate route"
	var routeErr *domain.RouteError
	if errors.As(err, &routeErr) {
		reason = routeErr.Reason()
	}
	sessionLog.Warn("route failed: %v", err)

	s.resetRouteLocked(domain.PhaseFailed)
	s.reason = reason
	s.emitLocked()
}

func (s *NavigationSession) resetRouteLocked(phase domain.SessionPhase) {
	s.phase = phase
	s.result = nil
	s.instructions = nil
	s.active = 0
	s.reason = ""
}

// Start begins navigation. Only a Ready session can start.
func (s *NavigationSession) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.startLocked()
}

func (s *NavigationSession) startLocked() error {
	switch {
	case s.closed:
		return domain.ErrSessionClosed
	case s.phase == domain.PhaseNavigating:
		return domain.ErrAlreadyNavigating
	case s.phase != domain.PhaseReady:
		return fmt.Errorf("%w: session is %s", domain.ErrNoRoute, s.phase)
	}

	s.phase = domain.PhaseNavigating
	s.active = 0
	s.speakLocked(phraseNavigationStarted + " " + s.instructions[0].Text)
	s.emitLocked()
	return nil
}

// Stop ends navigation and returns to Ready with the same route.
func (s *NavigationSession) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stopLocked()
}

func (s *NavigationSession) stopLocked() error {
	if s.closed {
		return domain.ErrSessionClosed
	}
	if s.phase != domain.PhaseNavigating {
		return domain.ErrNotNavigating
	}
	s.phase = domain.PhaseReady
	s.active = 0
	s.emitLocked()
	return nil
}

// Advance moves to the next instruction and narrates it.
func (s *NavigationSession) Advance() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return domain.ErrSessionClosed
	}
	if s.phase != domain.PhaseNavigating {
		return domain.ErrNotNavigating
	}
	if s.active >= len(s.instructions)-1 {
		return domain.ErrRouteComplete
	}

	s.active++
	s.speakLocked(s.instructions[s.active].Text)
	s.emitLocked()
	return nil
}

// Clear discards the selection and any route. In-flight work becomes stale.
func (s *NavigationSession) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}

	s.routeSeq++
	s.originSeq++
	s.destSeq++

	if s.phase == domain.PhaseIdle && s.selection.Origin == nil && s.selection.Destination == nil {
		return
	}

	s.selection = domain.RouteSelection{}
	s.resetRouteLocked(domain.PhaseIdle)
	s.emitLocked()
}

// RepeatInstruction narrates the active instruction again.
func (s *NavigationSession) RepeatInstruction() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.repeatLocked()
}

func (s *NavigationSession) repeatLocked() {
	if s.phase == domain.PhaseNavigating && s.active < len(s.instructions) {
		s.speakLocked(s.instructions[s.active].Text)
		return
	}
	s.speakLocked(phraseNoInstruction)
}

// SetVoiceEnabled toggles narration.
func (s *NavigationSession) SetVoiceEnabled(enabled bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || s.voiceEnabled == enabled {
		return
	}
	s.voiceEnabled = enabled
	s.emitLocked()
}

// HandleTranscript dispatches a recognised utterance.
// Unrecognised utterances are answered with a spoken hint, not an error.
func (s *NavigationSession) HandleTranscript(transcript string) domain.VoiceCommand {
	cmd := MatchVoiceCommand(transcript)
	sessionLog.Debug("voice %q -> %s", transcript, cmd)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return cmd
	}

	switch cmd {
	case domain.VoiceStart:
		if err := s.startLocked(); err != nil && !errors.Is(err, domain.ErrAlreadyNavigating) {
			s.speakLocked(phraseNoRoute)
		}
	case domain.VoiceStop:
		if err := s.stopLocked(); err != nil {
			s.speakLocked(phraseNotNavigating)
		} else {
			s.speakLocked(phraseStopping)
		}
	case domain.VoiceMute:
		// Acknowledge before muting so the user hears it.
		s.speakLocked(phraseVoiceDisabled)
		if s.voiceEnabled {
			s.voiceEnabled = false
			s.emitLocked()
		}
	case domain.VoiceEnable:
		if !s.voiceEnabled {
			s.voiceEnabled = true
			s.emitLocked()
		}
		s.speakLocked(phraseVoiceEnabled)
	case domain.VoiceRepeat:
		s.repeatLocked()
	case domain.VoiceUnknown:
		s.speakLocked(phraseNotRecognized)
	}
	return cmd
}

// Listen prompts, waits for one utterance and dispatches it.
func (s *NavigationSession) Listen(ctx context.Context) (domain.VoiceCommand, error) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return domain.VoiceUnknown, domain.ErrSessionClosed
	}
	s.speakLocked(phraseListening)
	s.mu.Unlock()

	if s.recognizer == nil {
		s.speak(phraseDidNotCatch)
		return domain.VoiceUnknown, fmt.Errorf("%w: no recognizer configured", domain.ErrRecognitionFailed)
	}

	transcript, err := s.recognizer.Listen(ctx)
	if err != nil {
		s.speak(phraseDidNotCatch)
		return domain.VoiceUnknown, fmt.Errorf("%w: %v", domain.ErrRecognitionFailed, err)
	}

	return s.HandleTranscript(transcript), nil
}

// TrackLocation follows position updates until ctx is done or the source
// stops. While navigating, a fix inside the arrival radius of the
// destination jumps to the arrival instruction.
func (s *NavigationSession) TrackLocation(ctx context.Context) error {
	if s.location == nil {
		return domain.ErrLocationUnavailable
	}

	fixes, err := s.location.Watch(ctx)
	if err != nil {
		return fmt.Errorf("watch location: %w", err)
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-s.ctx.Done():
			return domain.ErrSessionClosed
		case fix, ok := <-fixes:
			if !ok {
				return nil
			}
			s.applyFix(fix)
		}
	}
}

func (s *NavigationSession) applyFix(fix domain.Coordinate) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || !fix.Valid() {
		return
	}

	s.lastFix = &fix

	if s.phase == domain.PhaseNavigating && s.arrivalM > 0 && s.selection.Destination != nil {
		last := len(s.instructions) - 1
		dest := s.selection.Destination.Coordinate
		dist := geo.Distance(orb.Point{fix.Lng, fix.Lat}, orb.Point{dest.Lng, dest.Lat})
		if dist <= s.arrivalM && s.active != last {
			sessionLog.Info("arrived: %.0fm from destination", dist)
			s.active = last
			s.speakLocked(s.instructions[last].Text)
		}
	}
	s.emitLocked()
}

// State returns a snapshot of the current state.
func (s *NavigationSession) State() domain.SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *NavigationSession) snapshotLocked() domain.SessionState {
	state := domain.SessionState{
		Phase:        s.phase,
		Selection:    s.selection.Clone(),
		ActiveIndex:  s.active,
		Reason:       s.reason,
		VoiceEnabled: s.voiceEnabled,
	}
	if s.result != nil {
		r := *s.result
		state.Result = &r
	}
	if s.instructions != nil {
		state.Instructions = append([]domain.Instruction(nil), s.instructions...)
	}
	if s.lastFix != nil {
		f := *s.lastFix
		state.LastFix = &f
	}
	return state
}

// OnStateChange registers a listener. Listeners run on the session's effect
// goroutine, after the transition that produced the snapshot, and may call
// back into the session.
func (s *NavigationSession) OnStateChange(fn func(domain.SessionState)) func() {
	s.listenersMu.Lock()
	defer s.listenersMu.Unlock()

	id := s.nextID
	s.nextID++
	s.listeners[id] = fn

	return func() {
		s.listenersMu.Lock()
		defer s.listenersMu.Unlock()
		delete(s.listeners, id)
	}
}

// emitLocked queues a state notification for the current snapshot.
// Only listeners registered before the call receive it; a listener that
// unsubscribes before delivery is skipped.
func (s *NavigationSession) emitLocked() {
	state := s.snapshotLocked()

	s.listenersMu.Lock()
	registered := s.nextID
	s.listenersMu.Unlock()

	s.fx.push(func() {
		s.listenersMu.Lock()
		fns := make([]func(domain.SessionState), 0, len(s.listeners))
		for id := 0; id < registered; id++ {
			if fn, ok := s.listeners[id]; ok {
				fns = append(fns, fn)
			}
		}
		s.listenersMu.Unlock()

		for _, fn := range fns {
			fn(state)
		}
	})
}

// speakLocked queues narration if voice is enabled.
func (s *NavigationSession) speakLocked(text string) {
	if !s.voiceEnabled || s.speech == nil {
		return
	}
	s.fx.push(func() {
		if err := s.speech.Speak(s.ctx, text); err != nil {
			sessionLog.Warn("speak %q: %v", text, err)
		}
	})
}

func (s *NavigationSession) speak(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.speakLocked(text)
}

// Close cancels outstanding work, waits for it and flushes pending effects.
// It must not be called from a state listener.
func (s *NavigationSession) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	s.cancel()
	s.mu.Unlock()

	s.wg.Wait()
	s.fx.close()

	if s.speech != nil {
		if err := s.speech.Cancel(); err != nil {
			sessionLog.Debug("cancel speech: %v", err)
		}
	}
	return nil
}
