package tui

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/wayfinder-cli/internal/core/domain"
	"github.com/custodia-labs/wayfinder-cli/internal/core/ports/driving"
)

// MockNavigationSession implements driving.NavigationSession for testing.
type MockNavigationSession struct {
	mu        sync.Mutex
	state     domain.SessionState
	listeners map[int]func(domain.SessionState)
	nextID    int

	Origins      []domain.Place
	Destinations []domain.Place
	Hydrated     []domain.RouteSelection
	Cleared      int
}

func (m *MockNavigationSession) SetOrigin(place domain.Place) {
	m.Origins = append(m.Origins, place)
}

func (m *MockNavigationSession) SetDestination(place domain.Place) {
	m.Destinations = append(m.Destinations, place)
}

func (m *MockNavigationSession) PickOrigin(domain.Coordinate)      {}
func (m *MockNavigationSession) PickDestination(domain.Coordinate) {}
func (m *MockNavigationSession) UseCurrentLocation() error         { return nil }

func (m *MockNavigationSession) Hydrate(selection domain.RouteSelection) {
	m.Hydrated = append(m.Hydrated, selection)
}

func (m *MockNavigationSession) Recompute() error     { return nil }
func (m *MockNavigationSession) Start() error         { return nil }
func (m *MockNavigationSession) Stop() error          { return nil }
func (m *MockNavigationSession) Advance() error       { return nil }
func (m *MockNavigationSession) Clear()               { m.Cleared++ }
func (m *MockNavigationSession) RepeatInstruction()   {}
func (m *MockNavigationSession) SetVoiceEnabled(bool) {}

func (m *MockNavigationSession) HandleTranscript(string) domain.VoiceCommand {
	return domain.VoiceUnknown
}

func (m *MockNavigationSession) Listen(context.Context) (domain.VoiceCommand, error) {
	return domain.VoiceUnknown, nil
}

func (m *MockNavigationSession) TrackLocation(context.Context) error { return nil }

func (m *MockNavigationSession) State() domain.SessionState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

func (m *MockNavigationSession) OnStateChange(fn func(domain.SessionState)) func() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.listeners == nil {
		m.listeners = make(map[int]func(domain.SessionState))
	}
	id := m.nextID
	m.nextID++
	m.listeners[id] = fn
	return func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		delete(m.listeners, id)
	}
}

func (m *MockNavigationSession) Close() error { return nil }

// Emit sets the state and notifies listeners.
func (m *MockNavigationSession) Emit(state domain.SessionState) {
	m.mu.Lock()
	m.state = state
	fns := make([]func(domain.SessionState), 0, len(m.listeners))
	for _, fn := range m.listeners {
		fns = append(fns, fn)
	}
	m.mu.Unlock()

	for _, fn := range fns {
		fn(state)
	}
}

// ListenerCount returns the number of registered listeners.
func (m *MockNavigationSession) ListenerCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.listeners)
}

// MockAddressResolver implements driving.AddressResolver for testing.
type MockAddressResolver struct {
	SearchFunc func(ctx context.Context, query string, limit int) ([]domain.Place, error)
}

func (m *MockAddressResolver) Resolve(_ context.Context, coord domain.Coordinate) domain.Place {
	return domain.NewPlace(coord, coord.String())
}

func (m *MockAddressResolver) Search(ctx context.Context, query string, limit int) ([]domain.Place, error) {
	if m.SearchFunc != nil {
		return m.SearchFunc(ctx, query, limit)
	}
	return nil, nil
}

func (m *MockAddressResolver) ParsePlace(_ context.Context, input string) (domain.Place, error) {
	return domain.Place{Address: input}, nil
}

var (
	_ driving.NavigationSession = (*MockNavigationSession)(nil)
	_ driving.AddressResolver   = (*MockAddressResolver)(nil)
)

func TestNewPorts(t *testing.T) {
	session := &MockNavigationSession{}
	resolver := &MockAddressResolver{}

	ports := NewPorts(session, resolver)

	require.NotNil(t, ports)
	assert.Equal(t, session, ports.Session)
	assert.Equal(t, resolver, ports.Resolver)
	assert.Nil(t, ports.Share)
	assert.Nil(t, ports.History)
}

func TestPorts_Validate(t *testing.T) {
	tests := []struct {
		name  string
		ports *Ports
		err   error
	}{
		{"valid", NewPorts(&MockNavigationSession{}, &MockAddressResolver{}), nil},
		{"nil ports", nil, ErrInvalidPorts},
		{"missing session", &Ports{Resolver: &MockAddressResolver{}}, ErrMissingSession},
		{"missing resolver", &Ports{Session: &MockNavigationSession{}}, ErrMissingResolver},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.ports.Validate()
			if tt.err == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.err)
		})
	}
}
