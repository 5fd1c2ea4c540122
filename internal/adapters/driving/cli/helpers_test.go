package cli

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/custodia-labs/wayfinder-cli/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/wayfinder-cli/internal/core/domain"
	"github.com/custodia-labs/wayfinder-cli/internal/core/ports/driven"
	"github.com/custodia-labs/wayfinder-cli/internal/core/ports/driving"
	"github.com/custodia-labs/wayfinder-cli/internal/core/services"
)

const testShareBase = "https://wayfinder.test/map"

var (
	home = domain.Place{Coordinate: domain.Coordinate{Lat: 37.7749, Lng: -122.4194}, Address: "Home"}
	work = domain.Place{Coordinate: domain.Coordinate{Lat: 37.8044, Lng: -122.2712}, Address: "Work"}
)

// fakeEngine answers every route with a fixed three-point line.
type fakeEngine struct {
	mu    sync.Mutex
	err   error
	calls int
}

func (e *fakeEngine) Route(_ context.Context, from, to domain.Coordinate) (*driven.RoutedPath, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.calls++
	if e.err != nil {
		return nil, e.err
	}
	mid := domain.Coordinate{Lat: (from.Lat + to.Lat) / 2, Lng: (from.Lng + to.Lng) / 2}
	return &driven.RoutedPath{
		Geometry:        domain.RouteGeometry{from, mid, to},
		DistanceMeters:  14200,
		DurationSeconds: 900,
	}, nil
}

func (e *fakeEngine) Calls() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.calls
}

// fakeGeocoder knows two named places.
type fakeGeocoder struct{}

func (fakeGeocoder) Reverse(_ context.Context, _ domain.Coordinate) (string, error) {
	return "", nil
}

func (fakeGeocoder) Search(_ context.Context, query string, _ int) ([]domain.Place, error) {
	switch strings.ToLower(query) {
	case "home":
		return []domain.Place{home}, nil
	case "work":
		return []domain.Place{work}, nil
	case "broken":
		return nil, fmt.Errorf("geocoder offline")
	}
	return nil, nil
}

// fakeActions records share actions instead of touching the desktop.
type fakeActions struct {
	codec  *services.ShareCodec
	copied []domain.RouteSelection
	opened []domain.RouteSelection
}

func (a *fakeActions) CopyLink(_ context.Context, sel domain.RouteSelection) (string, error) {
	a.copied = append(a.copied, sel)
	return a.codec.Link(sel)
}

func (a *fakeActions) OpenLink(_ context.Context, sel domain.RouteSelection) (string, error) {
	a.opened = append(a.opened, sel)
	return a.codec.Link(sel)
}

type testServices struct {
	engine   *fakeEngine
	codec    *services.ShareCodec
	actions  *fakeActions
	history  *services.HistoryService
	settings *services.SettingsService
	sessions []SessionOptions
}

// setupTestServices installs services backed by fakes and in-memory stores.
// Services and flags are reset when the test ends.
func setupTestServices(t *testing.T) *testServices {
	t.Helper()

	ts := &testServices{
		engine:   &fakeEngine{},
		codec:    services.NewShareCodec(testShareBase),
		history:  services.NewHistoryService(memory.NewHistoryStore(), domain.ProfileDriving),
		settings: services.NewSettingsService(memory.NewConfigStore()),
	}
	ts.actions = &fakeActions{codec: ts.codec}

	routes := services.NewRouteService(ts.engine)
	resolver := services.NewAddressResolver(fakeGeocoder{})

	SetServices(&Services{
		Routes:   routes,
		Resolver: resolver,
		Share:    ts.codec,
		Actions:  ts.actions,
		History:  ts.history,
		Settings: ts.settings,
		NewSession: func(opts SessionOptions) (driving.NavigationSession, error) {
			ts.sessions = append(ts.sessions, opts)
			voice := opts.VoiceEnabled == nil || *opts.VoiceEnabled
			return services.NewNavigationSession(services.SessionConfig{
				Routes:       routes,
				Resolver:     resolver,
				VoiceEnabled: voice,
			})
		},
	})

	t.Cleanup(func() {
		SetServices(nil)
		resetFlags(rootCmd)
	})
	return ts
}

// resetFlags restores every flag in the tree to its default.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

// executeCommand runs the command tree with args and returns its output.
func executeCommand(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetIn(nil)
		rootCmd.SetArgs(nil)
	})

	err := rootCmd.ExecuteContext(context.Background())
	return buf.String(), err
}
