package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/wayfinder-cli/internal/adapters/driving/cli"
	"github.com/custodia-labs/wayfinder-cli/internal/core/domain"
	"github.com/custodia-labs/wayfinder-cli/internal/core/ports/driving"
)

func build(t *testing.T, dir string) *cli.Services {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	svc, err := buildServices(ctx, dir, new(bytes.Buffer))
	require.NoError(t, err)
	t.Cleanup(func() { _ = svc.Close() })
	return svc
}

func TestBuildServices_WiresEverything(t *testing.T) {
	dir := t.TempDir()
	svc := build(t, dir)

	assert.NotNil(t, svc.Routes)
	assert.NotNil(t, svc.Resolver)
	assert.NotNil(t, svc.Share)
	assert.NotNil(t, svc.Actions)
	assert.NotNil(t, svc.History)
	assert.NotNil(t, svc.Settings)
	assert.NotNil(t, svc.NewSession)

	assert.FileExists(t, filepath.Join(dir, "data", "history.db"))
}

func TestBuildServices_HistoryPersists(t *testing.T) {
	dir := t.TempDir()
	svc := build(t, dir)

	origin := domain.NewPlace(domain.Coordinate{Lat: 1, Lng: 2}, "A")
	dest := domain.NewPlace(domain.Coordinate{Lat: 3, Lng: 4}, "B")
	result := domain.RouteResult{
		Geometry:       domain.RouteGeometry{origin.Coordinate, dest.Coordinate},
		DistanceMeters: 1000,
		Summary:        domain.RouteSummary(origin, dest),
	}
	saved, err := svc.History.Save(context.Background(),
		domain.RouteSelection{Origin: &origin, Destination: &dest}, result)
	require.NoError(t, err)
	require.NoError(t, svc.Close())

	reopened := build(t, dir)
	got, err := reopened.History.Get(context.Background(), saved.ID)
	require.NoError(t, err)
	assert.Equal(t, "A → B", got.Summary)
}

func TestBuildServices_HistoryDisabledUsesMemory(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"),
		[]byte("[history]\nenabled = false\n"), 0600))

	build(t, dir)

	assert.NoFileExists(t, filepath.Join(dir, "data", "history.db"))
}

func TestBuildServices_SessionHonoursVoiceOverride(t *testing.T) {
	dir := t.TempDir()
	svc := build(t, dir)
	require.NoError(t, svc.Settings.SetValue("voice.engine", "text"))

	off := false
	session, err := svc.NewSession(cli.SessionOptions{VoiceEnabled: &off})
	require.NoError(t, err)
	defer session.Close()
	assert.False(t, session.State().VoiceEnabled)

	session2, err := svc.NewSession(cli.SessionOptions{})
	require.NoError(t, err)
	defer session2.Close()
	assert.True(t, session2.State().VoiceEnabled)
}

func TestBuildServices_ConfigEditSparesExplicitVoice(t *testing.T) {
	dir := t.TempDir()
	svc := build(t, dir)
	require.NoError(t, svc.Settings.SetValue("voice.engine", "text"))

	on := true
	pinned, err := svc.NewSession(cli.SessionOptions{VoiceEnabled: &on})
	require.NoError(t, err)
	defer pinned.Close()

	following, err := svc.NewSession(cli.SessionOptions{})
	require.NoError(t, err)
	defer following.Close()

	// Rewrite until the watcher, started in the background, sees an edit.
	require.Eventually(t, func() bool {
		if err := svc.Settings.SetValue("voice.enabled", "false"); err != nil {
			return false
		}
		return !following.State().VoiceEnabled
	}, 5*time.Second, 50*time.Millisecond)
	assert.True(t, pinned.State().VoiceEnabled)
}

func TestBuildServices_GeocodingTimeoutIsOwnSetting(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"),
		[]byte("[geocoding]\ntimeout_seconds = 4\n[routing]\ntimeout_seconds = 40\n"), 0600))

	svc := build(t, dir)
	settings, err := svc.Settings.Get()
	require.NoError(t, err)

	assert.Equal(t, 4*time.Second, settings.Geocoding.Timeout)
	assert.Equal(t, 40*time.Second, settings.Routing.Timeout)
}

func TestBuildServices_InvalidStoredEngineFallsBack(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"),
		[]byte("[voice]\nengine = \"bogus\"\n"), 0600))

	svc := build(t, dir)
	session, err := svc.NewSession(cli.SessionOptions{})
	require.NoError(t, err)
	assert.NoError(t, session.Close())
}

func TestUserAgent(t *testing.T) {
	settings := domain.DefaultAppSettings()
	assert.Equal(t, "wayfinder-cli/"+cli.Version(), userAgent(&settings))

	settings.Geocoding.UserAgent = "my-app/1.0 (me@example.com)"
	assert.Equal(t, "my-app/1.0 (me@example.com)", userAgent(&settings))
}

type voiceRecorder struct {
	driving.NavigationSession
	values []bool
	closed bool
}

func (v *voiceRecorder) SetVoiceEnabled(enabled bool) {
	v.values = append(v.values, enabled)
}

func (v *voiceRecorder) Close() error {
	v.closed = true
	return nil
}

func TestLiveSessions_SetVoiceEnabled(t *testing.T) {
	a, b := &voiceRecorder{}, &voiceRecorder{}
	live := &liveSessions{}
	live.track(a)
	live.track(b)

	live.setVoiceEnabled(false)

	assert.Equal(t, []bool{false}, a.values)
	assert.Equal(t, []bool{false}, b.values)
}

func TestLiveSessions_CloseUntracks(t *testing.T) {
	a, b := &voiceRecorder{}, &voiceRecorder{}
	live := &liveSessions{}
	trackedA := live.track(a)
	live.track(b)

	require.NoError(t, trackedA.Close())
	require.NoError(t, trackedA.Close())
	live.setVoiceEnabled(false)

	assert.True(t, a.closed)
	assert.Empty(t, a.values)
	assert.Equal(t, []bool{false}, b.values)
	assert.Equal(t, 1, live.count())
}
