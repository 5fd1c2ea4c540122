package location

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/wayfinder-cli/internal/core/domain"
)

func writeFix(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
}

func TestFileSource_Current(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultFixFile)
	src := NewFileSource(path)

	_, err := src.Current(context.Background())
	assert.ErrorIs(t, err, domain.ErrLocationUnavailable)

	writeFix(t, path, `{"lat": 40.5, "lng": -73.25}`)
	got, err := src.Current(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.Coordinate{Lat: 40.5, Lng: -73.25}, got)
}

func TestFileSource_CurrentInvalid(t *testing.T) {
	tests := map[string]string{
		"malformed":    `{"lat":`,
		"missing lng":  `{"lat": 1}`,
		"out of range": `{"lat": 91, "lng": 0}`,
	}

	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), DefaultFixFile)
			writeFix(t, path, content)

			_, err := NewFileSource(path).Current(context.Background())

			assert.ErrorIs(t, err, domain.ErrLocationUnavailable)
		})
	}
}

func TestFileSource_Watch(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultFixFile)
	writeFix(t, path, `{"lat": 1, "lng": 2}`)
	src := NewFileSource(path)

	ctx, cancel := context.WithCancel(context.Background())
	fixes, err := src.Watch(ctx)
	require.NoError(t, err)

	select {
	case c := <-fixes:
		assert.Equal(t, domain.Coordinate{Lat: 1, Lng: 2}, c)
	case <-time.After(5 * time.Second):
		t.Fatal("no initial fix")
	}

	writeFix(t, path, `{"lat": 3, "lng": 4}`)

	select {
	case c := <-fixes:
		assert.Equal(t, domain.Coordinate{Lat: 3, Lng: 4}, c)
	case <-time.After(5 * time.Second):
		t.Fatal("no update after write")
	}

	cancel()
	for range fixes {
	}
}

func TestFileSource_HandleFsEvent(t *testing.T) {
	src := NewFileSource("/tmp/wf/fix.json")

	tests := []struct {
		name  string
		event fsnotify.Event
		want  bool
	}{
		{"write", fsnotify.Event{Name: "/tmp/wf/fix.json", Op: fsnotify.Write}, true},
		{"create", fsnotify.Event{Name: "/tmp/wf/fix.json", Op: fsnotify.Create}, true},
		{"remove", fsnotify.Event{Name: "/tmp/wf/fix.json", Op: fsnotify.Remove}, false},
		{"other file", fsnotify.Event{Name: "/tmp/wf/config.toml", Op: fsnotify.Write}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, src.handleFsEvent(tt.event))
		})
	}
}

func TestStaticSource(t *testing.T) {
	coord := domain.Coordinate{Lat: 51.5, Lng: -0.12}
	src := NewStaticSource(coord)

	got, err := src.Current(context.Background())
	require.NoError(t, err)
	assert.Equal(t, coord, got)

	ctx, cancel := context.WithCancel(context.Background())
	fixes, err := src.Watch(ctx)
	require.NoError(t, err)
	assert.Equal(t, coord, <-fixes)

	cancel()
	_, open := <-fixes
	assert.False(t, open)
}
