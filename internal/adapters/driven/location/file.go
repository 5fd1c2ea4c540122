package location

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/wayfinder-cli/internal/core/domain"
	"github.com/custodia-labs/wayfinder-cli/internal/core/ports/driven"
	"github.com/custodia-labs/wayfinder-cli/internal/logger"
)

// Ensure FileSource implements the interface.
var _ driven.LocationSource = (*FileSource)(nil)

var log = logger.Named("location")

// DefaultFixFile is the fix file name under the config directory.
const DefaultFixFile = "fix.json"

// FileSource reads position fixes from a JSON file and watches it for updates.
type FileSource struct {
	path string
}

// NewFileSource creates a source reading fixes from path.
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

// Path returns the fix file location.
func (f *FileSource) Path() string {
	return f.path
}

// Current reads the latest fix from the file.
func (f *FileSource) Current(ctx context.Context) (domain.Coordinate, error) {
	if err := ctx.Err(); err != nil {
		return domain.Coordinate{}, err
	}
	return f.read()
}

// Watch emits the current fix, then every new fix written to the file.
// Unreadable or invalid contents are skipped. The channel is closed when ctx is done.
func (f *FileSource) Watch(ctx context.Context) (<-chan domain.Coordinate, error) {
	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("create fix directory: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	// Watch the directory so the file may be created or replaced atomically.
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("watch %s: %w", dir, err)
	}

	fixes := make(chan domain.Coordinate, 1)

	go func() {
		defer close(fixes)
		defer watcher.Close()

		var last *domain.Coordinate
		emit := func() {
			c, err := f.read()
			if err != nil {
				log.Debug("skip fix: %v", err)
				return
			}
			if last != nil && *last == c {
				return
			}
			last = &c
			select {
			case fixes <- c:
			case <-ctx.Done():
			}
		}

		emit()
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if f.handleFsEvent(event) {
					emit()
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				log.Warn("watch error: %v", err)
			}
		}
	}()

	return fixes, nil
}

// handleFsEvent reports whether event may have produced a new fix.
func (f *FileSource) handleFsEvent(event fsnotify.Event) bool {
	if filepath.Clean(event.Name) != filepath.Clean(f.path) {
		return false
	}
	return event.Has(fsnotify.Write) || event.Has(fsnotify.Create)
}

func (f *FileSource) read() (domain.Coordinate, error) {
	data, err := os.ReadFile(f.path)
	if errors.Is(err, os.ErrNotExist) {
		return domain.Coordinate{}, domain.ErrLocationUnavailable
	}
	if err != nil {
		return domain.Coordinate{}, fmt.Errorf("read fix: %w", err)
	}

	var fix struct {
		Lat *float64 `json:"lat"`
		Lng *float64 `json:"lng"`
	}
	if err := json.Unmarshal(data, &fix); err != nil {
		return domain.Coordinate{}, fmt.Errorf("%w: parse fix: %v", domain.ErrLocationUnavailable, err)
	}
	if fix.Lat == nil || fix.Lng == nil {
		return domain.Coordinate{}, fmt.Errorf("%w: fix needs lat and lng", domain.ErrLocationUnavailable)
	}

	c := domain.Coordinate{Lat: *fix.Lat, Lng: *fix.Lng}
	if !c.Valid() {
		return domain.Coordinate{}, fmt.Errorf("%w: fix out of range: %s", domain.ErrLocationUnavailable, c)
	}
	return c, nil
}
