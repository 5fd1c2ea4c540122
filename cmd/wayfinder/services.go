package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"sync"

	"github.com/custodia-labs/wayfinder-cli/internal/adapters/driven/config/file"
	"github.com/custodia-labs/wayfinder-cli/internal/adapters/driven/geocoding/nominatim"
	"github.com/custodia-labs/wayfinder-cli/internal/adapters/driven/location"
	"github.com/custodia-labs/wayfinder-cli/internal/adapters/driven/recognizer"
	"github.com/custodia-labs/wayfinder-cli/internal/adapters/driven/routing/osrm"
	"github.com/custodia-labs/wayfinder-cli/internal/adapters/driven/speech"
	"github.com/custodia-labs/wayfinder-cli/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/wayfinder-cli/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/wayfinder-cli/internal/adapters/driving/cli"
	"github.com/custodia-labs/wayfinder-cli/internal/core/domain"
	"github.com/custodia-labs/wayfinder-cli/internal/core/ports/driven"
	"github.com/custodia-labs/wayfinder-cli/internal/core/ports/driving"
	"github.com/custodia-labs/wayfinder-cli/internal/core/services"
	"github.com/custodia-labs/wayfinder-cli/internal/logger"
)

// buildServices wires adapters and services for configDir.
// Narration from the text engine goes to narration.
func buildServices(ctx context.Context, configDir string, narration io.Writer) (*cli.Services, error) {
	configStore, err := file.NewConfigStore(configDir)
	if err != nil {
		return nil, fmt.Errorf("failed to open config: %w", err)
	}
	configDir = filepath.Dir(configStore.Path())

	settingsService := services.NewSettingsService(configStore)
	settings, err := settingsService.Get()
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}

	engine := osrm.NewEngine(osrm.Config{
		BaseURL:   settings.Routing.BaseURL,
		Profile:   settings.Routing.Profile,
		Timeout:   settings.Routing.Timeout,
		UserAgent: userAgent(settings),
	})
	geocoder := nominatim.NewGeocoder(nominatim.Config{
		BaseURL:           settings.Geocoding.BaseURL,
		UserAgent:         userAgent(settings),
		Language:          settings.Geocoding.Language,
		RequestsPerSecond: settings.Geocoding.RequestsPerSecond,
		Timeout:           settings.Geocoding.Timeout,
	})

	routes := services.NewRouteService(engine)
	resolver := services.NewAddressResolver(geocoder)
	codec := services.NewShareCodec(settings.Share.BaseURL)

	var closers []func() error

	var historyStore driven.RouteHistoryStore
	if settings.History.Enabled {
		store, err := sqlite.NewStore(filepath.Join(configDir, "data"))
		if err != nil {
			return nil, fmt.Errorf("failed to open history: %w", err)
		}
		closers = append(closers, store.Close)
		historyStore = store.HistoryStore()
	} else {
		historyStore = memory.NewHistoryStore()
	}

	fixFile := settings.Location.FixFile
	if fixFile == "" {
		fixFile = filepath.Join(configDir, location.DefaultFixFile)
	}

	live := &liveSessions{}
	watchCtx, cancelWatch := context.WithCancel(ctx)
	closers = append(closers, func() error {
		cancelWatch()
		return nil
	})
	go func() {
		err := configStore.Watch(watchCtx, func() {
			if s, err := settingsService.Get(); err == nil {
				live.setVoiceEnabled(s.Voice.Enabled)
			}
		})
		if err != nil {
			logger.Debug("config watch stopped: %v", err)
		}
	}()

	newSession := func(opts cli.SessionOptions) (driving.NavigationSession, error) {
		current, err := settingsService.Get()
		if err != nil {
			return nil, fmt.Errorf("failed to load settings: %w", err)
		}

		sink, err := speech.New(current.Voice.Engine, current.Voice.Rate, narration)
		if err != nil {
			return nil, err
		}

		voice := current.Voice.Enabled
		if opts.VoiceEnabled != nil {
			voice = *opts.VoiceEnabled
		}

		cfg := services.SessionConfig{
			Routes:              routes,
			Resolver:            resolver,
			Speech:              sink,
			Location:            location.NewFileSource(fixFile),
			VoiceEnabled:        voice,
			ArrivalRadiusMeters: current.Location.ArrivalRadiusMeters,
		}
		if opts.TranscriptSource != nil {
			cfg.Recognizer = recognizer.NewLineRecognizer(opts.TranscriptSource)
		}

		session, err := services.NewNavigationSession(cfg)
		if err != nil {
			return nil, err
		}
		// An explicit voice option outranks config edits.
		if opts.VoiceEnabled != nil {
			return session, nil
		}
		return live.track(session), nil
	}

	return &cli.Services{
		Routes:     routes,
		Resolver:   resolver,
		Share:      codec,
		Actions:    services.NewShareActionService(codec),
		History:    services.NewHistoryService(historyStore, settings.Routing.Profile),
		Settings:   settingsService,
		NewSession: newSession,
		Close: func() error {
			var errs []error
			for _, c := range closers {
				errs = append(errs, c())
			}
			return errors.Join(errs...)
		},
	}, nil
}

func userAgent(settings *domain.AppSettings) string {
	if settings.Geocoding.UserAgent != "" && settings.Geocoding.UserAgent != "wayfinder-cli" {
		return settings.Geocoding.UserAgent
	}
	return "wayfinder-cli/" + cli.Version()
}

// liveSessions tracks open sessions so config edits reach them while they run.
type liveSessions struct {
	mu       sync.Mutex
	nextID   int
	sessions map[int]driving.NavigationSession
}

// track registers s until it is closed.
func (l *liveSessions) track(s driving.NavigationSession) driving.NavigationSession {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.sessions == nil {
		l.sessions = make(map[int]driving.NavigationSession)
	}
	id := l.nextID
	l.nextID++
	l.sessions[id] = s
	return &trackedSession{NavigationSession: s, untrack: func() { l.remove(id) }}
}

func (l *liveSessions) remove(id int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.sessions, id)
}

func (l *liveSessions) count() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.sessions)
}

func (l *liveSessions) setVoiceEnabled(enabled bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, s := range l.sessions {
		s.SetVoiceEnabled(enabled)
	}
}

// trackedSession leaves the live set when closed.
type trackedSession struct {
	driving.NavigationSession
	untrack func()
}

func (t *trackedSession) Close() error {
	t.untrack()
	return t.NavigationSession.Close()
}
