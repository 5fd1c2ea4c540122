// Package cli provides the cobra command tree for wayfinder.
package cli

import (
	"context"
	"errors"
	"io"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/wayfinder-cli/internal/core/ports/driving"
	"github.com/custodia-labs/wayfinder-cli/internal/logger"
)

// version is set at build time.
var version = "dev"

// Global flags.
var (
	verbose   bool
	configDir string
)

// Services wired by the composition root.
var (
	routeProvider   driving.RouteProvider
	addressResolver driving.AddressResolver
	shareCodec      driving.ShareCodec
	shareActions    driving.ShareActionService
	historyService  driving.HistoryService
	settingsService driving.SettingsService
	sessionFactory  SessionFactory
)

// SessionFactory creates a navigation session wired to the configured
// speech, recognition and location adapters.
type SessionFactory func(opts SessionOptions) (driving.NavigationSession, error)

// SessionOptions tunes a session for the calling command.
type SessionOptions struct {
	// VoiceEnabled overrides the configured narration setting when set.
	VoiceEnabled *bool

	// TranscriptSource supplies one voice transcript per line. Optional.
	TranscriptSource io.Reader
}

// Services holds everything the commands need.
type Services struct {
	Routes     driving.RouteProvider
	Resolver   driving.AddressResolver
	Share      driving.ShareCodec
	Actions    driving.ShareActionService
	History    driving.HistoryService
	Settings   driving.SettingsService
	NewSession SessionFactory

	// Close releases resources held by the services. Optional.
	Close func() error
}

// BuildFunc builds services for a config directory ("" means the default).
type BuildFunc func(configDir string) (*Services, error)

var (
	build   BuildFunc
	closeFn func() error
)

var rootCmd = &cobra.Command{
	Use:   "wayfinder",
	Short: "Turn-by-turn navigation in your terminal",
	Long: `Wayfinder plans routes between places, narrates turn-by-turn guidance
and produces shareable links for a route.

Places can be given as "lat,lng" or as free text, which is searched.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "configuration directory (default ~/.wayfinder)")
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	version = v
}

// Version returns the version reported by the version command.
func Version() string {
	return version
}

// SetServices installs services directly, bypassing the build function.
func SetServices(s *Services) {
	if s == nil {
		s = &Services{}
	}
	routeProvider = s.Routes
	addressResolver = s.Resolver
	shareCodec = s.Share
	shareActions = s.Actions
	historyService = s.History
	settingsService = s.Settings
	sessionFactory = s.NewSession
	closeFn = s.Close
}

// Execute runs the root command. Services are built lazily by fn once
// flags are parsed, and closed when the command returns.
func Execute(ctx context.Context, fn BuildFunc) error {
	build = fn
	defer func() {
		if closeFn != nil {
			if err := closeFn(); err != nil {
				logger.Warn("close services: %v", err)
			}
			closeFn = nil
		}
	}()
	return rootCmd.ExecuteContext(ctx)
}

func setup(_ *cobra.Command, _ []string) error {
	logger.SetVerbose(verbose)

	if build == nil {
		return nil
	}
	services, err := build(configDir)
	if err != nil {
		return err
	}
	build = nil
	SetServices(services)
	return nil
}

// commandContext returns the command's context, or Background outside Execute.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

var (
	errRoutesNotConfigured   = errors.New("routing service not configured")
	errResolverNotConfigured = errors.New("address resolver not configured")
	errShareNotConfigured    = errors.New("share codec not configured")
	errHistoryNotConfigured  = errors.New("history service not configured")
	errSettingsNotConfigured = errors.New("settings service not configured")
	errSessionNotConfigured  = errors.New("navigation session not configured")
)
