package cli

import (
	"context"
	"fmt"
	"os"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/wayfinder-cli/internal/adapters/driving/tui"
	"github.com/custodia-labs/wayfinder-cli/internal/core/ports/driving"
)

var tuiMute bool

// tuiCmd represents the tui command.
var tuiCmd = &cobra.Command{
	Use:   "tui [link]",
	Short: "Launch the interactive terminal UI",
	Long: `Launch the interactive terminal user interface for Wayfinder.

Optionally pass a share link to open that route straight away.

Controls:
  tab        - Switch between origin and destination
  enter      - Search / Select
  ctrl+o     - Use current location as origin
  s / x      - Start / stop navigation
  n, space   - Next instruction
  c / w      - Copy share link / save route
  ctrl+h     - Saved routes
  ?          - Help
  q          - Quit (outside the planner)`,
	Args: cobra.MaximumNArgs(1),
	RunE: runTUI,
}

func init() {
	tuiCmd.Flags().BoolVar(&tuiMute, "mute", false, "start with narration off")
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, args []string) error {
	ctx := commandContext(cmd)

	opts := SessionOptions{}
	if tuiMute {
		off := false
		opts.VoiceEnabled = &off
	}
	session, err := newSession(opts)
	if err != nil {
		return err
	}
	defer session.Close()

	if len(args) == 1 {
		selection, err := decodeLink(args[0])
		if err != nil {
			return err
		}
		session.Hydrate(selection)
	}

	return runSessionTUI(ctx, session)
}

// runSessionTUI runs the interactive UI over an existing session.
func runSessionTUI(ctx context.Context, session driving.NavigationSession) error {
	// Add panic recovery to get stack traces
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
		}
	}()

	ports := tui.NewPorts(session, addressResolver)
	ports.Share = shareActions
	ports.History = historyService

	app, err := tui.NewApp(ports)
	if err != nil {
		return fmt.Errorf("failed to create TUI: %w", err)
	}
	app.WithContext(ctx)

	if err := app.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
