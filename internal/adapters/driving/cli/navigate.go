package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/wayfinder-cli/internal/core/domain"
	"github.com/custodia-labs/wayfinder-cli/internal/core/ports/driving"
	"github.com/custodia-labs/wayfinder-cli/internal/logger"
)

var (
	navFrom        string
	navTo          string
	navLink        string
	navHistoryID   string
	navPlain       bool
	navMute        bool
	navTrack       bool
	navTranscripts string
)

var navigateCmd = &cobra.Command{
	Use:     "navigate",
	Aliases: []string{"nav"},
	Short:   "Start turn-by-turn navigation",
	Long: `Computes a route and guides you through it one instruction at a time.

The route comes from --from/--to, a share link (--link) or a saved route
(--history). In a terminal the interactive UI is used unless --plain is set.

Plain mode reads commands from stdin, one per line:
  n, next, <enter>   advance to the next instruction
  r, repeat          repeat the current instruction
  q, quit            stop navigating
  help               list commands
Anything else is treated as a spoken command, e.g. "stop navigation".

Examples:
  wayfinder navigate --from "Ferry Building" --to "Coit Tower"
  wayfinder navigate --link "https://wayfinder.app/map?olat=..." --plain
  wayfinder navigate --history 3f2a... --track --transcripts /tmp/voice.fifo`,
	Args: cobra.NoArgs,
	RunE: runNavigate,
}

func init() {
	navigateCmd.Flags().StringVarP(&navFrom, "from", "f", "", "origin (lat,lng or place name)")
	navigateCmd.Flags().StringVarP(&navTo, "to", "t", "", "destination (lat,lng or place name)")
	navigateCmd.Flags().StringVar(&navLink, "link", "", "share link or query string to open")
	navigateCmd.Flags().StringVar(&navHistoryID, "history", "", "saved route ID to open")
	navigateCmd.Flags().BoolVar(&navPlain, "plain", false, "line-based output instead of the interactive UI")
	navigateCmd.Flags().BoolVar(&navMute, "mute", false, "start with narration off")
	navigateCmd.Flags().BoolVar(&navTrack, "track", false, "follow the location fix file while navigating")
	navigateCmd.Flags().StringVar(&navTranscripts, "transcripts", "", "file or FIFO supplying voice transcripts, one per line")
	navigateCmd.MarkFlagsRequiredTogether("from", "to")
	navigateCmd.MarkFlagsMutuallyExclusive("from", "link", "history")
	rootCmd.AddCommand(navigateCmd)
}

func runNavigate(cmd *cobra.Command, _ []string) error {
	ctx, cancel := context.WithCancel(commandContext(cmd))
	defer cancel()

	interactive := !navPlain && isTerminal(cmd.InOrStdin()) && isTerminal(cmd.OutOrStdout())

	selection, err := navigationSelection(ctx)
	if err != nil {
		return err
	}
	if !selection.Complete() && !interactive {
		return errors.New("a route is required: use --from/--to, --link or --history")
	}

	opts := SessionOptions{}
	if navMute {
		off := false
		opts.VoiceEnabled = &off
	}
	if navTranscripts != "" {
		f, err := os.Open(navTranscripts)
		if err != nil {
			return fmt.Errorf("failed to open transcripts: %w", err)
		}
		defer f.Close()
		opts.TranscriptSource = f
	}

	session, err := newSession(opts)
	if err != nil {
		return err
	}
	defer session.Close()

	if navTrack {
		go func() {
			if err := session.TrackLocation(ctx); err != nil && !errors.Is(err, context.Canceled) {
				logger.Warn("location tracking stopped: %v", err)
			}
		}()
	}
	if opts.TranscriptSource != nil {
		go listenLoop(ctx, session)
	}

	if interactive {
		if selection.Complete() {
			session.Hydrate(selection)
		}
		return runSessionTUI(ctx, session)
	}

	keepAlive := navTrack || opts.TranscriptSource != nil
	return runLineNavigation(ctx, session, selection, cmd.InOrStdin(), cmd.OutOrStdout(), keepAlive)
}

// navigationSelection picks the route from the navigate flags.
// It returns an empty selection when none was given.
func navigationSelection(ctx context.Context) (domain.RouteSelection, error) {
	switch {
	case navLink != "":
		return decodeLink(navLink)
	case navHistoryID != "":
		if historyService == nil {
			return domain.RouteSelection{}, errHistoryNotConfigured
		}
		saved, err := historyService.Get(ctx, navHistoryID)
		if err != nil {
			return domain.RouteSelection{}, fmt.Errorf("failed to load route %s: %w", navHistoryID, err)
		}
		return saved.Selection(), nil
	case navFrom != "" && navTo != "":
		return resolveSelection(ctx, navFrom, navTo)
	}
	return domain.RouteSelection{}, nil
}

func newSession(opts SessionOptions) (driving.NavigationSession, error) {
	if sessionFactory == nil {
		return nil, errSessionNotConfigured
	}
	session, err := sessionFactory(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to start session: %w", err)
	}
	return session, nil
}

// listenLoop dispatches transcripts until the recognizer is exhausted.
func listenLoop(ctx context.Context, session driving.NavigationSession) {
	for {
		if _, err := session.Listen(ctx); err != nil {
			if !errors.Is(err, io.EOF) && !errors.Is(err, context.Canceled) {
				logger.Warn("voice input stopped: %v", err)
			}
			return
		}
	}
}

// runLineNavigation drives a session from text commands and prints each
// instruction as it becomes active. It returns when navigation ends.
// With keepAlive set, end of input does not stop navigation.
//
//nolint:gocognit,gocyclo // event loop over session state and input
func runLineNavigation(
	ctx context.Context,
	session driving.NavigationSession,
	selection domain.RouteSelection,
	in io.Reader,
	out io.Writer,
	keepAlive bool,
) error {
	states := make(chan domain.SessionState, 16)
	done := make(chan struct{})
	defer close(done)

	unsubscribe := session.OnStateChange(func(s domain.SessionState) {
		select {
		case states <- s:
		case <-done:
		}
	})
	defer unsubscribe()

	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- strings.TrimSpace(scanner.Text()):
			case <-done:
				return
			}
		}
	}()

	session.Hydrate(selection)

	started := false
	announcedComputing := false
	active := -1

	// Commands are read only once navigation has started.
	var input <-chan string

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case st := <-states:
			switch st.Phase {
			case domain.PhaseComputing:
				if !announcedComputing {
					fmt.Fprintln(out, "Calculating route...")
					announcedComputing = true
				}
			case domain.PhaseFailed:
				return fmt.Errorf("route failed: %s", st.Reason)
			case domain.PhaseReady:
				if started {
					fmt.Fprintln(out, "Navigation stopped.")
					return nil
				}
				printRouteHeader(out, st)
				if err := session.Start(); err != nil {
					return fmt.Errorf("failed to start navigation: %w", err)
				}
				started = true
				input = lines
			case domain.PhaseNavigating:
				if st.ActiveIndex != active {
					active = st.ActiveIndex
					if instr, ok := st.ActiveInstruction(); ok {
						fmt.Fprintf(out, "[%d/%d] %s\n", active+1, len(st.Instructions), instr.Text)
					}
				}
			case domain.PhaseIdle:
				return nil
			}

		case line, ok := <-input:
			if !ok {
				if keepAlive {
					input = nil
					continue
				}
				_ = session.Stop()
				return nil
			}
			finished, err := handleLine(session, line, out)
			if err != nil || finished {
				return err
			}
		}
	}
}

// handleLine applies one plain-mode command. It reports whether navigation
// is finished.
func handleLine(session driving.NavigationSession, line string, out io.Writer) (bool, error) {
	switch strings.ToLower(line) {
	case "", "n", "next":
		err := session.Advance()
		switch {
		case errors.Is(err, domain.ErrRouteComplete):
			fmt.Fprintln(out, "You have arrived.")
			_ = session.Stop()
			return true, nil
		case errors.Is(err, domain.ErrNotNavigating):
			fmt.Fprintln(out, "Not navigating yet.")
		case err != nil:
			return true, err
		}
	case "r", "repeat":
		session.RepeatInstruction()
	case "q", "quit", "exit":
		_ = session.Stop()
		fmt.Fprintln(out, "Navigation stopped.")
		return true, nil
	case "help", "?":
		fmt.Fprintln(out, "Commands: n/next, r/repeat, q/quit, or speak a command such as \"mute voice\".")
	default:
		voiceCmd := session.HandleTranscript(line)
		if voiceCmd == domain.VoiceUnknown {
			fmt.Fprintf(out, "Unrecognised command %q (type help)\n", line)
		}
	}
	return false, nil
}

func printRouteHeader(out io.Writer, st domain.SessionState) {
	if st.Result == nil {
		return
	}
	fmt.Fprintln(out, st.Result.Summary)
	fmt.Fprintf(out, "  %s, %s, %d instructions\n",
		domain.FormatDistance(st.Result.DistanceMeters),
		domain.FormatDuration(st.Result.DurationSeconds),
		len(st.Instructions))
}

// isTerminal reports whether v is a terminal file.
func isTerminal(v any) bool {
	f, ok := v.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
