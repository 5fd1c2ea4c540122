// Package navigation provides the route and turn-by-turn guidance view.
package navigation

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/wayfinder-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/wayfinder-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/wayfinder-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/wayfinder-cli/internal/core/domain"
	"github.com/custodia-labs/wayfinder-cli/internal/core/ports/driving"
)

var (
	errShareUnavailable   = errors.New("sharing is not configured")
	errHistoryUnavailable = errors.New("history is not configured")
	errNoRouteToSave      = errors.New("no route to save yet")
)

// View shows the computed route and drives the navigation session.
type View struct {
	ctx     context.Context
	styles  *styles.Styles
	keymap  *keymap.KeyMap
	session driving.NavigationSession
	share   driving.ShareActionService
	history driving.HistoryService

	state     domain.SessionState
	listening bool
	offset    int

	width  int
	height int
}

// NewView creates a new navigation view. share and history may be nil.
func NewView(
	ctx context.Context,
	s *styles.Styles,
	km *keymap.KeyMap,
	session driving.NavigationSession,
	share driving.ShareActionService,
	history driving.HistoryService,
) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	return &View{
		ctx:     ctx,
		styles:  s,
		keymap:  km,
		session: session,
		share:   share,
		history: history,
		state:   session.State(),
		width:   80,
		height:  24,
	}
}

// Init initialises the navigation view.
func (v *View) Init() tea.Cmd {
	return nil
}

// Update handles messages for the navigation view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case messages.StateChanged:
		v.SetState(msg.State)
		return v, nil

	case messages.VoiceHandled:
		v.listening = false
		return v, nil

	case tea.KeyMsg:
		return v.handleKey(msg.String())
	}

	return v, nil
}

func (v *View) handleKey(keyStr string) (*View, tea.Cmd) {
	km := v.keymap

	switch {
	case keymap.Matches(keyStr, km.Start):
		return v, errorCmd(v.session.Start())

	case keymap.Matches(keyStr, km.Stop):
		return v, errorCmd(v.session.Stop())

	case keymap.Matches(keyStr, km.Advance):
		return v, errorCmd(v.session.Advance())

	case keymap.Matches(keyStr, km.Repeat):
		v.session.RepeatInstruction()
		return v, nil

	case keymap.Matches(keyStr, km.Voice):
		v.session.SetVoiceEnabled(!v.state.VoiceEnabled)
		return v, nil

	case keymap.Matches(keyStr, km.Listen):
		if v.listening {
			return v, nil
		}
		v.listening = true
		return v, v.listen()

	case keymap.Matches(keyStr, km.Recompute):
		return v, errorCmd(v.session.Recompute())

	case keymap.Matches(keyStr, km.Share):
		return v, v.copyLink()

	case keymap.Matches(keyStr, km.Save):
		return v, v.save()

	case keymap.Matches(keyStr, km.Clear):
		v.session.Clear()
		return v, viewCmd(messages.ViewPlanner)

	case keymap.Matches(keyStr, km.History):
		return v, viewCmd(messages.ViewHistory)

	case keymap.Matches(keyStr, km.Back):
		return v, viewCmd(messages.ViewPlanner)

	case keymap.Matches(keyStr, km.Up):
		if v.offset > 0 {
			v.offset--
		}
		return v, nil

	case keymap.Matches(keyStr, km.Down):
		if v.offset < len(v.state.Instructions)-1 {
			v.offset++
		}
		return v, nil
	}

	return v, nil
}

func (v *View) listen() tea.Cmd {
	ctx := v.ctx
	session := v.session
	return func() tea.Msg {
		cmd, err := session.Listen(ctx)
		return messages.VoiceHandled{Command: cmd, Err: err}
	}
}

func (v *View) copyLink() tea.Cmd {
	if v.share == nil {
		return errorCmd(errShareUnavailable)
	}
	ctx := v.ctx
	share := v.share
	sel := v.state.Selection.Clone()
	return func() tea.Msg {
		link, err := share.CopyLink(ctx, sel)
		return messages.LinkShared{Link: link, Err: err}
	}
}

func (v *View) save() tea.Cmd {
	if v.history == nil {
		return errorCmd(errHistoryUnavailable)
	}
	if v.state.Result == nil {
		return errorCmd(errNoRouteToSave)
	}
	ctx := v.ctx
	history := v.history
	sel := v.state.Selection.Clone()
	result := *v.state.Result
	return func() tea.Msg {
		saved, err := history.Save(ctx, sel, result)
		if err != nil {
			return messages.RouteSaved{Err: err}
		}
		return messages.RouteSaved{ID: saved.ID}
	}
}

// SetState replaces the rendered session snapshot.
func (v *View) SetState(state domain.SessionState) {
	if state.Phase == domain.PhaseNavigating && state.ActiveIndex != v.state.ActiveIndex {
		v.offset = state.ActiveIndex
	}
	if len(state.Instructions) == 0 {
		v.offset = 0
	}
	v.state = state
}

// State returns the snapshot being rendered.
func (v *View) State() domain.SessionState {
	return v.state
}

// Listening reports whether a listen request is outstanding.
func (v *View) Listening() bool {
	return v.listening
}

// View renders the navigation view.
func (v *View) View() string {
	var b strings.Builder
	st := v.state

	b.WriteString(v.styles.Title.Render(v.title()))
	b.WriteString("\n")

	switch st.Phase {
	case domain.PhaseIdle:
		b.WriteString(v.styles.Muted.Render("Pick an origin and a destination to plan a route."))
		return b.String()

	case domain.PhaseComputing:
		b.WriteString(v.styles.Muted.Render("Calculating route..."))
		return b.String()

	case domain.PhaseFailed:
		b.WriteString(v.styles.Error.Render("Route failed: " + st.Reason))
		b.WriteString("\n")
		b.WriteString(v.styles.Help.Render("ctrl+r to retry, esc to change places"))
		return b.String()
	}

	if st.Result != nil {
		b.WriteString(v.styles.Subtitle.Render(fmt.Sprintf("%s · %s",
			domain.FormatDistance(st.Result.DistanceMeters),
			domain.FormatDuration(st.Result.DurationSeconds))))
		b.WriteString("\n")
	}

	voice := "voice on"
	if !st.VoiceEnabled {
		voice = "voice off"
	}
	b.WriteString(v.styles.Muted.Render(voice))
	if v.listening {
		b.WriteString(v.styles.Warning.Render("  listening..."))
	}
	b.WriteString("\n\n")

	b.WriteString(v.renderInstructions())

	if st.Phase == domain.PhaseReady {
		b.WriteString("\n")
		b.WriteString(v.styles.Help.Render("press s to start navigation"))
	}
	return b.String()
}

func (v *View) title() string {
	sel := v.state.Selection
	if v.state.Result != nil && v.state.Result.Summary != "" {
		return v.state.Result.Summary
	}
	if sel.Complete() {
		return domain.RouteSummary(*sel.Origin, *sel.Destination)
	}
	return "Route"
}

func (v *View) renderInstructions() string {
	st := v.state
	if len(st.Instructions) == 0 {
		return v.styles.Muted.Render("No instructions")
	}

	visible := v.height - 8
	if visible < 3 {
		visible = 3
	}
	start := v.offset
	if start > len(st.Instructions)-visible {
		start = len(st.Instructions) - visible
	}
	if start < 0 {
		start = 0
	}
	end := start + visible
	if end > len(st.Instructions) {
		end = len(st.Instructions)
	}

	var b strings.Builder
	for i := start; i < end; i++ {
		line := fmt.Sprintf("%2d. %s", i+1, st.Instructions[i].Text)
		switch {
		case st.Phase == domain.PhaseNavigating && i == st.ActiveIndex:
			b.WriteString(v.styles.ActiveInstruction.Render("▶ " + line))
		case st.Phase == domain.PhaseNavigating && i < st.ActiveIndex:
			b.WriteString(v.styles.DoneInstruction.Render("  " + line))
		default:
			b.WriteString(v.styles.Normal.Render("  " + line))
		}
		b.WriteString("\n")
	}
	return b.String()
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
}

func viewCmd(view messages.ViewType) tea.Cmd {
	return func() tea.Msg {
		return messages.ViewChanged{View: view}
	}
}

// errorCmd reports err, or does nothing when err is nil.
func errorCmd(err error) tea.Cmd {
	if err == nil {
		return nil
	}
	return func() tea.Msg {
		return messages.ErrorOccurred{Err: err}
	}
}
