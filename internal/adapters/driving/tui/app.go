package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/wayfinder-cli/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/wayfinder-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/wayfinder-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/wayfinder-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/wayfinder-cli/internal/adapters/driving/tui/views/help"
	"github.com/custodia-labs/wayfinder-cli/internal/adapters/driving/tui/views/history"
	"github.com/custodia-labs/wayfinder-cli/internal/adapters/driving/tui/views/navigation"
	"github.com/custodia-labs/wayfinder-cli/internal/adapters/driving/tui/views/planner"
	"github.com/custodia-labs/wayfinder-cli/internal/core/domain"
)

// stateBuffer bounds queued session snapshots. Older ones are dropped.
const stateBuffer = 16

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	// ports provides access to core services via driving ports.
	ports *Ports

	// ctx is the context for cancellation.
	ctx context.Context

	styles *styles.Styles
	keymap *keymap.KeyMap

	plannerView    *planner.View
	navigationView *navigation.View
	historyView    *history.View
	helpView       *help.View
	statusBar      *status.Bar

	// states receives session snapshots from the session's effect goroutine.
	states      chan domain.SessionState
	unsubscribe func()

	// lastState is the most recent snapshot applied to the views.
	lastState domain.SessionState

	currentView messages.ViewType

	// err holds the last error that occurred.
	err error

	width  int
	height int
	ready  bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
// It subscribes to session state until Close is called.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	a := &App{
		ports:  ports,
		ctx:    context.Background(),
		styles: styles.DefaultStyles(),
		keymap: keymap.DefaultKeyMap(),
		states: make(chan domain.SessionState, stateBuffer),
	}
	a.statusBar = status.NewBar(a.styles)
	a.buildViews()

	a.lastState = ports.Session.State()
	a.statusBar.SetSession(a.lastState)
	a.plannerView.SyncSelection(a.lastState.Selection)
	a.currentView = messages.ViewPlanner
	if a.lastState.Selection.Complete() {
		a.currentView = messages.ViewNavigation
	}
	a.refreshHints()

	a.unsubscribe = ports.Session.OnStateChange(a.publish)
	return a, nil
}

func (a *App) buildViews() {
	a.plannerView = planner.NewView(a.ctx, a.styles, a.keymap, a.ports.Resolver, a.ports.Session)
	a.navigationView = navigation.NewView(a.ctx, a.styles, a.keymap, a.ports.Session, a.ports.Share, a.ports.History)
	a.historyView = history.NewView(a.ctx, a.styles, a.keymap, a.ports.History)
	a.helpView = help.NewView(a.styles, a.keymap)
}

// publish queues a snapshot without blocking the session.
// When the queue is full the oldest snapshot is discarded.
func (a *App) publish(state domain.SessionState) {
	for {
		select {
		case a.states <- state:
			return
		default:
		}
		select {
		case <-a.states:
		default:
		}
	}
}

// WithContext sets the context for the app.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	a.buildViews()
	a.navigationView.SetState(a.lastState)
	a.plannerView.SyncSelection(a.lastState.Selection)
	return a
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.SetWindowTitle("wayfinder"),
		a.statusBar.Init(),
		a.plannerView.Init(),
		a.waitForState(),
	)
}

// waitForState delivers the next session snapshot as a message.
func (a *App) waitForState() tea.Cmd {
	states := a.states
	ctx := a.ctx
	return func() tea.Msg {
		select {
		case state := <-states:
			return messages.StateChanged{State: state}
		case <-ctx.Done():
			return nil
		}
	}
}

// Update implements tea.Model.
//
//nolint:gocognit,gocyclo,funlen // central message handler requires complexity
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(msg)

	case messages.StateChanged:
		return a, tea.Batch(a.applyState(msg.State), a.waitForState())

	case messages.PlacesFound:
		a.plannerView, cmd = a.plannerView.Update(msg)
		return a, cmd

	case messages.PlaceChosen:
		if msg.Endpoint == messages.EndpointOrigin {
			a.ports.Session.SetOrigin(msg.Place)
		} else {
			a.ports.Session.SetDestination(msg.Place)
		}
		a.plannerView, cmd = a.plannerView.Update(msg)
		return a, cmd

	case messages.LinkShared:
		if msg.Err != nil {
			a.setError(msg.Err)
		} else {
			a.statusBar.SetMessage("Copied " + msg.Link)
		}
		return a, nil

	case messages.RouteSaved:
		if msg.Err != nil {
			a.setError(msg.Err)
		} else {
			a.statusBar.SetMessage("Route saved")
		}
		return a, nil

	case messages.HistoryLoaded, messages.HistoryDeleted:
		a.historyView, cmd = a.historyView.Update(msg)
		return a, cmd

	case messages.RouteOpened:
		a.ports.Session.Hydrate(msg.Route.Selection())
		a.switchView(messages.ViewNavigation)
		return a, nil

	case messages.VoiceHandled:
		a.navigationView, cmd = a.navigationView.Update(msg)
		switch {
		case msg.Err != nil:
			a.setError(msg.Err)
		case msg.Command == domain.VoiceUnknown:
			a.statusBar.SetMessage("Command not recognised")
		default:
			a.statusBar.SetMessage("Heard: " + msg.Command.String())
		}
		return a, cmd

	case messages.ViewChanged:
		return a, a.switchView(msg.View)

	case messages.ErrorOccurred:
		a.setError(msg.Err)
		return a, nil

	case messages.Quit:
		return a, tea.Quit
	}

	a.statusBar, cmd = a.statusBar.Update(msg)
	return a, cmd
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	keyStr := msg.String()
	if keyStr == "ctrl+c" {
		return a, tea.Quit
	}

	// The planner takes free text, so q and ? are only global elsewhere.
	if a.currentView != messages.ViewPlanner {
		if keymap.Matches(keyStr, a.keymap.Quit) {
			return a, tea.Quit
		}
		if a.currentView != messages.ViewHelp && keymap.Matches(keyStr, a.keymap.Help) {
			return a, a.switchView(messages.ViewHelp)
		}
	}

	a.statusBar.ClearMessage()

	var cmd tea.Cmd
	switch a.currentView {
	case messages.ViewPlanner:
		a.plannerView, cmd = a.plannerView.Update(msg)
	case messages.ViewNavigation:
		a.navigationView, cmd = a.navigationView.Update(msg)
	case messages.ViewHistory:
		a.historyView, cmd = a.historyView.Update(msg)
	case messages.ViewHelp:
		a.helpView, cmd = a.helpView.Update(msg)
	}
	return a, cmd
}

// applyState pushes a snapshot to every view. The first time a selection
// becomes complete the planner hands over to the navigation view, and a
// cleared selection empties the planner.
func (a *App) applyState(state domain.SessionState) tea.Cmd {
	prev := a.lastState.Selection
	completed := state.Selection.Complete() && !prev.Complete()
	cleared := isEmpty(state.Selection) && !isEmpty(prev)
	a.lastState = state

	a.statusBar.SetSession(state)
	a.navigationView.SetState(state)
	a.plannerView.SyncSelection(state.Selection)

	var cmd tea.Cmd
	if cleared {
		cmd = a.plannerView.Reset()
	}
	if completed && a.currentView == messages.ViewPlanner {
		a.switchView(messages.ViewNavigation)
	}
	a.refreshHints()
	return cmd
}

func isEmpty(sel domain.RouteSelection) bool {
	return sel.Origin == nil && sel.Destination == nil
}

func (a *App) switchView(view messages.ViewType) tea.Cmd {
	previous := a.currentView
	a.currentView = view
	a.refreshHints()

	switch view {
	case messages.ViewHistory:
		return a.historyView.Init()
	case messages.ViewHelp:
		a.helpView.SetReturnView(previous)
	}
	return nil
}

func (a *App) refreshHints() {
	switch a.currentView {
	case messages.ViewPlanner:
		a.statusBar.SetHints(a.keymap.PlannerHelp())
	case messages.ViewHistory:
		a.statusBar.SetHints(a.keymap.HistoryHelp())
	case messages.ViewHelp:
		a.statusBar.SetHints(nil)
	case messages.ViewNavigation:
		if a.lastState.Phase == domain.PhaseNavigating {
			a.statusBar.SetHints(a.keymap.NavigationHelp())
		} else {
			a.statusBar.SetHints(a.keymap.RouteHelp())
		}
	}
}

func (a *App) setError(err error) {
	a.err = err
	a.statusBar.SetError(err)
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	var body string
	switch a.currentView {
	case messages.ViewNavigation:
		body = a.navigationView.View()
	case messages.ViewHistory:
		body = a.historyView.View()
	case messages.ViewHelp:
		body = a.helpView.View()
	default:
		body = a.plannerView.View()
	}

	bodyHeight := a.height - 1
	if bodyHeight < 1 {
		bodyHeight = 1
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().Height(bodyHeight).MaxHeight(bodyHeight).Render(body),
		a.statusBar.View(),
	)
}

// Run starts the TUI application and blocks until it exits.
func (a *App) Run() error {
	defer a.Close()
	p := tea.NewProgram(a, tea.WithAltScreen(), tea.WithContext(a.ctx))
	_, err := p.Run()
	return err
}

// Close stops the session subscription.
func (a *App) Close() {
	if a.unsubscribe != nil {
		a.unsubscribe()
		a.unsubscribe = nil
	}
}

// CurrentView returns the current view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// LastState returns the most recent session snapshot the app has seen.
func (a *App) LastState() domain.SessionState {
	return a.lastState
}

// Err returns the last error that occurred.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the app has been initialised.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true

	viewHeight := height - 1
	a.plannerView.SetDimensions(width, viewHeight)
	a.navigationView.SetDimensions(width, viewHeight)
	a.historyView.SetDimensions(width, viewHeight)
	a.helpView.SetDimensions(width, viewHeight)
	a.statusBar.SetWidth(width)
}
