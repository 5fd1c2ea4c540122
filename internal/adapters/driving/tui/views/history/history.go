// Package history provides the saved routes view.
package history

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/wayfinder-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/wayfinder-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/wayfinder-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/wayfinder-cli/internal/core/domain"
	"github.com/custodia-labs/wayfinder-cli/internal/core/ports/driving"
)

// listLimit caps how many saved routes are loaded.
const listLimit = 50

// View lists saved routes and reopens or deletes them.
type View struct {
	ctx     context.Context
	styles  *styles.Styles
	keymap  *keymap.KeyMap
	history driving.HistoryService

	routes   []domain.SavedRoute
	selected int
	loading  bool
	err      error

	width  int
	height int
}

// NewView creates a new history view. history may be nil.
func NewView(ctx context.Context, s *styles.Styles, km *keymap.KeyMap, history driving.HistoryService) *View {
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
		history: history,
		width:   80,
		height:  24,
	}
}

// Init loads the saved routes.
func (v *View) Init() tea.Cmd {
	return v.load()
}

func (v *View) load() tea.Cmd {
	if v.history == nil {
		return nil
	}
	v.loading = true
	ctx := v.ctx
	history := v.history
	return func() tea.Msg {
		routes, err := history.List(ctx, listLimit)
		return messages.HistoryLoaded{Routes: routes, Err: err}
	}
}

// Update handles messages for the history view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case messages.HistoryLoaded:
		v.loading = false
		v.err = msg.Err
		v.routes = msg.Routes
		if v.selected >= len(v.routes) {
			v.selected = max(len(v.routes)-1, 0)
		}
		return v, nil

	case messages.HistoryDeleted:
		if msg.Err != nil {
			return v, func() tea.Msg { return messages.ErrorOccurred{Err: msg.Err} }
		}
		return v, v.load()

	case tea.KeyMsg:
		return v.handleKey(msg.String())
	}

	return v, nil
}

func (v *View) handleKey(keyStr string) (*View, tea.Cmd) {
	switch {
	case keymap.Matches(keyStr, v.keymap.Up):
		if v.selected > 0 {
			v.selected--
		}
		return v, nil

	case keymap.Matches(keyStr, v.keymap.Down):
		if v.selected < len(v.routes)-1 {
			v.selected++
		}
		return v, nil

	case keymap.Matches(keyStr, v.keymap.Select):
		route, ok := v.Selected()
		if !ok {
			return v, nil
		}
		return v, func() tea.Msg { return messages.RouteOpened{Route: route} }

	case keymap.Matches(keyStr, v.keymap.Delete):
		route, ok := v.Selected()
		if !ok || v.history == nil {
			return v, nil
		}
		ctx := v.ctx
		history := v.history
		return v, func() tea.Msg {
			return messages.HistoryDeleted{ID: route.ID, Err: history.Delete(ctx, route.ID)}
		}

	case keymap.Matches(keyStr, v.keymap.Back):
		return v, func() tea.Msg { return messages.ViewChanged{View: messages.ViewPlanner} }
	}

	return v, nil
}

// Selected returns the highlighted route.
func (v *View) Selected() (domain.SavedRoute, bool) {
	if v.selected < 0 || v.selected >= len(v.routes) {
		return domain.SavedRoute{}, false
	}
	return v.routes[v.selected], true
}

// View renders the history list.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Saved routes"))
	b.WriteString("\n\n")

	switch {
	case v.history == nil:
		b.WriteString(v.styles.Muted.Render("History is disabled."))
		return b.String()
	case v.err != nil:
		b.WriteString(v.styles.Error.Render("Could not load history: " + v.err.Error()))
		return b.String()
	case v.loading:
		b.WriteString(v.styles.Muted.Render("Loading..."))
		return b.String()
	case len(v.routes) == 0:
		b.WriteString(v.styles.Muted.Render("No saved routes yet. Press w on a route to save it."))
		return b.String()
	}

	for i, route := range v.routes {
		line := fmt.Sprintf("%s  %s  %s",
			route.CreatedAt.Local().Format("2006-01-02 15:04"),
			route.Summary,
			domain.FormatDistance(route.DistanceMeters))
		if i == v.selected {
			b.WriteString(v.styles.Selected.Render("> " + line))
		} else {
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
