// Package planner provides the view where origin and destination are chosen.
package planner

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/wayfinder-cli/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/wayfinder-cli/internal/adapters/driving/tui/components/list"
	"github.com/custodia-labs/wayfinder-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/wayfinder-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/wayfinder-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/wayfinder-cli/internal/core/domain"
	"github.com/custodia-labs/wayfinder-cli/internal/core/ports/driving"
)

// searchLimit caps the matches shown for a query.
const searchLimit = 5

// View lets the user type, search and pick both endpoints.
type View struct {
	ctx      context.Context
	styles   *styles.Styles
	keymap   *keymap.KeyMap
	resolver driving.AddressResolver
	session  driving.NavigationSession

	origin      *input.PlaceInput
	destination *input.PlaceInput
	matches     *list.PlaceList
	focus       messages.Endpoint
	searching   bool

	width  int
	height int
}

// NewView creates a new planner view.
func NewView(
	ctx context.Context,
	s *styles.Styles,
	km *keymap.KeyMap,
	resolver driving.AddressResolver,
	session driving.NavigationSession,
) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	return &View{
		ctx:         ctx,
		styles:      s,
		keymap:      km,
		resolver:    resolver,
		session:     session,
		origin:      input.NewPlaceInput(s, "From", "place name or lat,lng"),
		destination: input.NewPlaceInput(s, "To", "place name or lat,lng"),
		matches:     list.NewPlaceList(s),
		width:       80,
		height:      24,
	}
}

// Init focuses the origin input.
func (v *View) Init() tea.Cmd {
	return v.setFocus(messages.EndpointOrigin)
}

// Update handles messages for the planner view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKey(msg)

	case messages.PlacesFound:
		v.searching = false
		if msg.Err != nil {
			return v, errorCmd(msg.Err)
		}
		if msg.Endpoint != v.focus {
			return v, nil
		}
		if len(msg.Places) == 1 {
			return v, chooseCmd(msg.Endpoint, msg.Places[0])
		}
		v.matches.SetPlaces(msg.Places)
		return v, nil

	case messages.PlaceChosen:
		v.matches.Clear()
		v.field(msg.Endpoint).SetValue(msg.Place.Address)
		if msg.Endpoint == messages.EndpointOrigin {
			return v, v.setFocus(messages.EndpointDestination)
		}
		return v, nil
	}

	return v, nil
}

func (v *View) handleKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	keyStr := msg.String()

	switch {
	case keymap.Matches(keyStr, v.keymap.NextField):
		v.matches.Clear()
		next := messages.EndpointDestination
		if v.focus == messages.EndpointDestination {
			next = messages.EndpointOrigin
		}
		return v, v.setFocus(next)

	case keyStr == "up" || keyStr == "down":
		v.matches, _ = v.matches.Update(msg)
		return v, nil

	case keymap.Matches(keyStr, v.keymap.Select):
		if p := v.matches.SelectedPlace(); p != nil {
			return v, chooseCmd(v.focus, *p)
		}
		return v, v.search()

	case keymap.Matches(keyStr, v.keymap.Locate):
		v.matches.Clear()
		if err := v.session.UseCurrentLocation(); err != nil {
			return v, errorCmd(err)
		}
		return v, v.setFocus(messages.EndpointDestination)

	case keymap.Matches(keyStr, v.keymap.History):
		return v, viewCmd(messages.ViewHistory)

	case keymap.Matches(keyStr, v.keymap.Back):
		if !v.matches.IsEmpty() {
			v.matches.Clear()
			return v, nil
		}
		if v.session.State().Selection.Complete() {
			return v, viewCmd(messages.ViewNavigation)
		}
		return v, nil
	}

	_, cmd := v.field(v.focus).Update(msg)
	return v, cmd
}

// search looks up the focused field's text.
func (v *View) search() tea.Cmd {
	query := strings.TrimSpace(v.field(v.focus).Value())
	if query == "" || v.resolver == nil {
		return nil
	}
	v.searching = true

	endpoint := v.focus
	ctx := v.ctx
	resolver := v.resolver
	return func() tea.Msg {
		if isCoordinateInput(query) {
			place, err := resolver.ParsePlace(ctx, query)
			if err != nil {
				return messages.PlacesFound{Endpoint: endpoint, Query: query, Err: err}
			}
			return messages.PlacesFound{Endpoint: endpoint, Query: query, Places: []domain.Place{place}}
		}
		places, err := resolver.Search(ctx, query, searchLimit)
		return messages.PlacesFound{Endpoint: endpoint, Query: query, Places: places, Err: err}
	}
}

// isCoordinateInput reports whether s looks like "lat,lng".
func isCoordinateInput(s string) bool {
	lat, lng, ok := strings.Cut(s, ",")
	if !ok {
		return false
	}
	numeric := func(part string) bool {
		part = strings.TrimSpace(part)
		return part != "" && strings.Trim(part, "+-.0123456789") == ""
	}
	return numeric(lat) && numeric(lng)
}

// SyncSelection shows hydrated or picked endpoints in fields the user is not editing.
func (v *View) SyncSelection(sel domain.RouteSelection) {
	sync := func(endpoint messages.Endpoint, place *domain.Place) {
		field := v.field(endpoint)
		if place == nil || field.Focused() && field.Value() != "" {
			return
		}
		if field.Value() != place.Address {
			field.SetValue(place.Address)
		}
	}
	sync(messages.EndpointOrigin, sel.Origin)
	sync(messages.EndpointDestination, sel.Destination)
}

// View renders the planner.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Plan a route"))
	b.WriteString("\n\n")
	b.WriteString(v.origin.View())
	b.WriteString("\n")
	b.WriteString(v.destination.View())
	b.WriteString("\n\n")

	switch {
	case v.searching:
		b.WriteString(v.styles.Muted.Render("Searching..."))
	case !v.matches.IsEmpty():
		b.WriteString(v.matches.View())
	default:
		b.WriteString(v.styles.Help.Render("Type a place and press enter to search."))
	}
	return b.String()
}

// Reset clears both fields and any matches.
func (v *View) Reset() tea.Cmd {
	v.origin.Reset()
	v.destination.Reset()
	v.matches.Clear()
	v.searching = false
	return v.setFocus(messages.EndpointOrigin)
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.origin.SetWidth(width)
	v.destination.SetWidth(width)
	v.matches.SetDimensions(width, height-10)
}

// Focus returns the endpoint receiving input.
func (v *View) Focus() messages.Endpoint {
	return v.focus
}

// Value returns the text of an endpoint field.
func (v *View) Value(endpoint messages.Endpoint) string {
	return v.field(endpoint).Value()
}

func (v *View) field(endpoint messages.Endpoint) *input.PlaceInput {
	if endpoint == messages.EndpointDestination {
		return v.destination
	}
	return v.origin
}

func (v *View) setFocus(endpoint messages.Endpoint) tea.Cmd {
	v.focus = endpoint
	v.field(endpoint).Blur()
	v.field(other(endpoint)).Blur()
	return v.field(endpoint).Focus()
}

func other(e messages.Endpoint) messages.Endpoint {
	if e == messages.EndpointOrigin {
		return messages.EndpointDestination
	}
	return messages.EndpointOrigin
}

func chooseCmd(endpoint messages.Endpoint, place domain.Place) tea.Cmd {
	return func() tea.Msg {
		return messages.PlaceChosen{Endpoint: endpoint, Place: place}
	}
}

func viewCmd(view messages.ViewType) tea.Cmd {
	return func() tea.Msg {
		return messages.ViewChanged{View: view}
	}
}

func errorCmd(err error) tea.Cmd {
	return func() tea.Msg {
		return messages.ErrorOccurred{Err: err}
	}
}
