// Package help provides the keybindings reference view.
package help

import (
	"strings"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/wayfinder-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/wayfinder-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/wayfinder-cli/internal/adapters/driving/tui/styles"
)

// View lists every keybinding.
type View struct {
	styles *styles.Styles
	keymap *keymap.KeyMap
	help   help.Model
	back   messages.ViewType
	width  int
	height int
}

// NewView creates a new help view.
func NewView(s *styles.Styles, km *keymap.KeyMap) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	h := help.New()
	h.ShowAll = true
	h.Styles.FullKey = s.Subtitle
	h.Styles.FullDesc = s.Muted
	h.Styles.FullSeparator = s.Muted

	return &View{
		styles: s,
		keymap: km,
		help:   h,
		width:  80,
		height: 24,
	}
}

// Init initialises the help view.
func (v *View) Init() tea.Cmd {
	return nil
}

// SetReturnView sets the view esc goes back to.
func (v *View) SetReturnView(view messages.ViewType) {
	v.back = view
}

// Update handles messages for the help view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
	case tea.KeyMsg:
		if keymap.Matches(msg.String(), v.keymap.Back) || keymap.Matches(msg.String(), v.keymap.Help) {
			back := v.back
			return v, func() tea.Msg { return messages.ViewChanged{View: back} }
		}
	}
	return v, nil
}

// View renders the keybindings.
func (v *View) View() string {
	var b strings.Builder
	b.WriteString(v.styles.Title.Render("Keys"))
	b.WriteString("\n\n")
	b.WriteString(v.help.FullHelpView(v.keymap.FullHelp()))
	b.WriteString("\n\n")
	b.WriteString(v.styles.Help.Render("esc to go back"))
	return b.String()
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.help.Width = width
}
