// Package input provides text input components for the TUI.
package input

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/wayfinder-cli/internal/adapters/driving/tui/styles"
)

// labelWidth aligns the inputs of a form.
const labelWidth = 6

// PlaceInput is a labelled text input for a place name or "lat,lng".
type PlaceInput struct {
	textinput textinput.Model
	styles    *styles.Styles
	label     string
	width     int
}

// NewPlaceInput creates a new, unfocused place input.
func NewPlaceInput(s *styles.Styles, label, placeholder string) *PlaceInput {
	if s == nil {
		s = styles.DefaultStyles()
	}

	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = 256
	ti.Width = 50

	return &PlaceInput{
		textinput: ti,
		styles:    s,
		label:     label,
		width:     50,
	}
}

// Update handles input messages.
func (p *PlaceInput) Update(msg tea.Msg) (*PlaceInput, tea.Cmd) {
	var cmd tea.Cmd
	p.textinput, cmd = p.textinput.Update(msg)
	return p, cmd
}

// View renders the label and the framed input.
func (p *PlaceInput) View() string {
	label := p.styles.Title.Width(labelWidth).Render(p.label)
	field := p.styles.InputField
	if p.textinput.Focused() {
		field = p.styles.FocusedField
	}
	//nolint:misspell // lipgloss.Center is the correct constant from the library
	return lipgloss.JoinHorizontal(lipgloss.Center, label, field.Render(p.textinput.View()))
}

// Value returns the current input value.
func (p *PlaceInput) Value() string {
	return p.textinput.Value()
}

// SetValue sets the input value and moves the cursor to the end.
func (p *PlaceInput) SetValue(value string) {
	p.textinput.SetValue(value)
	p.textinput.CursorEnd()
}

// Focus sets focus on the input.
func (p *PlaceInput) Focus() tea.Cmd {
	return p.textinput.Focus()
}

// Blur removes focus from the input.
func (p *PlaceInput) Blur() {
	p.textinput.Blur()
}

// Focused returns whether the input is focused.
func (p *PlaceInput) Focused() bool {
	return p.textinput.Focused()
}

// SetWidth sets the width of the input.
func (p *PlaceInput) SetWidth(width int) {
	p.width = width
	inputWidth := width - labelWidth - 6
	if inputWidth < 20 {
		inputWidth = 20
	}
	p.textinput.Width = inputWidth
}

// Reset clears the input.
func (p *PlaceInput) Reset() {
	p.textinput.Reset()
}
