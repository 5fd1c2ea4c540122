// Package status provides status bar components for the TUI.
package status

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/wayfinder-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/wayfinder-cli/internal/core/domain"
)

// Bar displays the session phase, a transient message and keybinding hints.
type Bar struct {
	styles  *styles.Styles
	spinner spinner.Model

	phase   domain.SessionPhase
	voice   bool
	message string
	isError bool
	hints   []key.Binding
	width   int
}

// NewBar creates a new status bar component.
func NewBar(s *styles.Styles) *Bar {
	if s == nil {
		s = styles.DefaultStyles()
	}

	sp := spinner.New()
	sp.Spinner = spinner.MiniDot
	sp.Style = s.Warning

	return &Bar{
		styles:  s,
		spinner: sp,
		phase:   domain.PhaseIdle,
		width:   80,
	}
}

// Init starts the spinner.
func (b *Bar) Init() tea.Cmd {
	return b.spinner.Tick
}

// Update advances the spinner.
func (b *Bar) Update(msg tea.Msg) (*Bar, tea.Cmd) {
	if _, ok := msg.(spinner.TickMsg); !ok {
		return b, nil
	}
	var cmd tea.Cmd
	b.spinner, cmd = b.spinner.Update(msg)
	return b, cmd
}

// View renders the status bar.
func (b *Bar) View() string {
	left := b.renderLeft()
	right := b.renderRight()

	padding := b.width - lipgloss.Width(left) - lipgloss.Width(right)
	if padding < 1 {
		padding = 1
	}

	return b.styles.StatusBar.Width(b.width).Render(left + strings.Repeat(" ", padding) + right)
}

func (b *Bar) renderLeft() string {
	phase := b.styles.Phase(b.phase).Render(b.phase.String())
	if b.phase == domain.PhaseComputing {
		phase = b.spinner.View() + " " + phase
	}

	voice := b.styles.Muted.Render("🔇")
	if b.voice {
		voice = "🔊"
	}

	parts := []string{phase, voice}
	switch {
	case b.message == "":
	case b.isError:
		parts = append(parts, b.styles.Error.Render(fmt.Sprintf("Error: %s", b.message)))
	default:
		parts = append(parts, b.styles.Normal.Render(b.message))
	}
	return strings.Join(parts, "  ")
}

func (b *Bar) renderRight() string {
	hints := make([]string, 0, len(b.hints))
	for _, h := range b.hints {
		help := h.Help()
		hints = append(hints, fmt.Sprintf("%s: %s", help.Key, help.Desc))
	}
	return b.styles.Muted.Render(strings.Join(hints, " | "))
}

// SetSession updates the phase and voice indicator from a snapshot.
func (b *Bar) SetSession(state domain.SessionState) {
	b.phase = state.Phase
	b.voice = state.VoiceEnabled
}

// Phase returns the displayed phase.
func (b *Bar) Phase() domain.SessionPhase {
	return b.phase
}

// SetMessage shows an informational message.
func (b *Bar) SetMessage(message string) {
	b.message = message
	b.isError = false
}

// SetError shows an error message.
func (b *Bar) SetError(err error) {
	if err == nil {
		b.ClearMessage()
		return
	}
	b.message = err.Error()
	b.isError = true
}

// Message returns the current message and whether it is an error.
func (b *Bar) Message() (string, bool) {
	return b.message, b.isError
}

// ClearMessage removes the current message.
func (b *Bar) ClearMessage() {
	b.message = ""
	b.isError = false
}

// SetHints sets the keybinding hints shown on the right.
func (b *Bar) SetHints(hints []key.Binding) {
	b.hints = hints
}

// SetWidth sets the status bar width.
func (b *Bar) SetWidth(width int) {
	b.width = width
}
