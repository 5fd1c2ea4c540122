// Package list provides list display components for the TUI.
package list

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/wayfinder-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/wayfinder-cli/internal/core/domain"
)

// PlaceList displays search matches in a navigable list.
type PlaceList struct {
	places   []domain.Place
	selected int
	styles   *styles.Styles
	width    int
	height   int
}

// NewPlaceList creates a new place list component.
func NewPlaceList(s *styles.Styles) *PlaceList {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &PlaceList{styles: s, width: 80, height: 10}
}

// Update handles list navigation keys.
func (p *PlaceList) Update(msg tea.Msg) (*PlaceList, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "up", "ctrl+p":
			p.MoveUp()
		case "down", "ctrl+n":
			p.MoveDown()
		}
	}
	return p, nil
}

// View renders the list.
func (p *PlaceList) View() string {
	if len(p.places) == 0 {
		return ""
	}

	lines := make([]string, 0, len(p.places)+1)
	lines = append(lines, p.styles.Subtitle.Render(fmt.Sprintf("Matches (%d)", len(p.places))))

	visible := p.height - 1
	if visible < 1 {
		visible = 1
	}
	start := 0
	if p.selected >= visible {
		start = p.selected - visible + 1
	}
	end := start + visible
	if end > len(p.places) {
		end = len(p.places)
	}

	for i := start; i < end; i++ {
		lines = append(lines, p.renderPlace(i, &p.places[i]))
	}
	return strings.Join(lines, "\n")
}

func (p *PlaceList) renderPlace(index int, place *domain.Place) string {
	address := truncate(place.Address, p.width-4)
	if index == p.selected {
		return p.styles.Selected.Render("> " + address)
	}
	return p.styles.Normal.Render("  " + address)
}

func truncate(s string, limit int) string {
	if limit < 10 {
		limit = 10
	}
	r := []rune(s)
	if len(r) <= limit {
		return s
	}
	return string(r[:limit-3]) + "..."
}

// SetPlaces replaces the list contents and selects the first entry.
func (p *PlaceList) SetPlaces(places []domain.Place) {
	p.places = places
	p.selected = 0
}

// SelectedPlace returns the highlighted place, or nil when empty.
func (p *PlaceList) SelectedPlace() *domain.Place {
	if p.selected < 0 || p.selected >= len(p.places) {
		return nil
	}
	return &p.places[p.selected]
}

// MoveUp moves selection up.
func (p *PlaceList) MoveUp() {
	if p.selected > 0 {
		p.selected--
	}
}

// MoveDown moves selection down.
func (p *PlaceList) MoveDown() {
	if p.selected < len(p.places)-1 {
		p.selected++
	}
}

// SetDimensions sets the component dimensions.
func (p *PlaceList) SetDimensions(width, height int) {
	p.width = width
	p.height = height
}

// IsEmpty returns whether the list is empty.
func (p *PlaceList) IsEmpty() bool {
	return len(p.places) == 0
}

// Clear empties the list.
func (p *PlaceList) Clear() {
	p.SetPlaces(nil)
}
