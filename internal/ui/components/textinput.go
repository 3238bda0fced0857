package components

import (
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/cyberguard/internal/ui/theme"
)

// SearchInput wraps bubbles/textinput as a filter box.
type SearchInput struct {
	Model textinput.Model
}

// NewSearchInput creates an unfocused search box.
func NewSearchInput(placeholder string, maxWidth int) SearchInput {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Prompt = "/ "
	if maxWidth > 0 {
		ti.CharLimit = maxWidth
	}
	return SearchInput{Model: ti}
}

// Focus starts capturing keys.
func (s *SearchInput) Focus() tea.Cmd {
	return s.Model.Focus()
}

// Blur stops capturing keys.
func (s *SearchInput) Blur() {
	s.Model.Blur()
}

// Focused reports whether the box is capturing keys.
func (s SearchInput) Focused() bool {
	return s.Model.Focused()
}

// Reset clears the query.
func (s *SearchInput) Reset() {
	s.Model.SetValue("")
}

// Update forwards messages to the text input.
func (s SearchInput) Update(msg tea.Msg) (SearchInput, tea.Cmd) {
	var cmd tea.Cmd
	s.Model, cmd = s.Model.Update(msg)
	return s, cmd
}

// View renders the search box.
func (s SearchInput) View() string {
	view := s.Model.View()
	if !s.Focused() && s.Query() == "" {
		return lipgloss.NewStyle().Foreground(theme.TextDim).Render("/ to search")
	}
	return view
}

// Query returns the trimmed, lower-cased query.
func (s SearchInput) Query() string {
	return strings.ToLower(strings.TrimSpace(s.Model.Value()))
}

// Matches reports whether any of fields contains the query. An empty query
// matches everything.
func (s SearchInput) Matches(fields ...string) bool {
	q := s.Query()
	if q == "" {
		return true
	}
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), q) {
			return true
		}
	}
	return false
}
