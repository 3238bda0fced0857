package library

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/cyberguard/internal/content"
	"github.com/abhisek/cyberguard/internal/router"
	"github.com/abhisek/cyberguard/internal/screen"
	"github.com/abhisek/cyberguard/internal/ui/components"
	"github.com/abhisek/cyberguard/internal/ui/layout"
	"github.com/abhisek/cyberguard/internal/ui/theme"
)

// LibraryScreen lists the threat catalog with an optional filter.
type LibraryScreen struct {
	threats      []content.Threat
	visible      []int
	cursor       int
	scrollOffset int
	search       components.SearchInput
}

var _ screen.Screen = (*LibraryScreen)(nil)
var _ screen.KeyHintProvider = (*LibraryScreen)(nil)
var _ screen.InputCapturer = (*LibraryScreen)(nil)

// New creates a new LibraryScreen.
func New(threats []content.Threat) *LibraryScreen {
	s := &LibraryScreen{
		threats: threats,
		search:  components.NewSearchInput("filter threats", 40),
	}
	s.refilter()
	return s
}

func (s *LibraryScreen) Init() tea.Cmd {
	return nil
}

func (s *LibraryScreen) Title() string {
	return "Threat Library"
}

func (s *LibraryScreen) CapturingInput() bool {
	return s.search.Focused()
}

func (s *LibraryScreen) KeyHints() []layout.KeyHint {
	if s.search.Focused() {
		return []layout.KeyHint{
			{Key: "Enter", Description: "Apply"},
			{Key: "Esc", Description: "Clear"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Open"},
		{Key: "/", Description: "Filter"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *LibraryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		if s.search.Focused() {
			var cmd tea.Cmd
			s.search, cmd = s.search.Update(msg)
			return s, cmd
		}
		return s, nil
	}

	if s.search.Focused() {
		switch kmsg.String() {
		case "enter":
			s.search.Blur()
			return s, nil
		case "esc":
			s.search.Reset()
			s.search.Blur()
			s.refilter()
			return s, nil
		}
		var cmd tea.Cmd
		s.search, cmd = s.search.Update(msg)
		s.refilter()
		return s, cmd
	}

	switch kmsg.String() {
	case "up", "k":
		if s.cursor > 0 {
			s.cursor--
		}
	case "down", "j":
		if s.cursor < len(s.visible)-1 {
			s.cursor++
		}
	case "/":
		return s, s.search.Focus()
	case "enter":
		if len(s.visible) == 0 {
			return s, nil
		}
		detail := newThreatDetail(s.threats[s.visible[s.cursor]])
		return s, func() tea.Msg { return router.PushScreenMsg{Screen: detail} }
	}
	return s, nil
}

// refilter recomputes the visible rows and clamps the cursor.
func (s *LibraryScreen) refilter() {
	s.visible = s.visible[:0]
	for i, t := range s.threats {
		if s.search.Matches(t.Title, t.Summary, t.What) {
			s.visible = append(s.visible, i)
		}
	}
	if s.cursor >= len(s.visible) {
		s.cursor = max(len(s.visible)-1, 0)
	}
}

func (s *LibraryScreen) View(width, height int) string {
	cw := min(width-4, 90)

	var lines []string
	lines = append(lines, "  "+s.search.View(), "")

	if len(s.visible) == 0 {
		lines = append(lines, theme.Hint.Render("  No threats match this filter."))
		return strings.Join(lines, "\n")
	}

	// Each row is two lines plus a spacer.
	perPage := max((height-len(lines))/3, 1)
	if s.cursor < s.scrollOffset {
		s.scrollOffset = s.cursor
	}
	if s.cursor >= s.scrollOffset+perPage {
		s.scrollOffset = s.cursor - perPage + 1
	}

	for i := s.scrollOffset; i < len(s.visible) && i < s.scrollOffset+perPage; i++ {
		lines = append(lines, renderRow(s.threats[s.visible[i]], i == s.cursor, cw), "")
	}

	return strings.Join(lines, "\n")
}

func renderRow(t content.Threat, selected bool, width int) string {
	prefix := "    "
	title := theme.Unselected
	if selected {
		prefix = "  ▸ "
		title = theme.Selected
	}
	summary := lipgloss.NewStyle().Foreground(theme.TextDim).Width(width - 4).PaddingLeft(4)
	return title.Render(prefix+t.Title) + "\n" + summary.Render(t.Summary)
}
