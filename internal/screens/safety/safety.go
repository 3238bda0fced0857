package safety

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/cyberguard/internal/content"
	"github.com/abhisek/cyberguard/internal/screen"
	"github.com/abhisek/cyberguard/internal/ui/layout"
	"github.com/abhisek/cyberguard/internal/ui/theme"
)

// SafetyScreen shows the headline rules and the hardening checklist. The
// checklist can be ticked off locally; ticks are not persisted.
type SafetyScreen struct {
	rules     []content.Rule
	checklist []string
	checked   []bool
	cursor    int
}

var _ screen.Screen = (*SafetyScreen)(nil)
var _ screen.KeyHintProvider = (*SafetyScreen)(nil)

// New creates a new SafetyScreen.
func New(rules []content.Rule, checklist []string) *SafetyScreen {
	return &SafetyScreen{
		rules:     rules,
		checklist: checklist,
		checked:   make([]bool, len(checklist)),
	}
}

func (s *SafetyScreen) Init() tea.Cmd {
	return nil
}

func (s *SafetyScreen) Title() string {
	return "Security Rules"
}

func (s *SafetyScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Space", Description: "Tick"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *SafetyScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "up", "k":
			if s.cursor > 0 {
				s.cursor--
			}
		case "down", "j":
			if s.cursor < len(s.checklist)-1 {
				s.cursor++
			}
		case "space", "enter", "x":
			if s.cursor < len(s.checked) {
				s.checked[s.cursor] = !s.checked[s.cursor]
			}
		}
	}
	return s, nil
}

// Done returns how many checklist items are ticked.
func (s *SafetyScreen) Done() int {
	n := 0
	for _, c := range s.checked {
		if c {
			n++
		}
	}
	return n
}

func (s *SafetyScreen) View(width, height int) string {
	cw := min(width-6, 90)

	var b strings.Builder

	b.WriteString(theme.Title.Render("Rules for Total Safety."))
	b.WriteString("\n")
	b.WriteString(theme.Hint.Render("Deploy these layered defenses across your digital environment."))
	b.WriteString("\n\n")

	cards := make([]string, 0, len(s.rules))
	cardWidth := cw
	if len(s.rules) > 1 && !layout.IsCompactWidth(width) {
		cardWidth = (cw - 2*(len(s.rules)-1)) / len(s.rules)
	}
	for _, r := range s.rules {
		cards = append(cards, theme.Card.Width(cardWidth).Render(
			theme.Label.Render(strings.ToUpper(r.Title))+"\n\n"+
				lipgloss.NewStyle().Foreground(theme.TextDim).Render(r.Text)))
	}
	if layout.IsCompactWidth(width) {
		b.WriteString(lipgloss.JoinVertical(lipgloss.Left, cards...))
	} else {
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, joinWithGap(cards, "  ")...))
	}
	b.WriteString("\n\n")

	b.WriteString(theme.Label.Render("Stealth Checklist"))
	b.WriteString("  ")
	b.WriteString(theme.Hint.Render(progressLabel(s.Done(), len(s.checklist))))
	b.WriteString("\n\n")
	for i, item := range s.checklist {
		box := "[ ]"
		style := theme.Unselected
		if s.checked[i] {
			box = "[✓]"
			style = theme.Correct
		}
		prefix := "  "
		if i == s.cursor {
			prefix = "▸ "
			if !s.checked[i] {
				style = theme.Selected
			}
		}
		b.WriteString(style.Render(prefix + box + " " + item))
		b.WriteString("\n")
	}

	return lipgloss.NewStyle().Padding(1, 2).Render(b.String())
}

func joinWithGap(items []string, gap string) []string {
	out := make([]string, 0, 2*len(items))
	for i, it := range items {
		if i > 0 {
			out = append(out, gap)
		}
		out = append(out, it)
	}
	return out
}

func progressLabel(done, total int) string {
	if done == total && total > 0 {
		return "all done"
	}
	return strings.Repeat("■", done) + strings.Repeat("□", total-done)
}
