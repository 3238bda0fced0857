package library

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/cyberguard/internal/content"
	"github.com/abhisek/cyberguard/internal/screen"
	"github.com/abhisek/cyberguard/internal/ui/layout"
	"github.com/abhisek/cyberguard/internal/ui/theme"
)

// ThreatDetailScreen shows the full write-up for one threat.
type ThreatDetailScreen struct {
	threat content.Threat
}

var _ screen.Screen = (*ThreatDetailScreen)(nil)
var _ screen.KeyHintProvider = (*ThreatDetailScreen)(nil)

func newThreatDetail(t content.Threat) *ThreatDetailScreen {
	return &ThreatDetailScreen{threat: t}
}

func (d *ThreatDetailScreen) Init() tea.Cmd { return nil }
func (d *ThreatDetailScreen) Title() string { return d.threat.Title }

func (d *ThreatDetailScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	return d, nil
}

func (d *ThreatDetailScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Esc", Description: "Back to Library"},
	}
}

func (d *ThreatDetailScreen) View(width, height int) string {
	t := d.threat
	contentWidth := min(width-8, 80)

	section := func(label string, c lipgloss.Style, body string) string {
		return c.Bold(true).Render(strings.ToUpper(label)) + "\n" +
			lipgloss.NewStyle().Width(contentWidth).Foreground(theme.Text).Render(body)
	}

	var b strings.Builder

	b.WriteString(theme.Title.Render(t.Title))
	b.WriteString("\n\n")
	b.WriteString(section("Analysis", lipgloss.NewStyle().Foreground(theme.Primary), t.What))
	b.WriteString("\n\n")
	b.WriteString(section("Methodology", lipgloss.NewStyle().Foreground(theme.Accent), t.How))
	b.WriteString("\n\n")
	b.WriteString(section("Incident Example", lipgloss.NewStyle().Foreground(theme.Secondary), "\""+t.Example+"\""))
	b.WriteString("\n\n")

	b.WriteString(theme.Label.Render("PREVENTION"))
	b.WriteString("\n")
	for _, tip := range t.Prevention {
		b.WriteString(theme.Correct.Render("  ✓ "))
		b.WriteString(lipgloss.NewStyle().Width(contentWidth - 4).Foreground(theme.Text).Render(tip))
		b.WriteString("\n")
	}

	return lipgloss.NewStyle().Padding(1, 4).Render(b.String())
}
