package report

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/cyberguard/internal/content"
	"github.com/abhisek/cyberguard/internal/screen"
	"github.com/abhisek/cyberguard/internal/ui/layout"
	"github.com/abhisek/cyberguard/internal/ui/theme"
)

// ReportScreen lists where to report an incident.
type ReportScreen struct {
	channels  []content.ReportChannel
	helplines []content.Helpline
}

var _ screen.Screen = (*ReportScreen)(nil)
var _ screen.KeyHintProvider = (*ReportScreen)(nil)

func New(channels []content.ReportChannel, helplines []content.Helpline) *ReportScreen {
	return &ReportScreen{channels: channels, helplines: helplines}
}

func (r *ReportScreen) Init() tea.Cmd                                { return nil }
func (r *ReportScreen) Title() string                                { return "Report Incident" }
func (r *ReportScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) { return r, nil }

func (r *ReportScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{{Key: "Esc", Description: "Back"}}
}

func (r *ReportScreen) View(width, height int) string {
	cw := min(width-6, 90)

	var b strings.Builder

	b.WriteString(theme.Title.Render("Report a Cyber Crime"))
	b.WriteString("\n\n")

	for _, c := range r.channels {
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).
			Render(strings.ToUpper(c.Category)))
		b.WriteString("  ")
		b.WriteString(theme.Body.Bold(true).Render(c.Title))
		b.WriteString("\n")
		b.WriteString(theme.Hint.Render("  " + c.Link))
		b.WriteString("\n\n")
	}

	emergency := lipgloss.NewStyle().Foreground(theme.Error).Bold(true).Render("EMERGENCY RESPONSE") +
		"\n" + lipgloss.NewStyle().Foreground(theme.TextDim).
		Render("Financial breaches require immediate 1930 remediation.") +
		"\n\n" + lipgloss.NewStyle().Foreground(theme.Error).Bold(true).Render("☎  1930")
	b.WriteString(lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Error).
		Padding(1, 2).
		Width(cw).
		Render(emergency))
	b.WriteString("\n\n")

	for _, h := range r.helplines {
		b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Width(14).Render(h.Label))
		b.WriteString(theme.Body.Bold(true).Render(h.Value))
		b.WriteString("  ")
		b.WriteString(theme.Hint.Render(h.Link))
		b.WriteString("\n")
	}

	return lipgloss.NewStyle().Padding(1, 2).Render(b.String())
}
