package home

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/cyberguard/internal/content"
	"github.com/abhisek/cyberguard/internal/quiz"
	"github.com/abhisek/cyberguard/internal/router"
	"github.com/abhisek/cyberguard/internal/screen"
	diagscreen "github.com/abhisek/cyberguard/internal/screens/diagnostic"
	"github.com/abhisek/cyberguard/internal/screens/library"
	quizscreen "github.com/abhisek/cyberguard/internal/screens/quiz"
	"github.com/abhisek/cyberguard/internal/screens/report"
	"github.com/abhisek/cyberguard/internal/screens/safety"
	"github.com/abhisek/cyberguard/internal/ui/components"
	"github.com/abhisek/cyberguard/internal/ui/layout"
	"github.com/abhisek/cyberguard/internal/ui/theme"
)

// HomeScreen is the main home screen of the application.
type HomeScreen struct {
	menu      components.Menu
	insights  *content.Insights
	helplines []content.Helpline
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.KeyHintProvider = (*HomeScreen)(nil)

// New creates a new HomeScreen.
func New(catalog *content.Catalog, insights *content.Insights, engine *quiz.Engine, runner diagscreen.Runner, secure bool) *HomeScreen {
	push := func(s func() screen.Screen) func() tea.Cmd {
		return func() tea.Cmd {
			return func() tea.Msg { return router.PushScreenMsg{Screen: s()} }
		}
	}

	items := []components.MenuItem{
		{Label: "Threat Library", Hint: "how attacks work", Action: push(func() screen.Screen {
			return library.New(catalog.Threats)
		})},
		{Label: "Security Rules", Hint: "layered defenses", Action: push(func() screen.Screen {
			return safety.New(catalog.Rules, catalog.Checklist)
		})},
		{Label: "Security Quiz", Hint: "10 random questions", Action: push(func() screen.Screen {
			return quizscreen.New(engine)
		})},
		{Label: "Full Diagnostic", Hint: "what this device reveals", Action: push(func() screen.Screen {
			return diagscreen.New(runner, secure)
		})},
		{Label: "Report Incident", Hint: "helplines and portals", Action: push(func() screen.Screen {
			return report.New(catalog.ReportChannels, catalog.Helplines)
		})},
		{Label: "Quit", Action: func() tea.Cmd {
			return tea.Quit
		}},
	}

	return &HomeScreen{
		menu:      components.NewMenu(items),
		insights:  insights,
		helplines: catalog.Helplines,
	}
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Title() string {
	return "Home"
}

func (h *HomeScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "n", Description: "New insight"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok && kmsg.String() == "n" {
		h.insights.Next()
		return h, nil
	}
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	cw := min(width-6, 72)

	var sections []string

	sections = append(sections,
		theme.Title.Width(cw).Render("Digital Safety Starts Here"),
		theme.Subtitle.Width(cw).Render("Learn the threats. Test yourself. Check your exposure."),
	)

	insight := theme.Label.Render("CyberGuard Insight") + "\n\n" +
		lipgloss.NewStyle().Width(cw-6).Foreground(theme.Text).Italic(true).
			Render("\""+h.insights.Current()+"\"")
	sections = append(sections, theme.Card.Width(cw).Render(insight))

	sections = append(sections, h.menu.View())

	if !layout.IsCompactHeight(height + layout.HeaderHeight + layout.FooterHeight) {
		sections = append(sections, renderHelplines(h.helplines, cw))
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		strings.Join(sections, "\n\n"))
}

func renderHelplines(lines []content.Helpline, width int) string {
	parts := make([]string, 0, len(lines))
	for _, l := range lines {
		parts = append(parts,
			lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(l.Value)+" "+
				lipgloss.NewStyle().Foreground(theme.TextDim).Render(l.Label))
	}
	return lipgloss.NewStyle().Width(width).Align(lipgloss.Center).
		Render(strings.Join(parts, "   •   "))
}
