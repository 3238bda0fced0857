package quiz

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	engine "github.com/abhisek/cyberguard/internal/quiz"
	"github.com/abhisek/cyberguard/internal/router"
	"github.com/abhisek/cyberguard/internal/screen"
	"github.com/abhisek/cyberguard/internal/ui/components"
	"github.com/abhisek/cyberguard/internal/ui/layout"
	"github.com/abhisek/cyberguard/internal/ui/theme"
)

// ResultsScreen shows the final score of a finished session.
type ResultsScreen struct {
	engine  *engine.Engine
	session *engine.Session
	buttons components.ButtonRow
}

var _ screen.Screen = (*ResultsScreen)(nil)
var _ screen.KeyHintProvider = (*ResultsScreen)(nil)

// NewResults creates the results screen for a finished session.
func NewResults(e *engine.Engine, sess *engine.Session) *ResultsScreen {
	r := &ResultsScreen{engine: e, session: sess}
	r.buttons = components.NewButtonRow(
		components.NewButton("Try New Questions", false, func() tea.Cmd {
			return func() tea.Msg { return router.ReplaceScreenMsg{Screen: New(e)} }
		}),
		components.NewButton("Home", false, func() tea.Cmd {
			return func() tea.Msg { return router.PopToRootMsg{} }
		}),
	)
	return r
}

func (r *ResultsScreen) Init() tea.Cmd {
	return nil
}

func (r *ResultsScreen) Title() string {
	return "Quiz Results"
}

func (r *ResultsScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "←→", Description: "Choose"},
		{Key: "Enter", Description: "Confirm"},
		{Key: "Esc", Description: "Home"},
	}
}

func (r *ResultsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	r.buttons, cmd = r.buttons.Update(msg)
	return r, cmd
}

func (r *ResultsScreen) View(width, height int) string {
	sess := r.session

	center := func(s string) string {
		return lipgloss.PlaceHorizontal(width, lipgloss.Center, s)
	}

	var b strings.Builder

	b.WriteString(center(theme.Title.Render("Quiz Complete")))
	b.WriteString("\n\n")

	scoreStyle := lipgloss.NewStyle().Bold(true).Foreground(theme.Warning)
	if sess.Score >= engine.PassingScore {
		scoreStyle = scoreStyle.Foreground(theme.Success)
	}
	b.WriteString(center(scoreStyle.Render(fmt.Sprintf("%d / %d", sess.Score, sess.Total()))))
	b.WriteString("\n\n")
	b.WriteString(center(theme.Body.Render(sess.Verdict())))
	b.WriteString("\n\n\n")
	b.WriteString(center(r.buttons.View()))

	return lipgloss.PlaceVertical(height, lipgloss.Center, b.String())
}
