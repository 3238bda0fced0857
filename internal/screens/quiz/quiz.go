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

// QuizScreen runs one quiz session on top of an Engine.
type QuizScreen struct {
	engine  *engine.Engine
	session *engine.Session
	choice  components.MultiChoice
	errMsg  string
}

var _ screen.Screen = (*QuizScreen)(nil)
var _ screen.KeyHintProvider = (*QuizScreen)(nil)

// New starts a fresh session on e and returns the screen for it.
func New(e *engine.Engine) *QuizScreen {
	s := &QuizScreen{engine: e}
	sess, err := e.Start()
	if err != nil {
		s.errMsg = err.Error()
		return s
	}
	s.session = sess
	s.loadQuestion()
	return s
}

func (s *QuizScreen) Init() tea.Cmd {
	return nil
}

func (s *QuizScreen) Title() string {
	return "Security Quiz"
}

func (s *QuizScreen) KeyHints() []layout.KeyHint {
	if s.session == nil {
		return []layout.KeyHint{{Key: "any key", Description: "Back"}}
	}
	if s.session.FeedbackShown {
		next := "Next Question"
		if s.session.IsLast() {
			next = "See Results"
		}
		return []layout.KeyHint{
			{Key: "Enter", Description: next},
			{Key: "Esc", Description: "Abandon"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Move"},
		{Key: "1-4", Description: "Answer"},
		{Key: "Enter", Description: "Select"},
		{Key: "Esc", Description: "Abandon"},
	}
}

func (s *QuizScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if s.errMsg != "" {
		if _, ok := msg.(tea.KeyMsg); ok {
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
		return s, nil
	}

	switch msg := msg.(type) {
	case components.ChoiceMsg:
		return s.answer(msg.Index)

	case tea.KeyMsg:
		if s.session.FeedbackShown {
			switch msg.String() {
			case "enter", "space", "right", "n":
				return s.advance()
			}
			return s, nil
		}
	}

	var cmd tea.Cmd
	s.choice, cmd = s.choice.Update(msg)
	return s, cmd
}

func (s *QuizScreen) answer(idx int) (screen.Screen, tea.Cmd) {
	if _, err := s.engine.Answer(idx); err != nil {
		s.errMsg = err.Error()
		return s, nil
	}
	s.choice.Reveal(idx)
	return s, nil
}

func (s *QuizScreen) advance() (screen.Screen, tea.Cmd) {
	sess, err := s.engine.Advance()
	if err != nil {
		s.errMsg = err.Error()
		return s, nil
	}
	if sess.Finished {
		results := NewResults(s.engine, sess)
		return s, func() tea.Msg { return router.ReplaceScreenMsg{Screen: results} }
	}
	s.loadQuestion()
	return s, nil
}

func (s *QuizScreen) loadQuestion() {
	q := s.session.Current()
	s.choice = components.NewMultiChoice(q.Text, q.Options, q.Answer)
}

func (s *QuizScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).
			Height(height).
			Align(lipgloss.Center, lipgloss.Center).
			Foreground(theme.Error).
			Render("Quiz unavailable\n\n" + s.errMsg)
	}

	sess := s.session
	cw := min(width-4, 76)

	var b strings.Builder

	progress := components.StepProgress(sess.CurrentIndex+1, sess.Total(), cw-16)
	score := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).
		Render(fmt.Sprintf("Score %d", sess.Score))
	b.WriteString(progress.View() + "   " + score)
	b.WriteString("\n\n")

	b.WriteString(lipgloss.NewStyle().Width(cw).Render(s.choice.View()))

	if sess.FeedbackShown {
		b.WriteString("\n")
		b.WriteString(renderFeedback(sess, cw))
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Top,
		lipgloss.NewStyle().Padding(1, 2).Render(b.String()))
}

func renderFeedback(sess *engine.Session, width int) string {
	q := sess.Current()

	var verdict string
	if sess.LastAnswerCorrect() {
		verdict = theme.Correct.Render("Correct!")
	} else {
		verdict = theme.Incorrect.Render("Incorrect.") + " " +
			theme.Body.Render("Answer: "+q.CorrectOption())
	}

	explanation := lipgloss.NewStyle().
		Width(width - 6).
		Foreground(theme.TextDim).
		Render(q.Explanation)

	next := "Enter ▸ Next Question"
	if sess.IsLast() {
		next = "Enter ▸ See Results"
	}

	return theme.Card.Width(width).Render(
		verdict + "\n\n" + explanation + "\n\n" + theme.Hint.Render(next))
}
