package components

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/cyberguard/internal/ui/theme"
)

// ChoiceMsg is emitted when the user picks an option.
type ChoiceMsg struct {
	Index int
}

// MultiChoice is a multiple-choice selector. It only emits ChoiceMsg; the
// caller decides correctness and calls Reveal.
type MultiChoice struct {
	Question     string
	Options      []string
	CorrectIndex int
	Cursor       int
	Revealed     bool
	ChosenIndex  int
}

// NewMultiChoice creates a new multiple-choice component.
func NewMultiChoice(question string, options []string, correctIndex int) MultiChoice {
	return MultiChoice{
		Question:     question,
		Options:      options,
		CorrectIndex: correctIndex,
		ChosenIndex:  -1,
	}
}

// Init returns nil.
func (m MultiChoice) Init() tea.Cmd {
	return nil
}

// Update handles keyboard navigation and selection. Keys are ignored once
// the answer is revealed.
func (m MultiChoice) Update(msg tea.Msg) (MultiChoice, tea.Cmd) {
	if m.Revealed {
		return m, nil
	}

	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	key := kmsg.String()
	switch key {
	case "up", "k":
		if m.Cursor > 0 {
			m.Cursor--
		}
	case "down", "j":
		if m.Cursor < len(m.Options)-1 {
			m.Cursor++
		}
	case "enter":
		return m, choose(m.Cursor)
	default:
		if idx, ok := optionKey(key); ok && idx < len(m.Options) {
			m.Cursor = idx
			return m, choose(idx)
		}
	}

	return m, nil
}

// Reveal locks the component and shows the correct option and the user's pick.
func (m *MultiChoice) Reveal(chosen int) {
	m.Revealed = true
	m.ChosenIndex = chosen
}

// View renders the multiple-choice component.
func (m MultiChoice) View() string {
	questionStyle := lipgloss.NewStyle().Foreground(theme.Text).Bold(true)
	s := questionStyle.Render(m.Question) + "\n\n"

	for i, opt := range m.Options {
		prefix := "  "
		if i == m.Cursor && !m.Revealed {
			prefix = "▸ "
		}

		line := fmt.Sprintf("%s%c)  %s", prefix, 'A'+i, opt)

		var style lipgloss.Style
		switch {
		case m.Revealed && i == m.CorrectIndex:
			style = theme.Correct
			line += "  ✓"
		case m.Revealed && i == m.ChosenIndex:
			style = theme.Incorrect
			line += "  ✗"
		case m.Revealed:
			style = lipgloss.NewStyle().Foreground(theme.TextDim)
		case i == m.Cursor:
			style = theme.Selected
		default:
			style = theme.Unselected
		}
		s += style.Render(line) + "\n"
	}

	return s
}

// IsCorrect returns true if the user chose the correct answer.
func (m MultiChoice) IsCorrect() bool {
	return m.Revealed && m.ChosenIndex == m.CorrectIndex
}

func choose(idx int) tea.Cmd {
	return func() tea.Msg { return ChoiceMsg{Index: idx} }
}

// optionKey maps 1-9 to option indices.
func optionKey(key string) (int, bool) {
	if len(key) != 1 || key[0] < '1' || key[0] > '9' {
		return 0, false
	}
	return int(key[0] - '1'), true
}
