package safety

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/cyberguard/internal/content"
)

func TestSafetyScreen_View(t *testing.T) {
	c := content.Default()
	s := New(c.Rules, c.Checklist)

	view := s.View(120, 40)
	for _, want := range []string{"ZERO-TRUST", "Stealth Checklist", c.Checklist[0]} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestSafetyScreen_Tick(t *testing.T) {
	s := New(nil, []string{"one", "two"})

	s.Update(tea.KeyPressMsg{Code: tea.KeySpace, Text: " "})
	s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if s.Done() != 2 {
		t.Fatalf("Done = %d, want 2", s.Done())
	}
	if !strings.Contains(s.View(80, 24), "all done") {
		t.Error("expected all done label")
	}

	s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if s.Done() != 1 {
		t.Errorf("Done after untick = %d, want 1", s.Done())
	}
}
