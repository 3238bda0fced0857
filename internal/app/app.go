package app

import (
	"context"
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"go.uber.org/zap"

	"github.com/abhisek/cyberguard/internal/content"
	"github.com/abhisek/cyberguard/internal/quiz"
	"github.com/abhisek/cyberguard/internal/router"
	"github.com/abhisek/cyberguard/internal/screen"
	diagscreen "github.com/abhisek/cyberguard/internal/screens/diagnostic"
	"github.com/abhisek/cyberguard/internal/screens/home"
	"github.com/abhisek/cyberguard/internal/screens/welcome"
	"github.com/abhisek/cyberguard/internal/store"
	"github.com/abhisek/cyberguard/internal/ui/layout"
	"github.com/abhisek/cyberguard/internal/ui/theme"
)

// Options holds the dependencies the screens need.
type Options struct {
	Catalog  *content.Catalog
	Insights *content.Insights
	Engine   *quiz.Engine
	Runner   diagscreen.Runner

	// Prefs persists the theme toggle. May be nil.
	Prefs store.PreferenceRepo

	// Secure is true when the lookup endpoint is reached over TLS.
	Secure bool

	Logger     *zap.Logger
	SkipSplash bool
}

// themeSavedMsg reports the outcome of persisting a theme change.
type themeSavedMsg struct {
	Mode theme.Mode
	Err  error
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	opts   Options
	width  int
	height int
}

// newAppModel creates a new AppModel starting at the splash (or home) screen.
func newAppModel(opts Options) AppModel {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Insights == nil {
		opts.Insights = content.NewInsights(opts.Catalog.Insights, nil)
	}

	homeFactory := func() screen.Screen {
		return home.New(opts.Catalog, opts.Insights, opts.Engine, opts.Runner, opts.Secure)
	}

	var initial screen.Screen
	if opts.SkipSplash {
		initial = homeFactory()
	} else {
		initial = welcome.New(homeFactory)
	}

	return AppModel{
		router: router.New(initial),
		opts:   opts,
	}
}

func (m AppModel) Init() tea.Cmd {
	if active := m.router.Active(); active != nil {
		return active.Init()
	}
	return nil
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case themeSavedMsg:
		if msg.Err != nil {
			m.opts.Logger.Warn("save theme preference", zap.String("theme", string(msg.Mode)), zap.Error(msg.Err))
		}
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.capturingInput() {
			break
		}
		switch msg.String() {
		case "esc":
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return m, nil
		case "t":
			return m, m.toggleTheme()
		case "d":
			if m.onSplash() {
				break
			}
			if _, ok := m.router.Active().(*diagscreen.DiagnosticScreen); ok {
				return m, nil
			}
			s := diagscreen.New(m.opts.Runner, m.opts.Secure)
			return m, func() tea.Msg { return router.PushScreenMsg{Screen: s} }
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) capturingInput() bool {
	c, ok := m.router.Active().(screen.InputCapturer)
	return ok && c.CapturingInput()
}

func (m AppModel) onSplash() bool {
	_, ok := m.router.Active().(*welcome.WelcomeScreen)
	return ok
}

func (m AppModel) toggleTheme() tea.Cmd {
	mode := theme.Toggle()
	m.opts.Logger.Debug("theme changed", zap.String("theme", string(mode)))
	prefs := m.opts.Prefs
	if prefs == nil {
		return nil
	}
	return func() tea.Msg {
		return themeSavedMsg{Mode: mode, Err: prefs.SetTheme(context.Background(), string(mode))}
	}
}

func (m AppModel) View() tea.View {
	v := tea.NewView(m.render())
	v.AltScreen = true
	return v
}

// render lays out header, active screen and footer for the current size.
func (m AppModel) render() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	if layout.IsTooSmall(m.width, m.height) {
		return layout.RenderMinSizeMessage(m.width, m.height)
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	header := layout.RenderHeader(title, m.opts.Secure, m.width)
	footer := layout.RenderFooter(m.footerHints(active), m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := max(m.height-headerHeight-footerHeight, 0)

	content := m.router.View(m.width, contentHeight)
	return layout.RenderFrame(header, content, footer, m.width, m.height)
}

func (m AppModel) footerHints(active screen.Screen) []layout.KeyHint {
	if p, ok := active.(screen.KeyHintProvider); ok {
		if hints := p.KeyHints(); len(hints) > 0 {
			return hints
		}
	}
	if m.router.Depth() > 1 {
		return []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	p := tea.NewProgram(newAppModel(opts))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
