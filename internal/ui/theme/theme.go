package theme

import (
	"fmt"
	"image/color"

	"charm.land/lipgloss/v2"
)

// Mode selects a palette.
type Mode string

const (
	Dark  Mode = "dark"
	Light Mode = "light"
)

// ParseMode converts a config or CLI value to a Mode.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case Dark, Light:
		return Mode(s), nil
	}
	return "", fmt.Errorf("unknown theme %q (want dark or light)", s)
}

// Palette is the set of colors a mode uses.
type Palette struct {
	Primary   color.Color
	Secondary color.Color
	Accent    color.Color
	Success   color.Color
	Warning   color.Color
	Error     color.Color
	Text      color.Color
	TextDim   color.Color
	Bg        color.Color
	BgCard    color.Color
	Border    color.Color
}

var palettes = map[Mode]Palette{
	Dark: {
		Primary:   lipgloss.Color("#10B981"), // Emerald
		Secondary: lipgloss.Color("#6366F1"), // Indigo
		Accent:    lipgloss.Color("#F59E0B"), // Amber
		Success:   lipgloss.Color("#22C55E"),
		Warning:   lipgloss.Color("#F59E0B"),
		Error:     lipgloss.Color("#EF4444"),
		Text:      lipgloss.Color("#F1F5F9"),
		TextDim:   lipgloss.Color("#94A3B8"),
		Bg:        lipgloss.Color("#0B1120"),
		BgCard:    lipgloss.Color("#111827"),
		Border:    lipgloss.Color("#1F2937"),
	},
	Light: {
		Primary:   lipgloss.Color("#059669"),
		Secondary: lipgloss.Color("#4F46E5"),
		Accent:    lipgloss.Color("#D97706"),
		Success:   lipgloss.Color("#16A34A"),
		Warning:   lipgloss.Color("#D97706"),
		Error:     lipgloss.Color("#DC2626"),
		Text:      lipgloss.Color("#0F172A"),
		TextDim:   lipgloss.Color("#64748B"),
		Bg:        lipgloss.Color("#F8FAFC"),
		BgCard:    lipgloss.Color("#FFFFFF"),
		Border:    lipgloss.Color("#E2E8F0"),
	},
}

var current Mode

// Color palette, set by Apply.
var (
	Primary   color.Color
	Secondary color.Color
	Accent    color.Color
	Success   color.Color
	Warning   color.Color
	Error     color.Color
	Text      color.Color
	TextDim   color.Color
	Bg        color.Color
	BgCard    color.Color
	Border    color.Color
)

// Typography
var (
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Body     lipgloss.Style
	Hint     lipgloss.Style
	Label    lipgloss.Style
)

// Layout
var (
	Header lipgloss.Style
	Footer lipgloss.Style
	Card   lipgloss.Style
)

// States
var (
	Selected   lipgloss.Style
	Unselected lipgloss.Style
	Correct    lipgloss.Style
	Incorrect  lipgloss.Style
	Warn       lipgloss.Style
)

// Components
var (
	ProgressFilled lipgloss.Style
	ProgressEmpty  lipgloss.Style
	ButtonActive   lipgloss.Style
	ButtonInactive lipgloss.Style
)

func init() {
	Apply(Dark)
}

// Current returns the active mode.
func Current() Mode {
	return current
}

// Toggle switches between dark and light and returns the new mode.
func Toggle() Mode {
	if current == Dark {
		Apply(Light)
	} else {
		Apply(Dark)
	}
	return current
}

// Apply switches every exported color and style to mode m. Unknown modes
// fall back to Dark. Not safe for concurrent use; call from the UI loop.
func Apply(m Mode) {
	p, ok := palettes[m]
	if !ok {
		m, p = Dark, palettes[Dark]
	}
	current = m

	Primary, Secondary, Accent = p.Primary, p.Secondary, p.Accent
	Success, Warning, Error = p.Success, p.Warning, p.Error
	Text, TextDim = p.Text, p.TextDim
	Bg, BgCard, Border = p.Bg, p.BgCard, p.Border

	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary).
		Align(lipgloss.Center)

	Subtitle = lipgloss.NewStyle().
		Foreground(TextDim).
		Align(lipgloss.Center)

	Body = lipgloss.NewStyle().
		Foreground(Text)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)

	Label = lipgloss.NewStyle().
		Foreground(Primary).
		Bold(true)

	Header = lipgloss.NewStyle().
		Background(BgCard).
		Padding(0, 2)

	Footer = lipgloss.NewStyle().
		Background(BgCard).
		Padding(0, 2)

	Card = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(1, 2)

	Selected = lipgloss.NewStyle().
		Foreground(Primary).
		Bold(true)

	Unselected = lipgloss.NewStyle().
		Foreground(Text)

	Correct = lipgloss.NewStyle().
		Foreground(Success).
		Bold(true)

	Incorrect = lipgloss.NewStyle().
		Foreground(Error).
		Bold(true)

	Warn = lipgloss.NewStyle().
		Foreground(Warning).
		Bold(true)

	ProgressFilled = lipgloss.NewStyle().
		Background(Primary)

	ProgressEmpty = lipgloss.NewStyle().
		Background(Border)

	ButtonActive = lipgloss.NewStyle().
		Background(Primary).
		Foreground(Bg).
		Bold(true).
		Padding(0, 2)

	ButtonInactive = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(0, 2)
}
