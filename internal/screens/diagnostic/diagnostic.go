package diagnostic

import (
	"context"
	"fmt"
	"image/color"
	"strings"

	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/cyberguard/internal/diagnostic"
	"github.com/abhisek/cyberguard/internal/screen"
	"github.com/abhisek/cyberguard/internal/ui/layout"
	"github.com/abhisek/cyberguard/internal/ui/theme"
)

// Runner produces one diagnostic result. *diagnostic.Collector satisfies it.
type Runner interface {
	Run(ctx context.Context, in diagnostic.RunInput) (diagnostic.Snapshot, []diagnostic.Suggestion)

	// Loading reports whether a run, including its minimum visible
	// duration, is still in progress.
	Loading() bool
}

// resultMsg carries a finished run back to the screen that started it.
type resultMsg struct {
	seq         int
	snapshot    diagnostic.Snapshot
	suggestions []diagnostic.Suggestion
}

// DiagnosticScreen runs the collector and renders the report.
type DiagnosticScreen struct {
	runner  Runner
	secure  bool
	spinner spinner.Model

	// seq tags each run so a stale result is dropped after a re-scan.
	seq int
	// pending covers the gap between dispatching a run and the runner
	// reporting Loading.
	pending     bool
	cancel      context.CancelFunc
	snapshot    diagnostic.Snapshot
	suggestions []diagnostic.Suggestion
}

var _ screen.Screen = (*DiagnosticScreen)(nil)
var _ screen.KeyHintProvider = (*DiagnosticScreen)(nil)
var _ screen.Closer = (*DiagnosticScreen)(nil)

// New creates a diagnostic screen. secure describes the transport the host
// uses to reach the lookup endpoint.
func New(runner Runner, secure bool) *DiagnosticScreen {
	return &DiagnosticScreen{
		runner: runner,
		secure: secure,
		spinner: spinner.New(
			spinner.WithSpinner(spinner.Dot),
			spinner.WithStyle(lipgloss.NewStyle().Foreground(theme.Primary)),
		),
	}
}

func (d *DiagnosticScreen) Init() tea.Cmd {
	return d.start()
}

func (d *DiagnosticScreen) Title() string {
	return "Security Diagnostic"
}

func (d *DiagnosticScreen) KeyHints() []layout.KeyHint {
	if d.Loading() {
		return []layout.KeyHint{{Key: "Esc", Description: "Back"}}
	}
	return []layout.KeyHint{
		{Key: "r", Description: "Re-scan"},
		{Key: "Esc", Description: "Back"},
	}
}

// Loading reports whether a run is in flight.
func (d *DiagnosticScreen) Loading() bool {
	return d.pending || d.runner.Loading()
}

// Close cancels the run in flight, if any.
func (d *DiagnosticScreen) Close() {
	if d.cancel != nil {
		d.cancel()
		d.cancel = nil
	}
}

func (d *DiagnosticScreen) start() tea.Cmd {
	d.Close()
	ctx, cancel := context.WithCancel(context.Background())
	d.cancel = cancel

	d.seq++
	d.pending = true
	seq, runner, in := d.seq, d.runner, diagnostic.RunInput{SecureTransport: d.secure}
	run := func() tea.Msg {
		snap, suggestions := runner.Run(ctx, in)
		return resultMsg{seq: seq, snapshot: snap, suggestions: suggestions}
	}
	return tea.Batch(d.spinner.Tick, run)
}

func (d *DiagnosticScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case resultMsg:
		if msg.seq != d.seq {
			return d, nil
		}
		d.pending = false
		d.Close()
		d.snapshot = msg.snapshot
		d.suggestions = msg.suggestions
		return d, nil

	case spinner.TickMsg:
		if !d.Loading() {
			return d, nil
		}
		var cmd tea.Cmd
		d.spinner, cmd = d.spinner.Update(msg)
		return d, cmd

	case tea.KeyMsg:
		if msg.String() == "r" && !d.Loading() {
			return d, d.start()
		}
	}
	return d, nil
}

func (d *DiagnosticScreen) View(width, height int) string {
	if d.Loading() {
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
			d.spinner.View()+" "+theme.Body.Render("Analyzing network fingerprint..."))
	}

	cw := min(width-4, 96)
	half := (cw - 2) / 2
	if layout.IsCompactWidth(width) {
		half = cw
	}

	network := theme.Card.Width(half).Render(renderFacet("Network Exposure", []field{
		{"Public IP", d.snapshot.IP},
		{"ISP", d.snapshot.ISP},
		{"Location", d.snapshot.Location},
		{"Connection", d.snapshot.ConnectionType},
		{"Downlink", d.snapshot.Downlink},
		{"Latency", d.snapshot.RTT},
	}))
	device := theme.Card.Width(half).Render(renderFacet("Device Fingerprint", []field{
		{"Agent", d.snapshot.UserAgent},
		{"Platform", d.snapshot.Platform},
		{"CPU Cores", fmt.Sprintf("%d", d.snapshot.Cores)},
		{"Memory", d.snapshot.Memory},
	}))

	var facets string
	if layout.IsCompactWidth(width) {
		facets = lipgloss.JoinVertical(lipgloss.Left, network, device)
	} else {
		facets = lipgloss.JoinHorizontal(lipgloss.Top, network, "  ", device)
	}

	var b strings.Builder
	b.WriteString(facets)
	b.WriteString("\n\n")
	b.WriteString(theme.Label.Render("Recommendations"))
	b.WriteString("\n\n")
	for _, s := range d.suggestions {
		b.WriteString(renderSuggestion(s, cw))
		b.WriteString("\n")
	}

	return lipgloss.NewStyle().Padding(1, 2).Render(b.String())
}

type field struct {
	label string
	value string
}

func renderFacet(title string, fields []field) string {
	var b strings.Builder
	b.WriteString(theme.Label.Render(title))
	b.WriteString("\n\n")
	for _, f := range fields {
		b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Width(12).Render(f.label))
		b.WriteString(theme.Body.Render(f.value))
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func renderSuggestion(s diagnostic.Suggestion, width int) string {
	c := severityColor(s.Severity)
	marker := lipgloss.NewStyle().Foreground(c).Bold(true).Render("▌ " + s.Title)
	text := lipgloss.NewStyle().Foreground(theme.TextDim).Width(width - 2).PaddingLeft(2).Render(s.Text)
	return marker + "\n" + text
}

func severityColor(s diagnostic.Severity) color.Color {
	switch s {
	case diagnostic.SeverityWarning:
		return theme.Warning
	case diagnostic.SeveritySuccess:
		return theme.Success
	default:
		return theme.Secondary
	}
}
