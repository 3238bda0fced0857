package layout

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/cyberguard/internal/ui/theme"
)

const (
	MinWidth  = 80
	MinHeight = 24

	HeaderHeight = 2
	FooterHeight = 2

	CompactWidthThreshold  = 100
	CompactHeightThreshold = 30
)

// KeyHint represents a key binding hint shown in the footer.
type KeyHint struct {
	Key         string
	Description string
}

// IsCompactWidth returns true if the terminal width is in compact range.
func IsCompactWidth(width int) bool {
	return width < CompactWidthThreshold
}

// IsCompactHeight returns true if the terminal height is in compact range.
func IsCompactHeight(height int) bool {
	return height < CompactHeightThreshold
}

// IsTooSmall returns true if the terminal is below minimum size.
func IsTooSmall(width, height int) bool {
	return width < MinWidth || height < MinHeight
}

// ContentHeight returns the available height for screen content.
func ContentHeight(totalHeight int) int {
	return max(totalHeight-HeaderHeight-FooterHeight, 0)
}

// RenderMinSizeMessage renders the "terminal too small" message.
func RenderMinSizeMessage(width, height int) string {
	body := fmt.Sprintf("Window too small for CyberGuard.\n\nNeed %d x %d, have %d x %d.",
		MinWidth, MinHeight, width, height)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		theme.Warn.Render(body))
}

// RenderHeader renders the top bar: brand, screen title and the transport
// badge, over a rule line.
func RenderHeader(title string, secure bool, width int) string {
	brand := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true).
		Render("◆ CyberGuard")
	badge := StatusBadge(secure)

	inner := max(width-4, 0)
	side := max(lipgloss.Width(brand), lipgloss.Width(badge))
	mid := max(inner-2*side, 0)

	row := lipgloss.JoinHorizontal(lipgloss.Top,
		lipgloss.NewStyle().Width(side).Render(brand),
		lipgloss.PlaceHorizontal(mid, lipgloss.Center, theme.Subtitle.Render(title)),
		lipgloss.NewStyle().Width(side).Align(lipgloss.Right).Render(badge),
	)

	return theme.Header.
		Width(width).
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(theme.Border).
		Render(row)
}

// GlobalHints are the keys handled by the app shell on every screen.
var GlobalHints = []KeyHint{
	{Key: "t", Description: "Theme"},
	{Key: "d", Description: "Scan"},
}

// RenderFooter renders screen hints on the left and GlobalHints on the
// right. The right side is dropped when both do not fit.
func RenderFooter(hints []KeyHint, width int) string {
	left := joinHints(hints)
	right := joinHints(GlobalHints)

	inner := max(width-4, 0)
	row := left
	if gap := inner - lipgloss.Width(left) - lipgloss.Width(right); gap >= 2 {
		row = left + strings.Repeat(" ", gap) + right
	}

	return theme.Footer.
		Width(width).
		Border(lipgloss.NormalBorder(), true, false, false, false).
		BorderForeground(theme.Border).
		Render(row)
}

func joinHints(hints []KeyHint) string {
	parts := make([]string, 0, len(hints))
	for _, h := range hints {
		parts = append(parts, theme.Label.Render(h.Key)+" "+theme.Hint.Render(h.Description))
	}
	return strings.Join(parts, "  ")
}

// RenderFrame composes the full frame: header + content + footer.
func RenderFrame(header, content, footer string, width, height int) string {
	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)

	contentHeight := max(height-headerHeight-footerHeight, 0)

	styledContent := lipgloss.NewStyle().
		Width(width).
		Height(contentHeight).
		Render(content)

	return header + "\n" + styledContent + "\n" + footer
}

// StatusBadge renders the transport indicator shown in the header.
func StatusBadge(secure bool) string {
	if secure {
		return lipgloss.NewStyle().Foreground(theme.Success).Render("● Secure")
	}
	return lipgloss.NewStyle().Foreground(theme.Warning).Render("● Unencrypted")
}
