package layout

import (
	"strings"
	"testing"

	"charm.land/lipgloss/v2"
)

func TestContentHeight(t *testing.T) {
	if got := ContentHeight(30); got != 26 {
		t.Errorf("ContentHeight(30) = %d, want 26", got)
	}
	if got := ContentHeight(4); got != 0 {
		t.Errorf("ContentHeight(4) = %d, want 0", got)
	}
}

func TestIsTooSmall(t *testing.T) {
	if !IsTooSmall(79, 30) {
		t.Error("79 columns should be too small")
	}
	if IsTooSmall(MinWidth, MinHeight) {
		t.Error("minimum size should fit")
	}
}

func TestRenderHeader(t *testing.T) {
	secure := RenderHeader("Quiz", true, 100)
	if !strings.Contains(secure, "CyberGuard") || !strings.Contains(secure, "Quiz") {
		t.Errorf("header missing brand or title:\n%s", secure)
	}
	if !strings.Contains(secure, "Secure") {
		t.Errorf("secure header should show Secure:\n%s", secure)
	}

	insecure := RenderHeader("Quiz", false, 100)
	if !strings.Contains(insecure, "Unencrypted") {
		t.Errorf("insecure header should show Unencrypted:\n%s", insecure)
	}
}

func TestRenderFooter(t *testing.T) {
	out := RenderFooter([]KeyHint{{"esc", "Back"}, {"t", "Theme"}}, 80)
	for _, want := range []string{"esc", "Back", "Theme", "Scan"} {
		if !strings.Contains(out, want) {
			t.Errorf("footer missing %q", want)
		}
	}

	narrow := RenderFooter([]KeyHint{{"enter", "Select a very long option"}, {"esc", "Back to the previous screen"}}, 40)
	if strings.Contains(narrow, "Scan") {
		t.Error("global hints should be dropped when they do not fit")
	}
}

func TestHeaderFooterHeights(t *testing.T) {
	if h := lipgloss.Height(RenderHeader("Home", true, 100)); h != HeaderHeight {
		t.Errorf("header height = %d, want %d", h, HeaderHeight)
	}
	if h := lipgloss.Height(RenderFooter([]KeyHint{{"esc", "Back"}}, 100)); h != FooterHeight {
		t.Errorf("footer height = %d, want %d", h, FooterHeight)
	}
}

func TestRenderFrameHeight(t *testing.T) {
	header := RenderHeader("Home", true, 80)
	footer := RenderFooter(nil, 80)
	frame := RenderFrame(header, "body", footer, 80, 30)
	if h := lipgloss.Height(frame); h != 30 {
		t.Errorf("frame height = %d, want 30", h)
	}
}
