package report

import (
	"strings"
	"testing"

	"github.com/abhisek/cyberguard/internal/content"
)

func TestReportScreen_View(t *testing.T) {
	c := content.Default()
	r := New(c.ReportChannels, c.Helplines)

	if r.Title() != "Report Incident" {
		t.Errorf("Title = %q", r.Title())
	}
	view := r.View(120, 40)
	for _, want := range []string{"1930", "1098", "cybercrime.gov.in", "Financial Fraud", "ASSETS & BANKING"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}
