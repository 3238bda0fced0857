package cmd

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/abhisek/cyberguard/internal/diagnostic"
	"github.com/abhisek/cyberguard/internal/store"
	"github.com/abhisek/cyberguard/internal/ui/theme"
)

type stubPrefs struct {
	theme string
	err   error
}

func (p stubPrefs) Get(context.Context, string) (string, error) { return p.theme, p.err }
func (p stubPrefs) Set(context.Context, string, string) error { return nil }
func (p stubPrefs) Theme(context.Context) (string, error) { return p.theme, p.err }
func (p stubPrefs) SetTheme(context.Context, string) error { return nil }

func TestStartTheme(t *testing.T) {
	tests := []struct {
		name       string
		prefs      stubPrefs
		configured string
		explicit   bool
		want       theme.Mode
	}{
		{"saved wins over config", stubPrefs{theme: "light"}, "dark", false, theme.Light},
		{"flag wins over saved", stubPrefs{theme: "light"}, "dark", true, theme.Dark},
		{"nothing saved", stubPrefs{err: store.ErrNotFound}, "light", false, theme.Light},
		{"store error", stubPrefs{err: errors.New("locked")}, "dark", false, theme.Dark},
		{"garbage saved", stubPrefs{theme: "neon"}, "light", false, theme.Light},
		{"garbage config", stubPrefs{err: store.ErrNotFound}, "neon", false, theme.Dark},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := startTheme(context.Background(), zap.NewNop(), tt.prefs, tt.configured, tt.explicit)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPrintAudit(t *testing.T) {
	var buf bytes.Buffer
	printAudit(&buf, diagnostic.Result{
		Snapshot: diagnostic.Snapshot{
			IP:       diagnostic.BlockedIP,
			ISP:      diagnostic.BlockedISP,
			Location: diagnostic.BlockedLocation,
			Cores:    8,
		},
		Suggestions: []diagnostic.Suggestion{
			{Severity: diagnostic.SeveritySuccess, Title: "Privacy Masking Active", Text: "masked", Icon: "🛡"},
		},
	})

	out := buf.String()
	assert.Contains(t, out, "Network Exposure")
	assert.Contains(t, out, "VPN/Firewall Active")
	assert.Contains(t, out, "Privacy Masking Active")
	assert.Contains(t, out, "[success]")
}

func TestQuestionsValidate(t *testing.T) {
	dir := t.TempDir()

	short := filepath.Join(dir, "short.json")
	require.NoError(t, os.WriteFile(short, []byte(`[
	  {"id": 1, "question": "Q?", "options": ["a", "b", "c", "d"], "answer": 0, "explanation": "because"}
	]`), 0o644))

	broken := filepath.Join(dir, "broken.json")
	require.NoError(t, os.WriteFile(broken, []byte(`{"not": "a list"}`), 0o644))

	tests := []struct {
		name    string
		args    []string
		wantErr bool
	}{
		{"built-in", nil, false},
		{"too few questions", []string{short}, true},
		{"schema violation", []string{broken}, true},
		{"missing file", []string{filepath.Join(dir, "nope.json")}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			questionsValidateCmd.SetOut(&out)
			err := questionsValidateCmd.RunE(questionsValidateCmd, tt.args)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Contains(t, out.String(), "OK")
		})
	}
}
