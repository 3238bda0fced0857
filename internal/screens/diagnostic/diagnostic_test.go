package diagnostic

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/cyberguard/internal/diagnostic"
)

type stubRunner struct {
	snap  diagnostic.Snapshot
	calls int
	in    diagnostic.RunInput
	busy  bool
}

func (s *stubRunner) Loading() bool { return s.busy }

func (s *stubRunner) Run(_ context.Context, in diagnostic.RunInput) (diagnostic.Snapshot, []diagnostic.Suggestion) {
	s.calls++
	s.in = in
	return s.snap, diagnostic.Suggest(s.snap, in.SecureTransport)
}

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func testSnapshot() diagnostic.Snapshot {
	return diagnostic.Snapshot{
		IP:             "203.0.113.5",
		ISP:            "Example Telecom",
		Location:       "Pune, India",
		ConnectionType: diagnostic.DirectConnection,
		Downlink:       diagnostic.NotAvailable,
		RTT:            diagnostic.NotAvailable,
		UserAgent:      "Go/1.25.6",
		Platform:       "linux/amd64",
		Cores:          8,
		Memory:         "16 GB",
	}
}

// runOnce executes the screen's pending run and delivers its result.
func runOnce(t *testing.T, d *DiagnosticScreen, runner *stubRunner) {
	t.Helper()
	in := diagnostic.RunInput{SecureTransport: d.secure}
	snap, suggestions := runner.Run(context.Background(), in)
	d.Update(resultMsg{seq: d.seq, snapshot: snap, suggestions: suggestions})
}

func TestDiagnosticScreen_LoadingThenReport(t *testing.T) {
	runner := &stubRunner{snap: testSnapshot()}
	d := New(runner, false)

	if cmd := d.Init(); cmd == nil {
		t.Fatal("Init should start a run")
	}
	if !d.Loading() {
		t.Fatal("expected loading after Init")
	}
	if !strings.Contains(d.View(100, 30), "Analyzing") {
		t.Error("loading view should show progress text")
	}

	runOnce(t, d, runner)

	if d.Loading() {
		t.Fatal("expected loading to end")
	}
	view := d.View(120, 40)
	for _, want := range []string{"203.0.113.5", "Pune, India", "16 GB",
		diagnostic.TitleIPExposed, diagnostic.TitleHardware, diagnostic.TitleUnencrypted} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
	if runner.in.SecureTransport {
		t.Error("runner should receive the insecure transport flag")
	}
}

func TestDiagnosticScreen_StaleResultDropped(t *testing.T) {
	runner := &stubRunner{snap: testSnapshot()}
	d := New(runner, true)
	d.Init()

	d.Update(resultMsg{seq: d.seq - 1, snapshot: diagnostic.Snapshot{IP: "stale"}})
	if !d.Loading() {
		t.Error("stale result should not end loading")
	}
}

func TestDiagnosticScreen_Rescan(t *testing.T) {
	runner := &stubRunner{snap: testSnapshot()}
	d := New(runner, true)
	d.Init()

	if _, cmd := d.Update(keyPress('r')); cmd != nil {
		t.Error("re-scan should be ignored while loading")
	}

	runOnce(t, d, runner)
	first := d.seq

	_, cmd := d.Update(keyPress('r'))
	if cmd == nil {
		t.Fatal("expected re-scan command")
	}
	if d.seq != first+1 || !d.Loading() {
		t.Error("re-scan should start a new tagged run")
	}
}

func TestDiagnosticScreen_KeyHints(t *testing.T) {
	d := New(&stubRunner{}, true)
	d.Init()
	if len(d.KeyHints()) != 1 {
		t.Errorf("loading hints = %d, want 1", len(d.KeyHints()))
	}
}

func TestDiagnosticScreen_FollowsRunnerLoading(t *testing.T) {
	runner := &stubRunner{snap: testSnapshot()}
	d := New(runner, true)
	d.Init()
	runOnce(t, d, runner)

	// The runner is still holding its minimum loading time.
	runner.busy = true
	if !d.Loading() {
		t.Fatal("screen should report loading while the runner does")
	}
	if !strings.Contains(d.View(100, 30), "Analyzing") {
		t.Error("spinner should stay up while the runner is loading")
	}
	if _, cmd := d.Update(keyPress('r')); cmd != nil {
		t.Error("re-scan should wait for the runner")
	}

	runner.busy = false
	if _, cmd := d.Update(keyPress('r')); cmd == nil {
		t.Error("re-scan should start once the runner is idle")
	}
}

// ctxRunner hands each run's context to the test and blocks until it ends.
type ctxRunner struct {
	started chan context.Context
}

func (r *ctxRunner) Loading() bool { return false }

func (r *ctxRunner) Run(ctx context.Context, _ diagnostic.RunInput) (diagnostic.Snapshot, []diagnostic.Suggestion) {
	r.started <- ctx
	<-ctx.Done()
	return diagnostic.Snapshot{}, nil
}

// dispatch runs every command of a batch in the background.
func dispatch(cmd tea.Cmd) {
	batch, ok := cmd().(tea.BatchMsg)
	if !ok {
		return
	}
	for _, c := range batch {
		go c()
	}
}

func waitCtx(t *testing.T, ch chan context.Context) context.Context {
	t.Helper()
	select {
	case ctx := <-ch:
		return ctx
	case <-time.After(2 * time.Second):
		t.Fatal("run was not started")
		return nil
	}
}

func waitDone(t *testing.T, ctx context.Context) {
	t.Helper()
	select {
	case <-ctx.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("run context was not cancelled")
	}
}

func TestDiagnosticScreen_CloseCancelsRun(t *testing.T) {
	runner := &ctxRunner{started: make(chan context.Context, 1)}
	d := New(runner, true)
	dispatch(d.Init())

	ctx := waitCtx(t, runner.started)
	d.Close()
	waitDone(t, ctx)
}

func TestDiagnosticScreen_RescanGetsFreshContext(t *testing.T) {
	runner := &ctxRunner{started: make(chan context.Context, 2)}
	d := New(runner, true)
	dispatch(d.Init())
	first := waitCtx(t, runner.started)

	d.Update(resultMsg{seq: d.seq})
	waitDone(t, first)

	_, cmd := d.Update(keyPress('r'))
	if cmd == nil {
		t.Fatal("expected re-scan command")
	}
	dispatch(cmd)
	second := waitCtx(t, runner.started)
	if second.Err() != nil {
		t.Error("new run should not start cancelled")
	}

	d.Close()
	waitDone(t, second)
}
