package diagnostic

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubEnv struct {
	info LocalInfo
}

func (s stubEnv) Local() LocalInfo { return s.info }

type stubLookup struct {
	info  NetworkInfo
	err   error
	block chan struct{} // when set, Lookup ignores ctx and waits on it
	calls atomic.Int32
}

func (s *stubLookup) Lookup(ctx context.Context) (NetworkInfo, error) {
	s.calls.Add(1)
	if s.block != nil {
		<-s.block
	}
	return s.info, s.err
}

func testEnv() stubEnv {
	return stubEnv{info: LocalInfo{
		UserAgent: "CyberGuard/1.0 (linux; amd64) Go/1.25.6",
		Platform:  "linux/amd64",
		Cores:     8,
		MemoryGB:  16,
	}}
}

func titles(list []Suggestion) []string {
	out := make([]string, len(list))
	for i, s := range list {
		out[i] = s.Title
	}
	return out
}

func hangingServer(t *testing.T) *httptest.Server {
	t.Helper()
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-release:
		}
	}))
	t.Cleanup(func() {
		close(release)
		srv.Close()
	})
	return srv
}

func TestRun_SuccessfulLookup(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ip":"203.0.113.5","org":"Example Telecom","city":"Pune","country_name":"India"}`))
	}))
	defer srv.Close()

	c := NewCollector(testEnv(), NewHTTPLookup(srv.URL), WithMinLoading(0))
	snap, suggestions := c.Run(context.Background(), RunInput{SecureTransport: true})

	assert.Equal(t, "203.0.113.5", snap.IP)
	assert.Equal(t, "Example Telecom", snap.ISP)
	assert.Equal(t, "Pune, India", snap.Location)
	assert.False(t, snap.Masked())
	require.NotEmpty(t, suggestions)
	assert.Equal(t, SeverityWarning, suggestions[0].Severity)
	assert.Equal(t, TitleIPExposed, suggestions[0].Title)
	assert.Equal(t, []string{TitleIPExposed, TitleHardware}, titles(suggestions))
}

func TestRun_LocalFacet(t *testing.T) {
	env := testEnv()
	env.info.Connection = ConnectionHints{EffectiveType: "4g", DownlinkMbps: 10.5, RTTMillis: 50}

	c := NewCollector(env, nil, WithMinLoading(0))
	snap, _ := c.Run(context.Background(), RunInput{SecureTransport: true})

	assert.Equal(t, "Go/1.25.6", snap.UserAgent)
	assert.Equal(t, "linux/amd64", snap.Platform)
	assert.Equal(t, 8, snap.Cores)
	assert.Equal(t, "16 GB", snap.Memory)
	assert.Equal(t, "4G", snap.ConnectionType)
	assert.Equal(t, "10.5 Mbps", snap.Downlink)
	assert.Equal(t, "50 ms", snap.RTT)
	assert.NotEmpty(t, snap.RunID)
}

func TestRun_NoConnectionHints(t *testing.T) {
	env := testEnv()
	env.info.MemoryGB = 0
	env.info.Cores = -3

	c := NewCollector(env, nil, WithMinLoading(0))
	snap, suggestions := c.Run(context.Background(), RunInput{SecureTransport: true})

	assert.Equal(t, DirectConnection, snap.ConnectionType)
	assert.Equal(t, NotAvailable, snap.Downlink)
	assert.Equal(t, NotAvailable, snap.RTT)
	assert.Equal(t, StandardMemory, snap.Memory)
	assert.Equal(t, 0, snap.Cores)
	assert.Equal(t, []string{TitleIdentityMasked}, titles(suggestions))
}

func TestRun_HangingServerFallsBack(t *testing.T) {
	srv := hangingServer(t)

	c := NewCollector(testEnv(), NewHTTPLookup(srv.URL),
		WithTimeout(100*time.Millisecond), WithMinLoading(0))

	start := time.Now()
	snap, suggestions := c.Run(context.Background(), RunInput{SecureTransport: true})
	elapsed := time.Since(start)

	assert.Less(t, elapsed, 2*time.Second)
	assert.Equal(t, BlockedIP, snap.IP)
	assert.Equal(t, BlockedISP, snap.ISP)
	assert.Equal(t, BlockedLocation, snap.Location)
	assert.Contains(t, titles(suggestions), TitleIdentityMasked)
	assert.Equal(t, SeveritySuccess, suggestions[0].Severity)
}

func TestRun_LookupIgnoringContextIsAbandoned(t *testing.T) {
	block := make(chan struct{})
	defer close(block)
	lookup := &stubLookup{info: NetworkInfo{IP: "198.51.100.1"}, block: block}

	c := NewCollector(testEnv(), lookup, WithTimeout(50*time.Millisecond), WithMinLoading(0))

	done := make(chan Snapshot, 1)
	go func() {
		snap, _ := c.Run(context.Background(), RunInput{SecureTransport: true})
		done <- snap
	}()

	select {
	case snap := <-done:
		assert.Equal(t, BlockedIP, snap.IP)
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not complete while lookup hung")
	}
}

func TestRun_FailuresFallBack(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"server error", func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "boom", http.StatusInternalServerError)
		}},
		{"rate limited", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
		}},
		{"malformed json", func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"ip": "203.0.113.5",`))
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			c := NewCollector(testEnv(), NewHTTPLookup(srv.URL), WithMinLoading(0))
			snap, suggestions := c.Run(context.Background(), RunInput{SecureTransport: true})

			assert.Equal(t, BlockedNetwork(), NetworkInfo{IP: snap.IP, ISP: snap.ISP, Location: snap.Location})
			assert.Equal(t, TitleIdentityMasked, suggestions[0].Title)
		})
	}
}

func TestRun_UnreachableHostFallsBack(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c := NewCollector(testEnv(), NewHTTPLookup(url), WithMinLoading(0))
	snap, _ := c.Run(context.Background(), RunInput{SecureTransport: true})
	assert.Equal(t, BlockedIP, snap.IP)
}

func TestRun_InsecureTransportAlwaysWarns(t *testing.T) {
	lookups := map[string]Lookup{
		"success": &stubLookup{info: NetworkInfo{IP: "203.0.113.5", ISP: "Example Telecom", Location: "Pune, India"}},
		"failure": &stubLookup{err: errors.New("dial tcp: connection refused")},
		"none":    nil,
	}

	for name, lookup := range lookups {
		t.Run(name, func(t *testing.T) {
			c := NewCollector(testEnv(), lookup, WithMinLoading(0))
			_, suggestions := c.Run(context.Background(), RunInput{SecureTransport: false})

			last := suggestions[len(suggestions)-1]
			assert.Equal(t, TitleUnencrypted, last.Title)
			assert.Equal(t, SeverityWarning, last.Severity)
		})
	}
}

func TestRun_SingleAttempt(t *testing.T) {
	lookup := &stubLookup{err: errors.New("reset by peer")}
	c := NewCollector(testEnv(), lookup, WithMinLoading(0))
	c.Run(context.Background(), RunInput{})
	assert.Equal(t, int32(1), lookup.calls.Load())
}

func TestRun_LoadingFlagAndMinimumDuration(t *testing.T) {
	c := NewCollector(testEnv(), &stubLookup{info: NetworkInfo{IP: "203.0.113.5"}},
		WithMinLoading(150*time.Millisecond))
	assert.False(t, c.Loading())

	done := make(chan struct{})
	start := time.Now()
	go func() {
		c.Run(context.Background(), RunInput{SecureTransport: true})
		close(done)
	}()

	assert.Eventually(t, c.Loading, time.Second, 5*time.Millisecond)
	<-done
	assert.GreaterOrEqual(t, time.Since(start), 150*time.Millisecond)
	assert.False(t, c.Loading())
}

func TestRun_CancelledContextSkipsMinimumDuration(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := NewCollector(testEnv(), &stubLookup{info: NetworkInfo{IP: "203.0.113.5"}},
		WithMinLoading(10*time.Second))

	start := time.Now()
	c.Run(ctx, RunInput{SecureTransport: true})
	assert.Less(t, time.Since(start), time.Second)
}

func TestCollect(t *testing.T) {
	c := NewCollector(testEnv(), nil, WithMinLoading(0))
	res := c.Collect(context.Background(), RunInput{SecureTransport: false})
	assert.Equal(t, BlockedIP, res.Snapshot.IP)
	assert.Equal(t, []string{TitleIdentityMasked, TitleHardware, TitleUnencrypted}, titles(res.Suggestions))
}

func TestNewCollector_TimeoutCappedAtDefault(t *testing.T) {
	tests := []struct {
		name string
		in   time.Duration
		want time.Duration
	}{
		{"shorter kept", 300 * time.Millisecond, 300 * time.Millisecond},
		{"at cap kept", DefaultLookupTimeout, DefaultLookupTimeout},
		{"longer capped", 30 * time.Second, DefaultLookupTimeout},
		{"zero replaced", 0, DefaultLookupTimeout},
		{"negative replaced", -time.Second, DefaultLookupTimeout},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewCollector(testEnv(), nil, WithTimeout(tt.in))
			assert.Equal(t, tt.want, c.timeout)
		})
	}
}
