package diagnostic

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPLookup_MapsFields(t *testing.T) {
	tests := []struct {
		name string
		body string
		want NetworkInfo
	}{
		{
			name: "complete",
			body: `{"ip":"203.0.113.5","org":"Example Telecom","city":"Pune","country_name":"India","asn":"AS64500"}`,
			want: NetworkInfo{IP: "203.0.113.5", ISP: "Example Telecom", Location: "Pune, India"},
		},
		{
			name: "missing city",
			body: `{"ip":"203.0.113.5","org":"Example Telecom","country_name":"India"}`,
			want: NetworkInfo{IP: "203.0.113.5", ISP: "Example Telecom", Location: UnknownLocation},
		},
		{
			name: "missing org",
			body: `{"ip":"2001:db8::1","city":"Pune","country_name":"India"}`,
			want: NetworkInfo{IP: "2001:db8::1", ISP: UnknownISP, Location: "Pune, India"},
		},
		{
			name: "error payload",
			body: `{"error":true,"reason":"RateLimited"}`,
			want: NetworkInfo{IP: UnavailableIP, ISP: UnknownISP, Location: UnknownLocation},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			got, err := NewHTTPLookup(srv.URL).Lookup(context.Background())
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestHTTPLookup_SendsHeaders(t *testing.T) {
	var gotUA, gotAccept, gotMethod string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		gotAccept = r.Header.Get("Accept")
		gotMethod = r.Method
		_, _ = w.Write([]byte(`{"ip":"203.0.113.5"}`))
	}))
	defer srv.Close()

	ua := UserAgent("1.2.3")
	_, err := NewHTTPLookup(srv.URL, WithUserAgent(ua), WithHTTPClient(srv.Client())).Lookup(context.Background())
	require.NoError(t, err)
	assert.Equal(t, http.MethodGet, gotMethod)
	assert.Equal(t, "application/json", gotAccept)
	assert.Equal(t, ua, gotUA)
	assert.True(t, strings.HasPrefix(gotUA, "CyberGuard/1.2.3 "))
}

func TestHTTPLookup_Errors(t *testing.T) {
	t.Run("status", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusForbidden)
		}))
		defer srv.Close()

		_, err := NewHTTPLookup(srv.URL).Lookup(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "HTTP 403")
	})

	t.Run("bad url", func(t *testing.T) {
		_, err := NewHTTPLookup("://nope").Lookup(context.Background())
		require.Error(t, err)
	})

	t.Run("cancelled", func(t *testing.T) {
		srv := hangingServer(t)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := NewHTTPLookup(srv.URL).Lookup(ctx)
		require.Error(t, err)
		assert.ErrorIs(t, err, context.Canceled)
	})
}
