package diagnostic

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"go.uber.org/zap"
)

// maxLookupBody caps how much of the lookup response is read.
const maxLookupBody = 64 << 10

// Lookup resolves the public network identity of this host.
type Lookup interface {
	Lookup(ctx context.Context) (NetworkInfo, error)
}

// ipapiResponse is the subset of the ipapi.co JSON payload we use.
type ipapiResponse struct {
	IP          string `json:"ip"`
	Org         string `json:"org"`
	City        string `json:"city"`
	CountryName string `json:"country_name"`
}

// HTTPLookup queries a public IP/geolocation JSON endpoint.
type HTTPLookup struct {
	url       string
	client    *http.Client
	userAgent string
	logger    *zap.Logger
}

// HTTPLookupOption configures an HTTPLookup.
type HTTPLookupOption func(*HTTPLookup)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(c *http.Client) HTTPLookupOption {
	return func(l *HTTPLookup) {
		l.client = c
	}
}

// WithUserAgent sets the User-Agent header sent with the lookup.
func WithUserAgent(ua string) HTTPLookupOption {
	return func(l *HTTPLookup) {
		l.userAgent = ua
	}
}

// WithLookupLogger sets the lookup logger.
func WithLookupLogger(logger *zap.Logger) HTTPLookupOption {
	return func(l *HTTPLookup) {
		l.logger = logger
	}
}

// NewHTTPLookup creates a lookup against url. Deadlines come from the
// caller's context.
func NewHTTPLookup(url string, opts ...HTTPLookupOption) *HTTPLookup {
	l := &HTTPLookup{
		url:    url,
		client: &http.Client{},
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Lookup performs a single GET. Non-2xx responses and undecodable bodies are
// errors; missing fields are mapped to placeholder values.
func (l *HTTPLookup) Lookup(ctx context.Context) (NetworkInfo, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.url, nil)
	if err != nil {
		return NetworkInfo{}, fmt.Errorf("build lookup request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if l.userAgent != "" {
		req.Header.Set("User-Agent", l.userAgent)
	}

	resp, err := l.client.Do(req)
	if err != nil {
		return NetworkInfo{}, fmt.Errorf("lookup request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return NetworkInfo{}, fmt.Errorf("lookup: HTTP %d", resp.StatusCode)
	}

	var body ipapiResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxLookupBody)).Decode(&body); err != nil {
		return NetworkInfo{}, fmt.Errorf("decode lookup response: %w", err)
	}

	l.logger.Debug("lookup resolved", zap.String("url", l.url), zap.Int("status", resp.StatusCode))
	return body.networkInfo(), nil
}

func (r ipapiResponse) networkInfo() NetworkInfo {
	info := NetworkInfo{
		IP:       strings.TrimSpace(r.IP),
		ISP:      strings.TrimSpace(r.Org),
		Location: UnknownLocation,
	}
	if info.IP == "" {
		info.IP = UnavailableIP
	}
	if info.ISP == "" {
		info.ISP = UnknownISP
	}
	city, country := strings.TrimSpace(r.City), strings.TrimSpace(r.CountryName)
	if city != "" && country != "" {
		info.Location = city + ", " + country
	}
	return info
}
