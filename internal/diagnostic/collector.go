package diagnostic

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	DefaultLookupTimeout = 2000 * time.Millisecond
	DefaultMinLoading    = 800 * time.Millisecond
)

// RunInput carries per-run host state.
type RunInput struct {
	// SecureTransport is true when the host reaches the network over TLS.
	SecureTransport bool
}

// Result is the output of one diagnostic run.
type Result struct {
	Snapshot    Snapshot     `json:"snapshot"`
	Suggestions []Suggestion `json:"suggestions"`
}

// Collector gathers a Snapshot under a fixed time budget. Run never fails:
// lookup problems degrade to sentinel values.
type Collector struct {
	env        Environment
	lookup     Lookup
	timeout    time.Duration
	minLoading time.Duration
	logger     *zap.Logger
	now        func() time.Time
	loading    atomic.Bool
}

// CollectorOption configures a Collector.
type CollectorOption func(*Collector)

// WithTimeout sets the lookup deadline. Values outside (0, 2s] fall back to
// DefaultLookupTimeout.
func WithTimeout(d time.Duration) CollectorOption {
	return func(c *Collector) {
		c.timeout = d
	}
}

// WithMinLoading sets the minimum time Loading stays true. Zero disables it.
func WithMinLoading(d time.Duration) CollectorOption {
	return func(c *Collector) {
		c.minLoading = d
	}
}

// WithLogger sets the collector logger.
func WithLogger(l *zap.Logger) CollectorOption {
	return func(c *Collector) {
		c.logger = l
	}
}

// NewCollector creates a collector. A nil lookup always yields the blocked
// network facet.
func NewCollector(env Environment, lookup Lookup, opts ...CollectorOption) *Collector {
	c := &Collector{
		env:        env,
		lookup:     lookup,
		timeout:    DefaultLookupTimeout,
		minLoading: DefaultMinLoading,
		logger:     zap.NewNop(),
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.timeout <= 0 || c.timeout > DefaultLookupTimeout {
		c.logger.Warn("lookup timeout out of range, using default",
			zap.Duration("requested", c.timeout), zap.Duration("timeout", DefaultLookupTimeout))
		c.timeout = DefaultLookupTimeout
	}
	return c
}

// Loading reports whether a run is in progress.
func (c *Collector) Loading() bool {
	return c.loading.Load()
}

// Run collects a fresh snapshot and its suggestions. It returns within the
// lookup timeout plus the minimum loading time even if the lookup hangs.
func (c *Collector) Run(ctx context.Context, in RunInput) (Snapshot, []Suggestion) {
	c.loading.Store(true)
	defer c.loading.Store(false)

	start := c.now()
	runID := uuid.New().String()
	logger := c.logger.With(zap.String("run_id", runID))

	local := c.env.Local()
	network := c.resolveNetwork(ctx, logger)

	snap := Snapshot{
		RunID:          runID,
		CollectedAt:    start,
		IP:             network.IP,
		ISP:            network.ISP,
		Location:       network.Location,
		ConnectionType: connectionType(local.Connection),
		Downlink:       downlink(local.Connection),
		RTT:            rtt(local.Connection),
		UserAgent:      condenseUserAgent(local.UserAgent),
		Platform:       local.Platform,
		Cores:          max(local.Cores, 0),
		Memory:         memoryClass(local.MemoryGB),
	}
	suggestions := Suggest(snap, in.SecureTransport)

	logger.Info("diagnostic complete",
		zap.Bool("masked", snap.Masked()),
		zap.Bool("secure", in.SecureTransport),
		zap.Int("suggestions", len(suggestions)),
		zap.Duration("elapsed", c.now().Sub(start)),
	)

	c.holdLoading(ctx, start)
	return snap, suggestions
}

// Collect is Run packaged as a Result.
func (c *Collector) Collect(ctx context.Context, in RunInput) Result {
	snap, suggestions := c.Run(ctx, in)
	return Result{Snapshot: snap, Suggestions: suggestions}
}

type lookupResult struct {
	info NetworkInfo
	err  error
}

// resolveNetwork races the lookup against the deadline. The lookup receives
// the deadline context so a well-behaved implementation aborts its request;
// one that ignores it is abandoned.
func (c *Collector) resolveNetwork(ctx context.Context, logger *zap.Logger) NetworkInfo {
	if c.lookup == nil {
		return BlockedNetwork()
	}

	lctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	done := make(chan lookupResult, 1)
	go func() {
		info, err := c.lookup.Lookup(lctx)
		done <- lookupResult{info: info, err: err}
	}()

	select {
	case r := <-done:
		if r.err != nil {
			reason := "error"
			if errors.Is(r.err, context.DeadlineExceeded) {
				reason = "timeout"
			}
			logger.Debug("lookup failed, using fallback", zap.String("reason", reason), zap.Error(r.err))
			return BlockedNetwork()
		}
		return r.info
	case <-lctx.Done():
		logger.Debug("lookup abandoned, using fallback", zap.Error(lctx.Err()))
		return BlockedNetwork()
	}
}

func (c *Collector) holdLoading(ctx context.Context, start time.Time) {
	remaining := c.minLoading - c.now().Sub(start)
	if remaining <= 0 {
		return
	}
	t := time.NewTimer(remaining)
	defer t.Stop()
	select {
	case <-t.C:
	case <-ctx.Done():
	}
}
