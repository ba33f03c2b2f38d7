package cache

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"unitconv/internal/conversion/metrics"
	"unitconv/internal/conversion/ports"
	"unitconv/pkg/platform/circuit"
	"unitconv/pkg/platform/sentinel"
)

const defaultProbeInterval = 5 * time.Second

// Resilient routes to primary while it is healthy and to an in-memory
// fallback while the breaker is open. An open breaker still lets one call
// per probe interval reach primary so recovery can close it.
type Resilient struct {
	primary       ports.Cache
	fallback      ports.Cache
	breaker       *circuit.Breaker
	logger        *slog.Logger
	metrics       *metrics.Metrics
	probeInterval time.Duration
	now           func() time.Time

	mu        sync.Mutex
	lastProbe time.Time
}

type ResilientOption func(*Resilient)

func WithLogger(logger *slog.Logger) ResilientOption {
	return func(r *Resilient) { r.logger = logger }
}

func WithMetrics(m *metrics.Metrics) ResilientOption {
	return func(r *Resilient) { r.metrics = m }
}

func WithProbeInterval(d time.Duration) ResilientOption {
	return func(r *Resilient) { r.probeInterval = d }
}

// NewResilient wraps primary with breaker and fallback.
func NewResilient(primary, fallback ports.Cache, breaker *circuit.Breaker, opts ...ResilientOption) *Resilient {
	r := &Resilient{
		primary:       primary,
		fallback:      fallback,
		breaker:       breaker,
		logger:        slog.Default(),
		probeInterval: defaultProbeInterval,
		now:           time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Resilient) Get(ctx context.Context, key string) (string, error) {
	if !r.tryPrimary() {
		return r.fallback.Get(ctx, key)
	}
	v, err := r.primary.Get(ctx, key)
	if err == nil || errors.Is(err, sentinel.ErrNotFound) {
		if r.recordSuccess(ctx) {
			return v, err
		}
		return r.fallback.Get(ctx, key)
	}
	r.recordFailure(ctx, err)
	return r.fallback.Get(ctx, key)
}

// Set writes to primary when allowed. The fallback is written whenever it
// may be read next: the breaker is open or the primary write failed.
func (r *Resilient) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	if !r.tryPrimary() {
		return r.fallback.Set(ctx, key, value, ttl)
	}
	if err := r.primary.Set(ctx, key, value, ttl); err != nil {
		r.recordFailure(ctx, err)
		return r.fallback.Set(ctx, key, value, ttl)
	}
	if !r.recordSuccess(ctx) {
		return r.fallback.Set(ctx, key, value, ttl)
	}
	return nil
}

func (r *Resilient) tryPrimary() bool {
	if !r.breaker.IsOpen() {
		return true
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	now := r.now()
	if now.Sub(r.lastProbe) >= r.probeInterval {
		r.lastProbe = now
		return true
	}
	return false
}

func (r *Resilient) recordSuccess(ctx context.Context) bool {
	usePrimary, change := r.breaker.RecordSuccess()
	if change.Closed {
		r.logger.InfoContext(ctx, "cache circuit closed, using primary", "breaker", r.breaker.Name())
		r.metrics.SetBreakerOpen(false)
	}
	return usePrimary
}

func (r *Resilient) recordFailure(ctx context.Context, err error) {
	_, change := r.breaker.RecordFailure()
	if change.Opened {
		r.logger.WarnContext(ctx, "cache circuit opened, using in-memory fallback",
			"breaker", r.breaker.Name(),
			"error", err,
		)
		r.metrics.SetBreakerOpen(true)
		r.mu.Lock()
		r.lastProbe = r.now()
		r.mu.Unlock()
		return
	}
	r.logger.DebugContext(ctx, "cache primary failed", "error", err)
}
