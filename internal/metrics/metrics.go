package metrics

import (
	"sync"
	"time"
)

type providerStats struct {
	calls           int
	errors          int
	breakerOpens    int
	breakerState    string
	lastCallLatency time.Duration
}

type refreshStats struct {
	cycles     int
	errors     int
	staleDrops int
}

// Recorder captures in-memory metrics about provider calls and refreshes and
// forwards them to OpenTelemetry when configured.
type Recorder struct {
	mu      sync.Mutex
	stats   map[string]*providerStats
	refresh refreshStats
	otel    *otelInstruments
}

func NewRecorder() *Recorder {
	return newRecorder(nil)
}

func newRecorder(otel *otelInstruments) *Recorder {
	return &Recorder{
		stats: make(map[string]*providerStats),
		otel:  otel,
	}
}

// RecordProviderAttempt counts one backend call for an endpoint and stores its latency.
func (r *Recorder) RecordProviderAttempt(provider, endpoint string, duration time.Duration, err error) {
	if r == nil {
		return
	}

	r.mu.Lock()
	stats := r.ensureStats(provider)
	stats.calls++
	stats.lastCallLatency = duration
	if err != nil {
		stats.errors++
	}
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordProviderAttempt(provider, endpoint, duration, err)
	}
}

// RecordBreakerState tracks circuit breaker transitions.
func (r *Recorder) RecordBreakerState(provider, from, to string) {
	if r == nil {
		return
	}

	r.mu.Lock()
	stats := r.ensureStats(provider)
	stats.breakerState = to
	if to == "open" {
		stats.breakerOpens++
	}
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordBreakerState(provider, from, to)
	}
}

// RecordRefresh tracks one dashboard refresh. stale marks a result that was
// discarded because a newer refresh had already landed.
func (r *Recorder) RecordRefresh(duration time.Duration, err error, stale bool) {
	if r == nil {
		return
	}

	r.mu.Lock()
	r.refresh.cycles++
	if err != nil {
		r.refresh.errors++
	}
	if stale {
		r.refresh.staleDrops++
	}
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordRefresh(duration, err, stale)
	}
}

// ProviderCalls returns the total attempts recorded for a provider.
func (r *Recorder) ProviderCalls(provider string) int {
	return r.Snapshot(provider).Calls
}

// ProviderErrors returns the total failed attempts recorded for a provider.
func (r *Recorder) ProviderErrors(provider string) int {
	return r.Snapshot(provider).Errors
}

// BreakerOpens returns how many times the provider's breaker opened.
func (r *Recorder) BreakerOpens(provider string) int {
	return r.Snapshot(provider).BreakerOpens
}

// LastCallLatency returns the last recorded latency for a provider call.
func (r *Recorder) LastCallLatency(provider string) time.Duration {
	return r.Snapshot(provider).LastCallLatency
}

// Snapshot returns a copy of the current stats for the provider.
type Snapshot struct {
	Calls           int
	Errors          int
	BreakerOpens    int
	BreakerState    string
	LastCallLatency time.Duration
}

func (r *Recorder) Snapshot(provider string) Snapshot {
	if r == nil {
		return Snapshot{}
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	stats, ok := r.stats[provider]
	if !ok || stats == nil {
		return Snapshot{}
	}
	return Snapshot{
		Calls:           stats.calls,
		Errors:          stats.errors,
		BreakerOpens:    stats.breakerOpens,
		BreakerState:    stats.breakerState,
		LastCallLatency: stats.lastCallLatency,
	}
}

// RefreshSnapshot is a copy of the refresh counters.
type RefreshSnapshot struct {
	Cycles     int
	Errors     int
	StaleDrops int
}

// Refreshes returns the refresh counters.
func (r *Recorder) Refreshes() RefreshSnapshot {
	if r == nil {
		return RefreshSnapshot{}
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return RefreshSnapshot{
		Cycles:     r.refresh.cycles,
		Errors:     r.refresh.errors,
		StaleDrops: r.refresh.staleDrops,
	}
}

// RecordHTTPRequest tracks basic HTTP metrics.
func (r *Recorder) RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	if r == nil || r.otel == nil {
		return
	}
	r.otel.recordHTTPRequest(method, path, status, duration)
}

// RecordPollerCycle tracks poller cycles and errors.
func (r *Recorder) RecordPollerCycle(duration time.Duration, err error) {
	if r == nil || r.otel == nil {
		return
	}
	r.otel.recordPoller(duration, err)
}

// ensureStats must be called with r.mu held.
func (r *Recorder) ensureStats(provider string) *providerStats {
	stats, ok := r.stats[provider]
	if !ok {
		stats = &providerStats{}
		r.stats[provider] = stats
	}
	return stats
}
