package poller

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/preston-bernstein/f1-dashboard-service/internal/logging"
	"github.com/preston-bernstein/f1-dashboard-service/internal/metrics"
)

const (
	defaultInterval = 5 * time.Minute
	// maxFailures is how many refreshes in a row may fail before /ready flips.
	maxFailures = 3
)

// RefreshFunc re-fetches the dashboard for the current selection.
type RefreshFunc func(ctx context.Context) error

// Poller re-runs a RefreshFunc on a fixed interval and tracks its health.
type Poller struct {
	refresh  RefreshFunc
	logger   *slog.Logger
	metrics  *metrics.Recorder
	interval time.Duration
	now      func() time.Time

	startOnce sync.Once
	stopOnce  sync.Once
	done      chan struct{}
	exited    chan struct{}

	statusMu sync.RWMutex
	status   Status
}

// Status describes the recent health of the refresh loop.
type Status struct {
	Cycles              int
	ConsecutiveFailures int
	LastError           string
	LastAttempt         time.Time
	LastSuccess         time.Time
}

// IsReady reports a past success with fewer than maxFailures failures since.
func (s Status) IsReady() bool {
	return !s.LastSuccess.IsZero() && s.ConsecutiveFailures < maxFailures
}

func New(refresh RefreshFunc, logger *slog.Logger, recorder *metrics.Recorder, interval time.Duration) *Poller {
	if interval <= 0 {
		interval = defaultInterval
	}
	return &Poller{
		refresh:  refresh,
		logger:   logger,
		metrics:  recorder,
		interval: interval,
		now:      time.Now,
		done:     make(chan struct{}),
		exited:   make(chan struct{}),
	}
}

func (p *Poller) Interval() time.Duration {
	return p.interval
}

// Start refreshes once immediately, then on every tick until ctx ends or
// Stop is called. Later calls are no-ops.
func (p *Poller) Start(ctx context.Context) {
	p.startOnce.Do(func() {
		go p.loop(ctx)
	})
}

func (p *Poller) loop(ctx context.Context) {
	defer close(p.exited)
	logging.Info(p.logger, "poller started", slog.Int64(logging.FieldDurationMS, p.interval.Milliseconds()))
	defer logging.Info(p.logger, "poller stopped")

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	p.refreshOnce(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-p.done:
			return
		case <-ticker.C:
			p.refreshOnce(ctx)
		}
	}
}

// Stop ends the loop and waits for an in-flight refresh to return, bounded
// by ctx. Stopping a poller that never started returns immediately.
func (p *Poller) Stop(ctx context.Context) error {
	p.stopOnce.Do(func() { close(p.done) })

	started := true
	p.startOnce.Do(func() { started = false })
	if !started {
		return nil
	}
	select {
	case <-p.exited:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (p *Poller) refreshOnce(ctx context.Context) {
	start := p.now()
	p.update(func(s *Status) {
		s.Cycles++
		s.LastAttempt = start
	})

	began := time.Now()
	var err error
	if p.refresh != nil {
		err = p.refresh(ctx)
	}
	elapsed := time.Since(began)
	p.metrics.RecordPollerCycle(elapsed, err)

	if err != nil {
		failures := 0
		p.update(func(s *Status) {
			s.ConsecutiveFailures++
			s.LastError = err.Error()
			failures = s.ConsecutiveFailures
		})
		logging.Error(p.logger, "poller refresh failed", err,
			slog.Int("consecutive_failures", failures),
			slog.Int64(logging.FieldDurationMS, elapsed.Milliseconds()),
		)
		return
	}

	p.update(func(s *Status) {
		s.ConsecutiveFailures = 0
		s.LastError = ""
		s.LastSuccess = start
	})
	logging.Info(p.logger, "poller refreshed dashboard", slog.Int64(logging.FieldDurationMS, elapsed.Milliseconds()))
}

func (p *Poller) update(fn func(*Status)) {
	p.statusMu.Lock()
	defer p.statusMu.Unlock()
	fn(&p.status)
}

// Status returns a copy of the loop's recent health.
func (p *Poller) Status() Status {
	p.statusMu.RLock()
	defer p.statusMu.RUnlock()
	return p.status
}
