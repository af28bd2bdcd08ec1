// Package dashboard owns the fetched dashboard state: the current selection,
// the refresh index, and the reconciled snapshots built from the provider.
package dashboard

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/preston-bernstein/f1-dashboard-service/internal/archive"
	"github.com/preston-bernstein/f1-dashboard-service/internal/domain/predictions"
	"github.com/preston-bernstein/f1-dashboard-service/internal/logging"
	"github.com/preston-bernstein/f1-dashboard-service/internal/metrics"
	"github.com/preston-bernstein/f1-dashboard-service/internal/providers"
	"github.com/preston-bernstein/f1-dashboard-service/internal/reconcile"
	"github.com/preston-bernstein/f1-dashboard-service/internal/store"
)

// snapshotLimit bounds how many selections stay cached.
const snapshotLimit = 64

// Options tunes selection defaults and the scenario catalog source.
type Options struct {
	DefaultSeason int
	DefaultRound  int
	RaceDataPath  string
}

// Service builds and caches dashboard snapshots.
type Service struct {
	provider providers.DataProvider
	recon    *reconcile.Reconciler
	store    *store.SnapshotStore[Selection, Snapshot]
	logger   *slog.Logger
	metrics  *metrics.Recorder
	opts     Options
	now      func() time.Time

	refreshIndex atomic.Uint64
	generation   atomic.Uint64

	currentMu  sync.RWMutex
	current    Selection
	currentGen uint64

	raceDataOnce sync.Once
	raceData     predictions.RaceData
}

// NewService constructs a Service. A nil archive uses the embedded default.
func NewService(provider providers.DataProvider, a *archive.Archive, logger *slog.Logger, recorder *metrics.Recorder, opts Options) *Service {
	if a == nil {
		a = archive.MustDefault()
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if opts.DefaultRound <= 0 {
		opts.DefaultRound = 1
	}
	return &Service{
		provider: provider,
		recon:    reconcile.New(a),
		store:    store.NewSnapshotStore[Selection, Snapshot](store.WithLimit(snapshotLimit)),
		logger:   logger,
		metrics:  recorder,
		opts:     opts,
		now:      time.Now,
	}
}

// Reconciler exposes the reconciler backing the service.
func (s *Service) Reconciler() *reconcile.Reconciler {
	return s.recon
}

// RefreshIndex returns the number of explicit refreshes so far.
func (s *Service) RefreshIndex() uint64 {
	return s.refreshIndex.Load()
}

// Current returns the most recently loaded selection.
func (s *Service) Current() (Selection, bool) {
	s.currentMu.RLock()
	defer s.currentMu.RUnlock()
	return s.current, s.currentGen > 0
}

// Snapshot returns the cached snapshot for sel. A zero selection means the
// current one.
func (s *Service) Snapshot(sel Selection) (Snapshot, bool) {
	if sel.IsZero() {
		cur, ok := s.Current()
		if !ok {
			return Snapshot{}, false
		}
		sel = cur
	}
	snap, _, ok := s.store.Get(sel)
	return snap, ok
}

// Dashboard serves the cached snapshot for sel, loading it on a miss.
func (s *Service) Dashboard(ctx context.Context, sel Selection) (Snapshot, error) {
	if err := sel.Validate(); err != nil {
		return Snapshot{}, err
	}
	if snap, ok := s.Snapshot(sel); ok {
		return snap, nil
	}
	return s.load(ctx, sel)
}

// Refresh bumps the refresh index and re-fetches the current selection, or
// the defaults when nothing has been loaded yet.
func (s *Service) Refresh(ctx context.Context) (Snapshot, error) {
	s.refreshIndex.Add(1)
	cur, _ := s.Current()
	return s.load(ctx, cur)
}

// Select switches the selection and fetches it.
func (s *Service) Select(ctx context.Context, sel Selection) (Snapshot, error) {
	if err := sel.Validate(); err != nil {
		return Snapshot{}, err
	}
	return s.load(ctx, sel)
}

// promote moves the current selection forward unless a newer load already did.
func (s *Service) promote(sel Selection, gen uint64) {
	s.currentMu.Lock()
	defer s.currentMu.Unlock()
	if gen < s.currentGen {
		return
	}
	s.current = sel
	s.currentGen = gen
}

func (s *Service) log(ctx context.Context) *slog.Logger {
	return logging.FromContext(ctx, s.logger)
}
