package dashboard

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/preston-bernstein/f1-dashboard-service/internal/archive"
	"github.com/preston-bernstein/f1-dashboard-service/internal/domain/predictions"
	"github.com/preston-bernstein/f1-dashboard-service/internal/domain/races"
	"github.com/preston-bernstein/f1-dashboard-service/internal/domain/seasons"
	"github.com/preston-bernstein/f1-dashboard-service/internal/metrics"
	"github.com/preston-bernstein/f1-dashboard-service/internal/providers"
	"github.com/preston-bernstein/f1-dashboard-service/internal/testutil"
)

func newTestService(t *testing.T, p providers.DataProvider, opts Options) (*Service, *metrics.Recorder) {
	t.Helper()
	a, err := archive.Default()
	require.NoError(t, err)
	rec := metrics.NewRecorder()
	return NewService(p, a, nil, rec, opts), rec
}

func TestSnapshotsAreStampedWithServiceClock(t *testing.T) {
	svc, _ := newTestService(t, testutil.SampleProvider(), Options{})
	start := testutil.MustParseRFC3339("2025-03-02T15:00:00Z")
	svc.now = testutil.SteppingClock(start, time.Minute)

	first, err := svc.Dashboard(context.Background(), Selection{})
	require.NoError(t, err)
	cached, err := svc.Dashboard(context.Background(), Selection{})
	require.NoError(t, err)
	refreshed, err := svc.Refresh(context.Background())
	require.NoError(t, err)

	assert.Equal(t, start, first.UpdatedAt)
	assert.Equal(t, first.UpdatedAt, cached.UpdatedAt, "cache hits keep their stamp")
	assert.Equal(t, start.Add(time.Minute), refreshed.UpdatedAt)
}

func TestDashboardBuildsFullSnapshot(t *testing.T) {
	p := testutil.SampleProvider()
	svc, rec := newTestService(t, p, Options{})

	snap, err := svc.Dashboard(context.Background(), Selection{})
	require.NoError(t, err)

	assert.Equal(t, Selection{Season: 2025, Round: 1, SessionType: races.SessionRace}, snap.Selection)
	assert.Equal(t, []int{2024, 2025}, snap.Seasons)
	require.Len(t, snap.Races, 2)
	assert.Equal(t, "bahrain-grand-prix", snap.ActiveRace.GrandPrixSlug)
	assert.Equal(t, 57, snap.ActiveRace.Laps, "laps come from the matched calendar entry")

	require.NotNil(t, snap.Weather.Rain)
	assert.Equal(t, 0.2, *snap.Weather.Rain)
	assert.Nil(t, snap.Weather.Humidity)

	assert.Len(t, snap.Sessions, 3)
	assert.Len(t, snap.RaceResults, 2)
	assert.Len(t, snap.SessionResults, 2)

	require.Len(t, snap.TopPredictions, 3)
	top, ok := snap.TopPredictions[0].(predictions.RacePrediction)
	require.True(t, ok)
	assert.Equal(t, "VER", top.DriverCode, "the adjusted probability outranks the raw one")

	assert.Len(t, snap.DriverStandings, 2)
	assert.Equal(t, 1, snap.DriverStandings[0].Rank)
	assert.NotEmpty(t, snap.ConstructorStandings)
	assert.Len(t, snap.TeamStandings, 1)
	require.NotNil(t, snap.Summary)
	assert.Equal(t, "50.0", snap.Pipeline.HitAt1)
	assert.Equal(t, []int{1}, snap.DriverPace["NOR"])
	assert.Equal(t, uint64(1), snap.Generation)

	cur, ok := svc.Current()
	require.True(t, ok)
	assert.Equal(t, snap.Selection, cur)
	assert.Equal(t, 1, rec.Refreshes().Cycles)
}

func TestDashboardServesCachedSnapshot(t *testing.T) {
	p := testutil.SampleProvider()
	svc, _ := newTestService(t, p, Options{})
	ctx := context.Background()

	_, err := svc.Dashboard(ctx, Selection{Season: 2025})
	require.NoError(t, err)
	_, err = svc.Dashboard(ctx, Selection{Season: 2025})
	require.NoError(t, err)
	_, err = svc.Dashboard(ctx, Selection{Season: 2025, Round: 1, SessionType: races.SessionRace})
	require.NoError(t, err)

	assert.Equal(t, 1, p.Calls(providers.EndpointSeasons))
}

func TestSelectHonoursRoundAndSessionType(t *testing.T) {
	p := testutil.SampleProvider()
	svc, _ := newTestService(t, p, Options{})

	snap, err := svc.Select(context.Background(), Selection{Season: 2025, Round: 2, SessionType: races.SessionQualifying})
	require.NoError(t, err)

	assert.Equal(t, 2, snap.Selection.Round)
	assert.Equal(t, "saudi-arabian-grand-prix", snap.ActiveRace.GrandPrixSlug)
	assert.Equal(t, races.SessionQualifying, snap.Selection.SessionType)
	assert.Len(t, snap.SessionResults, 1)
}

func TestSelectRejectsInvalidSelection(t *testing.T) {
	svc, _ := newTestService(t, testutil.SampleProvider(), Options{})

	_, err := svc.Select(context.Background(), Selection{Season: 2025, Round: 31})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Dashboard(context.Background(), Selection{SessionType: "R; drop"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestFailedBackendYieldsEmptySnapshot(t *testing.T) {
	p := testutil.SampleProvider()
	p.Err = errors.New("backend down")
	svc, rec := newTestService(t, p, Options{})

	snap, err := svc.Refresh(context.Background())
	require.Error(t, err, "failures are reported to the caller")

	assert.Equal(t, seasons.DefaultAvailable, snap.Seasons)
	assert.Equal(t, seasons.DefaultSelected, snap.Selection.Season)
	assert.Equal(t, 1, snap.Selection.Round)
	assert.Empty(t, snap.Races)
	assert.Empty(t, snap.RaceResults)
	assert.Empty(t, snap.SessionResults)
	assert.Empty(t, snap.TopPredictions)
	assert.NotNil(t, snap.DriverPace)
	assert.Nil(t, snap.Summary)
	assert.Nil(t, snap.Monitor)
	assert.Equal(t, "--", snap.Pipeline.HitAt1)
	assert.Nil(t, snap.Weather.Rain)

	assert.NotEmpty(t, snap.DriverStandings, "static drivers fill in")
	assert.Equal(t, "bahrain-grand-prix", snap.ActiveRace.TrackID)
	assert.Equal(t, uint64(1), snap.RefreshIndex)
	assert.Equal(t, 1, rec.Refreshes().Errors)
}

func TestEmptySeasonListingFallsBackToDefaults(t *testing.T) {
	p := testutil.SampleProvider()
	p.Seasons = []int{}
	svc, _ := newTestService(t, p, Options{})

	snap, err := svc.Refresh(context.Background())
	require.NoError(t, err)
	assert.Equal(t, seasons.DefaultAvailable, snap.Seasons)
	assert.Equal(t, seasons.DefaultSelected, snap.Selection.Season)
	cur, ok := svc.Current()
	require.True(t, ok)
	assert.Equal(t, seasons.DefaultSelected, cur.Season)
}

func TestNotFoundIsNotReportedAsFailure(t *testing.T) {
	p := testutil.SampleProvider()
	p.Errs = map[string]error{
		providers.EndpointSummary: &providers.StatusError{Provider: "backend", StatusCode: 404},
	}
	svc, _ := newTestService(t, p, Options{})

	snap, err := svc.Refresh(context.Background())
	require.NoError(t, err)
	assert.Nil(t, snap.Summary)
}

func TestRefreshIncrementsIndexAndKeepsSelection(t *testing.T) {
	svc, _ := newTestService(t, testutil.SampleProvider(), Options{})
	ctx := context.Background()

	_, err := svc.Select(ctx, Selection{Season: 2025, Round: 2})
	require.NoError(t, err)

	snap, err := svc.Refresh(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), snap.RefreshIndex)
	assert.Equal(t, 2, snap.Selection.Round)

	snap, err = svc.Refresh(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint64(2), snap.RefreshIndex)
	assert.Equal(t, uint64(2), svc.RefreshIndex())
}

func TestStaleRefreshDoesNotOverwriteNewerSnapshot(t *testing.T) {
	p := testutil.SampleProvider()
	release := make(chan struct{})
	blocked := make(chan struct{})
	var once sync.Once
	var first sync.Once

	// The first seasons call blocks until the second refresh has landed.
	p.Before = func(ctx context.Context, endpoint string) error {
		if endpoint != providers.EndpointSeasons {
			return nil
		}
		isFirst := false
		first.Do(func() { isFirst = true })
		if isFirst {
			once.Do(func() { close(blocked) })
			<-release
		}
		return nil
	}
	svc, rec := newTestService(t, p, Options{})
	ctx := context.Background()
	sel := Selection{Season: 2025, Round: 1, SessionType: races.SessionRace}

	staleDone := make(chan Snapshot, 1)
	go func() {
		snap, _ := svc.Select(ctx, sel)
		staleDone <- snap
	}()
	<-blocked

	fresh, err := svc.Refresh(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint64(2), fresh.Generation)

	close(release)
	select {
	case got := <-staleDone:
		assert.Equal(t, uint64(2), got.Generation, "stale load returns the newer snapshot")
	case <-time.After(2 * time.Second):
		t.Fatal("stale refresh never finished")
	}

	stored, ok := svc.Snapshot(sel)
	require.True(t, ok)
	assert.Equal(t, uint64(2), stored.Generation)
	assert.Equal(t, uint64(1), stored.RefreshIndex)
	assert.Equal(t, 1, rec.Refreshes().StaleDrops)
}

func TestStaleLoadLeavesNoPartialSelectionEntry(t *testing.T) {
	p := testutil.SampleProvider()
	release := make(chan struct{})
	blocked := make(chan struct{})
	var first sync.Once

	p.Before = func(ctx context.Context, endpoint string) error {
		if endpoint != providers.EndpointSeasons {
			return nil
		}
		isFirst := false
		first.Do(func() { isFirst = true })
		if isFirst {
			close(blocked)
			<-release
		}
		return nil
	}
	svc, _ := newTestService(t, p, Options{})
	ctx := context.Background()
	partial := Selection{Season: 2025}

	staleDone := make(chan struct{})
	go func() {
		defer close(staleDone)
		_, _ = svc.Select(ctx, partial)
	}()
	<-blocked

	fresh, err := svc.Refresh(ctx)
	require.NoError(t, err)
	require.Equal(t, Selection{Season: 2025, Round: 1, SessionType: races.SessionRace}, fresh.Selection)

	close(release)
	select {
	case <-staleDone:
	case <-time.After(2 * time.Second):
		t.Fatal("stale load never finished")
	}

	_, _, ok := svc.store.Get(partial)
	assert.False(t, ok, "a superseded load must not be cached under its partial key")
	stored, _, ok := svc.store.Get(fresh.Selection)
	require.True(t, ok)
	assert.Equal(t, fresh.Generation, stored.Generation)
}

func TestSnapshotCacheIsBounded(t *testing.T) {
	svc, _ := newTestService(t, testutil.SampleProvider(), Options{})
	ctx := context.Background()

	for season := 2000; season < 2000+snapshotLimit+10; season++ {
		_, err := svc.Dashboard(ctx, Selection{Season: season, Round: 1, SessionType: races.SessionRace})
		require.NoError(t, err)
	}
	assert.LessOrEqual(t, svc.store.Len(), snapshotLimit)

	_, err := svc.Dashboard(ctx, Selection{Season: 2025, SessionType: "XX"})
	assert.ErrorIs(t, err, ErrInvalidInput, "unknown session codes never reach the cache")
}

func TestOpenBreakerYieldsEmptyData(t *testing.T) {
	p := testutil.SampleProvider()
	p.Err = errors.New("connection refused")
	breaker := providers.NewBreakerProvider(p, providers.BreakerConfig{FailureThreshold: 3, OpenTimeout: time.Hour}, nil, nil)
	svc, _ := newTestService(t, breaker, Options{})
	ctx := context.Background()

	_, err := svc.Refresh(ctx)
	require.Error(t, err)
	callsAfterFirst := p.Calls(providers.EndpointPace)

	snap, err := svc.Refresh(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, providers.ErrCircuitOpen)
	assert.Equal(t, callsAfterFirst, p.Calls(providers.EndpointPace), "open breaker short-circuits upstream")
	assert.Empty(t, snap.RaceResults)
	assert.Empty(t, snap.DriverPace)
}

func TestContextCancellationIsNotStored(t *testing.T) {
	p := testutil.SampleProvider()
	svc, _ := newTestService(t, p, Options{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.Select(ctx, Selection{Season: 2025})
	assert.ErrorIs(t, err, context.Canceled)
	_, ok := svc.Current()
	assert.False(t, ok)
}

func TestPickRace(t *testing.T) {
	metas := []races.RaceMeta{
		testutil.SampleRaceMeta(1, "bahrain-grand-prix", "Bahrain"),
		testutil.SampleRaceMeta(2, "saudi-arabian-grand-prix", "Saudi"),
	}

	sel, round := pickRace(metas, 0, 1)
	require.NotNil(t, sel)
	assert.Equal(t, 1, round)

	sel, round = pickRace(metas, 2, 1)
	require.NotNil(t, sel)
	assert.Equal(t, "saudi-arabian-grand-prix", sel.GrandPrixSlug.GetOrZero())
	assert.Equal(t, 2, round)

	sel, round = pickRace(metas, 9, 1)
	assert.Nil(t, sel)
	assert.Equal(t, 9, round)

	sel, round = pickRace(nil, 0, 4)
	assert.Nil(t, sel)
	assert.Equal(t, 4, round)
}
