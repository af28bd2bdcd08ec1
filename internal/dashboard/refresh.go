package dashboard

import (
	"cmp"
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/samber/lo"

	"github.com/preston-bernstein/f1-dashboard-service/internal/domain/monitor"
	"github.com/preston-bernstein/f1-dashboard-service/internal/domain/predictions"
	"github.com/preston-bernstein/f1-dashboard-service/internal/domain/races"
	"github.com/preston-bernstein/f1-dashboard-service/internal/domain/standings"
	"github.com/preston-bernstein/f1-dashboard-service/internal/logging"
	"github.com/preston-bernstein/f1-dashboard-service/internal/providers"
	"github.com/preston-bernstein/f1-dashboard-service/internal/reconcile"
)

// fanout runs fetches concurrently and collects the errors worth reporting.
type fanout struct {
	wg   sync.WaitGroup
	mu   sync.Mutex
	errs []error
}

func (f *fanout) Go(fn func() error) {
	f.wg.Add(1)
	go func() {
		defer f.wg.Done()
		if err := fn(); err != nil {
			f.mu.Lock()
			f.errs = append(f.errs, err)
			f.mu.Unlock()
		}
	}()
}

func (f *fanout) Wait() error {
	f.wg.Wait()
	return errors.Join(f.errs...)
}

// fetchOr calls fn and swaps any failure for empty. The returned error is
// nil for not-found responses, which only mean the backend has no data yet.
func fetchOr[T any](ctx context.Context, s *Service, endpoint string, empty T, fn func(context.Context) (T, error)) (T, error) {
	v, err := fn(ctx)
	if err == nil {
		return v, nil
	}
	level := slog.LevelWarn
	var reported error = &EndpointError{Endpoint: endpoint, Err: err}
	if statusErr, ok := providers.AsStatusError(err); ok && statusErr.NotFound() {
		level = slog.LevelDebug
		reported = nil
	}
	s.log(ctx).Log(ctx, level, "dashboard fetch fell back to empty",
		slog.String(logging.FieldEndpoint, endpoint),
		logging.Err(err),
	)
	return empty, reported
}

// load fetches sel under a fresh generation and stores the result unless a
// newer load for the same selection has already landed.
func (s *Service) load(ctx context.Context, sel Selection) (Snapshot, error) {
	gen := s.generation.Add(1)
	idx := s.refreshIndex.Load()
	start := time.Now()

	snap, err := s.fetch(ctx, sel)
	snap.RefreshIndex = idx
	snap.Generation = gen
	snap.UpdatedAt = s.now().UTC()

	if ctxErr := ctx.Err(); ctxErr != nil {
		s.metrics.RecordRefresh(time.Since(start), ctxErr, false)
		return snap, ctxErr
	}

	stored := s.store.Put(snap.Selection, gen, snap)
	if stored && sel != snap.Selection {
		s.store.Put(sel, gen, snap)
	}
	s.metrics.RecordRefresh(time.Since(start), err, !stored)

	logger := s.log(ctx)
	if !stored {
		logger.Debug("dashboard refresh superseded",
			slog.Uint64(logging.FieldGeneration, gen),
			logging.Selection(snap.Selection.Season, snap.Selection.Round, snap.Selection.SessionType),
		)
		newer, _, _ := s.store.Get(snap.Selection)
		return newer, nil
	}

	s.promote(snap.Selection, gen)
	logger.Info("dashboard refreshed",
		slog.Uint64(logging.FieldRefreshIdx, idx),
		slog.Uint64(logging.FieldGeneration, gen),
		logging.Selection(snap.Selection.Season, snap.Selection.Round, snap.Selection.SessionType),
		slog.Int64(logging.FieldDurationMS, time.Since(start).Milliseconds()),
	)
	return snap, err
}

// fetch resolves the selection, then fans out one goroutine per endpoint.
func (s *Service) fetch(ctx context.Context, sel Selection) (Snapshot, error) {
	var errs []error

	listed, seasonsErr := s.provider.FetchSeasons(ctx)
	if seasonsErr != nil {
		s.log(ctx).Warn("seasons unavailable, using defaults", logging.Err(seasonsErr))
		errs = append(errs, &EndpointError{Endpoint: providers.EndpointSeasons, Err: seasonsErr})
	}
	seasonList, season := reconcile.SelectSeasons(listed, seasonsErr, cmp.Or(sel.Season, s.opts.DefaultSeason))

	metas, err := fetchOr(ctx, s, providers.EndpointRaces, []races.RaceMeta{}, func(ctx context.Context) ([]races.RaceMeta, error) {
		return s.provider.FetchRaces(ctx, season)
	})
	errs = append(errs, err)

	selected, manualRound := pickRace(metas, sel.Round, s.opts.DefaultRound)
	round := manualRound
	if selected != nil {
		round = selected.Round.GetOr(manualRound)
	}

	snap := Snapshot{
		Seasons:    seasonList,
		Races:      lo.Map(metas, func(m races.RaceMeta, _ int) races.RaceOption { return races.NewRaceOption(m) }),
		ActiveRace: s.recon.ActiveRace(selected, season, manualRound),
	}

	var (
		raceResults    []predictions.SessionResultRow
		sessions       []races.SessionMeta
		sessionType    string
		sessionResults []predictions.SessionResultRow
		weather        races.WeatherPayload
		field          []predictions.FieldEntry
		liveDrivers    []standings.DriverStanding
		liveTeams      []standings.ConstructorStanding
		teamStandings  []standings.TeamStanding
		summary        *predictions.Summary
		mon            *monitor.Payload
		pace           map[string][]int
	)

	var f fanout
	f.Go(func() (err error) {
		raceResults, err = fetchOr(ctx, s, providers.EndpointResults, []predictions.SessionResultRow{}, func(ctx context.Context) ([]predictions.SessionResultRow, error) {
			return s.provider.FetchResults(ctx, season, round, races.SessionRace)
		})
		return err
	})
	f.Go(func() error {
		var err error
		sessions, err = fetchOr(ctx, s, providers.EndpointSessions, []races.SessionMeta{}, func(ctx context.Context) ([]races.SessionMeta, error) {
			return s.provider.FetchSessions(ctx, season, round)
		})
		sessionType = sel.SessionType
		if sessionType == "" {
			sessionType = reconcile.DefaultSessionType(sessions, races.SessionRace)
		}
		var resultsErr error
		sessionResults, resultsErr = fetchOr(ctx, s, providers.EndpointResults, []predictions.SessionResultRow{}, func(ctx context.Context) ([]predictions.SessionResultRow, error) {
			return s.provider.FetchResults(ctx, season, round, sessionType)
		})
		return errors.Join(err, resultsErr)
	})
	f.Go(func() (err error) {
		weather, err = fetchOr(ctx, s, providers.EndpointWeather, races.WeatherPayload{}, func(ctx context.Context) (races.WeatherPayload, error) {
			return s.provider.FetchWeather(ctx, season, round, races.SessionRace)
		})
		return err
	})
	f.Go(func() (err error) {
		field, err = fetchOr(ctx, s, providers.EndpointPredictions, []predictions.FieldEntry{}, func(ctx context.Context) ([]predictions.FieldEntry, error) {
			return s.provider.FetchPredictions(ctx, season, round)
		})
		return err
	})
	f.Go(func() (err error) {
		liveDrivers, err = fetchOr(ctx, s, providers.EndpointDrivers, []standings.DriverStanding{}, func(ctx context.Context) ([]standings.DriverStanding, error) {
			return s.provider.FetchDriverStandings(ctx, season, round)
		})
		return err
	})
	f.Go(func() (err error) {
		liveTeams, err = fetchOr(ctx, s, providers.EndpointConstructors, []standings.ConstructorStanding{}, func(ctx context.Context) ([]standings.ConstructorStanding, error) {
			return s.provider.FetchConstructorStandings(ctx, season, round)
		})
		return err
	})
	f.Go(func() (err error) {
		teamStandings, err = fetchOr(ctx, s, providers.EndpointTeams, []standings.TeamStanding{}, func(ctx context.Context) ([]standings.TeamStanding, error) {
			return s.provider.FetchTeamStandings(ctx, season, round)
		})
		return err
	})
	f.Go(func() (err error) {
		summary, err = fetchOr(ctx, s, providers.EndpointSummary, (*predictions.Summary)(nil), func(ctx context.Context) (*predictions.Summary, error) {
			v, err := s.provider.FetchSummary(ctx, season)
			if err != nil {
				return nil, err
			}
			return &v, nil
		})
		return err
	})
	f.Go(func() (err error) {
		mon, err = fetchOr(ctx, s, providers.EndpointMonitor, (*monitor.Payload)(nil), func(ctx context.Context) (*monitor.Payload, error) {
			v, err := s.provider.FetchMonitor(ctx, season)
			if err != nil {
				return nil, err
			}
			return &v, nil
		})
		return err
	})
	f.Go(func() (err error) {
		pace, err = fetchOr(ctx, s, providers.EndpointPace, map[string][]int{}, func(ctx context.Context) (map[string][]int, error) {
			return s.provider.FetchDriverPace(ctx, season)
		})
		return err
	})
	errs = append(errs, f.Wait())

	preds := reconcile.MapField(season, round, field)
	snap.Selection = Selection{Season: season, Round: round, SessionType: sessionType}
	snap.Weather = reconcile.NormalizeWeather(weather)
	snap.Sessions = nonNil(reconcile.VisibleSessions(season, sessions))
	snap.RaceResults = nonNil(raceResults)
	snap.SessionResults = nonNil(sessionResults)
	snap.Predictions = nonNil(preds)
	snap.TopPredictions = nonNil(reconcile.TopPredictions(preds, raceResults))
	snap.Summary = summary
	snap.Monitor = mon
	snap.Pipeline = reconcile.PipelineStatus(summary, mon)
	snap.DriverStandings = nonNil(s.recon.DriverRows(liveDrivers))
	snap.ConstructorStandings = nonNil(s.recon.ConstructorRows(season, liveTeams))
	snap.TeamStandings = nonNil(teamStandings)
	snap.DriverPace = pace
	if snap.DriverPace == nil {
		snap.DriverPace = map[string][]int{}
	}
	return snap, errors.Join(errs...)
}

// pickRace returns the meta for round, or the first race when round is 0.
// The manual round tracks the pick and falls back to defaultRound.
func pickRace(metas []races.RaceMeta, round, defaultRound int) (*races.RaceMeta, int) {
	if round > 0 {
		if m, ok := lo.Find(metas, func(m races.RaceMeta) bool { return m.Round.GetOrZero() == round }); ok {
			return &m, round
		}
		return nil, round
	}
	if len(metas) == 0 {
		return nil, defaultRound
	}
	first := metas[0]
	return &first, first.Round.GetOr(defaultRound)
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
