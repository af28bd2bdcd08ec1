package providers

import (
	"context"
	"log/slog"
	"time"

	"github.com/preston-bernstein/f1-dashboard-service/internal/domain/monitor"
	"github.com/preston-bernstein/f1-dashboard-service/internal/domain/predictions"
	"github.com/preston-bernstein/f1-dashboard-service/internal/domain/races"
	"github.com/preston-bernstein/f1-dashboard-service/internal/domain/standings"
	"github.com/preston-bernstein/f1-dashboard-service/internal/logging"
	"github.com/preston-bernstein/f1-dashboard-service/internal/metrics"
)

// instrumentedProvider records latency and outcome for every upstream call.
type instrumentedProvider struct {
	inner    DataProvider
	logger   *slog.Logger
	recorder *metrics.Recorder
	name     string
}

// NewInstrumentedProvider wraps inner so each call is timed, counted per
// endpoint, and logged on failure.
func NewInstrumentedProvider(inner DataProvider, logger *slog.Logger, recorder *metrics.Recorder, name string) DataProvider {
	if name == "" {
		name = "backend"
	}
	return &instrumentedProvider{
		inner:    inner,
		logger:   logger,
		recorder: recorder,
		name:     name,
	}
}

func observe[T any](ctx context.Context, p *instrumentedProvider, endpoint string, fn func(DataProvider) (T, error)) (T, error) {
	var zero T
	if p == nil || p.inner == nil {
		return zero, ErrProviderUnavailable
	}

	start := time.Now()
	val, err := fn(p.inner)
	elapsed := time.Since(start)
	p.recorder.RecordProviderAttempt(p.name, endpoint, elapsed, err)

	logger := logging.FromContext(ctx, p.logger)
	if err != nil {
		logCall(ctx, logger, callLevel(err), p.name, endpoint, "provider fetch failed",
			slog.Int64(logging.FieldDurationMS, elapsed.Milliseconds()),
			logging.Err(err),
		)
		return zero, err
	}
	logCall(ctx, logger, slog.LevelDebug, p.name, endpoint, "provider fetch ok",
		slog.Int64(logging.FieldDurationMS, elapsed.Milliseconds()),
	)
	return val, nil
}

func (p *instrumentedProvider) FetchSeasons(ctx context.Context) ([]int, error) {
	return observe(ctx, p, EndpointSeasons, func(d DataProvider) ([]int, error) {
		return d.FetchSeasons(ctx)
	})
}

func (p *instrumentedProvider) FetchRaces(ctx context.Context, season int) ([]races.RaceMeta, error) {
	return observe(ctx, p, EndpointRaces, func(d DataProvider) ([]races.RaceMeta, error) {
		return d.FetchRaces(ctx, season)
	})
}

func (p *instrumentedProvider) FetchResults(ctx context.Context, season, round int, sessionType string) ([]predictions.SessionResultRow, error) {
	return observe(ctx, p, EndpointResults, func(d DataProvider) ([]predictions.SessionResultRow, error) {
		return d.FetchResults(ctx, season, round, sessionType)
	})
}

func (p *instrumentedProvider) FetchSessions(ctx context.Context, season, round int) ([]races.SessionMeta, error) {
	return observe(ctx, p, EndpointSessions, func(d DataProvider) ([]races.SessionMeta, error) {
		return d.FetchSessions(ctx, season, round)
	})
}

func (p *instrumentedProvider) FetchWeather(ctx context.Context, season, round int, sessionType string) (races.WeatherPayload, error) {
	return observe(ctx, p, EndpointWeather, func(d DataProvider) (races.WeatherPayload, error) {
		return d.FetchWeather(ctx, season, round, sessionType)
	})
}

func (p *instrumentedProvider) FetchPredictions(ctx context.Context, season, round int) ([]predictions.FieldEntry, error) {
	return observe(ctx, p, EndpointPredictions, func(d DataProvider) ([]predictions.FieldEntry, error) {
		return d.FetchPredictions(ctx, season, round)
	})
}

func (p *instrumentedProvider) FetchDriverStandings(ctx context.Context, season, round int) ([]standings.DriverStanding, error) {
	return observe(ctx, p, EndpointDrivers, func(d DataProvider) ([]standings.DriverStanding, error) {
		return d.FetchDriverStandings(ctx, season, round)
	})
}

func (p *instrumentedProvider) FetchConstructorStandings(ctx context.Context, season, round int) ([]standings.ConstructorStanding, error) {
	return observe(ctx, p, EndpointConstructors, func(d DataProvider) ([]standings.ConstructorStanding, error) {
		return d.FetchConstructorStandings(ctx, season, round)
	})
}

func (p *instrumentedProvider) FetchTeamStandings(ctx context.Context, season, round int) ([]standings.TeamStanding, error) {
	return observe(ctx, p, EndpointTeams, func(d DataProvider) ([]standings.TeamStanding, error) {
		return d.FetchTeamStandings(ctx, season, round)
	})
}

func (p *instrumentedProvider) FetchSummary(ctx context.Context, season int) (predictions.Summary, error) {
	return observe(ctx, p, EndpointSummary, func(d DataProvider) (predictions.Summary, error) {
		return d.FetchSummary(ctx, season)
	})
}

func (p *instrumentedProvider) FetchMonitor(ctx context.Context, season int) (monitor.Payload, error) {
	return observe(ctx, p, EndpointMonitor, func(d DataProvider) (monitor.Payload, error) {
		return d.FetchMonitor(ctx, season)
	})
}

func (p *instrumentedProvider) FetchDriverPace(ctx context.Context, season int) (map[string][]int, error) {
	return observe(ctx, p, EndpointPace, func(d DataProvider) (map[string][]int, error) {
		return d.FetchDriverPace(ctx, season)
	})
}

func (p *instrumentedProvider) PredictScenario(ctx context.Context, req predictions.ScenarioRequest) (predictions.ScenarioPayload, error) {
	return observe(ctx, p, EndpointScenario, func(d DataProvider) (predictions.ScenarioPayload, error) {
		return d.PredictScenario(ctx, req)
	})
}
