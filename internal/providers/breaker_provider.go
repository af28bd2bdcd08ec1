package providers

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/sony/gobreaker"

	"github.com/preston-bernstein/f1-dashboard-service/internal/domain/monitor"
	"github.com/preston-bernstein/f1-dashboard-service/internal/domain/predictions"
	"github.com/preston-bernstein/f1-dashboard-service/internal/domain/races"
	"github.com/preston-bernstein/f1-dashboard-service/internal/domain/standings"
	"github.com/preston-bernstein/f1-dashboard-service/internal/metrics"
)

const (
	defaultBreakerFailures = 5
	defaultBreakerTimeout  = 30 * time.Second
)

// BreakerConfig tunes the circuit breaker placed in front of a provider.
type BreakerConfig struct {
	Name             string
	FailureThreshold uint32
	OpenTimeout      time.Duration
}

// breakerProvider fails fast while upstream is unhealthy. It never retries:
// a failed call is reported once and the next refresh tries again.
type breakerProvider struct {
	inner  DataProvider
	cb     *gobreaker.CircuitBreaker
	name   string
	logger *slog.Logger
}

// passthrough carries errors that should reach the caller without counting
// as a breaker failure.
type passthrough struct {
	err error
}

// NewBreakerProvider wraps inner with a consecutive-failure circuit breaker.
// Zero config values fall back to defaults.
func NewBreakerProvider(inner DataProvider, cfg BreakerConfig, logger *slog.Logger, recorder *metrics.Recorder) DataProvider {
	if cfg.Name == "" {
		cfg.Name = "backend"
	}
	if cfg.FailureThreshold == 0 {
		cfg.FailureThreshold = defaultBreakerFailures
	}
	if cfg.OpenTimeout <= 0 {
		cfg.OpenTimeout = defaultBreakerTimeout
	}

	p := &breakerProvider{inner: inner, name: cfg.Name, logger: logger}
	p.cb = gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    cfg.Name,
		Timeout: cfg.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.FailureThreshold
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logCall(context.Background(), logger, slog.LevelWarn, name, "", "provider breaker state change",
				slog.String("from", from.String()),
				slog.String("to", to.String()),
			)
			recorder.RecordBreakerState(name, from.String(), to.String())
		},
	})
	return p
}

// breakerCall runs fn through the breaker. Not-found responses and caller
// cancellation pass through without tripping it.
func breakerCall[T any](ctx context.Context, p *breakerProvider, endpoint string, fn func(DataProvider) (T, error)) (T, error) {
	var zero T
	if p == nil || p.inner == nil {
		return zero, ErrProviderUnavailable
	}

	out, err := p.cb.Execute(func() (interface{}, error) {
		val, err := fn(p.inner)
		if err == nil {
			return val, nil
		}
		if statusErr, ok := AsStatusError(err); ok && statusErr.NotFound() {
			return passthrough{err: err}, nil
		}
		if ctx.Err() != nil {
			return passthrough{err: err}, nil
		}
		return nil, err
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			logCall(ctx, p.logger, slog.LevelDebug, p.name, endpoint, "provider call short-circuited")
			return zero, fmt.Errorf("%s: %w", endpoint, ErrCircuitOpen)
		}
		return zero, err
	}
	if pt, ok := out.(passthrough); ok {
		return zero, pt.err
	}
	val, ok := out.(T)
	if !ok {
		return zero, fmt.Errorf("%s: unexpected breaker result %T", endpoint, out)
	}
	return val, nil
}

func (p *breakerProvider) FetchSeasons(ctx context.Context) ([]int, error) {
	return breakerCall(ctx, p, EndpointSeasons, func(d DataProvider) ([]int, error) {
		return d.FetchSeasons(ctx)
	})
}

func (p *breakerProvider) FetchRaces(ctx context.Context, season int) ([]races.RaceMeta, error) {
	return breakerCall(ctx, p, EndpointRaces, func(d DataProvider) ([]races.RaceMeta, error) {
		return d.FetchRaces(ctx, season)
	})
}

func (p *breakerProvider) FetchResults(ctx context.Context, season, round int, sessionType string) ([]predictions.SessionResultRow, error) {
	return breakerCall(ctx, p, EndpointResults, func(d DataProvider) ([]predictions.SessionResultRow, error) {
		return d.FetchResults(ctx, season, round, sessionType)
	})
}

func (p *breakerProvider) FetchSessions(ctx context.Context, season, round int) ([]races.SessionMeta, error) {
	return breakerCall(ctx, p, EndpointSessions, func(d DataProvider) ([]races.SessionMeta, error) {
		return d.FetchSessions(ctx, season, round)
	})
}

func (p *breakerProvider) FetchWeather(ctx context.Context, season, round int, sessionType string) (races.WeatherPayload, error) {
	return breakerCall(ctx, p, EndpointWeather, func(d DataProvider) (races.WeatherPayload, error) {
		return d.FetchWeather(ctx, season, round, sessionType)
	})
}

func (p *breakerProvider) FetchPredictions(ctx context.Context, season, round int) ([]predictions.FieldEntry, error) {
	return breakerCall(ctx, p, EndpointPredictions, func(d DataProvider) ([]predictions.FieldEntry, error) {
		return d.FetchPredictions(ctx, season, round)
	})
}

func (p *breakerProvider) FetchDriverStandings(ctx context.Context, season, round int) ([]standings.DriverStanding, error) {
	return breakerCall(ctx, p, EndpointDrivers, func(d DataProvider) ([]standings.DriverStanding, error) {
		return d.FetchDriverStandings(ctx, season, round)
	})
}

func (p *breakerProvider) FetchConstructorStandings(ctx context.Context, season, round int) ([]standings.ConstructorStanding, error) {
	return breakerCall(ctx, p, EndpointConstructors, func(d DataProvider) ([]standings.ConstructorStanding, error) {
		return d.FetchConstructorStandings(ctx, season, round)
	})
}

func (p *breakerProvider) FetchTeamStandings(ctx context.Context, season, round int) ([]standings.TeamStanding, error) {
	return breakerCall(ctx, p, EndpointTeams, func(d DataProvider) ([]standings.TeamStanding, error) {
		return d.FetchTeamStandings(ctx, season, round)
	})
}

func (p *breakerProvider) FetchSummary(ctx context.Context, season int) (predictions.Summary, error) {
	return breakerCall(ctx, p, EndpointSummary, func(d DataProvider) (predictions.Summary, error) {
		return d.FetchSummary(ctx, season)
	})
}

func (p *breakerProvider) FetchMonitor(ctx context.Context, season int) (monitor.Payload, error) {
	return breakerCall(ctx, p, EndpointMonitor, func(d DataProvider) (monitor.Payload, error) {
		return d.FetchMonitor(ctx, season)
	})
}

func (p *breakerProvider) FetchDriverPace(ctx context.Context, season int) (map[string][]int, error) {
	return breakerCall(ctx, p, EndpointPace, func(d DataProvider) (map[string][]int, error) {
		return d.FetchDriverPace(ctx, season)
	})
}

func (p *breakerProvider) PredictScenario(ctx context.Context, req predictions.ScenarioRequest) (predictions.ScenarioPayload, error) {
	return breakerCall(ctx, p, EndpointScenario, func(d DataProvider) (predictions.ScenarioPayload, error) {
		return d.PredictScenario(ctx, req)
	})
}
