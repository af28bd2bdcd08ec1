package providers

import (
	"context"

	"github.com/preston-bernstein/f1-dashboard-service/internal/domain/monitor"
	"github.com/preston-bernstein/f1-dashboard-service/internal/domain/predictions"
	"github.com/preston-bernstein/f1-dashboard-service/internal/domain/races"
	"github.com/preston-bernstein/f1-dashboard-service/internal/domain/standings"
)

// MetaProvider lists seasons and their race calendars.
type MetaProvider interface {
	FetchSeasons(ctx context.Context) ([]int, error)
	FetchRaces(ctx context.Context, season int) ([]races.RaceMeta, error)
}

// RaceProvider fetches per-round data. sessionType is a backend session
// code such as "R" or "Q".
type RaceProvider interface {
	FetchResults(ctx context.Context, season, round int, sessionType string) ([]predictions.SessionResultRow, error)
	FetchSessions(ctx context.Context, season, round int) ([]races.SessionMeta, error)
	FetchWeather(ctx context.Context, season, round int, sessionType string) (races.WeatherPayload, error)
	FetchPredictions(ctx context.Context, season, round int) ([]predictions.FieldEntry, error)
}

// StandingsProvider fetches championship tables. A round of 0 asks for the
// latest standings of the season.
type StandingsProvider interface {
	FetchDriverStandings(ctx context.Context, season, round int) ([]standings.DriverStanding, error)
	FetchConstructorStandings(ctx context.Context, season, round int) ([]standings.ConstructorStanding, error)
	FetchTeamStandings(ctx context.Context, season, round int) ([]standings.TeamStanding, error)
}

// AnalyticsProvider fetches model and pipeline diagnostics.
type AnalyticsProvider interface {
	FetchSummary(ctx context.Context, season int) (predictions.Summary, error)
	FetchMonitor(ctx context.Context, season int) (monitor.Payload, error)
	FetchDriverPace(ctx context.Context, season int) (map[string][]int, error)
}

// ScenarioProvider runs what-if predictions.
type ScenarioProvider interface {
	PredictScenario(ctx context.Context, req predictions.ScenarioRequest) (predictions.ScenarioPayload, error)
}

// DataProvider combines all provider capabilities.
type DataProvider interface {
	MetaProvider
	RaceProvider
	StandingsProvider
	AnalyticsProvider
	ScenarioProvider
}

// Endpoint names used in logs and metrics.
const (
	EndpointSeasons      = "seasons"
	EndpointRaces        = "races"
	EndpointResults      = "results"
	EndpointSessions     = "sessions"
	EndpointWeather      = "weather"
	EndpointPredictions  = "predictions"
	EndpointDrivers      = "standings_drivers"
	EndpointConstructors = "standings_constructors"
	EndpointTeams        = "standings_teams"
	EndpointSummary      = "summary"
	EndpointMonitor      = "monitor"
	EndpointPace         = "driver_pace"
	EndpointScenario     = "scenario"
)
