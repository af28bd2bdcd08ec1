package testutil

import (
	"context"
	"sync"

	"github.com/preston-bernstein/f1-dashboard-service/internal/domain/monitor"
	"github.com/preston-bernstein/f1-dashboard-service/internal/domain/predictions"
	"github.com/preston-bernstein/f1-dashboard-service/internal/domain/races"
	"github.com/preston-bernstein/f1-dashboard-service/internal/domain/standings"
	"github.com/preston-bernstein/f1-dashboard-service/internal/providers"
)

// FakeProvider serves canned data per endpoint. Err fails every call; Errs
// fails single endpoints by name. Before runs ahead of each call and may
// block or fail it.
type FakeProvider struct {
	Seasons      []int
	Races        []races.RaceMeta
	Results      map[string][]predictions.SessionResultRow
	Sessions     []races.SessionMeta
	Weather      races.WeatherPayload
	Field        []predictions.FieldEntry
	Drivers      []standings.DriverStanding
	Constructors []standings.ConstructorStanding
	Teams        []standings.TeamStanding
	Summary      predictions.Summary
	Monitor      monitor.Payload
	Pace         map[string][]int
	Scenario     predictions.ScenarioPayload

	Err    error
	Errs   map[string]error
	Before func(ctx context.Context, endpoint string) error

	mu           sync.Mutex
	calls        map[string]int
	lastScenario predictions.ScenarioRequest
}

var _ providers.DataProvider = (*FakeProvider)(nil)

// Calls returns how often endpoint was hit.
func (p *FakeProvider) Calls(endpoint string) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.calls[endpoint]
}

// LastScenario returns the last scenario request received.
func (p *FakeProvider) LastScenario() predictions.ScenarioRequest {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.lastScenario
}

func (p *FakeProvider) enter(ctx context.Context, endpoint string) error {
	p.mu.Lock()
	if p.calls == nil {
		p.calls = map[string]int{}
	}
	p.calls[endpoint]++
	before := p.Before
	p.mu.Unlock()

	if before != nil {
		if err := before(ctx, endpoint); err != nil {
			return err
		}
	}
	if p.Err != nil {
		return p.Err
	}
	return p.Errs[endpoint]
}

func (p *FakeProvider) FetchSeasons(ctx context.Context) ([]int, error) {
	if err := p.enter(ctx, providers.EndpointSeasons); err != nil {
		return nil, err
	}
	return p.Seasons, nil
}

func (p *FakeProvider) FetchRaces(ctx context.Context, season int) ([]races.RaceMeta, error) {
	_ = season
	if err := p.enter(ctx, providers.EndpointRaces); err != nil {
		return nil, err
	}
	return p.Races, nil
}

func (p *FakeProvider) FetchResults(ctx context.Context, season, round int, sessionType string) ([]predictions.SessionResultRow, error) {
	_, _ = season, round
	if err := p.enter(ctx, providers.EndpointResults); err != nil {
		return nil, err
	}
	return p.Results[sessionType], nil
}

func (p *FakeProvider) FetchSessions(ctx context.Context, season, round int) ([]races.SessionMeta, error) {
	_, _ = season, round
	if err := p.enter(ctx, providers.EndpointSessions); err != nil {
		return nil, err
	}
	return p.Sessions, nil
}

func (p *FakeProvider) FetchWeather(ctx context.Context, season, round int, sessionType string) (races.WeatherPayload, error) {
	_, _, _ = season, round, sessionType
	if err := p.enter(ctx, providers.EndpointWeather); err != nil {
		return races.WeatherPayload{}, err
	}
	return p.Weather, nil
}

func (p *FakeProvider) FetchPredictions(ctx context.Context, season, round int) ([]predictions.FieldEntry, error) {
	_, _ = season, round
	if err := p.enter(ctx, providers.EndpointPredictions); err != nil {
		return nil, err
	}
	return p.Field, nil
}

func (p *FakeProvider) FetchDriverStandings(ctx context.Context, season, round int) ([]standings.DriverStanding, error) {
	_, _ = season, round
	if err := p.enter(ctx, providers.EndpointDrivers); err != nil {
		return nil, err
	}
	return p.Drivers, nil
}

func (p *FakeProvider) FetchConstructorStandings(ctx context.Context, season, round int) ([]standings.ConstructorStanding, error) {
	_, _ = season, round
	if err := p.enter(ctx, providers.EndpointConstructors); err != nil {
		return nil, err
	}
	return p.Constructors, nil
}

func (p *FakeProvider) FetchTeamStandings(ctx context.Context, season, round int) ([]standings.TeamStanding, error) {
	_, _ = season, round
	if err := p.enter(ctx, providers.EndpointTeams); err != nil {
		return nil, err
	}
	return p.Teams, nil
}

func (p *FakeProvider) FetchSummary(ctx context.Context, season int) (predictions.Summary, error) {
	_ = season
	if err := p.enter(ctx, providers.EndpointSummary); err != nil {
		return predictions.Summary{}, err
	}
	return p.Summary, nil
}

func (p *FakeProvider) FetchMonitor(ctx context.Context, season int) (monitor.Payload, error) {
	_ = season
	if err := p.enter(ctx, providers.EndpointMonitor); err != nil {
		return monitor.Payload{}, err
	}
	return p.Monitor, nil
}

func (p *FakeProvider) FetchDriverPace(ctx context.Context, season int) (map[string][]int, error) {
	_ = season
	if err := p.enter(ctx, providers.EndpointPace); err != nil {
		return nil, err
	}
	return p.Pace, nil
}

func (p *FakeProvider) PredictScenario(ctx context.Context, req predictions.ScenarioRequest) (predictions.ScenarioPayload, error) {
	p.mu.Lock()
	p.lastScenario = req
	p.mu.Unlock()
	if err := p.enter(ctx, providers.EndpointScenario); err != nil {
		return predictions.ScenarioPayload{}, err
	}
	return p.Scenario, nil
}
