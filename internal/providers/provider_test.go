package providers

import (
	"context"
	"errors"
	"sync"

	"github.com/preston-bernstein/f1-dashboard-service/internal/domain/monitor"
	"github.com/preston-bernstein/f1-dashboard-service/internal/domain/predictions"
	"github.com/preston-bernstein/f1-dashboard-service/internal/domain/races"
	"github.com/preston-bernstein/f1-dashboard-service/internal/domain/standings"
)

var errBoom = errors.New("boom")

// stubProvider returns err from every call, or fixed data when err is nil.
type stubProvider struct {
	mu    sync.Mutex
	err   error
	calls map[string]int
}

var _ DataProvider = (*stubProvider)(nil)

func (s *stubProvider) hit(endpoint string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.calls == nil {
		s.calls = map[string]int{}
	}
	s.calls[endpoint]++
	return s.err
}

func (s *stubProvider) count(endpoint string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[endpoint]
}

func (s *stubProvider) setErr(err error) {
	s.mu.Lock()
	s.err = err
	s.mu.Unlock()
}

func (s *stubProvider) FetchSeasons(context.Context) ([]int, error) {
	if err := s.hit(EndpointSeasons); err != nil {
		return nil, err
	}
	return []int{2024, 2025}, nil
}

func (s *stubProvider) FetchRaces(context.Context, int) ([]races.RaceMeta, error) {
	return nil, s.hit(EndpointRaces)
}

func (s *stubProvider) FetchResults(context.Context, int, int, string) ([]predictions.SessionResultRow, error) {
	return nil, s.hit(EndpointResults)
}

func (s *stubProvider) FetchSessions(context.Context, int, int) ([]races.SessionMeta, error) {
	return nil, s.hit(EndpointSessions)
}

func (s *stubProvider) FetchWeather(context.Context, int, int, string) (races.WeatherPayload, error) {
	return races.WeatherPayload{}, s.hit(EndpointWeather)
}

func (s *stubProvider) FetchPredictions(context.Context, int, int) ([]predictions.FieldEntry, error) {
	return nil, s.hit(EndpointPredictions)
}

func (s *stubProvider) FetchDriverStandings(context.Context, int, int) ([]standings.DriverStanding, error) {
	return nil, s.hit(EndpointDrivers)
}

func (s *stubProvider) FetchConstructorStandings(context.Context, int, int) ([]standings.ConstructorStanding, error) {
	return nil, s.hit(EndpointConstructors)
}

func (s *stubProvider) FetchTeamStandings(context.Context, int, int) ([]standings.TeamStanding, error) {
	return nil, s.hit(EndpointTeams)
}

func (s *stubProvider) FetchSummary(context.Context, int) (predictions.Summary, error) {
	if err := s.hit(EndpointSummary); err != nil {
		return predictions.Summary{}, err
	}
	return predictions.Summary{Season: 2024, NRaces: 24}, nil
}

func (s *stubProvider) FetchMonitor(context.Context, int) (monitor.Payload, error) {
	return monitor.Payload{}, s.hit(EndpointMonitor)
}

func (s *stubProvider) FetchDriverPace(context.Context, int) (map[string][]int, error) {
	return nil, s.hit(EndpointPace)
}

func (s *stubProvider) PredictScenario(context.Context, predictions.ScenarioRequest) (predictions.ScenarioPayload, error) {
	return predictions.ScenarioPayload{}, s.hit(EndpointScenario)
}
