// Package static serves archived season data through the provider interface
// so the dashboard can run without the analytics backend.
package static

import (
	"cmp"
	"context"
	"fmt"
	"slices"

	"github.com/aarondl/opt/omitnull"
	"github.com/samber/lo"

	"github.com/preston-bernstein/f1-dashboard-service/internal/archive"
	"github.com/preston-bernstein/f1-dashboard-service/internal/domain/monitor"
	"github.com/preston-bernstein/f1-dashboard-service/internal/domain/predictions"
	"github.com/preston-bernstein/f1-dashboard-service/internal/domain/races"
	"github.com/preston-bernstein/f1-dashboard-service/internal/domain/standings"
	"github.com/preston-bernstein/f1-dashboard-service/internal/providers"
	"github.com/preston-bernstein/f1-dashboard-service/internal/reconcile"
)

const providerName = "static"

// Provider answers every read from the embedded archive. Endpoints with no
// archived equivalent return empty data, which leaves the reconciler's
// static fallbacks in charge.
type Provider struct {
	archive *archive.Archive
	recon   *reconcile.Reconciler
}

var _ providers.DataProvider = (*Provider)(nil)

// New creates a static provider over the given archive.
func New(a *archive.Archive) *Provider {
	return &Provider{archive: a, recon: reconcile.New(a)}
}

func (p *Provider) FetchSeasons(ctx context.Context) ([]int, error) {
	_ = ctx
	return p.archive.Years(), nil
}

func (p *Provider) FetchRaces(ctx context.Context, season int) ([]races.RaceMeta, error) {
	_ = ctx
	calendar, _ := p.archive.Calendar(season)
	return lo.Map(calendar, func(r archive.Race, _ int) races.RaceMeta {
		return races.RaceMeta{
			Season:          omitnull.From(season),
			Round:           omitnull.From(r.Round),
			GrandPrixSlug:   omitnull.From(r.GrandPrixSlug),
			DisplayName:     omitnull.From(r.Name),
			CircuitName:     omitnull.From(r.Circuit),
			Laps:            omitnull.From(r.Laps),
			RainProbability: omitnull.From(r.RainProb),
		}
	}), nil
}

func (p *Provider) FetchResults(ctx context.Context, season, round int, sessionType string) ([]predictions.SessionResultRow, error) {
	_, _, _, _ = ctx, season, round, sessionType
	return []predictions.SessionResultRow{}, nil
}

// FetchSessions lists the two sessions every archived round has.
func (p *Provider) FetchSessions(ctx context.Context, season, round int) ([]races.SessionMeta, error) {
	_ = ctx
	if _, ok := p.race(season, round); !ok {
		return []races.SessionMeta{}, nil
	}
	return []races.SessionMeta{
		{SessionType: races.SessionQualifying, Name: "Qualifying"},
		{SessionType: races.SessionRace, Name: "Race"},
	}, nil
}

func (p *Provider) FetchWeather(ctx context.Context, season, round int, sessionType string) (races.WeatherPayload, error) {
	_, _ = ctx, sessionType
	r, ok := p.race(season, round)
	if !ok {
		return races.WeatherPayload{}, p.notFound(providers.EndpointWeather, season, round)
	}
	return races.WeatherPayload{RainProbability: omitnull.From(r.RainProb)}, nil
}

func (p *Provider) FetchPredictions(ctx context.Context, season, round int) ([]predictions.FieldEntry, error) {
	_, _, _ = ctx, season, round
	return []predictions.FieldEntry{}, nil
}

// FetchDriverStandings returns the archived final classification. round is ignored.
func (p *Provider) FetchDriverStandings(ctx context.Context, season, round int) ([]standings.DriverStanding, error) {
	_, _ = ctx, round
	s, ok := p.archive.Season(season)
	if !ok {
		return []standings.DriverStanding{}, nil
	}

	type line struct {
		driver archive.SeasonDriver
		team   string
	}
	var lines []line
	for _, t := range s.Teams {
		for _, d := range t.Drivers {
			lines = append(lines, line{driver: d, team: t.Name})
		}
	}
	slices.SortStableFunc(lines, func(a, b line) int {
		return cmp.Compare(b.driver.Points, a.driver.Points)
	})

	return lo.Map(lines, func(l line, i int) standings.DriverStanding {
		row := standings.DriverStanding{
			Season:     omitnull.From(season),
			Position:   omitnull.From(i + 1),
			DriverName: l.driver.Name,
			TeamName:   l.team,
			Points:     omitnull.From(l.driver.Points),
			Wins:       omitnull.From(l.driver.Wins),
			Podiums:    omitnull.From(l.driver.Podiums),
		}
		if d, ok := p.recon.DriverBySurname(l.driver.Name); ok && d.Code != "" {
			row.DriverCode = omitnull.From(d.Code)
		}
		return row
	}), nil
}

func (p *Provider) FetchConstructorStandings(ctx context.Context, season, round int) ([]standings.ConstructorStanding, error) {
	_, _ = ctx, round
	s, ok := p.archive.Season(season)
	if !ok {
		return []standings.ConstructorStanding{}, nil
	}
	teams := slices.Clone(s.Teams)
	slices.SortStableFunc(teams, func(a, b archive.SeasonTeam) int {
		return cmp.Compare(a.Rank, b.Rank)
	})
	return lo.Map(teams, func(t archive.SeasonTeam, i int) standings.ConstructorStanding {
		return standings.ConstructorStanding{
			Season:   omitnull.From(season),
			Position: omitnull.From(i + 1),
			TeamName: t.Name,
			Points:   omitnull.From(t.Points),
		}
	}), nil
}

func (p *Provider) FetchTeamStandings(ctx context.Context, season, round int) ([]standings.TeamStanding, error) {
	_, _ = ctx, round
	s, ok := p.archive.Season(season)
	if !ok {
		return []standings.TeamStanding{}, nil
	}
	rounds := len(s.Races)
	return lo.Map(s.Teams, func(t archive.SeasonTeam, i int) standings.TeamStanding {
		return standings.TeamStanding{
			Position: cmp.Or(t.Rank, i+1),
			TeamName: t.Name,
			Points:   t.Points,
			Drivers: lo.Map(t.Drivers, func(d archive.SeasonDriver, _ int) standings.TeamStandingDriver {
				code := ""
				if known, ok := p.recon.DriverBySurname(d.Name); ok {
					code = known.Code
				}
				return standings.TeamStandingDriver{
					DriverCode: code,
					DriverName: d.Name,
					Points:     d.Points,
					Races:      rounds,
				}
			}),
		}
	}), nil
}

func (p *Provider) FetchSummary(ctx context.Context, season int) (predictions.Summary, error) {
	_ = ctx
	return predictions.Summary{}, p.notFound(providers.EndpointSummary, season, 0)
}

func (p *Provider) FetchMonitor(ctx context.Context, season int) (monitor.Payload, error) {
	_ = ctx
	return monitor.Payload{}, p.notFound(providers.EndpointMonitor, season, 0)
}

func (p *Provider) FetchDriverPace(ctx context.Context, season int) (map[string][]int, error) {
	_, _ = ctx, season
	return map[string][]int{}, nil
}

// PredictScenario has no offline model.
func (p *Provider) PredictScenario(ctx context.Context, req predictions.ScenarioRequest) (predictions.ScenarioPayload, error) {
	_ = ctx
	return predictions.ScenarioPayload{}, fmt.Errorf("%s: scenario %d-%d: %w", providerName, req.Season, req.Round, providers.ErrProviderUnavailable)
}

func (p *Provider) race(season, round int) (archive.Race, bool) {
	calendar, _ := p.archive.Calendar(season)
	return lo.Find(calendar, func(r archive.Race) bool { return r.Round == round })
}

func (p *Provider) notFound(endpoint string, season, round int) error {
	return &providers.StatusError{
		Provider:   providerName,
		Endpoint:   endpoint,
		StatusCode: 404,
		Body:       fmt.Sprintf("no archived %s for %d/%d", endpoint, season, round),
	}
}
