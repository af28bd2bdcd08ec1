package dashboard

import (
	"context"
	"os"

	jsoniter "github.com/json-iterator/go"
	"github.com/samber/lo"

	"github.com/preston-bernstein/f1-dashboard-service/internal/archive"
	"github.com/preston-bernstein/f1-dashboard-service/internal/domain/predictions"
	"github.com/preston-bernstein/f1-dashboard-service/internal/domain/races"
	"github.com/preston-bernstein/f1-dashboard-service/internal/domain/seasons"
	"github.com/preston-bernstein/f1-dashboard-service/internal/domain/standings"
	"github.com/preston-bernstein/f1-dashboard-service/internal/logging"
	"github.com/preston-bernstein/f1-dashboard-service/internal/providers"
	"github.com/preston-bernstein/f1-dashboard-service/internal/reconcile"
)

// Seasons lists available seasons and the one that would be selected.
func (s *Service) Seasons(ctx context.Context) ([]int, int) {
	listed, err := s.provider.FetchSeasons(ctx)
	if err != nil {
		s.log(ctx).Warn("seasons unavailable, using defaults", logging.Err(err))
	}
	return reconcile.SelectSeasons(listed, err, s.opts.DefaultSeason)
}

// ResolveSeason returns season, or the current selection's season, or the
// season a fresh load would pick.
func (s *Service) ResolveSeason(ctx context.Context, season int) int {
	if season > 0 {
		return season
	}
	if cur, ok := s.Current(); ok && cur.Season > 0 {
		return cur.Season
	}
	_, selected := s.Seasons(ctx)
	return selected
}

// Races returns the race options for a season.
func (s *Service) Races(ctx context.Context, season int) []races.RaceOption {
	season = s.ResolveSeason(ctx, season)
	metas, _ := fetchOr(ctx, s, providers.EndpointRaces, []races.RaceMeta{}, func(ctx context.Context) ([]races.RaceMeta, error) {
		return s.provider.FetchRaces(ctx, season)
	})
	return lo.Map(metas, func(m races.RaceMeta, _ int) races.RaceOption { return races.NewRaceOption(m) })
}

// Race returns the reconciled descriptor for season and round.
func (s *Service) Race(ctx context.Context, season, round int) races.Race {
	season = s.ResolveSeason(ctx, season)
	metas, _ := fetchOr(ctx, s, providers.EndpointRaces, []races.RaceMeta{}, func(ctx context.Context) ([]races.RaceMeta, error) {
		return s.provider.FetchRaces(ctx, season)
	})
	selected, manualRound := pickRace(metas, round, s.opts.DefaultRound)
	return s.recon.ActiveRace(selected, season, manualRound)
}

// DriverStandings returns driver rows, live when available.
func (s *Service) DriverStandings(ctx context.Context, season, round int) []standings.DriverRow {
	season = s.ResolveSeason(ctx, season)
	live, _ := fetchOr(ctx, s, providers.EndpointDrivers, []standings.DriverStanding{}, func(ctx context.Context) ([]standings.DriverStanding, error) {
		return s.provider.FetchDriverStandings(ctx, season, round)
	})
	return nonNil(s.recon.DriverRows(live))
}

// ConstructorStandings returns canonicalized constructor rows.
func (s *Service) ConstructorStandings(ctx context.Context, season, round int) []standings.ConstructorRow {
	season = s.ResolveSeason(ctx, season)
	live, _ := fetchOr(ctx, s, providers.EndpointConstructors, []standings.ConstructorStanding{}, func(ctx context.Context) ([]standings.ConstructorStanding, error) {
		return s.provider.FetchConstructorStandings(ctx, season, round)
	})
	return nonNil(s.recon.ConstructorRows(season, live))
}

// TeamStandings returns team standings with their driver breakdown.
func (s *Service) TeamStandings(ctx context.Context, season, round int) []standings.TeamStanding {
	season = s.ResolveSeason(ctx, season)
	rows, _ := fetchOr(ctx, s, providers.EndpointTeams, []standings.TeamStanding{}, func(ctx context.Context) ([]standings.TeamStanding, error) {
		return s.provider.FetchTeamStandings(ctx, season, round)
	})
	return nonNil(rows)
}

// History merges live season standings into the archived season.
func (s *Service) History(ctx context.Context, season int) (seasons.History, bool) {
	season = s.ResolveSeason(ctx, season)

	var f fanout
	var drivers []standings.DriverStanding
	var teams []standings.ConstructorStanding
	f.Go(func() (err error) {
		drivers, err = fetchOr(ctx, s, providers.EndpointDrivers, []standings.DriverStanding{}, func(ctx context.Context) ([]standings.DriverStanding, error) {
			return s.provider.FetchDriverStandings(ctx, season, 0)
		})
		return err
	})
	f.Go(func() (err error) {
		teams, err = fetchOr(ctx, s, providers.EndpointConstructors, []standings.ConstructorStanding{}, func(ctx context.Context) ([]standings.ConstructorStanding, error) {
			return s.provider.FetchConstructorStandings(ctx, season, 0)
		})
		return err
	})
	_ = f.Wait()

	return s.recon.History(season, drivers, teams)
}

// Pace returns finishing positions per driver code.
func (s *Service) Pace(ctx context.Context, season int) map[string][]int {
	season = s.ResolveSeason(ctx, season)
	pace, _ := fetchOr(ctx, s, providers.EndpointPace, map[string][]int{}, func(ctx context.Context) (map[string][]int, error) {
		return s.provider.FetchDriverPace(ctx, season)
	})
	if pace == nil {
		return map[string][]int{}
	}
	return pace
}

// Visual resolves the visual profile for a driver.
func (s *Service) Visual(code, name, team string) archive.Driver {
	return s.recon.FindDriverVisual(code, name, team)
}

// Scenario validates the form, then asks the backend for a win probability.
// Only invalid input is an error; a failed prediction yields a nil probability.
func (s *Service) Scenario(ctx context.Context, in predictions.ScenarioInput) (predictions.ScenarioResult, error) {
	if err := validateStruct(in); err != nil {
		return predictions.ScenarioResult{}, err
	}
	req := reconcile.ScenarioRequest(in)
	result := predictions.ScenarioResult{Request: req}

	payload, err := s.provider.PredictScenario(ctx, req)
	if err != nil {
		s.log(ctx).Warn("scenario prediction failed", logging.Err(err))
		return result, nil
	}
	result.ScenarioPredWinProba = reconcile.ScenarioProbability(payload)
	return result, nil
}

// RaceData returns the scenario form catalog. A readable RaceDataPath wins;
// otherwise the catalog is derived from the archive. The result is cached.
func (s *Service) RaceData() predictions.RaceData {
	s.raceDataOnce.Do(func() {
		if s.opts.RaceDataPath != "" {
			data, err := loadRaceData(s.opts.RaceDataPath)
			if err == nil {
				s.raceData = data
				return
			}
			s.logger.Warn("race data file unreadable, deriving from archive", "path", s.opts.RaceDataPath, logging.Err(err))
		}
		s.raceData = s.recon.RaceData()
	})
	return s.raceData
}

func loadRaceData(path string) (predictions.RaceData, error) {
	var data predictions.RaceData
	raw, err := os.ReadFile(path)
	if err != nil {
		return data, err
	}
	if err := jsoniter.ConfigCompatibleWithStandardLibrary.Unmarshal(raw, &data); err != nil {
		return data, err
	}
	if data.DriversByRace == nil {
		data.DriversByRace = map[string][]predictions.RaceDataDriver{}
	}
	return data, nil
}
