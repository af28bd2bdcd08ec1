package reconcile

import (
	"math"
	"slices"
	"strings"

	"github.com/aarondl/opt/omitnull"
	"github.com/samber/lo"

	"github.com/preston-bernstein/f1-dashboard-service/internal/archive"
	"github.com/preston-bernstein/f1-dashboard-service/internal/domain/seasons"
	"github.com/preston-bernstein/f1-dashboard-service/internal/domain/standings"
)

const trajectorySegments = 8

// History overlays live standings onto the archived season. Live rows tagged
// with a different season are ignored. ok is false when the year is not archived.
func (r *Reconciler) History(year int, liveDrivers []standings.DriverStanding, liveTeams []standings.ConstructorStanding) (seasons.History, bool) {
	base, ok := r.archive.Season(year)
	if !ok {
		return seasons.History{}, false
	}

	liveTeams = lo.Filter(liveTeams, func(c standings.ConstructorStanding, _ int) bool {
		return inSeason(c.Season, year)
	})
	liveDrivers = lo.Filter(liveDrivers, func(d standings.DriverStanding, _ int) bool {
		return inSeason(d.Season, year)
	})

	teams := lo.Map(base.Teams, func(team archive.SeasonTeam, _ int) seasons.Team {
		return r.mergeTeam(team, liveDrivers, liveTeams)
	})

	return seasons.History{
		Year:     base.Year,
		Title:    base.Title,
		Rounds:   base.Rounds,
		Live:     len(liveTeams) > 0 || len(liveDrivers) > 0,
		Champion: champion(teams),
		Teams:    teams,
	}, true
}

func inSeason(season omitnull.Val[int], year int) bool {
	s, ok := season.Get()
	return !ok || s == year
}

func (r *Reconciler) mergeTeam(team archive.SeasonTeam, liveDrivers []standings.DriverStanding, liveTeams []standings.ConstructorStanding) seasons.Team {
	points, rank := team.Points, team.Rank
	if lt, ok := lo.Find(liveTeams, func(c standings.ConstructorStanding) bool {
		return strings.EqualFold(c.TeamName, team.Name)
	}); ok {
		points = lt.Points.GetOr(points)
		rank = lt.Position.GetOr(rank)
	}

	drivers := lo.Map(team.Drivers, func(d archive.SeasonDriver, _ int) seasons.Driver {
		merged := seasons.Driver{
			Name:    d.Name,
			Points:  d.Points,
			Image:   d.Image,
			Wins:    d.Wins,
			Podiums: d.Podiums,
			Number:  d.Number,
		}
		if ld, ok := lo.Find(liveDrivers, func(ld standings.DriverStanding) bool {
			return strings.EqualFold(ld.DriverName, d.Name)
		}); ok {
			merged.Points = ld.Points.GetOr(d.Points)
			merged.Wins = ld.Wins.GetOr(d.Wins)
			merged.Podiums = ld.Podiums.GetOr(d.Podiums)
		}
		return merged
	})

	extra := lo.FilterMap(liveDrivers, func(ld standings.DriverStanding, _ int) (seasons.Driver, bool) {
		if !strings.EqualFold(ld.TeamName, team.Name) {
			return seasons.Driver{}, false
		}
		onRoster := lo.ContainsBy(drivers, func(d seasons.Driver) bool {
			return strings.EqualFold(d.Name, ld.DriverName)
		})
		if onRoster {
			return seasons.Driver{}, false
		}
		visual := r.FindDriverVisual(ld.DriverCode.GetOrZero(), ld.DriverName, ld.TeamName)
		return seasons.Driver{
			Name:    ld.DriverName,
			Points:  ld.Points.GetOrZero(),
			Wins:    ld.Wins.GetOrZero(),
			Podiums: ld.Podiums.GetOrZero(),
			Image:   visual.Image,
			Extra:   true,
		}, true
	})

	merged := seasons.Team{
		ID:        team.ID,
		Name:      team.Name,
		ShortName: team.ShortName,
		Color:     team.Color,
		Points:    points,
		Rank:      rank,
		CarImage:  team.CarImage,
		Drivers:   append(drivers, extra...),
	}
	merged.Trajectory = Trajectory(team.History, points)
	return merged
}

// Trajectory returns the recorded points history, or an evenly stepped
// approximation ending near points.
func Trajectory(history []int, points float64) []int {
	if len(history) > 0 {
		return slices.Clone(history)
	}
	step := math.Max(points/trajectorySegments, 1)
	out := make([]int, trajectorySegments)
	for i := range out {
		out[i] = int(math.Round(step * float64(i+1)))
	}
	return out
}

func champion(teams []seasons.Team) *seasons.Champion {
	type entry struct {
		driver seasons.Driver
		team   seasons.Team
	}
	var all []entry
	for _, t := range teams {
		for _, d := range t.Drivers {
			all = append(all, entry{driver: d, team: t})
		}
	}
	if len(all) == 0 {
		return nil
	}
	slices.SortStableFunc(all, func(a, b entry) int {
		switch {
		case a.driver.Points > b.driver.Points:
			return -1
		case a.driver.Points < b.driver.Points:
			return 1
		default:
			return 0
		}
	})
	top := all[0]
	return &seasons.Champion{
		Name:   top.driver.Name,
		Team:   top.team.Name,
		Color:  top.team.Color,
		Points: top.driver.Points,
		Image:  top.driver.Image,
	}
}
