package reconcile

import (
	"github.com/aarondl/opt/omitnull"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"github.com/preston-bernstein/f1-dashboard-service/internal/archive"
	"github.com/preston-bernstein/f1-dashboard-service/internal/domain/standings"
)

var (
	pointsPerWin    = decimal.NewFromInt(100)
	pointsPerPodium = decimal.NewFromInt(50)
)

// DriverRows renders the driver standings table. Live rows get their visual
// and rank; with no live rows the static driver table is shown instead.
func (r *Reconciler) DriverRows(live []standings.DriverStanding) []standings.DriverRow {
	if len(live) > 0 {
		return lo.Map(live, func(d standings.DriverStanding, idx int) standings.DriverRow {
			code := d.DriverCode.GetOrZero()
			visual := r.FindDriverVisual(code, d.DriverName, d.TeamName)
			color := visual.Color
			if color == "" {
				color = r.TeamColor(d.TeamName)
			}
			return standings.DriverRow{
				Position:   d.Position.GetOrZero(),
				DriverCode: code,
				DriverName: d.DriverName,
				TeamName:   d.TeamName,
				Points:     d.Points.GetOrZero(),
				Wins:       d.Wins.GetOrZero(),
				Podiums:    d.Podiums.GetOrZero(),
				Color:      color,
				Image:      visual.Image,
				Rank:       idx + 1,
			}
		})
	}
	return lo.Map(r.archive.Drivers(), func(d archive.Driver, idx int) standings.DriverRow {
		return standings.DriverRow{
			Position:   idx + 1,
			DriverCode: d.ID,
			DriverName: d.Name,
			TeamName:   d.Team,
			Points:     d.Points,
			Wins:       estimate(d.Points, pointsPerWin),
			Podiums:    estimate(d.Points, pointsPerPodium),
			Color:      d.Color,
			Image:      d.Image,
			Rank:       idx + 1,
		}
	})
}

// estimate floors points/per, never below zero.
func estimate(points float64, per decimal.Decimal) int {
	n := decimal.NewFromFloat(points).Div(per).Floor().IntPart()
	return int(max(n, 0))
}

// ConstructorRows canonicalizes live constructor standings for season, or
// the static team list when there are none.
func (r *Reconciler) ConstructorRows(season int, live []standings.ConstructorStanding) []standings.ConstructorRow {
	rows := live
	if len(rows) == 0 {
		rows = lo.Map(r.archive.Teams(), func(t archive.Team, idx int) standings.ConstructorStanding {
			return standings.ConstructorStanding{
				Position: omitnull.From(idx + 1),
				TeamName: t.FullTeamName,
				Points:   omitnull.From(t.Points),
			}
		})
	}
	return r.FilterConstructorsBySeason(season, rows)
}

// FilterConstructorsBySeason applies the season's naming rules:
//
//  1. drop repeats of the same raw normalized name
//  2. from 2025 on, drop names outside the allow-list
//  3. canonicalize, and for 2024 and 2025+ drop repeats of the canonical name
//
// Input order decides which duplicate survives.
func (r *Reconciler) FilterConstructorsBySeason(season int, rows []standings.ConstructorStanding) []standings.ConstructorRow {
	seenRaw := make(map[string]struct{}, len(rows))
	seenCanon := make(map[string]struct{}, len(rows))
	out := make([]standings.ConstructorRow, 0, len(rows))
	for _, c := range rows {
		norm := NormalizeTeamName(c.TeamName)
		if _, dup := seenRaw[norm]; dup {
			continue
		}
		seenRaw[norm] = struct{}{}
		if !TeamAllowed(c.TeamName, season) {
			continue
		}

		canonical := CanonicalTeamName(c.TeamName, season)
		if dedupesCanonical(season) {
			key := NormalizeTeamName(canonical)
			if _, dup := seenCanon[key]; dup {
				continue
			}
			seenCanon[key] = struct{}{}
		}
		out = append(out, standings.ConstructorRow{
			Position: c.Position.GetOrZero(),
			TeamName: canonical,
			Points:   c.Points.GetOrZero(),
			Color:    r.TeamColor(canonical),
			Icon:     r.TeamIcon(canonical),
		})
	}
	return out
}
