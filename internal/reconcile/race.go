package reconcile

import (
	"strconv"

	"github.com/aarondl/opt/omitnull"
	"github.com/samber/lo"

	"github.com/preston-bernstein/f1-dashboard-service/internal/archive"
	"github.com/preston-bernstein/f1-dashboard-service/internal/domain/races"
	"github.com/preston-bernstein/f1-dashboard-service/internal/fallback"
	"github.com/preston-bernstein/f1-dashboard-service/internal/timeutil"
)

// StructuralSeason is the calendar used when a season has none of its own.
const StructuralSeason = 2025

const defaultRaceSlug = "bahrain-grand-prix"

// raceInput carries one reconciliation's intermediate values through the policies.
type raceInput struct {
	meta   races.RaceMeta
	slug   string
	name   string
	static *archive.Race
}

func staticStep[T any](name string, pick func(archive.Race) T) fallback.Step[raceInput, T] {
	return fallback.Step[raceInput, T]{Name: name, Pick: func(in raceInput) (T, bool) {
		if in.static == nil {
			var zero T
			return zero, false
		}
		return pick(*in.static), true
	}}
}

func staticNonZero(name string, pick func(archive.Race) string) fallback.Step[raceInput, string] {
	return fallback.Step[raceInput, string]{Name: name, Pick: func(in raceInput) (string, bool) {
		if in.static == nil {
			return "", false
		}
		v := pick(*in.static)
		return v, v != ""
	}}
}

func metaString(get func(races.RaceMeta) omitnull.Val[string]) func(raceInput) string {
	return func(in raceInput) string { return get(in.meta).GetOrZero() }
}

var (
	lapsPolicy = fallback.NewPolicy("laps",
		fallback.Field("meta.laps", func(in raceInput) omitnull.Val[int] { return in.meta.Laps }),
		fallback.Field("meta.lap_count", func(in raceInput) omitnull.Val[int] { return in.meta.LapCount }),
		staticStep("calendar.laps", func(r archive.Race) int { return r.Laps }),
	)

	rainPolicy = fallback.NewPolicy("rainProb",
		fallback.Field("meta.rain_probability", func(in raceInput) omitnull.Val[float64] { return in.meta.RainProbability }),
		fallback.Field("meta.rainProb", func(in raceInput) omitnull.Val[float64] { return in.meta.RainProb }),
		staticStep("calendar.rainProb", func(r archive.Race) float64 { return r.RainProb }),
	)

	namePolicy = fallback.NewPolicy("name",
		fallback.NonZero("meta.display_name", metaString(func(m races.RaceMeta) omitnull.Val[string] { return m.DisplayName })),
		fallback.NonZero("pretty.slug", func(in raceInput) string {
			return PrettyGrandPrix(fallback.FirstNonZero(in.meta.GrandPrixSlug.GetOrZero(), in.slug))
		}),
		staticNonZero("calendar.name", func(r archive.Race) string { return r.Name }),
		fallback.Const[raceInput]("placeholder", "Grand Prix"),
	)

	circuitPolicy = fallback.NewPolicy("circuit",
		fallback.NonZero("meta.circuit_name", metaString(func(m races.RaceMeta) omitnull.Val[string] { return m.CircuitName })),
		staticNonZero("calendar.circuit", func(r archive.Race) string { return r.Circuit }),
		fallback.NonZero("name", func(in raceInput) string { return in.name }),
	)

	trackKeyPolicy = fallback.NewPolicy("trackKey",
		fallback.NonZero("meta.grand_prix_slug", metaString(func(m races.RaceMeta) omitnull.Val[string] { return m.GrandPrixSlug })),
		fallback.NonZero("slug", func(in raceInput) string { return in.slug }),
		staticNonZero("calendar.grandPrixSlug", func(r archive.Race) string { return r.GrandPrixSlug }),
		staticNonZero("calendar.trackId", func(r archive.Race) string { return r.TrackID }),
	)

	roundPolicy = fallback.NewPolicy("round",
		fallback.Field("meta.display_round", func(in raceInput) omitnull.Val[int] { return in.meta.DisplayRound }),
		fallback.Field("meta.round", func(in raceInput) omitnull.Val[int] { return in.meta.Round }),
		staticStep("calendar.round", func(r archive.Race) int { return r.Round }),
	)

	trackIDPolicy = fallback.NewPolicy("trackId",
		fallback.NonZero("slug", func(in raceInput) string { return in.slug }),
		staticNonZero("calendar.trackId", func(r archive.Race) string { return r.TrackID }),
		fallback.Const[raceInput]("placeholder", "circuit"),
	)
)

// RacePolicies exposes the field resolution order, keyed by output field.
func RacePolicies() map[string][]string {
	return map[string][]string{
		lapsPolicy.Name():     lapsPolicy.Order(),
		rainPolicy.Name():     rainPolicy.Order(),
		namePolicy.Name():     namePolicy.Order(),
		circuitPolicy.Name():  circuitPolicy.Order(),
		trackKeyPolicy.Name(): trackKeyPolicy.Order(),
		roundPolicy.Name():    roundPolicy.Order(),
		trackIDPolicy.Name():  trackIDPolicy.Order(),
	}
}

// DefaultRace is the descriptor shown before any race metadata exists.
func (r *Reconciler) DefaultRace() races.Race {
	return races.Race{
		Season:        2024,
		Round:         1,
		Name:          "Bahrain Grand Prix",
		Circuit:       "Bahrain International Circuit",
		Image:         r.TrackImage(defaultRaceSlug),
		Length:        "Sakhir",
		TrackID:       "bahrain",
		GrandPrixSlug: defaultRaceSlug,
	}
}

// RaceFromMeta fills a race descriptor from possibly partial metadata, using
// the static calendar entry with the same slug or round for missing fields.
// A nil meta yields DefaultRace.
func (r *Reconciler) RaceFromMeta(meta *races.RaceMeta) races.Race {
	if meta == nil {
		return r.DefaultRace()
	}

	in := raceInput{
		meta: *meta,
		slug: Slugify(fallback.FirstNonZero(meta.GrandPrixSlug.GetOrZero(), meta.DisplayName.GetOrZero())),
	}
	season, hasSeason := meta.Season.Get()
	if hasSeason {
		in.static = r.matchCalendar(season, in.slug, meta.Round)
	}

	in.name = namePolicy.ResolveOr(in, "Grand Prix")
	circuit := circuitPolicy.ResolveOr(in, in.name)
	trackKey := trackKeyPolicy.ResolveOr(in, "")

	date := timeutil.FormatDateRange(meta.DateStart.GetOrZero(), meta.DateEnd.GetOrZero())
	if date == "" && hasSeason {
		date = strconv.Itoa(season)
	}

	return races.Race{
		Season:        season,
		Round:         roundPolicy.ResolveOr(in, 1),
		Name:          in.name,
		Circuit:       circuit,
		Date:          date,
		Image:         r.TrackImage(trackKey),
		Laps:          lapsPolicy.ResolveOr(in, 0),
		Length:        circuit,
		TrackID:       trackIDPolicy.ResolveOr(in, "circuit"),
		RainProb:      rainPolicy.ResolveOr(in, 0),
		GrandPrixSlug: in.slug,
	}
}

func (r *Reconciler) matchCalendar(season int, slug string, round omitnull.Val[int]) *archive.Race {
	calendar, ok := r.archive.Calendar(season)
	if !ok {
		return nil
	}
	wantRound, hasRound := round.Get()
	match, found := lo.Find(calendar, func(c archive.Race) bool {
		key := Slugify(fallback.FirstNonZero(c.GrandPrixSlug, c.TrackID, c.Name))
		return key == slug || (hasRound && c.Round == wantRound)
	})
	if !found {
		return nil
	}
	return &match
}

// ActiveRace picks the race the dashboard shows. A selected meta wins;
// otherwise the static calendar for season (or StructuralSeason) supplies
// the entry for manualRound, else its first race.
func (r *Reconciler) ActiveRace(selected *races.RaceMeta, season, manualRound int) races.Race {
	if selected != nil {
		return r.RaceFromMeta(selected)
	}
	year := season
	calendar, ok := r.archive.Calendar(year)
	if !ok {
		year = StructuralSeason
		calendar, ok = r.archive.Calendar(year)
	}
	if !ok {
		return r.DefaultRace()
	}
	entry, found := lo.Find(calendar, func(c archive.Race) bool { return c.Round == manualRound })
	if !found {
		entry = calendar[0]
	}
	return fromCalendar(year, entry)
}

func fromCalendar(season int, c archive.Race) races.Race {
	return races.Race{
		Season:        season,
		Round:         c.Round,
		Name:          c.Name,
		Circuit:       c.Circuit,
		Date:          c.Date,
		Image:         c.Image,
		Laps:          c.Laps,
		Length:        c.Length,
		TrackID:       c.TrackID,
		RainProb:      c.RainProb,
		GrandPrixSlug: c.GrandPrixSlug,
	}
}
