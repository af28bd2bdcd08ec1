package testutil

import (
	"encoding/json"

	"github.com/aarondl/opt/omitnull"

	"github.com/preston-bernstein/f1-dashboard-service/internal/domain/monitor"
	"github.com/preston-bernstein/f1-dashboard-service/internal/domain/predictions"
	"github.com/preston-bernstein/f1-dashboard-service/internal/domain/races"
	"github.com/preston-bernstein/f1-dashboard-service/internal/domain/standings"
)

// SampleRaceMeta returns a calendar entry for the given round of 2025.
func SampleRaceMeta(round int, slug, name string) races.RaceMeta {
	return races.RaceMeta{
		Season:        omitnull.From(2025),
		Round:         omitnull.From(round),
		GrandPrixSlug: omitnull.From(slug),
		DisplayName:   omitnull.From(name),
	}
}

// SampleResult returns a classification row.
func SampleResult(position int, code, name string, points float64) predictions.SessionResultRow {
	return predictions.SessionResultRow{
		Position:   &position,
		DriverCode: &code,
		DriverName: name,
		Points:     &points,
	}
}

// SampleProvider returns a FakeProvider with a small but complete 2025 dataset.
func SampleProvider() *FakeProvider {
	return &FakeProvider{
		Seasons: []int{2024, 2025},
		Races: []races.RaceMeta{
			SampleRaceMeta(1, "bahrain-grand-prix", "Bahrain Grand Prix"),
			SampleRaceMeta(2, "saudi-arabian-grand-prix", "Saudi Arabian Grand Prix"),
		},
		Results: map[string][]predictions.SessionResultRow{
			races.SessionRace:       {SampleResult(1, "NOR", "Lando Norris", 25), SampleResult(2, "VER", "Max Verstappen", 18)},
			races.SessionQualifying: {SampleResult(1, "VER", "Max Verstappen", 0)},
		},
		Sessions: []races.SessionMeta{
			{SessionType: "FP1", Name: "Practice 1", SessionKey: 1},
			{SessionType: races.SessionQualifying, Name: "Qualifying", SessionKey: 2},
			{SessionType: races.SessionRace, Name: "Race", SessionKey: 3},
		},
		Weather: races.WeatherPayload{
			RainProbability: omitnull.From(0.2),
			TrackTempC:      omitnull.From(38.5),
		},
		Field: []predictions.FieldEntry{
			{DriverCode: omitnull.From("VER"), PWin: omitnull.From(0.35), PTop3: omitnull.From(0.7)},
			{DriverCode: omitnull.From("NOR"), PWin: omitnull.From(0.4)},
			{DriverCode: omitnull.From("LEC"), PWin: omitnull.From(0.1)},
			{DriverCode: omitnull.From("PIA"), PWin: omitnull.From(0.15)},
		},
		Drivers: []standings.DriverStanding{
			{Season: omitnull.From(2025), Position: omitnull.From(1), DriverCode: omitnull.From("NOR"), DriverName: "Lando Norris", TeamName: "McLaren", Points: omitnull.From(25.0)},
			{Season: omitnull.From(2025), Position: omitnull.From(2), DriverCode: omitnull.From("VER"), DriverName: "Max Verstappen", TeamName: "Red Bull Racing", Points: omitnull.From(18.0)},
		},
		Constructors: []standings.ConstructorStanding{
			{Season: omitnull.From(2025), Position: omitnull.From(1), TeamName: "McLaren", Points: omitnull.From(40.0)},
			{Season: omitnull.From(2025), Position: omitnull.From(2), TeamName: "Red Bull Racing", Points: omitnull.From(20.0)},
		},
		Teams: []standings.TeamStanding{
			{Position: 1, TeamName: "McLaren", Points: 40, Drivers: []standings.TeamStandingDriver{{DriverCode: "NOR", DriverName: "Lando Norris", Points: 25, Races: 1}}},
		},
		Summary: predictions.Summary{Season: 2025, NRaces: 1, NWins: 1, HitAt1: 0.5, HitAt3: 0.75},
		Monitor: monitor.Payload{Bronze: &monitor.Bronze{NSessions: 10, NSeasons: 2}},
		Pace:    map[string][]int{"NOR": {1}, "VER": {2}},
		Scenario: predictions.ScenarioPayload{
			ScenarioPredWinProba: json.RawMessage(`0.42`),
		},
	}
}
