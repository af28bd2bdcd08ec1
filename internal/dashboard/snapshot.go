package dashboard

import (
	"time"

	"github.com/preston-bernstein/f1-dashboard-service/internal/domain/monitor"
	"github.com/preston-bernstein/f1-dashboard-service/internal/domain/predictions"
	"github.com/preston-bernstein/f1-dashboard-service/internal/domain/races"
	"github.com/preston-bernstein/f1-dashboard-service/internal/domain/standings"
)

// Snapshot is the fully reconciled dashboard for one resolved selection.
// Every slice is non-nil; a failed fetch leaves its field empty.
type Snapshot struct {
	Selection            Selection                      `json:"selection"`
	RefreshIndex         uint64                         `json:"refreshIndex"`
	Generation           uint64                         `json:"generation"`
	UpdatedAt            time.Time                      `json:"updatedAt"`
	Seasons              []int                          `json:"seasons"`
	Races                []races.RaceOption             `json:"races"`
	ActiveRace           races.Race                     `json:"activeRace"`
	Weather              races.WeatherSummary           `json:"weather"`
	Sessions             []races.SessionMeta            `json:"sessions"`
	RaceResults          []predictions.SessionResultRow `json:"raceResults"`
	SessionResults       []predictions.SessionResultRow `json:"sessionResults"`
	Predictions          []predictions.RacePrediction   `json:"predictions"`
	TopPredictions       []predictions.Scorable         `json:"topPredictions"`
	Summary              *predictions.Summary           `json:"summary"`
	Monitor              *monitor.Payload               `json:"monitor"`
	Pipeline             monitor.Status                 `json:"pipeline"`
	DriverStandings      []standings.DriverRow          `json:"driverStandings"`
	ConstructorStandings []standings.ConstructorRow     `json:"constructorStandings"`
	TeamStandings        []standings.TeamStanding       `json:"teamStandings"`
	DriverPace           map[string][]int               `json:"driverPace"`
}
