package predictions

import (
	"encoding/json"
	"strconv"

	"github.com/aarondl/opt/omitnull"
)

// Scorable is a row that can be ranked in the top-three panel.
type Scorable interface {
	// WinProbability reports the raw and softmax-adjusted probabilities; ok is
	// false when the row carries no probability field at all.
	WinProbability() (raw float64, softmax *float64, ok bool)
	// ResultPoints reports classification points when the row has them.
	ResultPoints() (float64, bool)
}

// FieldEntry is one driver in the backend predictions "field".
type FieldEntry struct {
	DriverCode   omitnull.Val[string]  `json:"driver_code"`
	DriverName   omitnull.Val[string]  `json:"driver_name"`
	TeamName     omitnull.Val[string]  `json:"team_name"`
	PWin         omitnull.Val[float64] `json:"p_win"`
	PTop3        omitnull.Val[float64] `json:"p_top3"`
	GridPosition omitnull.Val[int]     `json:"grid_position"`
}

// FieldPayload wraps the predictions endpoint body.
type FieldPayload struct {
	Field []FieldEntry `json:"field"`
}

// RacePrediction is a per-driver win prediction for one race.
type RacePrediction struct {
	Season              int      `json:"season"`
	Round               int      `json:"round"`
	DriverCode          string   `json:"driver_code"`
	DriverName          string   `json:"driver_name"`
	TeamName            string   `json:"team_name"`
	PredWinProba        float64  `json:"pred_win_proba"`
	PredWinProbaSoftmax *float64 `json:"pred_win_proba_softmax,omitempty"`
	GridPosition        *int     `json:"grid_position,omitempty"`
}

// WinProbability implements Scorable.
func (p RacePrediction) WinProbability() (float64, *float64, bool) {
	return p.PredWinProba, p.PredWinProbaSoftmax, true
}

// ResultPoints implements Scorable; predictions carry no points.
func (p RacePrediction) ResultPoints() (float64, bool) {
	return 0, false
}

// SessionResultPayload is a classification row as returned by the backend.
type SessionResultPayload struct {
	Position       omitnull.Val[int]     `json:"position"`
	DriverCode     omitnull.Val[string]  `json:"driver_code"`
	DriverName     string                `json:"driver_name"`
	TeamName       omitnull.Val[string]  `json:"team_name"`
	TeamColour     omitnull.Val[string]  `json:"team_colour"`
	CountryCode    omitnull.Val[string]  `json:"country_code"`
	Grid           omitnull.Val[int]     `json:"grid"`
	Laps           omitnull.Val[int]     `json:"laps"`
	Points         omitnull.Val[float64] `json:"points"`
	TimeOrDuration json.RawMessage       `json:"time_or_duration"`
	Gap            omitnull.Val[string]  `json:"gap"`
	Status         omitnull.Val[string]  `json:"status"`
}

// SessionResultRow is a classification row with optional fields as pointers.
type SessionResultRow struct {
	Position       *int            `json:"position"`
	DriverCode     *string         `json:"driver_code"`
	DriverName     string          `json:"driver_name"`
	TeamName       *string         `json:"team_name,omitempty"`
	TeamColour     *string         `json:"team_colour,omitempty"`
	CountryCode    *string         `json:"country_code,omitempty"`
	Grid           *int            `json:"grid,omitempty"`
	Laps           *int            `json:"laps,omitempty"`
	Points         *float64        `json:"points,omitempty"`
	TimeOrDuration json.RawMessage `json:"time_or_duration,omitempty"`
	Gap            *string         `json:"gap,omitempty"`
	Status         *string         `json:"status,omitempty"`
}

// NewSessionResultRow converts the wire payload into a result row.
func NewSessionResultRow(p SessionResultPayload) SessionResultRow {
	row := SessionResultRow{
		Position:    p.Position.Ptr(),
		DriverCode:  p.DriverCode.Ptr(),
		DriverName:  p.DriverName,
		TeamName:    p.TeamName.Ptr(),
		TeamColour:  p.TeamColour.Ptr(),
		CountryCode: p.CountryCode.Ptr(),
		Grid:        p.Grid.Ptr(),
		Laps:        p.Laps.Ptr(),
		Points:      p.Points.Ptr(),
		Gap:         p.Gap.Ptr(),
		Status:      p.Status.Ptr(),
	}
	if len(p.TimeOrDuration) > 0 && string(p.TimeOrDuration) != "null" {
		row.TimeOrDuration = p.TimeOrDuration
	}
	return row
}

// WinProbability implements Scorable; result rows carry no probability.
func (r SessionResultRow) WinProbability() (float64, *float64, bool) {
	return 0, nil, false
}

// ResultPoints implements Scorable.
func (r SessionResultRow) ResultPoints() (float64, bool) {
	if r.Points == nil {
		return 0, false
	}
	return *r.Points, true
}

// Summary is the model accuracy summary for a season.
type Summary struct {
	Season int     `json:"season"`
	NRaces int     `json:"n_races"`
	NWins  int     `json:"n_wins"`
	HitAt1 float64 `json:"hit_at_1"`
	HitAt3 float64 `json:"hit_at_3"`
}

// TyreCompound names the starting compounds offered by the scenario form.
type TyreCompound string

const (
	TyreSoft         TyreCompound = "Soft"
	TyreMedium       TyreCompound = "Medium"
	TyreHard         TyreCompound = "Hard"
	TyreIntermediate TyreCompound = "Intermediate"
	TyreWet          TyreCompound = "Wet"
)

// Index maps a compound to the model's starting_compound_index feature.
func (t TyreCompound) Index() int {
	switch t {
	case TyreSoft:
		return 3
	case TyreMedium:
		return 2
	case TyreHard:
		return 1
	case TyreIntermediate:
		return 4
	case TyreWet:
		return 5
	default:
		return 3
	}
}

// ScenarioInput is the scenario form as submitted by the dashboard.
type ScenarioInput struct {
	Season       int          `json:"season" validate:"required,gte=1950"`
	Round        int          `json:"round" validate:"required,gte=1,lte=30"`
	DriverCode   string       `json:"driverCode" validate:"required_without=DriverName,omitempty,max=32"`
	DriverName   string       `json:"driverName" validate:"omitempty,max=64"`
	GridPosition int          `json:"gridPosition" validate:"gte=1,lte=20"`
	RainPercent  float64      `json:"rainPercent" validate:"gte=0,lte=100"`
	Tyre         TyreCompound `json:"tyre" validate:"omitempty,oneof=Soft Medium Hard Intermediate Wet"`
}

// ScenarioRequest is the body POSTed to the scenario prediction endpoint.
type ScenarioRequest struct {
	Season                int     `json:"season"`
	Round                 int     `json:"round"`
	DriverCode            string  `json:"driver_code"`
	GridPosition          int     `json:"grid_position"`
	RainProbability       float64 `json:"rain_probability"`
	StartingCompoundIndex int     `json:"starting_compound_index"`
}

// ScenarioPayload is the scenario endpoint response.
type ScenarioPayload struct {
	ScenarioPredWinProba json.RawMessage `json:"scenario_pred_win_proba"`
}

// ScenarioResult reports the scenario win probability, nil when unavailable.
type ScenarioResult struct {
	Request              ScenarioRequest `json:"request"`
	ScenarioPredWinProba *float64        `json:"scenarioPredWinProba"`
}

// RaceDataDriver is a driver option of the scenario form.
type RaceDataDriver struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// RaceDataEntry is a race option of the scenario form.
type RaceDataEntry struct {
	Season int    `json:"season"`
	Round  int    `json:"round"`
	Name   string `json:"name"`
}

// RaceData is the scenario form catalog served as /race-data.json.
// DriversByRace is keyed by RaceKey.
type RaceData struct {
	Races         []RaceDataEntry             `json:"races"`
	DriversByRace map[string][]RaceDataDriver `json:"driversByRace"`
}

// RaceKey builds the "season-round" key used by RaceData.
func RaceKey(season, round int) string {
	return strconv.Itoa(season) + "-" + strconv.Itoa(round)
}
