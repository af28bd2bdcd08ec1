package reconcile

import (
	"bytes"
	"slices"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"github.com/preston-bernstein/f1-dashboard-service/internal/archive"
	"github.com/preston-bernstein/f1-dashboard-service/internal/domain/predictions"
)

// ScenarioRequest shapes the form input into the prediction endpoint body.
func ScenarioRequest(in predictions.ScenarioInput) predictions.ScenarioRequest {
	driver := strings.TrimSpace(in.DriverCode)
	if driver == "" {
		driver = strings.TrimSpace(in.DriverName)
	}
	return predictions.ScenarioRequest{
		Season:                in.Season,
		Round:                 in.Round,
		DriverCode:            driver,
		GridPosition:          in.GridPosition,
		RainProbability:       decimal.NewFromFloat(in.RainPercent).Div(hundred).InexactFloat64(),
		StartingCompoundIndex: in.Tyre.Index(),
	}
}

// ScenarioProbability extracts the scenario probability when it is a JSON number.
func ScenarioProbability(p predictions.ScenarioPayload) *float64 {
	raw := bytes.TrimSpace(p.ScenarioPredWinProba)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil
	}
	var v float64
	if err := jsoniter.ConfigCompatibleWithStandardLibrary.Unmarshal(raw, &v); err != nil {
		return nil
	}
	return &v
}

// RaceData builds the scenario form catalog from the archive: every calendar
// race, each with its season roster. Codes come from the driver table when
// the surname matches.
func (r *Reconciler) RaceData() predictions.RaceData {
	data := predictions.RaceData{DriversByRace: map[string][]predictions.RaceDataDriver{}}
	for _, year := range r.archive.Years() {
		season, ok := r.archive.Season(year)
		if !ok {
			continue
		}
		roster := r.seasonRoster(season)
		for _, race := range season.Races {
			data.Races = append(data.Races, predictions.RaceDataEntry{
				Season: year,
				Round:  race.Round,
				Name:   race.Name,
			})
			data.DriversByRace[predictions.RaceKey(year, race.Round)] = slices.Clone(roster)
		}
	}
	return data
}

func (r *Reconciler) seasonRoster(season archive.Season) []predictions.RaceDataDriver {
	var names []string
	for _, t := range season.Teams {
		for _, d := range t.Drivers {
			names = append(names, d.Name)
		}
	}
	return lo.Map(lo.Uniq(names), func(name string, _ int) predictions.RaceDataDriver {
		driver := predictions.RaceDataDriver{Name: name}
		if d, ok := r.DriverBySurname(name); ok {
			driver.Code = d.Code
		}
		return driver
	})
}
