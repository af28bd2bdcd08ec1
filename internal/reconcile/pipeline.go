package reconcile

import (
	"fmt"
	"strconv"

	"github.com/preston-bernstein/f1-dashboard-service/internal/domain/monitor"
	"github.com/preston-bernstein/f1-dashboard-service/internal/domain/predictions"
)

const missingMetric = "--"

// PipelineStatus renders the monitor panel. The monitor's own model summary
// wins over the standalone summary.
func PipelineStatus(summary *predictions.Summary, payload *monitor.Payload) monitor.Status {
	model := summary
	var bronze *monitor.Bronze
	var preds *monitor.Predictions
	if payload != nil {
		if payload.Model != nil {
			model = payload.Model
		}
		bronze = payload.Bronze
		preds = payload.Predictions
	}

	status := monitor.Status{Model: model, HitAt1: missingMetric, HitAt3: missingMetric}
	if model != nil {
		status.HitAt1 = percent(model.HitAt1)
		status.HitAt3 = percent(model.HitAt3)
	}

	if bronze != nil {
		status.Sessions = &bronze.NSessions
		status.Seasons = &bronze.NSeasons
		status.Entries = append(status.Entries, monitor.Entry{
			Level:   monitor.LevelInfo,
			Message: fmt.Sprintf("Bronze ingestion healthy: %d sessions across %d seasons.", bronze.NSessions, bronze.NSeasons),
		})
		if bronze.NResultRows != nil {
			status.Entries = append(status.Entries, monitor.Entry{
				Level:   monitor.LevelSuccess,
				Message: fmt.Sprintf("Session results loaded: %d classification rows.", *bronze.NResultRows),
			})
		}
	}
	if preds != nil {
		season := ""
		switch {
		case preds.Season != nil:
			season = strconv.Itoa(*preds.Season)
		case model != nil:
			season = strconv.Itoa(model.Season)
		}
		status.Entries = append(status.Entries, monitor.Entry{
			Level:   monitor.LevelInfo,
			Message: fmt.Sprintf("predictions.race_win ready with %d rows for season %s.", preds.NRows, season),
		})
	}
	if model != nil {
		status.Entries = append(status.Entries, monitor.Entry{
			Level:   monitor.LevelDebug,
			Message: fmt.Sprintf("Model hit@1=%s%% hit@3=%s%% over %d races.", status.HitAt1, status.HitAt3, model.NRaces),
		})
	}
	if len(status.Entries) == 0 {
		status.Entries = []monitor.Entry{{Level: monitor.LevelInfo, Message: "Monitor online, waiting for metrics."}}
	}
	return status
}

func percent(v float64) string {
	return strconv.FormatFloat(v*100, 'f', 1, 64)
}
