package backend

import (
	"github.com/samber/lo"

	"github.com/preston-bernstein/f1-dashboard-service/internal/domain/predictions"
)

func mapResults(rows []predictions.SessionResultPayload) []predictions.SessionResultRow {
	return lo.Map(rows, func(p predictions.SessionResultPayload, _ int) predictions.SessionResultRow {
		return predictions.NewSessionResultRow(p)
	})
}

// mapPace keys positions by driver code. A driver without positions maps to
// an empty slice; a later duplicate code wins.
func mapPace(resp paceResponse) map[string][]int {
	out := make(map[string][]int, len(resp.Pace))
	for _, p := range resp.Pace {
		positions := p.Positions
		if positions == nil {
			positions = []int{}
		}
		out[p.DriverCode] = positions
	}
	return out
}
