package reconcile

import (
	"slices"

	"github.com/shopspring/decimal"

	"github.com/preston-bernstein/f1-dashboard-service/internal/domain/predictions"
)

var hundred = decimal.NewFromInt(100)

// ProbabilityValue scores a prediction or result row for ranking.
// Probability rows score as a percentage, preferring the softmax value;
// result rows score by points; anything else scores zero.
func ProbabilityValue(row predictions.Scorable) float64 {
	if row == nil {
		return 0
	}
	if raw, softmax, ok := row.WinProbability(); ok {
		p := raw
		if softmax != nil {
			p = *softmax
		}
		return decimal.NewFromFloat(p).Mul(hundred).InexactFloat64()
	}
	if points, ok := row.ResultPoints(); ok {
		return points
	}
	return 0
}

// TopByProbability returns up to n rows ordered by ProbabilityValue,
// highest first. Ties keep input order.
func TopByProbability[T predictions.Scorable](rows []T, n int) []T {
	sorted := slices.Clone(rows)
	slices.SortStableFunc(sorted, func(a, b T) int {
		va, vb := ProbabilityValue(a), ProbabilityValue(b)
		switch {
		case va > vb:
			return -1
		case va < vb:
			return 1
		default:
			return 0
		}
	})
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}

// TopPredictions picks the headline three: predictions when any exist,
// otherwise race results.
func TopPredictions(preds []predictions.RacePrediction, results []predictions.SessionResultRow) []predictions.Scorable {
	var source []predictions.Scorable
	if len(preds) > 0 {
		source = make([]predictions.Scorable, len(preds))
		for i, p := range preds {
			source[i] = p
		}
	} else {
		source = make([]predictions.Scorable, len(results))
		for i, r := range results {
			source[i] = r
		}
	}
	return TopByProbability(source, 3)
}

// MapField converts the backend predictions field into per-driver predictions.
func MapField(season, round int, field []predictions.FieldEntry) []predictions.RacePrediction {
	out := make([]predictions.RacePrediction, 0, len(field))
	for _, f := range field {
		out = append(out, predictions.RacePrediction{
			Season:              season,
			Round:               round,
			DriverCode:          f.DriverCode.GetOrZero(),
			DriverName:          f.DriverName.GetOrZero(),
			TeamName:            f.TeamName.GetOrZero(),
			PredWinProba:        f.PWin.GetOr(0),
			PredWinProbaSoftmax: f.PTop3.Ptr(),
			GridPosition:        f.GridPosition.Ptr(),
		})
	}
	return out
}
