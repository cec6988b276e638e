package match

import (
	"fmt"
	"math"
	"strings"

	"github.com/nataliekozlowskii/lab-data-processing/internal/refdata"
)

// DeviationFunc computes the normalized deviation of one measured value
// from one reference row. The aggregator and ranker never look inside
// it, so the closeness policy can be swapped without touching them.
type DeviationFunc func(value float64, row refdata.Row) float64

// ZScore is the default metric: absolute deviation from the published
// mean in units of the published SD. A zero SD demands an exact mean
// match; any other value is maximally penalized instead of dividing by
// zero.
func ZScore(value float64, row refdata.Row) float64 {
	if row.SD > 0 {
		return math.Abs(value-row.Mean) / row.SD
	}
	if value == row.Mean {
		return 0
	}
	return math.Inf(1)
}

// PercentDeviation measures relative distance from the published mean.
func PercentDeviation(value float64, row refdata.Row) float64 {
	if row.Mean != 0 {
		return math.Abs(value-row.Mean) / math.Abs(row.Mean)
	}
	if value == 0 {
		return 0
	}
	return math.Inf(1)
}

// AbsoluteDeviation measures raw distance from the published mean.
func AbsoluteDeviation(value float64, row refdata.Row) float64 {
	return math.Abs(value - row.Mean)
}

// MetricByName resolves a metric selected by flag or config.
func MetricByName(name string) (DeviationFunc, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "zscore", "z":
		return ZScore, nil
	case "percent", "pct":
		return PercentDeviation, nil
	case "absolute", "abs":
		return AbsoluteDeviation, nil
	default:
		return nil, fmt.Errorf("unknown metric: %s (use zscore|percent|absolute)", name)
	}
}
