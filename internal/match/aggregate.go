package match

import (
	"fmt"
	"math"

	"github.com/montanaflynn/stats"
	"github.com/nataliekozlowskii/lab-data-processing/internal/refdata"
	"github.com/nataliekozlowskii/lab-data-processing/internal/sampledata"
)

// InfinitePenalty replaces an undefined deviation (zero SD with a
// non-matching value) in the composite so the candidate stays rankable
// instead of poisoning its mean with +Inf. Strictly larger than any
// z-score a real survey row can produce.
const InfinitePenalty = 1e9

// Options configure a matching run.
type Options struct {
	// Metric is the per-sample deviation policy. Nil means ZScore.
	Metric DeviationFunc
	// WithinPercent is the acceptance window, in percent of the
	// published mean, for the supplementary within-percent count.
	WithinPercent float64
}

// DefaultOptions returns the standard z-score run configuration.
func DefaultOptions() Options {
	return Options{Metric: ZScore, WithinPercent: 30}
}

// GroupScore is the aggregate closeness of one candidate group across
// the samples it shares with the series.
type GroupScore struct {
	Candidate refdata.Candidate
	// Composite is the arithmetic mean of the per-sample deviations;
	// smaller is closer.
	Composite float64
	// Median is the median per-sample deviation, reported alongside the
	// mean as a robustness check.
	Median      float64
	SamplesUsed int
	Labs        int
	// InRange counts samples inside the published low..high range.
	InRange int
	// WithinPercent counts samples within Options.WithinPercent of the
	// published mean.
	WithinPercent int
	// Euclidean is the straight-line distance between the measured
	// values and the published means over the overlapping samples.
	Euclidean float64
}

// Aggregate folds the per-sample deviations for one candidate into a
// single score. ok is false when the candidate shares no sample numbers
// with the series; such candidates are dropped from ranking entirely
// rather than scored as zero. The result does not depend on the order
// samples are processed in.
func Aggregate(cand refdata.Candidate, series *sampledata.Series, catalog *refdata.Catalog, opt Options) (gs GroupScore, ok bool, warnings []string) {
	if opt.Metric == nil {
		opt.Metric = ZScore
	}
	rows := catalog.Rows(cand)
	if len(rows) == 0 {
		return GroupScore{}, false, nil
	}
	gs.Candidate = cand

	// Lab counts are assumed constant across a group's rows; when the
	// survey disagrees, the lowest sample number wins and the run
	// carries a warning instead of failing.
	gs.Labs = rows[0].Labs
	for _, row := range rows[1:] {
		if row.Labs != gs.Labs {
			warnings = append(warnings, fmt.Sprintf(
				"%s: lab count varies across sample rows; using %d from sample %d",
				cand, gs.Labs, rows[0].Sample))
			break
		}
	}

	var (
		devs  []float64
		sumSq float64
	)
	for _, row := range rows {
		value, present := series.Value(row.Sample)
		if !present {
			continue
		}
		d := Score(value, row, opt.Metric)
		z := d.Z
		if math.IsInf(z, 1) {
			z = InfinitePenalty
		}
		devs = append(devs, z)
		if d.InRange {
			gs.InRange++
		}
		if withinPercent(value, row, opt.WithinPercent) {
			gs.WithinPercent++
		}
		diff := value - row.Mean
		sumSq += diff * diff
		gs.SamplesUsed++
	}
	if gs.SamplesUsed == 0 {
		return GroupScore{}, false, warnings
	}

	mean, err := stats.Mean(devs)
	if err != nil {
		return GroupScore{}, false, warnings
	}
	gs.Composite = mean
	if med, err := stats.Median(devs); err == nil {
		gs.Median = med
	}
	gs.Euclidean = math.Sqrt(sumSq)
	return gs, true, warnings
}

func withinPercent(value float64, row refdata.Row, pct float64) bool {
	if pct <= 0 {
		return false
	}
	if row.Mean == 0 {
		return value == 0
	}
	return math.Abs((value-row.Mean)/row.Mean) <= pct/100
}
