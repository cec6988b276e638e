// Package match scores a measured sample series against every candidate
// (instrument, group) pair in a reference catalog and ranks the
// candidates by closeness.
package match

import (
	"github.com/nataliekozlowskii/lab-data-processing/internal/refdata"
	"github.com/nataliekozlowskii/lab-data-processing/internal/sampledata"
)

// Result is one full matching run over a catalog and series. Scores are
// ranked best first.
type Result struct {
	Scores   []GroupScore
	Warnings []string
}

// Best returns the top-ranked candidate. Valid on any Result produced by
// Run, which never returns an empty ranking without an error.
func (r *Result) Best() GroupScore {
	return r.Scores[0]
}

// Run scores every candidate group in the catalog against the series and
// returns the ranked result. Candidates with no overlapping samples are
// absent from the result; ErrEmptyOverlap is returned when that holds
// for every candidate.
func Run(catalog *refdata.Catalog, series *sampledata.Series, opt Options) (*Result, error) {
	if opt.Metric == nil {
		opt.Metric = ZScore
	}
	res := &Result{}
	for _, cand := range catalog.Candidates() {
		gs, ok, warns := Aggregate(cand, series, catalog, opt)
		res.Warnings = append(res.Warnings, warns...)
		if !ok {
			continue
		}
		res.Scores = append(res.Scores, gs)
	}
	ranked, err := Rank(res.Scores)
	if err != nil {
		return nil, err
	}
	res.Scores = ranked
	return res, nil
}

// MostInRange returns the candidate whose measured values fall inside
// the published reference range most often. Ties resolve to the better
// ranked candidate.
func (r *Result) MostInRange() GroupScore {
	best := r.Scores[0]
	for _, gs := range r.Scores[1:] {
		if gs.InRange > best.InRange {
			best = gs
		}
	}
	return best
}

// MostWithinPercent returns the candidate with the most samples inside
// the configured percent window around the published mean.
func (r *Result) MostWithinPercent() GroupScore {
	best := r.Scores[0]
	for _, gs := range r.Scores[1:] {
		if gs.WithinPercent > best.WithinPercent {
			best = gs
		}
	}
	return best
}

// ClosestEuclidean returns the candidate with the smallest Euclidean
// distance over its overlapping samples. Distances over different
// overlap counts are not directly comparable, so callers should report
// SamplesUsed alongside.
func (r *Result) ClosestEuclidean() GroupScore {
	best := r.Scores[0]
	for _, gs := range r.Scores[1:] {
		if gs.Euclidean < best.Euclidean {
			best = gs
		}
	}
	return best
}
