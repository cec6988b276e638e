// Package report renders the outcome of a matching run for terminal or
// file output.
package report

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/nataliekozlowskii/lab-data-processing/internal/match"
	"github.com/nataliekozlowskii/lab-data-processing/internal/utils"
)

// Report is a renderable view of one matching run.
type Report struct {
	RunID         string             `json:"run_id"`
	ReferencePath string             `json:"reference_path,omitempty"`
	SamplesPath   string             `json:"samples_path,omitempty"`
	Metric        string             `json:"metric"`
	WithinPercent float64            `json:"within_percent"`
	SeriesLen     int                `json:"series_len"`
	SeriesCount   int                `json:"series_count"`
	Top           int                `json:"top,omitempty"`
	Scores        []match.GroupScore `json:"scores"`
	Warnings      []string           `json:"warnings,omitempty"`
}

// New builds a report for a completed run, stamped with a fresh run ID.
// Thin-overlap notes are derived here so every output format carries
// them.
func New(res *match.Result) *Report {
	r := &Report{
		RunID:  uuid.NewString(),
		Metric: "zscore",
		Scores: res.Scores,
	}
	r.Warnings = append(r.Warnings, res.Warnings...)
	return r
}

// ranked returns the scores limited to Top when set.
func (r *Report) ranked() []match.GroupScore {
	if r.Top > 0 && r.Top < len(r.Scores) {
		return r.Scores[:r.Top]
	}
	return r.Scores
}

// notes collects warnings plus thin-overlap advisories: a match computed
// from fewer samples than the series holds is less trustworthy, and the
// user should see that next to the score.
func (r *Report) notes() []string {
	out := append([]string(nil), r.Warnings...)
	if r.SeriesCount > 0 {
		for _, gs := range r.ranked() {
			if gs.SamplesUsed < r.SeriesCount {
				out = append(out, fmt.Sprintf("%s: scored on %d of %d measured samples",
					gs.Candidate, gs.SamplesUsed, r.SeriesCount))
			}
		}
	}
	return out
}

// Render returns a plain-text report.
func (r *Report) Render() string {
	var b strings.Builder
	b.WriteString("[MATCH REPORT]\n")
	b.WriteString(fmt.Sprintf("Run: %s\n", r.RunID))
	if r.ReferencePath != "" {
		b.WriteString(fmt.Sprintf("Reference: %s\n", r.ReferencePath))
	}
	if r.SamplesPath != "" {
		b.WriteString(fmt.Sprintf("Samples: %s (%d values, %d missing)\n",
			r.SamplesPath, r.SeriesCount, r.SeriesLen-r.SeriesCount))
	}
	b.WriteString(fmt.Sprintf("Metric: %s\n", r.Metric))

	b.WriteString("\n[RANKED MATCHES]\n")
	for i, gs := range r.ranked() {
		b.WriteString(fmt.Sprintf("%2d. %s — score %.4f (median %.4f, n=%d, labs %d, in-range %d/%d, within %.0f%% %d/%d)\n",
			i+1, gs.Candidate, gs.Composite, gs.Median, gs.SamplesUsed, gs.Labs,
			gs.InRange, gs.SamplesUsed, r.WithinPercent, gs.WithinPercent, gs.SamplesUsed))
	}

	res := match.Result{Scores: r.Scores}
	if len(r.Scores) > 0 {
		b.WriteString("\n[ALTERNATE MATCHERS]\n")
		eu := res.ClosestEuclidean()
		b.WriteString(fmt.Sprintf("- Lowest Euclidean distance: %s (%.4f over %d samples)\n",
			eu.Candidate, eu.Euclidean, eu.SamplesUsed))
		ir := res.MostInRange()
		b.WriteString(fmt.Sprintf("- Most within reference range: %s (%d/%d)\n",
			ir.Candidate, ir.InRange, ir.SamplesUsed))
		wp := res.MostWithinPercent()
		b.WriteString(fmt.Sprintf("- Most within %.0f%% of mean: %s (%d/%d)\n",
			r.WithinPercent, wp.Candidate, wp.WithinPercent, wp.SamplesUsed))
	}

	if notes := r.notes(); len(notes) > 0 {
		b.WriteString("\n[NOTES]\n")
		for _, n := range notes {
			b.WriteString("- ")
			b.WriteString(n)
			b.WriteString("\n")
		}
	}
	return b.String()
}

// Markdown renders the ranking as a Markdown table for docs or issue
// trackers.
func (r *Report) Markdown() string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("## Match report `%s`\n\n", r.RunID))
	b.WriteString(fmt.Sprintf("Metric: **%s**\n\n", r.Metric))
	b.WriteString("| # | Instrument | Group | Score | Median | Samples | Labs | In range | Within % |\n")
	b.WriteString("| --- | --- | --- | --- | --- | --- | --- | --- | --- |\n")
	for i, gs := range r.ranked() {
		b.WriteString(fmt.Sprintf("| %d | %s | %s | %.4f | %.4f | %d | %d | %d | %d |\n",
			i+1, gs.Candidate.Instrument, gs.Candidate.Group, gs.Composite, gs.Median,
			gs.SamplesUsed, gs.Labs, gs.InRange, gs.WithinPercent))
	}
	if notes := r.notes(); len(notes) > 0 {
		b.WriteString("\n")
		for _, n := range notes {
			b.WriteString(fmt.Sprintf("> %s\n", n))
		}
	}
	return b.String()
}

// JSON renders the report as indented JSON.
func (r *Report) JSON() ([]byte, error) {
	return utils.PrettyJSON(r)
}
