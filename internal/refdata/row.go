package refdata

import "fmt"

// Row is one published statistic set for an (instrument, sample, group)
// combination in a peer comparison survey.
type Row struct {
	Instrument  string
	Sample      int
	Group       string
	Labs        int
	Mean        float64
	SD          float64
	Low         float64
	High        float64
	Uncertainty float64
}

// Validate checks the construction invariants for a row. Rows are
// immutable once they enter a Catalog, so this runs exactly once.
func (r Row) Validate() error {
	if r.Instrument == "" {
		return fmt.Errorf("reference row: empty instrument name")
	}
	if r.Sample < 1 {
		return fmt.Errorf("reference row %q: sample number %d must be positive", r.Instrument, r.Sample)
	}
	if r.Labs < 1 {
		return fmt.Errorf("reference row %q sample %d: lab count %d must be positive", r.Instrument, r.Sample, r.Labs)
	}
	if r.SD < 0 {
		return fmt.Errorf("reference row %q sample %d: negative SD %g", r.Instrument, r.Sample, r.SD)
	}
	if r.Low > r.Mean || r.Mean > r.High {
		return fmt.Errorf("reference row %q sample %d: range [%g, %g] does not bracket mean %g", r.Instrument, r.Sample, r.Low, r.High, r.Mean)
	}
	return nil
}

// Candidate identifies one (instrument, group) pair eligible for matching.
type Candidate struct {
	Instrument string
	Group      string
}

func (c Candidate) String() string {
	return c.Instrument + " / " + c.Group
}

type rowKey struct {
	instrument string
	sample     int
	group      string
}
