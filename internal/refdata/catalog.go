package refdata

import (
	"fmt"
	"sort"
)

// Catalog is an immutable collection of reference rows keyed by
// (instrument, sample number, group).
type Catalog struct {
	rows map[rowKey]Row
}

// NewCatalog validates rows and builds a catalog. Duplicate
// (instrument, sample, group) keys are rejected.
func NewCatalog(rows []Row) (*Catalog, error) {
	c := &Catalog{rows: make(map[rowKey]Row, len(rows))}
	for _, r := range rows {
		if err := r.Validate(); err != nil {
			return nil, err
		}
		k := rowKey{r.Instrument, r.Sample, r.Group}
		if _, ok := c.rows[k]; ok {
			return nil, fmt.Errorf("duplicate reference row: %s sample %d (%s)", r.Instrument, r.Sample, r.Group)
		}
		c.rows[k] = r
	}
	return c, nil
}

// Len returns the number of reference rows in the catalog.
func (c *Catalog) Len() int {
	return len(c.rows)
}

// Row returns the reference row published for the candidate at the given
// sample number, if any.
func (c *Catalog) Row(cand Candidate, sample int) (Row, bool) {
	r, ok := c.rows[rowKey{cand.Instrument, sample, cand.Group}]
	return r, ok
}

// Rows returns the candidate's rows ordered by sample number.
func (c *Catalog) Rows(cand Candidate) []Row {
	var out []Row
	for k, r := range c.rows {
		if k.instrument == cand.Instrument && k.group == cand.Group {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Sample < out[j].Sample })
	return out
}

// Candidates returns the distinct (instrument, group) pairs appearing in
// the catalog, ordered by instrument then group.
func (c *Catalog) Candidates() []Candidate {
	seen := make(map[Candidate]bool)
	var out []Candidate
	for k := range c.rows {
		cand := Candidate{Instrument: k.instrument, Group: k.group}
		if !seen[cand] {
			seen[cand] = true
			out = append(out, cand)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Instrument != out[j].Instrument {
			return out[i].Instrument < out[j].Instrument
		}
		return out[i].Group < out[j].Group
	})
	return out
}

// Samples returns the sorted distinct sample numbers in the catalog.
func (c *Catalog) Samples() []int {
	seen := make(map[int]bool)
	var out []int
	for k := range c.rows {
		if !seen[k.sample] {
			seen[k.sample] = true
			out = append(out, k.sample)
		}
	}
	sort.Ints(out)
	return out
}

// Groups returns the sorted distinct group labels in the catalog.
func (c *Catalog) Groups() []string {
	seen := make(map[string]bool)
	var out []string
	for k := range c.rows {
		if !seen[k.group] {
			seen[k.group] = true
			out = append(out, k.group)
		}
	}
	sort.Strings(out)
	return out
}
