package sampledata

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Series is an ordered, 1-indexed sequence of measured assay values.
// Missing entries keep their position so sample numbers stay aligned
// with the reference survey. Immutable once loaded.
type Series struct {
	values  []float64
	present []bool
}

// New builds a series where every value is present.
func New(values []float64) *Series {
	present := make([]bool, len(values))
	for i := range present {
		present[i] = true
	}
	vals := make([]float64, len(values))
	copy(vals, values)
	return &Series{values: vals, present: present}
}

// Len returns the highest sample number in the series.
func (s *Series) Len() int {
	return len(s.values)
}

// Count returns the number of non-missing values.
func (s *Series) Count() int {
	n := 0
	for _, p := range s.present {
		if p {
			n++
		}
	}
	return n
}

// Value returns the measured value for the given 1-based sample number.
// ok is false for missing entries and out-of-range sample numbers.
func (s *Series) Value(sample int) (float64, bool) {
	if sample < 1 || sample > len(s.values) {
		return 0, false
	}
	if !s.present[sample-1] {
		return 0, false
	}
	return s.values[sample-1], true
}

// missing markers accepted in sample files, lowercased.
var missingMarkers = map[string]bool{
	"": true, "-": true, "na": true, "n/a": true, "missing": true,
}

// Parse reads one measured value per line, assigning sample numbers in
// order starting from 1. Blank lines and NA markers become missing
// entries rather than shifting later sample numbers.
func Parse(r io.Reader) (*Series, error) {
	var (
		values  []float64
		present []bool
		line    int
	)
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line++
		raw := strings.TrimSpace(sc.Text())
		if missingMarkers[strings.ToLower(raw)] {
			values = append(values, 0)
			present = append(present, false)
			continue
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: value %q: %w", line, raw, err)
		}
		values = append(values, v)
		present = append(present, true)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read samples: %w", err)
	}
	if len(values) == 0 {
		return nil, fmt.Errorf("no sample values found")
	}
	return &Series{values: values, present: present}, nil
}

// Load reads a sample series from a file path.
func Load(path string) (*Series, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open samples: %w", err)
	}
	defer f.Close()
	return Parse(f)
}
