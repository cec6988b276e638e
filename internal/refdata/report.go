package refdata

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
)

// Survey reports interleave section headers with data blocks: a SAMPLE
// header selects the sample number for the rows that follow, and a group
// header selects which comparison group those rows belong to.
var sampleHeaderRe = regexp.MustCompile(`SAMPLE\s+IA-(\d+)`)

var groupHeaders = []struct{ marker, label string }{
	{"Instrument Groups", "Instrument Group"},
	{"Method Groups", "Method Group"},
	{"Reagent Groups", "Reagent Group"},
	{"Peer Group", "Peer Group"},
}

// ParseReport reads the sectioned survey report format and returns the
// catalog plus per-line warnings for content it had to skip. Blank lines
// and "All Participants" summary rows are ignored. Data lines carry the
// instrument name followed by six numeric columns: lab count, mean, SD,
// low range, high range, uncertainty; the low/high pair is printed with
// a separating hyphen.
func ParseReport(r io.Reader) (*Catalog, []string, error) {
	var (
		rows     []Row
		warnings []string
		sample   int
		group    string
		line     int
	)
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line++
		text := sc.Text()
		if m := sampleHeaderRe.FindStringSubmatch(text); m != nil {
			n, _ := strconv.Atoi(m[1])
			sample = n
			continue
		}
		if label, ok := matchGroupHeader(text); ok {
			group = label
			continue
		}
		trimmed := strings.TrimSpace(text)
		if trimmed == "" || strings.Contains(text, "All Participants") {
			continue
		}
		if sample == 0 {
			warnings = append(warnings, fmt.Sprintf("line %d: data before any SAMPLE header, skipped", line))
			continue
		}
		if group == "" {
			warnings = append(warnings, fmt.Sprintf("line %d: data before any group header, skipped", line))
			continue
		}
		row, err := parseDataLine(trimmed)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("line %d: %v", line, err))
			continue
		}
		row.Sample = sample
		row.Group = group
		rows = append(rows, row)
	}
	if err := sc.Err(); err != nil {
		return nil, warnings, fmt.Errorf("read report: %w", err)
	}
	cat, err := NewCatalog(rows)
	if err != nil {
		return nil, warnings, err
	}
	return cat, warnings, nil
}

func matchGroupHeader(line string) (string, bool) {
	for _, h := range groupHeaders {
		if strings.Contains(line, h.marker) {
			return h.label, true
		}
	}
	return "", false
}

// parseDataLine splits an instrument data line into the name tokens and
// the trailing six numeric columns. Standalone hyphens (the low-high
// range separator) are dropped before splitting off the numbers.
func parseDataLine(s string) (Row, error) {
	var fields []string
	for _, f := range strings.Fields(s) {
		if f == "-" {
			continue
		}
		fields = append(fields, f)
	}
	if len(fields) < 7 {
		return Row{}, fmt.Errorf("malformed data line: %q", s)
	}
	nums := fields[len(fields)-6:]
	name := strings.Join(fields[:len(fields)-6], " ")

	labs, err := strconv.Atoi(nums[0])
	if err != nil {
		return Row{}, fmt.Errorf("lab count %q: %w", nums[0], err)
	}
	vals := make([]float64, 5)
	for i, col := range []string{"mean", "SD", "low range", "high range", "uncertainty"} {
		v, err := strconv.ParseFloat(nums[i+1], 64)
		if err != nil {
			return Row{}, fmt.Errorf("%s %q: %w", col, nums[i+1], err)
		}
		vals[i] = v
	}
	return Row{
		Instrument:  name,
		Labs:        labs,
		Mean:        vals[0],
		SD:          vals[1],
		Low:         vals[2],
		High:        vals[3],
		Uncertainty: vals[4],
	}, nil
}
