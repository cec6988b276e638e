package refdata

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// csvAliases maps lowercased header names to row fields, accepting the
// spellings the survey exports use.
var csvAliases = map[string]string{
	"instrument":    "instrument",
	"sample":        "sample",
	"sample number": "sample",
	"group":         "group",
	"labs":          "labs",
	"# labs":        "labs",
	"mean":          "mean",
	"sd":            "sd",
	"low":           "low",
	"low range":     "low",
	"high":          "high",
	"high range":    "high",
	"uncertainty":   "uncertainty",
}

// ParseCSV reads a pre-tabulated catalog. The header row names the
// columns; order does not matter and unknown columns are ignored.
func ParseCSV(r io.Reader, delim rune) (*Catalog, []string, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1
	if delim != 0 {
		cr.Comma = delim
	}

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil, fmt.Errorf("empty catalog file")
		}
		return nil, nil, fmt.Errorf("read header: %w", err)
	}
	idx := make(map[string]int)
	for i, h := range header {
		if field, ok := csvAliases[strings.ToLower(strings.TrimSpace(h))]; ok {
			idx[field] = i
		}
	}
	for _, field := range []string{"instrument", "sample", "group", "labs", "mean", "sd", "low", "high"} {
		if _, ok := idx[field]; !ok {
			return nil, nil, fmt.Errorf("catalog header missing %q column", field)
		}
	}

	var (
		rows     []Row
		warnings []string
		line     = 1
	)
	for {
		rec, err := cr.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, warnings, fmt.Errorf("read row %d: %w", line, err)
		}
		line++
		row, err := csvRow(rec, idx)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("row %d: %v", line, err))
			continue
		}
		rows = append(rows, row)
	}
	cat, err := NewCatalog(rows)
	if err != nil {
		return nil, warnings, err
	}
	return cat, warnings, nil
}

func csvRow(rec []string, idx map[string]int) (Row, error) {
	get := func(field string) string {
		i, ok := idx[field]
		if !ok || i >= len(rec) {
			return ""
		}
		return strings.TrimSpace(rec[i])
	}
	sample, err := strconv.Atoi(get("sample"))
	if err != nil {
		return Row{}, fmt.Errorf("sample number %q: %w", get("sample"), err)
	}
	labs, err := strconv.Atoi(get("labs"))
	if err != nil {
		return Row{}, fmt.Errorf("lab count %q: %w", get("labs"), err)
	}
	row := Row{
		Instrument: get("instrument"),
		Sample:     sample,
		Group:      get("group"),
		Labs:       labs,
	}
	for _, f := range []struct {
		field string
		dst   *float64
	}{
		{"mean", &row.Mean},
		{"sd", &row.SD},
		{"low", &row.Low},
		{"high", &row.High},
		{"uncertainty", &row.Uncertainty},
	} {
		raw := get(f.field)
		if raw == "" && f.field == "uncertainty" {
			continue
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return Row{}, fmt.Errorf("%s %q: %w", f.field, raw, err)
		}
		*f.dst = v
	}
	return row, nil
}

// sniffDelimiter picks the CSV delimiter from the filename.
func sniffDelimiter(path string) rune {
	if strings.HasSuffix(strings.ToLower(path), ".tsv") {
		return '\t'
	}
	return ','
}

// openAndParseCSV is the file-path entry used by the loader registry.
func openAndParseCSV(path string) (*Catalog, []string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open catalog: %w", err)
	}
	defer f.Close()
	return ParseCSV(f, sniffDelimiter(path))
}
