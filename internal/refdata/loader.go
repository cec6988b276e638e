package refdata

import (
	"fmt"
	"os"
	"strings"
)

// Loader reads a reference catalog from a file on disk.
type Loader interface {
	CanLoad(filename string) bool
	Load(path string) (*Catalog, []string, error)
}

var registry []Loader

// Register adds a loader implementation to the registry.
func Register(l Loader) {
	registry = append(registry, l)
}

// Load selects a loader based on filename and returns the parsed
// catalog with any per-line warnings. Files with no recognized
// extension are treated as sectioned survey reports.
func Load(path string) (*Catalog, []string, error) {
	for _, l := range registry {
		if l.CanLoad(path) {
			return l.Load(path)
		}
	}
	return reportLoader{}.Load(path)
}

type csvLoader struct{}

func (csvLoader) CanLoad(filename string) bool {
	name := strings.ToLower(filename)
	return strings.HasSuffix(name, ".csv") || strings.HasSuffix(name, ".tsv")
}

func (csvLoader) Load(path string) (*Catalog, []string, error) {
	return openAndParseCSV(path)
}

type reportLoader struct{}

func (reportLoader) CanLoad(filename string) bool {
	return strings.HasSuffix(strings.ToLower(filename), ".txt")
}

func (reportLoader) Load(path string) (*Catalog, []string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open report: %w", err)
	}
	defer f.Close()
	return ParseReport(f)
}

func init() {
	Register(csvLoader{})
	Register(reportLoader{})
}
