// Package files discovers result-grid files inside a semester's results
// directory and reports which configured modules they cover.
package files

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Report summarizes one scan of a results directory against the configured
// module codes.
type Report struct {
	// Found holds the module codes a grid source exists for, sorted.
	Found []string
	// Missing holds the module codes with no grid source, sorted.
	Missing []string
	// Unclaimed holds file names that match no configured module.
	Unclaimed []string
}

// Discovery scans one results directory.
type Discovery struct {
	dir string
}

// NewDiscovery creates a discovery over the given results directory.
func NewDiscovery(dir string) *Discovery {
	return &Discovery{dir: dir}
}

// Scan matches the directory contents against the configured module codes.
// A module is covered by <code>.xlsx, <code>.csv, or a <code>/ subdirectory
// holding CSV grids. A missing results directory yields an all-missing
// report, not an error.
func (d *Discovery) Scan(modules []string) (*Report, error) {
	report := &Report{}

	entries, err := os.ReadDir(d.dir)
	if os.IsNotExist(err) {
		report.Missing = append(report.Missing, modules...)
		sort.Strings(report.Missing)
		return report, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read results directory %s: %w", d.dir, err)
	}

	wanted := make(map[string]bool, len(modules))
	for _, code := range modules {
		wanted[code] = true
	}

	covered := make(map[string]bool)
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasPrefix(name, "~$") {
			continue
		}

		code := name
		if !entry.IsDir() {
			ext := strings.ToLower(filepath.Ext(name))
			if ext != ".xlsx" && ext != ".csv" {
				report.Unclaimed = append(report.Unclaimed, name)
				continue
			}
			code = strings.TrimSuffix(name, filepath.Ext(name))
		}

		if !wanted[code] {
			report.Unclaimed = append(report.Unclaimed, name)
			continue
		}
		covered[code] = true
	}

	for _, code := range modules {
		if covered[code] {
			report.Found = append(report.Found, code)
		} else {
			report.Missing = append(report.Missing, code)
		}
	}
	sort.Strings(report.Found)
	sort.Strings(report.Missing)
	sort.Strings(report.Unclaimed)

	return report, nil
}
