// Package tables loads the raw 2-D text grids that an external PDF
// table-extraction service has saved to disk, one file set per module. The
// core is agnostic to the extraction method; anything that yields grids of
// text cells can feed it. Supported carriers are CSV files (one grid per
// file) and XLSX workbooks (one grid per sheet).
package tables

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/xuri/excelize/v2"

	apperrors "gradecli/internal/errors"
	"gradecli/pkg/contracts/domain"
)

// Source loads all extracted grids for one module from a results directory.
type Source struct {
	logger *slog.Logger
}

// NewSource creates a grid source.
func NewSource(logger *slog.Logger) *Source {
	if logger == nil {
		logger = slog.Default()
	}
	return &Source{logger: logger}
}

// ModuleTables returns every grid found for moduleCode under dir, in a
// deterministic order. The lookup tries, in order:
//
//	dir/<module>.xlsx   all sheets
//	dir/<module>.csv    single grid
//	dir/<module>/*.csv  one grid per file, sorted by name
//
// A NOT_FOUND error is returned when none exists; callers treat that as a
// skippable module, not a failure.
func (s *Source) ModuleTables(dir, moduleCode string) ([]domain.RawTable, error) {
	workbook := filepath.Join(dir, moduleCode+".xlsx")
	if fileExists(workbook) {
		return s.readWorkbook(workbook)
	}

	single := filepath.Join(dir, moduleCode+".csv")
	if fileExists(single) {
		table, err := s.readCSV(single)
		if err != nil {
			return nil, err
		}
		return []domain.RawTable{table}, nil
	}

	subdir := filepath.Join(dir, moduleCode)
	if info, err := os.Stat(subdir); err == nil && info.IsDir() {
		return s.readCSVDir(subdir)
	}

	return nil, apperrors.NewNotFoundError(fmt.Sprintf("extracted tables for module %s", moduleCode)).
		WithContext("dir", dir)
}

// readWorkbook loads every sheet of an XLSX file as one grid.
func (s *Source) readWorkbook(path string) ([]domain.RawTable, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, apperrors.NewParsingError(fmt.Sprintf("failed to open workbook %s", path), err)
	}
	defer f.Close()

	var grids []domain.RawTable
	for _, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet)
		if err != nil {
			return nil, apperrors.NewParsingError(fmt.Sprintf("failed to read sheet %s of %s", sheet, path), err)
		}
		grids = append(grids, domain.RawTable{
			Source: fmt.Sprintf("%s#%s", filepath.Base(path), sheet),
			Cells:  rows,
		})
	}

	s.logger.Debug("loaded workbook grids",
		slog.String("path", path),
		slog.Int("grids", len(grids)))
	return grids, nil
}

// readCSV loads one CSV file as a grid. Rows may be ragged.
func (s *Source) readCSV(path string) (domain.RawTable, error) {
	f, err := os.Open(path)
	if err != nil {
		return domain.RawTable{}, apperrors.NewStorageError(fmt.Sprintf("failed to open %s", path), err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return domain.RawTable{}, apperrors.NewParsingError(fmt.Sprintf("failed to parse %s", path), err)
	}

	return domain.RawTable{Source: filepath.Base(path), Cells: records}, nil
}

// readCSVDir loads every CSV file in a directory, sorted by filename so runs
// are reproducible.
func (s *Source) readCSVDir(dir string) ([]domain.RawTable, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, apperrors.NewStorageError(fmt.Sprintf("failed to read directory %s", dir), err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if strings.HasSuffix(strings.ToLower(entry.Name()), ".csv") {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)

	if len(names) == 0 {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("CSV grids in %s", dir))
	}

	var grids []domain.RawTable
	for _, name := range names {
		table, err := s.readCSV(filepath.Join(dir, name))
		if err != nil {
			return nil, err
		}
		grids = append(grids, table)
	}

	return grids, nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
