package exporter

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"github.com/xuri/excelize/v2"

	apperrors "gradecli/internal/errors"
	"gradecli/pkg/contracts/domain"
)

// Exporter writes semester run artifacts into an output directory.
type Exporter struct {
	outputDir string
	logger    *slog.Logger
}

// NewExporter creates an exporter rooted at outputDir.
func NewExporter(outputDir string, logger *slog.Logger) *Exporter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Exporter{outputDir: outputDir, logger: logger}
}

// Input carries everything one export needs.
type Input struct {
	Run     *domain.SemesterRun
	Results []domain.GpaResult
	Roster  *domain.Roster
	Grades  domain.GradeTable
	RunID   string
}

// sheetWriter accumulates cell writes on one sheet and keeps the first
// error, so layout code stays free of per-cell error plumbing.
type sheetWriter struct {
	f     *excelize.File
	sheet string
	err   error
}

// set writes value at 0-based (col, row).
func (w *sheetWriter) set(col, row int, value interface{}) {
	if w.err != nil {
		return
	}
	cell, err := excelize.CoordinatesToCellName(col+1, row+1)
	if err != nil {
		w.err = err
		return
	}
	w.err = w.f.SetCellValue(w.sheet, cell, value)
}

// ExportWorkbooks writes the basic and the extended results workbook and
// returns their paths.
func (e *Exporter) ExportWorkbooks(input Input) ([]string, error) {
	if err := os.MkdirAll(e.outputDir, 0755); err != nil {
		return nil, apperrors.NewStorageError("failed to create output directory", err)
	}

	basic := filepath.Join(e.outputDir, fmt.Sprintf("Results - %s.xlsx", input.Run.Semester.Name))
	if err := e.writeWorkbook(basic, input, false); err != nil {
		return nil, err
	}

	extended := filepath.Join(e.outputDir, fmt.Sprintf("Results - %s (Extended).xlsx", input.Run.Semester.Name))
	if err := e.writeWorkbook(extended, input, true); err != nil {
		return nil, err
	}

	return []string{basic, extended}, nil
}

// writeWorkbook populates one workbook and closes it before returning.
func (e *Exporter) writeWorkbook(path string, input Input, extended bool) error {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Results"
	f.SetSheetName(f.GetSheetName(0), sheet)
	w := &sheetWriter{f: f, sheet: sheet}

	modules := input.Run.AvailableModules
	nModules := len(modules)
	totalModules := len(input.Run.Semester.Modules)
	partial := nModules != totalModules

	// Fixed leading columns, then one column per available module.
	w.set(0, 0, "Rank")
	w.set(1, 0, "Index")
	dataStart := 2
	if extended {
		w.set(2, 0, "Name")
		dataStart = 3
	}
	for i, moduleCode := range modules {
		w.set(dataStart+i, 0, moduleCode)
	}

	gpaCol := dataStart + nModules
	if partial {
		w.set(gpaCol, 0, "Current SGPA")
		w.set(gpaCol+1, 0, "Max Possible SGPA")
		if extended {
			w.set(gpaCol+2, 0, "Rank (4.2 scale)")
		}
	} else {
		w.set(gpaCol, 0, "SGPA")
		if extended {
			w.set(gpaCol+1, 0, "Rank (4.2 scale)")
		}
	}

	for i, res := range input.Results {
		row := i + 1
		record := input.Run.Records[res.Index]

		w.set(0, row, res.Rank)

		displayIndex := fmt.Sprintf("%d", res.Index)
		name := "Unknown"
		if student, ok := input.Roster.Lookup(res.Index); ok {
			displayIndex = student.DisplayIndex
			name = student.Name
		}
		w.set(1, row, displayIndex)
		if extended {
			w.set(2, row, name)
		}

		for j, moduleCode := range modules {
			grade := "-"
			if g, ok := record.Modules[moduleCode]; ok {
				grade = g
			}
			w.set(dataStart+j, row, grade)
		}

		w.set(gpaCol, row, res.GPA40)
		if partial {
			w.set(gpaCol+1, row, res.MaxPossibleGPA)
			if extended {
				w.set(gpaCol+2, row, res.Rank42)
			}
		} else if extended {
			w.set(gpaCol+1, row, res.Rank42)
		}
	}

	e.writeGradeCounts(w, input, gpaCol+gradeCountGap(partial, extended))

	if w.err != nil {
		return apperrors.NewStorageError(fmt.Sprintf("failed to populate workbook %s", path), w.err)
	}
	if err := f.SaveAs(path); err != nil {
		return apperrors.NewStorageError(fmt.Sprintf("failed to save workbook %s", path), err)
	}

	e.logger.Info("exported workbook",
		slog.String("path", path),
		slog.String("run_id", input.RunID),
		slog.Int("students", len(input.Results)))
	return nil
}

// gradeCountGap leaves a visual gap between the results block and the
// grade-count statistics block.
func gradeCountGap(partial, extended bool) int {
	gap := 4
	if partial {
		gap = 3
	}
	if extended {
		gap++
	}
	return gap
}

// writeGradeCounts lays out, per available module, the number of students
// holding each grade and its share of that module's results.
func (e *Exporter) writeGradeCounts(w *sheetWriter, input Input, colOffset int) {
	for i, moduleCode := range input.Run.AvailableModules {
		w.set(colOffset+i, 0, moduleCode)
	}

	for row, grade := range GradeOrder(input.Grades) {
		w.set(colOffset-1, row+1, grade)

		for i, moduleCode := range input.Run.AvailableModules {
			stats := input.Run.ModuleStats[moduleCode]
			count := stats.GradeCounts[grade]
			total := 0
			for _, c := range stats.GradeCounts {
				total += c
			}
			percentage := 0.0
			if total > 0 {
				percentage = float64(count) / float64(total) * 100
			}
			w.set(colOffset+i, row+1, fmt.Sprintf("%d(%.1f%%)", count, percentage))
		}
	}
}

// GradeOrder returns the grade tokens of a table in a stable display order:
// by descending 4.2-scale value, then alphabetically.
func GradeOrder(grades domain.GradeTable) []string {
	tokens := make([]string, 0, len(grades))
	for token := range grades {
		tokens = append(tokens, token)
	}
	sort.Slice(tokens, func(i, j int) bool {
		vi, vj := grades[tokens[i]].GPA42, grades[tokens[j]].GPA42
		if vi != vj {
			return vi > vj
		}
		return tokens[i] < tokens[j]
	})
	return tokens
}
