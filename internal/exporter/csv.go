package exporter

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
)

// WriteOptions configures CSV writing behavior
type WriteOptions struct {
	Headers   []string
	Records   [][]string
	BOMPrefix bool // Add UTF-8 BOM for Excel compatibility
}

// WriteCSV writes data to a CSV file with the given options.
func (e *Exporter) WriteCSV(filename string, options WriteOptions) (string, error) {
	fullPath := filepath.Join(e.outputDir, filename)

	e.logger.Info("writing CSV file",
		slog.String("path", fullPath),
		slog.Int("record_count", len(options.Records)))

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return "", fmt.Errorf("failed to create directory: %w", err)
	}

	file, err := os.OpenFile(fullPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return "", fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	// BOM helps Excel recognize UTF-8.
	if options.BOMPrefix {
		if _, err := file.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
			return "", fmt.Errorf("failed to write BOM: %w", err)
		}
	}

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if len(options.Headers) > 0 {
		if err := writer.Write(options.Headers); err != nil {
			return "", fmt.Errorf("failed to write headers: %w", err)
		}
	}

	for i, record := range options.Records {
		if err := writer.Write(record); err != nil {
			return "", fmt.Errorf("failed to write record %d: %w", i, err)
		}
	}

	writer.Flush()
	return fullPath, writer.Error()
}

// ExportRankingsCSV writes the ranked results as one flat CSV alongside the
// workbooks.
func (e *Exporter) ExportRankingsCSV(input Input) (string, error) {
	headers := []string{"Rank", "Index", "Name"}
	headers = append(headers, input.Run.AvailableModules...)
	headers = append(headers, "SGPA (4.0)", "SGPA (4.2)", "Max Possible SGPA", "Rank (4.2 scale)")

	records := make([][]string, 0, len(input.Results))
	for _, res := range input.Results {
		record := input.Run.Records[res.Index]

		displayIndex := strconv.Itoa(res.Index)
		name := "Unknown"
		if student, ok := input.Roster.Lookup(res.Index); ok {
			displayIndex = student.DisplayIndex
			name = student.Name
		}

		row := []string{strconv.Itoa(res.Rank), displayIndex, name}
		for _, moduleCode := range input.Run.AvailableModules {
			grade := "-"
			if g, ok := record.Modules[moduleCode]; ok {
				grade = g
			}
			row = append(row, grade)
		}
		row = append(row,
			strconv.FormatFloat(res.GPA40, 'f', 3, 64),
			strconv.FormatFloat(res.GPA42, 'f', 3, 64),
			strconv.FormatFloat(res.MaxPossibleGPA, 'f', 3, 64),
			strconv.Itoa(res.Rank42),
		)
		records = append(records, row)
	}

	filename := fmt.Sprintf("Rankings - %s.csv", input.Run.Semester.Name)
	return e.WriteCSV(filename, WriteOptions{
		Headers:   headers,
		Records:   records,
		BOMPrefix: true,
	})
}
