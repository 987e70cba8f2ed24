package extraction

import (
	"strings"

	"gradecli/pkg/contracts/domain"
)

// Clean removes rows that are entirely empty and columns that are entirely
// empty, in that order, then renumbers the remaining columns contiguously
// from 0. An all-empty table reduces to a zero-row result; callers skip it.
func Clean(table domain.RawTable) domain.RawTable {
	width := table.Cols()

	var rows [][]string
	for _, row := range table.Cells {
		if rowEmpty(row) {
			continue
		}
		// Pad ragged rows so column removal sees a rectangular grid.
		padded := make([]string, width)
		copy(padded, row)
		rows = append(rows, padded)
	}

	if len(rows) == 0 {
		return domain.RawTable{Source: table.Source}
	}

	keep := make([]int, 0, width)
	for col := 0; col < width; col++ {
		for _, row := range rows {
			if strings.TrimSpace(row[col]) != "" {
				keep = append(keep, col)
				break
			}
		}
	}

	cleaned := make([][]string, len(rows))
	for i, row := range rows {
		out := make([]string, len(keep))
		for j, col := range keep {
			out[j] = row[col]
		}
		cleaned[i] = out
	}

	return domain.RawTable{Source: table.Source, Cells: cleaned}
}

func rowEmpty(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
