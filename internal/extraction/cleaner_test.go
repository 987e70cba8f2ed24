package extraction

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"gradecli/pkg/contracts/domain"
)

func TestClean_RemovesEmptyRowsAndColumns(t *testing.T) {
	table := domain.RawTable{
		Source: "EN1010",
		Cells: [][]string{
			{"", "", ""},
			{"230012U", "", "A"},
			{"  ", "", " "},
			{"230013X", "", "B+"},
		},
	}

	cleaned := Clean(table)

	assert.Equal(t, [][]string{
		{"230012U", "A"},
		{"230013X", "B+"},
	}, cleaned.Cells)
	assert.Equal(t, "EN1010", cleaned.Source)
}

func TestClean_RaggedRowsArePadded(t *testing.T) {
	table := domain.RawTable{
		Cells: [][]string{
			{"230012U"},
			{"230013X", "B"},
		},
	}

	cleaned := Clean(table)

	assert.Equal(t, 2, cleaned.Cols())
	assert.Equal(t, "", cleaned.Cell(0, 1))
	assert.Equal(t, "B", cleaned.Cell(1, 1))
}

func TestClean_AllEmptyTable(t *testing.T) {
	table := domain.RawTable{
		Cells: [][]string{
			{"", ""},
			{" ", ""},
		},
	}

	cleaned := Clean(table)
	assert.Zero(t, cleaned.Rows())
}

func TestClean_EmptyInput(t *testing.T) {
	cleaned := Clean(domain.RawTable{})
	assert.Zero(t, cleaned.Rows())
	assert.Zero(t, cleaned.Cols())
}
