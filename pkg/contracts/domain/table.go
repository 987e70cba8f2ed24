package domain

// RawTable is one 2-D text grid produced by the external table-extraction
// collaborator for a single physical table region of a result sheet. Cells
// may be empty; rows may be ragged. A RawTable is transient: it is discarded
// once records have been extracted from it.
type RawTable struct {
	Source string
	Cells  [][]string
}

// Rows returns the number of rows in the table.
func (t *RawTable) Rows() int {
	return len(t.Cells)
}

// Cols returns the widest row length in the table.
func (t *RawTable) Cols() int {
	max := 0
	for _, row := range t.Cells {
		if len(row) > max {
			max = len(row)
		}
	}
	return max
}

// Cell returns the cell at (row, col), or the empty string when the row is
// ragged and does not reach col.
func (t *RawTable) Cell(row, col int) string {
	if row < 0 || row >= len(t.Cells) {
		return ""
	}
	r := t.Cells[row]
	if col < 0 || col >= len(r) {
		return ""
	}
	return r[col]
}

// ColumnRole is the classification of one column of a cleaned table.
type ColumnRole string

const (
	RoleIndex   ColumnRole = "index"
	RoleGrade   ColumnRole = "grade"
	RoleUnknown ColumnRole = "unknown"
)

// ColumnPair binds an index column to the grade column it was matched with.
type ColumnPair struct {
	IndexCol int
	GradeCol int
}

// IndexGradeRecord is one validated (student index, grade) observation
// extracted from a table row. Later records for the same student and module
// overwrite earlier ones.
type IndexGradeRecord struct {
	Index int
	Grade string
}
