package extraction

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"gradecli/pkg/contracts/domain"
)

func testGrades() domain.GradeTable {
	return domain.GradeTable{
		"A+": {GPA40: 4.0, GPA42: 4.2},
		"A":  {GPA40: 4.0, GPA42: 4.0},
		"A-": {GPA40: 3.7, GPA42: 3.7},
		"B+": {GPA40: 3.3, GPA42: 3.3},
		"B":  {GPA40: 3.0, GPA42: 3.0},
		"C":  {GPA40: 2.0, GPA42: 2.0},
		"F":  {GPA40: 0.0, GPA42: 0.0},
	}
}

func TestClassify_HeaderSkipAndRoles(t *testing.T) {
	cells := [][]string{
		{"Index No.", "Name", "Grade"},
	}
	for i := 0; i < 10; i++ {
		cells = append(cells, []string{fmt.Sprintf("23%04dU", i), fmt.Sprintf("Student %d", i), "A"})
	}

	c := NewClassifier(testGrades())
	roles := c.Classify(domain.RawTable{Cells: cells})

	assert.Equal(t, domain.RoleIndex, roles[0])
	assert.Equal(t, domain.RoleUnknown, roles[1])
	assert.Equal(t, domain.RoleGrade, roles[2])
}

func TestClassify_NoHeaderSamplesFromFirstRow(t *testing.T) {
	cells := [][]string{
		{"230012U", "B+"},
		{"230013X", "A"},
		{"230014T", "C"},
	}

	c := NewClassifier(testGrades())
	roles := c.Classify(domain.RawTable{Cells: cells})

	assert.Equal(t, domain.RoleIndex, roles[0])
	assert.Equal(t, domain.RoleGrade, roles[1])
}

func TestClassify_ThresholdToleratesNoise(t *testing.T) {
	// 4 of 10 cells are index-shaped; the rest is OCR junk. At the default
	// 0.3 threshold the column still classifies as index.
	cells := [][]string{}
	for i := 0; i < 4; i++ {
		cells = append(cells, []string{fmt.Sprintf("23001%dU", i)})
	}
	for i := 0; i < 6; i++ {
		cells = append(cells, []string{"~~smudge~~"})
	}

	c := NewClassifier(testGrades())
	roles := c.Classify(domain.RawTable{Cells: cells})
	assert.Equal(t, domain.RoleIndex, roles[0])

	// A stricter threshold rejects the same column.
	strict := NewClassifier(testGrades(), WithThreshold(0.5))
	roles = strict.Classify(domain.RawTable{Cells: cells})
	assert.Equal(t, domain.RoleUnknown, roles[0])
}

func TestClassify_AdministrativeMarkersCountAsGrades(t *testing.T) {
	cells := [][]string{
		{"AB"},
		{"I-we"},
		{"WH"},
	}

	c := NewClassifier(testGrades())
	roles := c.Classify(domain.RawTable{Cells: cells})
	assert.Equal(t, domain.RoleGrade, roles[0])
}

func TestClassify_SampleWindowBoundsTheScan(t *testing.T) {
	// Grades only appear after row 2; with a window of 2 the column stays
	// unknown.
	cells := [][]string{
		{"noise"},
		{"noise"},
		{"A"},
		{"A"},
		{"A"},
	}

	narrow := NewClassifier(testGrades(), WithSampleWindow(2))
	roles := narrow.Classify(domain.RawTable{Cells: cells})
	assert.Equal(t, domain.RoleUnknown, roles[0])

	wide := NewClassifier(testGrades(), WithSampleWindow(20))
	roles = wide.Classify(domain.RawTable{Cells: cells})
	assert.Equal(t, domain.RoleGrade, roles[0])
}

func TestClassify_EmptyColumnIsUnknown(t *testing.T) {
	cells := [][]string{
		{"230012U", ""},
		{"230013X", ""},
	}

	c := NewClassifier(testGrades())
	roles := c.Classify(domain.RawTable{Cells: cells})
	assert.Equal(t, domain.RoleUnknown, roles[1])
}
