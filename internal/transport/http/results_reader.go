package http

import (
	"gradecli/internal/services"
	"gradecli/pkg/contracts/domain"
)

// ResultsReader is what the handlers need from the results store.
type ResultsReader interface {
	// Semesters returns the processed runs in configuration order.
	Semesters() []*services.ProcessedSemester

	// Semester returns the processed run for a semester name.
	Semester(name string) (*services.ProcessedSemester, bool)

	// Roster returns the student roster.
	Roster() *domain.Roster

	// Grades returns the grade-value table.
	Grades() domain.GradeTable

	// CumulativeGPA computes a student's standing across the loaded runs.
	CumulativeGPA(index int) float64
}

// Refresher is implemented by stores that can reprocess their inputs.
type Refresher interface {
	Refresh() error
}
