package services

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gradecli/internal/config"
	apperrors "gradecli/internal/errors"
)

func writeTestFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

// setupFixture lays out a minimal base directory: two students, one semester
// with two modules, result grids for one of them.
func setupFixture(t *testing.T) *config.Paths {
	t.Helper()
	paths := config.PathsFor(t.TempDir())

	writeTestFile(t, paths.GradesFile, `{
		"A": {"gpa_4_0": 4.0, "gpa_4_2": 4.0},
		"B": {"gpa_4_0": 3.0, "gpa_4_2": 3.0},
		"C": {"gpa_4_0": 2.0, "gpa_4_2": 2.0}
	}`)

	writeTestFile(t, paths.StudentsFile, `{
		"230001A": {"raw_idx": "230001A", "idx": "230001", "name": "First Student"},
		"230002B": {"raw_idx": "230002B", "idx": "230002", "name": "Second Student"}
	}`)

	writeTestFile(t, filepath.Join(paths.SemestersDir, "sem1.json"), `{
		"semester_name": "Semester 1",
		"modules": {
			"EE1801": {"code": "EE1801", "credits": 3},
			"EE1802": {"code": "EE1802", "credits": 2}
		}
	}`)

	resultsDir := paths.GetResultsPath("Semester 1")
	writeTestFile(t, filepath.Join(resultsDir, "EE1801.csv"),
		"Index No,Grade\n230001,A\n230002,B\n")

	return paths
}

func newTestService(t *testing.T, paths *config.Paths) *SemesterService {
	t.Helper()
	svc, err := NewSemesterService(config.Default(), paths, slog.Default())
	require.NoError(t, err)
	return svc
}

func TestProcessSemester(t *testing.T) {
	paths := setupFixture(t)
	svc := newTestService(t, paths)

	semesters, err := svc.ListSemesters()
	require.NoError(t, err)
	require.Len(t, semesters, 1)

	processed, err := svc.ProcessSemester(semesters[0])
	require.NoError(t, err)

	assert.Equal(t, "Semester 1", processed.Run.Semester.Name)
	assert.NotEmpty(t, processed.RunID)

	// EE1802 has no grids and is skipped.
	assert.Equal(t, []string{"EE1801"}, processed.Run.AvailableModules)

	require.Len(t, processed.Results, 2)
	assert.Equal(t, 230001, processed.Results[0].Index)
	assert.Equal(t, 1, processed.Results[0].Rank)
	assert.Equal(t, 2, processed.Results[1].Rank)

	// Only the graded module counts toward the current SGPA; the max
	// projection fills the missing 2 credits with the best grade value.
	assert.InDelta(t, 4.0, processed.Results[0].GPA40, 1e-9)
	assert.InDelta(t, 4.0, processed.Results[0].MaxPossibleGPA, 1e-9)
	assert.InDelta(t, 3.0, processed.Results[1].GPA40, 1e-9)
	assert.InDelta(t, 3.4, processed.Results[1].MaxPossibleGPA, 1e-9)
}

func TestProcessSemester_AppliesCorrections(t *testing.T) {
	paths := setupFixture(t)
	writeTestFile(t, paths.CorrectionsFile, `{
		"EE1801": {"230002": "A"}
	}`)
	svc := newTestService(t, paths)

	semesters, err := svc.ListSemesters()
	require.NoError(t, err)

	processed, err := svc.ProcessSemester(semesters[0])
	require.NoError(t, err)

	assert.Equal(t, "A", processed.Run.Records[230002].Modules["EE1801"])
	assert.Equal(t, 2, processed.Run.ModuleStats["EE1801"].GradeCounts["A"])

	// Both students now tie on every ranking key except index.
	assert.Equal(t, 1, processed.Results[0].Rank)
	assert.Equal(t, 1, processed.Results[1].Rank)
}

func TestProcessAll(t *testing.T) {
	paths := setupFixture(t)
	svc := newTestService(t, paths)

	processed, err := svc.ProcessAll()
	require.NoError(t, err)
	require.Len(t, processed, 1)

	cgpa := svc.CumulativeGPA(processed, 230001)
	assert.InDelta(t, 4.0, cgpa, 1e-9)
}

func TestProcessAll_NoSemesters(t *testing.T) {
	paths := config.PathsFor(t.TempDir())
	writeTestFile(t, paths.GradesFile, `{"A": {"gpa_4_0": 4.0, "gpa_4_2": 4.0}}`)
	writeTestFile(t, paths.StudentsFile, `{"230001A": {"raw_idx": "230001A", "idx": "230001", "name": "Only Student"}}`)
	svc := newTestService(t, paths)

	_, err := svc.ProcessAll()
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeNotFound))
}

func TestFindSemester(t *testing.T) {
	paths := setupFixture(t)
	svc := newTestService(t, paths)

	tests := []struct {
		name     string
		selector string
		wantErr  bool
	}{
		{name: "file base name", selector: "sem1"},
		{name: "semester name", selector: "Semester 1"},
		{name: "case insensitive", selector: "semester 1"},
		{name: "unknown", selector: "Semester 9", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path, err := svc.FindSemester(tt.selector)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, filepath.Join(paths.SemestersDir, "sem1.json"), path)
		})
	}
}

func TestNewSemesterService_MissingGrades(t *testing.T) {
	paths := config.PathsFor(t.TempDir())

	_, err := NewSemesterService(config.Default(), paths, slog.Default())
	require.Error(t, err)
}
