package dataset

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "gradecli/internal/errors"
	"gradecli/pkg/contracts/domain"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadGrades(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "grades.json", `{
		"A":  {"gpa_4_0": 4.0, "gpa_4_2": 4.0},
		"A+": {"gpa_4_0": 4.0, "gpa_4_2": 4.2},
		"B":  {"gpa_4_0": 3.0, "gpa_4_2": 3.0}
	}`)

	table, err := LoadGrades(path)
	require.NoError(t, err)
	assert.Len(t, table, 3)
	assert.Equal(t, 4.2, table["A+"].On(domain.Scale42))
	assert.Equal(t, 4.0, table["A+"].On(domain.Scale40))
	assert.True(t, table.Known("B"))
	assert.False(t, table.Known("I-we"))
}

func TestLoadGrades_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadGrades(filepath.Join(dir, "missing.json"))
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeStorage))

	empty := writeFile(t, dir, "empty.json", `{}`)
	_, err = LoadGrades(empty)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeValidation))

	bad := writeFile(t, dir, "bad.json", `not json`)
	_, err = LoadGrades(bad)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeParsing))
}

func TestLoadRoster(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "student_details.json", `{
		"230012U": {"raw_idx": "230012U", "idx": "230012", "name": "A. Perera", "spec": "ENTC"},
		"230013X": {"raw_idx": "230013X", "idx": "230013", "name": "B. Silva", "spec": "BME"},
		"broken":  {"raw_idx": "broken", "idx": "zzz", "name": "Dropped"}
	}`)

	roster, err := LoadRoster(path)
	require.NoError(t, err)
	require.Len(t, roster.Students, 2)

	student, ok := roster.Lookup(230012)
	require.True(t, ok)
	assert.Equal(t, "A. Perera", student.Name)
	assert.Equal(t, 230012, student.Index)

	min, max := roster.IndexRange()
	assert.Equal(t, 230012, min)
	assert.Equal(t, 230013, max)

	valid := roster.ValidIndices()
	assert.True(t, valid[230013])
	assert.False(t, valid[230014])
}

func TestLoadRoster_NoValidStudents(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "students.json", `{"x": {"raw_idx": "x", "idx": "-1", "name": "n"}}`)

	_, err := LoadRoster(path)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeValidation))
}

func TestLoadCorrections_MissingFileIsEmpty(t *testing.T) {
	corrections, err := LoadCorrections(filepath.Join(t.TempDir(), "corrections.json"), nil)
	require.NoError(t, err)
	assert.Empty(t, corrections)
}

func TestLoadCorrections(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "corrections.json", `{"EN1010": {"230012": "A"}}`)

	corrections, err := LoadCorrections(path, nil)
	require.NoError(t, err)
	assert.Equal(t, "A", corrections["EN1010"]["230012"])
}

func TestLoadSemester_ModernShape(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "sem1.json", `{
		"semester_name": "sem1",
		"modules": {
			"EN1010": {"credits": 3},
			"EN1020": {"credits": 2}
		}
	}`)

	cfg, err := LoadSemester(path)
	require.NoError(t, err)
	assert.Equal(t, "sem1", cfg.Name)
	assert.Equal(t, 5, cfg.TotalCredits())
	assert.Equal(t, "EN1010", cfg.Modules["EN1010"].Code)
}

func TestLoadSemester_LegacyShape(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "sem2.json", `{
		"sem_name": "sem2",
		"courses": [
			{"code": "EN1030", "credits": 3},
			{"code": "EN1040", "credits": 1}
		]
	}`)

	cfg, err := LoadSemester(path)
	require.NoError(t, err)
	assert.Equal(t, "sem2", cfg.Name)
	require.Contains(t, cfg.Modules, "EN1040")
	assert.Equal(t, 1, cfg.Modules["EN1040"].Credits)
}

func TestLoadSemester_RejectsZeroCredits(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "sem3.json", `{
		"semester_name": "sem3",
		"modules": {"EN1050": {"credits": 0}}
	}`)

	_, err := LoadSemester(path)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeValidation))
}

func TestListSemesterConfigs(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "sem2.json", `{}`)
	writeFile(t, dir, "sem1.json", `{}`)
	writeFile(t, dir, "notes.txt", "ignored")

	files, err := ListSemesterConfigs(dir)
	require.NoError(t, err)
	require.Len(t, files, 2)
	assert.Equal(t, "sem1.json", filepath.Base(files[0]))
	assert.Equal(t, "sem2.json", filepath.Base(files[1]))
}

func TestValidateCorrections_DoesNotFail(t *testing.T) {
	roster := &domain.Roster{Students: map[int]domain.Student{
		230012: {Index: 230012, Name: "A. Perera"},
	}}
	corrections := domain.Corrections{
		"EN1010": {
			"230012":  "A",  // valid
			"230099":  "B",  // not in roster
			"23001":   "C",  // not 6 digits
			"invalid": "D",  // not numeric
		},
	}

	assert.NotPanics(t, func() {
		ValidateCorrections(corrections, roster, nil)
	})
}
