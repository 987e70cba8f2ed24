package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPathsFor(t *testing.T) {
	p := PathsFor("/opt/gradecli")

	assert.Equal(t, filepath.Join("/opt/gradecli", "data"), p.DataDir)
	assert.Equal(t, filepath.Join("/opt/gradecli", "config", "grades.json"), p.GradesFile)
	assert.Equal(t, filepath.Join("/opt/gradecli", "config", "semesters"), p.SemestersDir)
	assert.Equal(t, filepath.Join("/opt/gradecli", "data", "student_details.json"), p.StudentsFile)
	assert.Equal(t, filepath.Join("/opt/gradecli", "data", "results", "sem2"), p.GetResultsPath("sem2"))
	assert.Equal(t, filepath.Join("/opt/gradecli", "output", "out.xlsx"), p.GetOutputPath("out.xlsx"))
	assert.Equal(t, filepath.Join("/opt/gradecli", "logs", "run.log"), p.GetLogPath("run.log"))
}

func TestEnsureDirectories(t *testing.T) {
	tmpDir := t.TempDir()
	p := PathsFor(tmpDir)

	require.NoError(t, p.EnsureDirectories())

	for _, dir := range []string{p.DataDir, p.ConfigDir, p.OutputDir, p.LogsDir, p.SemestersDir, p.ResultsDir} {
		info, err := os.Stat(dir)
		require.NoError(t, err, dir)
		assert.True(t, info.IsDir(), dir)
	}
}

func TestFileExists(t *testing.T) {
	tmpDir := t.TempDir()

	assert.False(t, FileExists(filepath.Join(tmpDir, "missing.json")))
	assert.False(t, FileExists(tmpDir), "directories do not count")

	file := filepath.Join(tmpDir, "present.json")
	require.NoError(t, os.WriteFile(file, []byte("{}"), 0644))
	assert.True(t, FileExists(file))
}
