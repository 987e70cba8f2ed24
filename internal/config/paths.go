package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// Paths contains all the application paths.
// This is the single source of truth for file locations: domain inputs under
// data/ and config/, exported artifacts under output/.
type Paths struct {
	ExecutableDir string
	DataDir       string
	ConfigDir     string
	OutputDir     string
	LogsDir       string

	// Domain input files
	StudentsFile    string
	GradesFile      string
	CorrectionsFile string
	SemestersDir    string
	ResultsDir      string
}

// GetPaths returns the application paths relative to the executable location.
// Paths are never resolved against the current working directory, so the
// tools behave the same regardless of where they are invoked from.
func GetPaths() (*Paths, error) {
	exe, err := os.Executable()
	if err != nil {
		return nil, fmt.Errorf("failed to get executable path: %v", err)
	}

	exe, err = filepath.EvalSymlinks(exe)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve executable symlinks: %v", err)
	}

	return PathsFor(filepath.Dir(exe)), nil
}

// PathsFor builds the path set rooted at baseDir. Split out of GetPaths so
// tests can root everything in a temp directory.
//
// Directory structure:
//
//	base/
//	  ├── config/
//	  │   ├── grades.json
//	  │   ├── corrections.json
//	  │   └── semesters/          (one JSON per semester)
//	  ├── data/
//	  │   ├── student_details.json
//	  │   └── results/<semester>/ (extracted grids per module)
//	  ├── output/                 (exported workbooks and CSVs)
//	  └── logs/
func PathsFor(baseDir string) *Paths {
	dataDir := filepath.Join(baseDir, "data")
	configDir := filepath.Join(baseDir, "config")

	return &Paths{
		ExecutableDir: baseDir,
		DataDir:       dataDir,
		ConfigDir:     configDir,
		OutputDir:     filepath.Join(baseDir, "output"),
		LogsDir:       filepath.Join(baseDir, "logs"),

		StudentsFile:    filepath.Join(dataDir, "student_details.json"),
		GradesFile:      filepath.Join(configDir, "grades.json"),
		CorrectionsFile: filepath.Join(configDir, "corrections.json"),
		SemestersDir:    filepath.Join(configDir, "semesters"),
		ResultsDir:      filepath.Join(dataDir, "results"),
	}
}

// EnsureDirectories creates all required directories if they don't exist
func (p *Paths) EnsureDirectories() error {
	dirs := []string{
		p.DataDir,
		p.ConfigDir,
		p.OutputDir,
		p.LogsDir,
		p.SemestersDir,
		p.ResultsDir,
	}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	return nil
}

// GetResultsPath returns the directory holding extracted grids for a semester.
func (p *Paths) GetResultsPath(semesterName string) string {
	return filepath.Join(p.ResultsDir, semesterName)
}

// GetOutputPath returns the path of an exported artifact.
func (p *Paths) GetOutputPath(filename string) string {
	return filepath.Join(p.OutputDir, filename)
}

// GetLogPath returns the path of a log file.
func (p *Paths) GetLogPath(filename string) string {
	return filepath.Join(p.LogsDir, filename)
}

// FileExists checks if a file exists
func FileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}
