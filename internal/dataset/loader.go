// Package dataset loads the domain inputs of a semester run: the student
// roster, the grade-value table, semester configurations, and manual grade
// corrections. All inputs are JSON files; shapes follow the historical
// layout, including the legacy semester-config form.
package dataset

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"github.com/go-playground/validator/v10"

	apperrors "gradecli/internal/errors"
	"gradecli/pkg/contracts/domain"
)

var validate = validator.New()

// LoadGrades loads the grade-value table.
func LoadGrades(path string) (domain.GradeTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, apperrors.NewStorageError(fmt.Sprintf("failed to read grade table %s", path), err)
	}

	var table domain.GradeTable
	if err := json.Unmarshal(data, &table); err != nil {
		return nil, apperrors.NewParsingError(fmt.Sprintf("invalid grade table %s", path), err)
	}
	if len(table) == 0 {
		return nil, apperrors.NewValidationError("grade table is empty")
	}

	return table, nil
}

// LoadRoster loads student details and re-indexes them by canonical numeric
// index for matching against extracted rows. Entries whose index does not
// parse to a positive integer are dropped, matching the historical loader.
func LoadRoster(path string) (*domain.Roster, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, apperrors.NewStorageError(fmt.Sprintf("failed to read roster %s", path), err)
	}

	var raw map[string]domain.Student
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, apperrors.NewParsingError(fmt.Sprintf("invalid roster %s", path), err)
	}

	roster := &domain.Roster{Students: make(map[int]domain.Student, len(raw))}
	for key, student := range raw {
		idx, err := strconv.Atoi(student.DisplayIndex)
		if err != nil || idx <= 0 {
			continue
		}
		if student.RawIndex == "" {
			student.RawIndex = key
		}
		student.Index = idx
		roster.Students[idx] = student
	}

	if len(roster.Students) == 0 {
		return nil, apperrors.NewValidationError("no valid students found in roster")
	}

	return roster, nil
}

// LoadCorrections loads manual grade corrections. A missing file means no
// corrections and is not an error.
func LoadCorrections(path string, logger *slog.Logger) (domain.Corrections, error) {
	if logger == nil {
		logger = slog.Default()
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		logger.Info("no corrections file found, skipping", slog.String("path", path))
		return domain.Corrections{}, nil
	}
	if err != nil {
		return nil, apperrors.NewStorageError(fmt.Sprintf("failed to read corrections %s", path), err)
	}

	var corrections domain.Corrections
	if err := json.Unmarshal(data, &corrections); err != nil {
		return nil, apperrors.NewParsingError(fmt.Sprintf("invalid corrections %s", path), err)
	}

	return corrections, nil
}

// legacySemesterConfig accepts both the current and the legacy on-disk
// semester shapes in one pass.
type legacySemesterConfig struct {
	SemesterName string                       `json:"semester_name"`
	SemName      string                       `json:"sem_name"`
	Modules      map[string]domain.ModuleInfo `json:"modules"`
	Courses      []domain.ModuleInfo          `json:"courses"`
}

// LoadSemester loads one semester configuration, normalizing the legacy
// shape ({sem_name, courses: [...]}) into the current one.
func LoadSemester(path string) (*domain.SemesterConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, apperrors.NewStorageError(fmt.Sprintf("failed to read semester config %s", path), err)
	}

	var raw legacySemesterConfig
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, apperrors.NewParsingError(fmt.Sprintf("invalid semester config %s", path), err)
	}

	cfg := &domain.SemesterConfig{
		Name:    raw.SemesterName,
		Modules: raw.Modules,
	}
	if cfg.Name == "" {
		cfg.Name = raw.SemName
	}
	if cfg.Modules == nil && len(raw.Courses) > 0 {
		cfg.Modules = make(map[string]domain.ModuleInfo, len(raw.Courses))
		for _, course := range raw.Courses {
			cfg.Modules[course.Code] = course
		}
	}
	for code, mod := range cfg.Modules {
		if mod.Code == "" {
			mod.Code = code
			cfg.Modules[code] = mod
		}
	}

	if err := validate.Struct(cfg); err != nil {
		return nil, apperrors.NewAppError(apperrors.ErrTypeValidation,
			fmt.Sprintf("semester config %s failed validation", path), err)
	}

	return cfg, nil
}

// ListSemesterConfigs returns the semester config files in dir, sorted by
// name so the selection numbering is stable.
func ListSemesterConfigs(dir string) ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, apperrors.NewStorageError(fmt.Sprintf("failed to scan %s", dir), err)
	}
	sort.Strings(matches)
	return matches, nil
}

// ValidateCorrections warns about correction entries that cannot take
// effect: indices absent from the roster or not 6 digits long. It never
// fails; corrections for unknown students are simply skipped later.
func ValidateCorrections(corrections domain.Corrections, roster *domain.Roster, logger *slog.Logger) {
	if logger == nil {
		logger = slog.Default()
	}

	for module, entries := range corrections {
		for idxStr := range entries {
			idx, err := strconv.Atoi(idxStr)
			if err != nil || len(idxStr) != 6 {
				logger.Warn("correction index is not a 6-digit number",
					slog.String("module", module),
					slog.String("index", idxStr))
				continue
			}
			if _, ok := roster.Lookup(idx); !ok {
				logger.Warn("correction index not found in roster",
					slog.String("module", module),
					slog.String("index", idxStr))
			}
		}
	}
}
