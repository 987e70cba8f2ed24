package services

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"gradecli/internal/config"
	"gradecli/internal/dataset"
	apperrors "gradecli/internal/errors"
	"gradecli/internal/extraction"
	"gradecli/internal/files"
	"gradecli/internal/gpa"
	"gradecli/internal/tables"
	"gradecli/pkg/contracts/domain"
)

// ProcessedSemester is the outcome of one full pipeline pass over a semester:
// the merged run plus its ranked results.
type ProcessedSemester struct {
	Run         *domain.SemesterRun
	Results     []domain.GpaResult
	RunID       string
	GeneratedAt time.Time
}

// SemesterService wires the datasets, the extraction pipeline, and the GPA
// aggregation together. It is safe for concurrent reads once constructed;
// processing methods must not run concurrently with each other.
type SemesterService struct {
	cfg    *config.Config
	paths  *config.Paths
	logger *slog.Logger

	grades      domain.GradeTable
	roster      *domain.Roster
	corrections domain.Corrections

	source     *tables.Source
	extractor  *extraction.Extractor
	aggregator *gpa.Aggregator
}

// NewSemesterService loads the grade table, the roster, and the corrections
// file, and prepares the pipeline components.
func NewSemesterService(cfg *config.Config, paths *config.Paths, logger *slog.Logger) (*SemesterService, error) {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With(slog.String("component", "semester_service"))

	grades, err := dataset.LoadGrades(paths.GradesFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load grade table: %w", err)
	}

	roster, err := dataset.LoadRoster(paths.StudentsFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load roster: %w", err)
	}

	corrections, err := dataset.LoadCorrections(paths.CorrectionsFile, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to load corrections: %w", err)
	}
	dataset.ValidateCorrections(corrections, roster, logger)

	logger.Info("datasets loaded",
		slog.Int("grade_tokens", len(grades)),
		slog.Int("students", len(roster.Students)),
		slog.Int("corrected_modules", len(corrections)))

	return &SemesterService{
		cfg:         cfg,
		paths:       paths,
		logger:      logger,
		grades:      grades,
		roster:      roster,
		corrections: corrections,
		source:      tables.NewSource(logger),
		extractor:   extraction.NewExtractor(grades, cfg.Extraction, logger),
		aggregator:  gpa.NewAggregator(grades, logger),
	}, nil
}

// Roster returns the loaded student roster.
func (s *SemesterService) Roster() *domain.Roster {
	return s.roster
}

// Grades returns the loaded grade table.
func (s *SemesterService) Grades() domain.GradeTable {
	return s.grades
}

// ListSemesters returns the configured semester file paths in name order.
func (s *SemesterService) ListSemesters() ([]string, error) {
	return dataset.ListSemesterConfigs(s.paths.SemestersDir)
}

// ProcessSemester runs the full pipeline for one semester configuration file.
// Modules without result grids are skipped with a warning; every other table
// source error aborts the run.
func (s *SemesterService) ProcessSemester(configPath string) (*ProcessedSemester, error) {
	semester, err := dataset.LoadSemester(configPath)
	if err != nil {
		return nil, err
	}

	runID := uuid.NewString()
	logger := s.logger.With(
		slog.String("run_id", runID),
		slog.String("semester", semester.Name))
	logger.Info("processing semester", slog.Int("modules", len(semester.Modules)))

	run := gpa.NewRun(*semester)
	valid := s.roster.ValidIndices()
	resultsDir := s.paths.GetResultsPath(semester.Name)

	report, err := files.NewDiscovery(resultsDir).Scan(sortedModuleCodes(semester.Modules))
	if err != nil {
		return nil, err
	}
	for _, code := range report.Missing {
		logger.Warn("no result grids for module, skipping", slog.String("module", code))
	}
	if len(report.Unclaimed) > 0 {
		logger.Warn("results directory holds files matching no configured module",
			slog.Any("files", report.Unclaimed))
	}

	for _, code := range report.Found {
		module := semester.Modules[code]

		grids, err := s.source.ModuleTables(resultsDir, code)
		if err != nil {
			if apperrors.IsType(err, apperrors.ErrTypeNotFound) {
				logger.Warn("no result grids for module, skipping",
					slog.String("module", code))
				continue
			}
			return nil, fmt.Errorf("failed to read grids for module %s: %w", code, err)
		}

		records := s.extractor.ExtractTables(grids, valid)
		logger.Info("module extracted",
			slog.String("module", code),
			slog.Int("tables", len(grids)),
			slog.Int("records", len(records)))

		s.aggregator.MergeModule(run, module, records)
	}

	s.aggregator.ApplyCorrections(run, s.corrections, valid)
	results := s.aggregator.Rank(run)

	logger.Info("semester processed",
		slog.Int("available_modules", len(run.AvailableModules)),
		slog.Int("students", len(results)))

	return &ProcessedSemester{
		Run:         run,
		Results:     results,
		RunID:       runID,
		GeneratedAt: time.Now(),
	}, nil
}

// ProcessAll processes every configured semester in name order.
func (s *SemesterService) ProcessAll() ([]*ProcessedSemester, error) {
	paths, err := s.ListSemesters()
	if err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		return nil, apperrors.NewNotFoundError(
			fmt.Sprintf("semester configuration in %s", s.paths.SemestersDir))
	}

	processed := make([]*ProcessedSemester, 0, len(paths))
	for _, path := range paths {
		p, err := s.ProcessSemester(path)
		if err != nil {
			return nil, fmt.Errorf("failed to process %s: %w", filepath.Base(path), err)
		}
		processed = append(processed, p)
	}
	return processed, nil
}

// CumulativeGPA computes the credit-weighted GPA of a student across runs.
func (s *SemesterService) CumulativeGPA(processed []*ProcessedSemester, index int) float64 {
	runs := make([]*domain.SemesterRun, 0, len(processed))
	for _, p := range processed {
		runs = append(runs, p.Run)
	}
	return s.aggregator.CumulativeGPA(runs, index)
}

// FindSemester resolves a semester selector against the configured files. The
// selector matches a file base name or a semester name, case-insensitively.
func (s *SemesterService) FindSemester(selector string) (string, error) {
	paths, err := s.ListSemesters()
	if err != nil {
		return "", err
	}

	want := strings.ToLower(strings.TrimSpace(selector))
	for _, path := range paths {
		base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		if strings.ToLower(base) == want {
			return path, nil
		}
		semester, err := dataset.LoadSemester(path)
		if err != nil {
			continue
		}
		if strings.ToLower(semester.Name) == want {
			return path, nil
		}
	}
	return "", apperrors.NewNotFoundError(fmt.Sprintf("semester matching %q", selector))
}

func sortedModuleCodes(modules map[string]domain.ModuleInfo) []string {
	codes := make([]string, 0, len(modules))
	for code := range modules {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}
