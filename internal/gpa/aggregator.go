package gpa

import (
	"log/slog"
	"math"
	"strconv"

	"gradecli/pkg/contracts/domain"
)

// Aggregator computes GPA figures over an explicit grade-value table.
// Methods are pure with respect to the table; the only mutation happens on
// the SemesterRun being assembled.
type Aggregator struct {
	grades domain.GradeTable
	logger *slog.Logger
}

// NewAggregator creates an aggregator for the given grade table.
func NewAggregator(grades domain.GradeTable, logger *slog.Logger) *Aggregator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Aggregator{grades: grades, logger: logger}
}

// NewRun starts an empty semester run for the given configuration.
func NewRun(semester domain.SemesterConfig) *domain.SemesterRun {
	return &domain.SemesterRun{
		Semester:    semester,
		Records:     make(map[int]*domain.StudentRecord),
		ModuleStats: make(map[string]*domain.ModuleResult),
	}
}

// MergeModule folds extracted records for one module into the run. Records
// for the same student collapse to the latest write, so corrections already
// present in the table override earlier observations. Grade counts are
// recomputed from the final grade map afterwards; they are never patched
// incrementally.
func (a *Aggregator) MergeModule(run *domain.SemesterRun, module domain.ModuleInfo, records []domain.IndexGradeRecord) {
	result := &domain.ModuleResult{
		Code:        module.Code,
		Credits:     module.Credits,
		Grades:      make(map[int]string, len(records)),
		GradeCounts: make(map[string]int),
	}

	for _, rec := range records {
		result.Grades[rec.Index] = rec.Grade

		student, ok := run.Records[rec.Index]
		if !ok {
			student = &domain.StudentRecord{Index: rec.Index, Modules: make(map[string]string)}
			run.Records[rec.Index] = student
		}
		student.Modules[module.Code] = rec.Grade
	}

	run.ModuleStats[module.Code] = result
	run.AvailableModules = append(run.AvailableModules, module.Code)
	recountModule(result)
}

// ApplyCorrections overrides extracted grades with manual corrections.
// A correction only takes effect when its module was actually processed and
// its index canonicalizes to a member of the valid-index set; anything else
// is skipped with a warning. Module tallies are recomputed afterwards.
func (a *Aggregator) ApplyCorrections(run *domain.SemesterRun, corrections domain.Corrections, valid map[int]bool) {
	for moduleCode, entries := range corrections {
		stats, ok := run.ModuleStats[moduleCode]
		if !ok {
			continue
		}

		for idxStr, newGrade := range entries {
			idx, err := strconv.Atoi(idxStr)
			if err != nil || !valid[idx] {
				a.logger.Warn("skipping correction for invalid student index",
					slog.String("module", moduleCode),
					slog.String("index", idxStr))
				continue
			}

			student, ok := run.Records[idx]
			if !ok {
				student = &domain.StudentRecord{Index: idx, Modules: make(map[string]string)}
				run.Records[idx] = student
			}

			oldGrade, had := student.Modules[moduleCode]
			if !had {
				oldGrade = "N/A"
			}
			student.Modules[moduleCode] = newGrade
			stats.Grades[idx] = newGrade

			a.logger.Info("applied grade correction",
				slog.String("module", moduleCode),
				slog.Int("index", idx),
				slog.String("old_grade", oldGrade),
				slog.String("new_grade", newGrade))
		}

		recountModule(stats)
	}
}

// recountModule rebuilds a module's grade tally from its final grade map.
func recountModule(result *domain.ModuleResult) {
	counts := make(map[string]int)
	for _, grade := range result.Grades {
		counts[grade]++
	}
	result.GradeCounts = counts
}

// GPA computes the credit-weighted grade-point average of one student's
// module grades on the requested scale, rounded to 3 decimal places.
// Returns 0.0 when no module carries a known grade.
func (a *Aggregator) GPA(modules map[string]string, stats map[string]*domain.ModuleResult, scale domain.GradeScale) float64 {
	weighted, credits := a.weightedPoints(modules, stats, scale)
	if credits == 0 {
		return 0.0
	}
	return round3(weighted / float64(credits))
}

// MaxPossibleGPA projects the best 4.0-scale GPA still reachable this
// semester: the best grade value is assumed for every configured module the
// student has no known grade for yet.
func (a *Aggregator) MaxPossibleGPA(modules map[string]string, stats map[string]*domain.ModuleResult, semester domain.SemesterConfig) float64 {
	weighted, counted := a.weightedPoints(modules, stats, domain.Scale40)

	total := semester.TotalCredits()
	if total == 0 {
		return 0.0
	}

	maxSum := weighted + float64(total-counted)*domain.BestGradeValue
	return round3(maxSum / float64(total))
}

// SemesterPoints exposes one student's 4.0-scale weighted points and counted
// credits for cumulative aggregation across semesters.
func (a *Aggregator) SemesterPoints(modules map[string]string, stats map[string]*domain.ModuleResult) (float64, int) {
	return a.weightedPoints(modules, stats, domain.Scale40)
}

// CumulativeGPA aggregates one student's standing across semester runs:
// total 4.0-scale weighted points over total counted credits.
func (a *Aggregator) CumulativeGPA(runs []*domain.SemesterRun, index int) float64 {
	var weighted float64
	var credits int

	for _, run := range runs {
		student, ok := run.Records[index]
		if !ok {
			continue
		}
		w, c := a.weightedPoints(student.Modules, run.ModuleStats, domain.Scale40)
		weighted += w
		credits += c
	}

	if credits == 0 {
		return 0.0
	}
	return round3(weighted / float64(credits))
}

// weightedPoints sums credits×value over the modules whose grade is a key
// of the grade table. Unknown grades are excluded from both the sum and the
// credit count.
func (a *Aggregator) weightedPoints(modules map[string]string, stats map[string]*domain.ModuleResult, scale domain.GradeScale) (float64, int) {
	var weighted float64
	var credits int

	for moduleCode, grade := range modules {
		result, ok := stats[moduleCode]
		if !ok {
			continue
		}
		value, known := a.grades[grade]
		if !known {
			continue
		}
		weighted += float64(result.Credits) * value.On(scale)
		credits += result.Credits
	}

	return weighted, credits
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
