package http

import (
	"fmt"
	"log/slog"
	"net/http"
	"sort"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/patrickmn/go-cache"

	apierrors "gradecli/internal/errors"
	"gradecli/internal/exporter"
	"gradecli/internal/services"
)

// ResultsHandler serves rankings and per-student standing.
type ResultsHandler struct {
	store  ResultsReader
	logger *slog.Logger
	cache  *cache.Cache
}

// NewResultsHandler creates a results handler. Rendered rankings are cached
// for cacheTTL; the cache key carries the run ID so a refresh naturally
// invalidates stale entries.
func NewResultsHandler(store ResultsReader, cacheTTL time.Duration, logger *slog.Logger) *ResultsHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ResultsHandler{
		store:  store,
		logger: logger.With(slog.String("component", "results_handler")),
		cache:  cache.New(cacheTTL, 2*cacheTTL),
	}
}

// Routes returns the results routes.
func (h *ResultsHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.Get("/semesters", h.GetSemesters)
	r.Route("/semesters/{name}", func(r chi.Router) {
		r.Get("/rankings", h.GetRankings)
		r.Get("/modules/{code}", h.GetModuleStats)
	})
	r.Get("/students/{index}", h.GetStudent)

	return r
}

// SemesterSummary describes one processed run.
type SemesterSummary struct {
	Name        string    `json:"name"`
	RunID       string    `json:"run_id"`
	GeneratedAt time.Time `json:"generated_at"`
	Students    int       `json:"students"`
	Modules     []string  `json:"modules"`
}

// GetSemesters handles GET /semesters.
func (h *ResultsHandler) GetSemesters(w http.ResponseWriter, r *http.Request) {
	processed := h.store.Semesters()
	if len(processed) == 0 {
		render.Render(w, r, apierrors.ErrNoRun)
		return
	}

	summaries := make([]SemesterSummary, 0, len(processed))
	for _, p := range processed {
		summaries = append(summaries, SemesterSummary{
			Name:        p.Run.Semester.Name,
			RunID:       p.RunID,
			GeneratedAt: p.GeneratedAt,
			Students:    len(p.Results),
			Modules:     p.Run.AvailableModules,
		})
	}

	render.JSON(w, r, summaries)
}

// RankingEntry is one row of a semester ranking.
type RankingEntry struct {
	Rank           int               `json:"rank"`
	Rank42         int               `json:"rank_4_2"`
	Index          string            `json:"index"`
	Name           string            `json:"name"`
	GPA40          float64           `json:"gpa_4_0"`
	GPA42          float64           `json:"gpa_4_2"`
	MaxPossibleGPA float64           `json:"max_possible_gpa"`
	ModuleCount    int               `json:"module_count"`
	Grades         map[string]string `json:"grades"`
}

// RankingsResponse is the full ranking of one semester.
type RankingsResponse struct {
	Semester    string         `json:"semester"`
	RunID       string         `json:"run_id"`
	GeneratedAt time.Time      `json:"generated_at"`
	Modules     []string       `json:"modules"`
	Rankings    []RankingEntry `json:"rankings"`
}

// GetRankings handles GET /semesters/{name}/rankings.
func (h *ResultsHandler) GetRankings(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	p, ok := h.store.Semester(name)
	if !ok {
		render.Render(w, r, apierrors.ErrNotFound)
		return
	}

	cacheKey := fmt.Sprintf("rankings:%s:%s", name, p.RunID)
	if cached, found := h.cache.Get(cacheKey); found {
		render.JSON(w, r, cached)
		return
	}

	response := h.buildRankings(p)
	h.cache.Set(cacheKey, response, cache.DefaultExpiration)
	render.JSON(w, r, response)
}

func (h *ResultsHandler) buildRankings(p *services.ProcessedSemester) *RankingsResponse {
	roster := h.store.Roster()

	entries := make([]RankingEntry, 0, len(p.Results))
	for _, res := range p.Results {
		displayIndex := strconv.Itoa(res.Index)
		name := "Unknown"
		if student, ok := roster.Lookup(res.Index); ok {
			displayIndex = student.DisplayIndex
			name = student.Name
		}

		grades := make(map[string]string)
		if record, ok := p.Run.Records[res.Index]; ok {
			for module, grade := range record.Modules {
				grades[module] = grade
			}
		}

		entries = append(entries, RankingEntry{
			Rank:           res.Rank,
			Rank42:         res.Rank42,
			Index:          displayIndex,
			Name:           name,
			GPA40:          res.GPA40,
			GPA42:          res.GPA42,
			MaxPossibleGPA: res.MaxPossibleGPA,
			ModuleCount:    res.ModuleCount,
			Grades:         grades,
		})
	}

	return &RankingsResponse{
		Semester:    p.Run.Semester.Name,
		RunID:       p.RunID,
		GeneratedAt: p.GeneratedAt,
		Modules:     p.Run.AvailableModules,
		Rankings:    entries,
	}
}

// GradeCount is one grade's tally within a module.
type GradeCount struct {
	Grade      string  `json:"grade"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

// ModuleStatsResponse is the grade distribution of one module.
type ModuleStatsResponse struct {
	Semester string       `json:"semester"`
	Module   string       `json:"module"`
	Credits  int          `json:"credits"`
	Students int          `json:"students"`
	Counts   []GradeCount `json:"counts"`
}

// GetModuleStats handles GET /semesters/{name}/modules/{code}.
func (h *ResultsHandler) GetModuleStats(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	code := chi.URLParam(r, "code")

	p, ok := h.store.Semester(name)
	if !ok {
		render.Render(w, r, apierrors.ErrNotFound)
		return
	}

	stats, ok := p.Run.ModuleStats[code]
	if !ok {
		render.Render(w, r, apierrors.ErrNotFound)
		return
	}

	total := 0
	for _, c := range stats.GradeCounts {
		total += c
	}

	percentage := func(count int) float64 {
		if total == 0 {
			return 0.0
		}
		return float64(count) / float64(total) * 100
	}

	counts := make([]GradeCount, 0, len(stats.GradeCounts))
	seen := make(map[string]bool, len(stats.GradeCounts))
	for _, grade := range exporter.GradeOrder(h.store.Grades()) {
		count, ok := stats.GradeCounts[grade]
		if !ok {
			continue
		}
		seen[grade] = true
		counts = append(counts, GradeCount{Grade: grade, Count: count, Percentage: percentage(count)})
	}

	// Administrative markers sit outside the grade table but still tally.
	for _, grade := range sortedGrades(stats.GradeCounts) {
		if seen[grade] {
			continue
		}
		counts = append(counts, GradeCount{Grade: grade, Count: stats.GradeCounts[grade], Percentage: percentage(stats.GradeCounts[grade])})
	}

	render.JSON(w, r, &ModuleStatsResponse{
		Semester: p.Run.Semester.Name,
		Module:   code,
		Credits:  stats.Credits,
		Students: total,
		Counts:   counts,
	})
}

func sortedGrades(counts map[string]int) []string {
	grades := make([]string, 0, len(counts))
	for grade := range counts {
		grades = append(grades, grade)
	}
	sort.Strings(grades)
	return grades
}

// StudentSemester is one semester of a student's standing.
type StudentSemester struct {
	Semester       string            `json:"semester"`
	Rank           int               `json:"rank"`
	Rank42         int               `json:"rank_4_2"`
	GPA40          float64           `json:"gpa_4_0"`
	GPA42          float64           `json:"gpa_4_2"`
	MaxPossibleGPA float64           `json:"max_possible_gpa"`
	Grades         map[string]string `json:"grades"`
}

// StudentResponse is one student's standing across the loaded runs.
type StudentResponse struct {
	Index          string            `json:"index"`
	Name           string            `json:"name"`
	Specialization string            `json:"specialization,omitempty"`
	CumulativeGPA  float64           `json:"cumulative_gpa"`
	Semesters      []StudentSemester `json:"semesters"`
}

// GetStudent handles GET /students/{index}.
func (h *ResultsHandler) GetStudent(w http.ResponseWriter, r *http.Request) {
	indexParam := chi.URLParam(r, "index")
	index, err := strconv.Atoi(indexParam)
	if err != nil || index <= 0 {
		render.Render(w, r, apierrors.ErrValidation("index", "student index must be a positive integer"))
		return
	}

	student, ok := h.store.Roster().Lookup(index)
	if !ok {
		render.Render(w, r, apierrors.ErrNotFound)
		return
	}

	semesters := make([]StudentSemester, 0)
	for _, p := range h.store.Semesters() {
		for _, res := range p.Results {
			if res.Index != index {
				continue
			}

			grades := make(map[string]string)
			if record, ok := p.Run.Records[index]; ok {
				for module, grade := range record.Modules {
					grades[module] = grade
				}
			}

			semesters = append(semesters, StudentSemester{
				Semester:       p.Run.Semester.Name,
				Rank:           res.Rank,
				Rank42:         res.Rank42,
				GPA40:          res.GPA40,
				GPA42:          res.GPA42,
				MaxPossibleGPA: res.MaxPossibleGPA,
				Grades:         grades,
			})
			break
		}
	}

	render.JSON(w, r, &StudentResponse{
		Index:          student.DisplayIndex,
		Name:           student.Name,
		Specialization: student.Specialization,
		CumulativeGPA:  h.store.CumulativeGPA(index),
		Semesters:      semesters,
	})
}
