package services

import (
	"sync"

	"gradecli/pkg/contracts/domain"
)

// ResultsStore holds the latest processed semester runs for concurrent
// readers. Refresh swaps the whole snapshot; readers always see a complete
// set of runs.
type ResultsStore struct {
	svc *SemesterService

	mu        sync.RWMutex
	processed []*ProcessedSemester
	byName    map[string]*ProcessedSemester
}

// NewResultsStore creates an empty store backed by the given service.
func NewResultsStore(svc *SemesterService) *ResultsStore {
	return &ResultsStore{
		svc:    svc,
		byName: make(map[string]*ProcessedSemester),
	}
}

// Refresh reprocesses every configured semester and swaps the snapshot.
// On error the previous snapshot stays in place.
func (s *ResultsStore) Refresh() error {
	processed, err := s.svc.ProcessAll()
	if err != nil {
		return err
	}

	byName := make(map[string]*ProcessedSemester, len(processed))
	for _, p := range processed {
		byName[p.Run.Semester.Name] = p
	}

	s.mu.Lock()
	s.processed = processed
	s.byName = byName
	s.mu.Unlock()
	return nil
}

// Semesters returns the processed runs in configuration order.
func (s *ResultsStore) Semesters() []*ProcessedSemester {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.processed
}

// Semester returns the processed run for a semester name.
func (s *ResultsStore) Semester(name string) (*ProcessedSemester, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.byName[name]
	return p, ok
}

// Roster returns the loaded student roster.
func (s *ResultsStore) Roster() *domain.Roster {
	return s.svc.Roster()
}

// Grades returns the loaded grade table.
func (s *ResultsStore) Grades() domain.GradeTable {
	return s.svc.Grades()
}

// CumulativeGPA computes a student's standing across the loaded runs.
func (s *ResultsStore) CumulativeGPA(index int) float64 {
	s.mu.RLock()
	processed := s.processed
	s.mu.RUnlock()
	return s.svc.CumulativeGPA(processed, index)
}
