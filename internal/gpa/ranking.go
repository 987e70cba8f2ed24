package gpa

import (
	"sort"

	"gradecli/pkg/contracts/domain"
)

// Rank computes GPA figures for every student of a run and sorts them best
// first. The sort key is (4.0 GPA, 4.2 GPA, each available module's
// 4.2-scale grade value in module order, then ascending student index as
// the final tie-break). Ranks are competition-style: students with an equal
// 4.0 GPA share a rank and the next distinct GPA's rank skips ahead by the
// size of the tie group. Rank42 does the same over the 4.2 GPA.
func (a *Aggregator) Rank(run *domain.SemesterRun) []domain.GpaResult {
	results := make([]domain.GpaResult, 0, len(run.Records))
	keys := make(map[int][]float64, len(run.Records))

	for idx, student := range run.Records {
		res := domain.GpaResult{
			Index:          idx,
			GPA40:          a.GPA(student.Modules, run.ModuleStats, domain.Scale40),
			GPA42:          a.GPA(student.Modules, run.ModuleStats, domain.Scale42),
			MaxPossibleGPA: a.MaxPossibleGPA(student.Modules, run.ModuleStats, run.Semester),
			ModuleCount:    len(student.Modules),
		}
		results = append(results, res)

		key := make([]float64, 0, len(run.AvailableModules)+3)
		key = append(key, res.GPA40, res.GPA42)
		for _, moduleCode := range run.AvailableModules {
			value := 0.0
			if grade, ok := student.Modules[moduleCode]; ok {
				if gv, known := a.grades[grade]; known {
					value = gv.On(domain.Scale42)
				}
			}
			key = append(key, value)
		}
		key = append(key, -float64(idx))
		keys[idx] = key
	}

	sort.SliceStable(results, func(i, j int) bool {
		return keyLess(keys[results[j].Index], keys[results[i].Index])
	})

	assignRanks(results)
	return results
}

// keyLess compares sort keys lexicographically.
func keyLess(a, b []float64) bool {
	for i := range a {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return false
}

// assignRanks walks the sorted results and applies competition ranking on
// the 4.0-scale GPA, and independently on the 4.2-scale GPA.
func assignRanks(results []domain.GpaResult) {
	rank, gap := 1, 0
	rank42, gap42 := 1, 0
	var prev40, prev42 float64
	first := true

	for i := range results {
		if !first && results[i].GPA40 == prev40 {
			gap++
		} else {
			rank += gap
			gap = 1
			prev40 = results[i].GPA40
		}
		results[i].Rank = rank

		if !first && results[i].GPA42 == prev42 {
			gap42++
		} else {
			rank42 += gap42
			gap42 = 1
			prev42 = results[i].GPA42
		}
		results[i].Rank42 = rank42

		first = false
	}
}
