package extraction

import (
	"sort"

	"gradecli/pkg/contracts/domain"
)

// Pair matches each index column with the nearest unused grade column to its
// right, scanning columns left to right. Columns with no eligible partner
// are dropped silently; stray columns are a fact of scraped layouts. The
// result covers disjoint column positions, ordered by index column.
func Pair(roles map[int]domain.ColumnRole) []domain.ColumnPair {
	cols := make([]int, 0, len(roles))
	for col := range roles {
		cols = append(cols, col)
	}
	sort.Ints(cols)

	used := make(map[int]bool, len(roles))
	var pairs []domain.ColumnPair

	for _, col := range cols {
		if used[col] || roles[col] != domain.RoleIndex {
			continue
		}
		for _, candidate := range cols {
			if candidate <= col || used[candidate] || roles[candidate] != domain.RoleGrade {
				continue
			}
			pairs = append(pairs, domain.ColumnPair{IndexCol: col, GradeCol: candidate})
			used[col] = true
			used[candidate] = true
			break
		}
	}

	return pairs
}
