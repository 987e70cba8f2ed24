package domain

// Student represents one roster entry. Index is the canonical numeric form of
// the raw identifier (trailing check letter stripped), used for matching
// against extracted result rows.
type Student struct {
	RawIndex       string `json:"raw_idx" validate:"required"`
	Index          int    `json:"-"`
	DisplayIndex   string `json:"idx" validate:"required"`
	Name           string `json:"name" validate:"required"`
	Specialization string `json:"spec,omitempty"`
}

// Roster holds the known-student set keyed by canonical numeric index.
type Roster struct {
	Students map[int]Student
}

// ValidIndices returns the set of canonical indices admitted for extraction.
func (r *Roster) ValidIndices() map[int]bool {
	valid := make(map[int]bool, len(r.Students))
	for idx := range r.Students {
		valid[idx] = true
	}
	return valid
}

// Lookup returns the roster entry for a canonical index.
func (r *Roster) Lookup(index int) (Student, bool) {
	s, ok := r.Students[index]
	return s, ok
}

// IndexRange returns the lowest and highest canonical index in the roster.
// Both are zero when the roster is empty.
func (r *Roster) IndexRange() (min, max int) {
	first := true
	for idx := range r.Students {
		if first {
			min, max = idx, idx
			first = false
			continue
		}
		if idx < min {
			min = idx
		}
		if idx > max {
			max = idx
		}
	}
	return min, max
}
