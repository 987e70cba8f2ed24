package domain

// GradeScale selects which numeric scale a grade token maps to.
type GradeScale string

const (
	Scale40 GradeScale = "4_0"
	Scale42 GradeScale = "4_2"
)

// BestGradeValue is the scale value assumed for modules a student has not yet
// received a grade for when projecting the maximum possible GPA.
const BestGradeValue = 4.0

// GradeValue holds the numeric values of one grade token on both scales.
type GradeValue struct {
	GPA40 float64 `json:"gpa_4_0"`
	GPA42 float64 `json:"gpa_4_2"`
}

// On returns the value of the grade on the requested scale.
func (v GradeValue) On(scale GradeScale) float64 {
	if scale == Scale42 {
		return v.GPA42
	}
	return v.GPA40
}

// GradeTable maps grade tokens to their scale values. Tokens absent from the
// table never contribute to a GPA, neither to the numerator nor the
// denominator.
type GradeTable map[string]GradeValue

// Known reports whether the token carries a GPA value.
func (t GradeTable) Known(token string) bool {
	_, ok := t[token]
	return ok
}

// AdministrativeMarkers are tokens that appear in grade columns of result
// sheets but are not letter grades: absences, incompletes, withheld results.
// The classifier accepts them as grade-shaped; the aggregator ignores them
// unless the grade table assigns them a value.
var AdministrativeMarkers = []string{"AB", "I-we", "I-ca", "WH", "NC", "F*"}
