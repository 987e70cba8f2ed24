// Package gpa folds per-module grade records into credit-weighted GPA
// figures under the 4.0 and 4.2 grading scales, applies manual corrections,
// and ranks students with competition ranking. The grade-value table is an
// explicit input to every computation; there is no ambient grade state.
//
// A grade token absent from the grade table contributes to neither the
// numerator nor the denominator of a GPA. It is never coerced to zero.
package gpa
