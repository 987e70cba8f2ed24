package extraction

import (
	"log/slog"
	"strings"

	"gradecli/pkg/contracts/domain"
)

// Classifier labels each column of a cleaned table as index, grade, or
// unknown by sampling a window of rows and scoring pattern matches. It is a
// pure function of its inputs: no shared state, safe to reuse across tables.
type Classifier struct {
	grades         domain.GradeTable
	gradeTokens    map[string]bool
	threshold      float64
	sampleWindow   int
	headerScanRows int
	logger         *slog.Logger
}

// ClassifierOption customizes a Classifier.
type ClassifierOption func(*Classifier)

// WithThreshold overrides the match-ratio threshold (default 0.3). The
// threshold tolerates noisy scans without requiring every sampled cell to
// match.
func WithThreshold(threshold float64) ClassifierOption {
	return func(c *Classifier) { c.threshold = threshold }
}

// WithSampleWindow overrides the number of rows sampled per column
// (default 20).
func WithSampleWindow(window int) ClassifierOption {
	return func(c *Classifier) { c.sampleWindow = window }
}

// WithHeaderScanRows overrides how many leading rows are checked for a
// header (default 5).
func WithHeaderScanRows(rows int) ClassifierOption {
	return func(c *Classifier) { c.headerScanRows = rows }
}

// WithLogger attaches a logger for borderline-classification audit output.
func WithLogger(logger *slog.Logger) ClassifierOption {
	return func(c *Classifier) { c.logger = logger }
}

// NewClassifier creates a classifier over the given grade table. Tokens of
// the grade table plus the administrative markers count as grade-shaped.
func NewClassifier(grades domain.GradeTable, opts ...ClassifierOption) *Classifier {
	c := &Classifier{
		grades:         grades,
		threshold:      0.3,
		sampleWindow:   20,
		headerScanRows: 5,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}

	c.gradeTokens = make(map[string]bool, len(grades)+len(domain.AdministrativeMarkers))
	for token := range grades {
		c.gradeTokens[token] = true
	}
	for _, token := range domain.AdministrativeMarkers {
		c.gradeTokens[token] = true
	}

	return c
}

// Classify returns the role of every column of the cleaned table, keyed by
// column position.
func (c *Classifier) Classify(table domain.RawTable) map[int]domain.ColumnRole {
	start := c.samplingStart(table)
	roles := make(map[int]domain.ColumnRole, table.Cols())

	for col := 0; col < table.Cols(); col++ {
		roles[col] = c.classifyColumn(table, col, start)
	}

	return roles
}

// samplingStart locates the header row within the leading rows. The first
// row containing "index" or "grade" (case-insensitive) marks the header;
// sampling begins on the row after it. Without a header, sampling starts at
// row 0.
func (c *Classifier) samplingStart(table domain.RawTable) int {
	limit := c.headerScanRows
	if limit > table.Rows() {
		limit = table.Rows()
	}

	for row := 0; row < limit; row++ {
		for col := 0; col < table.Cols(); col++ {
			cell := strings.ToLower(table.Cell(row, col))
			if strings.Contains(cell, "index") || strings.Contains(cell, "grade") {
				return row + 1
			}
		}
	}
	return 0
}

func (c *Classifier) classifyColumn(table domain.RawTable, col, start int) domain.ColumnRole {
	sampled := 0
	indexMatches := 0
	gradeMatches := 0

	for row := start; row < table.Rows() && row-start < c.sampleWindow; row++ {
		cell := strings.TrimSpace(table.Cell(row, col))
		if cell == "" {
			continue
		}
		sampled++
		if hasIndexShape(cell) {
			indexMatches++
		}
		if c.gradeTokens[cell] {
			gradeMatches++
		}
	}

	if sampled == 0 {
		return domain.RoleUnknown
	}

	need := c.threshold * float64(sampled)
	indexRatio := float64(indexMatches) / float64(sampled)
	gradeRatio := float64(gradeMatches) / float64(sampled)

	role := domain.RoleUnknown
	switch {
	case indexMatches > 0 && float64(indexMatches) >= need:
		role = domain.RoleIndex
	case gradeMatches > 0 && float64(gradeMatches) >= need:
		role = domain.RoleGrade
	}

	// Ratios near the threshold deserve an audit trail: the table layout may
	// need a tuned threshold rather than silent misclassification.
	if borderline(indexRatio, c.threshold) || borderline(gradeRatio, c.threshold) {
		c.logger.Debug("borderline column classification",
			slog.String("source", table.Source),
			slog.Int("column", col),
			slog.String("role", string(role)),
			slog.Int("sampled", sampled),
			slog.Float64("index_ratio", indexRatio),
			slog.Float64("grade_ratio", gradeRatio),
			slog.Float64("threshold", c.threshold))
	}

	return role
}

func borderline(ratio, threshold float64) bool {
	if ratio == 0 {
		return false
	}
	diff := ratio - threshold
	if diff < 0 {
		diff = -diff
	}
	return diff <= 0.1
}
