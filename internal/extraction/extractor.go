package extraction

import (
	"log/slog"
	"strconv"
	"strings"

	"gradecli/internal/config"
	"gradecli/pkg/contracts/domain"
)

// noData marks grade cells that carry no usable value. "nan" is what the
// extraction collaborator emits for cells pandas-style tooling left empty.
var noData = map[string]bool{
	"":    true,
	"-":   true,
	"nan": true,
	"NaN": true,
	"N/A": true,
}

// CanonicalIndex finds the first run of exactly 6 consecutive digits in the
// raw index text and parses it. Suffix letters and separators ("230012U",
// "230012/U") are tolerated; runs of any other length are not index-shaped.
func CanonicalIndex(text string) (int, bool) {
	runStart := -1
	text = strings.TrimSpace(text)

	flush := func(end int) (int, bool) {
		if runStart < 0 || end-runStart != 6 {
			return 0, false
		}
		idx, err := strconv.Atoi(text[runStart:end])
		if err != nil {
			return 0, false
		}
		return idx, true
	}

	for i, r := range text {
		if r >= '0' && r <= '9' {
			if runStart < 0 {
				runStart = i
			}
			continue
		}
		if idx, ok := flush(i); ok {
			return idx, true
		}
		runStart = -1
	}
	return flush(len(text))
}

// hasIndexShape reports whether the cell contains a 6-digit run, the
// canonical student-index shape. An optional trailing letter is implied: the
// run just has to be present somewhere in the text.
func hasIndexShape(cell string) bool {
	_, ok := CanonicalIndex(cell)
	return ok
}

// ExtractRecords walks every row of the cleaned table across every column
// pair and emits a record per cell pair that passes validation: the index
// cell canonicalizes to a member of the valid-index set and the grade cell
// carries data. Failing rows are skipped without error.
func ExtractRecords(table domain.RawTable, pairs []domain.ColumnPair, valid map[int]bool) []domain.IndexGradeRecord {
	var records []domain.IndexGradeRecord

	for row := 0; row < table.Rows(); row++ {
		for _, pair := range pairs {
			idx, ok := CanonicalIndex(table.Cell(row, pair.IndexCol))
			if !ok || !valid[idx] {
				continue
			}
			grade := strings.TrimSpace(table.Cell(row, pair.GradeCol))
			if noData[grade] {
				continue
			}
			records = append(records, domain.IndexGradeRecord{Index: idx, Grade: grade})
		}
	}

	return records
}

// Extractor runs the full clean → classify → pair → extract pipeline over
// raw tables with one configurable strategy: "single" uses only the leftmost
// column pair of each table, "multi" uses every pair.
type Extractor struct {
	classifier *Classifier
	strategy   string
	logger     *slog.Logger
}

// NewExtractor builds an extractor from the extraction configuration.
func NewExtractor(grades domain.GradeTable, cfg config.ExtractionConfig, logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Extractor{
		classifier: NewClassifier(grades,
			WithThreshold(cfg.MatchThreshold),
			WithSampleWindow(cfg.SampleWindow),
			WithHeaderScanRows(cfg.HeaderScanRows),
			WithLogger(logger),
		),
		strategy: cfg.Strategy,
		logger:   logger,
	}
}

// ExtractTables extracts validated records from a sequence of raw tables, in
// table order. Tables that clean down to nothing or yield no column pair
// contribute no records.
func (e *Extractor) ExtractTables(tables []domain.RawTable, valid map[int]bool) []domain.IndexGradeRecord {
	var records []domain.IndexGradeRecord

	for _, raw := range tables {
		cleaned := Clean(raw)
		if cleaned.Rows() == 0 {
			continue
		}

		roles := e.classifier.Classify(cleaned)
		pairs := Pair(roles)
		if len(pairs) == 0 {
			e.logger.Debug("no column pairs in table", slog.String("source", raw.Source))
			continue
		}
		if e.strategy == "single" {
			pairs = pairs[:1]
		}

		extracted := ExtractRecords(cleaned, pairs, valid)
		e.logger.Debug("extracted records from table",
			slog.String("source", raw.Source),
			slog.Int("pairs", len(pairs)),
			slog.Int("records", len(extracted)))
		records = append(records, extracted...)
	}

	return records
}
