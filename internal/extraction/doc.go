// Package extraction recovers (student index, grade) pairs from the raw 2-D
// text grids an external table-extraction service produces for PDF result
// sheets. The grids are heterogeneous: index and grade columns may repeat
// several times per physical row, carry header remnants and OCR noise, or be
// interleaved with unrelated columns.
//
// # Pipeline
//
// One grid moves through four steps:
//
//	RawTable → Clean → Classify → Pair → ExtractRecords
//
// Clean drops fully-empty rows and columns and renumbers columns from 0.
// Classify samples a window of rows per column and labels each column index,
// grade, or unknown by pattern-match ratio against a configurable threshold.
// Pair greedily binds each index column to the nearest unused grade column to
// its right, which handles the repeating (Index, Grade, Index, Grade, ...)
// block layout of multi-column sheets. ExtractRecords walks the paired
// columns row by row, canonicalizes index text to its 6-digit numeric form,
// and admits a record only when the index belongs to the known-student set
// and the grade cell carries data.
//
// Extraction is tolerant by design: rows that fail any check are skipped
// silently, because scraped tables always contain stray header remnants,
// page-break artifacts, and blank trailers.
package extraction
