// Package exporter writes the ranked results of a semester run to disk: two
// Excel workbooks (a basic sheet and an extended sheet with names and
// 4.2-scale ranks, each carrying a per-module grade-count block) and a
// rankings CSV. Each artifact is opened, fully populated, and closed before
// the next one is started, so a failed run never leaves a half-written file
// behind an open handle.
package exporter
