// Package services orchestrates the processing pipeline: it loads the
// configured datasets, runs extraction over each module's result grids,
// aggregates grades into semester runs, and hands ranked results to the
// CLIs and the HTTP surface.
package services
