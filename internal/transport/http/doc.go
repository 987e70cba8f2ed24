// Package http exposes the read surface over processed semester runs:
// rankings, per-student standing, and per-module grade distributions.
// Handlers depend on the narrow ResultsReader interface so tests can run
// against a stub store.
package http
