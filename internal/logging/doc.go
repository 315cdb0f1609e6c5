// Package logging assembles the structured slog loggers used across the
// conversion pipeline.
//
// It owns the configurable console/JSON handlers, centralizes level and
// output plumbing, and exposes context-aware helpers so pipeline code can
// automatically tag log lines with conversion identifiers and stage names.
// The package also provides a no-op logger for tests and wiring code that
// cannot fail.
package logging
