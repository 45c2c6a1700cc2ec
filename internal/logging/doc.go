// Package logging assembles the structured slog loggers used across the
// post-processing pipeline.
//
// It owns the configurable console/JSON handlers, centralizes level and output
// plumbing, and exposes context-aware helpers so stage code can automatically
// tag log lines with run IDs and stage names. The package also provides a
// no-op logger for tests and wiring code that cannot fail.
//
// Prefer these constructors over hand-rolled slog setup so components emit
// data with the same shape and routing as the rest of the system.
package logging
