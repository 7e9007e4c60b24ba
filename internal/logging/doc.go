// Package logging assembles structured slog loggers and formatting helpers used
// across glasscat.
//
// It owns the configurable console/JSON handlers, centralizes level and output
// plumbing, and exposes context-aware helpers so every line emitted during one
// catalog load carries the same load_id. The package also provides a no-op
// logger for tests and wiring code that cannot fail.
package logging
