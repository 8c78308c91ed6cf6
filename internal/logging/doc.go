// Package logging assembles structured slog loggers and formatting helpers
// used across the instinct tool.
//
// It owns the console (key=value) and JSON handlers, level and output
// plumbing, and attribute helpers that keep warnings shaped consistently
// (event_type, error_hint, impact). A no-op logger is provided for tests and
// for library code constructed without one.
package logging
