// Package logging builds the slog loggers used across maku.
//
// New constructs a logger from explicit options; NewFromConfig derives the
// options from application config and tees output to the configured log
// directory. Attribute helpers mirror the slog constructors so call sites
// stay terse, and NewNop provides a silent logger for tests and optional
// dependencies.
package logging
