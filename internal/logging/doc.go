// Package logging provides slog setup and attribute helpers for consistent
// structured logging across the application.
//
// All log output goes to stderr so that stdout stays reserved for the
// user-facing command output.
package logging
