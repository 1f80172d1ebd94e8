// Package logging assembles structured slog loggers used across vidgrab.
//
// It owns the console and JSON handlers, the tee handler that adds a
// debug stream on stderr for verbose runs, and context helpers that tag log
// lines with the server download id and the request correlation id. A no-op
// logger is provided for tests.
package logging
