// Package logging provides structured logging utilities for the calplan
// application.
//
// This package centralizes logging patterns to ensure consistent, structured
// logging throughout the codebase using the standard library's slog package.
//
// Create a logger with standard attributes:
//
//	logger := logging.WithComponent(slog.Default(), "caldav")
//	logger.Info("event created", logging.Operation("create_event"))
package logging
