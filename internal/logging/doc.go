// Package logging provides logging utilities for vdev.
//
// Two kinds of output are kept apart:
//   - Debug logging: structured records via slog, written to stderr
//   - User output: short status lines for operators
//
// # Debug Logging
//
//	logging.Debug("loading integration", "name", name, "path", path)
//	logging.Warn("skipping integration", "name", name, "error", err)
//	logging.ForIntegration("api").Debug("active environment", "env", env)
//
// Setup switches between text and JSON handlers and raises the level to
// debug when verbose is set.
//
// # User Output
//
//	logging.UserSuccess("Activated %s for %s", env, integration)
//	logging.UserWarning("Active environment %s is no longer declared", env)
//
// UserInfo and UserSuccess write to Stdout, UserWarning and UserError to
// Stderr. Both are package variables so tests can capture them.
package logging
