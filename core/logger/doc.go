// Package logger provides a structured logging facility based on Zap.
//
// It offers a configured logger instance that supports a console encoding for
// interactive use and a JSON encoding for captured output.
//
// # Run Correlation
//
// Every command invocation is assigned a run ID. WithRunID attaches it to the logger
// so that all lines of one run, including the rating progress lines emitted from
// worker goroutines, can be correlated.
//
// # Configuration
//
// The package supports configuration for:
//   - Level: debug, info, warn, error
//   - Format: json or console
//
// # Usage
//
//	log, _ := logger.New(&logger.Config{Level: "info", Format: "console"})
//	log = logger.WithRunID(log, runID)
//	log.Info("Reading osu!.db...")
package logger
