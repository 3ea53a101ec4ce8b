// Package logging builds the slog loggers used across the dubbing daemon.
//
// Two output formats are supported: a compact console format for
// interactive use and JSON for log aggregation. Helpers in attrs.go keep
// attribute keys consistent between components.
package logging
