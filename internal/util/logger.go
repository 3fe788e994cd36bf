// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 aPlane Authors

package util

import (
	"io"
	"log/slog"
	"os"
)

// Logger is the process-wide logger. It discards output until InitLogger runs
// so packages can log unconditionally from tests.
var Logger = slog.New(slog.NewTextHandler(io.Discard, nil))

// InitLogger initializes the global logger writing to out.
// Set APRECOVER_DEBUG=1 environment variable to enable debug logging
func InitLogger(out io.Writer) {
	level := slog.LevelInfo // Default: only show Info, Warn, Error

	// Check for debug mode
	if os.Getenv("APRECOVER_DEBUG") != "" {
		level = slog.LevelDebug
	}

	handler := slog.NewTextHandler(out, &slog.HandlerOptions{
		Level: level,
	})

	Logger = slog.New(handler)
}

// OpenLogFile opens (or creates) the log file in append mode with owner-only
// permissions. The TUI owns stdout, so logs go here instead.
func OpenLogFile(path string) (*os.File, error) {
	return os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
}
