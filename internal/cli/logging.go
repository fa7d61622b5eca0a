// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// logging.go - Diagnostic logging for a parabola run.
//
// Logs go to stderr so they never mix with results on stdout. Every record
// carries the run_id of the invocation that produced it.

package cli

import (
	"io"
	"log/slog"
	"strings"

	"github.com/gogpu/gg"
	"github.com/google/uuid"

	"github.com/jeranaias/parabola/internal/grapher"
)

// parseLevel maps a log.level setting to a slog level.
// Unknown names fall back to warn.
func parseLevel(name string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}

// newLogger builds the run logger. verbose forces debug level.
func newLogger(w io.Writer, level string, verbose bool) *slog.Logger {
	lvl := parseLevel(level)
	if verbose {
		lvl = slog.LevelDebug
	}
	h := slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl})
	return slog.New(h).With("run_id", uuid.NewString())
}

// installLogger makes l the logger for the grapher, the renderers and gg.
func installLogger(l *slog.Logger) {
	grapher.SetLogger(l)
	gg.SetLogger(l)
}
