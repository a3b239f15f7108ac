// Package logger gives every ambient component (CLI, catalog loader,
// planner diagnostics) one shared zerolog.Logger instead of each reaching
// for log.Printf on its own.
package logger

import (
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

// New builds a zerolog.Logger at the given level, writing either structured
// JSON ("json") or a human-readable console format ("console"/"" default).
func New(level, format string) zerolog.Logger {
	var out io.Writer = os.Stderr
	if format != "json" {
		out = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"}
	}

	l := zerolog.New(out).With().Timestamp().Logger()
	l = l.Level(parseLevel(level))
	return l
}

func parseLevel(level string) zerolog.Level {
	switch strings.ToLower(level) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "":
		return zerolog.InfoLevel
	default:
		return zerolog.InfoLevel
	}
}

// Default returns an info-level console logger, for callers (library tests,
// small scripts) that don't need to thread one through from main.
func Default() zerolog.Logger {
	return New("info", "console")
}
