// Package logging provides structured logging using Go's slog package.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"

	charmlog "github.com/charmbracelet/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Config holds logging configuration.
type Config struct {
	Level   string // debug, info, warn, error
	Format  string // json, text, pretty
	App     string // application name for default attrs
	Version string // application version for default attrs
}

// FileConfig holds rolling log file settings. When enabled, log records
// are additionally written to a size-rotated JSON file.
type FileConfig struct {
	Enabled    bool
	Path       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

// New creates a new configured slog.Logger writing to stderr.
// CLI applications keep stdout for command output.
func New(cfg Config) *slog.Logger {
	return NewWithWriter(cfg, os.Stderr)
}

// NewWithWriter creates a new configured slog.Logger with a custom writer.
// Includes secret redaction by default.
func NewWithWriter(cfg Config, w io.Writer) *slog.Logger {
	return finish(cfg, newHandler(cfg, w))
}

// NewWithFile creates a logger writing to w in the configured format and,
// when fc.Enabled, to a rotated JSON log file as well.
func NewWithFile(cfg Config, fc FileConfig, w io.Writer) *slog.Logger {
	console := newHandler(cfg, w)
	if !fc.Enabled {
		return finish(cfg, console)
	}

	sink := &lumberjack.Logger{
		Filename:   fc.Path,
		MaxSize:    fc.MaxSizeMB,
		MaxBackups: fc.MaxBackups,
		MaxAge:     fc.MaxAgeDays,
		Compress:   fc.Compress,
	}

	fileHandler := slog.NewJSONHandler(sink, handlerOptions(cfg))

	return finish(cfg, NewMultiHandler(console, fileHandler))
}

// newHandler builds the console handler for the configured format.
func newHandler(cfg Config, w io.Writer) slog.Handler {
	switch {
	case strings.EqualFold(cfg.Format, "text"):
		return slog.NewTextHandler(w, handlerOptions(cfg))
	case strings.EqualFold(cfg.Format, "pretty"):
		return charmlog.NewWithOptions(w, charmlog.Options{
			Level:           charmlog.Level(parseLevel(cfg.Level)),
			ReportTimestamp: true,
		})
	default:
		return slog.NewJSONHandler(w, handlerOptions(cfg))
	}
}

func handlerOptions(cfg Config) *slog.HandlerOptions {
	return &slog.HandlerOptions{
		Level:       parseLevel(cfg.Level),
		ReplaceAttr: NewReplaceAttr(),
	}
}

// finish attaches the default attributes shared by every record.
func finish(cfg Config, handler slog.Handler) *slog.Logger {
	return slog.New(handler).With(
		slog.String("app", cfg.App),
		slog.String("version", cfg.Version),
	)
}

// parseLevel converts a string log level to slog.Level.
func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
