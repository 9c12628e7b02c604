// Package logger provides diagnostic logging for sdm using log/slog.
package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	charmlog "github.com/charmbracelet/log"
	"github.com/kamusis/sdm-cli/internal/config"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Logger wraps slog.Logger and owns the optional log file.
type Logger struct {
	*slog.Logger
	closer io.Closer
}

// New creates a Logger writing to w (stderr when nil) and, if cfg.File is
// set, to a rotated log file.
func New(cfg config.LogConfig, w io.Writer) (*Logger, error) {
	level, err := ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}
	if w == nil {
		w = os.Stderr
	}

	var closer io.Closer
	if cfg.File != "" {
		lj := &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    10,
			MaxBackups: 3,
			MaxAge:     28,
		}
		w = io.MultiWriter(w, lj)
		closer = lj
	}

	var handler slog.Handler
	switch strings.ToLower(cfg.Format) {
	case "json":
		handler = slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})
	case "logfmt":
		handler = newCharm(w, level, charmlog.LogfmtFormatter)
	default:
		handler = newCharm(w, level, charmlog.TextFormatter)
	}

	return &Logger{Logger: slog.New(handler), closer: closer}, nil
}

// Close closes the log file, if any.
func (l *Logger) Close() error {
	if l.closer != nil {
		return l.closer.Close()
	}
	return nil
}

func newCharm(w io.Writer, level slog.Level, f charmlog.Formatter) *charmlog.Logger {
	return charmlog.NewWithOptions(w, charmlog.Options{
		Level:           charmlog.Level(level),
		Prefix:          "sdm",
		ReportTimestamp: true,
		Formatter:       f,
	})
}

// ParseLevel converts a level name to slog.Level. The empty string means warn,
// which keeps command output free of diagnostics by default.
func ParseLevel(level string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning", "":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelWarn, fmt.Errorf("unknown log level: %s", level)
	}
}
