// Package logging configures the structured application log. Records are
// written as JSON to a size-rotated file so that terminal output stays clean.
package logging

import (
	"io"
	"log/slog"
	"strings"

	"github.com/davecgh/go-spew/spew"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/ayoisaiah/momentum/internal/apperr"
)

const (
	maxSizeMB  = 10
	maxBackups = 3
	maxAgeDays = 28
)

var errUnknownLevel = &apperr.Error{
	Kind:    apperr.KindValidation,
	Message: "unknown log level %q: expected debug, info, warn or error",
}

// ParseLevel converts a configured level name into a slog level. An empty
// name means info.
func ParseLevel(name string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}

	return 0, errUnknownLevel.Fmt(name)
}

// NewFileWriter returns a rotating writer for the log file at path.
func NewFileWriter(path string) io.WriteCloser {
	return &lumberjack.Logger{
		Filename:   path,
		MaxSize:    maxSizeMB,
		MaxBackups: maxBackups,
		MaxAge:     maxAgeDays,
	}
}

// New returns a JSON logger writing to w at the given level.
func New(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: level,
	}))
}

// Setup installs a file logger as the slog default. The returned closer
// releases the log file.
func Setup(path, levelName string) (io.Closer, error) {
	level, err := ParseLevel(levelName)
	if err != nil {
		return nil, err
	}

	w := NewFileWriter(path)

	slog.SetDefault(New(w, level))

	return w, nil
}

// Dump returns a deep dump of v for debug records.
func Dump(v ...any) string {
	return spew.Sdump(v...)
}
