package logging

import (
	"io"
	"log/slog"
	"os"
)

var level = new(slog.LevelVar)

func init() {
	if os.Getenv("DEBUG") != "" {
		level.Set(slog.LevelDebug)
	}
}

type Logger = slog.Logger

// New returns a JSON logger on stderr. Stdout is reserved for protocol output
// of the stdio front end, so nothing here ever writes to it.
func New() *Logger {
	return NewWithWriter(os.Stderr)
}

func NewWithWriter(w io.Writer) *Logger {
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: level,
	}))
}

// SetDebug toggles debug output for every logger created by this package.
func SetDebug(on bool) {
	if on {
		level.Set(slog.LevelDebug)
		return
	}
	level.Set(slog.LevelInfo)
}

func Noop() *Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
