package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// New returns a structured stdout logger. format is "json" or "text".
func New(format, level string) *slog.Logger {
	return NewWithWriter(os.Stdout, format, level)
}

// NewWithWriter is New with an explicit destination.
func NewWithWriter(w io.Writer, format, level string) *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLevel(level)}
	if strings.EqualFold(format, "text") {
		return slog.New(slog.NewTextHandler(w, opts))
	}
	return slog.New(slog.NewJSONHandler(w, opts))
}

func parseLevel(level string) slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.TrimSpace(level))); err != nil {
		return slog.LevelInfo
	}
	return l
}
