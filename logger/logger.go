package logger

import (
	"log/slog"
	"os"
)

// Logger is the structured logger handed to every service and handler.
// Keyvals are alternating keys and values, as in slog.
type Logger interface {
	Info(msg string, keyvals ...interface{})

	Warn(msg string, keyvals ...interface{})

	Error(msg string, keyvals ...interface{})

	Debug(msg string, keyvals ...interface{})
}

// New returns a JSON logger writing to stderr. The minimum level comes
// from the LOG_LEVEL environment variable (debug, info, warn, error);
// it defaults to info.
func New() Logger {
	opts := &slog.HandlerOptions{
		Level:     logLevel(),
		AddSource: true, // include file + line number
	}
	handler := slog.NewJSONHandler(os.Stderr, opts)
	return slog.New(handler)
}

func logLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(os.Getenv("LOG_LEVEL"))); err != nil {
		return slog.LevelInfo
	}
	return level
}
