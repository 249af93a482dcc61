package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

var std = slog.New(slog.NewTextHandler(os.Stderr, nil))

// New builds a logger writing JSON outside development and text inside it.
func New(w io.Writer, env, level string) *slog.Logger {
	opts := &slog.HandlerOptions{Level: ParseLevel(level)}
	if strings.EqualFold(env, "development") || env == "" {
		return slog.New(slog.NewTextHandler(w, opts))
	}
	return slog.New(slog.NewJSONHandler(w, opts))
}

// Init replaces the package logger and the slog default, writing to stdout.
func Init(env, level string) {
	InitTo(os.Stdout, env, level)
}

func InitTo(w io.Writer, env, level string) {
	std = New(w, env, level)
	slog.SetDefault(std)
}

func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func Debug(msg string, args ...any) { std.Debug(msg, args...) }

func Info(msg string, args ...any) { std.Info(msg, args...) }

func Warn(msg string, args ...any) { std.Warn(msg, args...) }

func Error(msg string, args ...any) { std.Error(msg, args...) }

// Fatal logs at error level and exits the process.
func Fatal(msg string, args ...any) {
	std.Error(msg, args...)
	os.Exit(1)
}
