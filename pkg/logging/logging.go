// Package logging configures colored structured logging with tint and adapts
// slog to the printf-style logger the calculation engine accepts.
//
// Usage:
//
//	logging.Setup()                          // INFO level, from LOG_LEVEL env
//	logging.SetupWithLevel(slog.LevelDebug)  // explicit level override
//	engine.SetLogger(logging.Default())
//
// Environment variables:
//
//	LOG_LEVEL: debug, info, warn, error (default: info)
package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/lmittmann/tint"
)

// Setup configures colored logging at the level specified by LOG_LEVEL env var
// (default: INFO).
func Setup() {
	SetupWithLevel(LevelFromEnv())
}

// SetupWithLevel configures colored logging at the given level.
func SetupWithLevel(level slog.Level) {
	slog.SetDefault(slog.New(NewHandler(os.Stderr, level, false)))
}

// NewHandler returns the tint handler Setup installs, writing to w
func NewHandler(w io.Writer, level slog.Level, noColor bool) slog.Handler {
	return tint.NewHandler(w, &tint.Options{
		Level:      level,
		TimeFormat: time.Kitchen,
		NoColor:    noColor,
	})
}

// LevelFromEnv reads LOG_LEVEL
func LevelFromEnv() slog.Level {
	return ParseLevel(os.Getenv("LOG_LEVEL"))
}

// ParseLevel maps debug, warn and error to their levels; anything else is info
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
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

// Logger forwards printf-style calls to a slog.Logger
type Logger struct {
	L *slog.Logger
}

// Default wraps slog.Default()
func Default() Logger {
	return Logger{L: slog.Default()}
}

// New wraps l
func New(l *slog.Logger) Logger {
	return Logger{L: l}
}

func (l Logger) logf(level slog.Level, format string, args ...any) {
	if !l.L.Enabled(context.Background(), level) {
		return
	}
	l.L.Log(context.Background(), level, fmt.Sprintf(format, args...))
}

func (l Logger) Debugf(format string, args ...any) { l.logf(slog.LevelDebug, format, args...) }
func (l Logger) Infof(format string, args ...any)  { l.logf(slog.LevelInfo, format, args...) }
func (l Logger) Warnf(format string, args ...any)  { l.logf(slog.LevelWarn, format, args...) }
func (l Logger) Errorf(format string, args ...any) { l.logf(slog.LevelError, format, args...) }
