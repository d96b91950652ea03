// Package logger wraps charmbracelet/log behind a small structured-logging
// interface so callers never import the charm logger directly.
package logger

import (
	"context"
	"io"
	"os"
	"sync"

	charmlog "github.com/charmbracelet/log"
)

// Logger is the structured logger the rest of the application uses.
type Logger interface {
	Debug(msg string, keyvals ...any)
	Info(msg string, keyvals ...any)
	Warn(msg string, keyvals ...any)
	Error(msg string, keyvals ...any)
}

type loggerImpl struct {
	charmLogger *charmlog.Logger
}

func (l *loggerImpl) Debug(msg string, keyvals ...any) {
	l.charmLogger.Debug(msg, keyvals...)
}

func (l *loggerImpl) Info(msg string, keyvals ...any) {
	l.charmLogger.Info(msg, keyvals...)
}

func (l *loggerImpl) Warn(msg string, keyvals ...any) {
	l.charmLogger.Warn(msg, keyvals...)
}

func (l *loggerImpl) Error(msg string, keyvals ...any) {
	l.charmLogger.Error(msg, keyvals...)
}

// Config controls logger construction.
type Config struct {
	Level  string
	Output io.Writer
	JSON   bool
}

// DefaultConfig returns info-level text logging on stderr.
func DefaultConfig() *Config {
	return &Config{
		Level:  "info",
		Output: os.Stderr,
	}
}

func parseLevel(s string) charmlog.Level {
	switch s {
	case "debug":
		return charmlog.DebugLevel
	case "warn":
		return charmlog.WarnLevel
	case "error":
		return charmlog.ErrorLevel
	default:
		return charmlog.InfoLevel
	}
}

// NewLogger builds a logger from the config.
func NewLogger(cfg *Config) Logger {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}
	charmLogger := charmlog.NewWithOptions(out, charmlog.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05",
		Level:           parseLevel(cfg.Level),
	})
	if cfg.JSON {
		charmLogger.SetFormatter(charmlog.JSONFormatter)
	}
	return &loggerImpl{charmLogger: charmLogger}
}

var (
	defaultMu     sync.Mutex
	defaultLogger Logger
)

// Init replaces the process-wide default logger.
func Init(cfg *Config) {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	defaultLogger = NewLogger(cfg)
}

// FromContext returns the logger for the request. There is currently one
// process-wide logger; the context parameter keeps call sites stable if
// per-request loggers arrive later.
func FromContext(_ context.Context) Logger {
	return GetDefault()
}

// GetDefault returns the process-wide logger, initializing it on first use.
func GetDefault() Logger {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	if defaultLogger == nil {
		defaultLogger = NewLogger(DefaultConfig())
	}
	return defaultLogger
}
