package logger

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// contextKey is a type for context keys to avoid collisions
type contextKey string

// CycleIDKey is the context key carrying the refresh-cycle correlation ID.
const CycleIDKey contextKey = "cycle_id"

var log *logrus.Logger

func init() {
	log = logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{
		TimestampFormat: time.RFC3339Nano,
	})
	log.SetLevel(logrus.InfoLevel)
}

// GetLogger returns the singleton logger instance
func GetLogger() *logrus.Logger {
	return log
}

// SetLogLevel sets the global log level
func SetLogLevel(level string) {
	switch level {
	case "debug":
		log.SetLevel(logrus.DebugLevel)
	case "info":
		log.SetLevel(logrus.InfoLevel)
	case "warn":
		log.SetLevel(logrus.WarnLevel)
	case "error":
		log.SetLevel(logrus.ErrorLevel)
	default:
		log.SetLevel(logrus.InfoLevel)
	}
}

// SetLogFormat switches between JSON and plain-text output.
func SetLogFormat(format string) {
	switch format {
	case "text":
		log.SetFormatter(&logrus.TextFormatter{
			TimestampFormat: time.RFC3339,
			FullTimestamp:   true,
		})
	default:
		log.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: time.RFC3339Nano,
		})
	}
}

// SetEnabled silences all output when the host disables logging. The logger
// stays usable either way so callers never need nil checks.
func SetEnabled(enabled bool) {
	if enabled {
		log.SetOutput(os.Stderr)
	} else {
		log.SetOutput(io.Discard)
	}
}

// WithCycleID attaches a fresh refresh-cycle correlation ID to the context.
func WithCycleID(ctx context.Context) context.Context {
	return context.WithValue(ctx, CycleIDKey, uuid.New().String())
}

// GetCycleID extracts the cycle correlation ID from the context.
func GetCycleID(ctx context.Context) string {
	if cycleID, ok := ctx.Value(CycleIDKey).(string); ok {
		return cycleID
	}
	return ""
}

// WithCycle returns an entry pre-populated with the cycle correlation ID.
func WithCycle(ctx context.Context) *logrus.Entry {
	return log.WithField("cycle_id", GetCycleID(ctx))
}
