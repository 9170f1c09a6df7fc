// Package yalogger defines the structured logging interface used across the kit
// together with its logrus backend.
package yalogger

import (
	"io"

	"github.com/google/uuid"
)

// Config defines the configuration options for the logger.
//
// BaseLoggerType: The backend to build (only Logrus is supported).
// Level: The minimum level to output.
// FullTimestamp: Whether to print the full timestamp instead of elapsed seconds.
// DisableTimestamp: Whether to drop timestamps altogether.
// TimestampFormat: The layout used for timestamps.
// JSON: Emit one JSON object per line instead of the text format.
// Output: Where to write; nil means stderr.
type Config struct {
	BaseLoggerType   BaseLoggerType
	Level            Level
	FullTimestamp    bool
	DisableTimestamp bool
	TimestampFormat  string
	JSON             bool
	Output           io.Writer
}

// BaseLogger is an interface for creating new Logger instances.
type BaseLogger interface {
	// NewLogger creates a new Logger with an empty field set.
	NewLogger() Logger
}

// Logger defines a structured logging interface with support for various log levels,
// formatting, and context-aware logging using key-value fields.
//
// The With* methods never modify the receiver, they return a derived Logger.
type Logger interface {
	Info(msg string)
	Infof(format string, args ...any)
	Trace(msg string)
	Tracef(format string, args ...any)
	Error(msg string)
	Errorf(format string, args ...any)
	Warn(msg string)
	Warnf(format string, args ...any)
	Debug(msg string)
	Debugf(format string, args ...any)

	// Fatal logs at Fatal level and terminates the process.
	Fatal(msg string)
	Fatalf(format string, args ...any)

	// WithField returns a logger with a single field added to the context.
	//
	// Example usage:
	//
	//   log.WithField("update_id", 42).Info("update received")
	WithField(key string, value any) Logger

	// WithFields returns a logger with multiple fields added to the context.
	WithFields(fields map[string]any) Logger

	// WithRequestUUID returns a logger carrying a request id, used by the webhook
	// to correlate every line logged while one update is processed.
	WithRequestUUID(id uuid.UUID) Logger

	// WithRandomRequestID is WithRequestUUID with a freshly generated id.
	WithRandomRequestID() Logger

	// WithUserID returns a logger with a Telegram user id in the context.
	WithUserID(userID int64) Logger

	// GetFields returns a copy of the current context fields.
	GetFields() map[string]any

	// GetField returns the value of a context field or nil.
	GetField(key string) any
}
