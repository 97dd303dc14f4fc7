package common

import (
	"context"
	"io"
	"log"
)

// OperationLogger provides logging for scan and refresh operations
type OperationLogger interface {
	Log(level, message string, metadata map[string]interface{})
}

// Context keys for passing logger through context
type contextKey int

const (
	loggerKey contextKey = iota
)

// WithLogger adds a logger to the context
func WithLogger(ctx context.Context, logger OperationLogger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// LoggerFromContext extracts the logger from context, or returns a no-op logger if not found
func LoggerFromContext(ctx context.Context) OperationLogger {
	if logger, ok := ctx.Value(loggerKey).(OperationLogger); ok {
		return logger
	}
	return &noOpLogger{}
}

// noOpLogger is a logger that does nothing (fallback when no logger in context)
type noOpLogger struct{}

func (l *noOpLogger) Log(level, message string, metadata map[string]interface{}) {
}

var levelRank = map[string]int{
	"debug": 0,
	"info":  1,
	"warn":  2,
	"error": 3,
}

// StdLogger writes operation logs through the standard library logger,
// dropping entries below its minimum level
type StdLogger struct {
	minLevel int
	logger   *log.Logger
}

// NewStdLogger creates a logger writing to w at the given minimum level.
// Unknown levels default to info.
func NewStdLogger(level string, w io.Writer) *StdLogger {
	rank, ok := levelRank[level]
	if !ok {
		rank = levelRank["info"]
	}
	return &StdLogger{
		minLevel: rank,
		logger:   log.New(w, "", log.LstdFlags),
	}
}

func (l *StdLogger) Log(level, message string, metadata map[string]interface{}) {
	rank, ok := levelRank[level]
	if ok && rank < l.minLevel {
		return
	}
	if len(metadata) > 0 {
		l.logger.Printf("[%s] %s %v", level, message, metadata)
		return
	}
	l.logger.Printf("[%s] %s", level, message)
}
