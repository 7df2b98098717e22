package mocks

import (
	"context"
	"sync"

	"github.com/etc-dev/etc/internal/ports"
)

// LogEntry is one message recorded by Logger.
type LogEntry struct {
	Level   ports.Level
	Message string
	Fields  map[string]interface{}
}

type logStore struct {
	mu      sync.Mutex
	entries []LogEntry
}

// Logger is a ports.Logger that records every message at or above its
// level. Loggers derived with With share the same record.
type Logger struct {
	store  *logStore
	fields []ports.Field
	level  ports.Level
}

// NewLogger creates a Logger that records every level.
func NewLogger() *Logger {
	return &Logger{store: &logStore{}, level: ports.LevelTrace}
}

func (l *Logger) record(level ports.Level, msg string, fields []ports.Field) {
	if level < l.level {
		return
	}
	f := make(map[string]interface{}, len(l.fields)+len(fields))
	for _, field := range l.fields {
		f[field.Key] = field.Value
	}
	for _, field := range fields {
		f[field.Key] = field.Value
	}

	l.store.mu.Lock()
	defer l.store.mu.Unlock()
	l.store.entries = append(l.store.entries, LogEntry{Level: level, Message: msg, Fields: f})
}

// Trace records a trace message.
func (l *Logger) Trace(_ context.Context, msg string, fields ...ports.Field) {
	l.record(ports.LevelTrace, msg, fields)
}

// Debug records a debug message.
func (l *Logger) Debug(_ context.Context, msg string, fields ...ports.Field) {
	l.record(ports.LevelDebug, msg, fields)
}

// Info records an info message.
func (l *Logger) Info(_ context.Context, msg string, fields ...ports.Field) {
	l.record(ports.LevelInfo, msg, fields)
}

// Warn records a warning.
func (l *Logger) Warn(_ context.Context, msg string, fields ...ports.Field) {
	l.record(ports.LevelWarn, msg, fields)
}

// Error records an error.
func (l *Logger) Error(_ context.Context, msg string, fields ...ports.Field) {
	l.record(ports.LevelError, msg, fields)
}

// With returns a Logger that adds fields and shares the record.
func (l *Logger) With(fields ...ports.Field) ports.Logger {
	f := make([]ports.Field, 0, len(l.fields)+len(fields))
	f = append(f, l.fields...)
	f = append(f, fields...)
	return &Logger{store: l.store, fields: f, level: l.level}
}

// Level returns the minimum recorded level.
func (l *Logger) Level() ports.Level {
	return l.level
}

// SetLevel sets the minimum recorded level.
func (l *Logger) SetLevel(level ports.Level) {
	l.level = level
}

// Entries returns all recorded entries in order.
func (l *Logger) Entries() []LogEntry {
	l.store.mu.Lock()
	defer l.store.mu.Unlock()
	result := make([]LogEntry, len(l.store.entries))
	copy(result, l.store.entries)
	return result
}

// EntriesAt returns the recorded entries of one level.
func (l *Logger) EntriesAt(level ports.Level) []LogEntry {
	var result []LogEntry
	for _, e := range l.Entries() {
		if e.Level == level {
			result = append(result, e)
		}
	}
	return result
}

// Ensure Logger implements ports.Logger.
var _ ports.Logger = (*Logger)(nil)
