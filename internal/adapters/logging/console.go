package logging

import (
	"context"
	"io"
	"log/slog"
	"os"
	"sync"

	"github.com/lmittmann/tint"

	"github.com/etc-dev/etc/internal/ports"
)

// Format selects how the console logger renders entries.
type Format string

const (
	// FormatText renders human readable lines through tint.
	FormatText Format = "text"
	// FormatJSON renders one JSON object per line.
	FormatJSON Format = "json"
)

// ParseFormat converts a --log-format value into a Format.
func ParseFormat(s string) (Format, bool) {
	switch Format(s) {
	case FormatText, FormatJSON:
		return Format(s), true
	default:
		return "", false
	}
}

// slog has no trace level; it sits one step below debug.
const slogLevelTrace = slog.LevelDebug - 4

// ConsoleLogger logs structured messages to the console through log/slog.
type ConsoleLogger struct {
	mu          sync.Mutex
	out         io.Writer
	level       ports.Level
	fields      []ports.Field
	format      Format
	color       bool
	includeTime bool
}

// ConsoleLoggerOption configures the console logger.
type ConsoleLoggerOption func(*ConsoleLogger)

// WithOutput sets the output writer (default: os.Stderr).
func WithOutput(w io.Writer) ConsoleLoggerOption {
	return func(l *ConsoleLogger) {
		l.out = w
	}
}

// WithLevel sets the minimum log level (default: Info).
func WithLevel(level ports.Level) ConsoleLoggerOption {
	return func(l *ConsoleLogger) {
		l.level = level
	}
}

// WithFormat sets the output format.
func WithFormat(format Format) ConsoleLoggerOption {
	return func(l *ConsoleLogger) {
		l.format = format
	}
}

// WithColor enables ANSI colors in text output.
func WithColor(enabled bool) ConsoleLoggerOption {
	return func(l *ConsoleLogger) {
		l.color = enabled
	}
}

// WithTimestamp includes timestamp in log entries.
func WithTimestamp(enabled bool) ConsoleLoggerOption {
	return func(l *ConsoleLogger) {
		l.includeTime = enabled
	}
}

// NewConsoleLogger creates a new console logger.
func NewConsoleLogger(opts ...ConsoleLoggerOption) *ConsoleLogger {
	l := &ConsoleLogger{
		out:         os.Stderr,
		level:       ports.LevelInfo,
		format:      FormatText,
		includeTime: true,
	}

	for _, opt := range opts {
		opt(l)
	}

	return l
}

// Trace logs a trace message.
func (l *ConsoleLogger) Trace(ctx context.Context, msg string, fields ...ports.Field) {
	l.log(ctx, ports.LevelTrace, msg, fields)
}

// Debug logs a debug message.
func (l *ConsoleLogger) Debug(ctx context.Context, msg string, fields ...ports.Field) {
	l.log(ctx, ports.LevelDebug, msg, fields)
}

// Info logs an informational message.
func (l *ConsoleLogger) Info(ctx context.Context, msg string, fields ...ports.Field) {
	l.log(ctx, ports.LevelInfo, msg, fields)
}

// Warn logs a warning message.
func (l *ConsoleLogger) Warn(ctx context.Context, msg string, fields ...ports.Field) {
	l.log(ctx, ports.LevelWarn, msg, fields)
}

// Error logs an error message.
func (l *ConsoleLogger) Error(ctx context.Context, msg string, fields ...ports.Field) {
	l.log(ctx, ports.LevelError, msg, fields)
}

// With returns a new logger with additional fields.
func (l *ConsoleLogger) With(fields ...ports.Field) ports.Logger {
	newFields := make([]ports.Field, len(l.fields)+len(fields))
	copy(newFields, l.fields)
	copy(newFields[len(l.fields):], fields)

	return &ConsoleLogger{
		out:         l.out,
		level:       l.level,
		fields:      newFields,
		format:      l.format,
		color:       l.color,
		includeTime: l.includeTime,
	}
}

// Level returns the minimum log level.
func (l *ConsoleLogger) Level() ports.Level {
	return l.level
}

// SetLevel sets the minimum log level.
func (l *ConsoleLogger) SetLevel(level ports.Level) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.level = level
}

// log writes a log entry if the level is enabled.
func (l *ConsoleLogger) log(ctx context.Context, level ports.Level, msg string, fields []ports.Field) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if level < l.level {
		return
	}

	attrs := make([]slog.Attr, 0, len(l.fields)+len(fields))
	for _, f := range l.fields {
		attrs = append(attrs, slog.Any(f.Key, f.Value))
	}
	for _, f := range fields {
		attrs = append(attrs, slog.Any(f.Key, f.Value))
	}

	slog.New(l.handler()).LogAttrs(ctx, toSlogLevel(level), msg, attrs...)
}

// handler builds the slog handler for the current settings. Filtering is
// done by log, so the handler accepts every level.
func (l *ConsoleLogger) handler() slog.Handler {
	replace := func(groups []string, a slog.Attr) slog.Attr {
		if len(groups) > 0 {
			return a
		}
		if a.Key == slog.TimeKey && !l.includeTime {
			return slog.Attr{}
		}
		return a
	}

	if l.format == FormatJSON {
		return slog.NewJSONHandler(l.out, &slog.HandlerOptions{
			Level: slogLevelTrace,
			ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
				a = replace(groups, a)
				if a.Key == slog.LevelKey && len(groups) == 0 {
					if lvl, ok := a.Value.Any().(slog.Level); ok && lvl == slogLevelTrace {
						a.Value = slog.StringValue(ports.LevelTrace.String())
					}
				}
				return a
			},
		})
	}

	return tint.NewHandler(l.out, &tint.Options{
		Level:       slogLevelTrace,
		TimeFormat:  "15:04:05",
		NoColor:     !l.color,
		ReplaceAttr: replace,
	})
}

func toSlogLevel(level ports.Level) slog.Level {
	switch level {
	case ports.LevelTrace:
		return slogLevelTrace
	case ports.LevelDebug:
		return slog.LevelDebug
	case ports.LevelWarn:
		return slog.LevelWarn
	case ports.LevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Ensure ConsoleLogger implements Logger.
var _ ports.Logger = (*ConsoleLogger)(nil)
