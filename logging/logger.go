// Package logging wraps zap with console/file output, log rotation, and
// automatic redaction of API keys.
package logging

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Options configures a Logger.
type Options struct {
	// Level is the minimum level written to both outputs.
	Level zapcore.Level

	// Development switches the console to the colored human-readable encoder.
	Development bool

	// FilePath is the JSON log file. Empty disables file output.
	FilePath string

	// Rotation controls how FilePath is rotated. Zero fields use defaults.
	Rotation RotationConfig

	// Console receives console output. Defaults to os.Stderr so that stdout
	// stays free for the run report.
	Console zapcore.WriteSyncer
}

// Logger wraps zap.Logger and redacts sensitive values from every field
// before it is written.
//
// Example:
//
//	logger, err := logging.NewLogger(logging.Options{Level: logging.InfoLevel, FilePath: "finsum.log"})
//	if err != nil {
//	    return err
//	}
//	defer logger.Sync()
//	logger.Info("summary written", zap.String("path", path))
type Logger struct {
	zap   *zap.Logger
	sugar *zap.SugaredLogger
}

// NewLogger builds a Logger that tees to the console and, when FilePath is
// set, to a rotating JSON file.
func NewLogger(opts Options) (*Logger, error) {
	console := opts.Console
	if console == nil {
		console = zapcore.Lock(os.Stderr)
	}

	var file zapcore.WriteSyncer
	if opts.FilePath != "" {
		w, err := NewRotatingFile(opts.FilePath, opts.Rotation)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file: %w", err)
		}
		file = w
	}

	core := NewTeeCore(opts.Level, console, file, opts.Development)
	return newLogger(zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1))), nil
}

// NewNopLogger returns a Logger that discards everything.
func NewNopLogger() *Logger {
	return newLogger(zap.NewNop())
}

// NewWithCore wraps an existing core. Tests use it with zaptest/observer.
func NewWithCore(core zapcore.Core) *Logger {
	return newLogger(zap.New(core))
}

func newLogger(z *zap.Logger) *Logger {
	return &Logger{zap: z, sugar: z.Sugar()}
}

// Sync flushes buffered entries. Call it before exit.
func (l *Logger) Sync() error {
	if l == nil || l.zap == nil {
		return nil
	}
	return l.zap.Sync()
}

// Debug logs at DebugLevel.
func (l *Logger) Debug(msg string, fields ...zap.Field) {
	l.zap.Debug(msg, redactFields(fields)...)
}

// Info logs at InfoLevel.
func (l *Logger) Info(msg string, fields ...zap.Field) {
	l.zap.Info(msg, redactFields(fields)...)
}

// Warn logs at WarnLevel.
func (l *Logger) Warn(msg string, fields ...zap.Field) {
	l.zap.Warn(msg, redactFields(fields)...)
}

// Error logs at ErrorLevel.
func (l *Logger) Error(msg string, fields ...zap.Field) {
	l.zap.Error(msg, redactFields(fields)...)
}

// Infow logs at InfoLevel with loosely-typed key-value pairs.
//
// Example:
//
//	logger.Infow("chart written", "path", chartPath, "bars", 4)
func (l *Logger) Infow(msg string, keysAndValues ...interface{}) {
	l.sugar.Infow(msg, redactKeysAndValues(keysAndValues)...)
}

// Warnw logs at WarnLevel with loosely-typed key-value pairs.
func (l *Logger) Warnw(msg string, keysAndValues ...interface{}) {
	l.sugar.Warnw(msg, redactKeysAndValues(keysAndValues)...)
}

// Debugf logs a formatted message at DebugLevel.
func (l *Logger) Debugf(template string, args ...interface{}) {
	l.sugar.Debugf(template, args...)
}

// With returns a child logger that adds fields to every entry.
func (l *Logger) With(fields ...zap.Field) *Logger {
	return newLogger(l.zap.With(redactFields(fields)...))
}

// Named returns a child logger with a sub-name, e.g. "llm" or "chart".
func (l *Logger) Named(name string) *Logger {
	return newLogger(l.zap.Named(name))
}

// Zap exposes the underlying zap.Logger.
func (l *Logger) Zap() *zap.Logger {
	return l.zap
}

func redactFields(fields []zap.Field) []zap.Field {
	if len(fields) == 0 {
		return fields
	}
	out := make([]zap.Field, len(fields))
	for i, f := range fields {
		out[i] = redactField(f)
	}
	return out
}

func redactField(f zap.Field) zap.Field {
	if IsSensitiveField(f.Key) {
		return zap.String(f.Key, RedactedPlaceholder)
	}
	if f.Type == zapcore.StringType {
		if redacted := RedactSensitiveData(f.String); redacted != f.String {
			return zap.String(f.Key, redacted)
		}
	}
	if f.Type == zapcore.ErrorType {
		if err, ok := f.Interface.(error); ok && err != nil {
			msg := err.Error()
			if redacted := RedactSensitiveData(msg); redacted != msg {
				return zap.String(f.Key, redacted)
			}
		}
	}
	return f
}

// redactKeysAndValues walks key-value pairs; even indices are keys.
func redactKeysAndValues(kv []interface{}) []interface{} {
	if len(kv) == 0 {
		return kv
	}
	out := make([]interface{}, len(kv))
	copy(out, kv)
	for i := 0; i < len(out)-1; i += 2 {
		key, ok := out[i].(string)
		if !ok {
			continue
		}
		if IsSensitiveField(key) {
			out[i+1] = RedactedPlaceholder
			continue
		}
		if value, ok := out[i+1].(string); ok {
			out[i+1] = RedactSensitiveData(value)
		}
	}
	return out
}
