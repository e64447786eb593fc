package logging

import (
	"strings"

	"go.uber.org/zap/zapcore"
)

// Level aliases so callers need not import zapcore.
const (
	DebugLevel = zapcore.DebugLevel
	InfoLevel  = zapcore.InfoLevel
	WarnLevel  = zapcore.WarnLevel
	ErrorLevel = zapcore.ErrorLevel
)

// ParseLogLevel maps a case-insensitive level name to a zap level.
// Unknown or empty names yield defaultLevel.
func ParseLogLevel(name string, defaultLevel zapcore.Level) zapcore.Level {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return zapcore.DebugLevel
	case "info":
		return zapcore.InfoLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return defaultLevel
	}
}

// LevelFor picks the level for a run: an explicit name wins, then debug in
// development mode, then info.
func LevelFor(name string, development bool) zapcore.Level {
	def := zapcore.InfoLevel
	if development {
		def = zapcore.DebugLevel
	}
	return ParseLogLevel(name, def)
}
