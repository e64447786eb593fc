package logging

import (
	"go.uber.org/zap/zapcore"
)

// NewTeeCore combines a console core and an optional file core.
//
// The file always receives JSON. The console receives the colored
// human-readable format in development mode and JSON otherwise.
// A nil file writer yields a console-only core.
func NewTeeCore(level zapcore.Level, console, file zapcore.WriteSyncer, isDev bool) zapcore.Core {
	var consoleEncoder zapcore.Encoder
	if isDev {
		consoleEncoder = zapcore.NewConsoleEncoder(NewConsoleEncoderConfig())
	} else {
		consoleEncoder = zapcore.NewJSONEncoder(NewEncoderConfig())
	}
	consoleCore := zapcore.NewCore(consoleEncoder, console, level)

	if file == nil {
		return consoleCore
	}

	fileCore := zapcore.NewCore(zapcore.NewJSONEncoder(NewEncoderConfig()), file, level)
	return zapcore.NewTee(consoleCore, fileCore)
}
