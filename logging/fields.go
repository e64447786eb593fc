package logging

import (
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// GenerationMetrics describes one text-generation call.
type GenerationMetrics struct {
	Provider    string
	Model       string
	Attempts    int
	PromptChars int
	OutputChars int
	Duration    time.Duration
	Fallback    bool
}

// MarshalLogObject implements zapcore.ObjectMarshaler.
func (m GenerationMetrics) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	enc.AddString("provider", m.Provider)
	enc.AddString("model", m.Model)
	enc.AddInt("attempts", m.Attempts)
	enc.AddInt("prompt_chars", m.PromptChars)
	enc.AddInt("output_chars", m.OutputChars)
	enc.AddDuration("duration", m.Duration)
	enc.AddBool("fallback", m.Fallback)
	return nil
}

// GenerationFields nests the metrics under a "generation" key.
//
// Example:
//
//	logger.Info("summary generated", logging.GenerationFields(metrics))
func GenerationFields(m GenerationMetrics) zap.Field {
	return zap.Object("generation", m)
}

// StageFields tags a log entry with the pipeline stage and its elapsed time.
func StageFields(stage string, elapsed time.Duration) []zap.Field {
	return []zap.Field{
		zap.String("stage", stage),
		zap.Duration("elapsed", elapsed),
	}
}
