// Package llm holds the text-generation clients used to summarize reports.
//
// A Generator is built once at startup by NewGenerator and passed to the
// code that needs it; nothing in this package keeps a global client.
package llm

import (
	"context"
	"errors"
)

// ErrEmptyResponse is returned when the service answers with no text.
var ErrEmptyResponse = errors.New("model returned empty response")

// ErrMissingAPIKey is returned by constructors given an empty key.
var ErrMissingAPIKey = errors.New("missing API key")

// Generator sends one prompt and returns the model's text.
type Generator interface {
	// Generate performs a single request. It does not retry.
	Generate(ctx context.Context, prompt string) (string, error)

	// Name identifies the provider and model for logs, e.g. "gemini/gemini-1.5-flash".
	Name() string

	// Close releases the underlying client.
	Close() error
}

// Options are the per-request generation settings shared by all providers.
type Options struct {
	Model       string
	Temperature float32
	MaxTokens   int
}

// GeneratorFunc adapts a function to Generator. Tests use it as a stub.
type GeneratorFunc func(ctx context.Context, prompt string) (string, error)

// Generate calls f.
func (f GeneratorFunc) Generate(ctx context.Context, prompt string) (string, error) {
	return f(ctx, prompt)
}

// Name returns "func".
func (f GeneratorFunc) Name() string { return "func" }

// Close is a no-op.
func (f GeneratorFunc) Close() error { return nil }
