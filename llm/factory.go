package llm

import (
	"context"
	"errors"

	"github.com/Kothajagadish22/Gemini-Finance-AI/core"
)

// NewGenerator builds the Generator selected by cfg.Provider.
//
// A missing key is reported as a *core.ConfigError so the caller can print
// the fix. Any failure here is fatal for the run.
func NewGenerator(ctx context.Context, cfg *core.Config) (Generator, error) {
	opts := Options{
		Model:       cfg.Model(),
		Temperature: float32(cfg.Temperature),
		MaxTokens:   cfg.MaxTokens,
	}

	var (
		gen Generator
		err error
	)
	switch cfg.Provider {
	case core.ProviderGemini:
		gen, err = NewGeminiGenerator(ctx, cfg.GeminiAPIKey, opts)
	case core.ProviderOpenAI:
		gen, err = NewOpenAIGenerator(cfg.OpenAIAPIKey, cfg.OpenAIAPIBaseURL, opts)
	default:
		return nil, core.ErrUnknownProvider(cfg.Provider)
	}

	if errors.Is(err, ErrMissingAPIKey) {
		return nil, core.ErrMissingAuth(cfg.Provider)
	}
	if err != nil {
		return nil, err
	}
	return gen, nil
}

// PolicyFromConfig maps the retry settings onto a RetryPolicy.
func PolicyFromConfig(cfg *core.Config) RetryPolicy {
	return RetryPolicy{
		MaxAttempts: cfg.MaxRetries,
		Delay:       cfg.RetryDelay,
		Multiplier:  cfg.RetryMultiplier,
	}
}
