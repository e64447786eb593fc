package pdfprocessor

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Kothajagadish22/Gemini-Finance-AI/llm"
	"github.com/Kothajagadish22/Gemini-Finance-AI/logging"
)

// FallbackSummary replaces the summary when every generation attempt fails.
// Downstream steps treat it as an ordinary summary with no figures in it.
const FallbackSummary = "Summary could not be generated."

// DefaultMaxPromptChars bounds how much report text goes into the prompt.
const DefaultMaxPromptChars = 8000

// DefaultPromptTemplate asks for the four figures and a short narrative.
// The single %s receives the (truncated) report text.
const DefaultPromptTemplate = `Analyze the following financial report and provide a concise summary with these items:

1. Revenue Growth (%%)
2. Net Profit / Earnings (in millions)
3. Total Debt (in millions)
4. Cash Flow (in millions)
5. Key insights about the company's performance

State each figure on its own line after its label, for example "Net Profit: 1,250".

Financial report:
%s`

// SummarizerConfig controls prompt construction and the retry loop.
type SummarizerConfig struct {
	// MaxPromptChars is the number of characters of report text kept.
	MaxPromptChars int

	// PromptTemplate must contain exactly one %s verb.
	PromptTemplate string

	// AttemptTimeout bounds each request. 0 leaves it to the client.
	AttemptTimeout time.Duration

	// Retry is applied around each request.
	Retry llm.RetryPolicy
}

// DefaultSummarizerConfig returns 8000 characters, the default template and
// three attempts two seconds apart.
func DefaultSummarizerConfig() SummarizerConfig {
	return SummarizerConfig{
		MaxPromptChars: DefaultMaxPromptChars,
		PromptTemplate: DefaultPromptTemplate,
		Retry:          llm.DefaultRetryPolicy(),
	}
}

// SummaryResult describes one Summarize call.
type SummaryResult struct {
	// Content is the generated summary, or FallbackSummary.
	Content string

	// Degraded is true when Content is FallbackSummary.
	Degraded bool

	// Attempts is the number of requests made.
	Attempts int

	// PromptChars is the length of the prompt in characters.
	PromptChars int

	// PromptTokens is an estimate.
	PromptTokens int

	// Truncated is true when report text was cut to fit MaxPromptChars.
	Truncated bool

	// Duration covers all attempts and waits.
	Duration time.Duration

	// Err is the last failure when Degraded.
	Err error
}

// Summarizer turns report text into a summary using a Generator.
type Summarizer struct {
	config    SummarizerConfig
	generator llm.Generator
	log       *logging.Logger
}

// NewSummarizer creates a Summarizer. The generator is owned by the caller.
//
// Example:
//
//	gen, _ := llm.NewGenerator(ctx, cfg)
//	defer gen.Close()
//	summarizer := NewSummarizer(DefaultSummarizerConfig(), gen, logger)
//	result := summarizer.Summarize(ctx, text)
func NewSummarizer(config SummarizerConfig, generator llm.Generator, log *logging.Logger) *Summarizer {
	if config.MaxPromptChars <= 0 {
		config.MaxPromptChars = DefaultMaxPromptChars
	}
	if config.PromptTemplate == "" {
		config.PromptTemplate = DefaultPromptTemplate
	}
	if log == nil {
		log = logging.NewNopLogger()
	}
	return &Summarizer{config: config, generator: generator, log: log}
}

// BuildPrompt embeds the first MaxPromptChars characters of text in the
// template. The cut is not aligned to words or sentences.
func (s *Summarizer) BuildPrompt(text string) (prompt string, truncated bool) {
	excerpt, truncated := TruncateRunes(text, s.config.MaxPromptChars)
	return fmt.Sprintf(s.config.PromptTemplate, excerpt), truncated
}

// Summarize requests a summary, retrying per the configured policy. It never
// fails: when every attempt errors, or ctx ends, the result carries
// FallbackSummary with Degraded set.
func (s *Summarizer) Summarize(ctx context.Context, text string) *SummaryResult {
	start := time.Now()
	prompt, truncated := s.BuildPrompt(text)

	result := &SummaryResult{
		PromptChars:  len([]rune(prompt)),
		PromptTokens: EstimateTokenCount(prompt),
		Truncated:    truncated,
	}

	var content string
	attempts, err := s.config.Retry.Do(ctx, s.log, func(ctx context.Context, attempt int) error {
		s.log.Debug("requesting summary",
			zap.String("generator", s.generator.Name()),
			zap.Int("attempt", attempt))

		callCtx := ctx
		if s.config.AttemptTimeout > 0 {
			var cancel context.CancelFunc
			callCtx, cancel = context.WithTimeout(ctx, s.config.AttemptTimeout)
			defer cancel()
		}

		out, err := s.generator.Generate(callCtx, prompt)
		if err != nil {
			return err
		}
		content = out
		return nil
	})

	result.Attempts = attempts
	result.Duration = time.Since(start)

	if err != nil {
		result.Content = FallbackSummary
		result.Degraded = true
		result.Err = err
		s.log.Error("summary generation failed, using fallback",
			zap.String("generator", s.generator.Name()),
			zap.Int("attempts", attempts),
			zap.Error(err))
	} else {
		result.Content = content
	}

	s.log.Info("summary step finished", logging.GenerationFields(logging.GenerationMetrics{
		Provider:    s.generator.Name(),
		Attempts:    result.Attempts,
		PromptChars: result.PromptChars,
		OutputChars: len(result.Content),
		Duration:    result.Duration,
		Fallback:    result.Degraded,
	}))
	return result
}
