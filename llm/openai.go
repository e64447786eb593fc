package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"
)

// OpenAIGenerator calls any OpenAI-compatible chat completion endpoint.
// With a base URL such as Gemini's OpenAI-compatible endpoint or a local
// server, the same binary can target other providers.
type OpenAIGenerator struct {
	client *openai.Client
	opts   Options
}

// NewOpenAIGenerator builds a client for baseURL, or the public OpenAI API
// when baseURL is empty.
func NewOpenAIGenerator(apiKey, baseURL string, opts Options) (*OpenAIGenerator, error) {
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	clientConfig := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		clientConfig.BaseURL = baseURL
	}

	return &OpenAIGenerator{
		client: openai.NewClientWithConfig(clientConfig),
		opts:   opts,
	}, nil
}

// Generate sends prompt as a single user message.
func (g *OpenAIGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: g.opts.Model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: prompt,
			},
		},
		MaxTokens:   g.opts.MaxTokens,
		Temperature: g.opts.Temperature,
	})
	if err != nil {
		return "", fmt.Errorf("chat completion failed: %w", err)
	}

	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		return "", ErrEmptyResponse
	}
	return resp.Choices[0].Message.Content, nil
}

// Name returns "openai/<model>".
func (g *OpenAIGenerator) Name() string {
	return "openai/" + g.opts.Model
}

// Close is a no-op; the HTTP client needs no teardown.
func (g *OpenAIGenerator) Close() error {
	return nil
}
