package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// GeminiGenerator calls the Gemini API over its REST transport.
type GeminiGenerator struct {
	client *genai.Client
	model  *genai.GenerativeModel
	name   string
}

// NewGeminiGenerator creates the client and model handle. Extra client
// options are appended after the API key option.
//
// Example:
//
//	gen, err := llm.NewGeminiGenerator(ctx, apiKey, llm.Options{Model: "gemini-1.5-flash"})
//	if err != nil {
//	    return err
//	}
//	defer gen.Close()
func NewGeminiGenerator(ctx context.Context, apiKey string, opts Options, extra ...option.ClientOption) (*GeminiGenerator, error) {
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	clientOpts := append([]option.ClientOption{option.WithAPIKey(apiKey)}, extra...)
	client, err := genai.NewClient(ctx, clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	model := client.GenerativeModel(opts.Model)
	model.SetTemperature(opts.Temperature)
	if opts.MaxTokens > 0 {
		model.SetMaxOutputTokens(int32(opts.MaxTokens))
	}

	return &GeminiGenerator{
		client: client,
		model:  model,
		name:   "gemini/" + opts.Model,
	}, nil
}

// Generate sends prompt as a single text part.
func (g *GeminiGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := g.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("gemini request failed: %w", err)
	}

	text := candidateText(resp)
	if strings.TrimSpace(text) == "" {
		return "", ErrEmptyResponse
	}
	return text, nil
}

// Name returns "gemini/<model>".
func (g *GeminiGenerator) Name() string {
	return g.name
}

// Close closes the client.
func (g *GeminiGenerator) Close() error {
	return g.client.Close()
}

// candidateText joins the text parts of the first candidate.
func candidateText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			sb.WriteString(string(txt))
		}
	}
	return sb.String()
}
