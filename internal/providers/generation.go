package providers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	openai "github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

const (
	generationDefaultModel   = "gemini-1.5-flash"
	generationDefaultBaseURL = "https://generativelanguage.googleapis.com/v1beta/openai"

	generationMaxTokens   = 2000
	generationTemperature = 0.7
)

var (
	ErrNotConfigured = errors.New("generation api key not configured")
	ErrEmptyResponse = errors.New("generation api returned no choices")
)

// GenerationClient produces a completion for a rendered prompt.
type GenerationClient interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// GenerationConfig configures the completion client. BaseURL and HTTPClient
// exist so tests can point at a local server.
type GenerationConfig struct {
	APIKey     string
	BaseURL    string
	Model      string
	Timeout    time.Duration
	HTTPClient *http.Client
}

// OpenAICompatClient calls any OpenAI-compatible completion endpoint; the
// default configuration targets Gemini through Google's compatibility layer.
// Requests are made once, with retries disabled.
type OpenAICompatClient struct {
	apiKey string
	model  string
	client openai.Client
}

func NewGenerationClient(cfg GenerationConfig) *OpenAICompatClient {
	if cfg.Model == "" {
		cfg.Model = generationDefaultModel
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = generationDefaultBaseURL
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 60 * time.Second
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}

	client := openai.NewClient(
		option.WithAPIKey(cfg.APIKey),
		option.WithBaseURL(cfg.BaseURL),
		option.WithHTTPClient(httpClient),
		option.WithMaxRetries(0),
	)

	return &OpenAICompatClient{
		apiKey: cfg.APIKey,
		model:  cfg.Model,
		client: client,
	}
}

// Complete sends the prompt and returns the trimmed completion text.
func (c *OpenAICompatClient) Complete(ctx context.Context, prompt string) (string, error) {
	if c.apiKey == "" {
		return "", ErrNotConfigured
	}

	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(c.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
		MaxTokens:   openai.Int(generationMaxTokens),
		Temperature: openai.Float(generationTemperature),
	})
	if err != nil {
		return "", fmt.Errorf("completion request failed: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", ErrEmptyResponse
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

var _ GenerationClient = (*OpenAICompatClient)(nil)
