package openai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/sashabaranov/go-openai"

	"github.com/bryanwahyu/neurolink/internal/domain/ai"
)

const (
	DefaultPrimaryModel   = "gpt-4o-mini"
	DefaultSecondaryModel = "sonar"
	SecondaryBaseURL      = "https://api.perplexity.ai"
)

// Settings configures the transport for the active provider.
// Empty Model/BaseURL fall back to the provider defaults.
type Settings struct {
	APIKey    string
	Model     string
	BaseURL   string
	Timeout   time.Duration
	MaxTokens int
}

// Client talks to OpenAI or Perplexity; both speak the chat-completions protocol.
type Client struct {
	api       *openai.Client
	provider  ai.Provider
	model     string
	maxTokens int
}

func NewClient(provider ai.Provider, s Settings) (*Client, error) {
	if provider == ai.ProviderNone {
		return nil, ai.ErrNoProvider
	}
	model, baseURL := s.Model, s.BaseURL
	switch provider {
	case ai.ProviderSecondary:
		if model == "" {
			model = DefaultSecondaryModel
		}
		if baseURL == "" {
			baseURL = SecondaryBaseURL
		}
	default:
		if model == "" {
			model = DefaultPrimaryModel
		}
	}

	cfg := openai.DefaultConfig(s.APIKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	if s.Timeout > 0 {
		cfg.HTTPClient = &http.Client{Timeout: s.Timeout}
	}
	maxTokens := s.MaxTokens
	if maxTokens <= 0 {
		maxTokens = defaultMaxTokens
	}
	return &Client{
		api:       openai.NewClientWithConfig(cfg),
		provider:  provider,
		model:     model,
		maxTokens: maxTokens,
	}, nil
}

func (c *Client) Provider() ai.Provider { return c.provider }

func (c *Client) Model() string { return c.model }

// Complete sends a single chat completion and returns choices[0].message.content.
func (c *Client) Complete(ctx context.Context, req ai.Request) (string, error) {
	resp, err := c.api.CreateChatCompletion(ctx, c.chatRequest(req))
	if err != nil {
		return "", classify(err)
	}
	if len(resp.Choices) == 0 {
		return "", ai.ErrEmptyResponse
	}
	return resp.Choices[0].Message.Content, nil
}

// classify maps go-openai errors onto the domain taxonomy.
func classify(err error) error {
	status := 0
	var apiErr *openai.APIError
	var reqErr *openai.RequestError
	switch {
	case errors.As(err, &apiErr):
		status = apiErr.HTTPStatusCode
	case errors.As(err, &reqErr):
		status = reqErr.HTTPStatusCode
	}
	if status == http.StatusTooManyRequests {
		return fmt.Errorf("%w: %w: %v", ai.ErrTransport, ai.ErrQuotaExceeded, err)
	}
	return fmt.Errorf("%w: failed to create chat completion: %v", ai.ErrTransport, err)
}
