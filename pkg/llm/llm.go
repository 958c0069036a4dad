// Package llm wraps an OpenAI-compatible chat completions endpoint.
//
// The default base URL points at Anthropic's OpenAI SDK compatibility layer,
// so the same client talks to Claude models with an Anthropic API key.
package llm

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"
)

var (
	ErrUnauthenticated = errors.New("llm: api key is not configured")
	ErrRequestFailed   = errors.New("llm: completion request failed")
	ErrEmptyResponse   = errors.New("llm: completion returned no content")
)

// Config holds LLM client settings.
type Config struct {
	APIKey      string        `env:"ANTHROPIC_API_KEY"`
	BaseURL     string        `env:"LLM_BASE_URL" envDefault:"https://api.anthropic.com/v1"`
	Model       string        `env:"LLM_MODEL" envDefault:"claude-sonnet-4-20250514"`
	MaxTokens   int           `env:"LLM_MAX_TOKENS" envDefault:"2500"`
	Temperature float32       `env:"LLM_TEMPERATURE" envDefault:"0.7"`
	Timeout     time.Duration `env:"LLM_TIMEOUT" envDefault:"60s"`
}

// Client sends single-turn prompts and returns the first choice's text.
type Client struct {
	api *openai.Client
	cfg Config
}

// New creates a Client. It does not contact the endpoint.
func New(cfg Config) (*Client, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, ErrUnauthenticated
	}

	apiCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		apiCfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	}
	apiCfg.HTTPClient = &http.Client{Timeout: cfg.Timeout}

	return &Client{api: openai.NewClientWithConfig(apiCfg), cfg: cfg}, nil
}

// Complete sends prompt as a single user message.
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.cfg.Model,
		MaxTokens:   c.cfg.MaxTokens,
		Temperature: c.cfg.Temperature,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return "", errors.Join(ErrRequestFailed, err)
	}
	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		return "", ErrEmptyResponse
	}
	return resp.Choices[0].Message.Content, nil
}
