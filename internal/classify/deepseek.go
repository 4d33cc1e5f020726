// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package classify asks a chat model whether a news item is worth keeping
// and parses its free-text verdict.
package classify

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/pdiddy/ai-newsdesk/internal/httputil"
	"github.com/pdiddy/ai-newsdesk/internal/secrets"
	"github.com/pdiddy/ai-newsdesk/pkg/types"
)

// Model abstracts the chat completion API so tests can supply a mock. Each
// call is a single stateless round trip.
type Model interface {
	Invoke(ctx context.Context, messages []Message) (string, error)
}

// DeepSeekClient calls an OpenAI-compatible chat completions endpoint.
type DeepSeekClient struct {
	APIKey      string
	BaseURL     string
	Model       string
	Temperature float64
	UserAgent   string
	Client      *http.Client
}

// NewDeepSeek checks the API key and returns a client configured from cfg.
func NewDeepSeek(apiKey string, cfg types.ModelConfig, httpCfg types.HTTPConfig) (*DeepSeekClient, error) {
	if err := secrets.CheckKey(apiKey); err != nil {
		return nil, fmt.Errorf("deepseek api key: %w", err)
	}
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = types.DefaultModelBaseURL
	}
	model := cfg.Name
	if model == "" {
		model = types.DefaultModel
	}
	return &DeepSeekClient{
		APIKey:      apiKey,
		BaseURL:     strings.TrimRight(baseURL, "/"),
		Model:       model,
		Temperature: cfg.Temperature,
		UserAgent:   httpCfg.UserAgent,
		Client:      &http.Client{Timeout: httpCfg.Timeout},
	}, nil
}

// chatRequest is the request body for the chat completions API.
type chatRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	Temperature float64   `json:"temperature"`
	Stream      bool      `json:"stream"`
}

// chatResponse is the response body from the chat completions API.
type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
}

// Invoke sends messages and returns the first choice's content.
func (c *DeepSeekClient) Invoke(ctx context.Context, messages []Message) (string, error) {
	req := chatRequest{
		Model:       c.Model,
		Messages:    messages,
		Temperature: c.Temperature,
	}

	headers := http.Header{}
	headers.Set("Authorization", "Bearer "+c.APIKey)
	if c.UserAgent != "" {
		headers.Set("User-Agent", c.UserAgent)
	}

	var resp chatResponse
	if err := httputil.PostJSON(ctx, c.Client, c.BaseURL+"/chat/completions", headers, req, &resp); err != nil {
		return "", fmt.Errorf("calling chat API: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("chat API returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}
