// Package groq is a minimal client for the Groq OpenAI-compatible chat
// completion endpoint. The portal does not interpret completions; it
// forwards the conversation as-is and relays the upstream response (or
// upstream error status) back to the browser. Retry and backoff are
// intentionally absent: a failed completion is surfaced immediately.
package groq

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// DefaultBaseURL is the hosted Groq API endpoint.
const DefaultBaseURL = "https://api.groq.com/openai/v1"

// DefaultModel is the completion model used when none is configured.
const DefaultModel = "llama3-8b-8192"

// ErrMissingAPIKey is returned when the client has no API key configured.
var ErrMissingAPIKey = errors.New("groq: api key not configured")

// Message is a single chat turn in the OpenAI wire format.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// completionRequest is the request body for /chat/completions.
type completionRequest struct {
	Messages []Message `json:"messages"`
	Model    string    `json:"model"`
}

// Choice is one generated completion alternative.
type Choice struct {
	Index        int     `json:"index"`
	Message      Message `json:"message"`
	FinishReason string  `json:"finish_reason"`
}

// Usage reports token accounting for a completion.
type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// CompletionResponse is the upstream response body, passed through to the
// browser unchanged in shape.
type CompletionResponse struct {
	ID      string   `json:"id"`
	Object  string   `json:"object"`
	Created int64    `json:"created"`
	Model   string   `json:"model"`
	Choices []Choice `json:"choices"`
	Usage   Usage    `json:"usage"`
}

// UpstreamError carries a non-2xx upstream status plus the raw error body
// so the HTTP layer can relay both.
type UpstreamError struct {
	Status int
	Body   json.RawMessage
}

// Error implements the error interface.
func (e *UpstreamError) Error() string {
	return fmt.Sprintf("groq: upstream status %d", e.Status)
}

// Client calls the Groq chat completion endpoint.
type Client struct {
	// BaseURL overrides DefaultBaseURL (tests point it at a local server).
	BaseURL string
	// APIKey is the bearer token; requests fail fast without it.
	APIKey string
	// Model is the completion model; defaults to DefaultModel.
	Model string
	// HTTPClient is the underlying transport; defaults to a 60s-timeout client.
	HTTPClient *http.Client
}

// New constructs a Client with defaults applied.
func New(apiKey, model, baseURL string) *Client {
	if model == "" {
		model = DefaultModel
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		BaseURL:    baseURL,
		APIKey:     apiKey,
		Model:      model,
		HTTPClient: &http.Client{Timeout: 60 * time.Second},
	}
}

// CreateCompletion forwards the conversation and returns the upstream
// response. Non-2xx upstream statuses are returned as *UpstreamError.
func (c *Client) CreateCompletion(ctx context.Context, messages []Message) (*CompletionResponse, error) {
	if c.APIKey == "" {
		return nil, ErrMissingAPIKey
	}

	body, err := json.Marshal(completionRequest{Messages: messages, Model: c.Model})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.BaseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.APIKey)

	httpClient := c.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 60 * time.Second}
	}
	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &UpstreamError{Status: resp.StatusCode, Body: raw}
	}

	var out CompletionResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
