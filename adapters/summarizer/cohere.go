// Package summarizer turns a list of insight messages into a short natural
// language summary using the Cohere chat API.
package summarizer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	apperrors "autodash/internal/errors"
)

const defaultTimeout = 30 * time.Second

// Config holds the Cohere client configuration
type Config struct {
	APIKey    string
	Model     string
	BaseURL   string
	MaxTokens int
	Timeout   time.Duration
}

// CohereClient implements the Summarizer port against the Cohere chat API
type CohereClient struct {
	apiKey    string
	model     string
	baseURL   string
	maxTokens int
	client    *http.Client
}

// NewCohereClient creates a summarizer client based on config
func NewCohereClient(config Config) (*CohereClient, error) {
	if config.APIKey == "" {
		return nil, fmt.Errorf("missing Cohere API key")
	}

	baseURL := strings.TrimSpace(config.BaseURL)
	if baseURL == "" {
		baseURL = "https://api.cohere.com/v1"
	}
	model := config.Model
	if model == "" {
		model = "command-r"
	}
	maxTokens := config.MaxTokens
	if maxTokens <= 0 {
		maxTokens = 120
	}
	timeout := config.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &CohereClient{
		apiKey:    config.APIKey,
		model:     model,
		baseURL:   baseURL,
		maxTokens: maxTokens,
		client:    &http.Client{Timeout: timeout},
	}, nil
}

// Summarize condenses the insight messages into a short paragraph
func (c *CohereClient) Summarize(ctx context.Context, messages []string) (*string, error) {
	if len(messages) == 0 {
		return nil, nil
	}

	prompt := "Summarize the following dataset findings in two or three plain sentences for a business reader:\n- " +
		strings.Join(messages, "\n- ")

	type reqBody struct {
		Model       string  `json:"model"`
		Message     string  `json:"message"`
		Temperature float64 `json:"temperature"`
		MaxTokens   int     `json:"max_tokens,omitempty"`
	}
	body := reqBody{
		Model:       c.model,
		Message:     prompt,
		Temperature: 0.3,
		MaxTokens:   c.maxTokens,
	}

	raw, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	url := strings.TrimRight(c.baseURL, "/") + "/chat"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, apperrors.ExternalServiceError("cohere", err)
	}
	defer resp.Body.Close()

	respRaw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, apperrors.ExternalServiceError("cohere", fmt.Errorf("http %d: %s", resp.StatusCode, string(respRaw)))
	}

	var decoded struct {
		Text string `json:"text"`
	}
	if err := json.Unmarshal(respRaw, &decoded); err != nil {
		return nil, fmt.Errorf("unmarshal response: %w", err)
	}

	text := strings.TrimSpace(decoded.Text)
	if text == "" {
		return nil, apperrors.ExternalServiceError("cohere", fmt.Errorf("response missing text"))
	}
	return &text, nil
}
