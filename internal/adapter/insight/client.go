// internal/adapter/insight/client.go

// Package insight generates a narrative summary of computed metrics via
// an OpenAI-compatible chat completions endpoint. It is an optional
// enrichment: callers must treat failures as warnings, not errors.
package insight

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"sovradar/internal/domain/sov"
)

// Client calls an OpenAI-compatible chat completions API.
type Client struct {
	Token      string
	Model      string
	BaseURL    string
	FocusBrand string
	HTTPClient *http.Client
}

// Config configures the insight client.
type Config struct {
	Token      string
	Model      string
	BaseURL    string
	FocusBrand string
	Timeout    time.Duration
}

// NewClient creates a new insight client.
func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 60 * time.Second
	}

	return &Client{
		Token:      cfg.Token,
		Model:      cfg.Model,
		BaseURL:    cfg.BaseURL,
		FocusBrand: cfg.FocusBrand,
		HTTPClient: &http.Client{Timeout: timeout},
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// Generate serializes the metrics as structured JSON and asks the model
// for an analyst narrative.
func (c *Client) Generate(ctx context.Context, overall sov.MetricsResult, byKeyword map[string]sov.MetricsResult) (string, error) {
	if c.Token == "" {
		return "", fmt.Errorf("insight API token not configured")
	}

	payload, err := json.MarshalIndent(map[string]interface{}{
		"overall":    overall,
		"by_keyword": byKeyword,
	}, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal metrics payload: %w", err)
	}

	reqBody, err := json.Marshal(chatRequest{
		Model: c.Model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt(c.FocusBrand)},
			{Role: "user", Content: userPrompt(string(payload))},
		},
	})
	if err != nil {
		return "", fmt.Errorf("marshal chat request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/chat/completions", bytes.NewReader(reqBody))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+c.Token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("insight API request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read insight API response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("insight API returned status code %d", resp.StatusCode)
	}

	var chatResp chatResponse
	if err := json.Unmarshal(body, &chatResp); err != nil {
		return "", fmt.Errorf("parse insight API response: %w", err)
	}
	if chatResp.Error != nil {
		return "", fmt.Errorf("insight API error: %s", chatResp.Error.Message)
	}
	if len(chatResp.Choices) == 0 {
		return "", fmt.Errorf("insight API returned no choices")
	}

	return chatResp.Choices[0].Message.Content, nil
}
