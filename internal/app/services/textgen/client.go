// Package textgen calls an upstream text-generation API to power the
// career assistant.
package textgen

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// ErrNotConfigured is returned when no endpoint has been configured.
var ErrNotConfigured = errors.New("text generation endpoint is not configured")

// Config configures the generation endpoint and HTTP behavior.
type Config struct {
	Endpoint   string
	APIKey     string
	Model      string
	HTTPClient *http.Client
}

type Client struct {
	cfg Config
}

// New builds a generation client. A nil HTTPClient gets a 60 second timeout
// since generation calls run long.
func New(cfg Config) *Client {
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = &http.Client{Timeout: 60 * time.Second}
	}
	if cfg.Model == "" {
		cfg.Model = "gpt-4o-mini"
	}
	return &Client{cfg: cfg}
}

// Configured reports whether an endpoint is set.
func (c *Client) Configured() bool {
	return strings.TrimSpace(c.cfg.Endpoint) != ""
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

const systemPrompt = "You are a career advisor for university students. " +
	"Give practical guidance about internships, interviews, resumes, and career paths. " +
	"Keep answers focused and concise."

// Complete sends the user's prompt and returns the generated reply.
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	if !c.Configured() {
		return "", ErrNotConfigured
	}

	payload, err := json.Marshal(chatRequest{
		Model: c.cfg.Model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: prompt},
		},
	})
	if err != nil {
		return "", fmt.Errorf("encode generation request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.Endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("build generation request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.cfg.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	}

	resp, err := c.cfg.HTTPClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("call generation endpoint: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("generation endpoint returned status %d", resp.StatusCode)
	}

	var body chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("decode generation response: %w", err)
	}
	if len(body.Choices) == 0 {
		return "", errors.New("generation response contained no choices")
	}
	return body.Choices[0].Message.Content, nil
}
