// Package ai wraps a chat-completions HTTP endpoint and builds the
// car-advisor prompts on top of it.
package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Chatter is the capability the advisor needs: one prompt exchange in,
// raw model text out.
type Chatter interface {
	Chat(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// Client talks to an OpenAI-compatible chat-completions endpoint.
type Client struct {
	endpoint string
	key      string
	model    string
	http     *http.Client
}

func NewClient(endpoint, key, model string) *Client {
	return &Client{
		endpoint: endpoint,
		key:      key,
		model:    model,
		http:     &http.Client{Timeout: 30 * time.Second},
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float64       `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// Chat sends one system+user exchange and returns the model's reply text.
// Temperature is pinned to zero to prefer factual answers.
func (c *Client) Chat(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	if c.key == "" {
		return "", fmt.Errorf("chat client is not configured (OPENAI_API_KEY)")
	}
	if strings.TrimSpace(systemPrompt) == "" || strings.TrimSpace(userPrompt) == "" {
		return "", fmt.Errorf("both prompts are required")
	}

	payload, err := json.Marshal(chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userPrompt},
		},
		MaxTokens:   600,
		Temperature: 0,
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+c.key)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("chat request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("chat endpoint returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var parsed chatResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("parsing chat response: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("chat response contained no choices")
	}
	return parsed.Choices[0].Message.Content, nil
}
