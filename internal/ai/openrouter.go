// internal/ai/openrouter.go
package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/guesslink/guesslink/internal/config"
)

// OpenRouter talks to an OpenRouter-compatible chat-completions API.
type OpenRouter struct {
	cfg  config.OpenRouterConfig
	http *http.Client
}

// NewOpenRouter builds the cloud backend from its config.
func NewOpenRouter(cfg config.OpenRouterConfig) *OpenRouter {
	return &OpenRouter{
		cfg:  cfg,
		http: &http.Client{Timeout: cfg.Timeout},
	}
}

func (o *OpenRouter) Name() string { return "openrouter" }

// Probe only checks configuration; the API has no cheap unauthenticated
// health endpoint, so presence of a key marks the backend available.
func (o *OpenRouter) Probe(ctx context.Context) error {
	if o.cfg.APIKey == "" {
		return fmt.Errorf("OPENROUTER_API_KEY not set")
	}
	return nil
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
	Stream      bool          `json:"stream"`
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

func (o *OpenRouter) GenerateText(ctx context.Context, prompt string, opts TextOptions) (string, error) {
	maxTokens := opts.MaxTokens
	if maxTokens <= 0 {
		maxTokens = 1024
	}
	body, err := json.Marshal(chatRequest{
		Model:       o.cfg.Model,
		Messages:    []chatMessage{{Role: "user", Content: prompt}},
		Temperature: opts.Temperature,
		MaxTokens:   maxTokens,
		Stream:      false,
	})
	if err != nil {
		return "", fmt.Errorf("marshal chat request: %w", err)
	}

	url := strings.TrimSuffix(o.cfg.BaseURL, "/") + "/chat/completions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+o.cfg.APIKey)
	req.Header.Set("HTTP-Referer", "https://guesslink.app")
	req.Header.Set("X-Title", "GuessLink")

	resp, err := o.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("openrouter request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("openrouter status %d: %s", resp.StatusCode, strings.TrimSpace(string(data)))
	}

	var parsed chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("decode openrouter response: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("openrouter returned no choices")
	}
	return parsed.Choices[0].Message.Content, nil
}
