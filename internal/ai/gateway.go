// internal/ai/gateway.go
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

// Gateway talks to a remote self-hosted inference gateway exposing an
// Ollama-style generate endpoint behind optional bearer auth.
type Gateway struct {
	cfg  config.GatewayConfig
	http *http.Client
}

// NewGateway builds the remote gateway backend from its config.
func NewGateway(cfg config.GatewayConfig) *Gateway {
	return &Gateway{
		cfg:  cfg,
		http: &http.Client{Timeout: cfg.Timeout},
	}
}

func (g *Gateway) Name() string { return "gateway" }

// Probe hits the gateway's public health route.
func (g *Gateway) Probe(ctx context.Context) error {
	if g.cfg.URL == "" {
		return fmt.Errorf("LLM_GATEWAY_URL not set")
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, strings.TrimSuffix(g.cfg.URL, "/")+"/health", nil)
	if err != nil {
		return err
	}
	resp, err := g.http.Do(req)
	if err != nil {
		return fmt.Errorf("gateway health check: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("gateway health check status %d", resp.StatusCode)
	}
	return nil
}

func (g *Gateway) GenerateText(ctx context.Context, prompt string, opts TextOptions) (string, error) {
	out, err := ollamaGenerate(ctx, g.http, g.cfg.URL, g.cfg.Token, g.cfg.Model, prompt, opts)
	if err != nil {
		return "", fmt.Errorf("gateway: %w", err)
	}
	return out, nil
}

// generateRequest is the Ollama-style body shared by the gateway and the
// local daemon.
type generateRequest struct {
	Model   string          `json:"model"`
	Prompt  string          `json:"prompt"`
	Stream  bool            `json:"stream"`
	Options generateOptions `json:"options"`
}

type generateOptions struct {
	Temperature float64 `json:"temperature"`
	NumPredict  int     `json:"num_predict"`
}

type generateResponse struct {
	Response string `json:"response"`
}

func ollamaGenerate(ctx context.Context, client *http.Client, baseURL, token, model, prompt string, opts TextOptions) (string, error) {
	maxTokens := opts.MaxTokens
	if maxTokens <= 0 {
		maxTokens = 256
	}
	body, err := json.Marshal(generateRequest{
		Model:  model,
		Prompt: prompt,
		Stream: false,
		Options: generateOptions{
			Temperature: opts.Temperature,
			NumPredict:  maxTokens,
		},
	})
	if err != nil {
		return "", fmt.Errorf("marshal generate request: %w", err)
	}

	url := strings.TrimSuffix(baseURL, "/") + "/api/generate"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("generate request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("generate status %d: %s", resp.StatusCode, strings.TrimSpace(string(data)))
	}

	var parsed generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("decode generate response: %w", err)
	}
	return parsed.Response, nil
}
