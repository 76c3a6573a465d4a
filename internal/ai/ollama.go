// internal/ai/ollama.go
package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/guesslink/guesslink/internal/config"
)

// Ollama talks to a local inference daemon.
type Ollama struct {
	cfg  config.OllamaConfig
	http *http.Client
}

// NewOllama builds the local backend from its config.
func NewOllama(cfg config.OllamaConfig) *Ollama {
	return &Ollama{
		cfg:  cfg,
		http: &http.Client{Timeout: cfg.Timeout},
	}
}

func (o *Ollama) Name() string { return "ollama" }

// Probe lists the daemon's models to verify it is reachable.
func (o *Ollama) Probe(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, strings.TrimSuffix(o.cfg.URL, "/")+"/api/tags", nil)
	if err != nil {
		return err
	}
	resp, err := o.http.Do(req)
	if err != nil {
		return fmt.Errorf("ollama not reachable: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("ollama tags status %d", resp.StatusCode)
	}
	var tags struct {
		Models []struct {
			Name string `json:"name"`
		} `json:"models"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&tags); err != nil {
		return fmt.Errorf("decode ollama tags: %w", err)
	}
	return nil
}

func (o *Ollama) GenerateText(ctx context.Context, prompt string, opts TextOptions) (string, error) {
	out, err := ollamaGenerate(ctx, o.http, o.cfg.URL, "", o.cfg.Model, prompt, opts)
	if err != nil {
		return "", fmt.Errorf("ollama: %w", err)
	}
	return out, nil
}
