// internal/ai/provider.go
package ai

import (
	"context"
	"errors"
)

// ErrNoProvider is returned when every configured backend has been exhausted.
var ErrNoProvider = errors.New("no ai provider available")

// TextOptions tunes a single text-generation call. Call sites always set
// both fields; providers fall back to modest defaults if MaxTokens is zero.
type TextOptions struct {
	Temperature float64
	MaxTokens   int
}

// QA is a closed-form quiz question with its ground-truth answer.
type QA struct {
	Prompt string `json:"question"`
	Answer string `json:"answer"`
}

// RoundCommentInput carries the context for an open-ended round commentary.
type RoundCommentInput struct {
	Question string
	Player1  string
	Answer1  string
	Player2  string
	Answer2  string
	IsMatch  bool
}

// QuizCommentInput carries the context for a quiz round commentary.
type QuizCommentInput struct {
	Question       string
	CorrectAnswer  string
	Player1        string
	Answer1        string
	Player1Correct bool
	Player2        string
	Answer2        string
	Player2Correct bool
}

// Provider is a single text-generation backend. The higher-level game
// operations (question generation, verdict checks, commentary) are built on
// top of GenerateText by the Chain, so every backend only has to speak its
// own transport.
type Provider interface {
	// Name identifies the backend in logs.
	Name() string
	// Probe performs a lightweight reachability check. It is called once at
	// process start; a failing backend is skipped for the process lifetime.
	Probe(ctx context.Context) error
	// GenerateText sends a prompt and returns the raw model output.
	GenerateText(ctx context.Context, prompt string, opts TextOptions) (string, error)
}
