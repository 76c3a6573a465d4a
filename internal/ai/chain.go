// internal/ai/chain.go
package ai

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
)

// attemptsPerProvider bounds how often a single backend is retried for one
// call before the chain falls over to the next backend. No backoff.
const attemptsPerProvider = 2

// entry tracks one backend's availability, decided once at startup. A backend
// marked available is retried on every call even if it keeps failing; there
// is deliberately no circuit breaker.
type entry struct {
	provider  Provider
	available bool
}

// Chain is an ordered fallback list of text-generation backends exposing the
// game-level capabilities (question generation, verdict checks, commentary).
type Chain struct {
	log     *logrus.Logger
	entries []*entry
}

// NewChain builds a chain over the given providers, in priority order.
func NewChain(log *logrus.Logger, providers ...Provider) *Chain {
	c := &Chain{log: log}
	for _, p := range providers {
		c.entries = append(c.entries, &entry{provider: p})
	}
	return c
}

// Init probes every backend once. Unreachable backends are logged and
// skipped for the process lifetime.
func (c *Chain) Init(ctx context.Context) {
	for _, e := range c.entries {
		if err := e.provider.Probe(ctx); err != nil {
			c.log.Warnf("ai provider %s unavailable: %v", e.provider.Name(), err)
			continue
		}
		e.available = true
		c.log.Infof("ai provider %s available", e.provider.Name())
	}
	if !c.Available() {
		c.log.Warn("no ai provider available; generative modes disabled")
	}
}

// Available reports whether at least one backend passed its startup probe.
func (c *Chain) Available() bool {
	for _, e := range c.entries {
		if e.available {
			return true
		}
	}
	return false
}

// ActiveProvider names the highest-priority available backend, or "".
func (c *Chain) ActiveProvider() string {
	for _, e := range c.entries {
		if e.available {
			return e.provider.Name()
		}
	}
	return ""
}

// run sends prompt down the chain. Each available backend gets up to
// attemptsPerProvider tries; a response accept rejects (malformed output)
// counts as a backend failure. The first accepted response wins and no
// further backend is consulted.
func (c *Chain) run(ctx context.Context, prompt string, opts TextOptions, accept func(string) error) error {
	var lastErr error
	for _, e := range c.entries {
		if !e.available {
			continue
		}
		for attempt := 1; attempt <= attemptsPerProvider; attempt++ {
			out, err := e.provider.GenerateText(ctx, prompt, opts)
			if err == nil {
				err = accept(out)
				if err == nil {
					return nil
				}
			}
			lastErr = err
			c.log.Warnf("ai provider %s attempt %d/%d failed: %v",
				e.provider.Name(), attempt, attemptsPerProvider, err)
			if ctx.Err() != nil {
				return ctx.Err()
			}
		}
	}
	if lastErr == nil {
		return ErrNoProvider
	}
	return fmt.Errorf("all ai providers exhausted: %w", lastErr)
}

// GenerateText runs a raw prompt through the chain.
func (c *Chain) GenerateText(ctx context.Context, prompt string, opts TextOptions) (string, error) {
	var out string
	err := c.run(ctx, prompt, opts, func(resp string) error {
		out = resp
		return nil
	})
	return out, err
}

// GenerateQuestions produces count open-ended prompts for the given theme.
func (c *Chain) GenerateQuestions(ctx context.Context, theme string, count int) ([]string, error) {
	prompt, opts := questionsPrompt(theme, count)
	var out []string
	err := c.run(ctx, prompt, opts, func(resp string) error {
		qs, err := ExtractStringArray(resp)
		if err != nil {
			return err
		}
		if len(qs) == 0 {
			return errors.New("empty question list")
		}
		out = qs
		return nil
	})
	return out, err
}

// GenerateQuizQuestions produces count closed-form questions with answers.
func (c *Chain) GenerateQuizQuestions(ctx context.Context, theme string, count int, difficulty string) ([]QA, error) {
	prompt, opts := quizQuestionsPrompt(theme, count, difficulty)
	var out []QA
	err := c.run(ctx, prompt, opts, func(resp string) error {
		qas, err := ExtractQAList(resp)
		if err != nil {
			return err
		}
		if len(qas) == 0 {
			return errors.New("empty quiz list")
		}
		out = qas
		return nil
	})
	return out, err
}

// CheckAnswerMatch asks the chain whether two answers mean the same thing.
func (c *Chain) CheckAnswerMatch(ctx context.Context, answer1, answer2, question string) (bool, error) {
	prompt, opts := matchPrompt(answer1, answer2, question)
	var match bool
	err := c.run(ctx, prompt, opts, func(resp string) error {
		m, err := ExtractMatchVerdict(resp)
		if err != nil {
			return err
		}
		match = m
		return nil
	})
	return match, err
}

// CheckQuizAnswer asks the chain whether a player's answer matches the truth.
func (c *Chain) CheckQuizAnswer(ctx context.Context, playerAnswer, correctAnswer, question string) (bool, error) {
	prompt, opts := quizCheckPrompt(playerAnswer, correctAnswer, question)
	var correct bool
	err := c.run(ctx, prompt, opts, func(resp string) error {
		v, err := ExtractCorrectVerdict(resp)
		if err != nil {
			return err
		}
		correct = v
		return nil
	})
	return correct, err
}

// GenerateRoundComment produces a one-line commentary for an open-ended round.
func (c *Chain) GenerateRoundComment(ctx context.Context, in RoundCommentInput) (string, error) {
	prompt, opts := roundCommentPrompt(in)
	var comment string
	err := c.run(ctx, prompt, opts, func(resp string) error {
		cleaned := CleanComment(resp)
		if cleaned == "" {
			return errors.New("empty comment")
		}
		comment = cleaned
		return nil
	})
	return comment, err
}

// GenerateQuizComment produces a one-line commentary for a quiz round.
func (c *Chain) GenerateQuizComment(ctx context.Context, in QuizCommentInput) (string, error) {
	prompt, opts := quizCommentPrompt(in)
	var comment string
	err := c.run(ctx, prompt, opts, func(resp string) error {
		cleaned := CleanComment(resp)
		if cleaned == "" {
			return errors.New("empty comment")
		}
		comment = cleaned
		return nil
	})
	return comment, err
}
