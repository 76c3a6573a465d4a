// internal/evaluator/evaluator.go
package evaluator

import (
	"context"
	"strings"

	"github.com/sirupsen/logrus"
)

// Matcher adjudicates whether two free-text answers mean the same thing.
// *ai.Chain satisfies this.
type Matcher interface {
	CheckAnswerMatch(ctx context.Context, answer1, answer2, question string) (bool, error)
}

// Grader adjudicates a single answer against a ground truth. *ai.Chain
// satisfies this.
type Grader interface {
	CheckQuizAnswer(ctx context.Context, playerAnswer, correctAnswer, question string) (bool, error)
}

// Normalize lowercases and trims an answer for literal comparison.
func Normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// LooseMatch is the classic strategy: normalized equality, or either answer
// contained in the other.
func LooseMatch(answer1, answer2 string) bool {
	a := Normalize(answer1)
	b := Normalize(answer2)
	if a == "" || b == "" {
		return a == b
	}
	return a == b || strings.Contains(a, b) || strings.Contains(b, a)
}

// SemanticMatch delegates to the provider-backed matcher and falls back to
// LooseMatch for this single evaluation if the provider fails. The failure
// is swallowed; players never see it.
func SemanticMatch(ctx context.Context, m Matcher, log *logrus.Logger, answer1, answer2, question string) bool {
	match, err := m.CheckAnswerMatch(ctx, answer1, answer2, question)
	if err != nil {
		log.Warnf("semantic match failed, using loose match: %v", err)
		return LooseMatch(answer1, answer2)
	}
	return match
}

// GradeAgainstTruth delegates to the provider-backed grader and falls back
// to normalized equality against the ground truth if the provider fails.
// Each player's answer is graded independently, so two players can land on
// different fallback paths within the same round.
func GradeAgainstTruth(ctx context.Context, g Grader, log *logrus.Logger, playerAnswer, correctAnswer, question string) bool {
	correct, err := g.CheckQuizAnswer(ctx, playerAnswer, correctAnswer, question)
	if err != nil {
		log.Warnf("quiz grading failed, using normalized equality: %v", err)
		return Normalize(playerAnswer) == Normalize(correctAnswer)
	}
	return correct
}
