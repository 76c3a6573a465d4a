// internal/ai/prompts.go
package ai

import (
	"fmt"
	"strings"
)

func questionsPrompt(theme string, count int) (string, TextOptions) {
	var b strings.Builder
	fmt.Fprintf(&b, `Generate %d original questions for a game where 2 players try to find things they have in common.
Questions must be of the form "What is your favorite ...?" or "What is your ... of choice?"
Examples: "What is your favorite movie?", "What is your favorite pizza?"`, count)
	if theme != "" {
		fmt.Fprintf(&b, "\n\nTheme: %s", theme)
	}
	b.WriteString("\n\nRespond only with a JSON array of questions, no explanation.\n" +
		`Format: ["Question 1?", "Question 2?", ...]`)
	return b.String(), TextOptions{Temperature: 0.8, MaxTokens: 2048}
}

var difficultyInstructions = map[string]string{
	"easy":   "EASY questions, answers everybody knows, middle-school level.",
	"medium": "MEDIUM difficulty, standard general knowledge.",
	"hard":   "HARD questions for experts, fine details, precise dates.",
}

func quizQuestionsPrompt(theme string, count int, difficulty string) (string, TextOptions) {
	instructions, ok := difficultyInstructions[difficulty]
	if !ok {
		instructions = difficultyInstructions["medium"]
	}
	var b strings.Builder
	fmt.Fprintf(&b, `Generate %d GENERAL KNOWLEDGE questions for a quiz between friends.
Every question must have a SINGLE, VERIFIABLE answer.
Vary the domains: history, geography, science, movies, music, sports, etc.

DIFFICULTY: %s`, count, instructions)
	if theme != "" {
		fmt.Fprintf(&b, "\n\nMain theme: %s", theme)
	}
	b.WriteString("\n\nRespond ONLY with a JSON array, no explanation.\nExact format:\n" +
		`[
  {"question": "Question 1?", "answer": "Answer 1"},
  {"question": "Question 2?", "answer": "Answer 2"}
]`)
	return b.String(), TextOptions{Temperature: 0.8, MaxTokens: 2048}
}

func matchPrompt(answer1, answer2, question string) (string, TextOptions) {
	prompt := fmt.Sprintf(`Question asked: "%s"
Player 1 answered: "%s"
Player 2 answered: "%s"

Do these two answers refer to the same thing, or are they very similar?
For example: "Harry Potter" and "harry potter" = YES
"Pizza" and "pizza margherita" = YES (close enough)
"Blue" and "Red" = NO

Respond in JSON: {"match": true/false, "explanation": "short explanation"}`,
		question, answer1, answer2)
	return prompt, TextOptions{Temperature: 0.3, MaxTokens: 256}
}

func quizCheckPrompt(playerAnswer, correctAnswer, question string) (string, TextOptions) {
	prompt := fmt.Sprintf(`You are a quiz grader. Check whether the player's answer is correct.

Question: "%s"
Correct answer: "%s"
Player's answer: "%s"

ACCEPT if:
- Same answer with spelling mistakes
- Synonym or variant (e.g. "USA" = "United States")
- Reasonable numeric approximation (e.g. "300 000" for "299792")
- Acceptable rounding

REJECT if:
- Completely different answer
- "No idea", "I don't know", "?" or an empty answer
- A random guess with no relation to the question

Does "%s" correspond to "%s"?
Respond: {"correct": true} or {"correct": false}`,
		question, correctAnswer, playerAnswer, playerAnswer, correctAnswer)
	return prompt, TextOptions{Temperature: 0.2, MaxTokens: 128}
}

func roundCommentPrompt(in RoundCommentInput) (string, TextOptions) {
	var outcome string
	if in.IsMatch {
		outcome = fmt.Sprintf(`- It's a MATCH!

MISSION: write ONE funny sentence (max 15 words) that:
- uses the names %s and %s
- gently teases them about their shared answer
- makes a JOKE or a friendly jab`, in.Player1, in.Player2)
	} else {
		outcome = fmt.Sprintf(`- NO MATCH!

MISSION: write ONE funny sentence (max 15 words) that:
- uses the names %s and %s
- roasts one (or both) of them about their answer
- cracks a JOKE about their disagreement`, in.Player1, in.Player2)
	}
	prompt := fmt.Sprintf(`ROLE: you are a COMEDIAN commentating a TV game show. Make people LAUGH, do not explain.

CONTEXT:
- %s answered "%s"
- %s answered "%s"
%s

FORBIDDEN: no explanation, no analysis, no "both answers..."

Your response (just the joke, nothing else):`,
		in.Player1, in.Answer1, in.Player2, in.Answer2, outcome)
	return prompt, TextOptions{Temperature: 1.0, MaxTokens: 40}
}

func quizCommentPrompt(in QuizCommentInput) (string, TextOptions) {
	var situation string
	switch {
	case in.Player1Correct && in.Player2Correct:
		situation = "BOTH GOT IT RIGHT"
	case !in.Player1Correct && !in.Player2Correct:
		situation = "BOTH GOT IT WRONG"
	case in.Player1Correct:
		situation = fmt.Sprintf("%s IS RIGHT, %s IS WRONG", in.Player1, in.Player2)
	default:
		situation = fmt.Sprintf("%s IS RIGHT, %s IS WRONG", in.Player2, in.Player1)
	}
	mark := func(correct bool) string {
		if correct {
			return "(correct)"
		}
		return "(wrong)"
	}
	prompt := fmt.Sprintf(`You are commentating a quiz between EXACTLY 2 players: "%s" and "%s". NO OTHER PLAYERS.

%s
- %s answered: "%s" %s
- %s answered: "%s" %s
- Correct answer: "%s"

Write ONE funny sentence (15 words MAX) that clearly teases them.
USE ONLY the names %s and %s. Do NOT invent other people.

Response (just the sentence, no quotes):`,
		in.Player1, in.Player2, situation,
		in.Player1, in.Answer1, mark(in.Player1Correct),
		in.Player2, in.Answer2, mark(in.Player2Correct),
		in.CorrectAnswer, in.Player1, in.Player2)
	return prompt, TextOptions{Temperature: 0.9, MaxTokens: 40}
}
