// internal/models/models.go
package models

import (
	"github.com/google/uuid"
)

// Mode selects how questions are sourced and how answers are evaluated.
// The wire names match what clients send in start-game options.
type Mode string

const (
	// ModeClassic draws prompts from the static question set and scores by
	// exact/substring matching.
	ModeClassic Mode = "classic"
	// ModeOpenEnded generates open-ended prompts and scores by semantic match.
	ModeOpenEnded Mode = "ai"
	// ModeClosed generates quiz questions with a single correct answer and
	// grades each player against it.
	ModeClosed Mode = "quiz"
)

// ParseMode maps a client-supplied mode string to a Mode, defaulting to classic.
func ParseMode(s string) Mode {
	switch Mode(s) {
	case ModeOpenEnded:
		return ModeOpenEnded
	case ModeClosed:
		return ModeClosed
	default:
		return ModeClassic
	}
}

// Generative reports whether the mode needs the provider chain.
func (m Mode) Generative() bool {
	return m == ModeOpenEnded || m == ModeClosed
}

// Player is one of the two seated participants in a room.
type Player struct {
	ID     uuid.UUID `json:"id"`
	Pseudo string    `json:"pseudo"`
}

// Question is a single queue entry. Answer is empty outside quiz mode.
type Question struct {
	Prompt string `json:"question"`
	Answer string `json:"answer,omitempty"`
}

// ChatMessage is one entry in a room's bounded chat log.
type ChatMessage struct {
	ID        uuid.UUID `json:"id"`
	Pseudo    string    `json:"pseudo"`
	Message   string    `json:"message"`
	Timestamp int64     `json:"timestamp"` // unix millis
}

// PlayerResult is a player's final standing in a finished game.
type PlayerResult struct {
	ID     uuid.UUID `json:"id"`
	Pseudo string    `json:"pseudo"`
	Score  int       `json:"score"`
}

// GameRecord summarizes a completed game for the historian queue.
type GameRecord struct {
	GameID     uuid.UUID      `json:"game_id"`
	RoomKey    string         `json:"room_key"`
	Mode       Mode           `json:"mode"`
	Theme      string         `json:"theme,omitempty"`
	Rounds     int            `json:"rounds"`
	Players    []PlayerResult `json:"players"`
	FinishedAt int64          `json:"finished_at"` // unix millis
}
