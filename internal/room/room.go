// internal/room/room.go
package room

import (
	"sync"

	"github.com/google/uuid"

	"github.com/guesslink/guesslink/internal/models"
)

// chatLogCap bounds a room's chat history; the oldest entry is evicted.
const chatLogCap = 50

// questionsPerGame is how many questions a game is seeded with.
const questionsPerGame = 10

// Room holds all mutable state for one game session, identified by an opaque
// key. Mu guards every field; operations that suspend on a provider call
// release the lock and re-validate against epoch when they resume.
type Room struct {
	Key string
	Mu  sync.Mutex

	// Members holds every live connection in the room, including a possible
	// third connection that observes chat but never occupies a player slot.
	Members map[uuid.UUID]*Conn

	// Players is the ordered 2-slot roster; order defines player 1/player 2.
	Players []*models.Player
	Creator uuid.UUID

	GameID     uuid.UUID
	Mode       models.Mode
	Theme      string
	Difficulty string

	// Queue is fixed for the duration of a game once generated.
	Queue         []models.Question
	QuestionIndex int
	Round         int // 1-based

	PendingAnswers map[uuid.UUID]string
	Scores         map[uuid.UUID]int
	Ready          map[uuid.UUID]bool

	Messages []models.ChatMessage

	Started bool
	Over    bool

	// busy guards the room against overlapping provider work: a second
	// start-game is rejected while generation is pending, and a round is
	// evaluated at most once.
	busy bool
	// resolved marks the in-flight round as already scored.
	resolved bool
	// epoch increments on every round transition and player departure so
	// that suspended provider work can detect it is stale.
	epoch uint64
}

func newRoom(key string, creator uuid.UUID) *Room {
	return &Room{
		Key:            key,
		Members:        make(map[uuid.UUID]*Conn),
		Creator:        creator,
		Mode:           models.ModeClassic,
		PendingAnswers: make(map[uuid.UUID]string),
		Scores:         make(map[uuid.UUID]int),
		Ready:          make(map[uuid.UUID]bool),
	}
}

// broadcastUnsafe sends msg to every member connection. Assumes lock is held;
// Conn.Write never blocks so holding the lock is safe.
func (r *Room) broadcastUnsafe(msg map[string]interface{}) {
	for _, conn := range r.Members {
		conn.Write(msg)
	}
}

func (r *Room) playerByIDUnsafe(id uuid.UUID) *models.Player {
	for _, p := range r.Players {
		if p.ID == id {
			return p
		}
	}
	return nil
}

func (r *Room) currentQuestionUnsafe() (models.Question, bool) {
	if r.QuestionIndex < 0 || r.QuestionIndex >= len(r.Queue) {
		return models.Question{}, false
	}
	return r.Queue[r.QuestionIndex], true
}

func (r *Room) isLastQuestionUnsafe() bool {
	return r.QuestionIndex >= len(r.Queue)-1
}

// scoresPayloadUnsafe re-keys scores by connection id string for the wire.
func (r *Room) scoresPayloadUnsafe() map[string]int {
	out := make(map[string]int, len(r.Scores))
	for id, score := range r.Scores {
		out[id.String()] = score
	}
	return out
}

// playersPayloadUnsafe snapshots the roster for broadcasting.
func (r *Room) playersPayloadUnsafe() []models.Player {
	out := make([]models.Player, 0, len(r.Players))
	for _, p := range r.Players {
		out = append(out, *p)
	}
	return out
}

// appendMessageUnsafe appends a chat entry, evicting the oldest past capacity.
func (r *Room) appendMessageUnsafe(msg models.ChatMessage) {
	r.Messages = append(r.Messages, msg)
	if len(r.Messages) > chatLogCap {
		r.Messages = r.Messages[len(r.Messages)-chatLogCap:]
	}
}

// chatHistoryUnsafe snapshots the chat log for a joining connection.
func (r *Room) chatHistoryUnsafe() []models.ChatMessage {
	out := make([]models.ChatMessage, len(r.Messages))
	copy(out, r.Messages)
	return out
}

// resetRoundStateUnsafe clears per-round bookkeeping and bumps the epoch so
// stale evaluations discard themselves.
func (r *Room) resetRoundStateUnsafe() {
	r.PendingAnswers = make(map[uuid.UUID]string)
	r.Ready = make(map[uuid.UUID]bool)
	r.resolved = false
	r.epoch++
}
