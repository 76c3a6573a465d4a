// internal/room/service.go
package room

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/guesslink/guesslink/internal/ai"
	"github.com/guesslink/guesslink/internal/evaluator"
	"github.com/guesslink/guesslink/internal/models"
	"github.com/guesslink/guesslink/internal/questions"
)

// Oracle is the provider-backed surface the session machine calls into.
// *ai.Chain satisfies it.
type Oracle interface {
	Available() bool
	GenerateQuestions(ctx context.Context, theme string, count int) ([]string, error)
	GenerateQuizQuestions(ctx context.Context, theme string, count int, difficulty string) ([]ai.QA, error)
	CheckAnswerMatch(ctx context.Context, answer1, answer2, question string) (bool, error)
	CheckQuizAnswer(ctx context.Context, playerAnswer, correctAnswer, question string) (bool, error)
	GenerateRoundComment(ctx context.Context, in ai.RoundCommentInput) (string, error)
	GenerateQuizComment(ctx context.Context, in ai.QuizCommentInput) (string, error)
}

// StartOptions carries the start-game configuration from the client.
type StartOptions struct {
	Mode       string `json:"mode"`
	Theme      string `json:"theme"`
	Difficulty string `json:"difficulty"`
}

// Service coordinates every room session operation. All mutation of room
// state flows through here, dispatched by the gateway.
type Service struct {
	store  *Store
	static *questions.Set
	oracle Oracle
	log    *logrus.Logger

	// OnGameEnd, when set, receives a record of every completed game. It is
	// invoked on its own goroutine so a slow consumer never stalls a room.
	OnGameEnd func(rec models.GameRecord)
}

// NewService builds the session coordinator over an injected store.
func NewService(store *Store, static *questions.Set, oracle Oracle, log *logrus.Logger) *Service {
	return &Service{
		store:  store,
		static: static,
		oracle: oracle,
		log:    log,
	}
}

// Store exposes the registry, mainly for the gateway's disconnect sweep and
// for tests.
func (s *Service) Store() *Store {
	return s.store
}

// Join adds conn to the room for key, creating the room if absent. Joining
// twice with the same connection id is idempotent. A third distinct
// connection stays in broadcast membership but never takes a player slot.
func (s *Service) Join(key string, conn *Conn) {
	r := s.store.GetOrCreate(key, conn.ID)
	r.Mu.Lock()

	if old, ok := r.Members[conn.ID]; ok && old != conn {
		// Same identity reconnecting; retire the previous connection.
		if old.Cancel != nil {
			old.Cancel()
		}
	}
	r.Members[conn.ID] = conn

	if p := r.playerByIDUnsafe(conn.ID); p != nil {
		p.Pseudo = conn.Pseudo
	} else if len(r.Players) < 2 {
		r.Players = append(r.Players, &models.Player{ID: conn.ID, Pseudo: conn.Pseudo})
		r.Scores[conn.ID] = 0
	}

	r.broadcastUnsafe(map[string]interface{}{
		"type":    "players-update",
		"players": r.playersPayloadUnsafe(),
	})
	conn.Write(map[string]interface{}{
		"type":        "room-info",
		"isCreator":   r.Creator == conn.ID,
		"gameStarted": r.Started,
		"mode":        r.Mode,
	})
	conn.Write(map[string]interface{}{
		"type":     "chat-history",
		"messages": r.chatHistoryUnsafe(),
	})

	// Resync a late or rejoining client into the running game.
	if r.Started {
		if q, ok := r.currentQuestionUnsafe(); ok {
			conn.Write(map[string]interface{}{
				"type":           "game-started",
				"question":       q.Prompt,
				"round":          r.Round,
				"totalQuestions": len(r.Queue),
				"mode":           r.Mode,
			})
			conn.Write(map[string]interface{}{
				"type":   "scores-update",
				"scores": r.scoresPayloadUnsafe(),
			})
		}
	}
	r.Mu.Unlock()

	s.log.Infof("room %s: %s joined as %q", key, conn.ID, conn.Pseudo)
}

// StartGame captures the game options, generates the question queue and
// broadcasts the first question. It is a silent no-op unless the caller is
// the creator, exactly two players are seated, and no generation is pending.
func (s *Service) StartGame(ctx context.Context, key string, connID uuid.UUID, opts StartOptions) {
	r, ok := s.store.Get(key)
	if !ok {
		return
	}

	r.Mu.Lock()
	caller := r.Members[connID]
	if r.Creator != connID || len(r.Players) != 2 || r.busy {
		r.Mu.Unlock()
		return
	}

	mode := models.ParseMode(opts.Mode)
	if mode.Generative() && !s.oracle.Available() {
		r.Mu.Unlock()
		if caller != nil {
			caller.WriteError("AI providers are unavailable, try classic mode")
		}
		return
	}

	r.Mode = mode
	r.Theme = opts.Theme
	r.Difficulty = opts.Difficulty
	r.busy = true
	epoch := r.epoch
	r.broadcastUnsafe(map[string]interface{}{
		"type":       "generating-questions",
		"theme":      opts.Theme,
		"mode":       mode,
		"difficulty": opts.Difficulty,
	})
	r.Mu.Unlock()

	queue, err := s.buildQueue(ctx, mode, opts.Theme, opts.Difficulty)

	r.Mu.Lock()
	r.busy = false
	if r.epoch != epoch {
		// Round state moved while we were generating; drop the result.
		r.Mu.Unlock()
		s.log.Warnf("room %s: discarding stale question generation", key)
		return
	}
	if err != nil || len(queue) == 0 {
		r.Mu.Unlock()
		if err != nil {
			s.log.Warnf("room %s: question generation failed: %v", key, err)
		}
		if caller != nil {
			caller.WriteError("Failed to generate questions, please try again")
		}
		return
	}

	gameID := uuid.New()
	r.GameID = gameID
	r.Queue = queue
	r.QuestionIndex = 0
	r.Round = 1
	r.Started = true
	r.Over = false
	r.resetRoundStateUnsafe()
	first := r.Queue[0]
	r.broadcastUnsafe(map[string]interface{}{
		"type":           "game-started",
		"question":       first.Prompt,
		"round":          r.Round,
		"totalQuestions": len(r.Queue),
		"mode":           mode,
	})
	r.Mu.Unlock()

	s.log.Infof("room %s: game %s started (mode=%s, %d questions)", key, gameID, mode, len(queue))
}

func (s *Service) buildQueue(ctx context.Context, mode models.Mode, theme, difficulty string) ([]models.Question, error) {
	switch mode {
	case models.ModeOpenEnded:
		prompts, err := s.oracle.GenerateQuestions(ctx, theme, questionsPerGame)
		if err != nil {
			return nil, err
		}
		queue := make([]models.Question, 0, len(prompts))
		for _, p := range prompts {
			queue = append(queue, models.Question{Prompt: p})
		}
		return queue, nil
	case models.ModeClosed:
		qas, err := s.oracle.GenerateQuizQuestions(ctx, theme, questionsPerGame, difficulty)
		if err != nil {
			return nil, err
		}
		queue := make([]models.Question, 0, len(qas))
		for _, qa := range qas {
			queue = append(queue, models.Question{Prompt: qa.Prompt, Answer: qa.Answer})
		}
		return queue, nil
	default:
		return s.static.Draw(questionsPerGame), nil
	}
}

// roundOutcome is the evaluation result for one resolved round.
type roundOutcome struct {
	match    bool
	correct1 bool
	correct2 bool
	comment  string
}

// SubmitAnswer records a player's answer for the in-flight round and, once
// both players have answered, evaluates the round and broadcasts the result.
// Spectator submissions and answers outside a running game are ignored.
func (s *Service) SubmitAnswer(ctx context.Context, key string, connID uuid.UUID, answer string) {
	r, ok := s.store.Get(key)
	if !ok {
		return
	}

	r.Mu.Lock()
	if !r.Started || r.playerByIDUnsafe(connID) == nil {
		r.Mu.Unlock()
		return
	}

	r.PendingAnswers[connID] = answer
	for _, p := range r.Players {
		if p.ID == connID {
			continue
		}
		if c := r.Members[p.ID]; c != nil {
			c.Write(map[string]interface{}{"type": "opponent-answered"})
		}
	}

	if len(r.PendingAnswers) != 2 || r.resolved || r.busy {
		r.Mu.Unlock()
		return
	}

	// Both players answered: snapshot everything the evaluation needs, then
	// release the lock for the potentially multi-second provider round trip.
	r.resolved = true
	r.busy = true
	epoch := r.epoch
	mode := r.Mode
	p1 := *r.Players[0]
	p2 := *r.Players[1]
	a1 := r.PendingAnswers[p1.ID]
	a2 := r.PendingAnswers[p2.ID]
	question, _ := r.currentQuestionUnsafe()
	r.Mu.Unlock()

	outcome := s.evaluateRound(ctx, mode, question, p1, a1, p2, a2)

	r.Mu.Lock()
	r.busy = false
	if r.epoch != epoch || !r.Started {
		r.Mu.Unlock()
		s.log.Warnf("room %s: discarding stale round evaluation", key)
		return
	}

	switch mode {
	case models.ModeClosed:
		if outcome.correct1 {
			r.Scores[p1.ID]++
		}
		if outcome.correct2 {
			r.Scores[p2.ID]++
		}
	default:
		if outcome.match {
			r.Scores[p1.ID]++
			r.Scores[p2.ID]++
		}
	}

	result := map[string]interface{}{
		"type":           "round-result",
		"scores":         r.scoresPayloadUnsafe(),
		"isLastQuestion": r.isLastQuestionUnsafe(),
		"mode":           mode,
	}
	if mode == models.ModeClosed {
		result["player1"] = map[string]interface{}{
			"id": p1.ID.String(), "pseudo": p1.Pseudo, "answer": a1, "correct": outcome.correct1,
		}
		result["player2"] = map[string]interface{}{
			"id": p2.ID.String(), "pseudo": p2.Pseudo, "answer": a2, "correct": outcome.correct2,
		}
		result["correctAnswer"] = question.Answer
	} else {
		result["player1"] = map[string]interface{}{
			"id": p1.ID.String(), "pseudo": p1.Pseudo, "answer": a1,
		}
		result["player2"] = map[string]interface{}{
			"id": p2.ID.String(), "pseudo": p2.Pseudo, "answer": a2,
		}
		result["isMatch"] = outcome.match
	}
	if outcome.comment != "" {
		result["aiComment"] = outcome.comment
	}
	r.broadcastUnsafe(result)
	r.Mu.Unlock()
}

func (s *Service) evaluateRound(ctx context.Context, mode models.Mode, question models.Question, p1 models.Player, a1 string, p2 models.Player, a2 string) roundOutcome {
	switch mode {
	case models.ModeOpenEnded:
		match := evaluator.SemanticMatch(ctx, s.oracle, s.log, a1, a2, question.Prompt)
		comment, err := s.oracle.GenerateRoundComment(ctx, ai.RoundCommentInput{
			Question: question.Prompt,
			Player1:  p1.Pseudo, Answer1: a1,
			Player2: p2.Pseudo, Answer2: a2,
			IsMatch: match,
		})
		if err != nil {
			s.log.Warnf("round comment generation failed: %v", err)
			comment = fallbackRoundComment(p1.Pseudo, p2.Pseudo, match)
		}
		return roundOutcome{match: match, comment: comment}

	case models.ModeClosed:
		correct1 := evaluator.GradeAgainstTruth(ctx, s.oracle, s.log, a1, question.Answer, question.Prompt)
		correct2 := evaluator.GradeAgainstTruth(ctx, s.oracle, s.log, a2, question.Answer, question.Prompt)
		comment, err := s.oracle.GenerateQuizComment(ctx, ai.QuizCommentInput{
			Question:      question.Prompt,
			CorrectAnswer: question.Answer,
			Player1:       p1.Pseudo, Answer1: a1, Player1Correct: correct1,
			Player2: p2.Pseudo, Answer2: a2, Player2Correct: correct2,
		})
		if err != nil {
			s.log.Warnf("quiz comment generation failed: %v", err)
			comment = fallbackQuizComment(p1.Pseudo, correct1, p2.Pseudo, correct2)
		}
		return roundOutcome{correct1: correct1, correct2: correct2, comment: comment}

	default:
		return roundOutcome{match: evaluator.LooseMatch(a1, a2)}
	}
}

// AdvanceRound adds the caller to the ready barrier. When both players are
// ready the game advances to the next question, or ends if the queue is
// exhausted.
func (s *Service) AdvanceRound(key string, connID uuid.UUID) {
	r, ok := s.store.Get(key)
	if !ok {
		return
	}

	r.Mu.Lock()
	if !r.Started || r.playerByIDUnsafe(connID) == nil {
		r.Mu.Unlock()
		return
	}

	r.Ready[connID] = true
	r.broadcastUnsafe(map[string]interface{}{
		"type":  "ready-count",
		"count": len(r.Ready),
	})

	if len(r.Ready) != 2 || len(r.Players) != 2 {
		r.Mu.Unlock()
		return
	}

	if r.isLastQuestionUnsafe() {
		r.Started = false
		r.Over = true
		rec := models.GameRecord{
			GameID:     r.GameID,
			RoomKey:    r.Key,
			Mode:       r.Mode,
			Theme:      r.Theme,
			Rounds:     r.Round,
			FinishedAt: time.Now().UnixMilli(),
		}
		for _, p := range r.Players {
			rec.Players = append(rec.Players, models.PlayerResult{
				ID: p.ID, Pseudo: p.Pseudo, Score: r.Scores[p.ID],
			})
		}
		r.broadcastUnsafe(map[string]interface{}{
			"type":    "game-over",
			"scores":  r.scoresPayloadUnsafe(),
			"players": r.playersPayloadUnsafe(),
			"mode":    r.Mode,
		})
		r.resetRoundStateUnsafe()
		r.Mu.Unlock()

		s.log.Infof("room %s: game %s over after %d rounds", key, rec.GameID, rec.Rounds)
		if s.OnGameEnd != nil {
			go s.OnGameEnd(rec)
		}
		return
	}

	r.QuestionIndex++
	r.Round++
	r.resetRoundStateUnsafe()
	q, _ := r.currentQuestionUnsafe()
	r.broadcastUnsafe(map[string]interface{}{
		"type":           "new-round",
		"question":       q.Prompt,
		"round":          r.Round,
		"totalQuestions": len(r.Queue),
		"mode":           r.Mode,
	})
	r.Mu.Unlock()
}

// PostChat appends a chat entry to the room's bounded log and broadcasts it.
func (s *Service) PostChat(key, pseudo, text string) {
	r, ok := s.store.Get(key)
	if !ok || text == "" {
		return
	}

	msg := models.ChatMessage{
		ID:        uuid.New(),
		Pseudo:    pseudo,
		Message:   text,
		Timestamp: time.Now().UnixMilli(),
	}

	r.Mu.Lock()
	r.appendMessageUnsafe(msg)
	r.broadcastUnsafe(map[string]interface{}{
		"type":      "chat-message",
		"id":        msg.ID.String(),
		"pseudo":    msg.Pseudo,
		"message":   msg.Message,
		"timestamp": msg.Timestamp,
	})
	r.Mu.Unlock()
}

// Leave removes the connection from the given room.
func (s *Service) Leave(key string, connID uuid.UUID) {
	if r, ok := s.store.Get(key); ok {
		s.removeFromRoom(r, connID, nil)
	}
}

// Disconnect removes the dropped connection from every room containing it.
// Safe to invoke multiple times for the same connection. The *Conn is
// required so that a sweep for a retired connection cannot evict a rejoined
// client that took over the same identity.
func (s *Service) Disconnect(conn *Conn) {
	for _, r := range s.store.Rooms() {
		s.removeFromRoom(r, conn.ID, conn)
	}
}

// removeFromRoom drops the connection from one room. When conn is non-nil
// the removal only applies if that exact connection is still the member; a
// reconnect replaces the member under the same id, and the stale handler's
// sweep must not tear down its successor.
func (s *Service) removeFromRoom(r *Room, connID uuid.UUID, conn *Conn) {
	r.Mu.Lock()
	member, isMember := r.Members[connID]
	if !isMember {
		r.Mu.Unlock()
		return
	}
	if conn != nil && member != conn {
		r.Mu.Unlock()
		return
	}
	delete(r.Members, connID)

	removedPlayer := false
	for i, p := range r.Players {
		if p.ID == connID {
			r.Players = append(r.Players[:i], r.Players[i+1:]...)
			removedPlayer = true
			break
		}
	}
	if removedPlayer {
		delete(r.Scores, connID)
		delete(r.PendingAnswers, connID)
		delete(r.Ready, connID)
		// Invalidate any in-flight evaluation referencing the departed player.
		r.epoch++
		if r.busy {
			// The suspended evaluation will discard itself on the epoch
			// mismatch without having scored, so the round must stay open
			// for a refilled seat. An already scored round keeps resolved.
			r.resolved = false
		}
	}

	if len(r.Players) == 0 {
		key := r.Key
		r.Mu.Unlock()
		// Re-verified under both locks: a join may have seated a player
		// between the unlock above and the store taking its lock.
		if s.store.DeleteIfEmpty(key) {
			s.log.Infof("room %s deleted", key)
		}
		return
	}

	if removedPlayer && r.Creator == connID {
		r.Creator = r.Players[0].ID
	}
	r.broadcastUnsafe(map[string]interface{}{
		"type":    "players-update",
		"players": r.playersPayloadUnsafe(),
	})
	r.broadcastUnsafe(map[string]interface{}{"type": "player-left"})
	key := r.Key
	r.Mu.Unlock()

	s.log.Infof("room %s: %s left", key, connID)
}

// fallbackRoundComment is the deterministic commentary used when every
// provider is exhausted, so the round result never stalls on generation.
func fallbackRoundComment(player1, player2 string, match bool) string {
	if match {
		return fmt.Sprintf("%s and %s are clearly on the same wavelength!", player1, player2)
	}
	return fmt.Sprintf("%s and %s, not exactly soulmates on this one.", player1, player2)
}

func fallbackQuizComment(player1 string, correct1 bool, player2 string, correct2 bool) string {
	switch {
	case correct1 && correct2:
		return fmt.Sprintf("%s and %s both nailed it!", player1, player2)
	case !correct1 && !correct2:
		return fmt.Sprintf("Neither %s nor %s got that one.", player1, player2)
	case correct1:
		return fmt.Sprintf("%s takes the point, better luck next time %s!", player1, player2)
	default:
		return fmt.Sprintf("%s takes the point, better luck next time %s!", player2, player1)
	}
}
