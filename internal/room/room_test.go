// internal/room/room_test.go
package room

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guesslink/guesslink/internal/ai"
	"github.com/guesslink/guesslink/internal/models"
	"github.com/guesslink/guesslink/internal/questions"
)

// fakeOracle scripts provider behavior for the session machine.
type fakeOracle struct {
	available   bool
	prompts     []string
	qas         []ai.QA
	matchResult bool
	correct     map[string]bool
	genErr      error

	matchCalls int
	gradeCalls int

	// matchEntered / matchGate let a test hold a verdict call open to
	// exercise what happens to the room while an evaluation is suspended.
	matchEntered chan struct{}
	matchGate    chan struct{}
}

func (f *fakeOracle) Available() bool { return f.available }

func (f *fakeOracle) GenerateQuestions(ctx context.Context, theme string, count int) ([]string, error) {
	if f.genErr != nil {
		return nil, f.genErr
	}
	return f.prompts, nil
}

func (f *fakeOracle) GenerateQuizQuestions(ctx context.Context, theme string, count int, difficulty string) ([]ai.QA, error) {
	if f.genErr != nil {
		return nil, f.genErr
	}
	return f.qas, nil
}

func (f *fakeOracle) CheckAnswerMatch(ctx context.Context, answer1, answer2, question string) (bool, error) {
	f.matchCalls++
	if f.matchEntered != nil {
		f.matchEntered <- struct{}{}
	}
	if f.matchGate != nil {
		<-f.matchGate
	}
	return f.matchResult, nil
}

func (f *fakeOracle) CheckQuizAnswer(ctx context.Context, playerAnswer, correctAnswer, question string) (bool, error) {
	f.gradeCalls++
	return f.correct[playerAnswer], nil
}

func (f *fakeOracle) GenerateRoundComment(ctx context.Context, in ai.RoundCommentInput) (string, error) {
	return "what a round", nil
}

func (f *fakeOracle) GenerateQuizComment(ctx context.Context, in ai.QuizCommentInput) (string, error) {
	return "what a quiz round", nil
}

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func newTestService(t *testing.T, oracle Oracle, prompts int) *Service {
	t.Helper()
	path := filepath.Join(t.TempDir(), "questions.txt")
	var content string
	for i := 0; i < prompts; i++ {
		content += fmt.Sprintf("Test question %d?\n", i+1)
	}
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	set, err := questions.LoadFile(path)
	require.NoError(t, err)
	return NewService(NewStore(), set, oracle, testLogger())
}

// drain empties a connection's outbound queue and returns what was pending.
func drain(c *Conn) []map[string]interface{} {
	var out []map[string]interface{}
	for {
		select {
		case msg := <-c.OutChan:
			out = append(out, msg)
		default:
			return out
		}
	}
}

func lastOfType(msgs []map[string]interface{}, typ string) map[string]interface{} {
	var found map[string]interface{}
	for _, m := range msgs {
		if m["type"] == typ {
			found = m
		}
	}
	return found
}

func countOfType(msgs []map[string]interface{}, typ string) int {
	n := 0
	for _, m := range msgs {
		if m["type"] == typ {
			n++
		}
	}
	return n
}

func joinTwo(svc *Service) (*Conn, *Conn) {
	alice := NewConn(uuid.New(), "Alice", nil)
	bob := NewConn(uuid.New(), "Bob", nil)
	svc.Join("ABC", alice)
	svc.Join("ABC", bob)
	drain(alice)
	drain(bob)
	return alice, bob
}

func startClassic(t *testing.T, svc *Service, creator *Conn) {
	t.Helper()
	svc.StartGame(context.Background(), "ABC", creator.ID, StartOptions{Mode: "classic"})
	r, ok := svc.Store().Get("ABC")
	require.True(t, ok)
	r.Mu.Lock()
	defer r.Mu.Unlock()
	require.True(t, r.Started)
}

func TestJoinOrderingAndCreator(t *testing.T) {
	svc := newTestService(t, &fakeOracle{}, 3)

	alice := NewConn(uuid.New(), "Alice", nil)
	svc.Join("ABC", alice)
	msgs := drain(alice)
	info := lastOfType(msgs, "room-info")
	require.NotNil(t, info)
	assert.Equal(t, true, info["isCreator"])
	assert.Equal(t, false, info["gameStarted"])

	bob := NewConn(uuid.New(), "Bob", nil)
	svc.Join("ABC", bob)
	msgs = drain(bob)
	info = lastOfType(msgs, "room-info")
	require.NotNil(t, info)
	assert.Equal(t, false, info["isCreator"])

	r, ok := svc.Store().Get("ABC")
	require.True(t, ok)
	r.Mu.Lock()
	defer r.Mu.Unlock()
	require.Len(t, r.Players, 2)
	assert.Equal(t, "Alice", r.Players[0].Pseudo)
	assert.Equal(t, "Bob", r.Players[1].Pseudo)
	assert.Equal(t, alice.ID, r.Creator)
}

func TestThirdJoinerIsSpectator(t *testing.T) {
	svc := newTestService(t, &fakeOracle{}, 3)
	alice, _ := joinTwo(svc)

	carol := NewConn(uuid.New(), "Carol", nil)
	svc.Join("ABC", carol)

	r, _ := svc.Store().Get("ABC")
	r.Mu.Lock()
	assert.Len(t, r.Players, 2)
	assert.Len(t, r.Members, 3)
	r.Mu.Unlock()

	// Spectator submissions and ready votes are ignored.
	startClassic(t, svc, alice)
	svc.SubmitAnswer(context.Background(), "ABC", carol.ID, "pizza")
	r.Mu.Lock()
	assert.Empty(t, r.PendingAnswers)
	r.Mu.Unlock()

	svc.AdvanceRound("ABC", carol.ID)
	r.Mu.Lock()
	assert.Empty(t, r.Ready)
	r.Mu.Unlock()
}

func TestStartGameGates(t *testing.T) {
	svc := newTestService(t, &fakeOracle{}, 3)

	alice := NewConn(uuid.New(), "Alice", nil)
	svc.Join("ABC", alice)
	drain(alice)

	// One player only: start is refused.
	svc.StartGame(context.Background(), "ABC", alice.ID, StartOptions{Mode: "classic"})
	r, _ := svc.Store().Get("ABC")
	r.Mu.Lock()
	assert.False(t, r.Started)
	r.Mu.Unlock()

	bob := NewConn(uuid.New(), "Bob", nil)
	svc.Join("ABC", bob)
	drain(alice)
	drain(bob)

	// Non-creator cannot start.
	svc.StartGame(context.Background(), "ABC", bob.ID, StartOptions{Mode: "classic"})
	r.Mu.Lock()
	assert.False(t, r.Started)
	r.Mu.Unlock()

	svc.StartGame(context.Background(), "ABC", alice.ID, StartOptions{Mode: "classic"})
	msgs := drain(alice)
	started := lastOfType(msgs, "game-started")
	require.NotNil(t, started)
	assert.Equal(t, 1, started["round"])
	assert.Equal(t, 3, started["totalQuestions"])
	assert.Equal(t, models.ModeClassic, started["mode"])
}

func TestStartGenerativeWithoutProviders(t *testing.T) {
	svc := newTestService(t, &fakeOracle{available: false}, 3)
	alice, _ := joinTwo(svc)

	svc.StartGame(context.Background(), "ABC", alice.ID, StartOptions{Mode: "ai", Theme: "cinema"})
	msgs := drain(alice)
	require.NotNil(t, lastOfType(msgs, "error"))

	r, _ := svc.Store().Get("ABC")
	r.Mu.Lock()
	defer r.Mu.Unlock()
	assert.False(t, r.Started)
	assert.False(t, r.busy)
}

func TestUnknownModeDefaultsToClassic(t *testing.T) {
	svc := newTestService(t, &fakeOracle{}, 3)
	alice, _ := joinTwo(svc)

	svc.StartGame(context.Background(), "ABC", alice.ID, StartOptions{Mode: "bogus"})
	r, _ := svc.Store().Get("ABC")
	r.Mu.Lock()
	defer r.Mu.Unlock()
	assert.True(t, r.Started)
	assert.Equal(t, models.ModeClassic, r.Mode)
}

func TestRoundResolvesOnlyWithBothAnswers(t *testing.T) {
	svc := newTestService(t, &fakeOracle{}, 3)
	alice, bob := joinTwo(svc)
	startClassic(t, svc, alice)
	drain(alice)
	drain(bob)

	svc.SubmitAnswer(context.Background(), "ABC", alice.ID, "pizza")
	bobMsgs := drain(bob)
	assert.Equal(t, 1, countOfType(bobMsgs, "opponent-answered"))
	assert.Nil(t, lastOfType(bobMsgs, "round-result"))
	assert.Nil(t, lastOfType(drain(alice), "round-result"))

	svc.SubmitAnswer(context.Background(), "ABC", bob.ID, "Pizza")
	result := lastOfType(drain(alice), "round-result")
	require.NotNil(t, result)
	assert.Equal(t, true, result["isMatch"])

	scores, ok := result["scores"].(map[string]int)
	require.True(t, ok)
	assert.Equal(t, 1, scores[alice.ID.String()])
	assert.Equal(t, 1, scores[bob.ID.String()])
}

func TestResubmitOverwritesBeforeResolution(t *testing.T) {
	svc := newTestService(t, &fakeOracle{}, 3)
	alice, bob := joinTwo(svc)
	startClassic(t, svc, alice)
	drain(alice)
	drain(bob)

	svc.SubmitAnswer(context.Background(), "ABC", alice.ID, "sushi")
	svc.SubmitAnswer(context.Background(), "ABC", alice.ID, "pizza")
	svc.SubmitAnswer(context.Background(), "ABC", bob.ID, "pizza margherita")

	result := lastOfType(drain(alice), "round-result")
	require.NotNil(t, result)
	assert.Equal(t, true, result["isMatch"])
	p1 := result["player1"].(map[string]interface{})
	assert.Equal(t, "pizza", p1["answer"])
}

func TestReadyBarrierAdvancesExactlyOnce(t *testing.T) {
	svc := newTestService(t, &fakeOracle{}, 3)
	alice, bob := joinTwo(svc)
	startClassic(t, svc, alice)
	drain(alice)
	drain(bob)

	svc.SubmitAnswer(context.Background(), "ABC", alice.ID, "x")
	svc.SubmitAnswer(context.Background(), "ABC", bob.ID, "x")
	drain(alice)
	drain(bob)

	svc.AdvanceRound("ABC", alice.ID)
	msgs := drain(alice)
	ready := lastOfType(msgs, "ready-count")
	require.NotNil(t, ready)
	assert.Equal(t, 1, ready["count"])
	assert.Nil(t, lastOfType(msgs, "new-round"))

	// Repeat votes from the same player do not advance.
	svc.AdvanceRound("ABC", alice.ID)
	assert.Nil(t, lastOfType(drain(alice), "new-round"))

	svc.AdvanceRound("ABC", bob.ID)
	msgs = drain(alice)
	next := lastOfType(msgs, "new-round")
	require.NotNil(t, next)
	assert.Equal(t, 2, next["round"])
	assert.Equal(t, 1, countOfType(msgs, "new-round"))

	r, _ := svc.Store().Get("ABC")
	r.Mu.Lock()
	defer r.Mu.Unlock()
	assert.Empty(t, r.Ready)
	assert.Empty(t, r.PendingAnswers)
}

func TestFullClassicGameToCompletion(t *testing.T) {
	oracle := &fakeOracle{}
	svc := newTestService(t, oracle, 2)
	alice, bob := joinTwo(svc)

	var finished []models.GameRecord
	done := make(chan struct{})
	svc.OnGameEnd = func(rec models.GameRecord) {
		finished = append(finished, rec)
		close(done)
	}

	startClassic(t, svc, alice)
	drain(alice)
	drain(bob)

	// Round 1: match.
	svc.SubmitAnswer(context.Background(), "ABC", alice.ID, "blue")
	svc.SubmitAnswer(context.Background(), "ABC", bob.ID, "blue")
	result := lastOfType(drain(alice), "round-result")
	require.NotNil(t, result)
	assert.Equal(t, false, result["isLastQuestion"])
	drain(bob)
	svc.AdvanceRound("ABC", alice.ID)
	svc.AdvanceRound("ABC", bob.ID)
	drain(alice)
	drain(bob)

	// Round 2: no match, last question.
	svc.SubmitAnswer(context.Background(), "ABC", alice.ID, "cats")
	svc.SubmitAnswer(context.Background(), "ABC", bob.ID, "dogs")
	result = lastOfType(drain(alice), "round-result")
	require.NotNil(t, result)
	assert.Equal(t, false, result["isMatch"])
	assert.Equal(t, true, result["isLastQuestion"])
	drain(bob)

	svc.AdvanceRound("ABC", alice.ID)
	svc.AdvanceRound("ABC", bob.ID)
	msgs := drain(alice)
	over := lastOfType(msgs, "game-over")
	require.NotNil(t, over)
	assert.Nil(t, lastOfType(msgs, "new-round"))

	scores := over["scores"].(map[string]int)
	assert.Equal(t, 1, scores[alice.ID.String()])
	assert.Equal(t, 1, scores[bob.ID.String()])

	<-done
	require.Len(t, finished, 1)
	assert.Equal(t, "ABC", finished[0].RoomKey)
	assert.Equal(t, models.ModeClassic, finished[0].Mode)
	assert.Equal(t, 2, finished[0].Rounds)
	require.Len(t, finished[0].Players, 2)
	assert.Equal(t, 1, finished[0].Players[0].Score)

	// The room survives game over for a rematch.
	r, ok := svc.Store().Get("ABC")
	require.True(t, ok)
	r.Mu.Lock()
	defer r.Mu.Unlock()
	assert.False(t, r.Started)
	assert.True(t, r.Over)
}

func TestOpenEndedGameUsesProviderVerdict(t *testing.T) {
	oracle := &fakeOracle{
		available:   true,
		prompts:     []string{"Name something round.", "Name something blue."},
		matchResult: true,
	}
	svc := newTestService(t, oracle, 2)
	alice, bob := joinTwo(svc)

	svc.StartGame(context.Background(), "ABC", alice.ID, StartOptions{Mode: "ai", Theme: "shapes"})
	msgs := drain(alice)
	require.NotNil(t, lastOfType(msgs, "generating-questions"))
	started := lastOfType(msgs, "game-started")
	require.NotNil(t, started)
	assert.Equal(t, "Name something round.", started["question"])

	// Provider says these unrelated strings match; the verdict is final.
	svc.SubmitAnswer(context.Background(), "ABC", alice.ID, "the sun")
	svc.SubmitAnswer(context.Background(), "ABC", bob.ID, "a wheel")
	result := lastOfType(drain(alice), "round-result")
	require.NotNil(t, result)
	assert.Equal(t, true, result["isMatch"])
	assert.Equal(t, "what a round", result["aiComment"])
	assert.Equal(t, 1, oracle.matchCalls)
}

func TestQuizModeScoresIndependently(t *testing.T) {
	oracle := &fakeOracle{
		available: true,
		qas: []ai.QA{
			{Prompt: "Capital of France?", Answer: "Paris"},
			{Prompt: "Capital of Japan?", Answer: "Tokyo"},
		},
		correct: map[string]bool{"paris": true, "london": false},
	}
	svc := newTestService(t, oracle, 2)
	alice, bob := joinTwo(svc)

	svc.StartGame(context.Background(), "ABC", alice.ID, StartOptions{Mode: "quiz", Theme: "geo", Difficulty: "easy"})
	drain(alice)
	drain(bob)

	svc.SubmitAnswer(context.Background(), "ABC", alice.ID, "paris")
	svc.SubmitAnswer(context.Background(), "ABC", bob.ID, "london")
	result := lastOfType(drain(alice), "round-result")
	require.NotNil(t, result)

	p1 := result["player1"].(map[string]interface{})
	p2 := result["player2"].(map[string]interface{})
	assert.Equal(t, true, p1["correct"])
	assert.Equal(t, false, p2["correct"])
	assert.Equal(t, "Paris", result["correctAnswer"])
	assert.Nil(t, result["isMatch"])

	scores := result["scores"].(map[string]int)
	assert.Equal(t, 1, scores[alice.ID.String()])
	assert.Equal(t, 0, scores[bob.ID.String()])
	assert.Equal(t, 2, oracle.gradeCalls)
}

func TestChatLogEviction(t *testing.T) {
	svc := newTestService(t, &fakeOracle{}, 3)
	joinTwo(svc)

	for i := 0; i < chatLogCap+5; i++ {
		svc.PostChat("ABC", "Alice", fmt.Sprintf("message %d", i))
	}

	r, _ := svc.Store().Get("ABC")
	r.Mu.Lock()
	defer r.Mu.Unlock()
	require.Len(t, r.Messages, chatLogCap)
	assert.Equal(t, "message 5", r.Messages[0].Message)
	assert.Equal(t, fmt.Sprintf("message %d", chatLogCap+4), r.Messages[chatLogCap-1].Message)
}

func TestLeaveReassignsCreatorThenDeletesRoom(t *testing.T) {
	svc := newTestService(t, &fakeOracle{}, 3)
	alice, bob := joinTwo(svc)

	svc.Leave("ABC", alice.ID)
	r, ok := svc.Store().Get("ABC")
	require.True(t, ok)
	r.Mu.Lock()
	assert.Equal(t, bob.ID, r.Creator)
	require.Len(t, r.Players, 1)
	r.Mu.Unlock()

	msgs := drain(bob)
	require.NotNil(t, lastOfType(msgs, "player-left"))

	svc.Leave("ABC", bob.ID)
	_, ok = svc.Store().Get("ABC")
	assert.False(t, ok)
}

func TestDisconnectSweepsAllRooms(t *testing.T) {
	svc := newTestService(t, &fakeOracle{}, 3)
	alice := NewConn(uuid.New(), "Alice", nil)
	svc.Join("ABC", alice)
	svc.Join("XYZ", alice)
	require.Equal(t, 2, svc.Store().Len())

	svc.Disconnect(alice)
	assert.Equal(t, 0, svc.Store().Len())

	// A second sweep for the same connection is harmless.
	svc.Disconnect(alice)
}

func TestLeaveDuringRoundInvalidatesEvaluation(t *testing.T) {
	svc := newTestService(t, &fakeOracle{}, 3)
	alice, bob := joinTwo(svc)
	startClassic(t, svc, alice)
	drain(alice)
	drain(bob)

	svc.SubmitAnswer(context.Background(), "ABC", alice.ID, "pizza")
	svc.Leave("ABC", bob.ID)

	r, _ := svc.Store().Get("ABC")
	r.Mu.Lock()
	defer r.Mu.Unlock()
	assert.Empty(t, r.PendingAnswers[bob.ID])
	require.Len(t, r.Players, 1)
	// Departed players keep no score entry.
	_, hasScore := r.Scores[bob.ID]
	assert.False(t, hasScore)
}

func TestStaleConnectionSweepSparesRejoinedPlayer(t *testing.T) {
	svc := newTestService(t, &fakeOracle{}, 3)
	alice, bob := joinTwo(svc)
	startClassic(t, svc, alice)

	// Bob reconnects mid-game; the new connection takes over his identity.
	bob2 := NewConn(bob.ID, "Bob", nil)
	svc.Join("ABC", bob2)

	// The old handler's disconnect sweep fires after the takeover. It must
	// not evict the successor connection, the seat, or the room.
	svc.Disconnect(bob)

	r, ok := svc.Store().Get("ABC")
	require.True(t, ok)
	r.Mu.Lock()
	assert.Len(t, r.Players, 2)
	assert.Same(t, bob2, r.Members[bob.ID])
	_, hasScore := r.Scores[bob.ID]
	assert.True(t, hasScore)
	assert.True(t, r.Started)
	r.Mu.Unlock()

	// A sweep for the live connection still removes it.
	svc.Disconnect(bob2)
	r.Mu.Lock()
	defer r.Mu.Unlock()
	assert.Len(t, r.Players, 1)
	assert.NotContains(t, r.Members, bob.ID)
}

func TestDeleteIfEmptySparesRaceJoinedRoom(t *testing.T) {
	store := NewStore()
	id := uuid.New()

	r := store.GetOrCreate("K", id)
	require.Equal(t, 1, store.Len())

	// A player seated between the caller's emptiness check and the store
	// taking its lock keeps the room alive.
	r.Mu.Lock()
	r.Players = append(r.Players, &models.Player{ID: id, Pseudo: "Alice"})
	r.Mu.Unlock()
	assert.False(t, store.DeleteIfEmpty("K"))
	assert.Equal(t, 1, store.Len())

	r.Mu.Lock()
	r.Players = nil
	r.Mu.Unlock()
	assert.True(t, store.DeleteIfEmpty("K"))
	assert.Equal(t, 0, store.Len())

	assert.False(t, store.DeleteIfEmpty("K"))
}

func TestLeaveDuringSuspendedEvaluationReopensRound(t *testing.T) {
	oracle := &fakeOracle{
		available:    true,
		prompts:      []string{"Name something round.", "Name something blue."},
		matchResult:  true,
		matchEntered: make(chan struct{}),
		matchGate:    make(chan struct{}),
	}
	svc := newTestService(t, oracle, 2)
	alice, bob := joinTwo(svc)

	svc.StartGame(context.Background(), "ABC", alice.ID, StartOptions{Mode: "ai", Theme: "shapes"})
	drain(alice)
	drain(bob)

	svc.SubmitAnswer(context.Background(), "ABC", alice.ID, "the sun")
	done := make(chan struct{})
	go func() {
		svc.SubmitAnswer(context.Background(), "ABC", bob.ID, "a wheel")
		close(done)
	}()

	// The evaluation is suspended inside the verdict call; Alice leaves.
	<-oracle.matchEntered
	svc.Leave("ABC", alice.ID)
	close(oracle.matchGate)
	<-done

	r, ok := svc.Store().Get("ABC")
	require.True(t, ok)
	r.Mu.Lock()
	defer r.Mu.Unlock()
	// The stale evaluation discarded itself without scoring, and the round
	// stays open for a refilled seat instead of being marked resolved.
	assert.False(t, r.resolved)
	assert.False(t, r.busy)
	assert.Equal(t, 0, r.Scores[bob.ID])
	assert.Nil(t, lastOfType(drain(bob), "round-result"))
}

func TestSinglePlayerCannotAdvanceAlone(t *testing.T) {
	svc := newTestService(t, &fakeOracle{}, 3)
	alice, bob := joinTwo(svc)
	startClassic(t, svc, alice)
	svc.Leave("ABC", bob.ID)
	drain(alice)

	// The game stays in progress but parks: with one seat empty neither a
	// round resolution nor the ready barrier can complete.
	svc.SubmitAnswer(context.Background(), "ABC", alice.ID, "pizza")
	assert.Nil(t, lastOfType(drain(alice), "round-result"))

	svc.AdvanceRound("ABC", alice.ID)
	msgs := drain(alice)
	assert.Nil(t, lastOfType(msgs, "new-round"))
	assert.Nil(t, lastOfType(msgs, "game-over"))

	r, _ := svc.Store().Get("ABC")
	r.Mu.Lock()
	defer r.Mu.Unlock()
	assert.True(t, r.Started)
}

func TestRejoinResyncsRunningGame(t *testing.T) {
	svc := newTestService(t, &fakeOracle{}, 3)
	alice, bob := joinTwo(svc)
	startClassic(t, svc, alice)
	drain(alice)
	drain(bob)

	// Bob reconnects with the same identity mid-game.
	bob2 := NewConn(bob.ID, "Bob", nil)
	svc.Join("ABC", bob2)
	msgs := drain(bob2)

	started := lastOfType(msgs, "game-started")
	require.NotNil(t, started)
	assert.Equal(t, 1, started["round"])
	require.NotNil(t, lastOfType(msgs, "scores-update"))

	r, _ := svc.Store().Get("ABC")
	r.Mu.Lock()
	defer r.Mu.Unlock()
	// Still two players, no duplicate seat.
	assert.Len(t, r.Players, 2)
	assert.Len(t, r.Members, 2)
}

func TestChatMessagePayload(t *testing.T) {
	svc := newTestService(t, &fakeOracle{}, 3)
	_, bob := joinTwo(svc)

	svc.PostChat("ABC", "Alice", "hello there")
	msg := lastOfType(drain(bob), "chat-message")
	require.NotNil(t, msg)
	assert.Equal(t, "Alice", msg["pseudo"])
	assert.Equal(t, "hello there", msg["message"])
	assert.NotEmpty(t, msg["id"])
	assert.NotNil(t, msg["timestamp"])
}
