package handlers

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guesslink/guesslink/internal/config"
	"github.com/guesslink/guesslink/internal/questions"
	"github.com/guesslink/guesslink/internal/room"
)

func newTestServer() *Server {
	log := logrus.New()
	log.SetOutput(io.Discard)
	svc := room.NewService(room.NewStore(), questions.Default(), nil, log)
	return NewServer(svc, &config.Config{AllowedOrigin: "http://localhost:5173"}, log)
}

func TestPingAndHealth(t *testing.T) {
	srv := newTestServer()
	ts := httptest.NewServer(srv.Router())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp2, err := http.Get(ts.URL + "/health")
	require.NoError(t, err)
	defer resp2.Body.Close()
	assert.Equal(t, http.StatusOK, resp2.StatusCode)
	assert.Equal(t, "application/json", resp2.Header.Get("Content-Type"))
}

func drainConn(c *room.Conn) []map[string]interface{} {
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

func TestRoomlessEventsAreSilentlyDropped(t *testing.T) {
	srv := newTestServer()
	conn := room.NewConn(uuid.New(), "Alice", nil)
	joined := ""

	// Game events before any join-room are no-ops, not error unicasts.
	srv.handleMessage(map[string]interface{}{"type": "start-game"}, conn, &joined)
	srv.handleMessage(map[string]interface{}{"type": "submit-answer", "answer": "x"}, conn, &joined)
	srv.handleMessage(map[string]interface{}{"type": "next-round"}, conn, &joined)
	srv.handleMessage(map[string]interface{}{"type": "chat-message", "message": "hi"}, conn, &joined)
	srv.handleMessage(map[string]interface{}{"type": "leave-room"}, conn, &joined)

	assert.Empty(t, drainConn(conn))
	assert.Equal(t, "", joined)
	assert.Equal(t, 0, srv.Rooms.Store().Len())

	// Unknown actions still get an error back.
	srv.handleMessage(map[string]interface{}{"type": "bogus"}, conn, &joined)
	msgs := drainConn(conn)
	require.Len(t, msgs, 1)
	assert.Equal(t, "error", msgs[0]["type"])
}

func TestOriginPatterns(t *testing.T) {
	srv := newTestServer()
	assert.Equal(t, []string{"localhost:5173"}, srv.originPatterns())

	srv.Cfg.AllowedOrigin = "*"
	assert.Equal(t, []string{"*"}, srv.originPatterns())

	srv.Cfg.AllowedOrigin = "https://guesslink.app"
	assert.Equal(t, []string{"guesslink.app"}, srv.originPatterns())
}
