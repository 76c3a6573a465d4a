// internal/handlers/ws.go
package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/coder/websocket"
	"github.com/sirupsen/logrus"

	"github.com/guesslink/guesslink/internal/auth"
	"github.com/guesslink/guesslink/internal/middleware"
	"github.com/guesslink/guesslink/internal/room"
)

// RoomWSHandler upgrades the connection and runs the read/write pumps. The
// guest cookie is issued before the upgrade because headers cannot be set
// afterwards.
func (s *Server) RoomWSHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		remoteAddr := r.RemoteAddr

		guestID, err := auth.EnsureGuest(w, r)
		if err != nil {
			s.Log.Warnf("guest auth failed: %v", err)
			http.Error(w, "authentication failed", http.StatusInternalServerError)
			return
		}

		c, err := websocket.Accept(w, r, &websocket.AcceptOptions{
			Subprotocols:   []string{"guesslink"},
			OriginPatterns: s.originPatterns(),
		})
		if err != nil {
			s.Log.Warnf("websocket accept error: %v", err)
			return
		}
		defer c.Close(websocket.StatusInternalError, "handler finished")

		if c.Subprotocol() != "guesslink" {
			c.Close(BadSubprotocolError, "client must speak the guesslink subprotocol")
			return
		}

		ctx, cancel := context.WithCancel(r.Context())
		defer cancel()
		conn := room.NewConn(guestID, "", cancel)

		middleware.LogWebSocketConnect(s.Log, remoteAddr, "")

		go writePump(ctx, c, conn, s.Log)
		readErr := s.readPump(ctx, c, conn)

		// The sweep covers whichever room the connection joined. It passes
		// the *Conn so a reconnect that replaced this connection under the
		// same guest id is left untouched.
		s.Rooms.Disconnect(conn)
		middleware.LogWebSocketDisconnect(s.Log, remoteAddr, "", readErr)
	}
}

func (s *Server) originPatterns() []string {
	origin := s.Cfg.AllowedOrigin
	if origin == "" || origin == "*" {
		return []string{"*"}
	}
	// websocket.AcceptOptions matches on host patterns, not full URLs.
	host := strings.TrimPrefix(strings.TrimPrefix(origin, "https://"), "http://")
	return []string{host}
}

// readPump decodes incoming events and dispatches them to the room service.
// It blocks until the connection closes or the context is cancelled.
func (s *Server) readPump(ctx context.Context, c *websocket.Conn, conn *room.Conn) error {
	// The room the connection most recently joined. Only the pump goroutine
	// touches it.
	var joinedRoom string

	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		typ, msg, err := c.Read(ctx)
		if err != nil {
			closeStatus := websocket.CloseStatus(err)
			if closeStatus == websocket.StatusNormalClosure || closeStatus == websocket.StatusGoingAway {
				return nil
			}
			if strings.Contains(err.Error(), "context canceled") {
				return nil
			}
			return err
		}
		if typ != websocket.MessageText {
			continue
		}

		var packet map[string]interface{}
		if err := json.Unmarshal(msg, &packet); err != nil {
			conn.WriteError("Invalid JSON format")
			continue
		}

		s.handleMessage(packet, conn, &joinedRoom)
	}
}

// handleMessage dispatches one decoded event to the room service. Events
// that reference a room before one was joined are dropped silently, matching
// how the session operations themselves treat protocol misuse.
func (s *Server) handleMessage(packet map[string]interface{}, conn *room.Conn, joinedRoom *string) {
	action, _ := packet["type"].(string)
	switch action {
	case "join-room":
		key, _ := packet["roomId"].(string)
		pseudo, _ := packet["pseudo"].(string)
		if key == "" {
			conn.WriteError("roomId is required")
			return
		}
		if pseudo != "" {
			conn.Pseudo = pseudo
		}
		if *joinedRoom != "" && *joinedRoom != key {
			s.Rooms.Leave(*joinedRoom, conn.ID)
		}
		*joinedRoom = key
		s.Rooms.Join(key, conn)

	case "start-game":
		if *joinedRoom == "" {
			return
		}
		opts := room.StartOptions{}
		if o, ok := packet["options"].(map[string]interface{}); ok {
			opts.Mode, _ = o["mode"].(string)
			opts.Theme, _ = o["theme"].(string)
			opts.Difficulty, _ = o["difficulty"].(string)
		}
		s.Rooms.StartGame(context.Background(), *joinedRoom, conn.ID, opts)

	case "submit-answer":
		if *joinedRoom == "" {
			return
		}
		answer, _ := packet["answer"].(string)
		s.Rooms.SubmitAnswer(context.Background(), *joinedRoom, conn.ID, answer)

	case "next-round":
		if *joinedRoom == "" {
			return
		}
		s.Rooms.AdvanceRound(*joinedRoom, conn.ID)

	case "chat-message":
		if *joinedRoom == "" {
			return
		}
		pseudo, _ := packet["pseudo"].(string)
		if pseudo == "" {
			pseudo = conn.Pseudo
		}
		text, _ := packet["message"].(string)
		s.Rooms.PostChat(*joinedRoom, pseudo, text)

	case "leave-room":
		if *joinedRoom != "" {
			s.Rooms.Leave(*joinedRoom, conn.ID)
			*joinedRoom = ""
		}

	default:
		conn.WriteError("Unknown action type: " + action)
	}
}

// writePump drains the connection's outbound queue onto the wire and keeps
// the connection alive with periodic pings.
func writePump(ctx context.Context, c *websocket.Conn, conn *room.Conn, logger *logrus.Logger) {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-conn.OutChan:
			if !ok {
				return
			}
			data, err := json.Marshal(msg)
			if err != nil {
				logger.Warnf("failed to marshal outgoing msg for %v: %v", conn.ID, err)
				continue
			}

			writeCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
			err = c.Write(writeCtx, websocket.MessageText, data)
			cancel()
			if err != nil {
				logger.Warnf("failed to write to websocket for %v: %v", conn.ID, err)
				return
			}
		case <-ticker.C:
			pingCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
			err := c.Ping(pingCtx)
			cancel()
			if err != nil {
				logger.Warnf("ping failed for %v, assuming disconnect: %v", conn.ID, err)
				return
			}
		}
	}
}
