// internal/handlers/server.go
package handlers

import (
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/guesslink/guesslink/internal/config"
	"github.com/guesslink/guesslink/internal/room"
)

// Server holds the shared state the HTTP and WebSocket handlers dispatch
// into: the room session coordinator, config and the logger.
type Server struct {
	Rooms *room.Service
	Cfg   *config.Config
	Log   *logrus.Logger
}

func NewServer(rooms *room.Service, cfg *config.Config, log *logrus.Logger) *Server {
	return &Server{
		Rooms: rooms,
		Cfg:   cfg,
		Log:   log,
	}
}

// Router builds the HTTP mux for the service.
func (s *Server) Router() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.PingHandler)
	mux.HandleFunc("/health", s.HealthHandler)
	mux.HandleFunc("/ws", s.RoomWSHandler())
	return mux
}

// PingHandler is a trivial liveness endpoint.
func (s *Server) PingHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("pong"))
}

// HealthHandler reports process health plus current room occupancy.
func (s *Server) HealthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}
