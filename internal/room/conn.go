// internal/room/conn.go
package room

import (
	"context"
	"log"

	"github.com/google/uuid"
)

// Conn is a single client's presence in the gateway: a stable connection id,
// the display name it joined with, and a buffered outbound queue drained by
// the transport's write pump.
type Conn struct {
	ID     uuid.UUID
	Pseudo string
	Cancel context.CancelFunc
	// OutChan carries outbound events. Writes never block; a full or closed
	// channel drops the message.
	OutChan chan map[string]interface{}
}

// NewConn builds a connection with a buffered outbound queue.
func NewConn(id uuid.UUID, pseudo string, cancel context.CancelFunc) *Conn {
	return &Conn{
		ID:      id,
		Pseudo:  pseudo,
		Cancel:  cancel,
		OutChan: make(chan map[string]interface{}, 16),
	}
}

// Write pushes a message onto the connection's OutChan non-blockingly.
func (c *Conn) Write(msg map[string]interface{}) {
	select {
	case c.OutChan <- msg:
	default:
		msgType, _ := msg["type"].(string)
		log.Printf("conn %s: OutChan closed or full, dropped message type %q", c.ID, msgType)
	}
}

// WriteError sends a structured error event to this connection only.
func (c *Conn) WriteError(message string) {
	c.Write(map[string]interface{}{
		"type":    "error",
		"message": message,
	})
}
