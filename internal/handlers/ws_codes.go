// internal/handlers/ws_codes.go
package handlers

// Custom WebSocket close codes used by the room gateway. These provide more
// specific reasons for closure than the standard codes.
const (
	BadSubprotocolError   = 3000 // Client connected with an unsupported subprotocol.
	InvalidAuthTokenError = 3001 // Guest token could not be issued or verified.
)
