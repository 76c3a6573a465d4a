// internal/room/store.go
package room

import (
	"sync"

	"github.com/google/uuid"
)

// Store manages all live rooms in memory, keyed by room key. It is owned by
// the gateway server and injected into the session service; there is no
// package-level instance.
type Store struct {
	mu    sync.Mutex
	rooms map[string]*Room
}

// NewStore returns an empty in-memory room store.
func NewStore() *Store {
	return &Store{
		rooms: make(map[string]*Room),
	}
}

// GetOrCreate returns the room for key, creating it lazily with creator as
// its privileged member.
func (s *Store) GetOrCreate(key string, creator uuid.UUID) *Room {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.rooms[key]
	if !ok {
		r = newRoom(key, creator)
		s.rooms[key] = r
	}
	return r
}

// Get retrieves a room if it exists.
func (s *Store) Get(key string) (*Room, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.rooms[key]
	return r, ok
}

// DeleteIfEmpty removes the room for key only if it still has no seated
// players, re-checking under both the store lock and the room lock. A caller
// that saw an empty roster may have been raced by a join that seated a new
// player; the room survives in that case.
func (s *Store) DeleteIfEmpty(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.rooms[key]
	if !ok {
		return false
	}
	r.Mu.Lock()
	empty := len(r.Players) == 0
	r.Mu.Unlock()
	if empty {
		delete(s.rooms, key)
	}
	return empty
}

// Rooms returns a snapshot of all live rooms, for iteration without holding
// the store lock.
func (s *Store) Rooms() []*Room {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*Room, 0, len(s.rooms))
	for _, r := range s.rooms {
		out = append(out, r)
	}
	return out
}

// Len reports how many rooms are live.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.rooms)
}
