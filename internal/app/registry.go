package app

import (
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/dkeye/chatrooms/internal/core"
	"github.com/dkeye/chatrooms/internal/domain"
)

// sessionEntry is the per-connection state: its transport endpoint and the
// room it is currently bound to (nil before the first join).
type sessionEntry struct {
	Conn core.Connection
	Room core.RoomService
}

// Registry binds live connections to at most one room each.
// It holds room references, never ownership; the RoomStore owns rooms.
type Registry struct {
	mu       sync.RWMutex
	sessions map[core.ConnectionID]*sessionEntry
}

func NewRegistry() *Registry {
	return &Registry{
		sessions: make(map[core.ConnectionID]*sessionEntry),
	}
}

func (r *Registry) Register(sid core.ConnectionID, conn core.Connection) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[sid] = &sessionEntry{Conn: conn}
	log.Info().Str("module", "app.registry").Str("sid", string(sid)).Msg("registered connection")
}

// Bind records the room of sid; last write wins.
func (r *Registry) Bind(sid core.ConnectionID, room core.RoomService) {
	r.mu.Lock()
	defer r.mu.Unlock()
	entry, ok := r.sessions[sid]
	if !ok {
		entry = &sessionEntry{}
		r.sessions[sid] = entry
	}
	entry.Room = room
	log.Info().Str("module", "app.registry").Str("sid", string(sid)).Str("room", string(room.Room().ID)).Msg("bound room")
}

func (r *Registry) Resolve(sid core.ConnectionID) (domain.RoomID, bool) {
	room, ok := r.RoomOf(sid)
	if !ok {
		return "", false
	}
	return room.Room().ID, true
}

// RoomOf returns the room instance sid is bound to.
func (r *Registry) RoomOf(sid core.ConnectionID) (core.RoomService, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	entry, ok := r.sessions[sid]
	if !ok || entry.Room == nil {
		return nil, false
	}
	return entry.Room, true
}

func (r *Registry) Connection(sid core.ConnectionID) (core.Connection, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	entry, ok := r.sessions[sid]
	if !ok || entry.Conn == nil {
		return nil, false
	}
	return entry.Conn, true
}

// Unregister drops sid and returns the room it was bound to, if any.
func (r *Registry) Unregister(sid core.ConnectionID) (room core.RoomService, existed bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	entry, ok := r.sessions[sid]
	if !ok {
		return nil, false
	}
	delete(r.sessions, sid)
	log.Info().Str("module", "app.registry").Str("sid", string(sid)).Msg("unregistered connection")
	return entry.Room, true
}

// UnbindStopped clears every binding that points at a stopped instance of id.
// Bindings to a room recreated under the same id are kept.
func (r *Registry) UnbindStopped(id domain.RoomID) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for sid, entry := range r.sessions {
		if entry.Room == nil || entry.Room.Room().ID != id || !entry.Room.Stopped() {
			continue
		}
		entry.Room = nil
		n++
		log.Info().Str("module", "app.registry").Str("sid", string(sid)).Str("room", string(id)).Msg("removed room association")
	}
	return n
}

func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}
