package app

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"

	"github.com/dkeye/chatrooms/internal/core"
	"github.com/dkeye/chatrooms/internal/domain"
)

type RoomManagerImpl struct {
	mu    sync.RWMutex
	rooms map[domain.RoomID]core.RoomService
	now   func() time.Time
}

func NewRoomManager() core.RoomStore {
	return &RoomManagerImpl{
		rooms: make(map[domain.RoomID]core.RoomService),
		now:   time.Now,
	}
}

// Create checks for the id and inserts under one write lock, so two racing
// creates for the same id never both succeed.
func (f *RoomManagerImpl) Create(id domain.RoomID, createdBy string) (core.RoomService, error) {
	meta, err := domain.NewRoom(id, createdBy, f.now())
	if err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.rooms[id]; ok {
		return nil, fmt.Errorf("room %q: %w", id, domain.ErrRoomConflict)
	}
	room := core.NewRoomService(meta)
	f.rooms[id] = room
	log.Info().Str("module", "app.rooms").Str("room", string(id)).Str("created_by", createdBy).Msg("room created")
	return room, nil
}

// Close removes the room and stops it while still holding the store lock, so
// a room recreated under the same id never shares subscribers with the old one.
func (f *RoomManagerImpl) Close(id domain.RoomID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	room, ok := f.rooms[id]
	if !ok {
		return fmt.Errorf("room %q: %w", id, domain.ErrRoomNotFound)
	}
	delete(f.rooms, id)
	room.Stop()
	log.Info().Str("module", "app.rooms").Str("room", string(id)).Msg("room closed")
	return nil
}

func (f *RoomManagerImpl) Get(id domain.RoomID) (core.RoomService, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	room, ok := f.rooms[id]
	return room, ok
}

func (f *RoomManagerImpl) List() []core.RoomInfo {
	f.mu.RLock()
	rooms := lo.Values(f.rooms)
	f.mu.RUnlock()

	out := lo.Map(rooms, func(r core.RoomService, _ int) core.RoomInfo { return r.Info() })
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (f *RoomManagerImpl) Len() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return len(f.rooms)
}
