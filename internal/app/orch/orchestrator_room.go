package orch

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/dkeye/chatrooms/internal/core"
	"github.com/dkeye/chatrooms/internal/domain"
)

const CodeAccessForbidden = "access-forbidden"

// Connect records a fresh, unbound connection. Nothing is broadcast.
func (o *Orchestrator) Connect(sid core.ConnectionID, conn core.Connection) {
	o.Registry.Register(sid, conn)
	if o.Metrics != nil {
		o.Metrics.ConnectionsActive.Inc()
	}
}

// Join binds sid to p.RoomID and announces the room's presence snapshot.
// An unknown room terminates the connection and returns ErrForbiddenAccess.
func (o *Orchestrator) Join(sid core.ConnectionID, p domain.Participant) error {
	room, ok := o.Rooms.Get(p.RoomID)
	if !ok {
		o.rejectJoin(sid, p.RoomID)
		return fmt.Errorf("join %q: %w", p.RoomID, domain.ErrForbiddenAccess)
	}

	conn, _ := o.Registry.Connection(sid)
	res, err := room.Join(sid, p, conn)
	if err != nil {
		// closed between lookup and join; the previous binding is left for OnDisconnect
		o.rejectJoin(sid, p.RoomID)
		return fmt.Errorf("join %q: %w", p.RoomID, err)
	}

	if prev, ok := o.Registry.RoomOf(sid); ok && prev != room {
		left, _ := prev.Disconnect(sid)
		o.applyPolicy(prev, left)
		log.Info().Str("module", "orch").Str("sid", string(sid)).Str("from_room", string(prev.Room().ID)).Msg("left previous room")
	}
	o.Registry.Bind(sid, room)
	o.applyPolicy(room, res)
	log.Info().Str("module", "orch").Str("sid", string(sid)).Str("room", string(p.RoomID)).Msg("added to room")
	return nil
}

func (o *Orchestrator) rejectJoin(sid core.ConnectionID, id domain.RoomID) {
	log.Error().Str("module", "orch").Str("sid", string(sid)).Str("room", string(id)).
		Msg("room was not found, disconnecting the participant")
	if o.Metrics != nil {
		o.Metrics.JoinsRejected.Inc()
	}
	o.terminate(sid, CodeAccessForbidden, domain.ErrForbiddenAccess.Error())
}

// OnDisconnect marks sid disconnected in its bound room, if any.
// Unknown or never-joined connections are a silent no-op.
func (o *Orchestrator) OnDisconnect(sid core.ConnectionID) {
	room, existed := o.Registry.Unregister(sid)
	if existed && o.Metrics != nil {
		o.Metrics.ConnectionsActive.Dec()
	}
	if room == nil {
		return
	}
	res, ok := room.Disconnect(sid)
	if !ok {
		return
	}
	o.applyPolicy(room, res)
}

func (o *Orchestrator) CreateRoom(id domain.RoomID, creator string) error {
	if _, err := o.Rooms.Create(id, creator); err != nil {
		return err
	}
	o.syncRoomGauge()
	return nil
}

// CloseRoom removes the room and every binding that still points at it.
// Connections stay open.
func (o *Orchestrator) CloseRoom(id domain.RoomID) error {
	if err := o.Rooms.Close(id); err != nil {
		return err
	}
	n := o.Registry.UnbindStopped(id)
	o.syncRoomGauge()
	log.Info().Str("module", "orch").Str("room", string(id)).Int("unbound", n).Msg("room evicted")
	return nil
}

func (o *Orchestrator) syncRoomGauge() {
	if o.Metrics != nil {
		o.Metrics.RoomsActive.Set(float64(o.Rooms.Len()))
	}
}

// Room returns room info. Absence is reported as ErrForbiddenAccess so that
// readers cannot tell unknown rooms from inaccessible ones.
func (o *Orchestrator) Room(id domain.RoomID) (core.RoomInfo, error) {
	room, err := o.readable(id)
	if err != nil {
		return core.RoomInfo{}, err
	}
	return room.Info(), nil
}

func (o *Orchestrator) ListRooms() []core.RoomInfo {
	return o.Rooms.List()
}

func (o *Orchestrator) Participants(id domain.RoomID) ([]domain.Participant, error) {
	room, err := o.readable(id)
	if err != nil {
		return nil, err
	}
	return room.Participants(), nil
}

func (o *Orchestrator) readable(id domain.RoomID) (core.RoomService, error) {
	room, ok := o.Rooms.Get(id)
	if !ok {
		return nil, fmt.Errorf("room %q: %w", id, domain.ErrForbiddenAccess)
	}
	return room, nil
}
