package orch

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/dkeye/chatrooms/internal/core"
	"github.com/dkeye/chatrooms/internal/domain"
)

// OnMessage appends m to the room sid is bound to and fans its view out.
// A declared RoomID must match the binding; empty means the bound room.
// Messages for unbound connections or closed rooms are rejected and dropped.
func (o *Orchestrator) OnMessage(sid core.ConnectionID, m domain.Message) (domain.MessageView, error) {
	room, ok := o.Registry.RoomOf(sid)
	if !ok {
		log.Warn().Str("module", "orch").Str("sid", string(sid)).Str("room", string(m.RoomID)).Msg("message from unbound connection")
		return domain.MessageView{}, fmt.Errorf("message from %s: %w", sid, domain.ErrForbiddenAccess)
	}
	bound := room.Room().ID
	if m.RoomID != "" && m.RoomID != bound {
		log.Warn().Str("module", "orch").Str("sid", string(sid)).Str("room", string(m.RoomID)).
			Str("bound_room", string(bound)).Msg("message for a room the connection is not bound to")
		return domain.MessageView{}, fmt.Errorf("message for %q: %w", m.RoomID, domain.ErrForbiddenAccess)
	}
	m.RoomID = bound
	m.ConnectionID = string(sid)
	if m.CreatedAt.IsZero() {
		m.CreatedAt = o.now()
	}

	v, res, err := room.Post(sid, m)
	if err != nil {
		return domain.MessageView{}, fmt.Errorf("message for %q: %w", bound, err)
	}
	if o.Metrics != nil {
		o.Metrics.MessagesTotal.Inc()
	}
	o.applyPolicy(room, res)
	return v, nil
}

// Messages reads the inclusive [from, to] order range of a room.
func (o *Orchestrator) Messages(id domain.RoomID, from, to int) ([]domain.MessageView, error) {
	if from <= 0 || to <= 0 {
		return nil, fmt.Errorf("%w: 'fromIndex' and 'toIndex' must be positive", domain.ErrInvalidRange)
	}
	if from > to {
		return nil, fmt.Errorf("%w: 'toIndex' must not be less than 'fromIndex'", domain.ErrInvalidRange)
	}
	room, err := o.readable(id)
	if err != nil {
		return nil, err
	}
	return room.Messages(from, to), nil
}
