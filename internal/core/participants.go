package core

import (
	"github.com/samber/lo"

	"github.com/dkeye/chatrooms/internal/domain"
)

// ParticipantRegistry maps connection identity to presence within one room.
// Entries are never removed; disconnects only clear the Connected flag.
// Not safe for concurrent use; the owning room serialises access.
type ParticipantRegistry struct {
	byConn map[ConnectionID]domain.Participant
	order  []ConnectionID
}

func NewParticipantRegistry() *ParticipantRegistry {
	return &ParticipantRegistry{byConn: make(map[ConnectionID]domain.Participant)}
}

func (r *ParticipantRegistry) Upsert(cid ConnectionID, p domain.Participant) {
	p.Connected = true
	if _, ok := r.byConn[cid]; !ok {
		r.order = append(r.order, cid)
	}
	r.byConn[cid] = p
}

// MarkDisconnected reports whether cid was known to this room.
func (r *ParticipantRegistry) MarkDisconnected(cid ConnectionID) bool {
	p, ok := r.byConn[cid]
	if !ok {
		return false
	}
	p.Connected = false
	r.byConn[cid] = p
	return true
}

func (r *ParticipantRegistry) IsConnected(cid ConnectionID) bool {
	p, ok := r.byConn[cid]
	return ok && p.Connected
}

func (r *ParticipantRegistry) Len() int { return len(r.order) }

func (r *ParticipantRegistry) ConnectedCount() int {
	return lo.CountBy(r.order, func(cid ConnectionID) bool { return r.byConn[cid].Connected })
}

// Snapshot copies every participant ever seen, in first-join order.
func (r *ParticipantRegistry) Snapshot() []domain.Participant {
	return lo.Map(r.order, func(cid ConnectionID, _ int) domain.Participant { return r.byConn[cid] })
}
