package core

import (
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/dkeye/chatrooms/internal/domain"
)

// roomImpl is a threadsafe in-memory room.
// It never closes adapter-owned resources.
type roomImpl struct {
	room *domain.Room

	mu           sync.Mutex
	stopped      bool
	history      MessageLog
	participants *ParticipantRegistry
	presence     *Topic
	messages     *Topic
}

func NewRoomService(room *domain.Room) RoomService {
	return &roomImpl{
		room:         room,
		participants: NewParticipantRegistry(),
		presence:     NewTopic(PresenceTopic(room.ID)),
		messages:     NewTopic(MessageTopic(room.ID)),
	}
}

func (r *roomImpl) Room() *domain.Room { return r.room }

func (r *roomImpl) Info() RoomInfo {
	r.mu.Lock()
	defer r.mu.Unlock()
	return RoomInfo{
		ID:           r.room.ID,
		CreatedBy:    r.room.CreatedBy,
		CreatedAt:    r.room.CreatedAt,
		Participants: r.participants.Len(),
		Connected:    r.participants.ConnectedCount(),
		Messages:     r.history.Len(),
	}
}

func (r *roomImpl) Participants() []domain.Participant {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.participants.Snapshot()
}

func (r *roomImpl) Messages(from, to int) []domain.MessageView {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.history.Range(from, to)
}

func (r *roomImpl) Join(cid ConnectionID, p domain.Participant, conn Connection) (PublishResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.stopped {
		return PublishResult{}, domain.ErrForbiddenAccess
	}
	p.RoomID = r.room.ID
	r.participants.Upsert(cid, p)
	r.presence.Subscribe(cid, conn)
	r.messages.Subscribe(cid, conn)
	res := r.presence.Publish(r.participants.Snapshot())
	log.Info().Str("module", "core.room").Str("room", string(r.room.ID)).Str("sid", string(cid)).
		Str("username", p.Username).Int("sent_to", res.SendTo).Msg("participant joined")
	return res, nil
}

func (r *roomImpl) Disconnect(cid ConnectionID) (PublishResult, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.presence.Unsubscribe(cid)
	r.messages.Unsubscribe(cid)
	if r.stopped || !r.participants.MarkDisconnected(cid) {
		return PublishResult{}, false
	}
	res := r.presence.Publish(r.participants.Snapshot())
	log.Info().Str("module", "core.room").Str("room", string(r.room.ID)).Str("sid", string(cid)).
		Int("sent_to", res.SendTo).Msg("participant disconnected")
	return res, true
}

func (r *roomImpl) Post(cid ConnectionID, m domain.Message) (domain.MessageView, PublishResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.stopped || !r.participants.IsConnected(cid) {
		return domain.MessageView{}, PublishResult{}, domain.ErrForbiddenAccess
	}
	v := r.history.Append(m)
	res := r.messages.Publish(v)
	log.Debug().Str("module", "core.room").Str("room", string(r.room.ID)).Str("from", string(cid)).
		Int("order", v.Order).Int("sent_to", res.SendTo).Int("dropped", len(res.Dropped)).Msg("broadcast result")
	return v, res, nil
}

// Stop detaches every subscriber. A stopped room rejects joins and posts.
func (r *roomImpl) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stopped = true
	r.presence.Clear()
	r.messages.Clear()
}

func (r *roomImpl) Stopped() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.stopped
}
