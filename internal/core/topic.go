package core

import (
	"github.com/rs/zerolog/log"
)

// Topic is a named fan-out set of connections.
// Not safe for concurrent use; the owning room serialises access.
type Topic struct {
	name string
	subs map[ConnectionID]Connection
}

func NewTopic(name string) *Topic {
	return &Topic{name: name, subs: make(map[ConnectionID]Connection)}
}

func (t *Topic) Name() string { return t.name }
func (t *Topic) Len() int     { return len(t.subs) }

func (t *Topic) Subscribe(cid ConnectionID, c Connection) {
	if c == nil {
		return
	}
	t.subs[cid] = c
}

func (t *Topic) Unsubscribe(cid ConnectionID) {
	delete(t.subs, cid)
}

func (t *Topic) Has(cid ConnectionID) bool {
	_, ok := t.subs[cid]
	return ok
}

func (t *Topic) Clear() {
	clear(t.subs)
}

// Publish encodes data once and offers it to every subscriber without blocking.
func (t *Topic) Publish(data any) PublishResult {
	res := PublishResult{}
	if len(t.subs) == 0 {
		return res
	}
	frame, err := EncodeEvent(t.name, data)
	if err != nil {
		log.Error().Err(err).Str("module", "core.topic").Str("topic", t.name).Msg("encode event")
		return res
	}
	for cid, c := range t.subs {
		if err := c.TrySend(frame); err != nil {
			res.Dropped = append(res.Dropped, cid)
			continue
		}
		res.SendTo++
	}
	return res
}
