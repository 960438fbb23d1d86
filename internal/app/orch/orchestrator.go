package orch

import (
	"time"

	"github.com/rs/zerolog/log"

	"github.com/dkeye/chatrooms/internal/app"
	"github.com/dkeye/chatrooms/internal/core"
)

// Orchestrator is the real-time hub: it routes connection events to rooms
// and applies the backpressure policy to whatever a room could not deliver.
type Orchestrator struct {
	Registry *app.Registry
	Rooms    core.RoomStore
	Policy   app.Policy
	Metrics  *app.Metrics
	Now      func() time.Time
}

func (o *Orchestrator) now() time.Time {
	if o.Now != nil {
		return o.Now()
	}
	return time.Now()
}

func (o *Orchestrator) applyPolicy(room core.RoomService, res core.PublishResult) {
	if len(res.Dropped) == 0 {
		return
	}
	if o.Metrics != nil {
		o.Metrics.BroadcastDropped.Add(float64(len(res.Dropped)))
	}
	if o.Policy == nil {
		return
	}
	for _, slow := range res.Dropped {
		switch o.Policy.OnBackPressure(room, slow) {
		case app.KickMember:
			o.KickBySID(slow)
		case app.DropFrame:
			log.Debug().Str("module", "orch").Str("sid", string(slow)).Msg("frame dropped")
		}
	}
}

// KickBySID closes the transport of sid; its disconnect arrives through OnDisconnect.
func (o *Orchestrator) KickBySID(sid core.ConnectionID) {
	conn, ok := o.Registry.Connection(sid)
	if !ok {
		return
	}
	log.Warn().Str("module", "orch").Str("sid", string(sid)).Msg("kicking slow connection")
	conn.Close()
}

// terminate sends one error frame and closes the connection.
func (o *Orchestrator) terminate(sid core.ConnectionID, code, message string) {
	conn, ok := o.Registry.Connection(sid)
	if !ok {
		return
	}
	if frame, err := core.EncodeError(code, message); err == nil {
		_ = conn.TrySend(frame)
	}
	conn.Close()
}
