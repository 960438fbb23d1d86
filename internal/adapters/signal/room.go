package signal

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/dkeye/chatrooms/internal/app/orch"
	"github.com/dkeye/chatrooms/internal/core"
	"github.com/dkeye/chatrooms/internal/domain"
)

type joinPayload struct {
	RoomID   string `json:"roomId" validate:"required,max=64"`
	Username string `json:"username" validate:"required,max=36"`
	Avatar   string `json:"avatar" validate:"max=2048"`
}

type exchangePayload struct {
	RoomID    string     `json:"roomId" validate:"max=64"`
	Username  string     `json:"username" validate:"required,max=36"`
	Avatar    string     `json:"avatar" validate:"max=2048"`
	Content   string     `json:"content" validate:"required,max=4096"`
	CreatedAt *time.Time `json:"createdAt"`
}

func (ctl *SignalWSController) handleJoin(sid core.ConnectionID, conn *WsSignalConn, data []byte) {
	var p joinPayload
	if err := ctl.decode(data, &p); err != nil {
		log.Error().Err(err).Str("module", "signal").Str("sid", string(sid)).Msg("bad join payload")
		ctl.sendError(conn, CodeValidation, err.Error())
		return
	}

	log.Info().Str("module", "signal").Str("sid", string(sid)).Str("room", p.RoomID).Str("username", p.Username).Msg("join")
	// The hub terminates the connection itself when the room is unknown.
	if err := ctl.Orch.Join(sid, domain.Participant{
		RoomID:   domain.RoomID(p.RoomID),
		Username: p.Username,
		Avatar:   p.Avatar,
	}); err != nil {
		log.Warn().Err(err).Str("module", "signal").Str("sid", string(sid)).Msg("join refused")
	}
}

func (ctl *SignalWSController) handleExchange(sid core.ConnectionID, conn *WsSignalConn, data []byte) {
	if !ctl.Limiter.Allow(sid) {
		ctl.sendError(conn, CodeRateLimited, "too many messages")
		return
	}
	var p exchangePayload
	if err := ctl.decode(data, &p); err != nil {
		log.Error().Err(err).Str("module", "signal").Str("sid", string(sid)).Msg("bad exchange payload")
		ctl.sendError(conn, CodeValidation, err.Error())
		return
	}

	msg := domain.Message{
		RoomID:   domain.RoomID(p.RoomID),
		Username: p.Username,
		Avatar:   p.Avatar,
		Content:  p.Content,
	}
	if p.CreatedAt != nil {
		msg.CreatedAt = *p.CreatedAt
	}
	if _, err := ctl.Orch.OnMessage(sid, msg); err != nil {
		log.Warn().Err(err).Str("module", "signal").Str("sid", string(sid)).Msg("message rejected")
		if errors.Is(err, domain.ErrForbiddenAccess) {
			ctl.sendError(conn, orch.CodeAccessForbidden, domain.ErrForbiddenAccess.Error())
		}
	}
}

func (ctl *SignalWSController) decode(data []byte, v any) error {
	if len(data) == 0 {
		return errors.New("missing data")
	}
	if err := json.Unmarshal(data, v); err != nil {
		return err
	}
	return ctl.validate.Struct(v)
}
