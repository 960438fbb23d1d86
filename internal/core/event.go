package core

import (
	"encoding/json"

	"github.com/dkeye/chatrooms/internal/domain"
)

const (
	EventParticipants = "participants"
	EventExchanges    = "exchanges"
	EventPing         = "ping"
	EventPong         = "pong"
	EventError        = "error"
)

// Event is the envelope of every frame in both directions.
// Outbound room events use the topic name as Event.
type Event struct {
	Event string `json:"event"`
	Data  any    `json:"data,omitempty"`
}

type ErrorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func EncodeEvent(name string, data any) (Frame, error) {
	return json.Marshal(Event{Event: name, Data: data})
}

func EncodeError(code, message string) (Frame, error) {
	return EncodeEvent(EventError, ErrorPayload{Code: code, Message: message})
}

// PresenceTopic carries full participant snapshots of a room.
func PresenceTopic(id domain.RoomID) string { return "participants/" + string(id) }

// MessageTopic carries message views of a room.
func MessageTopic(id domain.RoomID) string { return string(id) }
