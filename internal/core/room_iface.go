package core

import (
	"time"

	"github.com/dkeye/chatrooms/internal/domain"
)

// RoomService is the core-facing API of a room.
// Every mutation and the fan-out it produces happen under one per-room lock,
// so subscribers observe events in mutation order. Fan-out never blocks.
type RoomService interface {
	Room() *domain.Room
	Info() RoomInfo
	Participants() []domain.Participant
	Messages(from, to int) []domain.MessageView

	// Join upserts the participant, subscribes conn to both room topics
	// and publishes the presence snapshot.
	Join(cid ConnectionID, p domain.Participant, conn Connection) (PublishResult, error)
	// Disconnect unsubscribes cid and, if it ever joined, marks it
	// disconnected and publishes the presence snapshot.
	Disconnect(cid ConnectionID) (PublishResult, bool)
	// Post appends m to the log and publishes its view. The sender must be
	// a connected participant.
	Post(cid ConnectionID, m domain.Message) (domain.MessageView, PublishResult, error)

	Stop()
	Stopped() bool
}

type RoomInfo struct {
	ID           domain.RoomID `json:"roomId"`
	CreatedBy    string        `json:"createdBy"`
	CreatedAt    time.Time     `json:"createdAt"`
	Participants int           `json:"participants"`
	Connected    int           `json:"connected"`
	Messages     int           `json:"messages"`
}

// RoomStore owns every room and enforces id uniqueness.
type RoomStore interface {
	Create(id domain.RoomID, createdBy string) (RoomService, error)
	Close(id domain.RoomID) error
	Get(id domain.RoomID) (RoomService, bool)
	List() []RoomInfo
	Len() int
}
