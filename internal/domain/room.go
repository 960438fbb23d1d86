package domain

import "time"

type RoomID string

// Room is the immutable meta of a chat room. Its log and presence live in core.
type Room struct {
	ID        RoomID    `json:"roomId"`
	CreatedBy string    `json:"createdBy"`
	CreatedAt time.Time `json:"createdAt"`
}

func NewRoom(id RoomID, createdBy string, now time.Time) (*Room, error) {
	if err := ValidateRoomID(id); err != nil {
		return nil, err
	}
	if err := ValidateUsername(createdBy); err != nil {
		return nil, err
	}
	return &Room{ID: id, CreatedBy: createdBy, CreatedAt: now}, nil
}
