package domain

import "time"

// Message is a chat line as it travels through the hub.
// RoomID, ConnectionID and Avatar are wire-only and never reach readers.
type Message struct {
	Order        int       `json:"order"`
	Username     string    `json:"username"`
	Content      string    `json:"content"`
	CreatedAt    time.Time `json:"createdAt"`
	RoomID       RoomID    `json:"roomId,omitempty"`
	ConnectionID string    `json:"socketId,omitempty"`
	Avatar       string    `json:"avatar,omitempty"`
}

// MessageView is what the log stores and what subscribers and readers get.
type MessageView struct {
	Order     int       `json:"order"`
	Username  string    `json:"username"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}

func (m Message) View() MessageView {
	return MessageView{
		Order:     m.Order,
		Username:  m.Username,
		Content:   m.Content,
		CreatedAt: m.CreatedAt,
	}
}
