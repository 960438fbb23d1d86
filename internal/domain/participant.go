package domain

// Participant is one connection's presence in a room.
// Connected flips to false on disconnect; the entry itself is kept.
type Participant struct {
	RoomID    RoomID `json:"roomId"`
	Username  string `json:"username"`
	Avatar    string `json:"avatar"`
	Connected bool   `json:"connected"`
}
