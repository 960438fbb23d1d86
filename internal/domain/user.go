// Package domain contains entity without logic, just meta-data
package domain

const (
	MaxRoomIDLen   = 64
	MaxUsernameLen = 36
	MaxAvatarLen   = 2048
	MaxContentLen  = 4096
)

// ValidateUsername checks the display name a participant or room creator uses.
func ValidateUsername(username string) error {
	if len(username) == 0 {
		return ErrUsernameEmpty
	}
	if len(username) > MaxUsernameLen {
		return ErrUsernameTooLong
	}
	return nil
}

// ValidateRoomID checks an externally supplied room id.
func ValidateRoomID(id RoomID) error {
	if len(id) == 0 {
		return ErrRoomIDEmpty
	}
	if len(id) > MaxRoomIDLen {
		return ErrRoomIDTooLong
	}
	return nil
}

func ValidateContent(content string) error {
	if len(content) == 0 {
		return ErrContentEmpty
	}
	if len(content) > MaxContentLen {
		return ErrContentTooLong
	}
	return nil
}
