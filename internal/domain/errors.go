package domain

import "errors"

var (
	ErrRoomConflict    = errors.New("room already exists")
	ErrRoomNotFound    = errors.New("room not found")
	ErrForbiddenAccess = errors.New("the access is forbidden")
	ErrInvalidRange    = errors.New("invalid message range")
)

var (
	ErrRoomIDEmpty     = errors.New("room id empty")
	ErrRoomIDTooLong   = errors.New("room id too long")
	ErrUsernameEmpty   = errors.New("username empty")
	ErrUsernameTooLong = errors.New("username too long")
	ErrContentEmpty    = errors.New("content empty")
	ErrContentTooLong  = errors.New("content too long")
)
