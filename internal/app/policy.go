package app

import (
	"fmt"

	"github.com/dkeye/chatrooms/internal/core"
)

type BackpressureAction int

const (
	// KickMember closes the slow connection; its disconnect is announced as usual.
	KickMember BackpressureAction = iota
	// DropFrame loses the frame and keeps the connection.
	DropFrame
)

// ParseBackpressureAction maps the backpressure_action config value.
func ParseBackpressureAction(s string) (BackpressureAction, error) {
	switch s {
	case "", "kick":
		return KickMember, nil
	case "drop":
		return DropFrame, nil
	}
	return KickMember, fmt.Errorf("unknown backpressure action %q", s)
}

type Policy interface {
	OnBackPressure(room core.RoomService, sid core.ConnectionID) BackpressureAction
}

// SimplePolicy applies one action to every subscriber whose send queue is full.
// The zero value kicks.
type SimplePolicy struct {
	Action BackpressureAction
}

func (p SimplePolicy) OnBackPressure(room core.RoomService, sid core.ConnectionID) BackpressureAction {
	return p.Action
}
