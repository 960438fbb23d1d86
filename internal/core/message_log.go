package core

import "github.com/dkeye/chatrooms/internal/domain"

// MessageLog is the append-only history of one room.
// Not safe for concurrent use; the owning room serialises access.
type MessageLog struct {
	entries []domain.MessageView
}

// Append stamps the next order (current length + 1) and stores the stripped view.
func (l *MessageLog) Append(m domain.Message) domain.MessageView {
	m.Order = len(l.entries) + 1
	v := m.View()
	l.entries = append(l.entries, v)
	return v
}

func (l *MessageLog) Len() int { return len(l.entries) }

// Range returns the messages with from <= order <= to in ascending order.
// Bounds past the end of the log yield an empty, non-nil slice.
func (l *MessageLog) Range(from, to int) []domain.MessageView {
	if from < 1 {
		from = 1
	}
	if to > len(l.entries) {
		to = len(l.entries)
	}
	if from > to {
		return []domain.MessageView{}
	}
	out := make([]domain.MessageView, to-from+1)
	copy(out, l.entries[from-1:to])
	return out
}
