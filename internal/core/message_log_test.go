package core

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dkeye/chatrooms/internal/domain"
)

func fillLog(n int) *MessageLog {
	l := &MessageLog{}
	for i := 1; i <= n; i++ {
		l.Append(domain.Message{Username: "alice", Content: fmt.Sprintf("m%d", i), CreatedAt: time.Unix(int64(i), 0)})
	}
	return l
}

func TestMessageLog_Append_AssignsGaplessOrder(t *testing.T) {
	req := require.New(t)
	l := &MessageLog{}

	for i := 1; i <= 10; i++ {
		v := l.Append(domain.Message{Username: "bob", Content: "x", Order: 99})
		req.Equal(i, v.Order)
	}
	req.Equal(10, l.Len())
}

func TestMessageLog_Append_StripsWireFields(t *testing.T) {
	req := require.New(t)
	l := &MessageLog{}

	v := l.Append(domain.Message{
		Username:     "alice",
		Content:      "hi",
		RoomID:       "general",
		ConnectionID: "sock-1",
		Avatar:       "a1",
	})

	req.Equal(domain.MessageView{Order: 1, Username: "alice", Content: "hi"}, v)
	req.Equal([]domain.MessageView{v}, l.Range(1, 1))
}

func TestMessageLog_Range(t *testing.T) {
	l := fillLog(5)

	cases := []struct {
		name     string
		from, to int
		want     []string
	}{
		{name: "full log", from: 1, to: 5, want: []string{"m1", "m2", "m3", "m4", "m5"}},
		{name: "inner slice", from: 2, to: 3, want: []string{"m2", "m3"}},
		{name: "single", from: 5, to: 5, want: []string{"m5"}},
		{name: "tail overflow", from: 4, to: 50, want: []string{"m4", "m5"}},
		{name: "past the end", from: 6, to: 10, want: []string{}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := require.New(t)
			got := l.Range(tc.from, tc.to)
			req.NotNil(got)
			contents := make([]string, 0, len(got))
			for i, m := range got {
				req.Equal(tc.from+i, m.Order)
				contents = append(contents, m.Content)
			}
			req.Equal(tc.want, contents)
		})
	}
}

func TestMessageLog_Range_ReturnsCopy(t *testing.T) {
	req := require.New(t)
	l := fillLog(2)

	got := l.Range(1, 2)
	got[0].Content = "changed"

	req.Equal("m1", l.Range(1, 1)[0].Content)
}
