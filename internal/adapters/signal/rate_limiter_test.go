package signal

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestMessageRateLimiter_SlidingWindow(t *testing.T) {
	req := require.New(t)
	clock := time.Unix(1000, 0)
	rl := NewMessageRateLimiter(2, time.Second)
	rl.now = func() time.Time { return clock }

	req.True(rl.Allow("c1"))
	req.True(rl.Allow("c1"))
	req.False(rl.Allow("c1"))
	// Other connections are independent
	req.True(rl.Allow("c2"))

	clock = clock.Add(1100 * time.Millisecond)
	req.True(rl.Allow("c1"))
}

func TestMessageRateLimiter_Forget(t *testing.T) {
	req := require.New(t)
	rl := NewMessageRateLimiter(1, time.Hour)

	req.True(rl.Allow("c1"))
	req.False(rl.Allow("c1"))
	rl.Forget("c1")
	req.True(rl.Allow("c1"))
}

func TestMessageRateLimiter_Disabled(t *testing.T) {
	rl := NewMessageRateLimiter(0, time.Second)
	for i := 0; i < 100; i++ {
		require.True(t, rl.Allow("c1"))
	}
}
