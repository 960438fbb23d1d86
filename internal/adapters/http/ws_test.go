package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"

	"github.com/dkeye/chatrooms/internal/config"
	"github.com/dkeye/chatrooms/internal/core"
	"github.com/dkeye/chatrooms/internal/domain"
)

type wsEvent struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

func startServer(t *testing.T, cfg *config.Config) *httptest.Server {
	t.Helper()
	r, _ := newTestRouter(t, cfg)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func dial(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/v1/ws"
	ws, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = ws.Close() })
	return ws
}

func send(t *testing.T, ws *websocket.Conn, event string, data any) {
	t.Helper()
	b, err := json.Marshal(map[string]any{"event": event, "data": data})
	require.NoError(t, err)
	require.NoError(t, ws.WriteMessage(websocket.TextMessage, b))
}

func read(t *testing.T, ws *websocket.Conn) wsEvent {
	t.Helper()
	require.NoError(t, ws.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, b, err := ws.ReadMessage()
	require.NoError(t, err)
	var e wsEvent
	require.NoError(t, json.Unmarshal(b, &e))
	return e
}

func readParticipants(t *testing.T, ws *websocket.Conn, room domain.RoomID) []domain.Participant {
	t.Helper()
	e := read(t, ws)
	require.Equal(t, core.PresenceTopic(room), e.Event)
	var snap []domain.Participant
	require.NoError(t, json.Unmarshal(e.Data, &snap))
	return snap
}

func readError(t *testing.T, ws *websocket.Conn) core.ErrorPayload {
	t.Helper()
	e := read(t, ws)
	require.Equal(t, core.EventError, e.Event)
	var p core.ErrorPayload
	require.NoError(t, json.Unmarshal(e.Data, &p))
	return p
}

func createRoom(t *testing.T, srv *httptest.Server, id, creator string) {
	t.Helper()
	body := `{"roomId":"` + id + `","creatorUsername":"` + creator + `"}`
	resp, err := http.Post(srv.URL+"/api/v1/rooms", "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)
}

func TestWS_ChatScenario(t *testing.T) {
	req := require.New(t)
	srv := startServer(t, testConfig())

	// Given a room with two participants
	createRoom(t, srv, "lobby", "alice")
	alice := dial(t, srv)
	bob := dial(t, srv)

	send(t, alice, core.EventParticipants, map[string]string{"roomId": "lobby", "username": "alice"})
	snap := readParticipants(t, alice, "lobby")
	req.Len(snap, 1)
	req.True(snap[0].Connected)

	send(t, bob, core.EventParticipants, map[string]string{"roomId": "lobby", "username": "bob", "avatar": "b.png"})
	req.Len(readParticipants(t, alice, "lobby"), 2)
	req.Len(readParticipants(t, bob, "lobby"), 2)

	// When alice posts a message
	send(t, alice, core.EventExchanges, map[string]string{"roomId": "lobby", "username": "alice", "content": "hello"})

	// Then both receive the stripped view with order 1
	for _, ws := range []*websocket.Conn{alice, bob} {
		e := read(t, ws)
		req.Equal(core.MessageTopic("lobby"), e.Event)
		var view map[string]any
		req.NoError(json.Unmarshal(e.Data, &view))
		req.EqualValues(1, view["order"])
		req.Equal("hello", view["content"])
		req.NotContains(view, "roomId")
		req.NotContains(view, "socketId")
		req.NotContains(view, "avatar")
	}

	resp, err := http.Get(srv.URL + "/api/v1/rooms/lobby/messages?fromIndex=1&toIndex=10")
	req.NoError(err)
	defer resp.Body.Close()
	req.Equal(http.StatusOK, resp.StatusCode)
	var page []domain.MessageView
	req.NoError(json.NewDecoder(resp.Body).Decode(&page))
	req.Len(page, 1)
	req.Equal("alice", page[0].Username)

	// When bob leaves
	req.NoError(bob.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")))

	// Then alice sees him disconnected
	snap = readParticipants(t, alice, "lobby")
	req.Len(snap, 2)
	req.Equal("bob", snap[1].Username)
	req.False(snap[1].Connected)
}

func TestWS_JoinUnknownRoomTerminates(t *testing.T) {
	req := require.New(t)
	srv := startServer(t, testConfig())
	ws := dial(t, srv)

	send(t, ws, core.EventParticipants, map[string]string{"roomId": "ghost", "username": "eve"})

	req.Equal("access-forbidden", readError(t, ws).Code)

	req.NoError(ws.SetReadDeadline(time.Now().Add(2 * time.Second)))
	_, _, err := ws.ReadMessage()
	req.Error(err)
	req.True(websocket.IsCloseError(err, websocket.CloseNormalClosure), "got %v", err)
}

func TestWS_ControlFrames(t *testing.T) {
	t.Run("should answer ping with pong", func(t *testing.T) {
		req := require.New(t)
		ws := dial(t, startServer(t, testConfig()))

		send(t, ws, core.EventPing, nil)
		req.Equal(core.EventPong, read(t, ws).Event)
	})

	t.Run("should report unknown events and keep the connection", func(t *testing.T) {
		req := require.New(t)
		ws := dial(t, startServer(t, testConfig()))

		send(t, ws, "dance", nil)
		req.Equal("event.unknown", readError(t, ws).Code)

		send(t, ws, core.EventPing, nil)
		req.Equal(core.EventPong, read(t, ws).Event)
	})

	t.Run("should reject a join without username", func(t *testing.T) {
		req := require.New(t)
		ws := dial(t, startServer(t, testConfig()))

		send(t, ws, core.EventParticipants, map[string]string{"roomId": "lobby"})
		req.Equal("req-body.validation", readError(t, ws).Code)
	})

	t.Run("should refuse messages before joining", func(t *testing.T) {
		req := require.New(t)
		srv := startServer(t, testConfig())
		createRoom(t, srv, "lobby", "alice")
		ws := dial(t, srv)

		send(t, ws, core.EventExchanges, map[string]string{"roomId": "lobby", "username": "mallory", "content": "hi"})
		req.Equal("access-forbidden", readError(t, ws).Code)
	})
}

func TestWS_RateLimit(t *testing.T) {
	req := require.New(t)
	cfg := testConfig()
	cfg.MessageRateLimit = 2
	cfg.MessageRateInterval = time.Minute
	srv := startServer(t, cfg)
	createRoom(t, srv, "lobby", "alice")
	ws := dial(t, srv)

	send(t, ws, core.EventParticipants, map[string]string{"roomId": "lobby", "username": "alice"})
	readParticipants(t, ws, "lobby")

	for i := 0; i < 2; i++ {
		send(t, ws, core.EventExchanges, map[string]string{"username": "alice", "content": "spam"})
		req.Equal(core.MessageTopic("lobby"), read(t, ws).Event)
	}
	send(t, ws, core.EventExchanges, map[string]string{"username": "alice", "content": "spam"})
	req.Equal("rate-limited", readError(t, ws).Code)
}
