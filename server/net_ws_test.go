package server

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/goccy/go-json"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newArena(t *testing.T) (*RoomManager, *httptest.Server) {
	t.Helper()
	rm := NewRoomManager(RoomConfig{Size: 10, Step: 1}, "overworld")
	rm.GetOrCreateRoom("overworld")
	mux := http.NewServeMux()
	rm.Routes(mux)
	srv := httptest.NewServer(mux)
	t.Cleanup(func() {
		srv.Close()
		rm.Close()
	})
	return rm, srv
}

func dial(t *testing.T, srv *httptest.Server, query string) *websocket.Conn {
	t.Helper()
	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws?" + query
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func waitForPlayer(t *testing.T, rm *RoomManager, name string) *Player {
	t.Helper()
	var found *Player
	require.Eventually(t, func() bool {
		for _, p := range rm.ConnectedPlayers() {
			if p.Name() == name {
				found = p
				return true
			}
		}
		return false
	}, 2*time.Second, 10*time.Millisecond)
	return found
}

func TestHandleWS_RejectsBadName(t *testing.T) {
	_, srv := newArena(t)
	for _, q := range []string{"", "name=", "name=has%20space", "name=" + strings.Repeat("a", 17)} {
		resp, err := http.Get(srv.URL + "/ws?" + q)
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, q)
	}
}

func TestHandleWS_JoinMoveAndChat(t *testing.T) {
	rm, srv := newArena(t)
	conn := dial(t, srv, "room=overworld&name=alice")
	p := waitForPlayer(t, rm, "alice")
	assert.Equal(t, "overworld", p.Room().ID)

	require.NoError(t, conn.WriteJSON(InputMessage{Type: "move", Command: "right"}))
	require.Eventually(t, func() bool { return p.Position().X() == 6 }, 2*time.Second, 10*time.Millisecond)

	p.SendMessage("hello")
	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	for {
		_, b, err := conn.ReadMessage()
		require.NoError(t, err)
		var msg chatMessage
		require.NoError(t, json.Unmarshal(b, &msg))
		if msg.Type == "chat" {
			assert.Equal(t, "hello", msg.Message)
			break
		}
	}
}

func TestHandleWS_UnknownRoomRejected(t *testing.T) {
	rm, srv := newArena(t)
	resp, err := http.Get(srv.URL + "/ws?room=the_end&name=bob")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	_, ok := rm.Room("the_end")
	assert.False(t, ok)
	assert.Len(t, rm.Rooms(), 1)
}

func TestHandleWS_SameNameAcrossRooms(t *testing.T) {
	rm, srv := newArena(t)
	rm.GetOrCreateRoom("the_nether")
	first := dial(t, srv, "room=overworld&name=alice")
	waitForPlayer(t, rm, "alice")

	dial(t, srv, "room=the_nether&name=alice")
	require.Eventually(t, func() bool {
		players := rm.ConnectedPlayers()
		return len(players) == 1 && players[0].Room().ID == "the_nether"
	}, 2*time.Second, 10*time.Millisecond)

	_ = first.SetReadDeadline(time.Now().Add(2 * time.Second))
	var err error
	for err == nil {
		_, _, err = first.ReadMessage()
	}
	var ce *websocket.CloseError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, "Logged in from another location", ce.Text)
}

func TestDisconnect_SendsCloseReason(t *testing.T) {
	rm, srv := newArena(t)
	conn := dial(t, srv, "name=alice")
	p := waitForPlayer(t, rm, "alice")

	p.Disconnect("AFK")

	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var err error
	for err == nil {
		_, _, err = conn.ReadMessage()
	}
	var ce *websocket.CloseError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, websocket.ClosePolicyViolation, ce.Code)
	assert.Equal(t, "AFK", ce.Text)

	require.Eventually(t, func() bool { return len(rm.ConnectedPlayers()) == 0 }, 2*time.Second, 10*time.Millisecond)
}

func TestDisconnect_LongReasonKeepsUTF8(t *testing.T) {
	rm, srv := newArena(t)
	conn := dial(t, srv, "name=alice")
	p := waitForPlayer(t, rm, "alice")

	prefix := strings.Repeat("a", maxCloseReason-1)
	p.Disconnect(prefix + "é")

	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var err error
	for err == nil {
		_, _, err = conn.ReadMessage()
	}
	var ce *websocket.CloseError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, prefix, ce.Text)
}

func TestTruncateReason(t *testing.T) {
	long := strings.Repeat("a", maxCloseReason)
	cases := []struct{ in, want string }{
		{"AFK", "AFK"},
		{long, long},
		{long + "aaaaa", long},
		{long[1:] + "é", long[1:]},
		{strings.Repeat("踢", 50), strings.Repeat("踢", maxCloseReason/3)},
	}
	for _, tc := range cases {
		got := truncateReason(tc.in)
		assert.Equal(t, tc.want, got)
		assert.True(t, utf8.ValidString(got))
		assert.LessOrEqual(t, len(got), maxCloseReason)
	}
}

func TestHandleWS_ClientCloseLeavesRoom(t *testing.T) {
	rm, srv := newArena(t)
	conn := dial(t, srv, "name=alice")
	waitForPlayer(t, rm, "alice")
	conn.Close()
	require.Eventually(t, func() bool { return len(rm.ConnectedPlayers()) == 0 }, 2*time.Second, 10*time.Millisecond)
}
