package websocket

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ioulasri/CodeArena/internal/match"
)

func testClient(h *Hub, matchID, playerID string) *Client {
	return &Client{
		hub:      h,
		send:     make(chan match.Event, 64),
		matchID:  matchID,
		playerID: playerID,
		logger:   zap.NewNop(),
	}
}

// awaitEvent 해당 타입의 이벤트가 올 때까지 수신 (다른 이벤트는 건너뜀)
func awaitEvent(t *testing.T, c *Client, eventType string) match.Event {
	t.Helper()

	deadline := time.After(time.Second)
	for {
		select {
		case ev := <-c.send:
			if ev.Type == eventType {
				return ev
			}
		case <-deadline:
			t.Fatalf("timed out waiting for %s event", eventType)
			return match.Event{}
		}
	}
}

func assertNoEvent(t *testing.T, c *Client, eventType string) {
	t.Helper()

	deadline := time.After(100 * time.Millisecond)
	for {
		select {
		case ev := <-c.send:
			if ev.Type == eventType {
				t.Fatalf("unexpected %s event", eventType)
			}
		case <-deadline:
			return
		}
	}
}

func TestHub_PublishFanOut(t *testing.T) {
	h := NewHub()
	go h.Run()

	p1 := testClient(h, "m1", "p1")
	p2 := testClient(h, "m1", "p2")
	h.register <- p1
	h.register <- p2

	require.Eventually(t, func() bool {
		return h.RoomSize("m1") == 2
	}, time.Second, 10*time.Millisecond)

	h.Publish("m1", match.Event{
		Type: match.EventMatchStarted,
		Data: map[string]interface{}{"match_id": "m1"},
	})

	ev := awaitEvent(t, p1, match.EventMatchStarted)
	assert.Equal(t, "m1", ev.Data["match_id"])
	awaitEvent(t, p2, match.EventMatchStarted)
}

func TestHub_PublishExcludesPlayer(t *testing.T) {
	h := NewHub()
	go h.Run()

	p1 := testClient(h, "m1", "p1")
	p2 := testClient(h, "m1", "p2")
	h.register <- p1
	h.register <- p2

	require.Eventually(t, func() bool {
		return h.RoomSize("m1") == 2
	}, time.Second, 10*time.Millisecond)

	h.Publish("m1", match.Event{
		Type:    match.EventAnswerSubmitted,
		Exclude: "p1",
		Data:    map[string]interface{}{"player_id": "p1"},
	})

	// 제출자 본인에게는 에코하지 않음
	awaitEvent(t, p2, match.EventAnswerSubmitted)
	assertNoEvent(t, p1, match.EventAnswerSubmitted)
}

func TestHub_RoomIsolation(t *testing.T) {
	h := NewHub()
	go h.Run()

	p1 := testClient(h, "m1", "p1")
	other := testClient(h, "m2", "p9")
	h.register <- p1
	h.register <- other

	require.Eventually(t, func() bool {
		return h.RoomSize("m1") == 1 && h.RoomSize("m2") == 1
	}, time.Second, 10*time.Millisecond)

	h.Publish("m1", match.Event{Type: match.EventMatchReady})

	awaitEvent(t, p1, match.EventMatchReady)
	assertNoEvent(t, other, match.EventMatchReady)
}

func TestHub_ConnectionEvents(t *testing.T) {
	h := NewHub()
	go h.Run()

	p1 := testClient(h, "m1", "p1")
	h.register <- p1

	p2 := testClient(h, "m1", "p2")
	h.register <- p2

	// 기존 구독자는 새 플레이어의 접속 이벤트를 받음
	ev := awaitEvent(t, p1, match.EventPlayerConnected)
	assert.Equal(t, "p2", ev.Data["player_id"])

	h.unregister <- p2
	ev = awaitEvent(t, p1, match.EventPlayerDisconnected)
	assert.Equal(t, "p2", ev.Data["player_id"])
}

func TestHub_UnregisterRemovesEmptyRoom(t *testing.T) {
	h := NewHub()
	go h.Run()

	p1 := testClient(h, "m1", "p1")
	h.register <- p1

	require.Eventually(t, func() bool {
		return h.RoomSize("m1") == 1
	}, time.Second, 10*time.Millisecond)

	h.unregister <- p1

	require.Eventually(t, func() bool {
		return h.RoomSize("m1") == 0
	}, time.Second, 10*time.Millisecond)
}
