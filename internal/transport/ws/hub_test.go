package ws

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The pumps are not started here; tests drive the hub channels directly and
// observe delivery on client.send.

func TestReconnectKeepsFreshConnection(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	userID := uuid.New()
	old := NewClient(hub, nil, userID)
	fresh := NewClient(hub, nil, userID)

	hub.register <- old
	hub.register <- fresh

	// the replaced connection is shut down at register time
	select {
	case _, ok := <-old.send:
		assert.False(t, ok, "old client's send channel should be closed")
	case <-time.After(time.Second):
		t.Fatal("old client was not evicted on reconnect")
	}

	// the old connection's read loop exiting late must not evict the fresh one
	hub.unregister <- old

	evt, err := NewEvent(EventTypeConversationUpdated, "c1_c2", nil)
	require.NoError(t, err)
	hub.SendToUser(userID, evt)

	select {
	case data := <-fresh.send:
		assert.Contains(t, string(data), EventTypeConversationUpdated)
	case <-time.After(time.Second):
		t.Fatal("fresh client received nothing after the old connection unregistered")
	}
}

func TestUnregisterRemovesOwnConnection(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	userID := uuid.New()
	client := NewClient(hub, nil, userID)

	hub.register <- client
	hub.unregister <- client

	select {
	case _, ok := <-client.send:
		assert.False(t, ok, "send channel should be closed on unregister")
	case <-time.After(time.Second):
		t.Fatal("client was not removed")
	}
}

func TestBroadcastRespectsSubscriptions(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	subscribed := NewClient(hub, nil, uuid.New())
	subscribed.Subscribe("a_b")
	other := NewClient(hub, nil, uuid.New())

	hub.register <- subscribed
	hub.register <- other

	evt, err := NewEvent(EventTypeMessageNew, "a_b", nil)
	require.NoError(t, err)
	hub.BroadcastToConversation("a_b", evt, nil)

	// presence chatter from registration may arrive first
	deadline := time.After(time.Second)
	for got := false; !got; {
		select {
		case data := <-subscribed.send:
			got = strings.Contains(string(data), EventTypeMessageNew)
		case <-deadline:
			t.Fatal("subscribed client never received the message event")
		}
	}

	select {
	case data := <-other.send:
		assert.NotContains(t, string(data), EventTypeMessageNew, "unsubscribed client should not receive conversation events")
	case <-time.After(50 * time.Millisecond):
	}
}
