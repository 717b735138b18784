package ws

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sentinel-security/sentinel-console/internal/domain"
)

func TestNewHub(t *testing.T) {
	hub := NewHub()

	assert.NotNil(t, hub)
	assert.NotNil(t, hub.clients)
	assert.NotNil(t, hub.broadcast)
	assert.NotNil(t, hub.register)
	assert.NotNil(t, hub.unregister)
}

func TestHub_AddAndRemoveClient(t *testing.T) {
	hub := NewHub()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go hub.Run(ctx)

	client := &Client{
		hub:  hub,
		send: make(chan []byte, 1),
	}

	hub.register <- client
	time.Sleep(50 * time.Millisecond)

	assert.Equal(t, 1, hub.ConnectedClients())

	hub.unregister <- client
	time.Sleep(50 * time.Millisecond)

	assert.Equal(t, 0, hub.ConnectedClients())
}

func TestHub_BroadcastReachesAllClients(t *testing.T) {
	hub := NewHub()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go hub.Run(ctx)

	first := &Client{hub: hub, send: make(chan []byte, 10)}
	second := &Client{hub: hub, send: make(chan []byte, 10)}

	hub.register <- first
	hub.register <- second
	time.Sleep(50 * time.Millisecond)

	hub.Broadcast(EventAlertsUpdated, AlertsPayload{
		Alerts:      []domain.Alert{{ID: "a1"}},
		UnreadCount: 1,
	})

	for _, client := range []*Client{first, second} {
		select {
		case message := <-client.send:
			var event Event
			require.NoError(t, json.Unmarshal(message, &event))
			assert.Equal(t, EventAlertsUpdated, event.Type)
		case <-time.After(time.Second):
			t.Fatal("client did not receive broadcast")
		}
	}
}

func TestHub_RunStopsOnContextCancel(t *testing.T) {
	hub := NewHub()
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		hub.Run(ctx)
		close(done)
	}()

	client := &Client{hub: hub, send: make(chan []byte, 1)}
	hub.register <- client
	time.Sleep(50 * time.Millisecond)

	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("hub did not stop")
	}

	// Teardown closed the client's send channel.
	_, open := <-client.send
	assert.False(t, open)
	assert.Equal(t, 0, hub.ConnectedClients())
}

func TestClient_TrySendDropsWhenFull(t *testing.T) {
	client := &Client{send: make(chan []byte, 1)}

	client.trySend(Event{Type: EventPopupShow, Timestamp: time.Now()})
	client.trySend(Event{Type: EventPopupHide, Timestamp: time.Now()})

	var event Event
	require.NoError(t, json.Unmarshal(<-client.send, &event))
	assert.Equal(t, EventPopupShow, event.Type)

	select {
	case <-client.send:
		t.Fatal("second event should have been dropped")
	default:
	}
}
