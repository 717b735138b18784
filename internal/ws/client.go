package ws

import (
	"encoding/json"
	"time"

	"github.com/gofiber/websocket/v2"

	"github.com/sentinel-security/sentinel-console/internal/domain"
	"github.com/sentinel-security/sentinel-console/internal/notify"
)

// Client is one connected dashboard session. It owns that session's popup
// controller; inbound messages drive the controller, popup transitions come
// back through sessionEvents.
type Client struct {
	hub        *Hub
	conn       *websocket.Conn
	send       chan []byte
	controller *notify.Controller
}

type inboundMessage struct {
	Type string `json:"type"`
}

func (c *Client) ReadPump() {
	defer func() {
		c.hub.unregister <- c
		_ = c.conn.Close()
	}()

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			break
		}
		c.handleMessage(message)
	}
}

func (c *Client) handleMessage(message []byte) {
	var msg inboundMessage
	if err := json.Unmarshal(message, &msg); err != nil {
		return
	}

	switch EventType(msg.Type) {
	case EventPopupHide:
		c.controller.Dismiss()
	case EventPopupActivate:
		// Navigation happens client-side; the server's part is the dismiss.
		c.controller.Activate()
	}
}

func (c *Client) WritePump() {
	defer func() {
		_ = c.conn.Close()
	}()

	for message := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
			return
		}
	}
}

// trySend queues an event for this client only. Drops on a full queue.
func (c *Client) trySend(event Event) {
	message, err := json.Marshal(event)
	if err != nil {
		return
	}

	select {
	case c.send <- message:
	default:
	}
}

// sessionEvents adapts popup transitions onto one client's send queue.
// Implements notify.Events.
type sessionEvents struct {
	client *Client
}

func (s *sessionEvents) ShowPopup(alert domain.Alert, shownAt time.Time, duration time.Duration) {
	s.client.trySend(Event{
		Type: EventPopupShow,
		Data: PopupPayload{
			Alert:      alert,
			ShownAt:    shownAt,
			DurationMS: duration.Milliseconds(),
		},
		Timestamp: time.Now(),
	})
}

func (s *sessionEvents) HidePopup() {
	s.client.trySend(Event{
		Type:      EventPopupHide,
		Timestamp: time.Now(),
	})
}

func (s *sessionEvents) PlaySound(url string) {
	s.client.trySend(Event{
		Type:      EventPopupSound,
		Data:      SoundPayload{URL: url},
		Timestamp: time.Now(),
	})
}
