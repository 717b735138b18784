package ws

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"

	"github.com/sentinel-security/sentinel-console/internal/notify"
)

// SessionFactory builds the popup controller for one dashboard session and
// returns its teardown. Teardown must detach the session from the alert
// stream and stop the controller's timer; the handler guarantees it runs on
// every exit path.
type SessionFactory func(events notify.Events) (*notify.Controller, func())

func Handler(hub *Hub, newSession SessionFactory) fiber.Handler {
	return websocket.New(func(conn *websocket.Conn) {
		client := &Client{
			hub:  hub,
			conn: conn,
			send: make(chan []byte, 256),
		}

		controller, teardown := newSession(&sessionEvents{client: client})
		client.controller = controller
		defer teardown()

		hub.register <- client

		go client.WritePump()
		client.ReadPump()
	})
}

func UpgradeMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			c.Locals("allowed", true)
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	}
}
