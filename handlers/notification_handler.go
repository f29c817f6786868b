package handlers

import (
	"log"

	"ecorecycle_backend/internal/ws"
	"ecorecycle_backend/utils"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
)

type NotificationHandler struct {
	Hub *ws.Hub
}

func NewNotificationHandler(hub *ws.Hub) *NotificationHandler {
	return &NotificationHandler{Hub: hub}
}

// WebSocketUpgradeMiddleware ensures the client is trying to upgrade to WebSocket
// and hands the authenticated user to the connection.
func (h *NotificationHandler) WebSocketUpgradeMiddleware(c *fiber.Ctx) error {
	if !websocket.IsWebSocketUpgrade(c) {
		return fiber.ErrUpgradeRequired
	}
	s, ok := utils.CurrentSession(c)
	if !ok {
		return fiber.ErrUnauthorized
	}
	c.Locals("user_id", s.UserID)
	return c.Next()
}

// Handler - GET /ws/notifications
func (h *NotificationHandler) Handler() fiber.Handler {
	return websocket.New(func(c *websocket.Conn) {
		userID, ok := c.Locals("user_id").(string)
		if !ok || userID == "" {
			log.Println("Invalid or missing User ID in WebSocket connection")
			c.Close()
			return
		}

		client := ws.NewClient(h.Hub, c, userID)
		if !client.Hub.Attach(client) {
			log.Printf("Notification hub stopped, refusing connection for user %s", userID)
			c.Close()
			return
		}

		go client.WritePump()
		client.ReadPump()
	})
}
