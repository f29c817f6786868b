package ws

import (
	"context"
	"encoding/json"
	"log"
	"sync"

	"ecorecycle_backend/internal/events"
)

// Hub keeps every live notification socket, grouped by user, and pushes order
// events to the users they concern.
type Hub struct {
	// Register requests from the clients.
	Register chan *Client

	// Unregister requests from clients.
	Unregister chan *Client

	// Map to quickly find clients by UserID
	userClients map[string][]*Client

	// Mutex to protect the userClients map
	mutex sync.Mutex

	// Closed when Run returns.
	done chan struct{}
}

var _ events.Publisher = (*Hub)(nil)

func NewHub() *Hub {
	return &Hub{
		Register:    make(chan *Client),
		Unregister:  make(chan *Client),
		userClients: make(map[string][]*Client),
		done:        make(chan struct{}),
	}
}

// Run serves register/unregister requests until ctx is done. On return every
// client's send channel is closed, which ends its write pump.
func (h *Hub) Run(ctx context.Context) {
	defer h.shutdown()
	for {
		select {
		case client := <-h.Register:
			h.add(client)
		case client := <-h.Unregister:
			h.remove(client)
		case <-ctx.Done():
			return
		}
	}
}

func (h *Hub) shutdown() {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	close(h.done)
	for _, conns := range h.userClients {
		for _, client := range conns {
			close(client.Send)
		}
	}
	h.userClients = make(map[string][]*Client)
	log.Println("Notification hub stopped")
}

// Attach registers the client with a running hub. It reports false once the
// hub has stopped.
func (h *Hub) Attach(client *Client) bool {
	select {
	case h.Register <- client:
		return true
	case <-h.done:
		return false
	}
}

// Detach unregisters the client. It returns immediately on a stopped hub.
func (h *Hub) Detach(client *Client) {
	select {
	case h.Unregister <- client:
	case <-h.done:
	}
}

func (h *Hub) add(client *Client) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	h.userClients[client.UserID] = append(h.userClients[client.UserID], client)
	log.Printf("User %s connected. Total connections for user: %d", client.UserID, len(h.userClients[client.UserID]))
}

func (h *Hub) remove(client *Client) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	h.dropLocked(client)
}

// dropLocked removes the client and closes its send channel once.
func (h *Hub) dropLocked(client *Client) {
	userConns := h.userClients[client.UserID]
	for i, conn := range userConns {
		if conn == client {
			h.userClients[client.UserID] = append(userConns[:i], userConns[i+1:]...)
			close(client.Send)
			break
		}
	}
	if len(h.userClients[client.UserID]) == 0 {
		delete(h.userClients, client.UserID)
	}
}

// SendToUser sends a message to every active connection of a user. A client
// whose buffer is full is dropped rather than blocking the sender.
func (h *Hub) SendToUser(userID string, message []byte) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	for _, client := range append([]*Client(nil), h.userClients[userID]...) {
		select {
		case client.Send <- message:
		default:
			h.dropLocked(client)
		}
	}
}

// Publish delivers an order event to its recipients' sockets. Offline users
// simply miss it.
func (h *Hub) Publish(_ context.Context, event events.OrderEvent) error {
	payload, err := json.Marshal(map[string]interface{}{
		"type":  "order_event",
		"event": event,
	})
	if err != nil {
		return err
	}
	for _, userID := range event.Recipients() {
		h.SendToUser(userID, payload)
	}
	return nil
}

// IsUserOnline checks if a user has any active WebSocket connection
func (h *Hub) IsUserOnline(userID string) bool {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	return len(h.userClients[userID]) > 0
}
