// handlers/broadcast.go - Announcement fan-out over websockets
package handlers

import (
	"log"
	"sync"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

// hub tracks connected announcement listeners. Writes are serialized per
// connection through the shared lock; a failed write drops the client.
type hub struct {
	mu      sync.Mutex
	clients map[*websocket.Conn]bool
}

var announcementHub = &hub{clients: make(map[*websocket.Conn]bool)}

func (h *hub) add(c *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[c] = true
}

func (h *hub) remove(c *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.clients, c)
}

func (h *hub) broadcast(v interface{}) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for c := range h.clients {
		if err := c.WriteJSON(v); err != nil {
			log.Printf("dropping announcement listener: %v", err)
			c.Close()
			delete(h.clients, c)
		}
	}
}

// UpgradeRequired gates the websocket routes behind a proper upgrade
// request.
func UpgradeRequired(c *fiber.Ctx) error {
	if websocket.IsWebSocketUpgrade(c) {
		return c.Next()
	}
	return fiber.ErrUpgradeRequired
}

// AnnouncementSocket keeps a client registered until it disconnects.
// The connection is read-drained so closes are noticed promptly.
var AnnouncementSocket = websocket.New(func(c *websocket.Conn) {
	announcementHub.add(c)
	defer func() {
		announcementHub.remove(c)
		c.Close()
	}()

	for {
		if _, _, err := c.ReadMessage(); err != nil {
			return
		}
	}
})
