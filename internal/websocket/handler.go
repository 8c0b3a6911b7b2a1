package websocket

import (
	"github.com/gofiber/websocket/v2"
)

// ServeWs runs one dashboard connection until it closes.
func ServeWs(hub *Hub, c *websocket.Conn, staffID string) {
	client := NewClient(hub, c, staffID)
	if !hub.Register(client) {
		c.Close()
		return
	}

	go client.writePump()
	client.readPump()
}
