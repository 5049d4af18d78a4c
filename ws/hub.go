// Package ws pushes refresh events to connected kiosks so an admin can force
// every screen to reload after a catalog or settings change.
package ws

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // kiosks connect from their own origins
	},
}

type Event struct {
	Type    string `json:"type"`
	Payload string `json:"payload,omitempty"`
}

type Hub struct {
	mutex     sync.Mutex
	clients   map[*websocket.Conn]bool
	broadcast chan []byte
}

func NewHub() *Hub {
	h := &Hub{
		clients:   make(map[*websocket.Conn]bool),
		broadcast: make(chan []byte, 100), // buffered to prevent blocking senders
	}
	go h.run()
	return h
}

func (h *Hub) run() {
	for message := range h.broadcast {
		h.mutex.Lock()
		for client := range h.clients {
			if err := client.WriteMessage(websocket.TextMessage, message); err != nil {
				log.Printf("WebSocket write error: %v", err)
				client.Close()
				delete(h.clients, client)
			}
		}
		h.mutex.Unlock()
	}
}

// Broadcast queues an event for every connected kiosk. It never blocks; if
// the queue is full the event is dropped, the next poll catches the kiosk up.
func (h *Hub) Broadcast(event Event) {
	message, err := json.Marshal(event)
	if err != nil {
		log.Printf("WebSocket marshal error: %v", err)
		return
	}
	select {
	case h.broadcast <- message:
	default:
		log.Println("WebSocket broadcast queue full, dropping event")
	}
}

// Handler upgrades kiosk connections and keeps them registered until they
// disconnect. Inbound messages are ignored, the socket is push-only.
func (h *Hub) Handler() fiber.Handler {
	return adaptor.HTTPHandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Println("Error upgrading:", err)
			return
		}
		defer conn.Close()

		h.mutex.Lock()
		h.clients[conn] = true
		h.mutex.Unlock()
		log.Println("Kiosk connected:", conn.RemoteAddr())

		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
					log.Printf("WebSocket read error: %v", err)
				}
				h.mutex.Lock()
				delete(h.clients, conn)
				h.mutex.Unlock()
				log.Println("Kiosk disconnected:", conn.RemoteAddr())
				return
			}
		}
	})
}
