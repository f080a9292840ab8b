package ws

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/gofiber/contrib/websocket"
)

// Hub fans stock-update events out to connected clients (dashboards, second
// screens). Delivery is fire-and-forget: a slow or dead client is dropped.
type Hub struct {
	Clients    map[*websocket.Conn]bool
	Register   chan *websocket.Conn
	Unregister chan *websocket.Conn
	broadcast  chan []byte
	mutex      sync.Mutex
}

func NewHub() *Hub {
	return &Hub{
		Clients:    make(map[*websocket.Conn]bool),
		Register:   make(chan *websocket.Conn),
		Unregister: make(chan *websocket.Conn),
		broadcast:  make(chan []byte, 64),
	}
}

// Publish marshals an event and queues it for broadcast. Never blocks the
// caller: if the queue is full the event is dropped.
func (h *Hub) Publish(action string, data interface{}) {
	payload := map[string]interface{}{
		"type":   "stock_update",
		"action": action,
		"data":   data,
	}
	msg, err := json.Marshal(payload)
	if err != nil {
		log.Println("ws: marshal event failed:", err)
		return
	}
	select {
	case h.broadcast <- msg:
	default:
		log.Println("ws: broadcast queue full, dropping", action)
	}
}

func (h *Hub) Run() {
	for {
		select {
		case conn := <-h.Register:
			h.mutex.Lock()
			h.Clients[conn] = true
			h.mutex.Unlock()
			log.Println("New WS client connected")

		case conn := <-h.Unregister:
			h.mutex.Lock()
			if _, ok := h.Clients[conn]; ok {
				delete(h.Clients, conn)
				conn.Close()
			}
			h.mutex.Unlock()

		case message := <-h.broadcast:
			h.mutex.Lock()
			for conn := range h.Clients {
				if err := conn.WriteMessage(websocket.TextMessage, message); err != nil {
					conn.Close()
					delete(h.Clients, conn)
				}
			}
			h.mutex.Unlock()
		}
	}
}
