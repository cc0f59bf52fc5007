package ws

import (
	"encoding/json"
	"sync"

	"github.com/gofiber/contrib/websocket"

	"go-backoffice-ws/pkg/logger"
)

// Hub fans lock and audit events out to every connected browser session.
// Other sessions use these pushes to refresh lock banners without polling.
type Hub struct {
	Clients    map[*websocket.Conn]bool
	Register   chan *websocket.Conn
	Unregister chan *websocket.Conn
	Broadcast  chan []byte
	mutex      sync.Mutex
}

func NewHub() *Hub {
	return &Hub{
		Clients:    make(map[*websocket.Conn]bool),
		Register:   make(chan *websocket.Conn),
		Unregister: make(chan *websocket.Conn),
		Broadcast:  make(chan []byte),
	}
}

// BroadcastEvent marshals a payload and queues it for every client.
// Best-effort: marshal failures are logged and dropped.
func (h *Hub) BroadcastEvent(payload interface{}) {
	msg, err := json.Marshal(payload)
	if err != nil {
		log := logger.Get()
		log.Warn().Err(err).Msg("ws: failed to marshal broadcast payload")
		return
	}
	h.Broadcast <- msg
}

func (h *Hub) Run() {
	for {
		select {
		case conn := <-h.Register:
			h.mutex.Lock()
			h.Clients[conn] = true
			h.mutex.Unlock()
			log := logger.Get()
			log.Debug().Msg("ws: client connected")

		case conn := <-h.Unregister:
			h.mutex.Lock()
			if _, ok := h.Clients[conn]; ok {
				delete(h.Clients, conn)
				conn.Close()
			}
			h.mutex.Unlock()

		case message := <-h.Broadcast:
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
