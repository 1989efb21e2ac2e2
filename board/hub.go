package board

import (
	"sync"

	"github.com/gorilla/websocket"
	"github.com/yeremiapane/intranet-portal/models"
	"github.com/yeremiapane/intranet-portal/utils"
)

// Event types
const (
	EventMenuSnapshot = "menu_snapshot"
	EventMenuUpdate   = "menu_update"
)

type Message struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// Hub holds the websocket connections of the cafeteria menu boards.
type Hub struct {
	clients map[*websocket.Conn]*sync.Mutex // conn -> write lock
	mutex   sync.Mutex
}

func NewHub() *Hub {
	return &Hub{
		clients: make(map[*websocket.Conn]*sync.Mutex),
	}
}

func (h *Hub) Register(conn *websocket.Conn) {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	h.clients[conn] = &sync.Mutex{}
}

// Unregister drops the connection and closes it.
func (h *Hub) Unregister(conn *websocket.Conn) {
	h.mutex.Lock()
	_, ok := h.clients[conn]
	delete(h.clients, conn)
	h.mutex.Unlock()

	if ok {
		conn.Close()
	}
}

func (h *Hub) ClientCount() int {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	return len(h.clients)
}

// Send writes one message to a single registered connection.
func (h *Hub) Send(conn *websocket.Conn, msg Message) error {
	h.mutex.Lock()
	lock, ok := h.clients[conn]
	h.mutex.Unlock()
	if !ok {
		return websocket.ErrCloseSent
	}

	lock.Lock()
	defer lock.Unlock()
	return conn.WriteJSON(msg)
}

// NotifyMenu pushes the current week to every board.
func (h *Hub) NotifyMenu(entries []models.MenuEntry) {
	h.Broadcast(Message{
		Event: EventMenuUpdate,
		Data:  entries,
	})
}

func (h *Hub) Broadcast(msg Message) {
	h.mutex.Lock()
	conns := make([]*websocket.Conn, 0, len(h.clients))
	for conn := range h.clients {
		conns = append(conns, conn)
	}
	h.mutex.Unlock()

	for _, conn := range conns {
		if err := h.Send(conn, msg); err != nil {
			utils.ErrorLogger.Printf("Dropping menu board %s: %v", conn.RemoteAddr(), err)
			h.Unregister(conn)
		}
	}
}
