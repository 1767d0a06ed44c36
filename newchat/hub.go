package newchat

import (
	"sync"

	"github.com/gorilla/websocket"
)

// Client is one websocket connection subscribed to a chat room.
type Client struct {
	Conn   *websocket.Conn
	Send   chan []byte
	Room   string
	UserID string
	done   chan struct{}
}

func newClient(conn *websocket.Conn, room, userID string) *Client {
	return &Client{
		Conn:   conn,
		Send:   make(chan []byte, 256),
		Room:   room,
		UserID: userID,
		done:   make(chan struct{}),
	}
}

// deliver queues data for the client. It reports false once the hub has
// dropped the client. Send is never closed, only done is, so a delivery
// racing a disconnect cannot panic.
func (c *Client) deliver(data []byte) bool {
	select {
	case <-c.done:
		return false
	default:
	}
	select {
	case c.Send <- data:
		return true
	case <-c.done:
		return false
	}
}

type broadcastMsg struct {
	Room string
	Data []byte
}

// Hub fans broadcast payloads out to every client in a room. Run is the sole
// owner of client lifecycle: only it closes a client's done channel, and only
// while the client is still in the room map, so the close happens exactly
// once.
type Hub struct {
	rooms      map[string]map[*Client]bool
	register   chan *Client
	unregister chan *Client
	broadcast  chan broadcastMsg
	done       chan struct{}
	mu         sync.Mutex
}

func NewHub() *Hub {
	return &Hub{
		rooms:      make(map[string]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan broadcastMsg),
		done:       make(chan struct{}),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case <-h.done:
			return

		case c := <-h.register:
			h.mu.Lock()
			if h.rooms[c.Room] == nil {
				h.rooms[c.Room] = make(map[*Client]bool)
			}
			h.rooms[c.Room][c] = true
			h.mu.Unlock()

		case c := <-h.unregister:
			h.mu.Lock()
			if conns := h.rooms[c.Room]; conns != nil && conns[c] {
				delete(conns, c)
				close(c.done)
			}
			h.mu.Unlock()

		case m := <-h.broadcast:
			h.mu.Lock()
			for c := range h.rooms[m.Room] {
				select {
				case c.Send <- m.Data:
				default:
					delete(h.rooms[m.Room], c)
					close(c.done)
				}
			}
			h.mu.Unlock()
		}
	}
}

func (h *Hub) Stop() {
	close(h.done)
}

// Broadcast lets other packages push an event into a room without holding a
// websocket connection (REST message sends, upload notifications).
func (h *Hub) Broadcast(room string, data []byte) {
	select {
	case h.broadcast <- broadcastMsg{Room: room, Data: data}:
	case <-h.done:
	}
}
