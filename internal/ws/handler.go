package ws

import (
	"context"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/playmatatu/billiard/internal/events"
	"github.com/playmatatu/billiard/internal/game"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // origin is checked by middleware.WebSocketCORSCheck
	},
}

// Controller is the table a hub forwards renderer commands to.
type Controller interface {
	Snapshot() game.Snapshot
	Cue() game.CueControl
	Adjust(action string) (game.CueControl, error)
	Shoot() (game.ShotParams, error)
	ApplyShot(power float64, angle int) (game.ShotParams, error)
	Rerack() error
}

// Client represents a connected WebSocket client
type Client struct {
	hub    *Hub
	conn   *websocket.Conn
	format Format
	send   chan Frame
}

// Hub maintains the set of active clients
type Hub struct {
	table      Controller
	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	done       chan struct{}
	mu         sync.RWMutex
}

// NewHub creates a new Hub
func NewHub(table Controller) *Hub {
	return &Hub{
		table:      table,
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
	}
}

// Run registers and unregisters clients until ctx is cancelled, then closes
// every remaining connection.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			h.mu.Lock()
			for client := range h.clients {
				client.conn.Close()
				delete(h.clients, client)
			}
			h.mu.Unlock()
			log.Println("[WS] Hub stopped")
			return

		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			n := len(h.clients)
			h.mu.Unlock()
			log.Printf("[WS] Client %s connected (format=%s clients=%d)", client.conn.RemoteAddr(), client.format, n)

			client.sendMessage(Message{Type: "snapshot", Data: h.table.Snapshot()})
			client.sendMessage(Message{Type: "cue_state", Data: h.table.Cue()})

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
				log.Printf("[WS] Client %s disconnected (clients=%d)", client.conn.RemoteAddr(), len(h.clients))
			}
			h.mu.Unlock()
		}
	}
}

// ClientCount returns the number of registered clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Broadcast sends a message to every client, encoding it once per format.
func (h *Hub) Broadcast(msg Message) {
	frames := make(map[Format]Frame, 2)

	h.mu.RLock()
	defer h.mu.RUnlock()

	for client := range h.clients {
		frame, ok := frames[client.format]
		if !ok {
			var err error
			frame, err = client.format.Encode(msg)
			if err != nil {
				log.Printf("[WS] Error encoding %s message: %v", msg.Type, err)
				return
			}
			frames[client.format] = frame
		}
		select {
		case client.send <- frame:
		default:
			// Client's buffer is full
			log.Printf("[WS] Send buffer full for client %s, dropping %s", client.conn.RemoteAddr(), msg.Type)
		}
	}
}

func (h *Hub) BroadcastSnapshot(snap game.Snapshot) {
	h.Broadcast(Message{Type: "snapshot", Data: snap})
}

// Publish forwards a batch of collision events to every client.
func (h *Hub) Publish(_ context.Context, p events.Payload) error {
	h.Broadcast(Message{Type: "events", Data: p})
	return nil
}

// HandleWebSocket upgrades the request and attaches the connection to hub.
// The outbound encoding comes from the "format" query parameter.
func HandleWebSocket(hub *Hub, defaultFormat Format) gin.HandlerFunc {
	return func(c *gin.Context) {
		format := ParseFormat(c.Query("format"), defaultFormat)

		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			log.Printf("[WS] Upgrade error: %v", err)
			return
		}

		client := &Client{
			hub:    hub,
			conn:   conn,
			format: format,
			send:   make(chan Frame, 256),
		}

		select {
		case hub.register <- client:
		case <-hub.done:
			conn.Close()
			return
		}

		go client.writePump()
		go client.readPump()
	}
}

// writePump writes messages to the WebSocket connection
func (c *Client) writePump() {
	ticker := time.NewTicker(30 * time.Second)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case frame, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.conn.WriteMessage(frame.Kind, frame.Data); err != nil {
				log.Printf("[WS] Write error for client %s: %v", c.conn.RemoteAddr(), err)
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				log.Printf("[WS] Ping error for client %s: %v", c.conn.RemoteAddr(), err)
				return
			}

		case <-c.hub.done:
			return
		}
	}
}

// readPump reads renderer commands until the connection fails.
func (c *Client) readPump() {
	defer func() {
		select {
		case c.hub.unregister <- c:
		case <-c.hub.done:
		}
		c.conn.Close()
	}()

	c.conn.SetReadLimit(4096)
	c.conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})

	for {
		kind, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("[WS] Unexpected close for client %s: %v", c.conn.RemoteAddr(), err)
			}
			return
		}

		in, err := DecodeInbound(kind, data)
		if err != nil {
			c.sendError("Invalid message")
			continue
		}
		c.handleMessage(in)
	}
}

// sendMessage queues a message for this client only.
func (c *Client) sendMessage(msg Message) {
	frame, err := c.format.Encode(msg)
	if err != nil {
		log.Printf("[WS] Error encoding %s message: %v", msg.Type, err)
		return
	}
	select {
	case c.send <- frame:
	default:
		log.Printf("[WS] Send buffer full for client %s, dropping %s", c.conn.RemoteAddr(), msg.Type)
	}
}

// sendError sends an error message to the client
func (c *Client) sendError(message string) {
	c.sendMessage(Message{Type: "error", Message: message})
}
