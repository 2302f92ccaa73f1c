package events

import (
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// Hub fans state-change events out to WebSocket subscribers. Clients are
// read-only: incoming frames are drained for control handling and dropped.
type Hub struct {
	mu          sync.RWMutex
	connections map[string]*connection
	broadcast   chan Event
	register    chan *connection
	unregister  chan *connection
	stop        chan struct{}
	upgrader    websocket.Upgrader
	logger      *zap.Logger
}

type connection struct {
	id   string
	conn *websocket.Conn
	send chan Event
}

// NewHub creates the hub and starts its dispatch loop.
func NewHub(logger *zap.Logger) *Hub {
	h := &Hub{
		connections: make(map[string]*connection),
		broadcast:   make(chan Event, 256),
		register:    make(chan *connection),
		unregister:  make(chan *connection),
		stop:        make(chan struct{}),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
		logger: logger,
	}

	go h.run()

	return h
}

// HandleConnection upgrades an HTTP request to a WebSocket subscription.
func (h *Hub) HandleConnection(w http.ResponseWriter, r *http.Request) error {
	ws, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return err
	}

	c := &connection{
		id:   uuid.New().String(),
		conn: ws,
		send: make(chan Event, 256),
	}

	h.register <- c

	h.mu.Lock()
	h.connections[c.id] = c
	h.mu.Unlock()

	go h.readPump(c)
	go h.writePump(c)

	return nil
}

// Publish enqueues an event for broadcast. Events are dropped when the
// broadcast buffer is full rather than blocking a state transition.
func (h *Hub) Publish(event Event) {
	select {
	case h.broadcast <- event:
	default:
		h.logger.Warn("event broadcast buffer full, dropping event",
			zap.String("type", string(event.Type)))
	}
}

// ConnectionCount returns the number of active subscribers.
func (h *Hub) ConnectionCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.connections)
}

// Close shuts down the hub and all subscriber connections.
func (h *Hub) Close() {
	close(h.stop)

	h.mu.Lock()
	for _, c := range h.connections {
		c.conn.Close()
	}
	h.connections = make(map[string]*connection)
	h.mu.Unlock()
}

func (h *Hub) run() {
	for {
		select {
		case c := <-h.register:
			h.logger.Debug("event subscriber registered", zap.String("connection_id", c.id))

		case c := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.connections[c.id]; ok {
				delete(h.connections, c.id)
				close(c.send)
			}
			h.mu.Unlock()
			h.logger.Debug("event subscriber unregistered", zap.String("connection_id", c.id))

		case event := <-h.broadcast:
			h.mu.RLock()
			for _, c := range h.connections {
				select {
				case c.send <- event:
				default:
					// Slow subscriber, skip this event for it.
				}
			}
			h.mu.RUnlock()

		case <-h.stop:
			return
		}
	}
}

func (h *Hub) readPump(c *connection) {
	defer func() {
		h.unregister <- c
		c.conn.Close()
	}()

	c.conn.SetReadLimit(512)
	c.conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				h.logger.Debug("event subscriber read error", zap.Error(err))
			}
			return
		}
	}
}

func (h *Hub) writePump(c *connection) {
	ticker := time.NewTicker(54 * time.Second)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case event, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteJSON(event); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
