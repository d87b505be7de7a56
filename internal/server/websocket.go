package server

import (
	"bytes"
	"encoding/json"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/zeusync/torophy/internal/core/observability/log"
	"github.com/zeusync/torophy/internal/core/systems/physics"
	"github.com/zeusync/torophy/pkg/generic"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1 << 16,
}

// Hub fans snapshots out to websocket clients. A client whose send buffer is
// full misses the frame instead of stalling the simulation.
type Hub struct {
	mu      sync.RWMutex
	clients map[uuid.UUID]*client
	closed  bool

	last     []byte
	lastStep uint64

	buffers      *generic.Pool[*bytes.Buffer]
	sendBuffer   int
	writeTimeout time.Duration

	published atomic.Uint64
	dropped   atomic.Uint64

	logger log.Log
}

type client struct {
	id   uuid.UUID
	conn *websocket.Conn
	send chan []byte
}

// NewHub builds a hub. Send buffers hold at least one frame so the replay on
// connect never blocks.
func NewHub(config Config, logger log.Log) *Hub {
	if logger == nil {
		logger = log.NewNop()
	}
	return &Hub{
		clients: make(map[uuid.UUID]*client),
		buffers: generic.NewHotPool(
			func() *bytes.Buffer { return new(bytes.Buffer) },
			(*bytes.Buffer).Reset,
			4,
		),
		sendBuffer:   max(config.SendBuffer, 1),
		writeTimeout: config.WriteTimeout,
		logger:       logger.With(log.String("component", "hub")),
	}
}

// Publish encodes snapshot once and queues it for every client.
func (h *Hub) Publish(snapshot physics.Snapshot) {
	buf := h.buffers.Get()
	defer h.buffers.Put(buf)

	if err := json.NewEncoder(buf).Encode(snapshot); err != nil {
		h.logger.Error("Failed to encode snapshot", log.Uint64("step", snapshot.Step), log.Error(err))
		return
	}
	frame := bytes.Clone(bytes.TrimRight(buf.Bytes(), "\n"))

	h.mu.Lock()
	h.last = frame
	h.lastStep = snapshot.Step
	h.mu.Unlock()

	h.published.Add(1)

	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, c := range h.clients {
		select {
		case c.send <- frame:
		default:
			h.dropped.Add(1)
			h.logger.Debug("Dropped snapshot for slow client",
				log.String("client_id", c.id.String()),
				log.Uint64("step", snapshot.Step))
		}
	}
}

// Last returns the most recently published frame.
func (h *Hub) Last() ([]byte, uint64, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.last == nil {
		return nil, 0, ErrNoSnapshot
	}
	return h.last, h.lastStep, nil
}

func (h *Hub) Clients() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

func (h *Hub) Published() uint64 { return h.published.Load() }

func (h *Hub) Dropped() uint64 { return h.dropped.Load() }

// Close disconnects every client. Later registrations fail with ErrServerClosed.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}
	h.closed = true
	for id, c := range h.clients {
		close(c.send)
		delete(h.clients, id)
	}
}

func (h *Hub) register(conn *websocket.Conn) (*client, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return nil, ErrServerClosed
	}

	c := &client{
		id:   uuid.New(),
		conn: conn,
		send: make(chan []byte, h.sendBuffer),
	}
	if h.last != nil {
		c.send <- h.last
	}
	h.clients[c.id] = c
	h.logger.Info("Client connected",
		log.String("client_id", c.id.String()),
		log.Int("total_clients", len(h.clients)))
	return c, nil
}

func (h *Hub) unregister(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[c.id]; !ok {
		return
	}
	delete(h.clients, c.id)
	close(c.send)
	h.logger.Info("Client disconnected",
		log.String("client_id", c.id.String()),
		log.Int("total_clients", len(h.clients)))
}

// serve blocks until the connection fails or the hub closes it.
func (h *Hub) serve(c *client) {
	go h.readPump(c)
	h.writePump(c)
}

// readPump discards client input; its only job is noticing the close.
func (h *Hub) readPump(c *client) {
	defer h.unregister(c)
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *Hub) writePump(c *client) {
	defer func() { _ = c.conn.Close() }()

	for frame := range c.send {
		if h.writeTimeout > 0 {
			_ = c.conn.SetWriteDeadline(time.Now().Add(h.writeTimeout))
		}
		if err := c.conn.WriteMessage(websocket.TextMessage, frame); err != nil {
			h.logger.Warn("Failed to write snapshot",
				log.String("client_id", c.id.String()),
				log.Error(err))
			return
		}
	}
	_ = c.conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(time.Second))
}
