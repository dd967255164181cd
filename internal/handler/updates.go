package handler

import (
	"log/slog"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"wanderlist/internal/domain"
)

// UpdatesHub fans the wish-list snapshot out to websocket subscribers after
// every successful mutation, so a second tab or a map view stays consistent
// without polling. The hub only moves frames; it knows nothing about the
// engine.
type UpdatesHub struct {
	upgrader websocket.Upgrader

	mu      sync.RWMutex
	clients map[*updatesClient]struct{}
}

type updatesClient struct {
	conn *websocket.Conn
	send chan []domain.TripEntry
}

// NewUpdatesHub constructs a hub whose origin check accepts same-host
// requests plus the given origins (usually the CORS allow-list).
func NewUpdatesHub(allowedOrigins []string) *UpdatesHub {
	allowed := make(map[string]struct{}, len(allowedOrigins))
	for _, origin := range allowedOrigins {
		allowed[origin] = struct{}{}
	}
	return &UpdatesHub{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				if origin == "" || origin == "http://"+r.Host || origin == "https://"+r.Host {
					return true
				}
				_, ok := allowed[origin]
				return ok
			},
		},
		clients: make(map[*updatesClient]struct{}),
	}
}

// handleUpdates handles GET /api/updates. The subscriber receives the
// current snapshot immediately, then a frame after every mutation.
func (s *Server) handleUpdates(w http.ResponseWriter, r *http.Request) {
	s.updates.Subscribe(w, r, s.list.Snapshot())
}

// Subscribe upgrades the connection, queues initial as the first frame, and
// serves the subscription until the peer goes away. It blocks for the
// lifetime of the connection, keeping the HTTP request open.
func (h *UpdatesHub) Subscribe(w http.ResponseWriter, r *http.Request, initial []domain.TripEntry) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Warn("websocket upgrade failed", "error", err)
		return
	}

	client := &updatesClient{conn: conn, send: make(chan []domain.TripEntry, 256)}
	client.send <- initial

	h.mu.Lock()
	h.clients[client] = struct{}{}
	h.mu.Unlock()

	go client.writePump()
	client.readPump(h)
}

// Broadcast queues the snapshot for every connected subscriber. A subscriber
// whose queue is full is dropped rather than allowed to stall the others.
func (h *UpdatesHub) Broadcast(entries []domain.TripEntry) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for client := range h.clients {
		select {
		case client.send <- entries:
		default:
			// remove needs the write lock, so it cannot run inline here.
			go h.remove(client)
		}
	}
}

// remove unregisters the client and closes its send channel, which ends its
// write pump. Calling it twice for the same client is fine.
func (h *UpdatesHub) remove(c *updatesClient) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
}

// readPump discards inbound messages until the peer disconnects; subscribers
// only listen.
func (c *updatesClient) readPump(h *UpdatesHub) {
	defer func() {
		h.remove(c)
		c.conn.Close()
	}()

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				slog.Debug("websocket closed", "error", err)
			}
			return
		}
	}
}

// writePump serializes queued snapshots to the peer. When the hub closes the
// send channel it tells the peer the subscription is over.
func (c *updatesClient) writePump() {
	defer c.conn.Close()

	for {
		entries, ok := <-c.send
		if !ok {
			// The hub dropped us.
			c.conn.WriteMessage(websocket.CloseMessage, []byte{})
			return
		}
		if err := c.conn.WriteJSON(listResponse{Entries: entries}); err != nil {
			return
		}
	}
}
