// Package ws hosts the live inbox-notification websocket hub, a Go-native
// supplement to the inbox polling endpoint: connected clients receive a
// best-effort push of {message_id, expiry} the moment mail arrives for
// them, but must still poll /chat/inbox/{user_id} since delivery here is
// not guaranteed.
package ws

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"vaultchat-backend/internal/notify"
	"vaultchat-backend/pkg/constants"
)

const (
	writeWait  = 10 * time.Second
	pingPeriod = constants.WebSocketPingInterval
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Hub tracks every locally-connected client, keyed by the user ID named in
// the connection's path.
type Hub struct {
	bus *notify.Bus
	log *zap.Logger

	mu      sync.RWMutex
	clients map[string]map[*client]bool
}

// NewHub returns a Hub backed by bus for cross-replica fanout. bus's
// client may be nil (single-replica deployments).
func NewHub(bus *notify.Bus, log *zap.Logger) *Hub {
	return &Hub{
		bus:     bus,
		log:     log,
		clients: make(map[string]map[*client]bool),
	}
}

type client struct {
	userID string
	conn   *websocket.Conn
	send   chan []byte
}

// ServeWS upgrades the request to a websocket and streams inbox events for
// userID until the client disconnects.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request, userID string) error {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return err
	}

	c := &client{userID: userID, conn: conn, send: make(chan []byte, 16)}
	h.register(c)
	defer h.unregister(c)

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	events, closeSub := h.bus.Subscribe(ctx, userID)
	defer closeSub()

	go h.relayRemoteEvents(c, events)
	go h.readPump(c)

	h.writePump(c)
	return nil
}

func (h *Hub) relayRemoteEvents(c *client, events <-chan notify.Event) {
	for event := range events {
		data, err := json.Marshal(pushPayload{MessageID: event.MessageID, Expiry: event.Expiry})
		if err != nil {
			continue
		}
		select {
		case c.send <- data:
		default:
		}
	}
}

// readPump drains and discards inbound frames; this is a push-only
// channel, but we must read to notice disconnects and respond to pings.
func (h *Hub) readPump(c *client) {
	defer c.conn.Close()
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *Hub) writePump(c *client) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case data, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (h *Hub) register(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.clients[c.userID] == nil {
		h.clients[c.userID] = make(map[*client]bool)
	}
	h.clients[c.userID][c] = true
}

func (h *Hub) unregister(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if conns, ok := h.clients[c.userID]; ok {
		delete(conns, c)
		if len(conns) == 0 {
			delete(h.clients, c.userID)
		}
	}
	close(c.send)
}

type pushPayload struct {
	MessageID string `json:"message_id"`
	Expiry    string `json:"expiry"`
}

// NotifyInbox implements chat.Notifier. When a Redis bus is configured,
// every connected client (including ones on this replica) learns about
// the event through its own Subscribe loop, so publishing once is enough.
// Without Redis there is no fanout channel at all, so this pushes directly
// to any locally-connected clients instead.
func (h *Hub) NotifyInbox(receiver, messageID, expiry string) {
	if h.bus.Configured() {
		h.bus.Publish(context.Background(), notify.Event{
			Receiver:  receiver,
			MessageID: messageID,
			Expiry:    expiry,
		})
		return
	}

	h.mu.RLock()
	conns := h.clients[receiver]
	h.mu.RUnlock()
	if len(conns) == 0 {
		return
	}

	data, err := json.Marshal(pushPayload{MessageID: messageID, Expiry: expiry})
	if err != nil {
		return
	}
	for c := range conns {
		select {
		case c.send <- data:
		default:
			h.log.Warn("dropping inbox push, client send buffer full", zap.String("user_id", receiver))
		}
	}
}
