package api

import (
	"log"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins - configure properly in production
	},
}

// WSEvent is a message pushed to WebSocket subscribers: either a full
// state view after a command, or a single announcement line.
type WSEvent struct {
	Type    string      `json:"type"`              // "state" or "announce"
	Payload interface{} `json:"payload,omitempty"` // session.View for "state"
	Text    string      `json:"text,omitempty"`    // announcement for "announce"
}

// wsClient represents one connected WebSocket subscriber.
type wsClient struct {
	conn      *websocket.Conn
	sendChan  chan WSEvent
	closeOnce sync.Once
}

func (c *wsClient) closeSend() {
	c.closeOnce.Do(func() { close(c.sendChan) })
}

// send enqueues an event without blocking; slow subscribers drop events.
func (c *wsClient) send(ev WSEvent) {
	select {
	case c.sendChan <- ev:
	default:
	}
}

func (c *wsClient) writePump() {
	defer c.conn.Close()
	for ev := range c.sendChan {
		if err := c.conn.WriteJSON(ev); err != nil {
			return
		}
	}
}

// broadcastState pushes the current view to all subscribers.
// Callers must hold e.mu.
func (e *gameEntry) broadcastState() {
	if len(e.subs) == 0 {
		return
	}
	ev := WSEvent{Type: "state", Payload: e.session.View()}
	for c := range e.subs {
		c.send(ev)
	}
}

// broadcastAnnouncement pushes one announcement line to all subscribers.
// Callers must hold e.mu.
func (e *gameEntry) broadcastAnnouncement(text string) {
	ev := WSEvent{Type: "announce", Text: text}
	for c := range e.subs {
		c.send(ev)
	}
}

// WatchGame handles GET /api/games/{id}/ws: a read-only stream of state
// snapshots and announcements for one session.
func (h *Handlers) WatchGame(w http.ResponseWriter, r *http.Request) {
	entry := h.entryFor(w, r)
	if entry == nil {
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WebSocket upgrade error: %v", err)
		return
	}

	client := &wsClient{conn: conn, sendChan: make(chan WSEvent, 256)}
	go client.writePump()

	entry.mu.Lock()
	entry.subs[client] = struct{}{}
	client.send(WSEvent{Type: "state", Payload: entry.session.View()})
	entry.mu.Unlock()

	// Drain the connection until the client goes away; the stream is
	// one-directional, commands go through the token endpoint.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}

	entry.mu.Lock()
	delete(entry.subs, client)
	entry.mu.Unlock()
	client.closeSend()
}
