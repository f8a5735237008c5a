package api

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// VerdictEvent describes websocket payloads emitted while a case moves
// through the court. Type is "mediating" while the judge deliberates and
// "verdict" once the ruling is in.
type VerdictEvent struct {
	Type      string      `json:"type"`
	CaseID    string      `json:"case_id"`
	Tone      string      `json:"tone,omitempty"`
	Verdict   *VerdictDTO `json:"verdict,omitempty"`
	Message   string      `json:"message,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

// wsClient wraps a websocket connection with write locking.
type wsClient struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

// VerdictNotifier keeps track of active websocket clients and broadcasts
// court events to them.
type VerdictNotifier struct {
	mu          sync.Mutex
	clients     map[*wsClient]struct{}
	lastVerdict *VerdictEvent
}

// NewVerdictNotifier constructs a notifier instance.
func NewVerdictNotifier() *VerdictNotifier {
	return &VerdictNotifier{clients: make(map[*wsClient]struct{})}
}

// Register attaches a websocket connection and returns a client handle.
// Late subscribers receive the most recent verdict so a reconnecting
// frontend can re-render the ruling it missed.
func (n *VerdictNotifier) Register(conn *websocket.Conn) *wsClient {
	client := &wsClient{conn: conn}
	n.mu.Lock()
	n.clients[client] = struct{}{}
	last := n.lastVerdict
	n.mu.Unlock()

	if last != nil {
		_ = client.writeJSON(*last)
	}
	return client
}

// Unregister removes the websocket client from the notifier and closes the socket.
func (n *VerdictNotifier) Unregister(client *wsClient) {
	if client == nil {
		return
	}
	n.mu.Lock()
	delete(n.clients, client)
	n.mu.Unlock()
	_ = client.conn.Close()
}

// Broadcast sends the supplied event to all registered websocket clients.
func (n *VerdictNotifier) Broadcast(event VerdictEvent) {
	event.Timestamp = time.Now().UTC()

	n.mu.Lock()
	if event.Type == "verdict" {
		snapshot := event
		n.lastVerdict = &snapshot
	}

	for client := range n.clients {
		if err := client.writeJSON(event); err != nil {
			delete(n.clients, client)
			_ = client.conn.Close()
		}
	}
	n.mu.Unlock()
}

func (c *wsClient) writeJSON(payload interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.conn == nil {
		return nil
	}
	c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
	return c.conn.WriteJSON(payload)
}

// LastVerdict returns a copy of the most recent verdict event, if any.
func (n *VerdictNotifier) LastVerdict() *VerdictEvent {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.lastVerdict == nil {
		return nil
	}
	snapshot := *n.lastVerdict
	return &snapshot
}
