package ws

import (
	"sync"

	"ludo_broker/internal/logger"
	"ludo_broker/internal/metrics"
)

// Hub is the connection registry: it tracks live clients and their
// membership in match rooms, and provides send-to-one and send-to-room
// delivery. It never calls back into the broker, so its lock can be taken
// while the broker's state lock is held.
type Hub struct {
	mu    sync.RWMutex
	conns map[string]*Client
	rooms map[string]map[string]*Client
}

func NewHub() *Hub {
	return &Hub{
		conns: make(map[string]*Client),
		rooms: make(map[string]map[string]*Client),
	}
}

// Register adds a client to the registry.
func (h *Hub) Register(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.conns[c.ID] = c
	metrics.ActiveConnections.Set(float64(len(h.conns)))
}

// Unregister removes a client from the registry and from every room it
// joined. Repeated calls for the same id are no-ops.
func (h *Hub) Unregister(connID string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.conns[connID]; !ok {
		return
	}
	delete(h.conns, connID)
	metrics.ActiveConnections.Set(float64(len(h.conns)))

	for roomID, members := range h.rooms {
		delete(members, connID)
		if len(members) == 0 {
			delete(h.rooms, roomID)
		}
	}
}

// Join adds a connection to a room's membership. Unknown connections are
// ignored.
func (h *Hub) Join(roomID, connID string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	c, ok := h.conns[connID]
	if !ok {
		return
	}
	if _, ok := h.rooms[roomID]; !ok {
		h.rooms[roomID] = make(map[string]*Client)
	}
	h.rooms[roomID][connID] = c
}

// DropRoom forgets a room's membership entirely.
func (h *Hub) DropRoom(roomID string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	delete(h.rooms, roomID)
}

// Send enqueues data for a single connection. Unknown ids are dropped
// silently; a full send buffer drops the message rather than blocking the
// caller.
func (h *Hub) Send(connID string, data []byte) {
	h.mu.RLock()
	c, ok := h.conns[connID]
	h.mu.RUnlock()
	if !ok {
		return
	}
	c.enqueue(data)
}

// SendRoom enqueues data for every current member of a room.
func (h *Hub) SendRoom(roomID string, data []byte) {
	h.mu.RLock()
	members := make([]*Client, 0, len(h.rooms[roomID]))
	for _, c := range h.rooms[roomID] {
		members = append(members, c)
	}
	h.mu.RUnlock()

	for _, c := range members {
		c.enqueue(data)
	}
}

// Connections returns the ids of all live connections.
func (h *Hub) Connections() []string {
	h.mu.RLock()
	defer h.mu.RUnlock()

	ids := make([]string, 0, len(h.conns))
	for id := range h.conns {
		ids = append(ids, id)
	}
	return ids
}

// RoomMembers returns the connection ids currently joined to a room.
func (h *Hub) RoomMembers(roomID string) []string {
	h.mu.RLock()
	defer h.mu.RUnlock()

	ids := make([]string, 0, len(h.rooms[roomID]))
	for id := range h.rooms[roomID] {
		ids = append(ids, id)
	}
	return ids
}

func logDropped(connID string) {
	logger.Warn("send buffer full, dropping message", "conn", connID)
}
