package ws

import "sync"

// Channel kinds, used as metric and event labels.
const (
	KindNotify = "notify"
	KindChat   = "chat"
)

// room holds the live connections under one channel key. Each room has its
// own lock so traffic on one key never serializes against another.
type room struct {
	mu    sync.RWMutex
	conns map[Conn]ConnInfo
}

func newRoom() *room {
	return &room{conns: make(map[Conn]ConnInfo)}
}

func (r *room) add(conn Conn, info ConnInfo) {
	r.mu.Lock()
	r.conns[conn] = info
	r.mu.Unlock()
}

func (r *room) snapshot() []Conn {
	r.mu.RLock()
	defer r.mu.RUnlock()
	conns := make([]Conn, 0, len(r.conns))
	for conn := range r.conns {
		conns = append(conns, conn)
	}
	return conns
}

func (r *room) info(conn Conn) (ConnInfo, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	info, ok := r.conns[conn]
	return info, ok
}

// Hub is the connection registry. It owns every live connection, grouped by
// channel key: one personal room per employee id plus a single shared chat
// room. Attaching is idempotent per handle and delivers nothing by itself;
// an absent key just means the recipient is offline.
type Hub struct {
	mu     sync.RWMutex
	notify map[string]*room
	chat   *room
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{
		notify: make(map[string]*room),
		chat:   newRoom(),
	}
}

// AddNotifyClient registers a connection on an employee's personal channel.
func (h *Hub) AddNotifyClient(empID string, conn Conn, info ConnInfo) {
	h.mu.Lock()
	r, ok := h.notify[empID]
	if !ok {
		r = newRoom()
		h.notify[empID] = r
	}
	h.mu.Unlock()
	r.add(conn, info)
}

// RemoveNotifyClient detaches a connection from a personal channel. The key
// entry itself is removed once its last connection is gone.
func (h *Hub) RemoveNotifyClient(empID string, conn Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	r, ok := h.notify[empID]
	if !ok {
		return
	}
	r.mu.Lock()
	delete(r.conns, conn)
	empty := len(r.conns) == 0
	r.mu.Unlock()
	if empty {
		delete(h.notify, empID)
	}
}

// AddChatClient registers a connection on the shared chat channel.
func (h *Hub) AddChatClient(conn Conn, info ConnInfo) {
	h.chat.add(conn, info)
}

// RemoveChatClient detaches a connection from the shared chat channel.
func (h *Hub) RemoveChatClient(conn Conn) {
	h.chat.mu.Lock()
	delete(h.chat.conns, conn)
	h.chat.mu.Unlock()
}

// RemoveConn detaches a handle from whichever channel currently holds it,
// for teardown paths where the channel key is no longer known.
func (h *Hub) RemoveConn(conn Conn) {
	h.RemoveChatClient(conn)
	h.mu.Lock()
	defer h.mu.Unlock()
	for empID, r := range h.notify {
		r.mu.Lock()
		delete(r.conns, conn)
		empty := len(r.conns) == 0
		r.mu.Unlock()
		if empty {
			delete(h.notify, empID)
		}
	}
}

// NotifyConns returns a snapshot of the live connections on an employee's
// personal channel. Safe to call concurrently with attach/detach anywhere.
func (h *Hub) NotifyConns(empID string) []Conn {
	h.mu.RLock()
	r, ok := h.notify[empID]
	h.mu.RUnlock()
	if !ok {
		return nil
	}
	return r.snapshot()
}

// ChatConns returns a snapshot of the shared chat room.
func (h *Hub) ChatConns() []Conn {
	return h.chat.snapshot()
}

// Info looks up handshake metadata for a handle, scanning the shared room
// first and then the personal rooms.
func (h *Hub) Info(conn Conn) (ConnInfo, bool) {
	if info, ok := h.chat.info(conn); ok {
		return info, true
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, r := range h.notify {
		if info, ok := r.info(conn); ok {
			return info, true
		}
	}
	return ConnInfo{}, false
}
