package ws

import (
	"sync"

	"github.com/gorilla/websocket"
)

// Conn is one live transport endpoint. Implementations must serialize
// outbound writes so at most one send is in flight per connection.
type Conn interface {
	SendJSON(v any) error
	Close() error
}

// socketConn wraps a gorilla websocket. Gorilla connections do not support
// concurrent writers, so every push holds the write mutex for its duration.
type socketConn struct {
	mu sync.Mutex
	ws *websocket.Conn
}

func newSocketConn(ws *websocket.Conn) *socketConn {
	return &socketConn{ws: ws}
}

func (c *socketConn) SendJSON(v any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ws.WriteJSON(v)
}

func (c *socketConn) Close() error {
	return c.ws.Close()
}
