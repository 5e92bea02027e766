package ws

import "time"

// ConnInfo carries identity and request metadata captured at handshake time,
// used for lifecycle events published when the connection ends.
type ConnInfo struct {
	ConnID      string
	EmpID       string
	DeviceID    string
	IP          string
	RequestID   string
	TraceID     string
	ConnectedAt time.Time
}
