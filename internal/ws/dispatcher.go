package ws

import (
	"context"
	"log"
	"time"

	"employee-service/internal/observability"
)

// Dispatcher fans structured events out to live connections. Delivery is
// best effort and at most once: a failed push closes and detaches the dead
// connection, is logged and counted, and never reaches the caller. Durable
// rows are the system of record; the push is a latency optimization.
type Dispatcher struct {
	hub *Hub
}

// NewDispatcher builds a Dispatcher over the given registry.
func NewDispatcher(hub *Hub) *Dispatcher {
	return &Dispatcher{hub: hub}
}

// SendToEmployee pushes an event to every connection on the employee's
// personal channel. A recipient with no live connections is a silent no-op.
func (d *Dispatcher) SendToEmployee(ctx context.Context, empID string, event any) {
	for _, conn := range d.hub.NotifyConns(empID) {
		if err := conn.SendJSON(event); err != nil {
			log.Printf("websocket write error: %v", err)
			info, known := d.hub.Info(conn)
			conn.Close()
			d.hub.RemoveNotifyClient(empID, conn)
			d.reportWSError(ctx, KindNotify, info, known, err)
		}
	}
}

// Broadcast pushes an event to every connection in the shared chat room,
// optionally skipping one handle (a sender whose client already rendered
// the message locally).
func (d *Dispatcher) Broadcast(ctx context.Context, event any, exclude Conn) {
	for _, conn := range d.hub.ChatConns() {
		if conn == exclude {
			continue
		}
		if err := conn.SendJSON(event); err != nil {
			log.Printf("websocket write error: %v", err)
			info, known := d.hub.Info(conn)
			conn.Close()
			d.hub.RemoveChatClient(conn)
			d.reportWSError(ctx, KindChat, info, known, err)
		}
	}
}

func (d *Dispatcher) reportWSError(ctx context.Context, kind string, info ConnInfo, known bool, err error) {
	observability.IncWSEvent(kind, "ws_error")
	if !known {
		return
	}

	payload := map[string]interface{}{
		"ws": map[string]interface{}{
			"kind":        kind,
			"event":       "ws_error",
			"conn_id":     info.ConnID,
			"duration_ms": time.Since(info.ConnectedAt).Milliseconds(),
			"reason":      err.Error(),
		},
		"identity": map[string]interface{}{
			"emp_id":    info.EmpID,
			"device_id": info.DeviceID,
			"ip":        info.IP,
		},
	}

	headers := observability.BuildHeaders(info.RequestID, info.TraceID)
	_ = observability.PublishEvent(ctx, wsRoutingKey(kind), observability.EventEnvelope{
		EventType: "ws_events",
		EventName: "ws_error",
		Payload:   payload,
	}, headers)
}

func wsRoutingKey(kind string) string {
	if kind == KindChat {
		return "ws_events.chat"
	}
	return "ws_events.notify"
}
