package ws

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.opentelemetry.io/otel"

	"employee-service/internal/auth"
	"employee-service/internal/observability"
)

// NotifyWebSocketHandler serves the personal notification channel. The
// channel key is always the authenticated employee's own id; the URL carries
// no identity, so a client cannot attach to someone else's channel.
type NotifyWebSocketHandler struct {
	hub       *Hub
	jwtSecret string
}

// NewNotifyWebSocketHandler constructs a NotifyWebSocketHandler.
func NewNotifyWebSocketHandler(hub *Hub, jwtSecret string) *NotifyWebSocketHandler {
	return &NotifyWebSocketHandler{hub: hub, jwtSecret: jwtSecret}
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Handle upgrades the connection and registers the client.
func (h *NotifyWebSocketHandler) Handle(c *gin.Context) {
	ctx, span := otel.Tracer("employee-service/ws").Start(c.Request.Context(), "ws.handshake")
	defer span.End()
	c.Request = c.Request.WithContext(ctx)

	claims, ok := authorizeWS(c, h.jwtSecret)
	if !ok {
		return
	}

	sock, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}

	conn := newSocketConn(sock)
	info := ConnInfo{
		ConnID:      newConnID(),
		EmpID:       claims.EmpID,
		DeviceID:    observability.DeviceIDFromRequest(c.Request),
		IP:          observability.IPFromRequest(c.Request),
		RequestID:   observability.RequestIDFromRequest(c.Request),
		TraceID:     span.SpanContext().TraceID().String(),
		ConnectedAt: time.Now(),
	}
	h.hub.AddNotifyClient(claims.EmpID, conn, info)

	observability.IncWSActive(KindNotify)
	observability.IncWSEvent(KindNotify, "ws_connect")
	publishLifecycleEvent(ctx, KindNotify, "ws_connect", info, "")

	// The notification channel is push-only: inbound frames are drained and
	// ignored until the peer goes away. The request context is canceled once
	// Handle returns, so the loop carries its own.
	loopCtx := context.WithoutCancel(ctx)
	go func() {
		var closeReason string
		defer func() {
			h.hub.RemoveNotifyClient(claims.EmpID, conn)
			observability.DecWSActive(KindNotify)
			observability.IncWSEvent(KindNotify, "ws_disconnect")
			publishLifecycleEvent(loopCtx, KindNotify, "ws_disconnect", info, closeReason)
			conn.Close()
		}()
		for {
			if _, _, err := sock.ReadMessage(); err != nil {
				closeReason = err.Error()
				if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
					observability.IncWSEvent(KindNotify, "ws_error")
					publishLifecycleEvent(loopCtx, KindNotify, "ws_error", info, closeReason)
				}
				return
			}
		}
	}()
}

// authorizeWS extracts the bearer token from the Authorization header or the
// token query parameter and validates it.
func authorizeWS(c *gin.Context, secret string) (*auth.Claims, bool) {
	token := bearerToken(c.GetHeader("Authorization"))
	if token == "" {
		token = c.Query("token")
	}
	if token == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing token"})
		return nil, false
	}

	claims, err := auth.ParseToken(token, secret)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
		return nil, false
	}
	return claims, true
}
