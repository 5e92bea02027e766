package ws

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.opentelemetry.io/otel"

	"employee-service/internal/models"
	"employee-service/internal/observability"
	"employee-service/internal/repositories"
)

// ChatWebSocketHandler serves the shared chat room. Inbound frames are chat
// posts: each one is persisted first and the stored row is what gets
// broadcast, so clients can never spoof ids or timestamps. The sender's own
// connection is excluded from the broadcast because its client already
// rendered the message locally.
type ChatWebSocketHandler struct {
	hub          *Hub
	dispatcher   *Dispatcher
	employeeRepo repositories.EmployeeRepository
	chatRepo     repositories.ChatMessageRepository
	jwtSecret    string
}

// NewChatWebSocketHandler constructs a ChatWebSocketHandler.
func NewChatWebSocketHandler(hub *Hub, dispatcher *Dispatcher, employeeRepo repositories.EmployeeRepository, chatRepo repositories.ChatMessageRepository, jwtSecret string) *ChatWebSocketHandler {
	return &ChatWebSocketHandler{
		hub:          hub,
		dispatcher:   dispatcher,
		employeeRepo: employeeRepo,
		chatRepo:     chatRepo,
		jwtSecret:    jwtSecret,
	}
}

// Handle upgrades the connection, registers the client in the shared room
// and runs the inbound message loop.
func (h *ChatWebSocketHandler) Handle(c *gin.Context) {
	ctx, span := otel.Tracer("employee-service/ws").Start(c.Request.Context(), "ws.handshake")
	defer span.End()
	c.Request = c.Request.WithContext(ctx)

	claims, ok := authorizeWS(c, h.jwtSecret)
	if !ok {
		return
	}

	emp, err := h.employeeRepo.GetEmployee(c.Request.Context(), claims.EmpID)
	if errors.Is(err, repositories.ErrEmployeeNotFound) {
		c.JSON(http.StatusForbidden, gin.H{"error": "unknown employee"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load employee"})
		return
	}

	sock, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}

	conn := newSocketConn(sock)
	info := ConnInfo{
		ConnID:      newConnID(),
		EmpID:       emp.EmpID,
		DeviceID:    observability.DeviceIDFromRequest(c.Request),
		IP:          observability.IPFromRequest(c.Request),
		RequestID:   observability.RequestIDFromRequest(c.Request),
		TraceID:     span.SpanContext().TraceID().String(),
		ConnectedAt: time.Now(),
	}
	h.hub.AddChatClient(conn, info)

	observability.IncWSActive(KindChat)
	observability.IncWSEvent(KindChat, "ws_connect")
	publishLifecycleEvent(ctx, KindChat, "ws_connect", info, "")

	// The request context is canceled the moment Handle returns; the read
	// loop lives as long as the connection does.
	loopCtx := context.WithoutCancel(ctx)
	go func() {
		var closeReason string
		defer func() {
			h.hub.RemoveConn(conn)
			observability.DecWSActive(KindChat)
			observability.IncWSEvent(KindChat, "ws_disconnect")
			publishLifecycleEvent(loopCtx, KindChat, "ws_disconnect", info, closeReason)
			conn.Close()
		}()
		for {
			_, frame, err := sock.ReadMessage()
			if err != nil {
				closeReason = err.Error()
				if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
					observability.IncWSEvent(KindChat, "ws_error")
					publishLifecycleEvent(loopCtx, KindChat, "ws_error", info, closeReason)
				}
				return
			}
			h.handleInbound(loopCtx, conn, emp, frame)
		}
	}()
}

func (h *ChatWebSocketHandler) handleInbound(ctx context.Context, conn Conn, emp models.Employee, frame []byte) {
	var inbound struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(frame, &inbound); err != nil || strings.TrimSpace(inbound.Message) == "" {
		log.Printf("chat ws: discarding malformed frame from %s", emp.EmpID)
		return
	}

	msg, err := h.chatRepo.CreateChatMessage(ctx, emp.EmpID, emp.Name, inbound.Message)
	if err != nil {
		log.Printf("chat ws: store message failed: %v", err)
		return
	}

	h.dispatcher.Broadcast(ctx, models.ChatEvent{Type: "message", Message: &msg}, conn)
}
