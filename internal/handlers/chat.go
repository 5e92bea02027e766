package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"employee-service/internal/models"
	"employee-service/internal/repositories"
	"employee-service/internal/ws"
)

const (
	defaultHistoryLimit = 50
	maxHistoryLimit     = 200
)

// ChatHandler serves the REST side of the shared chat room: history
// pagination, posting over HTTP and the author-only edit/delete operations.
type ChatHandler struct {
	chatRepo     repositories.ChatMessageRepository
	employeeRepo repositories.EmployeeRepository
	dispatcher   *ws.Dispatcher
}

// NewChatHandler constructs a ChatHandler.
func NewChatHandler(chatRepo repositories.ChatMessageRepository, employeeRepo repositories.EmployeeRepository, dispatcher *ws.Dispatcher) *ChatHandler {
	return &ChatHandler{chatRepo: chatRepo, employeeRepo: employeeRepo, dispatcher: dispatcher}
}

// History handles GET /chat/history.
func (h *ChatHandler) History(c *gin.Context) {
	limit, err := intQuery(c, "limit", defaultHistoryLimit)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be an integer"})
		return
	}
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	if limit > maxHistoryLimit {
		limit = maxHistoryLimit
	}

	beforeID, err := intQuery(c, "before_id", 0)
	if err != nil || beforeID < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "before_id must be a positive integer"})
		return
	}

	msgs, err := h.chatRepo.History(c.Request.Context(), limit, beforeID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load chat history"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"messages": msgs})
}

// PostMessage handles POST /chat/message. The stored row, with its
// server-assigned id and timestamp, is what goes out to live subscribers.
func (h *ChatHandler) PostMessage(c *gin.Context) {
	empID := c.GetString("empID")

	var req struct {
		Message string `json:"message" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	emp, err := h.employeeRepo.GetEmployee(c.Request.Context(), empID)
	if err != nil {
		if errors.Is(err, repositories.ErrEmployeeNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "employee not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load employee"})
		return
	}

	msg, err := h.chatRepo.CreateChatMessage(c.Request.Context(), emp.EmpID, emp.Name, req.Message)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to store message"})
		return
	}

	h.dispatcher.Broadcast(c.Request.Context(), models.ChatEvent{Type: "message", Message: &msg}, nil)
	c.JSON(http.StatusCreated, msg)
}

// EditMessage handles PUT /chat/message/:message_id. Ownership is enforced in
// the repository query, so editing someone else's message reads as not found.
func (h *ChatHandler) EditMessage(c *gin.Context) {
	messageID, err := strconv.Atoi(c.Param("message_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid message id"})
		return
	}

	var req struct {
		Message string `json:"message" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	empID := c.GetString("empID")
	msg, err := h.chatRepo.UpdateChatMessage(c.Request.Context(), messageID, empID, req.Message)
	if err != nil {
		if errors.Is(err, repositories.ErrMessageNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "message not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to edit message"})
		return
	}
	c.JSON(http.StatusOK, msg)
}

// DeleteMessage handles DELETE /chat/message/:message_id.
func (h *ChatHandler) DeleteMessage(c *gin.Context) {
	messageID, err := strconv.Atoi(c.Param("message_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid message id"})
		return
	}

	empID := c.GetString("empID")
	if err := h.chatRepo.SoftDeleteMessage(c.Request.Context(), messageID, empID); err != nil {
		if errors.Is(err, repositories.ErrMessageNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "message not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete message"})
		return
	}
	c.Status(http.StatusNoContent)
}

func intQuery(c *gin.Context, key string, fallback int) (int, error) {
	raw := c.Query(key)
	if raw == "" {
		return fallback, nil
	}
	return strconv.Atoi(raw)
}
