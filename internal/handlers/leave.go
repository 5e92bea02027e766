package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"employee-service/internal/models"
	"employee-service/internal/observability"
	"employee-service/internal/repositories"
	"employee-service/internal/telemetry"
	"employee-service/internal/ws"
)

// LeaveHandler manages the leave-request workflow. Every state transition
// commits durably first; live pushes go out only after the commit succeeds,
// so a client is never notified about state that does not exist.
type LeaveHandler struct {
	leaveRepo  repositories.LeaveRepository
	dispatcher *ws.Dispatcher
	audit      *telemetry.AuditEmitter
}

// NewLeaveHandler builds a LeaveHandler.
func NewLeaveHandler(leaveRepo repositories.LeaveRepository, dispatcher *ws.Dispatcher, audit *telemetry.AuditEmitter) *LeaveHandler {
	return &LeaveHandler{leaveRepo: leaveRepo, dispatcher: dispatcher, audit: audit}
}

// SubmitLeave handles POST /employee/leave.
func (h *LeaveHandler) SubmitLeave(c *gin.Context) {
	empID := c.GetString("empID")

	var req struct {
		Date   string `json:"date" binding:"required"`
		Reason string `json:"reason"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	date, err := time.ParseInLocation("2006-01-02", req.Date, time.UTC)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date must be formatted YYYY-MM-DD"})
		return
	}
	if !date.After(todayUTC()) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "leave date must be in the future"})
		return
	}

	leave, notifications, err := h.leaveRepo.SubmitLeave(c.Request.Context(), empID, date, req.Reason)
	if err != nil {
		switch {
		case errors.Is(err, repositories.ErrDuplicatePendingLeave):
			c.JSON(http.StatusConflict, gin.H{"error": "a pending leave request already exists for this date"})
		case errors.Is(err, repositories.ErrEmployeeNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "employee not found"})
		default:
			h.emitAudit(c, "ERROR", "leave submission failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not submit leave request"})
		}
		return
	}

	observability.IncLeaveTransition("submitted")
	h.emitAudit(c, "INFO", "Leave request submitted")

	// Durable commit succeeded; fan the admin notifications out best-effort.
	for i := range notifications {
		n := notifications[i]
		h.dispatcher.SendToEmployee(c.Request.Context(), n.EmpID, models.NotificationEvent{
			Type:    "notification",
			ID:      n.ID,
			LeaveID: leave.ID,
			Message: n.Message,
			Action:  models.ActionNewLeaveApplication,
		})
	}

	c.JSON(http.StatusCreated, leave)
}

// DecideLeave handles PATCH /admin/leave/:leave_id.
func (h *LeaveHandler) DecideLeave(c *gin.Context) {
	leaveID, err := strconv.Atoi(c.Param("leave_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid leave id"})
		return
	}

	var req struct {
		Decision string `json:"decision" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	decision := strings.ToUpper(req.Decision)
	if decision != models.LeaveStatusAccepted && decision != models.LeaveStatusRejected {
		c.JSON(http.StatusBadRequest, gin.H{"error": "decision must be ACCEPTED or REJECTED"})
		return
	}

	adminID := c.GetString("empID")
	leave, notification, err := h.leaveRepo.DecideLeave(c.Request.Context(), leaveID, decision, adminID)
	if err != nil {
		switch {
		case errors.Is(err, repositories.ErrLeaveNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "leave request not found"})
		case errors.Is(err, repositories.ErrLeaveNotPending):
			c.JSON(http.StatusConflict, gin.H{"error": "leave request already decided"})
		default:
			h.emitAudit(c, "ERROR", "leave decision failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not decide leave request"})
		}
		return
	}

	observability.IncLeaveTransition(strings.ToLower(decision))
	h.emitAudit(c, "INFO", "Leave request decided")

	h.dispatcher.SendToEmployee(c.Request.Context(), leave.EmpID, models.NotificationEvent{
		Type:     "notification",
		ID:       notification.ID,
		Message:  notification.Message,
		Action:   models.ActionLeaveDecision,
		Decision: leave.Status,
	})

	c.JSON(http.StatusOK, leave)
}

// ListAllLeaves handles GET /admin/leaves.
func (h *LeaveHandler) ListAllLeaves(c *gin.Context) {
	leaves, err := h.leaveRepo.ListAllLeaves(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load leave requests"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"leaves": leaves})
}

// ListOwnLeaves handles GET /employee/leaves.
func (h *LeaveHandler) ListOwnLeaves(c *gin.Context) {
	empID := c.GetString("empID")
	leaves, err := h.leaveRepo.ListLeavesForEmployee(c.Request.Context(), empID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load leave requests"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"leaves": leaves})
}

func (h *LeaveHandler) emitAudit(c *gin.Context, level, text string) {
	h.audit.Emit(c.Request.Context(), level, text, requestIDFromContext(c), empIDFromContext(c))
}

func todayUTC() time.Time {
	now := time.Now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}
