package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"employee-service/internal/models"
	"employee-service/internal/repositories"
)

// AttendanceHandler serves attendance reads plus the admin status override.
type AttendanceHandler struct {
	attendanceRepo repositories.AttendanceRepository
}

// NewAttendanceHandler constructs an AttendanceHandler.
func NewAttendanceHandler(attendanceRepo repositories.AttendanceRepository) *AttendanceHandler {
	return &AttendanceHandler{attendanceRepo: attendanceRepo}
}

// ListAll handles GET /admin/attendance.
func (h *AttendanceHandler) ListAll(c *gin.Context) {
	records, err := h.attendanceRepo.ListAll(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load attendance"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"attendance": records})
}

// SetStatus handles PUT /admin/attendance/:emp_id.
func (h *AttendanceHandler) SetStatus(c *gin.Context) {
	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	status := strings.ToUpper(req.Status)
	switch status {
	case models.AttendancePresent, models.AttendanceAbsent, models.AttendanceLeave:
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "status must be PRESENT, ABSENT or LEAVE"})
		return
	}

	att, err := h.attendanceRepo.Upsert(c.Request.Context(), c.Param("emp_id"), status)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update attendance"})
		return
	}
	c.JSON(http.StatusOK, att)
}

// Own handles GET /employee/attendance.
func (h *AttendanceHandler) Own(c *gin.Context) {
	empID := c.GetString("empID")
	att, err := h.attendanceRepo.GetForEmployee(c.Request.Context(), empID)
	if err != nil {
		if errors.Is(err, repositories.ErrEmployeeNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "attendance record not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load attendance"})
		return
	}
	c.JSON(http.StatusOK, att)
}
