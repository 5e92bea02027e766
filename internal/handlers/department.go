package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"employee-service/internal/repositories"
)

// DepartmentHandler serves the department master list and its aggregates.
type DepartmentHandler struct {
	departmentRepo repositories.DepartmentRepository
}

// NewDepartmentHandler constructs a DepartmentHandler.
func NewDepartmentHandler(departmentRepo repositories.DepartmentRepository) *DepartmentHandler {
	return &DepartmentHandler{departmentRepo: departmentRepo}
}

// Stats handles GET /admin/departments.
func (h *DepartmentHandler) Stats(c *gin.Context) {
	stats, err := h.departmentRepo.ListDepartmentStats(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load departments"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"departments": stats})
}

// Create handles POST /admin/departments.
func (h *DepartmentHandler) Create(c *gin.Context) {
	var req struct {
		Name string `json:"name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	dept, err := h.departmentRepo.CreateDepartment(c.Request.Context(), req.Name)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create department"})
		return
	}
	c.JSON(http.StatusCreated, dept)
}

// Delete handles DELETE /admin/departments/:name.
func (h *DepartmentHandler) Delete(c *gin.Context) {
	if err := h.departmentRepo.DeleteDepartment(c.Request.Context(), c.Param("name")); err != nil {
		switch {
		case errors.Is(err, repositories.ErrDepartmentInUse):
			c.JSON(http.StatusBadRequest, gin.H{"error": "department has employees assigned"})
		case errors.Is(err, repositories.ErrDepartmentNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "department not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete department"})
		}
		return
	}
	c.Status(http.StatusNoContent)
}
