package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"employee-service/internal/models"
	"employee-service/internal/repositories"
	"employee-service/internal/telemetry"
)

const (
	defaultListLimit = 10
	maxListLimit     = 100
)

// EmployeeHandler serves the admin roster CRUD plus the employee self-profile.
type EmployeeHandler struct {
	employeeRepo repositories.EmployeeRepository
	audit        *telemetry.AuditEmitter
}

// NewEmployeeHandler constructs an EmployeeHandler.
func NewEmployeeHandler(employeeRepo repositories.EmployeeRepository, audit *telemetry.AuditEmitter) *EmployeeHandler {
	return &EmployeeHandler{employeeRepo: employeeRepo, audit: audit}
}

// Create handles POST /admin/employees.
func (h *EmployeeHandler) Create(c *gin.Context) {
	var req struct {
		Name   string  `json:"name" binding:"required"`
		Age    int     `json:"age" binding:"required,gt=0"`
		Dept   string  `json:"dept" binding:"required"`
		Salary float64 `json:"salary" binding:"required,gt=0"`
		Role   string  `json:"role"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Role != "" && req.Role != models.RoleEmployee && req.Role != models.RoleAdmin {
		c.JSON(http.StatusBadRequest, gin.H{"error": "role must be employee or admin"})
		return
	}

	emp, err := h.employeeRepo.CreateEmployee(c.Request.Context(), req.Name, req.Age, req.Dept, req.Salary, req.Role)
	if err != nil {
		if errors.Is(err, repositories.ErrDepartmentNotFound) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "department does not exist"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create employee"})
		return
	}

	h.audit.Emit(c.Request.Context(), "INFO", "Employee created", requestIDFromContext(c), empIDFromContext(c))
	c.JSON(http.StatusCreated, emp)
}

// List handles GET /admin/employees.
func (h *EmployeeHandler) List(c *gin.Context) {
	skip, err := intQuery(c, "skip", 0)
	if err != nil || skip < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "skip must be a positive integer"})
		return
	}
	limit, err := intQuery(c, "limit", defaultListLimit)
	if err != nil || limit < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
		return
	}
	if limit == 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}

	page, err := h.employeeRepo.ListEmployees(c.Request.Context(), skip, limit, c.Query("name"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load employees"})
		return
	}
	c.JSON(http.StatusOK, page)
}

// Get handles GET /admin/employees/:emp_id.
func (h *EmployeeHandler) Get(c *gin.Context) {
	emp, err := h.employeeRepo.GetEmployee(c.Request.Context(), c.Param("emp_id"))
	if err != nil {
		if errors.Is(err, repositories.ErrEmployeeNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "employee not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load employee"})
		return
	}
	c.JSON(http.StatusOK, emp)
}

// Update handles PATCH /admin/employees/:emp_id.
func (h *EmployeeHandler) Update(c *gin.Context) {
	var req struct {
		Name   *string  `json:"name"`
		Age    *int     `json:"age"`
		Dept   *string  `json:"dept"`
		Salary *float64 `json:"salary"`
		Role   *string  `json:"role"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Role != nil && *req.Role != models.RoleEmployee && *req.Role != models.RoleAdmin {
		c.JSON(http.StatusBadRequest, gin.H{"error": "role must be employee or admin"})
		return
	}

	emp, err := h.employeeRepo.UpdateEmployee(c.Request.Context(), c.Param("emp_id"), repositories.EmployeeUpdate{
		Name:   req.Name,
		Age:    req.Age,
		Dept:   req.Dept,
		Salary: req.Salary,
		Role:   req.Role,
	})
	if err != nil {
		switch {
		case errors.Is(err, repositories.ErrEmployeeNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "employee not found"})
		case errors.Is(err, repositories.ErrDepartmentNotFound):
			c.JSON(http.StatusBadRequest, gin.H{"error": "department does not exist"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update employee"})
		}
		return
	}

	h.audit.Emit(c.Request.Context(), "INFO", "Employee updated", requestIDFromContext(c), empIDFromContext(c))
	c.JSON(http.StatusOK, emp)
}

// Delete handles DELETE /admin/employees/:emp_id.
func (h *EmployeeHandler) Delete(c *gin.Context) {
	if err := h.employeeRepo.DeleteEmployee(c.Request.Context(), c.Param("emp_id")); err != nil {
		if errors.Is(err, repositories.ErrEmployeeNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "employee not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete employee"})
		return
	}

	h.audit.Emit(c.Request.Context(), "INFO", "Employee deleted", requestIDFromContext(c), empIDFromContext(c))
	c.Status(http.StatusNoContent)
}

// Profile handles GET /employee/profile.
func (h *EmployeeHandler) Profile(c *gin.Context) {
	empID := c.GetString("empID")
	emp, err := h.employeeRepo.GetEmployee(c.Request.Context(), empID)
	if err != nil {
		if errors.Is(err, repositories.ErrEmployeeNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "employee not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load profile"})
		return
	}
	c.JSON(http.StatusOK, emp)
}
