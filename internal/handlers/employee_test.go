package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"employee-service/internal/mocks"
	"employee-service/internal/models"
	"employee-service/internal/repositories"
)

func setupEmployeeRouter(handler *EmployeeHandler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("empID", "ADMINBOB001")
		c.Next()
	})
	r.POST("/admin/employees", handler.Create)
	r.GET("/admin/employees", handler.List)
	r.GET("/admin/employees/:emp_id", handler.Get)
	r.PATCH("/admin/employees/:emp_id", handler.Update)
	r.DELETE("/admin/employees/:emp_id", handler.Delete)
	r.GET("/employee/profile", handler.Profile)
	return r
}

func TestCreateEmployeeSuccess(t *testing.T) {
	repo := new(mocks.EmployeeRepositoryMock)
	router := setupEmployeeRouter(NewEmployeeHandler(repo, nil))

	repo.On("CreateEmployee", mock.Anything, "alice", 30, "IT", 5000.0, "").
		Return(models.Employee{EmpID: "ALICE001", Name: "ALICE", Age: 30, Dept: "IT", Salary: 5000, Role: models.RoleEmployee}, nil).Once()

	body := bytes.NewBufferString(`{"name":"alice","age":30,"dept":"IT","salary":5000}`)
	req := httptest.NewRequest(http.MethodPost, "/admin/employees", body)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	var resp models.Employee
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "ALICE001", resp.EmpID)
	repo.AssertExpectations(t)
}

func TestCreateEmployeeUnknownDepartment(t *testing.T) {
	repo := new(mocks.EmployeeRepositoryMock)
	router := setupEmployeeRouter(NewEmployeeHandler(repo, nil))

	repo.On("CreateEmployee", mock.Anything, "alice", 30, "NOPE", 5000.0, "").
		Return(models.Employee{}, repositories.ErrDepartmentNotFound).Once()

	body := bytes.NewBufferString(`{"name":"alice","age":30,"dept":"NOPE","salary":5000}`)
	req := httptest.NewRequest(http.MethodPost, "/admin/employees", body)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	repo.AssertExpectations(t)
}

func TestCreateEmployeeRejectsBadRole(t *testing.T) {
	repo := new(mocks.EmployeeRepositoryMock)
	router := setupEmployeeRouter(NewEmployeeHandler(repo, nil))

	body := bytes.NewBufferString(`{"name":"alice","age":30,"dept":"IT","salary":5000,"role":"superuser"}`)
	req := httptest.NewRequest(http.MethodPost, "/admin/employees", body)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	repo.AssertNotCalled(t, "CreateEmployee", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestListEmployeesDefaults(t *testing.T) {
	repo := new(mocks.EmployeeRepositoryMock)
	router := setupEmployeeRouter(NewEmployeeHandler(repo, nil))

	repo.On("ListEmployees", mock.Anything, 0, defaultListLimit, "").
		Return(models.EmployeePage{Total: 1, Employees: []models.Employee{{EmpID: "ALICE001"}}}, nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/admin/employees", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	repo.AssertExpectations(t)
}

func TestGetEmployeeNotFound(t *testing.T) {
	repo := new(mocks.EmployeeRepositoryMock)
	router := setupEmployeeRouter(NewEmployeeHandler(repo, nil))

	repo.On("GetEmployee", mock.Anything, "NOPE001").
		Return(models.Employee{}, repositories.ErrEmployeeNotFound).Once()

	req := httptest.NewRequest(http.MethodGet, "/admin/employees/NOPE001", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)
	repo.AssertExpectations(t)
}

func TestUpdateEmployeePartial(t *testing.T) {
	repo := new(mocks.EmployeeRepositoryMock)
	router := setupEmployeeRouter(NewEmployeeHandler(repo, nil))

	salary := 6000.0
	repo.On("UpdateEmployee", mock.Anything, "ALICE001", repositories.EmployeeUpdate{Salary: &salary}).
		Return(models.Employee{EmpID: "ALICE001", Salary: 6000}, nil).Once()

	req := httptest.NewRequest(http.MethodPatch, "/admin/employees/ALICE001", bytes.NewBufferString(`{"salary":6000}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	repo.AssertExpectations(t)
}

func TestDeleteEmployeeSuccess(t *testing.T) {
	repo := new(mocks.EmployeeRepositoryMock)
	router := setupEmployeeRouter(NewEmployeeHandler(repo, nil))

	repo.On("DeleteEmployee", mock.Anything, "ALICE001").Return(nil).Once()

	req := httptest.NewRequest(http.MethodDelete, "/admin/employees/ALICE001", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNoContent, rec.Code)
	repo.AssertExpectations(t)
}

func TestProfileReturnsOwnRecord(t *testing.T) {
	repo := new(mocks.EmployeeRepositoryMock)
	router := setupEmployeeRouter(NewEmployeeHandler(repo, nil))

	repo.On("GetEmployee", mock.Anything, "ADMINBOB001").
		Return(models.Employee{EmpID: "ADMINBOB001", Role: models.RoleAdmin}, nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/employee/profile", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	repo.AssertExpectations(t)
}
